// Package config loads runtime settings for the schnur tool.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file
//  3. SCHNUR_* environment variables
//
// Example file:
//
//	[buffer]
//	block_size = 64
//
//	[codec]
//	encoding = "latin1"
//
//	[logging]
//	level = "debug"
//
// Environment overrides:
//
//	SCHNUR_BLOCK_SIZE   buffer.block_size
//	SCHNUR_ENCODING     codec.encoding
//	SCHNUR_LOG_LEVEL    logging.level
package config
