// Package codec converts between fixed-width code units (runes) and narrow,
// byte-oriented encodings.
//
// A Codec encodes one unit at a time into a caller-provided buffer and
// decodes windows of narrow input into caller-provided unit slices. Windowed
// decoding follows the golang.org/x/text/transform contract: when a window
// ends in the middle of a multi-byte sequence and more input follows, Decode
// reports transform.ErrShortSrc together with the number of bytes it
// consumed, and the caller carries the remainder into the next window.
//
// Available encodings:
//
//   - utf-8 (default, up to 4 bytes per unit)
//   - iso-8859-1 and windows-1252 (golang.org/x/text/encoding/charmap)
//   - us-ascii and ebcdic (github.com/gdamore/encoding)
//
// Use Lookup to resolve an encoding by name or alias:
//
//	c, err := codec.Lookup("latin1")
//	n, err := c.Encode(dst, 'é') // dst[0] == 0xE9
package codec
