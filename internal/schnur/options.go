package schnur

import (
	"github.com/dshills/schnur/internal/codec"
	"github.com/dshills/schnur/internal/logging"
)

// DefaultBlockSize is the allocation granularity in units.
const DefaultBlockSize = 32

// Option configures a Buffer during creation.
type Option func(*Buffer)

// WithBlockSize sets the allocation block size in units.
// Non-positive values are ignored.
func WithBlockSize(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.blockSize = n
		}
	}
}

// WithAllocator sets the allocator for storage and conversion results.
func WithAllocator(a Allocator) Option {
	return func(b *Buffer) {
		if a != nil {
			b.alloc = a
		}
	}
}

// WithCodec sets the narrow encoding used by ToNarrow and NewFromNarrow.
func WithCodec(c codec.Codec) Option {
	return func(b *Buffer) {
		if c != nil {
			b.codec = c
		}
	}
}

// WithLogger sets the logger for capacity and conversion diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l.WithComponent("schnur")
		}
	}
}
