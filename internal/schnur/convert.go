package schnur

import (
	"errors"
	"fmt"

	"golang.org/x/text/transform"

	"github.com/dshills/schnur/internal/codec"
)

// Wide is a caller-owned copy of a buffer's units. The backing storage keeps
// the trailing sentinel.
type Wide struct {
	data  []rune
	alloc Allocator
}

// Units returns the units without the sentinel.
func (w *Wide) Units() []rune {
	if w == nil || w.data == nil {
		return nil
	}
	return w.data[:len(w.data)-1]
}

// Terminated returns the units including the trailing sentinel.
func (w *Wide) Terminated() []rune {
	if w == nil {
		return nil
	}
	return w.data
}

// Len returns the number of units, sentinel excluded.
func (w *Wide) Len() int { return len(w.Units()) }

func (w *Wide) String() string { return string(w.Units()) }

// Release scrubs and returns the storage to its allocator. Safe to call twice.
func (w *Wide) Release() {
	if w == nil || w.data == nil {
		return
	}
	clear(w.data)
	w.alloc.FreeUnits(w.data)
	w.data = nil
}

// Narrow is a caller-owned narrow encoding of a buffer. The backing storage
// keeps a trailing zero byte.
type Narrow struct {
	data     []byte
	backing  []byte
	encoding string
	alloc    Allocator
}

// Bytes returns the encoded bytes without the trailing zero. They contain no
// zero byte.
func (n *Narrow) Bytes() []byte {
	if n == nil || n.data == nil {
		return nil
	}
	return n.data[:len(n.data)-1]
}

// Terminated returns the encoded bytes including the trailing zero.
func (n *Narrow) Terminated() []byte {
	if n == nil {
		return nil
	}
	return n.data
}

// Len returns the number of encoded bytes.
func (n *Narrow) Len() int { return len(n.Bytes()) }

// Encoding returns the name of the codec that produced the bytes.
func (n *Narrow) Encoding() string {
	if n == nil {
		return ""
	}
	return n.encoding
}

func (n *Narrow) String() string { return string(n.Bytes()) }

// Release scrubs and returns the storage to its allocator. Safe to call twice.
func (n *Narrow) Release() {
	if n == nil || n.backing == nil {
		return
	}
	clear(n.backing)
	n.alloc.FreeBytes(n.backing)
	n.data = nil
	n.backing = nil
}

// ToWide returns a copy of the used units. It returns ErrEmpty for an empty
// buffer.
func (b *Buffer) ToWide() (*Wide, error) {
	if b.released() {
		return nil, opError("wide", ErrNilBuffer)
	}
	if b.length == 0 {
		return nil, opError("wide", ErrEmpty)
	}
	data, err := b.alloc.AllocUnits(b.length + 1)
	if err != nil {
		return nil, opError("wide", err)
	}
	copy(data, b.storage[:b.length+1])
	return &Wide{data: data, alloc: b.alloc}, nil
}

// narrowWorstCase returns the output size that holds any encoding of n units
// plus the sentinel. It over-allocates by UnitWidth per unit on top of the
// codec's own maximum.
func narrowWorstCase(n int, c codec.Codec) int {
	return (n + 1) * UnitWidth * c.MaxUnitBytes()
}

// ToNarrow encodes the used units with the buffer's codec, stopping at the
// first interior Sentinel so no zero byte precedes the terminator. It returns
// ErrEmpty for an empty buffer and an error wrapping ErrCodec when a unit
// cannot be encoded. If the final exact-size allocation fails the oversized
// result is returned instead.
func (b *Buffer) ToNarrow() (*Narrow, error) {
	if b.released() {
		return nil, opError("narrow", ErrNilBuffer)
	}
	if b.length == 0 {
		return nil, opError("narrow", ErrEmpty)
	}

	if b.length >= maxBytes/(UnitWidth*b.codec.MaxUnitBytes()) {
		return nil, opError("narrow", ErrAllocation)
	}
	worst := narrowWorstCase(b.length, b.codec)
	b.debug("narrow", map[string]any{"length": b.length, "allocate": worst, "encoding": b.codec.Name()})

	out, err := b.alloc.AllocBytes(worst)
	if err != nil {
		return nil, opError("narrow", err)
	}

	n := 0
	for i, u := range b.storage[:seqLen(b.storage[:b.length])] {
		k, err := b.codec.Encode(out[n:], u)
		if err != nil {
			clear(out)
			b.alloc.FreeBytes(out)
			return nil, opError("narrow", codecFailure(err, i))
		}
		n += k
	}
	out[n] = 0

	exact, err := b.alloc.AllocBytes(n + 1)
	if err != nil {
		b.debug("narrow shrink failed", map[string]any{"size": worst, "used": n + 1})
		return &Narrow{data: out[:n+1], backing: out, encoding: b.codec.Name(), alloc: b.alloc}, nil
	}
	copy(exact, out[:n+1])
	clear(out)
	b.alloc.FreeBytes(out)

	b.debug("narrow compact", map[string]any{"from": worst, "to": n + 1})
	return &Narrow{data: exact, backing: exact, encoding: b.codec.Name(), alloc: b.alloc}, nil
}

// codecFailure wraps a codec error in ErrCodec and records the failing offset.
func codecFailure(err error, offset int) error {
	var cerr *codec.Error
	if errors.As(err, &cerr) {
		cerr.Offset = offset
	}
	return fmt.Errorf("%w: %w", ErrCodec, err)
}

// NewFromNarrow creates a buffer from narrow input encoded with the codec
// selected by opts (UTF-8 by default). Input ends at the first zero byte or
// at len(src). The input is decoded in block-sized windows; a sequence split
// across windows is carried into the next one.
func NewFromNarrow(src []byte, opts ...Option) (*Buffer, error) {
	if src == nil {
		return nil, opError("from narrow", ErrInvalidArgument)
	}
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := b.decodeNarrow(src); err != nil {
		b.Free()
		return nil, err
	}
	return b, nil
}

func (b *Buffer) decodeNarrow(src []byte) error {
	for i, c := range src {
		if c == 0 {
			src = src[:i]
			break
		}
	}

	window := make([]byte, 0, b.blockSize+b.codec.MaxUnitBytes())
	units := make([]rune, b.blockSize+b.codec.MaxUnitBytes())

	consumed := 0
	for off := 0; off < len(src); off += b.blockSize {
		end := min(off+b.blockSize, len(src))
		window = append(window, src[off:end]...)
		atEOF := end == len(src)

		nDst, nSrc, err := b.codec.Decode(units, window, atEOF)
		if err != nil && !errors.Is(err, transform.ErrShortSrc) {
			var cerr *codec.Error
			if errors.As(err, &cerr) {
				cerr.Offset += consumed
			}
			return opError("from narrow", fmt.Errorf("%w: %w", ErrCodec, err))
		}
		if err := b.extend(units[:nDst]); err != nil {
			return err
		}

		consumed += nSrc
		window = append(window[:0], window[nSrc:]...)
	}
	return nil
}
