package schnur

import (
	"github.com/dshills/schnur/internal/codec"
	"github.com/dshills/schnur/internal/logging"
)

// Sentinel is the unit stored at index Len() to mark the end of content.
const Sentinel rune = 0

// Buffer is a growable sequence of fixed-width code units. Storage grows and
// shrinks in whole blocks and always reserves one unit for the sentinel, so
// 0 <= Len() < Cap() holds after every successful operation.
//
// A Buffer has a single owner and is not safe for concurrent use.
type Buffer struct {
	storage   []rune
	length    int
	blockSize int

	alloc Allocator
	codec codec.Codec
	log   *logging.Logger
}

// New creates an empty buffer holding one block of zeroed storage.
func New(opts ...Option) (*Buffer, error) {
	b := &Buffer{
		blockSize: DefaultBlockSize,
		alloc:     DefaultAllocator,
		codec:     codec.Default,
		log:       logging.Null,
	}
	for _, opt := range opts {
		opt(b)
	}

	storage, err := b.alloc.AllocUnits(b.blockSize)
	if err != nil {
		return nil, opError("new", err)
	}
	b.storage = storage
	return b, nil
}

// NewFromUnits creates a buffer holding a copy of seq. The content ends at
// the first Sentinel in seq, or at len(seq).
func NewFromUnits(seq []rune, opts ...Option) (*Buffer, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := b.CopyUnits(seq); err != nil {
		b.Free()
		return nil, err
	}
	return b, nil
}

// NewFromString creates a buffer holding the runes of s, up to the first NUL.
func NewFromString(s string, opts ...Option) (*Buffer, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := b.CopyString(s); err != nil {
		b.Free()
		return nil, err
	}
	return b, nil
}

// Clone creates a buffer with the same configuration and content as b.
func (b *Buffer) Clone() (*Buffer, error) {
	if b.released() {
		return nil, opError("clone", ErrNilBuffer)
	}
	c, err := New(b.options()...)
	if err != nil {
		return nil, err
	}
	if err := c.Copy(b); err != nil {
		c.Free()
		return nil, err
	}
	return c, nil
}

func (b *Buffer) options() []Option {
	return []Option{
		WithBlockSize(b.blockSize),
		WithAllocator(b.alloc),
		WithCodec(b.codec),
		func(c *Buffer) { c.log = b.log },
	}
}

// Free scrubs and releases the storage. It is safe to call on a nil or
// already freed buffer.
func (b *Buffer) Free() {
	if b.released() {
		return
	}
	clear(b.storage)
	b.alloc.FreeUnits(b.storage)
	b.storage = nil
	b.length = 0
}

func (b *Buffer) released() bool {
	return b == nil || b.storage == nil
}

// Len returns the number of units in use.
func (b *Buffer) Len() int {
	if b.released() {
		return 0
	}
	return b.length
}

// Cap returns the number of units the storage holds, sentinel included.
func (b *Buffer) Cap() int {
	if b.released() {
		return 0
	}
	return len(b.storage)
}

// BlockSize returns the allocation granularity in units.
func (b *Buffer) BlockSize() int {
	if b == nil {
		return 0
	}
	return b.blockSize
}

// DataSize returns the number of bytes held by the storage.
func (b *Buffer) DataSize() int {
	return b.Cap() * UnitWidth
}

// IsEmpty returns true if the buffer holds no units.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Codec returns the narrow encoding used for conversions.
func (b *Buffer) Codec() codec.Codec {
	if b == nil {
		return codec.Default
	}
	return b.codec
}

// Units returns the units in use. The slice aliases the storage and is only
// valid until the next mutating call.
func (b *Buffer) Units() []rune {
	if b.released() {
		return nil
	}
	return b.storage[:b.length:b.length]
}

// String returns the content as a Go string.
func (b *Buffer) String() string {
	return string(b.Units())
}

func (b *Buffer) debug(msg string, fields map[string]any) {
	if b.log.Enabled(logging.LevelDebug) {
		b.log.WithFields(fields).Debug(msg)
	}
}

// blocksFor returns the block-aligned capacity that holds n units.
func (b *Buffer) blocksFor(n int) int {
	return (n + b.blockSize - 1) / b.blockSize * b.blockSize
}

// reserve makes room for n units, sentinel included, with a single
// reallocation. Capacity never shrinks here.
func (b *Buffer) reserve(op string, n int) error {
	if n <= len(b.storage) {
		return nil
	}
	if n > maxUnits {
		return opError(op, ErrAllocation)
	}
	return opError(op, b.reallocate(b.blocksFor(n)))
}

// reallocate moves the content and sentinel into fresh storage of capacity
// units. On failure the buffer is untouched.
func (b *Buffer) reallocate(capacity int) error {
	storage, err := b.alloc.AllocUnits(capacity)
	if err != nil {
		return err
	}
	copy(storage, b.storage[:b.length+1])

	b.debug("reallocate", map[string]any{"from": len(b.storage), "to": capacity, "length": b.length})

	clear(b.storage)
	b.alloc.FreeUnits(b.storage)
	b.storage = storage
	return nil
}

// Expand grows the capacity by exactly one block.
func (b *Buffer) Expand() error {
	if b.released() {
		return opError("expand", ErrNilBuffer)
	}
	if len(b.storage) > maxUnits-b.blockSize {
		return opError("expand", ErrAllocation)
	}
	return opError("expand", b.reallocate(len(b.storage)+b.blockSize))
}

// Compact moves the content into fresh storage of the smallest block multiple
// that holds Len()+1 units and releases the old storage. If that allocation
// fails the storage is clipped in place through the allocator. It returns nil
// without changes when the buffer is already that size. Content and length
// are preserved.
func (b *Buffer) Compact() error {
	if b.released() {
		return opError("compact", ErrNilBuffer)
	}
	target := b.blocksFor(b.length + 1)
	if target >= len(b.storage) {
		return nil
	}

	b.debug("compact", map[string]any{"from": len(b.storage), "to": target, "length": b.length})

	if err := b.reallocate(target); err != nil {
		// No room for a second copy; clip in place instead.
		b.debug("compact in place", map[string]any{"error": err})
		b.storage = b.alloc.ShrinkUnits(b.storage, target)
	}
	return nil
}

// Terminate sets the length to i and writes the sentinel there. It fails
// with ErrOutOfRange unless 0 <= i < Cap().
func (b *Buffer) Terminate(i int) error {
	if b.released() {
		return opError("terminate", ErrNilBuffer)
	}
	if i < 0 || i >= len(b.storage) {
		return opError("terminate", ErrOutOfRange)
	}
	b.length = i
	b.storage[i] = Sentinel
	return nil
}
