package schnur

// seqLen returns the logical length of a sentinel-terminated sequence.
func seqLen(seq []rune) int {
	for i, u := range seq {
		if u == Sentinel {
			return i
		}
	}
	return len(seq)
}

// Fill paints the entire capacity, not just the used length, with u. The last
// unit becomes the sentinel and the length becomes Cap()-1.
func (b *Buffer) Fill(u rune) error {
	if b.released() {
		return opError("fill", ErrNilBuffer)
	}
	b.paint(u, len(b.storage))
	return nil
}

// FillN paints the first n units with u and sets the length to n. Like Fill,
// the unit at n-1 is overwritten with the sentinel, so the painted run is
// n-1 units long. n == Cap() is identical to Fill. FillN fails for n == 0
// and for n > Cap().
func (b *Buffer) FillN(u rune, n int) error {
	if b.released() {
		return opError("fill", ErrNilBuffer)
	}
	if n <= 0 {
		return opError("fill", ErrInvalidArgument)
	}
	if n > len(b.storage) {
		return opError("fill", ErrOutOfRange)
	}
	b.paint(u, n)
	return nil
}

func (b *Buffer) paint(u rune, n int) {
	for i := 0; i < n; i++ {
		b.storage[i] = u
	}
	b.storage[n-1] = Sentinel

	if n == len(b.storage) {
		b.length = n - 1
		return
	}
	b.length = n
	b.storage[n] = Sentinel
}

// Copy replaces the content of b with the content of other.
func (b *Buffer) Copy(other *Buffer) error {
	if b.released() || other.released() {
		return opError("copy", ErrNilBuffer)
	}
	if b == other {
		return nil
	}
	return b.assign("copy", other.storage[:other.length])
}

// CopyUnits replaces the content of b with seq up to its first sentinel.
func (b *Buffer) CopyUnits(seq []rune) error {
	if b.released() {
		return opError("copy", ErrNilBuffer)
	}
	if seq == nil {
		return opError("copy", ErrInvalidArgument)
	}
	return b.assign("copy", seq[:seqLen(seq)])
}

// CopyString replaces the content of b with the runes of s, up to the first
// NUL.
func (b *Buffer) CopyString(s string) error {
	if b.released() {
		return opError("copy", ErrNilBuffer)
	}
	r := []rune(s)
	return b.assign("copy", r[:seqLen(r)])
}

func (b *Buffer) assign(op string, src []rune) error {
	if err := b.reserve(op, len(src)+1); err != nil {
		return err
	}
	copy(b.storage, src)
	b.length = len(src)
	b.storage[b.length] = Sentinel
	return nil
}

// Append adds u at the end, expanding by one block when full.
func (b *Buffer) Append(u rune) error {
	if b.released() {
		return opError("append", ErrNilBuffer)
	}
	if b.length+1 >= len(b.storage) {
		if err := b.reserve("append", b.length+2); err != nil {
			return err
		}
	}
	b.storage[b.length] = u
	b.length++
	b.storage[b.length] = Sentinel
	return nil
}

// AppendUnits adds seq, up to its first sentinel, at the end.
func (b *Buffer) AppendUnits(seq []rune) error {
	if b.released() {
		return opError("append", ErrNilBuffer)
	}
	if seq == nil {
		return opError("append", ErrInvalidArgument)
	}
	return b.extend(seq[:seqLen(seq)])
}

// AppendString adds the runes of s, up to the first NUL, at the end.
func (b *Buffer) AppendString(s string) error {
	if b.released() {
		return opError("append", ErrNilBuffer)
	}
	r := []rune(s)
	return b.extend(r[:seqLen(r)])
}

// AppendBuffer adds the content of other at the end. other may be b.
func (b *Buffer) AppendBuffer(other *Buffer) error {
	if b.released() || other.released() {
		return opError("append", ErrNilBuffer)
	}
	n := other.length
	if n == 0 {
		return nil
	}
	if err := b.reserve("append", b.length+n+1); err != nil {
		return err
	}
	// other.storage is re-read after reserve since other may be b.
	copy(b.storage[b.length:], other.storage[:n])
	b.length += n
	b.storage[b.length] = Sentinel
	return nil
}

func (b *Buffer) extend(src []rune) error {
	if len(src) == 0 {
		return nil
	}
	if err := b.reserve("append", b.length+len(src)+1); err != nil {
		return err
	}
	copy(b.storage[b.length:], src)
	b.length += len(src)
	b.storage[b.length] = Sentinel
	return nil
}

// Get returns the unit at i, or Sentinel if i is outside [0, Len()).
func (b *Buffer) Get(i int) rune {
	if b.released() || i < 0 || i >= b.length {
		return Sentinel
	}
	return b.storage[i]
}

// Set replaces the unit at i. It fails with ErrOutOfRange unless
// 0 <= i < Len().
func (b *Buffer) Set(i int, u rune) error {
	if b.released() {
		return opError("set", ErrNilBuffer)
	}
	if i < 0 || i >= b.length {
		return opError("set", ErrOutOfRange)
	}
	b.storage[i] = u
	return nil
}
