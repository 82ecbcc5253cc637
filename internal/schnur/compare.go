package schnur

import "slices"

// Equal reports whether b and other hold the same units. Capacity is not
// compared. A nil buffer equals nothing, not even another nil buffer.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.released() || other.released() {
		return false
	}
	return slices.Equal(b.storage[:b.length], other.storage[:other.length])
}

// EqualUnits reports whether b holds exactly seq up to its first sentinel.
func (b *Buffer) EqualUnits(seq []rune) bool {
	if b.released() || seq == nil {
		return false
	}
	return slices.Equal(b.storage[:b.length], seq[:seqLen(seq)])
}

// EqualString reports whether b holds exactly the runes of s.
func (b *Buffer) EqualString(s string) bool {
	if b.released() {
		return false
	}
	r := []rune(s)
	return slices.Equal(b.storage[:b.length], r[:seqLen(r)])
}

// Reverse reverses the used units in place.
func (b *Buffer) Reverse() error {
	if b.released() {
		return opError("reverse", ErrNilBuffer)
	}
	for i, j := 0, b.length-1; i < j; i, j = i+1, j-1 {
		b.storage[i], b.storage[j] = b.storage[j], b.storage[i]
	}
	return nil
}
