package schnur

import "testing"

// checkInvariants verifies the storage invariants every successful
// operation must leave behind.
func checkInvariants(t *testing.T, b *Buffer) {
	t.Helper()
	if b.Cap() <= 0 || b.Cap()%b.BlockSize() != 0 {
		t.Errorf("capacity %d is not a positive multiple of %d", b.Cap(), b.BlockSize())
	}
	if b.Len() < 0 || b.Len() >= b.Cap() {
		t.Errorf("length %d outside [0, %d)", b.Len(), b.Cap())
	}
	if b.storage[b.length] != Sentinel {
		t.Errorf("storage[%d] = %q, want sentinel", b.length, b.storage[b.length])
	}
}

func mustNew(t *testing.T, opts ...Option) *Buffer {
	t.Helper()
	b, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(b.Free)
	return b
}

func mustFromString(t *testing.T, s string, opts ...Option) *Buffer {
	t.Helper()
	b, err := NewFromString(s, opts...)
	if err != nil {
		t.Fatalf("NewFromString(%q) error: %v", s, err)
	}
	t.Cleanup(b.Free)
	return b
}
