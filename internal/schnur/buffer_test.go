package schnur

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	b := mustNew(t)

	if b.Cap() != DefaultBlockSize {
		t.Errorf("expected capacity %d, got %d", DefaultBlockSize, b.Cap())
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	for i, u := range b.storage {
		if u != Sentinel {
			t.Fatalf("storage[%d] = %q, want zero", i, u)
		}
	}
	if b.DataSize() != DefaultBlockSize*UnitWidth {
		t.Errorf("expected data size %d, got %d", DefaultBlockSize*UnitWidth, b.DataSize())
	}
	checkInvariants(t, b)
}

func TestNewWithBlockSize(t *testing.T) {
	b := mustNew(t, WithBlockSize(8))
	if b.Cap() != 8 || b.BlockSize() != 8 {
		t.Errorf("expected capacity and block size 8, got %d/%d", b.Cap(), b.BlockSize())
	}

	b = mustNew(t, WithBlockSize(-3))
	if b.BlockSize() != DefaultBlockSize {
		t.Errorf("non-positive block size should be ignored, got %d", b.BlockSize())
	}
}

func TestNewAllocationFailure(t *testing.T) {
	_, err := New(WithAllocator(NewLimitAllocator(DefaultBlockSize*UnitWidth - 1)))
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "new" {
		t.Errorf("expected *OpError for new, got %#v", err)
	}
}

func TestNewFromUnits(t *testing.T) {
	b, err := NewFromUnits([]rune{'a', 'b', Sentinel, 'c'})
	if err != nil {
		t.Fatalf("NewFromUnits error: %v", err)
	}
	defer b.Free()

	if b.String() != "ab" {
		t.Errorf("expected content to stop at sentinel, got %q", b.String())
	}
	checkInvariants(t, b)
}

func TestNewFromUnitsNil(t *testing.T) {
	alloc := NewLimitAllocator(1024)
	b, err := NewFromUnits(nil, WithAllocator(alloc))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if b != nil {
		t.Error("expected nil buffer on failure")
	}
	if alloc.Used() != 0 {
		t.Errorf("partially built buffer leaked %d bytes", alloc.Used())
	}
}

func TestNewFromStringReleasesOnFailure(t *testing.T) {
	alloc := NewLimitAllocator(DefaultBlockSize * UnitWidth)
	_, err := NewFromString(strings.Repeat("x", 40), WithAllocator(alloc))
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if alloc.Used() != 0 {
		t.Errorf("partially built buffer leaked %d bytes", alloc.Used())
	}
}

func TestNewFromStringStopsAtNUL(t *testing.T) {
	b := mustFromString(t, "ab\x00cd")
	if b.String() != "ab" {
		t.Errorf("expected %q, got %q", "ab", b.String())
	}
}

func TestFree(t *testing.T) {
	alloc := NewLimitAllocator(1024)
	b, err := NewFromString("geheim", WithAllocator(alloc))
	if err != nil {
		t.Fatal(err)
	}
	storage := b.storage

	b.Free()
	b.Free()

	if alloc.Used() != 0 {
		t.Errorf("expected budget returned, %d bytes in use", alloc.Used())
	}
	for i, u := range storage {
		if u != Sentinel {
			t.Fatalf("storage[%d] not scrubbed: %q", i, u)
		}
	}
	if b.Len() != 0 || b.Cap() != 0 || b.DataSize() != 0 {
		t.Errorf("freed buffer reports len=%d cap=%d size=%d", b.Len(), b.Cap(), b.DataSize())
	}
	if err := b.Append('x'); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("expected ErrNilBuffer after Free, got %v", err)
	}
}

func TestNilBuffer(t *testing.T) {
	var b *Buffer

	b.Free()
	if b.Len() != 0 || b.Cap() != 0 || b.BlockSize() != 0 {
		t.Error("nil buffer queries should return zero")
	}
	if b.Get(0) != Sentinel {
		t.Error("nil buffer Get should return sentinel")
	}
	if b.Units() != nil || b.String() != "" {
		t.Error("nil buffer should have no units")
	}

	mutators := map[string]func() error{
		"expand":    b.Expand,
		"compact":   b.Compact,
		"terminate": func() error { return b.Terminate(0) },
		"fill":      func() error { return b.Fill('x') },
		"fill_n":    func() error { return b.FillN('x', 1) },
		"copy":      func() error { return b.CopyString("x") },
		"append":    func() error { return b.Append('x') },
		"set":       func() error { return b.Set(0, 'x') },
		"reverse":   b.Reverse,
	}
	for name, fn := range mutators {
		if err := fn(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s on nil buffer: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}

func TestExpand(t *testing.T) {
	b := mustFromString(t, "hello")

	if err := b.Expand(); err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if b.Cap() != 2*DefaultBlockSize {
		t.Errorf("expected capacity %d, got %d", 2*DefaultBlockSize, b.Cap())
	}
	if b.String() != "hello" {
		t.Errorf("content changed: %q", b.String())
	}
	checkInvariants(t, b)
}

func TestExpandAllocationFailure(t *testing.T) {
	alloc := NewLimitAllocator(DefaultBlockSize*UnitWidth + 100)
	b := mustFromString(t, "hello", WithAllocator(alloc))

	err := b.Expand()
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if b.Cap() != DefaultBlockSize || b.String() != "hello" {
		t.Errorf("failed expand modified buffer: cap=%d content=%q", b.Cap(), b.String())
	}
	checkInvariants(t, b)
}

func TestCompact(t *testing.T) {
	b := mustNew(t)
	b.Expand()
	b.Expand()
	if b.Cap() != 3*DefaultBlockSize {
		t.Fatalf("expected capacity %d, got %d", 3*DefaultBlockSize, b.Cap())
	}

	b.Fill('=')
	// Half a block of slack plus one whole free block.
	length := (2*DefaultBlockSize - 1) - DefaultBlockSize/2
	if err := b.Terminate(length); err != nil {
		t.Fatal(err)
	}

	if err := b.Compact(); err != nil {
		t.Fatalf("Compact error: %v", err)
	}
	if b.Cap() != 2*DefaultBlockSize {
		t.Errorf("expected capacity %d, got %d", 2*DefaultBlockSize, b.Cap())
	}
	if b.Len() != length {
		t.Errorf("expected length %d, got %d", length, b.Len())
	}
	if b.String() != strings.Repeat("=", length) {
		t.Errorf("content changed: %q", b.String())
	}
	checkInvariants(t, b)
}

func TestCompactNoop(t *testing.T) {
	b := mustFromString(t, strings.Repeat("a", 40))
	if b.Cap() != 64 {
		t.Fatalf("expected capacity 64, got %d", b.Cap())
	}
	if err := b.Compact(); err != nil {
		t.Fatalf("Compact on compact buffer should succeed, got %v", err)
	}
	if b.Cap() != 64 {
		t.Errorf("capacity changed to %d", b.Cap())
	}
}

func TestCompactLowerBound(t *testing.T) {
	for length := 0; length < 5*DefaultBlockSize; length += 7 {
		b := mustNew(t)
		for i := 0; i < 4; i++ {
			b.Expand()
		}
		if err := b.CopyString(strings.Repeat("k", length)); err != nil {
			t.Fatal(err)
		}
		before := b.String()

		if err := b.Compact(); err != nil {
			t.Fatal(err)
		}
		minCap := (length + DefaultBlockSize) / DefaultBlockSize * DefaultBlockSize
		if b.Cap() != minCap {
			t.Errorf("length %d: capacity %d, want %d", length, b.Cap(), minCap)
		}
		if b.String() != before || b.Len() != length {
			t.Errorf("length %d: content or length changed", length)
		}
		checkInvariants(t, b)
	}
}

func TestCompactReturnsBudget(t *testing.T) {
	alloc := NewLimitAllocator(4096)
	b := mustNew(t, WithAllocator(alloc))
	b.Expand()
	b.Expand()
	if alloc.Used() != 3*DefaultBlockSize*UnitWidth {
		t.Fatalf("expected %d bytes in use, got %d", 3*DefaultBlockSize*UnitWidth, alloc.Used())
	}

	b.Compact()
	if alloc.Used() != DefaultBlockSize*UnitWidth {
		t.Errorf("expected %d bytes in use after compact, got %d", DefaultBlockSize*UnitWidth, alloc.Used())
	}
}

func TestCompactReleasesStorage(t *testing.T) {
	b := mustFromString(t, strings.Repeat("w", 40*DefaultBlockSize))
	old := &b.storage[0]

	if err := b.Terminate(3); err != nil {
		t.Fatal(err)
	}
	if err := b.Compact(); err != nil {
		t.Fatal(err)
	}

	if b.Cap() != DefaultBlockSize {
		t.Fatalf("expected capacity %d, got %d", DefaultBlockSize, b.Cap())
	}
	if &b.storage[0] == old {
		t.Error("compacted storage still aliases the old array")
	}
	if cap(b.storage) != DefaultBlockSize {
		t.Errorf("backing array holds %d units, want %d", cap(b.storage), DefaultBlockSize)
	}
	if b.String() != "www" {
		t.Errorf("content changed: %q", b.String())
	}
	checkInvariants(t, b)
}

func TestCompactInPlaceWhenFull(t *testing.T) {
	alloc := NewLimitAllocator(4 * DefaultBlockSize * UnitWidth)
	b := mustFromString(t, strings.Repeat("f", 2*DefaultBlockSize+6), WithAllocator(alloc))
	if b.Cap() != 3*DefaultBlockSize {
		t.Fatalf("expected capacity %d, got %d", 3*DefaultBlockSize, b.Cap())
	}

	// Exhaust the budget so the copy cannot be made.
	rest, err := alloc.AllocBytes(alloc.Limit() - alloc.Used())
	if err != nil {
		t.Fatal(err)
	}
	defer alloc.FreeBytes(rest)

	b.Terminate(5)
	if err := b.Compact(); err != nil {
		t.Fatalf("Compact should clip in place, got %v", err)
	}
	if b.Cap() != DefaultBlockSize {
		t.Errorf("expected capacity %d, got %d", DefaultBlockSize, b.Cap())
	}
	if alloc.Used() != DefaultBlockSize*UnitWidth+len(rest) {
		t.Errorf("expected tail returned to budget, %d bytes in use", alloc.Used())
	}
	if b.String() != "fffff" {
		t.Errorf("content changed: %q", b.String())
	}
	checkInvariants(t, b)
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr bool
		content string
	}{
		{"shorten", 3, false, "Hän"},
		{"to empty", 0, false, ""},
		{"last slot", DefaultBlockSize - 1, false, ""},
		{"at capacity", DefaultBlockSize, true, "Hänsel"},
		{"negative", -1, true, "Hänsel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFromString(t, "Hänsel")
			err := b.Terminate(tt.index)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("expected ErrOutOfRange, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.name == "last slot" {
				if b.Len() != DefaultBlockSize-1 {
					t.Errorf("expected length %d, got %d", DefaultBlockSize-1, b.Len())
				}
			} else if b.String() != tt.content {
				t.Errorf("expected %q, got %q", tt.content, b.String())
			}
			checkInvariants(t, b)
		})
	}
}

func TestClone(t *testing.T) {
	b := mustFromString(t, "ευχαριστημένος", WithBlockSize(4))
	c, err := b.Clone()
	if err != nil {
		t.Fatalf("Clone error: %v", err)
	}
	defer c.Free()

	if !c.Equal(b) {
		t.Errorf("clone %q differs from %q", c.String(), b.String())
	}
	if c.BlockSize() != 4 {
		t.Errorf("clone block size %d, want 4", c.BlockSize())
	}

	c.Set(0, 'Ε')
	if b.Get(0) != 'ε' {
		t.Error("clone shares storage with original")
	}
}

func TestOpErrorMessage(t *testing.T) {
	b := mustNew(t)
	err := b.Set(5, 'x')
	want := "schnur: set: index out of range"
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}
}
