package schnur

import "fmt"

// Scoped creates a buffer, runs fn with it and frees it afterwards. A
// creation failure is reported as an error naming the buffer.
//
//	err := schnur.Scoped("greeting", func() (*schnur.Buffer, error) {
//		return schnur.NewFromString("hallo")
//	}, func(b *schnur.Buffer) error {
//		return b.Reverse()
//	})
func Scoped(name string, create func() (*Buffer, error), fn func(*Buffer) error) error {
	b, err := create()
	if err != nil {
		return fmt.Errorf("could not initialize %q: %w", name, err)
	}
	if b == nil {
		return fmt.Errorf("could not initialize %q: %w", name, ErrNilBuffer)
	}
	defer b.Free()
	return fn(b)
}

// ScopedNarrow converts b with ToNarrow, runs fn with the result and releases
// it afterwards.
func ScopedNarrow(b *Buffer, fn func(*Narrow) error) error {
	n, err := b.ToNarrow()
	if err != nil {
		return err
	}
	defer n.Release()
	return fn(n)
}

// ScopedWide converts b with ToWide, runs fn with the result and releases it
// afterwards.
func ScopedWide(b *Buffer, fn func(*Wide) error) error {
	w, err := b.ToWide()
	if err != nil {
		return err
	}
	defer w.Release()
	return fn(w)
}
