// Package schnur provides a growable buffer of fixed-width code units
// ("schnur", German for string) with block-granular storage management and
// conversion to and from narrow encodings.
//
// # Storage
//
// A Buffer stores runes in a slice whose length (the capacity) is always a
// positive multiple of the block size (32 by default). One unit is always
// reserved for the sentinel, so after every successful operation
//
//	0 <= b.Len() < b.Cap()  and  b.Cap() % b.BlockSize() == 0
//
// Growth computes the number of blocks needed and reallocates once. Compact
// shrinks the storage back to the smallest block multiple holding the
// content. All storage passes through an Allocator; a LimitAllocator makes
// allocation failure observable, and every resizing operation leaves the
// buffer unchanged when allocation fails.
//
// # Basic Usage
//
//	b, err := schnur.NewFromString("Hänsel mag Soße!")
//	if err != nil {
//	    return err
//	}
//	defer b.Free()
//
//	b.Append('!')
//	b.Reverse()
//	b.Len() // 17
//
// # Conversion
//
// ToWide returns a caller-owned copy of the units. ToNarrow encodes them with
// the buffer's codec (UTF-8 unless WithCodec says otherwise); NewFromNarrow
// decodes narrow input in block-sized windows. Results carry a Release method
// that scrubs their storage:
//
//	n, err := b.ToNarrow()
//	if err != nil {
//	    return err
//	}
//	defer n.Release()
//	os.Stdout.Write(n.Bytes())
//
// Probe checks once whether a codec can represent non-ASCII units.
//
// # Quirks
//
// Fill and FillN paint storage beyond the used length, and both overwrite
// their last painted unit with the sentinel. ToWide and ToNarrow return
// ErrEmpty for an empty buffer.
//
// # Error Handling
//
// Mutating methods return an *OpError wrapping one of:
//
//   - ErrAllocation: storage could not be allocated
//   - ErrInvalidArgument: nil buffer or absent source (ErrNilBuffer wraps it)
//   - ErrOutOfRange: index-based access beyond the bounds
//   - ErrCodec: a unit or byte sequence could not be converted
//   - ErrEmpty: conversion of an empty buffer
//
// Queries on a nil buffer return zero values.
package schnur
