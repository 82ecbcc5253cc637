package codec

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// UTF8 is the variable-width UTF-8 codec.
var UTF8 Codec = utf8Codec{}

type utf8Codec struct{}

func (utf8Codec) Name() string { return "utf-8" }

func (utf8Codec) MaxUnitBytes() int { return utf8.UTFMax }

func (c utf8Codec) Encode(dst []byte, u rune) (int, error) {
	if !utf8.ValidRune(u) {
		return 0, &Error{Encoding: c.Name(), Unit: u, Err: ErrUnrepresentable}
	}
	if len(dst) < utf8.RuneLen(u) {
		return 0, transform.ErrShortDst
	}
	return utf8.EncodeRune(dst, u), nil
}

func (c utf8Codec) Decode(dst []rune, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		rest := src[nSrc:]
		if !utf8.FullRune(rest) {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, &Error{Encoding: c.Name(), Offset: nSrc, Err: ErrInvalidSequence}
		}
		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size == 1 {
			return nDst, nSrc, &Error{Encoding: c.Name(), Offset: nSrc, Err: ErrInvalidSequence}
		}
		dst[nDst] = r
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}
