package codec

import (
	"bytes"
	"sync"
	"unicode/utf8"

	gdencoding "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Single-byte codecs.
var (
	// ISO8859_1 is Latin-1.
	ISO8859_1 Codec = newCharset("iso-8859-1", charmap.ISO8859_1)

	// Windows1252 is the Windows Western European code page.
	Windows1252 Codec = newCharset("windows-1252", charmap.Windows1252)

	// ASCII is 7-bit US-ASCII.
	ASCII Codec = newCharset("us-ascii", gdencoding.ASCII)

	// EBCDIC is IBM code page 037.
	EBCDIC Codec = newCharset("ebcdic", gdencoding.EBCDIC)
)

// charset adapts a single-byte x/text encoding to Codec. The byte tables are
// derived from the encoding's own transformers on first use; a byte is only
// usable if decoding and re-encoding it agree.
type charset struct {
	name string
	enc  encoding.Encoding

	once   sync.Once
	decode [256]rune
	valid  [256]bool
	encode map[rune]byte
}

func newCharset(name string, enc encoding.Encoding) *charset {
	return &charset{name: name, enc: enc}
}

func (c *charset) build() {
	c.encode = make(map[rune]byte, 256)
	dec := c.enc.NewDecoder()
	enc := c.enc.NewEncoder()

	var src [1]byte
	var out [utf8.UTFMax * 2]byte
	for i := 0; i < 256; i++ {
		src[0] = byte(i)
		dec.Reset()
		nDst, _, err := dec.Transform(out[:], src[:], true)
		if err != nil || nDst == 0 {
			continue
		}
		r, size := utf8.DecodeRune(out[:nDst])
		if r == utf8.RuneError || size != nDst {
			continue
		}

		enc.Reset()
		back, _, err := transform.Bytes(enc, out[:nDst])
		if err != nil || !bytes.Equal(back, src[:]) {
			continue
		}

		c.decode[i] = r
		c.valid[i] = true
		if _, dup := c.encode[r]; !dup {
			c.encode[r] = byte(i)
		}
	}
}

func (c *charset) Name() string { return c.name }

func (c *charset) MaxUnitBytes() int { return 1 }

func (c *charset) Encode(dst []byte, u rune) (int, error) {
	c.once.Do(c.build)
	b, ok := c.encode[u]
	if !ok {
		return 0, &Error{Encoding: c.name, Unit: u, Err: ErrUnrepresentable}
	}
	if len(dst) < 1 {
		return 0, transform.ErrShortDst
	}
	dst[0] = b
	return 1, nil
}

func (c *charset) Decode(dst []rune, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	c.once.Do(c.build)
	for nSrc < len(src) {
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		b := src[nSrc]
		if !c.valid[b] {
			return nDst, nSrc, &Error{Encoding: c.name, Offset: nSrc, Err: ErrInvalidSequence}
		}
		dst[nDst] = c.decode[b]
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
