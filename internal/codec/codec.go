package codec

import (
	"fmt"
	"sort"
	"strings"
)

// Codec converts single fixed-width units to a narrow encoding and back.
type Codec interface {
	// Name returns the canonical encoding name.
	Name() string

	// MaxUnitBytes returns the largest number of bytes one unit encodes to.
	MaxUnitBytes() int

	// Encode writes the narrow form of u to dst and returns the bytes written.
	// It returns transform.ErrShortDst if dst cannot hold the encoding.
	Encode(dst []byte, u rune) (int, error)

	// Decode decodes src into dst. It stops when either side is exhausted.
	// If src ends inside an incomplete sequence and atEOF is false, it
	// returns transform.ErrShortSrc; nSrc then excludes the partial bytes.
	Decode(dst []rune, src []byte, atEOF bool) (nDst, nSrc int, err error)
}

// Default is the codec used when none is configured.
var Default Codec = UTF8

var registry = map[string]Codec{}

var aliases = map[string]string{}

// register adds c under its name and the given aliases.
// It is only called from package init.
func register(c Codec, alias ...string) {
	registry[c.Name()] = c
	for _, a := range alias {
		aliases[a] = c.Name()
	}
}

func init() {
	register(UTF8, "utf8")
	register(ISO8859_1, "latin1", "latin-1", "iso8859-1", "iso_8859-1")
	register(Windows1252, "cp1252", "win1252")
	register(ASCII, "ascii", "us_ascii")
	register(EBCDIC, "ebcdic-037", "cp037")
}

// Lookup returns the codec registered under name. Names are case-insensitive.
func Lookup(name string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	c, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return c, nil
}

// Names returns the canonical names of all registered codecs, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
