package schnur

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/schnur/internal/codec"
)

// ProbeUnit is the canonical unit round-tripped by a Probe.
const ProbeUnit rune = 'Ϡ'

// Probe checks once whether a codec can convert non-ASCII units. A
// successful result is cached; failures are re-checked on the next call.
// The zero value probes codec.Default. A Probe is safe for concurrent use.
type Probe struct {
	codec codec.Codec
	ok    atomic.Bool
}

// NewProbe returns a probe for c.
func NewProbe(c codec.Codec) *Probe {
	return &Probe{codec: c}
}

func (p *Probe) target() codec.Codec {
	if p.codec == nil {
		return codec.Default
	}
	return p.codec
}

// Supported reports whether the codec round-trips ProbeUnit.
func (p *Probe) Supported() bool {
	return p.Check() == nil
}

// Check returns nil if the codec round-trips ProbeUnit, and the reason
// otherwise.
func (p *Probe) Check() error {
	if p.ok.Load() {
		return nil
	}
	if err := roundTrip(p.target(), ProbeUnit); err != nil {
		return opError("probe", err)
	}
	p.ok.Store(true)
	return nil
}

func roundTrip(c codec.Codec, u rune) error {
	var narrow [2 * UnitWidth]byte
	n, err := c.Encode(narrow[:], u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCodec, err)
	}

	var wide [2]rune
	nDst, _, err := c.Decode(wide[:], narrow[:n], true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCodec, err)
	}
	if nDst != 1 || wide[0] != u {
		return fmt.Errorf("%w: %s decoded %U as %q", ErrCodec, c.Name(), u, wide[:nDst])
	}
	return nil
}
