package main

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/schnur/internal/config"
	"github.com/dshills/schnur/internal/logging"
	"github.com/dshills/schnur/internal/schnur"
)

// environment is what every command runs against.
type environment struct {
	cfg  config.Config
	log  *logging.Logger
	text string
}

// buffer creates a buffer holding the command text.
func (e *environment) buffer() (*schnur.Buffer, error) {
	opts, err := e.cfg.BufferOptions(e.log)
	if err != nil {
		return nil, err
	}
	return schnur.NewFromString(e.text, opts...)
}

// withBuffer runs fn with a buffer holding the command text and frees it.
func (e *environment) withBuffer(fn func(*schnur.Buffer) error) error {
	return schnur.Scoped("text", e.buffer, fn)
}

type command struct {
	name      string
	summary   string
	needsText bool
	run       func(*environment) (*report, error)
}

var commands = []command{
	{"inspect", "length, capacity, blocks, data size and display width", true, runInspect},
	{"reverse", "reversed text", true, runReverse},
	{"narrow", "narrow bytes (hex) in the selected encoding", true, runNarrow},
	{"wide", "wide code units (U+XXXX list)", true, runWide},
	{"compact", "capacity before and after expand and compact", true, runCompact},
	{"probe", "whether the selected encoding supports conversion", false, runProbe},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func runInspect(e *environment) (*report, error) {
	rep := newReport("inspect")
	err := e.withBuffer(func(b *schnur.Buffer) error {
		s := b.String()
		rep.add("length", b.Len())
		rep.add("capacity", b.Cap())
		rep.add("block_size", b.BlockSize())
		rep.add("blocks", b.Cap()/b.BlockSize())
		rep.add("data_size", b.DataSize())
		rep.add("encoding", b.Codec().Name())
		rep.add("graphemes", uniseg.GraphemeClusterCount(s))
		rep.add("width", uniseg.StringWidth(s))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func runReverse(e *environment) (*report, error) {
	rep := newReport("reverse")
	err := e.withBuffer(func(b *schnur.Buffer) error {
		if err := b.Reverse(); err != nil {
			return err
		}
		rep.add("text", b.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func runNarrow(e *environment) (*report, error) {
	rep := newReport("narrow")
	err := e.withBuffer(func(b *schnur.Buffer) error {
		return schnur.ScopedNarrow(b, func(n *schnur.Narrow) error {
			rep.add("encoding", n.Encoding())
			rep.add("length", n.Len())
			rep.add("hex", fmt.Sprintf("% x", n.Bytes()))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func runWide(e *environment) (*report, error) {
	rep := newReport("wide")
	err := e.withBuffer(func(b *schnur.Buffer) error {
		return schnur.ScopedWide(b, func(w *schnur.Wide) error {
			units := make([]string, 0, w.Len())
			for _, u := range w.Units() {
				units = append(units, fmt.Sprintf("%U", u))
			}
			rep.add("length", w.Len())
			rep.add("units", strings.Join(units, " "))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func runCompact(e *environment) (*report, error) {
	rep := newReport("compact")
	err := e.withBuffer(func(b *schnur.Buffer) error {
		rep.add("length", b.Len())
		rep.add("initial", b.Cap())
		if err := b.Expand(); err != nil {
			return err
		}
		rep.add("expanded", b.Cap())
		if err := b.Compact(); err != nil {
			return err
		}
		rep.add("compacted", b.Cap())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func runProbe(e *environment) (*report, error) {
	c, err := e.cfg.ResolveCodec()
	if err != nil {
		return nil, err
	}

	rep := newReport("probe")
	rep.add("encoding", c.Name())
	rep.add("unit", fmt.Sprintf("%U", schnur.ProbeUnit))

	if err := schnur.NewProbe(c).Check(); err != nil {
		e.log.Debug("probe failed: %v", err)
		rep.add("supported", false)
		rep.add("reason", err.Error())
		return rep, nil
	}
	rep.add("supported", true)
	return rep, nil
}
