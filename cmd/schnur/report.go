package main

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"
)

type field struct {
	key   string
	value any
}

// report is an ordered set of named results.
type report struct {
	command string
	fields  []field
}

func newReport(command string) *report {
	return &report{command: command}
}

func (r *report) add(key string, value any) {
	r.fields = append(r.fields, field{key: key, value: value})
}

// JSON renders the report as a single JSON object.
func (r *report) JSON() (string, error) {
	doc, err := sjson.Set("{}", "command", r.command)
	if err != nil {
		return "", err
	}
	for _, f := range r.fields {
		doc, err = sjson.Set(doc, f.key, f.value)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", f.key, err)
		}
	}
	return doc, nil
}

func (r *report) write(w io.Writer, asJSON bool) error {
	if asJSON {
		doc, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, doc)
		return err
	}

	if len(r.fields) == 1 {
		_, err := fmt.Fprintln(w, r.fields[0].value)
		return err
	}
	for _, f := range r.fields {
		if _, err := fmt.Fprintf(w, "%s: %v\n", f.key, f.value); err != nil {
			return err
		}
	}
	return nil
}
