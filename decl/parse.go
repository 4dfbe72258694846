// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package decl reads and writes module declarations.
//
// The text format has one declaration per line:
//
//	broadcaster -> a, b, c
//	%a -> b
//	&inv -> a
//	%c ->
//
// A '%' prefix declares a flip-flop, '&' a conjunction. The broadcaster is the
// only module declared without a prefix. Blank lines are ignored and '#'
// starts a comment.
//
package decl

import (
	"bufio"
	"io"
	"strings"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
)

// BroadcasterName is the name of the only module declared without a prefix.
//
const BroadcasterName = "broadcaster"

// Parse reads declarations in text format from r.
//
func Parse(r io.Reader) ([]pulsesim.Decl, error) {
	var ds []pulsesim.Decl
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		d, ok, err := ParseLine(s.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if ok {
			ds = append(ds, d)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read declarations")
	}
	return ds, nil
}

// ParseString is like Parse for a string.
//
func ParseString(s string) ([]pulsesim.Decl, error) {
	return Parse(strings.NewReader(s))
}

// ParseLine parses a single declaration. ok is false for blank or comment
// lines.
//
func ParseLine(line string) (d pulsesim.Decl, ok bool, err error) {
	items := Lex(line)
	i := items[0]
	if i.Type == EOF {
		return d, false, nil
	}

	d.Kind = pulsesim.Broadcaster
	switch i.Type {
	case Percent:
		d.Kind = pulsesim.FlipFlop
		items = items[1:]
	case Ampersand:
		d.Kind = pulsesim.Conjunction
		items = items[1:]
	}
	if i = items[0]; i.Type != Ident {
		return d, false, parseError(i, "expected module name")
	}
	d.Name = i.Value
	if d.Kind == pulsesim.Broadcaster && d.Name != BroadcasterName {
		return d, false, parseError(i, "missing '%' or '&' before module name")
	}
	if i = items[1]; i.Type != Arrow {
		return d, false, parseError(i, "expected '->' after module name")
	}
	items = items[2:]

	// destination list, possibly empty
	if items[0].Type == EOF {
		return d, true, nil
	}
	for {
		if i = items[0]; i.Type != Ident {
			return d, false, parseError(i, "expected destination name")
		}
		d.Dests = append(d.Dests, i.Value)
		switch i = items[1]; i.Type {
		case EOF:
			return d, true, nil
		case Comma:
			items = items[2:]
		default:
			return d, false, parseError(i, "expected ',' or end of line")
		}
	}
}

func parseError(i Item, msg string) error {
	return errors.Errorf("col %d: %s, got %s", i.Pos+1, msg, i)
}

// Write writes declarations in text format. Sinks cannot be declared in that
// format and are rejected.
//
func Write(w io.Writer, ds []pulsesim.Decl) error {
	bw := bufio.NewWriter(w)
	for _, d := range ds {
		if d.Kind == pulsesim.Sink {
			return errors.Errorf("sink %q cannot be declared in text format", d.Name)
		}
		bw.WriteString(d.Kind.Prefix())
		bw.WriteString(d.Name)
		bw.WriteString(" ->")
		if len(d.Dests) > 0 {
			bw.WriteByte(' ')
			bw.WriteString(strings.Join(d.Dests, ", "))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
