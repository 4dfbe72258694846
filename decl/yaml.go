// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package decl

import (
	"io"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a set of declarations:
//
//	modules:
//	  - name: broadcaster
//	    kind: broadcaster
//	    to: [a, b, c]
//	  - name: a
//	    kind: flipflop
//	    to: [b]
//
type File struct {
	Modules []Module `yaml:"modules"`
}

// Module is a single YAML declaration.
//
type Module struct {
	Name string   `yaml:"name"`
	Kind string   `yaml:"kind"`
	To   []string `yaml:"to,flow,omitempty"`
}

// LoadYAML reads declarations in YAML format from r. Unlike the text format,
// sinks may be declared explicitly.
//
func LoadYAML(r io.Reader) ([]pulsesim.Decl, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode yaml")
	}
	ds := make([]pulsesim.Decl, len(f.Modules))
	for i, m := range f.Modules {
		k, err := pulsesim.ParseKind(m.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "module %q", m.Name)
		}
		ds[i] = pulsesim.Decl{Kind: k, Name: m.Name, Dests: m.To}
	}
	return ds, nil
}

// WriteYAML writes declarations in YAML format to w.
//
func WriteYAML(w io.Writer, ds []pulsesim.Decl) error {
	f := File{Modules: make([]Module, len(ds))}
	for i, d := range ds {
		f.Modules[i] = Module{Name: d.Name, Kind: d.Kind.String(), To: d.Dests}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
