// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// DefaultSinks lists the undeclared destination names accepted by Build
// unless the Sinks or AnySink options are used.
//
var DefaultSinks = []string{"rx", "output"}

// Network is a graph of modules. It owns all module state and is mutated by
// every button press. A Network must not be used concurrently; use Clone to
// get independent copies.
//
type Network struct {
	mods    []module
	ids     map[string]ID
	entry   ID
	presses uint64
	q       fifo
	log     *zap.Logger
}

type buildConfig struct {
	sinks   []string
	anySink bool
	log     *zap.Logger
}

// An Option configures Build.
//
type Option func(*buildConfig)

// Sinks sets the names that may be used as destinations without being
// declared. They become modules of kind Sink.
//
func Sinks(names ...string) Option {
	return func(c *buildConfig) {
		c.sinks = names
	}
}

// AnySink makes Build accept any undeclared destination as a sink.
//
func AnySink() Option {
	return func(c *buildConfig) { c.anySink = true }
}

// WithLogger sets a logger for the network. The default is a no-op logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(c *buildConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Build builds a network from module declarations.
//
// Modules get IDs in declaration order; undeclared sinks follow in the order
// they are first referenced. Once all destinations are resolved, every module
// with an edge into a conjunction is registered as one of its inputs.
//
// Build returns an error if a name is declared twice, if there is not exactly
// one broadcaster, or if a destination cannot be resolved.
//
func Build(decls []Decl, opts ...Option) (*Network, error) {
	cfg := buildConfig{sinks: DefaultSinks, log: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	n := &Network{
		mods:  make([]module, 0, len(decls)),
		ids:   make(map[string]ID, len(decls)),
		entry: Button,
		log:   cfg.log,
	}
	for _, d := range decls {
		if d.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := n.ids[d.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicateModule, "module %q", d.Name)
		}
		id := ID(len(n.mods))
		if d.Kind == Broadcaster {
			if n.entry != Button {
				return nil, errors.Wrapf(ErrMultipleEntries, "module %q (already have %q)", d.Name, n.mods[n.entry].name)
			}
			n.entry = id
		}
		n.ids[d.Name] = id
		n.mods = append(n.mods, module{name: d.Name, kind: d.Kind})
	}
	if n.entry == Button {
		return nil, ErrNoEntry
	}

	// resolve destinations
	for i, d := range decls {
		dests := make([]ID, 0, len(d.Dests))
		for _, name := range d.Dests {
			id, ok := n.ids[name]
			if !ok {
				if name == "" || !cfg.anySink && !slices.Contains(cfg.sinks, name) {
					return nil, errors.Wrapf(ErrUnknownModule, "%q in module %q", name, d.Name)
				}
				id = ID(len(n.mods))
				n.ids[name] = id
				n.mods = append(n.mods, module{name: name, kind: Sink})
			}
			dests = append(dests, id)
		}
		n.mods[i].dests = dests
	}

	// register conjunction inputs
	for src := range n.mods {
		for _, dst := range n.mods[src].dests {
			n.mods[dst].register(ID(src))
		}
	}

	n.log.Debug("network built",
		zap.Int("modules", len(n.mods)),
		zap.Int("declared", len(decls)),
		zap.String("entry", n.mods[n.entry].name))
	return n, nil
}

// Entry returns the ID of the broadcaster.
//
func (n *Network) Entry() ID { return n.entry }

// Len returns the number of modules in the network, sinks included.
//
func (n *Network) Len() int { return len(n.mods) }

// Lookup returns the ID of the named module.
//
func (n *Network) Lookup(name string) (ID, bool) {
	id, ok := n.ids[name]
	return id, ok
}

// Name returns the name of module id. The name of Button is "button".
//
func (n *Network) Name(id ID) string {
	if id == Button {
		return "button"
	}
	return n.mods[id].name
}

// Kind returns the kind of module id.
//
func (n *Network) Kind(id ID) Kind { return n.mods[id].kind }

// Dests returns the destinations of module id in edge order.
//
func (n *Network) Dests(id ID) []ID {
	return append([]ID(nil), n.mods[id].dests...)
}

// Inputs returns the registered inputs of a conjunction, in registration
// order. It returns nil for other kinds.
//
func (n *Network) Inputs(id ID) []ID {
	return append([]ID(nil), n.mods[id].ins...)
}

// Predecessors returns the modules with at least one edge to id, in ID order.
//
func (n *Network) Predecessors(id ID) []ID {
	var ps []ID
	for src := range n.mods {
		if slices.Contains(n.mods[src].dests, id) {
			ps = append(ps, ID(src))
		}
	}
	return ps
}

// Presses returns the number of button presses since the network was built
// or last reset.
//
func (n *Network) Presses() uint64 { return n.presses }

// Reset restores the initial state: all flip-flops off, all conjunction
// inputs low and the press counter at 0.
//
func (n *Network) Reset() {
	for i := range n.mods {
		n.mods[i].reset()
	}
	n.presses = 0
}

// Clone returns an independent copy of the network in its current state.
//
func (n *Network) Clone() *Network {
	c := &Network{
		mods:    make([]module, len(n.mods)),
		ids:     n.ids,
		entry:   n.entry,
		presses: n.presses,
		log:     n.log,
	}
	for i := range n.mods {
		c.mods[i] = n.mods[i].clone()
	}
	return c
}

// ModuleState is a snapshot of the mutable state of a module.
//
// On is only meaningful for flip-flops. Memory holds the last level received
// by a conjunction from each of its Inputs, in the same order.
//
type ModuleState struct {
	Name   string
	Kind   Kind
	On     bool
	Memory []bool
}

// State returns a snapshot of all modules, in ID order.
//
func (n *Network) State() []ModuleState {
	s := make([]ModuleState, len(n.mods))
	for i := range n.mods {
		m := &n.mods[i]
		s[i] = ModuleState{
			Name:   m.name,
			Kind:   m.kind,
			On:     m.on,
			Memory: append([]bool(nil), m.mem...),
		}
	}
	return s
}

// Decls returns the declarations of all modules but sinks. Rebuilding a network
// from them needs the AnySink option if it used sinks other than the
// DefaultSinks.
//
func (n *Network) Decls() []Decl {
	return n.decls(false)
}

// DeclsWithSinks is like Decls but also declares sinks, after all other
// modules. The result builds the same network without any Sinks option.
//
func (n *Network) DeclsWithSinks() []Decl {
	return n.decls(true)
}

func (n *Network) decls(sinks bool) []Decl {
	ds := make([]Decl, 0, len(n.mods))
	var ss []Decl
	for i := range n.mods {
		m := &n.mods[i]
		d := Decl{Kind: m.kind, Name: m.name}
		for _, id := range m.dests {
			d.Dests = append(d.Dests, n.mods[id].name)
		}
		if m.kind == Sink {
			if sinks {
				ss = append(ss, d)
			}
			continue
		}
		ds = append(ds, d)
	}
	return append(ds, ss...)
}
