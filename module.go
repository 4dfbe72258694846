// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ID is the handle of a module in a Network.
//
type ID int

// Button is the sender of the pulse injected by a button press.
//
const Button ID = -1

// Kind is the kind of a module.
//
type Kind int

// Module kinds.
//
const (
	Sink Kind = iota
	Broadcaster
	FlipFlop
	Conjunction
)

var kindNames = [...]string{
	Sink:        "sink",
	Broadcaster: "broadcaster",
	FlipFlop:    "flipflop",
	Conjunction: "conjunction",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Prefix returns the declaration prefix for k: "%" for flip-flops, "&" for
// conjunctions and "" for all other kinds.
//
func (k Kind) Prefix() string {
	switch k {
	case FlipFlop:
		return "%"
	case Conjunction:
		return "&"
	}
	return ""
}

// ParseKind returns the Kind for the given name or declaration prefix.
//
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "broadcaster":
		return Broadcaster, nil
	case "flipflop", "flip-flop", "%":
		return FlipFlop, nil
	case "conjunction", "&":
		return Conjunction, nil
	case "sink", "output":
		return Sink, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Decl declares a module: its kind, name and destinations in edge order.
//
type Decl struct {
	Kind  Kind
	Name  string
	Dests []string
}

// module is a node in the network arena. Only on, mem and highs change once
// the network is built.
//
type module struct {
	name  string
	kind  Kind
	dests []ID

	// flip-flop state.
	on bool

	// conjunction state. slot maps an input ID to its index in mem.
	slot  map[ID]int
	ins   []ID
	mem   []bool
	highs int
}

// register adds src to the inputs of a conjunction. Duplicates are ignored.
//
func (m *module) register(src ID) {
	if m.kind != Conjunction {
		return
	}
	if m.slot == nil {
		m.slot = make(map[ID]int)
	}
	if _, ok := m.slot[src]; ok {
		return
	}
	m.slot[src] = len(m.ins)
	m.ins = append(m.ins, src)
	m.mem = append(m.mem, false)
}

// receive delivers a pulse sent by from. It returns the response level and
// whether the module responds at all.
//
func (m *module) receive(high bool, from ID) (out, emit bool, err error) {
	switch m.kind {
	case Broadcaster:
		return high, true, nil
	case FlipFlop:
		if high {
			return false, false, nil
		}
		m.on = !m.on
		return m.on, true, nil
	case Conjunction:
		i, ok := m.slot[from]
		if !ok {
			return false, false, errors.Wrapf(ErrUnregisteredSender, "conjunction %q, sender %d", m.name, from)
		}
		if m.mem[i] != high {
			m.mem[i] = high
			if high {
				m.highs++
			} else {
				m.highs--
			}
		}
		return m.highs != len(m.mem), true, nil
	}
	return false, false, nil
}

func (m *module) reset() {
	m.on = false
	for i := range m.mem {
		m.mem[i] = false
	}
	m.highs = 0
}

// clone returns a copy of m that shares its immutable parts.
//
func (m *module) clone() module {
	c := *m
	if m.mem != nil {
		c.mem = append([]bool(nil), m.mem...)
	}
	return c
}
