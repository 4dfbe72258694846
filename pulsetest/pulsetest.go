// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pulsetest provides networks and utility functions for testing.
//
package pulsetest

import (
	"math/bits"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/decl"
	"github.com/google/go-cmp/cmp"
)

// Standard networks.
//
const (
	// Chain is a broadcaster feeding a chain of flip-flops with no loop.
	Chain = `broadcaster -> a, b, c
%a -> b
%b -> c
%c ->
`
	// Loop feeds the last flip-flop of Chain back through an inverter.
	// One press sends 8 low and 4 high pulses and leaves it in its initial
	// state.
	Loop = `broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a
`
	// Output cycles every 4 presses and sends pulses to an output sink.
	Output = `broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output
`
	// Race is sensitive to delivery order: con only sees both flip-flops on
	// if b's pulse is delivered before a is toggled again.
	Race = `broadcaster -> b, a, a
%a -> con
%b -> con
&con -> output
`
)

// Build parses src and builds a network, failing the test on error.
//
func Build(t testing.TB, src string, opts ...pulsesim.Option) *pulsesim.Network {
	t.Helper()
	ds, err := decl.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	n, err := pulsesim.Build(ds, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// Lookup returns the ID of the named module, failing the test if it does not
// exist.
//
func Lookup(t testing.TB, n *pulsesim.Network, name string) pulsesim.ID {
	t.Helper()
	id, ok := n.Lookup(name)
	if !ok {
		t.Fatalf("no module %q", name)
	}
	return id
}

// Counters returns a network made of one binary counter per period, converging
// into the conjunction "hub" that feeds "rx".
//
// Counter i counts presses with flip-flops "q<i>b0", "q<i>b1", ... The
// conjunction "q<i>d" watches the bits set in the period; when they are all on
// it resets the counter to zero and makes the inverter "q<i>f" send a high
// pulse to the hub. "q<i>f" thus sends high exactly on multiples of the
// period.
//
// Periods must be odd since the reset adds one to the counter through b0.
//
func Counters(periods ...int) string {
	var b strings.Builder
	var entry []string
	for i, p := range periods {
		if p <= 0 || p&1 == 0 {
			panic("period " + strconv.Itoa(p) + " is not a positive odd number")
		}
		q := "q" + strconv.Itoa(i)
		bit := func(j int) string { return q + "b" + strconv.Itoa(j) }
		entry = append(entry, bit(0))

		width := bits.Len(uint(p))
		var reset []string
		for j := 0; j < width; j++ {
			var dests []string
			if j < width-1 {
				dests = append(dests, bit(j+1))
			}
			if p&(1<<uint(j)) != 0 {
				dests = append(dests, q+"d")
			} else {
				reset = append(reset, bit(j))
			}
			writeDecl(&b, "%", bit(j), dests)
		}
		reset = append(reset, bit(0), q+"f")
		writeDecl(&b, "&", q+"d", reset)
		writeDecl(&b, "&", q+"f", []string{"hub"})
	}
	writeDecl(&b, "&", "hub", []string{"rx"})
	return "broadcaster -> " + strings.Join(entry, ", ") + "\n" + b.String()
}

func writeDecl(b *strings.Builder, prefix, name string, dests []string) {
	b.WriteString(prefix)
	b.WriteString(name)
	b.WriteString(" -> ")
	b.WriteString(strings.Join(dests, ", "))
	b.WriteByte('\n')
}

// ComparePresses presses the button on n1 and n2 the given number of times
// and fails the test as soon as their tallies or states differ.
//
func ComparePresses(t *testing.T, n1, n2 *pulsesim.Network, presses int) {
	t.Helper()
	if d := cmp.Diff(n1.State(), n2.State()); d != "" {
		t.Fatalf("initial states differ (-n1 +n2):\n%s", d)
	}
	for i := 1; i <= presses; i++ {
		t1, err := n1.Press()
		if err != nil {
			t.Fatal(err)
		}
		t2, err := n2.Press()
		if err != nil {
			t.Fatal(err)
		}
		if t1 != t2 {
			t.Fatalf("press %d: tally %+v != %+v", i, t1, t2)
		}
		if d := cmp.Diff(n1.State(), n2.State()); d != "" {
			t.Fatalf("press %d: states differ (-n1 +n2):\n%s", i, d)
		}
	}
}
