package pulsesim_test

import (
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/pulsetest"
	"github.com/google/go-cmp/cmp"
)

func TestLoops(t *testing.T) {
	data := []struct {
		name string
		src  string
		want [][]pulsesim.ID
	}{
		{"chain", pulsetest.Chain, nil},
		{"loop", pulsetest.Loop, [][]pulsesim.ID{{1, 2, 3, 4}}},
		{"self", "broadcaster -> a\n%a -> a, b\n%b ->\n", [][]pulsesim.ID{{1}}},
		{"two", "broadcaster -> a, c\n%a -> b\n%b -> a\n%c -> d\n&d -> c\n", [][]pulsesim.ID{{1, 2}, {3, 4}}},
		// the reset path of each counter loops back into its first bit
		{"counters", pulsetest.Counters(3), [][]pulsesim.ID{{1, 2, 3}}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			n := pulsetest.Build(t, d.src)
			if diff := cmp.Diff(d.want, n.Loops()); diff != "" {
				t.Errorf("loops (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAncestors(t *testing.T) {
	data := []struct {
		name   string
		src    string
		target string
		want   []string
	}{
		{"chain", pulsetest.Chain, "c", []string{"a", "b"}},
		{"loop", pulsetest.Loop, "inv", []string{"a", "b", "c", "inv"}},
		{"entry_child", pulsetest.Chain, "a", nil},
		{"self", "broadcaster -> a\n%a -> a\n", "a", []string{"a"}},
		{"hub", pulsetest.Counters(3), "q0f", []string{"q0b0", "q0b1", "q0d"}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			n := pulsetest.Build(t, d.src)
			var got []string
			for _, id := range n.Ancestors(pulsetest.Lookup(t, n, d.target)) {
				got = append(got, n.Name(id))
			}
			if diff := cmp.Diff(d.want, got); diff != "" {
				t.Errorf("ancestors (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	n := pulsetest.Build(t, "broadcaster -> a\n%a -> rx\n%z -> a\n&y -> z\n")
	var got []string
	for _, id := range n.Unreachable() {
		got = append(got, n.Name(id))
	}
	if d := cmp.Diff([]string{"z", "y"}, got); d != "" {
		t.Errorf("unreachable (-want +got):\n%s", d)
	}
	if r := n.Reachable(); len(r) != 3 {
		t.Errorf("reachable: %v", r)
	}
}
