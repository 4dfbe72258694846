package filter_test

import (
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/filter"
	"github.com/db47h/pulsesim/pulsetest"
	"github.com/pkg/errors"
)

func TestCompile(t *testing.T) {
	data := []struct {
		src string
		ok  bool
	}{
		{`to == "rx" && low`, true},
		{`from in ["a", "b"] and high`, true},
		{`press % 3 == 0 || kind == "sink"`, true},
		{`to`, false},
		{`press +`, false},
		{`unknown == 1`, false},
	}
	for _, d := range data {
		_, err := filter.Compile(d.src)
		if (err == nil) != d.ok {
			t.Errorf("%q: got error %v", d.src, err)
		}
	}
}

func TestMatch(t *testing.T) {
	e := filter.Env{From: "a", To: "inv", Kind: "conjunction", High: true, Press: 4}
	data := []struct {
		src  string
		want bool
	}{
		{`from == "a" && to == "inv"`, true},
		{`low`, false},
		{`high && press == 4`, true},
		{`kind == "flipflop"`, false},
		{`press > 3`, true},
	}
	for _, d := range data {
		f, err := filter.Compile(d.src)
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.Match(e)
		if err != nil {
			t.Fatal(err)
		}
		if got != d.want {
			t.Errorf("%q: got %v, expected %v", d.src, got, d.want)
		}
	}
}

func TestTrace(t *testing.T) {
	n := pulsetest.Build(t, pulsetest.Loop)
	f, err := filter.Compile(`to == "inv"`)
	if err != nil {
		t.Fatal(err)
	}
	var got []bool
	tally, err := f.Trace(n, func(p pulsesim.Pulse) { got = append(got, p.High) })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("got %v, expected [true false]", got)
	}
	if tally != (pulsesim.Tally{Low: 8, High: 4}) {
		t.Errorf("got tally %+v", tally)
	}
}

func TestPressUntil(t *testing.T) {
	data := []struct {
		name string
		src  string
		expr string
		want uint64
	}{
		{"counter_3", pulsetest.Counters(3), `to == "rx" && low`, 3},
		{"counters", pulsetest.Counters(3, 5, 7, 11), `to == "rx" && low`, 1155},
		{"output", pulsetest.Output, `to == "output" && from == "con" && high`, 1},
		{"press", pulsetest.Chain, `press == 7`, 7},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			n := pulsetest.Build(t, d.src)
			f, err := filter.Compile(d.expr)
			if err != nil {
				t.Fatal(err)
			}
			got, err := filter.PressUntil(n, f, 2000)
			if err != nil {
				t.Fatal(err)
			}
			if got != d.want {
				t.Errorf("got %d, expected %d", got, d.want)
			}
		})
	}

	n := pulsetest.Build(t, pulsetest.Chain)
	f, err := filter.Compile(`to == "c" && from == "a"`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = filter.PressUntil(n, f, 10)
	if errors.Cause(err) != pulsesim.ErrLimitReached {
		t.Fatalf("got error %v, expected %v", err, pulsesim.ErrLimitReached)
	}
}
