package decl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/decl"
	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	data := []struct {
		line string
		d    pulsesim.Decl
		ok   bool
		err  string
	}{
		{"broadcaster -> a, b, c", pulsesim.Decl{Kind: pulsesim.Broadcaster, Name: "broadcaster", Dests: []string{"a", "b", "c"}}, true, ""},
		{"%a -> b", pulsesim.Decl{Kind: pulsesim.FlipFlop, Name: "a", Dests: []string{"b"}}, true, ""},
		{"&inv->a,b", pulsesim.Decl{Kind: pulsesim.Conjunction, Name: "inv", Dests: []string{"a", "b"}}, true, ""},
		{"  %c ->   ", pulsesim.Decl{Kind: pulsesim.FlipFlop, Name: "c"}, true, ""},
		{"%a_1 -> rx # comment", pulsesim.Decl{Kind: pulsesim.FlipFlop, Name: "a_1", Dests: []string{"rx"}}, true, ""},
		{"", pulsesim.Decl{}, false, ""},
		{"   # comment only", pulsesim.Decl{}, false, ""},
		{"a -> b", pulsesim.Decl{}, false, `col 1: missing '%' or '&' before module name, got name "a"`},
		{"%a b", pulsesim.Decl{}, false, `col 4: expected '->' after module name, got name "b"`},
		{"%a", pulsesim.Decl{}, false, `col 3: expected '->' after module name, got end of line`},
		{"% -> b", pulsesim.Decl{}, false, `col 3: expected module name, got '->'`},
		{"%a -> b,", pulsesim.Decl{}, false, `col 9: expected destination name, got end of line`},
		{"%a -> b c", pulsesim.Decl{}, false, `col 9: expected ',' or end of line, got name "c"`},
		{"%a -> b; c", pulsesim.Decl{}, false, `col 8: expected ',' or end of line, got character ";"`},
		{"%a - b", pulsesim.Decl{}, false, `col 4: expected '->' after module name, got character "-"`},
	}
	for _, d := range data {
		t.Run(d.line, func(t *testing.T) {
			got, ok, err := decl.ParseLine(d.line)
			if err != nil {
				if err.Error() != d.err {
					t.Fatalf("got error %q, expected %q", err, d.err)
				}
				return
			}
			if d.err != "" {
				t.Fatalf("expected error %q", d.err)
			}
			if ok != d.ok {
				t.Fatalf("got ok %v, expected %v", ok, d.ok)
			}
			if diff := cmp.Diff(d.d, got); ok && diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	src := `# example
broadcaster -> a

%a -> inv, con
&inv -> b
%b -> con
&con -> output
`
	ds, err := decl.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 5 {
		t.Fatalf("got %d declarations", len(ds))
	}
	if ds[4].Kind != pulsesim.Conjunction || ds[4].Name != "con" {
		t.Fatalf("got %+v", ds[4])
	}

	_, err = decl.ParseString("broadcaster -> a\n%a -> b\n&x y\n")
	if err == nil || !strings.HasPrefix(err.Error(), "line 3: ") {
		t.Fatalf("got error %v", err)
	}
}

func TestWrite(t *testing.T) {
	src := "broadcaster -> a, b\n%a -> b\n&b -> rx\n%c ->\n"
	ds, err := decl.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = decl.Write(&buf, ds); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(src, buf.String()); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}

	err = decl.Write(&buf, []pulsesim.Decl{{Kind: pulsesim.Sink, Name: "rx"}})
	if err == nil {
		t.Fatal("sink written in text format")
	}
}
