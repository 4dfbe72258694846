package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/pulsesim/pulsetest"
	"github.com/db47h/pulsesim/viz"
)

func writeInput(t *testing.T, name, src string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--env", filepath.Join(t.TempDir(), "none.env"), "--log-level", "error"))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func expect(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("%q not found in output:\n%s", w, out)
		}
	}
}

func TestRun(t *testing.T) {
	loop := writeInput(t, "loop.txt", pulsetest.Loop)
	expect(t, execute(t, "run", "-i", loop, "-n", "1000"), "low: 8000\n", "high: 4000\n", "Result: 32000000 in ")
	out := writeInput(t, "output.txt", pulsetest.Output)
	expect(t, execute(t, "run", "-i", out, "-n", "1000"), "Result: 11687500 in ")
}

func TestPredict(t *testing.T) {
	in := writeInput(t, "counters.txt", pulsetest.Counters(3, 5, 7, 11))
	expect(t, execute(t, "predict", "-i", in, "--verify", "-w", "2"), "q0f: 3\n", "q3f: 11\n", "Result: 1155 in ")
	expect(t, execute(t, "until", "-i", in, `to == "rx" && low`), "Result: 1155 in ")
	expect(t, execute(t, "first", "-i", in, "q2f"), "Result: 7 in ")
}

func TestTrace(t *testing.T) {
	in := writeInput(t, "loop.txt", pulsetest.Loop)
	out := execute(t, "trace", "-i", in, "-n", "2")
	expect(t, out, "1 button -low-> broadcaster\n", "2 inv -high-> a\n", "low: 16\n", "high: 8\n")
	out = execute(t, "trace", "-i", in, "-n", "1", "--filter", `to == "inv"`)
	if c := strings.Count(out, "->"); c != 2 {
		t.Errorf("got %d pulses, expected 2:\n%s", c, out)
	}
}

func TestInspect(t *testing.T) {
	in := writeInput(t, "loop.txt", pulsetest.Loop)
	expect(t, execute(t, "inspect", "-i", in, "inv"),
		"modules: 5\n", "flipflop: 3\n", "loops: 1\n", "  a, b, c, inv\n", "&inv (conjunction)\n", "  inputs: c\n")
}

func TestConvert(t *testing.T) {
	in := writeInput(t, "output.txt", pulsetest.Output)
	yml := filepath.Join(t.TempDir(), "output.yaml")
	execute(t, "convert", "-i", in, "-o", yml)
	expect(t, execute(t, "run", "-i", yml, "-n", "1000"), "Result: 11687500 in ")
	expect(t, execute(t, "convert", "-i", yml, "-o", "-"), pulsetest.Output)
}

func TestViz(t *testing.T) {
	in := writeInput(t, "output.txt", pulsetest.Output)
	expect(t, execute(t, "viz", "-i", in, "-o", "-", "-f", "dot", "-n", "1", "--state"),
		"label=output", "diamond", "style=filled", "fillcolor="+viz.FillColor)

	gv := filepath.Join(t.TempDir(), "output.gv")
	execute(t, "viz", "-i", in, "-o", gv, "-f", "", "-n", "0", "--state=false")
	b, err := os.ReadFile(gv)
	if err != nil {
		t.Fatal(err)
	}
	expect(t, string(b), "%a", "doublecircle")
	if strings.Contains(string(b), "filled") {
		t.Errorf("modules filled without --state:\n%s", b)
	}
}

func TestConvert_sinks(t *testing.T) {
	in := writeInput(t, "sinks.yaml", `modules:
  - name: broadcaster
    kind: broadcaster
    to: [a]
  - name: a
    kind: flipflop
    to: [out]
  - name: out
    kind: sink
`)
	out := execute(t, "convert", "-i", in, "-o", "-", "--to", "yaml")
	expect(t, out, "name: out", "kind: sink")

	// the YAML output builds without declaring extra sinks
	yml := writeInput(t, "again.yaml", out)
	expect(t, execute(t, "convert", "-i", yml, "-o", "-", "--to", "text"), "%a -> out")
}
