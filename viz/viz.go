// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package viz renders networks with graphviz.
//
// Broadcasters are drawn as double circles, flip-flops as boxes, conjunctions
// as diamonds and sinks as plain text. When Config.State is set, flip-flops
// that are on and conjunctions that remember at least one high input are
// filled.
//
package viz

import (
	"io"
	"strconv"

	"github.com/db47h/pulsesim"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"
)

// Font is a font name. Several fonts can be combined with Or.
//
type Font string

// Or returns a font list that falls back to other.
//
func (f Font) Or(other Font) Font {
	return f + "," + other
}

// Common fonts.
//
const (
	Helvetica Font = "Helvetica"
	Arial     Font = "Arial"
	SansSerif Font = "sans-serif"
	Times     Font = "Times"
)

// RankDir is the graph layout direction.
//
type RankDir string

// Layout directions.
//
const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

// Output formats.
//
const (
	DOT  = graphviz.XDOT
	SVG  = graphviz.SVG
	PNG  = graphviz.PNG
	JPEG = graphviz.JPG
)

// FillColor is the color of active modules when Config.State is set.
//
const FillColor = "lightblue"

// Config configures a Writer.
//
type Config struct {
	Name string
	Font
	RankDir
	// Format defaults to DOT.
	Format graphviz.Format
	// State colors modules according to their current state.
	State bool
}

// Writer renders networks.
//
type Writer struct {
	*Config
	g     *cgraph.Graph
	nodes []*cgraph.Node
}

// New returns a new Writer. Zero fields in config are set to their default
// values.
//
func New(config *Config) *Writer {
	if config.Name == "" {
		config.Name = "pulsesim"
	}
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.RankDir == "" {
		config.RankDir = LeftToRight
	}
	if config.Format == "" {
		config.Format = DOT
	}
	return &Writer{Config: config}
}

// ParseFormat returns the graphviz format for a file extension or format name.
//
func ParseFormat(s string) (graphviz.Format, error) {
	switch s {
	case "dot", "gv", "xdot":
		return DOT, nil
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", errors.Errorf("unsupported output format %q", s)
}

var shapes = [...]cgraph.Shape{
	pulsesim.Sink:        cgraph.PlainTextShape,
	pulsesim.Broadcaster: cgraph.DoubleCircleShape,
	pulsesim.FlipFlop:    cgraph.BoxShape,
	pulsesim.Conjunction: cgraph.DiamondShape,
}

func (w *Writer) writeModule(id pulsesim.ID, s *pulsesim.ModuleState) error {
	node, err := w.g.CreateNode("m" + strconv.Itoa(int(id)))
	if err != nil {
		return err
	}
	node.SetShape(shapes[s.Kind])
	node.SetLabel(s.Kind.Prefix() + s.Name)
	// Set ignores attributes not declared on the graph; SafeSet (used by the
	// typed setters) declares them. There is no typed setter for fontname.
	node.SafeSet("fontname", string(w.Font), "")
	if w.State && active(s) {
		node.SetStyle(cgraph.FilledNodeStyle)
		node.SetFillColor(FillColor)
	}
	w.nodes[id] = node
	return nil
}

func active(s *pulsesim.ModuleState) bool {
	if s.On {
		return true
	}
	for _, m := range s.Memory {
		if m {
			return true
		}
	}
	return false
}

func (w *Writer) writeEdges(n *pulsesim.Network, id pulsesim.ID) error {
	for i, d := range n.Dests(id) {
		_, err := w.g.CreateEdge("e"+strconv.Itoa(int(id))+"_"+strconv.Itoa(i), w.nodes[id], w.nodes[d])
		if err != nil {
			return err
		}
	}
	return nil
}

// Flush renders network n to out.
//
func (w *Writer) Flush(out io.Writer, n *pulsesim.Network) error {
	graph := graphviz.New()
	defer func() {
		_ = graph.Close()
	}()
	g, err := graph.Graph()
	if err != nil {
		return errors.Wrap(err, "create graph")
	}
	defer func() {
		_ = g.Close()
	}()
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	g.SetLabel(w.Name)
	w.g = g
	w.nodes = make([]*cgraph.Node, n.Len())

	state := n.State()
	for i := range state {
		if err := w.writeModule(pulsesim.ID(i), &state[i]); err != nil {
			return errors.Wrapf(err, "module %q", state[i].Name)
		}
	}
	for i := range state {
		if err := w.writeEdges(n, pulsesim.ID(i)); err != nil {
			return errors.Wrapf(err, "edges of module %q", state[i].Name)
		}
	}
	if err := graph.Render(g, w.Format, out); err != nil {
		return errors.Wrap(err, "render")
	}
	return nil
}
