// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"sort"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// directed returns the edges of the network as a gonum graph. If reverse is
// true, all edges are reversed. Self edges are dropped since simple graphs
// cannot hold them.
//
func (n *Network) directed(reverse bool) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range n.mods {
		g.AddNode(simple.Node(i))
	}
	for i := range n.mods {
		for _, d := range n.mods[i].dests {
			if int(d) == i {
				continue
			}
			from, to := simple.Node(i), simple.Node(d)
			if reverse {
				from, to = to, from
			}
			g.SetEdge(g.NewEdge(from, to))
		}
	}
	return g
}

// walk returns the IDs of all nodes reachable from id in g, id included,
// without crossing the entry.
//
func (n *Network) walk(g *simple.DirectedGraph, id ID) []ID {
	var ids []ID
	entry := int64(n.entry)
	b := traverse.BreadthFirst{
		Visit:    func(v graph.Node) { ids = append(ids, ID(v.ID())) },
		Traverse: func(e graph.Edge) bool { return e.To().ID() != entry },
	}
	b.Walk(g, simple.Node(id), nil)
	slices.Sort(ids)
	return ids
}

// Ancestors returns the modules from which a pulse can reach id without going
// through the broadcaster, in ID order. id itself is only included if it is
// part of such a loop.
//
func (n *Network) Ancestors(id ID) []ID {
	all := n.walk(n.directed(true), id)
	i, _ := slices.BinarySearch(all, id)
	others := slices.Delete(slices.Clone(all), i, i+1)
	for _, d := range n.mods[id].dests {
		if _, found := slices.BinarySearch(others, d); d == id || found {
			return all
		}
	}
	return others
}

// Reachable returns the modules that can receive a pulse from a button press,
// in ID order.
//
func (n *Network) Reachable() []ID {
	var ids []ID
	b := traverse.BreadthFirst{
		Visit: func(v graph.Node) { ids = append(ids, ID(v.ID())) },
	}
	b.Walk(n.directed(false), simple.Node(n.entry), nil)
	slices.Sort(ids)
	return ids
}

// Unreachable returns the modules that no button press can ever reach.
//
func (n *Network) Unreachable() []ID {
	r := n.Reachable()
	var ids []ID
	for i := range n.mods {
		if _, found := slices.BinarySearch(r, ID(i)); !found {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Loops returns the feedback loops of the network: sets of modules that can
// all reach each other. Each loop is sorted by ID, loops are sorted by their
// first ID.
//
func (n *Network) Loops() [][]ID {
	var loops [][]ID
	for _, c := range topo.TarjanSCC(n.directed(false)) {
		if len(c) == 1 && !slices.Contains(n.mods[c[0].ID()].dests, ID(c[0].ID())) {
			continue
		}
		l := make([]ID, len(c))
		for i, v := range c {
			l[i] = ID(v.ID())
		}
		slices.Sort(l)
		loops = append(loops, l)
	}
	sort.Slice(loops, func(i, j int) bool { return loops[i][0] < loops[j][0] })
	return loops
}
