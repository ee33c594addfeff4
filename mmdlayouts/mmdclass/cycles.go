package mmdclass

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"oss.terrastruct.com/mmd/mmdmodel"
)

// breakCycles picks relationships to hand to the solver reversed so the
// leveled graph is acyclic. Inside every strongly connected component, edges
// pointing from a later declared class to an earlier one are reversed.
// Self relationships never count.
func breakCycles(classes []*mmdmodel.ClassNode, rels []*mmdmodel.Relationship) map[int]bool {
	index := make(map[string]int64, len(classes))
	g := simple.NewDirectedGraph()
	for i, c := range classes {
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, r := range rels {
		from, okFrom := index[r.From]
		to, okTo := index[r.To]
		if !okFrom || !okTo || from == to {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
	}

	component := make(map[int64]int)
	for i, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		for _, n := range scc {
			component[n.ID()] = i + 1
		}
	}

	reversed := make(map[int]bool)
	for i, r := range rels {
		from, okFrom := index[r.From]
		to, okTo := index[r.To]
		if !okFrom || !okTo || from == to {
			continue
		}
		if c := component[from]; c != 0 && c == component[to] && from > to {
			reversed[i] = true
		}
	}
	return reversed
}
