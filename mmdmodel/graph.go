package mmdmodel

import (
	"fmt"
)

type LineStyle string

const (
	LineSolid     LineStyle = "solid"
	LineDotted    LineStyle = "dotted"
	LineThick     LineStyle = "thick"
	LineInvisible LineStyle = "invisible"
)

type ArrowType string

const (
	ArrowNone   ArrowType = ""
	ArrowNormal ArrowType = "arrow"
	ArrowCircle ArrowType = "circle"
	ArrowCross  ArrowType = "cross"

	// crow's foot markers
	ArrowZeroOrOne  ArrowType = "zero_or_one"
	ArrowExactlyOne ArrowType = "exactly_one"
	ArrowZeroOrMore ArrowType = "zero_or_more"
	ArrowOneOrMore  ArrowType = "one_or_more"
)

type EdgeStyle struct {
	Line       LineStyle
	ArrowStart ArrowType
	ArrowEnd   ArrowType
}

type Node struct {
	ID    string
	Label string
	Shape string
	// Rows are extra lines drawn under the label, e.g. entity attributes.
	Rows    []string
	Classes []string
}

type Edge struct {
	ID    string
	Src   string
	Dst   string
	Label string
	Style EdgeStyle
	// SrcLabel and DstLabel are end labels such as cardinalities.
	SrcLabel string
	DstLabel string
}

type Subgraph struct {
	ID        string
	Label     string
	Direction Direction
	Nodes     []string
	Subgraphs []*Subgraph
}

type Graph struct {
	Direction Direction
	Nodes     map[string]*Node
	// NodeOrder is declaration order and drives every iteration.
	NodeOrder []string
	Edges     []*Edge
	Subgraphs []*Subgraph
	ClassDefs map[string]map[string]string
}

func NewGraph(dir Direction) *Graph {
	return &Graph{
		Direction: dir.Or(DirectionTB),
		Nodes:     make(map[string]*Node),
		ClassDefs: make(map[string]map[string]string),
	}
}

func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// AddNode declares id if needed. A non-empty label or shape overrides what an
// earlier declaration set.
func (g *Graph) AddNode(id, label, shape string) *Node {
	n, ok := g.Nodes[id]
	if !ok {
		n = &Node{ID: id, Label: id}
		g.Nodes[id] = n
		g.NodeOrder = append(g.NodeOrder, id)
	}
	if label != "" {
		n.Label = label
	}
	if shape != "" {
		n.Shape = shape
	}
	return n
}

func (g *Graph) AddEdge(src, dst, label string, style EdgeStyle) *Edge {
	e := &Edge{
		ID:    fmt.Sprintf("e%d", len(g.Edges)),
		Src:   src,
		Dst:   dst,
		Label: label,
		Style: style,
	}
	g.Edges = append(g.Edges, e)
	return e
}

func (g *Graph) OrderedNodes() []*Node {
	out := make([]*Node, 0, len(g.NodeOrder))
	for _, id := range g.NodeOrder {
		if n, ok := g.Nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// WalkSubgraphs visits subgraphs depth first, parents before children.
func (g *Graph) WalkSubgraphs(fn func(sg, parent *Subgraph, depth int)) {
	type frame struct {
		sg     *Subgraph
		parent *Subgraph
		depth  int
	}
	stack := make([]frame, 0, len(g.Subgraphs))
	for i := len(g.Subgraphs) - 1; i >= 0; i-- {
		stack = append(stack, frame{g.Subgraphs[i], nil, 1})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.sg, f.parent, f.depth)
		for i := len(f.sg.Subgraphs) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.sg.Subgraphs[i], f.sg, f.depth + 1})
		}
	}
}

// Subgraph finds a subgraph by id anywhere in the tree.
func (g *Graph) Subgraph(id string) *Subgraph {
	var found *Subgraph
	g.WalkSubgraphs(func(sg, _ *Subgraph, _ int) {
		if found == nil && sg.ID == id {
			found = sg
		}
	})
	return found
}

// Membership maps each node id to its innermost subgraph.
func (g *Graph) Membership() map[string]*Subgraph {
	depths := make(map[string]int)
	out := make(map[string]*Subgraph)
	g.WalkSubgraphs(func(sg, _ *Subgraph, depth int) {
		for _, id := range sg.Nodes {
			if depth > depths[id] {
				depths[id] = depth
				out[id] = sg
			}
		}
	})
	return out
}

// SubgraphParents maps each subgraph id to its parent, nil for top level.
func (g *Graph) SubgraphParents() map[string]*Subgraph {
	out := make(map[string]*Subgraph)
	g.WalkSubgraphs(func(sg, parent *Subgraph, _ int) {
		out[sg.ID] = parent
	})
	return out
}

// Normalize removes every node from all but its innermost subgraph and
// declares nodes that subgraphs reference without a declaration.
func (g *Graph) Normalize() {
	membership := g.Membership()
	g.WalkSubgraphs(func(sg, _ *Subgraph, _ int) {
		kept := sg.Nodes[:0]
		seen := make(map[string]struct{})
		for _, id := range sg.Nodes {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if membership[id] == sg {
				kept = append(kept, id)
				g.AddNode(id, "", "")
			}
		}
		sg.Nodes = kept
	})
}

// EffectiveDirection resolves the direction a subgraph lays out in, walking
// up to the graph direction when unset.
func (g *Graph) EffectiveDirection(sg *Subgraph) Direction {
	parents := g.SubgraphParents()
	for cur := sg; cur != nil; cur = parents[cur.ID] {
		if cur.Direction != DirectionNone {
			return cur.Direction
		}
	}
	return g.Direction
}

// HasDirectionOverride reports whether any subgraph lays out in a direction
// different from the one it would inherit.
func (g *Graph) HasDirectionOverride() bool {
	override := false
	g.WalkSubgraphs(func(sg, parent *Subgraph, _ int) {
		inherited := g.Direction
		if parent != nil {
			inherited = g.EffectiveDirection(parent)
		}
		if sg.Direction != DirectionNone && sg.Direction != inherited {
			override = true
		}
	})
	return override
}
