package mmdelk

import (
	"oss.terrastruct.com/mmd/lib/geo"
)

// solvedEdge is a solver edge in absolute coordinates.
type solvedEdge struct {
	route []*geo.Point
	// label centers
	labels []*geo.Point
}

// extraction is a solved ELK graph flattened into absolute coordinates.
type extraction struct {
	boxes map[string]*geo.Box
	// parent id of every node, "" at the top level
	parents map[string]string
	depths  map[string]int
	edges   map[string]*solvedEdge
	width   float64
	height  float64
}

type frame struct {
	node      *ELKNode
	parentAbs *geo.Point
	parentID  string
	depth     int
}

// extract converts relative coordinates to absolute ones walking the tree
// with an explicit stack.
func extract(g *ELKGraph) *extraction {
	ex := &extraction{
		boxes:   make(map[string]*geo.Box),
		parents: make(map[string]string),
		depths:  make(map[string]int),
		edges:   make(map[string]*solvedEdge),
		width:   g.Width,
		height:  g.Height,
	}

	origin := geo.NewPoint(0, 0)
	stack := make([]frame, 0, len(g.Children))
	for i := len(g.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: g.Children[i], parentAbs: origin, depth: 1})
	}
	type listed struct {
		edges []*ELKEdge
		owner *geo.Point
	}
	lists := []listed{{edges: g.Edges, owner: origin}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		abs := f.parentAbs.Translate(f.node.X, f.node.Y)
		ex.boxes[f.node.ID] = geo.NewBox(abs, f.node.Width, f.node.Height)
		ex.parents[f.node.ID] = f.parentID
		ex.depths[f.node.ID] = f.depth
		for _, p := range f.node.Ports {
			ex.boxes[p.ID] = geo.NewBox(abs.Translate(p.X, p.Y), p.Width, p.Height)
		}
		if len(f.node.Edges) > 0 {
			lists = append(lists, listed{edges: f.node.Edges, owner: abs})
		}

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:      f.node.Children[i],
				parentAbs: abs,
				parentID:  f.node.ID,
				depth:     f.depth + 1,
			})
		}
	}

	for _, l := range lists {
		for _, e := range l.edges {
			offset := l.owner
			if e.Container != "" && e.Container != rootID {
				if b, ok := ex.boxes[e.Container]; ok {
					offset = b.TopLeft
				}
			}
			ex.edges[e.ID] = solveEdge(e, offset)
		}
	}
	return ex
}

func solveEdge(e *ELKEdge, offset *geo.Point) *solvedEdge {
	se := &solvedEdge{}
	for _, s := range e.Sections {
		se.route = append(se.route, offset.Translate(s.Start.X, s.Start.Y))
		for _, bp := range s.BendPoints {
			se.route = append(se.route, offset.Translate(bp.X, bp.Y))
		}
		se.route = append(se.route, offset.Translate(s.End.X, s.End.Y))
	}
	for _, l := range e.Labels {
		se.labels = append(se.labels, offset.Translate(l.X+l.Width/2, l.Y+l.Height/2))
	}
	return se
}

// reassemble concatenates the pieces of a split edge in order and drops the
// duplicated junction points.
func (ex *extraction) reassemble(pieceIDs []string) []*geo.Point {
	var route geo.Points
	for _, id := range pieceIDs {
		se, ok := ex.edges[id]
		if !ok {
			continue
		}
		route = append(route, se.route...)
	}
	return route.Dedupe()
}

// contains reports whether id is ancestorID or nested inside it.
func (ex *extraction) contains(ancestorID, id string) bool {
	for cur := id; cur != ""; cur = ex.parents[cur] {
		if cur == ancestorID {
			return true
		}
	}
	return false
}
