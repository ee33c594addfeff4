package mmdgraphviz

import (
	"context"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
)

// LeveledSolver ranks and places class diagrams with dot.
type LeveledSolver struct {
	*engine
}

func NewLeveledSolver(ctx context.Context) (*LeveledSolver, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	return &LeveledSolver{engine: e}, nil
}

func (s *LeveledSolver) Solve(ctx context.Context, g *mmdclass.LeveledGraph) (err error) {
	defer xdefer.Errorf(&err, "graphviz leveled layout failed")

	in := &dotInput{
		direction:   g.Direction,
		nodeSpacing: g.NodeSpacing,
		rankSpacing: g.RankSpacing,
	}
	for _, n := range g.Nodes {
		in.nodes = append(in.nodes, &dotNode{id: n.ID, width: n.Width, height: n.Height})
	}
	for _, e := range g.Edges {
		in.edges = append(in.edges, &dotEdge{
			id:          e.ID,
			src:         e.Src,
			dst:         e.Dst,
			labelWidth:  e.LabelWidth,
			labelHeight: e.LabelHeight,
		})
	}

	out, err := s.run(ctx, in)
	if err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if b, ok := out.nodes[n.ID]; ok {
			n.X, n.Y = b.TopLeft.X, b.TopLeft.Y
		}
	}
	for _, e := range g.Edges {
		e.Route = out.routes[e.ID]
		e.LabelPosition = out.labels[e.ID]
	}
	g.Width, g.Height = out.width, out.height
	return nil
}
