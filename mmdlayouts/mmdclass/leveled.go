package mmdclass

import (
	"context"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdmodel"
)

// LeveledSolver assigns nodes to ranks and positions them, filling in the X,
// Y of every node and the route of every edge in place.
type LeveledSolver interface {
	Solve(ctx context.Context, g *LeveledGraph) error
}

type LeveledNode struct {
	ID string
	// top left after solving
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type LeveledEdge struct {
	ID          string
	Src         string
	Dst         string
	LabelWidth  float64
	LabelHeight float64

	Route         []*geo.Point
	LabelPosition *geo.Point
}

// LeveledGraph is acyclic: every edge points from a lower to a higher rank.
type LeveledGraph struct {
	Direction   mmdmodel.Direction
	NodeSpacing float64
	RankSpacing float64
	Nodes       []*LeveledNode
	Edges       []*LeveledEdge

	Width  float64
	Height float64
}

func (g *LeveledGraph) Node(id string) *LeveledNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
