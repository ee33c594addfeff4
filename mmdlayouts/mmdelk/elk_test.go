package mmdelk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
)

// rowSolver lines top level nodes up left to right and draws every root edge
// from the right middle of its source to the upper left of its target.
type rowSolver struct {
	startX float64
}

func (s rowSolver) Solve(ctx context.Context, g *ELKGraph) (*ELKGraph, error) {
	byID := make(map[string]*ELKNode)
	x := s.startX
	for _, n := range g.Children {
		n.X, n.Y = x, 0
		x += n.Width + 50
		g.Height = max(g.Height, n.Height)
		byID[n.ID] = n
	}
	g.Width = x
	for _, e := range g.Edges {
		src, dst := byID[e.Sources[0]], byID[e.Targets[0]]
		e.Sections = []ELKEdgeSection{{
			Start: ELKPoint{X: src.X + src.Width, Y: src.Y + src.Height/2},
			End:   ELKPoint{X: dst.X, Y: dst.Y + dst.Height/4},
		}}
		for _, l := range e.Labels {
			l.X = (src.X+src.Width+dst.X)/2 - l.Width/2
			l.Y = -l.Height
		}
	}
	return g, nil
}

type failingSolver struct{}

func (failingSolver) Solve(context.Context, *ELKGraph) (*ELKGraph, error) {
	return nil, errors.New("solver exploded")
}

func testGraph() *mmdmodel.Graph {
	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	for _, id := range []string{"A", "B", "C", "D"} {
		g.AddNode(id, "", "")
	}
	g.Subgraphs = []*mmdmodel.Subgraph{{
		ID:    "sg1",
		Label: "one",
		Nodes: []string{"A", "B"},
	}}
	g.AddEdge("A", "B", "", mmdmodel.EdgeStyle{})
	g.AddEdge("C", "D", "", mmdmodel.EdgeStyle{})
	g.AddEdge("A", "C", "", mmdmodel.EdgeStyle{})
	g.AddEdge("X", "A", "", mmdmodel.EdgeStyle{})
	g.AddEdge("sg1", "D", "", mmdmodel.EdgeStyle{})
	return g
}

func TestPartitionEdges(t *testing.T) {
	t.Parallel()

	g := testGraph()
	p := partitionEdges(g, g.Membership())

	require.Len(t, p.internal["sg1"], 1)
	assert.Equal(t, "e0", p.internal["sg1"][0].ID)
	require.Len(t, p.root, 1)
	assert.Equal(t, "e1", p.root[0].ID)
	require.Len(t, p.cross, 1)
	assert.Equal(t, "e2", p.cross[0].ID)
	require.Len(t, p.skipped, 2)
	assert.Equal(t, "e3", p.skipped[0].ID)
	assert.Equal(t, "e4", p.skipped[1].ID)
}

func TestFlattenedConversion(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := testGraph()
	c := newConverter(ctx, g, DefaultOpts, textmeasure.NewRuler())
	elkGraph := c.convert()

	assert.False(t, c.separate)
	assert.Equal(t, IncludeChildren, elkGraph.LayoutOptions.HierarchyHandling)
	// every edge on the root, unsplit
	assert.Len(t, elkGraph.Edges, 3)
	assert.Equal(t, []string{"e2"}, c.pieces["e2"])

	require.Len(t, elkGraph.Children, 3)
	sg := elkGraph.Children[0]
	assert.Equal(t, "sg1", sg.ID)
	require.Len(t, sg.Children, 2)
	p := ParsePadding(sg.LayoutOptions.Padding)
	assert.Greater(t, p.Top, ParsePadding(DefaultOpts.Padding).Top)
	assert.Empty(t, sg.Ports)
}

func TestSeparateConversionSplitsCrossEdges(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := testGraph()
	g.Subgraphs[0].Direction = mmdmodel.DirectionLR
	c := newConverter(ctx, g, DefaultOpts, textmeasure.NewRuler())
	elkGraph := c.convert()

	assert.True(t, c.separate)
	assert.Equal(t, SeparateChildren, elkGraph.LayoutOptions.HierarchyHandling)

	sg := c.nodes["sg1"]
	assert.Equal(t, Right, sg.LayoutOptions.Direction)
	assert.Equal(t, FixedSide, sg.LayoutOptions.PortConstraints)
	require.Len(t, sg.Ports, 1)
	assert.Equal(t, "e2$sg1$out", sg.Ports[0].ID)
	assert.Equal(t, East, sg.Ports[0].LayoutOptions.PortSide)

	assert.Equal(t, []string{"e2$0", "e2$1"}, c.pieces["e2"])
	// internal edge and the inner piece live in the subgraph
	var inner []string
	for _, e := range sg.Edges {
		inner = append(inner, e.ID)
	}
	assert.Equal(t, []string{"e0", "e2$0"}, inner)
	var root []string
	for _, e := range elkGraph.Edges {
		root = append(root, e.ID)
	}
	assert.Equal(t, []string{"e1", "e2$1"}, root)
	assert.Equal(t, []string{"e2$sg1$out"}, elkGraph.Edges[1].Sources)
}

func TestCrossEdgeIntoNestedSubgraph(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	g.AddNode("A", "", "")
	g.AddNode("B", "", "")
	g.Subgraphs = []*mmdmodel.Subgraph{{
		ID:        "outer",
		Direction: mmdmodel.DirectionLR,
		Subgraphs: []*mmdmodel.Subgraph{{
			ID:    "inner",
			Nodes: []string{"B"},
		}},
	}}
	g.AddEdge("A", "B", "hi", mmdmodel.EdgeStyle{})

	c := newConverter(ctx, g, DefaultOpts, textmeasure.NewRuler())
	c.convert()

	assert.Equal(t, []string{"e0$0", "e0$1", "e0$2"}, c.pieces["e0"])
	assert.Equal(t, "e0$1", c.labelPiece["e0"])
	require.Len(t, c.nodes["outer"].Ports, 1)
	assert.Equal(t, West, c.nodes["outer"].Ports[0].LayoutOptions.PortSide)
	require.Len(t, c.nodes["inner"].Ports, 1)
	assert.Equal(t, "e0$inner$in", c.nodes["inner"].Ports[0].ID)
}

func TestExtractAndReassemble(t *testing.T) {
	t.Parallel()

	solved := &ELKGraph{
		Width:  300,
		Height: 300,
		Children: []*ELKNode{{
			ID: "sg", X: 100, Y: 100, Width: 100, Height: 100,
			Ports: []*ELKPort{{ID: "p", X: 50, Y: 100}},
			Children: []*ELKNode{{
				ID: "A", X: 20, Y: 20, Width: 20, Height: 20,
			}},
			Edges: []*ELKEdge{{
				ID: "e$0",
				Sections: []ELKEdgeSection{{
					Start: ELKPoint{X: 20, Y: 30},
					End:   ELKPoint{X: 50, Y: 100},
					BendPoints: []ELKPoint{
						{X: 20, Y: 60},
						{X: 50, Y: 60},
					},
				}},
			}},
		}},
		Edges: []*ELKEdge{{
			ID: "e$1",
			Sections: []ELKEdgeSection{{
				Start: ELKPoint{X: 150, Y: 200},
				End:   ELKPoint{X: 150, Y: 260},
			}},
		}},
	}

	ex := extract(solved)
	assert.Equal(t, 120., ex.boxes["A"].TopLeft.X)
	assert.Equal(t, "sg", ex.parents["A"])
	assert.Equal(t, 2, ex.depths["A"])
	assert.Equal(t, 150., ex.boxes["p"].TopLeft.X)
	assert.True(t, ex.contains("sg", "A"))
	assert.False(t, ex.contains("A", "sg"))

	route := ex.reassemble([]string{"e$0", "e$1"})
	expected := []*geo.Point{
		geo.NewPoint(120, 130),
		geo.NewPoint(120, 160),
		geo.NewPoint(150, 160),
		geo.NewPoint(150, 200),
		geo.NewPoint(150, 260),
	}
	assert.Equal(t, expected, route)
}

func TestZBend(t *testing.T) {
	t.Parallel()

	ex := &extraction{boxes: map[string]*geo.Box{}, parents: map[string]string{}}
	o := newOrthogonalizer(ex, nil, true)
	route := o.rewrite([]*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(100, 100)}, "a", "b")
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(0, 0),
		geo.NewPoint(0, 50),
		geo.NewPoint(100, 50),
		geo.NewPoint(100, 100),
	}, route)

	o = newOrthogonalizer(ex, nil, false)
	route = o.rewrite([]*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(100, 100)}, "a", "b")
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(0, 0),
		geo.NewPoint(50, 0),
		geo.NewPoint(50, 100),
		geo.NewPoint(100, 100),
	}, route)
}

func TestMarginRoute(t *testing.T) {
	t.Parallel()

	ex := &extraction{
		boxes: map[string]*geo.Box{
			"g": geo.NewBox(geo.NewPoint(100, 100), 100, 100),
		},
		parents: map[string]string{"n": "g"},
	}
	o := newOrthogonalizer(ex, []string{"g"}, true)

	route := o.rewrite([]*geo.Point{geo.NewPoint(150, 50), geo.NewPoint(160, 250)}, "a", "b")
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(150, 50),
		geo.NewPoint(80, 50),
		geo.NewPoint(80, 250),
		geo.NewPoint(160, 250),
	}, route)

	// next lane goes right
	route = o.rewrite([]*geo.Point{geo.NewPoint(150, 50), geo.NewPoint(160, 250)}, "a", "b")
	assert.Equal(t, 220., route[1].X)

	// back left, one step further out; a group holding an endpoint does not
	// block the lane
	route = o.rewrite([]*geo.Point{geo.NewPoint(150, 50), geo.NewPoint(160, 250)}, "a", "n")
	assert.Equal(t, 70., route[1].X)
}

func TestMarginRouteFlowDirections(t *testing.T) {
	t.Parallel()

	newEx := func() *extraction {
		return &extraction{
			boxes: map[string]*geo.Box{
				"g1": geo.NewBox(geo.NewPoint(100, 120), 60, 40),
				"g2": geo.NewBox(geo.NewPoint(200, 0), 60, 40),
			},
			parents: map[string]string{},
		}
	}
	testCases := []struct {
		name     string
		vertical bool
	}{
		{name: "td", vertical: true},
		{name: "lr", vertical: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			o := newOrthogonalizer(newEx(), []string{"g1", "g2"}, tc.vertical)
			route := o.rewrite([]*geo.Point{geo.NewPoint(50, 100), geo.NewPoint(250, 200)}, "a", "b")
			assert.Equal(t, []*geo.Point{
				geo.NewPoint(50, 100),
				geo.NewPoint(80, 100),
				geo.NewPoint(80, 200),
				geo.NewPoint(250, 200),
			}, route)

			route = o.rewrite([]*geo.Point{geo.NewPoint(50, 100), geo.NewPoint(250, 200)}, "a", "b")
			assert.Equal(t, []*geo.Point{
				geo.NewPoint(50, 100),
				geo.NewPoint(280, 100),
				geo.NewPoint(280, 200),
				geo.NewPoint(250, 200),
			}, route)
		})
	}
}

func TestMarginRouteBlocked(t *testing.T) {
	t.Parallel()

	// endpoints sit between two walls, so both lanes cut through one
	ex := &extraction{
		boxes: map[string]*geo.Box{
			"left":  geo.NewBox(geo.NewPoint(0, 0), 100, 200),
			"right": geo.NewBox(geo.NewPoint(300, 0), 100, 200),
		},
		parents: map[string]string{},
	}
	groups := []string{"left", "right"}
	diagonal := []*geo.Point{geo.NewPoint(150, 50), geo.NewPoint(250, 150)}

	o := newOrthogonalizer(ex, groups, true)
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(150, 50),
		geo.NewPoint(150, 100),
		geo.NewPoint(250, 100),
		geo.NewPoint(250, 150),
	}, o.rewrite(diagonal, "a", "b"))
	assert.Equal(t, 0, o.lanes)

	o = newOrthogonalizer(ex, groups, false)
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(150, 50),
		geo.NewPoint(200, 50),
		geo.NewPoint(200, 150),
		geo.NewPoint(250, 150),
	}, o.rewrite(diagonal, "a", "b"))
}

func TestDropCollinear(t *testing.T) {
	t.Parallel()

	route := dropCollinear([]*geo.Point{
		geo.NewPoint(0, 0),
		geo.NewPoint(0, 10),
		geo.NewPoint(0, 20),
		geo.NewPoint(10, 20),
	})
	assert.Equal(t, []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(0, 20), geo.NewPoint(10, 20)}, route)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := mmdmodel.NewGraph(mmdmodel.DirectionLR)
	g.AddNode("A", "", "")
	g.AddNode("B", "", "")
	e := g.AddEdge("A", "B", "go", mmdmodel.EdgeStyle{ArrowEnd: mmdmodel.ArrowNormal})
	e.SrcLabel, e.DstLabel = "1", "*"

	opts := DefaultOpts
	opts.Solver = rowSolver{}
	out, err := Layout(ctx, mmdmodel.KindFlowchart, g, &opts)
	require.NoError(t, err)

	require.Len(t, out.Nodes, 2)
	a, b := out.Node("A"), out.Node("B")
	assert.Less(t, a.Right(), b.X)

	require.Len(t, out.Edges, 1)
	route := out.Edges[0].Route
	assert.True(t, geo.Route(route).IsOrthogonal())
	assert.Len(t, route, 4)
	assert.Equal(t, a.Right(), route[0].X)
	assert.Equal(t, b.X, route[len(route)-1].X)
	assert.NotNil(t, out.Edges[0].LabelPosition)
	assert.NotNil(t, out.Edges[0].SrcLabelPosition)
	assert.NotNil(t, out.Edges[0].DstLabelPosition)

	// the label sat above the solver's canvas
	assert.GreaterOrEqual(t, out.Edges[0].LabelPosition.Y, 0.)
	assert.Greater(t, a.Y, 0.)
}

func TestLayoutShiftsNegativeCoordinates(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := mmdmodel.NewGraph(mmdmodel.DirectionLR)
	g.AddNode("A", "", "")

	opts := DefaultOpts
	opts.Solver = rowSolver{startX: -40}
	out, err := Layout(ctx, mmdmodel.KindFlowchart, g, &opts)
	require.NoError(t, err)

	assert.Equal(t, CANVAS_MARGIN, out.Nodes[0].X)
	assert.GreaterOrEqual(t, out.Width, out.Nodes[0].Right())
}

func TestLayoutErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	g.AddNode("A", "", "")

	_, err := Layout(ctx, mmdmodel.KindState, g, nil)
	assert.ErrorContains(t, err, "no solver configured")

	opts := DefaultOpts
	opts.Solver = failingSolver{}
	_, err = Layout(ctx, mmdmodel.KindState, g, &opts)
	assert.ErrorContains(t, err, "state")
	assert.ErrorContains(t, err, "solver exploded")

	res := <-LayoutAsync(ctx, mmdmodel.KindER, g, &opts)
	assert.Nil(t, res.Graph)
	assert.ErrorContains(t, res.Err, "er diagram")
}

func TestParsePadding(t *testing.T) {
	t.Parallel()

	p := ParsePadding("[top=50,left=10,bottom=5,right=1]")
	assert.Equal(t, Padding{Top: 50, Left: 10, Bottom: 5, Right: 1}, p)
	assert.Equal(t, "[top=50,left=10,bottom=5,right=1]", p.String())
}
