package mmdgraphviz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdelk"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdgraphviz"
	"oss.terrastruct.com/mmd/mmdmodel"
)

func TestELKSolverFlat(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	solver, err := mmdgraphviz.NewELKSolver(ctx)
	require.NoError(t, err)
	defer solver.Close()

	g := mmdmodel.NewGraph(mmdmodel.DirectionLR)
	g.AddNode("A", "", "")
	g.AddNode("B", "", "")
	g.AddEdge("A", "B", "", mmdmodel.EdgeStyle{ArrowEnd: mmdmodel.ArrowNormal})

	opts := mmdelk.DefaultOpts
	opts.Solver = solver
	out, err := mmdelk.Layout(ctx, mmdmodel.KindFlowchart, g, &opts)
	require.NoError(t, err)

	a, b := out.Node("A"), out.Node("B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Less(t, a.Right(), b.X)
	require.Len(t, out.Edges, 1)
	assert.GreaterOrEqual(t, len(out.Edges[0].Route), 2)
	assert.True(t, geo.Route(out.Edges[0].Route).IsOrthogonal())
	assert.GreaterOrEqual(t, out.Width, b.Right())
}

func TestELKSolverClusters(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	solver, err := mmdgraphviz.NewELKSolver(ctx)
	require.NoError(t, err)
	defer solver.Close()

	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(id, "", "")
	}
	g.Subgraphs = []*mmdmodel.Subgraph{{ID: "sg", Label: "group", Nodes: []string{"A", "B"}}}
	g.AddEdge("A", "B", "", mmdmodel.EdgeStyle{})
	g.AddEdge("B", "C", "", mmdmodel.EdgeStyle{})

	opts := mmdelk.DefaultOpts
	opts.Solver = solver
	out, err := mmdelk.Layout(ctx, mmdmodel.KindFlowchart, g, &opts)
	require.NoError(t, err)

	sg := out.Group("sg")
	require.NotNil(t, sg)
	for _, id := range []string{"A", "B"} {
		n := out.Node(id)
		assert.True(t, sg.Box().Contains(n.Box().TopLeft), id)
		assert.True(t, sg.Box().Contains(geo.NewPoint(n.Right(), n.Bottom())), id)
	}
	assert.Len(t, out.Edges, 2)
}

func TestELKSolverSeparateChildren(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	solver, err := mmdgraphviz.NewELKSolver(ctx)
	require.NoError(t, err)
	defer solver.Close()

	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	for _, id := range []string{"A", "B", "C"} {
		g.AddNode(id, "", "")
	}
	g.Subgraphs = []*mmdmodel.Subgraph{{
		ID:        "sg",
		Direction: mmdmodel.DirectionLR,
		Nodes:     []string{"A", "B"},
	}}
	g.AddEdge("A", "B", "", mmdmodel.EdgeStyle{})
	g.AddEdge("B", "C", "", mmdmodel.EdgeStyle{})

	opts := mmdelk.DefaultOpts
	opts.Solver = solver
	out, err := mmdelk.Layout(ctx, mmdmodel.KindFlowchart, g, &opts)
	require.NoError(t, err)

	a, b := out.Node("A"), out.Node("B")
	// laid out left to right inside the group
	assert.Less(t, a.Right(), b.X)
	sg := out.Group("sg")
	require.NotNil(t, sg)
	assert.Equal(t, mmdmodel.DirectionLR, sg.Direction)
	assert.True(t, sg.Box().Contains(a.Center()))
	assert.True(t, sg.Box().Contains(b.Center()))

	require.Len(t, out.Edges, 2)
	cross := out.Edges[1]
	assert.GreaterOrEqual(t, len(cross.Route), 2)
}

func TestLeveledSolver(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	solver, err := mmdgraphviz.NewLeveledSolver(ctx)
	require.NoError(t, err)
	defer solver.Close()

	g := &mmdclass.LeveledGraph{
		Direction:   mmdmodel.DirectionTB,
		NodeSpacing: 50,
		RankSpacing: 50,
		Nodes: []*mmdclass.LeveledNode{
			{ID: "Animal", Width: 100, Height: 60},
			{ID: "Dog", Width: 80, Height: 60},
		},
		Edges: []*mmdclass.LeveledEdge{
			{ID: "r0", Src: "Animal", Dst: "Dog"},
		},
	}
	require.NoError(t, solver.Solve(ctx, g))

	animal, dog := g.Node("Animal"), g.Node("Dog")
	assert.Less(t, animal.Y+animal.Height, dog.Y)
	assert.GreaterOrEqual(t, len(g.Edges[0].Route), 2)
	assert.Greater(t, g.Width, 0.)
}
