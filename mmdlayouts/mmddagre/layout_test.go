package mmddagre_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
	"oss.terrastruct.com/mmd/mmdlayouts/mmddagre"
	"oss.terrastruct.com/mmd/mmdmodel"
)

// stubDagre lays nodes out in a row 100px apart along y=50 and draws edges
// between centers.
const stubDagre = `
var dagre = {
  graphlib: {
    Graph: function () {
      var attrs = {}, nodes = {}, order = [], edges = {};
      this.setGraph = function (a) { attrs = a; };
      this.graph = function () { return attrs; };
      this.setDefaultEdgeLabel = function () {};
      this.setNode = function (id, v) { nodes[id] = v; order.push(id); };
      this.node = function (id) { return nodes[id]; };
      this.nodes = function () { return order; };
      this.setEdge = function (ref, v) { v.ref = ref; edges[ref.name] = v; };
      this.edge = function (ref) { return edges[ref.name]; };
      this.edgeList = function () { return edges; };
    }
  },
  layout: function (g) {
    var ids = g.nodes();
    for (var i = 0; i < ids.length; i++) {
      var n = g.node(ids[i]);
      n.x = i * 100 + n.width / 2;
      n.y = 50;
    }
    var edges = g.edgeList();
    for (var name in edges) {
      var e = edges[name];
      var s = g.node(e.ref.v), t = g.node(e.ref.w);
      e.points = [{x: s.x, y: s.y}, {x: t.x, y: t.y}];
      e.x = (s.x + t.x) / 2;
      e.y = 50;
    }
    var a = g.graph();
    a.width = ids.length * 100;
    a.height = 100;
  }
};
`

func TestSolver(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	s, err := mmddagre.NewSolver(ctx, stubDagre)
	require.NoError(t, err)

	lg := &mmdclass.LeveledGraph{
		Direction:   mmdmodel.DirectionLR,
		NodeSpacing: 60,
		RankSpacing: 80,
		Nodes: []*mmdclass.LeveledNode{
			{ID: "A", Width: 40, Height: 20},
			{ID: `B "quoted"`, Width: 60, Height: 20},
		},
		Edges: []*mmdclass.LeveledEdge{
			{ID: "r0", Src: "A", Dst: `B "quoted"`, LabelWidth: 10, LabelHeight: 5},
			{ID: "r1", Src: "A", Dst: "missing"},
		},
	}
	require.NoError(t, s.Solve(ctx, lg))

	assert.Equal(t, 0., lg.Nodes[0].X)
	assert.Equal(t, 40., lg.Nodes[0].Y)
	assert.Equal(t, 100., lg.Nodes[1].X)
	assert.Equal(t, []*geo.Point{geo.NewPoint(20, 50), geo.NewPoint(130, 50)}, lg.Edges[0].Route)
	assert.Equal(t, geo.NewPoint(75, 50), lg.Edges[0].LabelPosition)
	assert.Nil(t, lg.Edges[1].Route)
	assert.Equal(t, 200., lg.Width)
	assert.Equal(t, 100., lg.Height)
}

func TestNewSolverErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := mmddagre.NewSolver(ctx, "")
	assert.Error(t, err)

	_, err = mmddagre.NewSolver(ctx, "this is not javascript (")
	assert.Error(t, err)
}
