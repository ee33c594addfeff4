package mmdclass_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdtarget"
)

// rankSolver puts every node on the rank of its longest incoming path, 200px
// apart, and routes each edge from the bottom middle of its source to the
// top middle of its destination.
type rankSolver struct {
	calls int
}

func (s *rankSolver) Solve(ctx context.Context, g *mmdclass.LeveledGraph) error {
	s.calls++
	rank := make(map[string]int)
	for range g.Nodes {
		for _, e := range g.Edges {
			if e.Src != e.Dst && rank[e.Dst] < rank[e.Src]+1 {
				rank[e.Dst] = rank[e.Src] + 1
			}
		}
	}
	slots := make(map[int]int)
	for _, n := range g.Nodes {
		r := rank[n.ID]
		n.X = float64(slots[r]) * 200
		n.Y = float64(r) * 150
		slots[r]++
	}
	for _, e := range g.Edges {
		src, dst := g.Node(e.Src), g.Node(e.Dst)
		e.Route = []*geo.Point{
			geo.NewPoint(src.X+src.Width/2, src.Y+src.Height),
			geo.NewPoint(dst.X+dst.Width/2, dst.Y),
		}
	}
	return nil
}

func layout(t *testing.T, c *mmdmodel.Class) *mmdtarget.Class {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	out, err := mmdclass.Layout(ctx, c, &mmdclass.Opts{Solver: &rankSolver{}})
	require.NoError(t, err)
	return out
}

func TestSizing(t *testing.T) {
	t.Parallel()

	c := mmdmodel.NewClass()
	animal := c.AddClass("Animal")
	animal.Attributes = []string{"+int age"}
	animal.Methods = []string{"+isMammal()", "+mate(Animal other, int times) bool"}
	c.AddClass("Empty")
	annotated := c.AddClass("Shape")
	annotated.Annotation = "interface"

	out := layout(t, c)

	a := out.Box("Animal")
	require.NotNil(t, a)
	assert.Equal(t, 44., a.HeaderHeight)
	assert.Equal(t, 28., a.AttributesHeight)
	assert.Equal(t, 48., a.MethodsHeight)
	assert.Equal(t, 120., a.Height)

	w, _ := textmeasure.NewMonoRuler().MeasurePrecise(
		textmeasure.NewFont("", mmdclass.MEMBER_FONT_SIZE, textmeasure.FONT_STYLE_REGULAR),
		"+mate(Animal other, int times) bool",
	)
	assert.Greater(t, w+2*mmdclass.PADDING_X, mmdclass.MIN_WIDTH)
	assert.InDelta(t, w+2*mmdclass.PADDING_X, a.Width, 1)

	e := out.Box("Empty")
	require.NotNil(t, e)
	assert.Equal(t, mmdclass.MIN_WIDTH, e.Width)
	assert.Equal(t, 44.+2*mmdclass.EMPTY_SECTION_HEIGHT, e.Height)

	s := out.Box("Shape")
	require.NotNil(t, s)
	assert.Equal(t, 44.+mmdclass.ANNOTATION_EXTRA, s.HeaderHeight)
}

func TestLayoutRelationship(t *testing.T) {
	t.Parallel()

	c := mmdmodel.NewClass()
	c.AddClass("A")
	c.AddClass("B")
	c.Relationships = append(c.Relationships, &mmdmodel.Relationship{
		From:            "A",
		To:              "B",
		Type:            mmdmodel.RelationInheritance,
		Label:           "is",
		FromCardinality: "1",
		ToCardinality:   "*",
		Marker:          mmdmodel.MarkerEnd,
	})

	out := layout(t, c)
	a, b := out.Box("A"), out.Box("B")
	assert.Equal(t, mmdclass.CANVAS_PADDING, a.X)
	assert.Equal(t, mmdclass.CANVAS_PADDING, a.Y)

	require.Len(t, out.Relationships, 1)
	rel := out.Relationships[0]
	assert.Equal(t, mmdmodel.RelationInheritance, rel.Type)
	assert.Equal(t, []*geo.Point{
		geo.NewPoint(a.Center().X, a.Bottom()),
		geo.NewPoint(b.Center().X, b.Y),
	}, rel.Route)

	require.NotNil(t, rel.LabelPosition)
	require.NotNil(t, rel.FromCardinalityPosition)
	require.NotNil(t, rel.ToCardinalityPosition)
	assert.Less(t, rel.FromCardinalityPosition.Y, rel.ToCardinalityPosition.Y)
	for _, p := range []*geo.Point{rel.LabelPosition, rel.FromCardinalityPosition, rel.ToCardinalityPosition} {
		assert.False(t, a.Box().Contains(p))
		assert.False(t, b.Box().Contains(p))
	}

	assert.GreaterOrEqual(t, out.Width, b.Right()+mmdclass.CANVAS_PADDING)
	assert.GreaterOrEqual(t, out.Height, b.Bottom()+mmdclass.CANVAS_PADDING)
}

func TestLayoutCycle(t *testing.T) {
	t.Parallel()

	c := mmdmodel.NewClass()
	c.AddClass("A")
	c.AddClass("B")
	c.Relationships = append(c.Relationships,
		&mmdmodel.Relationship{From: "A", To: "B", Type: mmdmodel.RelationAssociation},
		&mmdmodel.Relationship{From: "B", To: "A", Type: mmdmodel.RelationDependency},
	)

	out := layout(t, c)
	a, b := out.Box("A"), out.Box("B")
	assert.Less(t, a.Y, b.Y)

	require.Len(t, out.Relationships, 2)
	back := out.Relationships[1].Route
	require.GreaterOrEqual(t, len(back), 2)
	assert.Equal(t, b.Y, back[0].Y)
	assert.Equal(t, a.Bottom(), back[len(back)-1].Y)
}

func TestLayoutOrthogonal(t *testing.T) {
	t.Parallel()

	c := mmdmodel.NewClass()
	for _, id := range []string{"A", "B", "C"} {
		c.AddClass(id)
	}
	c.Relationships = append(c.Relationships,
		&mmdmodel.Relationship{From: "A", To: "C"},
		&mmdmodel.Relationship{From: "B", To: "C"},
		&mmdmodel.Relationship{From: "C", To: "C"},
		&mmdmodel.Relationship{From: "C", To: "nowhere"},
	)

	out := layout(t, c)
	require.Len(t, out.Relationships, 3)
	for _, rel := range out.Relationships {
		assert.True(t, geo.Route(rel.Route).IsOrthogonal(), "%s -> %s", rel.From, rel.To)
	}

	self := out.Relationships[2].Route
	assert.Equal(t, out.Box("C").Right(), self[0].X)
	assert.Equal(t, out.Box("C").Right(), self[len(self)-1].X)
}

func TestLayoutErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)

	_, err := mmdclass.Layout(ctx, mmdmodel.NewClass(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class diagram")
	assert.Contains(t, err.Error(), "no solver configured")

	_, err = mmdclass.Layout(ctx, nil, &mmdclass.Opts{Solver: &rankSolver{}})
	assert.Error(t, err)
}

func TestLayoutAsync(t *testing.T) {
	t.Parallel()

	c := mmdmodel.NewClass()
	c.AddClass("A")

	ctx := log.WithTB(context.Background(), t, nil)
	solver := &rankSolver{}
	res := <-mmdclass.LayoutAsync(ctx, c, &mmdclass.Opts{Solver: solver})
	require.NoError(t, res.Err)
	assert.Len(t, res.Class.Classes, 1)
	assert.Equal(t, 1, solver.calls)
}
