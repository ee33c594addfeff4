package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentIntersections(t *testing.T) {
	t.Parallel()

	s1 := NewSegment(NewPoint(0, 0), NewPoint(10, 10))

	intersections := s1.Intersections(*NewSegment(NewPoint(0, 10), NewPoint(10, 0)))
	assert.Len(t, intersections, 1)
	assert.True(t, intersections[0].Equals(NewPoint(5, 5)))

	intersections = s1.Intersections(*NewSegment(NewPoint(10, 10), NewPoint(10, 0)))
	assert.Len(t, intersections, 1)
	assert.True(t, intersections[0].Equals(NewPoint(10, 10)))

	intersections = s1.Intersections(*NewSegment(NewPoint(3, 8), NewPoint(2, 15)))
	assert.Len(t, intersections, 0)

	// parallel
	assert.Nil(t, IntersectionPoint(NewPoint(0, 0), NewPoint(10, 0), NewPoint(0, 5), NewPoint(10, 5)))
}

func TestSegmentOrientation(t *testing.T) {
	t.Parallel()

	assert.True(t, NewSegment(NewPoint(0, 3), NewPoint(10, 3)).IsHorizontal())
	assert.True(t, NewSegment(NewPoint(4, 0), NewPoint(4, 10)).IsVertical())
	assert.False(t, NewSegment(NewPoint(0, 0), NewPoint(4, 10)).IsOrthogonal())
	assert.True(t, Route{NewPoint(0, 0), NewPoint(0, 10), NewPoint(5, 10)}.IsOrthogonal())
	assert.False(t, Route{NewPoint(0, 0), NewPoint(1, 10)}.IsOrthogonal())
}

func TestBox(t *testing.T) {
	t.Parallel()

	b := NewBox(NewPoint(10, 10), 20, 10)
	assert.True(t, b.Center().Equals(NewPoint(20, 15)))
	assert.True(t, b.Contains(NewPoint(30, 20)))
	assert.False(t, b.Contains(NewPoint(31, 20)))

	u := b.Union(NewBox(NewPoint(0, 15), 5, 30))
	assert.Equal(t, 0., u.TopLeft.X)
	assert.Equal(t, 10., u.TopLeft.Y)
	assert.Equal(t, 30., u.Width)
	assert.Equal(t, 35., u.Height)

	ints := b.Intersections(*NewSegment(NewPoint(20, 0), NewPoint(20, 15)))
	assert.Len(t, ints, 1)
	assert.True(t, ints[0].Equals(NewPoint(20, 10)))
}

func TestRoute(t *testing.T) {
	t.Parallel()

	r := Route{NewPoint(0, 0), NewPoint(0, 10), NewPoint(10, 10)}
	assert.Equal(t, 20., r.Length())

	p, i := r.GetPointAtDistance(15)
	assert.Equal(t, 1, i)
	assert.True(t, p.Equals(NewPoint(5, 10)))

	assert.True(t, r.PointAtRatio(0.25).Equals(NewPoint(0, 5)))

	tl, br := r.GetBoundingBox()
	assert.True(t, tl.Equals(NewPoint(0, 0)))
	assert.True(t, br.Equals(NewPoint(10, 10)))
}

func TestPointsDedupe(t *testing.T) {
	t.Parallel()

	ps := Points{NewPoint(0, 0), NewPoint(0, 0), NewPoint(0, 5), NewPoint(0, 5.00001), NewPoint(3, 5)}
	assert.Len(t, ps.Dedupe(), 3)
}

func TestEllipseLineIntersections(t *testing.T) {
	t.Parallel()

	e := NewEllipse(NewPoint(0, 0), 11, 11)

	intersections := e.Intersections(Segment{Start: NewPoint(0, 20), End: NewPoint(0, -20)})
	assert.Len(t, intersections, 2)
	assert.True(t, intersections[0].Equals(NewPoint(0, 11)))
	assert.True(t, intersections[1].Equals(NewPoint(0, -11)))

	intersections = e.Intersections(Segment{Start: NewPoint(0, 2), End: NewPoint(0, -2)})
	assert.Len(t, intersections, 0)

	intersections = e.Intersections(Segment{Start: NewPoint(-20, 0), End: NewPoint(0, 0)})
	assert.Len(t, intersections, 1)
	assert.True(t, intersections[0].ApproxEquals(NewPoint(-11, 0)))
}
