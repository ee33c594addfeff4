package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mmd/lib/geo"
)

func onSegment(p, a, b *geo.Point) bool {
	return geo.PrecisionCompare(p.DistanceToLine(a, b), 0, 0.01) == 0
}

func TestDiamondClipping(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 100, 80)
	d := NewDiamond(box).(shapeDiamond)
	top, right, bottom, left := d.Vertices()

	testCases := []struct {
		name   string
		border *geo.Point
		prev   *geo.Point
		want   *geo.Point
	}{
		{"above", geo.NewPoint(50, 0), geo.NewPoint(50, -40), top},
		{"below", geo.NewPoint(50, 80), geo.NewPoint(50, 150), bottom},
		{"left", geo.NewPoint(0, 40), geo.NewPoint(-60, 40), left},
		{"right", geo.NewPoint(100, 40), geo.NewPoint(170, 40), right},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := TraceToShapeBorder(d, tc.border, tc.prev)
			assert.True(t, got.ApproxEquals(tc.want), "got %s want %s", got.ToString(), tc.want.ToString())
		})
	}
}

func TestDiamondClippingOffCenter(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 100, 100)
	d := NewDiamond(box).(shapeDiamond)
	top, right, bottom, left := d.Vertices()
	edges := [][2]*geo.Point{{top, right}, {right, bottom}, {bottom, left}, {left, top}}

	approaches := [][2]*geo.Point{
		{geo.NewPoint(30, 0), geo.NewPoint(30, -20)},
		{geo.NewPoint(70, 100), geo.NewPoint(70, 140)},
		{geo.NewPoint(0, 20), geo.NewPoint(-30, 20)},
		{geo.NewPoint(100, 65), geo.NewPoint(130, 65)},
	}
	for _, a := range approaches {
		got := TraceToShapeBorder(d, a[0], a[1])
		found := false
		for _, e := range edges {
			if onSegment(got, e[0], e[1]) {
				found = true
			}
		}
		assert.True(t, found, "%s is not on the diamond border", got.ToString())
		assert.True(t, box.Contains(got))
		// never the bounding box corner
		for _, corner := range []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(100, 0), geo.NewPoint(0, 100), geo.NewPoint(100, 100)} {
			assert.False(t, got.ApproxEquals(corner))
		}
	}

	// approaching at x=30 from above hits the top-left edge at y=20
	got := TraceToShapeBorder(d, geo.NewPoint(30, 0), geo.NewPoint(30, -20))
	assert.True(t, got.ApproxEquals(geo.NewPoint(30, 20)))
}

func TestCircleClipping(t *testing.T) {
	t.Parallel()

	c := NewCircle(geo.NewBox(geo.NewPoint(0, 0), 40, 40))
	got := TraceToShapeBorder(c, geo.NewPoint(40, 20), geo.NewPoint(80, 20))
	assert.True(t, got.ApproxEquals(geo.NewPoint(40, 20)))

	got = TraceToShapeBorder(c, geo.NewPoint(40, 0), geo.NewPoint(80, -40))
	assert.InDelta(t, 20+20/1.41421356, got.X, 0.01)
	assert.InDelta(t, 20-20/1.41421356, got.Y, 0.01)
}

func TestRectangleUnchanged(t *testing.T) {
	t.Parallel()

	r := NewShape("nope", geo.NewBox(geo.NewPoint(0, 0), 40, 20))
	assert.Equal(t, RECTANGLE_TYPE, r.GetType())
	p := geo.NewPoint(10, 0)
	assert.Same(t, p, TraceToShapeBorder(r, p, geo.NewPoint(10, -10)))
}

func TestDimensionsToFit(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 0), 0, 0)

	w, h := NewShape(RECTANGLE_TYPE, box).GetDimensionsToFit(50, 20, 10, 5)
	assert.Equal(t, 70., w)
	assert.Equal(t, 30., h)

	w, h = NewShape(DIAMOND_TYPE, box).GetDimensionsToFit(50, 20, 10, 5)
	assert.Equal(t, 90., w)
	assert.Equal(t, w, h)

	w, h = NewShape(CIRCLE_TYPE, box).GetDimensionsToFit(50, 20, 10, 5)
	assert.Equal(t, 70., w)
	assert.Equal(t, w, h)

	w, _ = NewShape(DOUBLE_CIRCLE_TYPE, box).GetDimensionsToFit(50, 20, 10, 5)
	assert.Equal(t, 80., w)
}

func TestClip(t *testing.T) {
	t.Parallel()

	box := geo.NewBox(geo.NewPoint(0, 100), 100, 100)
	route := []*geo.Point{geo.NewPoint(50, 0), geo.NewPoint(50, 50), geo.NewPoint(30, 50), geo.NewPoint(30, 100)}
	Clip(DIAMOND_TYPE, box, route, true)
	assert.True(t, route[3].ApproxEquals(geo.NewPoint(30, 120)))
}
