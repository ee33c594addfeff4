package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

type shapeDiamond struct {
	*baseShape
}

func NewDiamond(box *geo.Box) Shape {
	return NewShape(DIAMOND_TYPE, box)
}

// Vertices returns the top, right, bottom and left corners.
func (s shapeDiamond) Vertices() (top, right, bottom, left *geo.Point) {
	c := s.Box.Center()
	return geo.NewPoint(c.X, s.Box.TopLeft.Y),
		geo.NewPoint(s.Box.Right(), c.Y),
		geo.NewPoint(c.X, s.Box.Bottom()),
		geo.NewPoint(s.Box.TopLeft.X, c.Y)
}

func (s shapeDiamond) GetInnerBox() *geo.Box {
	tl := s.Box.TopLeft.Copy()
	tl.X += s.Box.Width / 4
	tl.Y += s.Box.Height / 4
	return geo.NewBox(tl, s.Box.Width/2, s.Box.Height/2)
}

// A w x h rectangle centered in a square diamond fits when the diagonal is at
// least w + h.
func (s shapeDiamond) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	diagonal := math.Ceil(width + height + 2*paddingX)
	return diagonal, diagonal
}

func (s shapeDiamond) Perimeter() []geo.Intersectable {
	top, right, bottom, left := s.Vertices()
	return polygon(top, right, bottom, left)
}
