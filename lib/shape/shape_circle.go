package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

type shapeCircle struct {
	*baseShape
}

func NewCircle(box *geo.Box) Shape {
	return NewShape(CIRCLE_TYPE, box)
}

const doubleCircleGap = 5.

func (s shapeCircle) GetInnerBox() *geo.Box {
	// largest square inscribed in the circle
	side := s.Box.Width / math.Sqrt2
	c := s.Box.Center()
	return geo.NewBox(geo.NewPoint(c.X-side/2, c.Y-side/2), side, s.Box.Height/math.Sqrt2)
}

func (s shapeCircle) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	diameter := math.Ceil(math.Max(width, height) + 2*paddingX)
	if s.Type == DOUBLE_CIRCLE_TYPE {
		diameter += 2 * doubleCircleGap
	}
	return diameter, diameter
}

func (s shapeCircle) GetDefaultPadding() (paddingX, paddingY float64) {
	return defaultPadding / 2, defaultPadding / 2
}

func (s shapeCircle) Perimeter() []geo.Intersectable {
	return []geo.Intersectable{geo.NewEllipse(s.Box.Center(), s.Box.Width/2, s.Box.Height/2)}
}
