package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

type shapeHexagon struct {
	*baseShape
}

func (s shapeHexagon) inset() float64 {
	return s.Box.Height / 4
}

func (s shapeHexagon) GetInnerBox() *geo.Box {
	tl := s.Box.TopLeft.Copy()
	tl.X += s.inset()
	return geo.NewBox(tl, s.Box.Width-2*s.inset(), s.Box.Height)
}

func (s shapeHexagon) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	h := math.Ceil(height + 2*paddingY)
	return math.Ceil(width + 2*paddingX + h/2), h
}

func (s shapeHexagon) Perimeter() []geo.Intersectable {
	b := s.Box
	m := s.inset()
	cy := b.Center().Y
	return polygon(
		geo.NewPoint(b.TopLeft.X+m, b.TopLeft.Y),
		geo.NewPoint(b.Right()-m, b.TopLeft.Y),
		geo.NewPoint(b.Right(), cy),
		geo.NewPoint(b.Right()-m, b.Bottom()),
		geo.NewPoint(b.TopLeft.X+m, b.Bottom()),
		geo.NewPoint(b.TopLeft.X, cy),
	)
}
