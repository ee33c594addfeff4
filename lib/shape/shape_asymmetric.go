package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

// shapeAsymmetric is a flag: a rectangle with a notch cut into its left side.
type shapeAsymmetric struct {
	*baseShape
}

func (s shapeAsymmetric) notch() float64 {
	return s.Box.Height / 2
}

func (s shapeAsymmetric) GetInnerBox() *geo.Box {
	tl := s.Box.TopLeft.Copy()
	tl.X += s.notch()
	return geo.NewBox(tl, s.Box.Width-s.notch(), s.Box.Height)
}

func (s shapeAsymmetric) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	h := math.Ceil(height + 2*paddingY)
	return math.Ceil(width + 2*paddingX + h/2), h
}

func (s shapeAsymmetric) Perimeter() []geo.Intersectable {
	b := s.Box
	return polygon(
		geo.NewPoint(b.TopLeft.X, b.TopLeft.Y),
		geo.NewPoint(b.Right(), b.TopLeft.Y),
		geo.NewPoint(b.Right(), b.Bottom()),
		geo.NewPoint(b.TopLeft.X, b.Bottom()),
		geo.NewPoint(b.TopLeft.X+s.notch(), b.Center().Y),
	)
}
