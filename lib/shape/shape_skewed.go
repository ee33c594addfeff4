package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

// shapeSkewed covers parallelograms and trapezoids, both leaning or
// widening by half the height.
type shapeSkewed struct {
	*baseShape
}

func (s shapeSkewed) skew() float64 {
	return s.Box.Height / 2
}

func (s shapeSkewed) GetInnerBox() *geo.Box {
	tl := s.Box.TopLeft.Copy()
	tl.X += s.skew() / 2
	return geo.NewBox(tl, s.Box.Width-s.skew(), s.Box.Height)
}

func (s shapeSkewed) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	h := math.Ceil(height + 2*paddingY)
	return math.Ceil(width + 2*paddingX + h/2), h
}

func (s shapeSkewed) Perimeter() []geo.Intersectable {
	b := s.Box
	k := s.skew()
	l, r, t, btm := b.TopLeft.X, b.Right(), b.TopLeft.Y, b.Bottom()
	switch s.Type {
	case PARALLELOGRAM_ALT_TYPE:
		return polygon(geo.NewPoint(l, t), geo.NewPoint(r-k, t), geo.NewPoint(r, btm), geo.NewPoint(l+k, btm))
	case TRAPEZOID_TYPE:
		return polygon(geo.NewPoint(l+k/2, t), geo.NewPoint(r-k/2, t), geo.NewPoint(r, btm), geo.NewPoint(l, btm))
	case TRAPEZOID_ALT_TYPE:
		return polygon(geo.NewPoint(l, t), geo.NewPoint(r, t), geo.NewPoint(r-k/2, btm), geo.NewPoint(l+k/2, btm))
	default:
		return polygon(geo.NewPoint(l+k, t), geo.NewPoint(r, t), geo.NewPoint(r-k, btm), geo.NewPoint(l, btm))
	}
}
