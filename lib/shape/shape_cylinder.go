package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

type shapeCylinder struct {
	*baseShape
}

func (s shapeCylinder) arcDepth() float64 {
	return math.Min(s.Box.Width/10+4, s.Box.Height/4)
}

func (s shapeCylinder) GetInnerBox() *geo.Box {
	d := s.arcDepth()
	tl := s.Box.TopLeft.Copy()
	tl.Y += 2 * d
	return geo.NewBox(tl, s.Box.Width, s.Box.Height-3*d)
}

func (s shapeCylinder) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w := math.Ceil(width + 2*paddingX)
	return w, math.Ceil(height + 2*paddingY + 3*(w/10+4))
}

func (s shapeCylinder) Perimeter() []geo.Intersectable {
	d := s.arcDepth()
	b := s.Box
	cx := b.Center().X
	return []geo.Intersectable{
		geo.NewEllipse(geo.NewPoint(cx, b.TopLeft.Y+d), b.Width/2, d),
		geo.NewEllipse(geo.NewPoint(cx, b.Bottom()-d), b.Width/2, d),
		*geo.NewSegment(geo.NewPoint(b.TopLeft.X, b.TopLeft.Y+d), geo.NewPoint(b.TopLeft.X, b.Bottom()-d)),
		*geo.NewSegment(geo.NewPoint(b.Right(), b.TopLeft.Y+d), geo.NewPoint(b.Right(), b.Bottom()-d)),
	}
}
