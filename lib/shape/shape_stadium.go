package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

type shapeStadium struct {
	*baseShape
}

func (s shapeStadium) radius() float64 {
	return math.Min(s.Box.Height, s.Box.Width) / 2
}

func (s shapeStadium) GetInnerBox() *geo.Box {
	r := s.radius()
	tl := s.Box.TopLeft.Copy()
	tl.X += r / 2
	return geo.NewBox(tl, s.Box.Width-r, s.Box.Height)
}

func (s shapeStadium) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	h := math.Ceil(height + 2*paddingY)
	return math.Ceil(width + 2*paddingX + h/2), h
}

func (s shapeStadium) Perimeter() []geo.Intersectable {
	r := s.radius()
	tl := s.Box.TopLeft
	cy := tl.Y + s.Box.Height/2
	return []geo.Intersectable{
		geo.NewEllipse(geo.NewPoint(tl.X+r, cy), r, s.Box.Height/2),
		geo.NewEllipse(geo.NewPoint(s.Box.Right()-r, cy), r, s.Box.Height/2),
		*geo.NewSegment(geo.NewPoint(tl.X+r, tl.Y), geo.NewPoint(s.Box.Right()-r, tl.Y)),
		*geo.NewSegment(geo.NewPoint(tl.X+r, s.Box.Bottom()), geo.NewPoint(s.Box.Right()-r, s.Box.Bottom())),
	}
}
