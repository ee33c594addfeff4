package shape

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

// shapeRectangle also serves rounded and subroutine boxes, whose borders
// coincide with the bounding box.
type shapeRectangle struct {
	*baseShape
}

func NewRectangle(box *geo.Box) Shape {
	return NewShape(RECTANGLE_TYPE, box)
}

func (s shapeRectangle) IsRectangular() bool {
	return true
}

func (s shapeRectangle) GetInnerBox() *geo.Box {
	if s.Type != SUBROUTINE_TYPE {
		return s.Box
	}
	tl := s.Box.TopLeft.Copy()
	tl.X += subroutineInset
	return geo.NewBox(tl, s.Box.Width-2*subroutineInset, s.Box.Height)
}

const subroutineInset = 8.

func (s shapeRectangle) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	if s.Type == SUBROUTINE_TYPE {
		w += 2 * subroutineInset
	}
	return math.Ceil(w), h
}
