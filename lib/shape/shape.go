package shape

import (
	"math"

	"oss.terrastruct.com/util-go/go2"

	"oss.terrastruct.com/mmd/lib/geo"
)

const (
	RECTANGLE_TYPE         = "rectangle"
	ROUNDED_TYPE           = "rounded"
	STADIUM_TYPE           = "stadium"
	SUBROUTINE_TYPE        = "subroutine"
	CYLINDER_TYPE          = "cylinder"
	CIRCLE_TYPE            = "circle"
	DOUBLE_CIRCLE_TYPE     = "doublecircle"
	DIAMOND_TYPE           = "diamond"
	HEXAGON_TYPE           = "hexagon"
	PARALLELOGRAM_TYPE     = "parallelogram"
	PARALLELOGRAM_ALT_TYPE = "parallelogram_alt"
	TRAPEZOID_TYPE         = "trapezoid"
	TRAPEZOID_ALT_TYPE     = "trapezoid_alt"
	ASYMMETRIC_TYPE        = "asymmetric"

	defaultPadding = 16.
)

type Shape interface {
	Is(shape string) bool
	GetType() string

	IsRectangular() bool

	GetBox() *geo.Box
	GetInnerBox() *geo.Box

	// placing a rectangle of the given size and padding inside the shape, return the position relative to the shape's TopLeft
	GetInsidePlacement(width, height, paddingX, paddingY float64) geo.Point

	GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64)
	GetDefaultPadding() (paddingX, paddingY float64)

	// Perimeter returns a slice of geo.Intersectables that together constitute the shape border
	Perimeter() []geo.Intersectable
}

type baseShape struct {
	Type      string
	Box       *geo.Box
	FullShape *Shape
}

func (s baseShape) Is(shapeType string) bool {
	return s.Type == shapeType
}

func (s baseShape) GetType() string {
	return s.Type
}

func (s baseShape) IsRectangular() bool {
	return false
}

func (s baseShape) GetBox() *geo.Box {
	return s.Box
}

func (s baseShape) GetInnerBox() *geo.Box {
	return s.Box
}

func (s baseShape) GetInsidePlacement(_, _, paddingX, paddingY float64) geo.Point {
	innerTL := (*s.FullShape).GetInnerBox().TopLeft
	return *geo.NewPoint(innerTL.X+paddingX/2, innerTL.Y+paddingY/2)
}

// return the minimum shape dimensions needed to fit content (width x height)
// in the shape's innerBox with padding
func (s baseShape) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	return math.Ceil(width + 2*paddingX), math.Ceil(height + 2*paddingY)
}

func (s baseShape) GetDefaultPadding() (paddingX, paddingY float64) {
	return defaultPadding, defaultPadding / 2
}

func (s baseShape) Perimeter() []geo.Intersectable {
	return nil
}

// NewShape returns the Shape for shapeType, defaulting to a rectangle for
// unknown types.
func NewShape(shapeType string, box *geo.Box) Shape {
	base := &baseShape{Type: shapeType, Box: box}
	var s Shape
	switch shapeType {
	case ROUNDED_TYPE, SUBROUTINE_TYPE:
		s = shapeRectangle{base}
	case STADIUM_TYPE:
		s = shapeStadium{base}
	case CYLINDER_TYPE:
		s = shapeCylinder{base}
	case CIRCLE_TYPE, DOUBLE_CIRCLE_TYPE:
		s = shapeCircle{base}
	case DIAMOND_TYPE:
		s = shapeDiamond{base}
	case HEXAGON_TYPE:
		s = shapeHexagon{base}
	case PARALLELOGRAM_TYPE, PARALLELOGRAM_ALT_TYPE, TRAPEZOID_TYPE, TRAPEZOID_ALT_TYPE:
		s = shapeSkewed{base}
	case ASYMMETRIC_TYPE:
		s = shapeAsymmetric{base}
	default:
		base.Type = RECTANGLE_TYPE
		s = shapeRectangle{base}
	}
	base.FullShape = go2.Pointer(s)
	return s
}

// polygon closes the given vertices into border segments.
func polygon(pts ...*geo.Point) []geo.Intersectable {
	out := make([]geo.Intersectable, 0, len(pts))
	for i := range pts {
		out = append(out, *geo.NewSegment(pts[i], pts[(i+1)%len(pts)]))
	}
	return out
}

// TraceToShapeBorder takes the point on the rectangular border
// r here is the point on rectangular border
// p is the prev point (used to calculate slope)
// s is the point on the actual shape border that'll be returned
//
// .      p
// .      │
// .      │
// .      ▼
// . ┌────r─────────────────────────┐
// . │    │      xxxxxxxx           │
// . │    ▼  xxxxx       xxxx       │
// . │    sxxx               xx     │
// . │   x                    xx    │
// . │   xxxx             xxxx      │
// . └──────xxxxxxxxxxxxxx──────────┘
func TraceToShapeBorder(shape Shape, rectBorderPoint, prevPoint *geo.Point) *geo.Point {
	if shape.IsRectangular() || rectBorderPoint.Equals(prevPoint) {
		return rectBorderPoint
	}

	// extend the line all the way through to the other end of the shape
	scaleSize := shape.GetBox().Width
	if prevPoint.X == rectBorderPoint.X {
		scaleSize = shape.GetBox().Height
	}
	vector := prevPoint.VectorTo(rectBorderPoint)
	vector = vector.AddLength(scaleSize)
	extendedSegment := geo.Segment{Start: prevPoint, End: prevPoint.AddVector(vector)}

	closestD := math.Inf(1)
	closestPoint := rectBorderPoint

	for _, perimeterSegment := range shape.Perimeter() {
		for _, intersectingPoint := range perimeterSegment.Intersections(extendedSegment) {
			d := geo.EuclideanDistance(rectBorderPoint.X, rectBorderPoint.Y, intersectingPoint.X, intersectingPoint.Y)
			if d < closestD {
				closestD = d
				closestPoint = intersectingPoint
			}
		}
	}

	return geo.NewPoint(geo.RoundDecimals(closestPoint.X), geo.RoundDecimals(closestPoint.Y))
}

// Clip moves the end of a route that touches box onto the border of the
// shape. tail selects the last point instead of the first.
func Clip(shapeType string, box *geo.Box, route []*geo.Point, tail bool) {
	if len(route) < 2 {
		return
	}
	s := NewShape(shapeType, box)
	if s.IsRectangular() {
		return
	}
	endIdx, prevIdx := 0, 1
	if tail {
		endIdx, prevIdx = len(route)-1, len(route)-2
	}
	route[endIdx] = TraceToShapeBorder(s, route[endIdx], route[prevIdx])
}
