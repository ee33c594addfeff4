package geo

import (
	"math"
)

type Route []*Point

func (route Route) Length() float64 {
	l := 0.
	for i := 0; i < len(route)-1; i++ {
		l += EuclideanDistance(
			route[i].X, route[i].Y,
			route[i+1].X, route[i+1].Y,
		)
	}
	return l
}

// return the point at _distance_ along the route, and the index of the segment it's on
func (route Route) GetPointAtDistance(distance float64) (*Point, int) {
	remaining := distance
	for i := 0; i < len(route)-1; i++ {
		curr, next := route[i], route[i+1]
		length := EuclideanDistance(curr.X, curr.Y, next.X, next.Y)

		if remaining <= length {
			if length == 0 {
				return curr.Copy(), i
			}
			return curr.Interpolate(next, remaining/length), i
		}
		remaining -= length
	}

	return nil, -1
}

// PointAtRatio returns the point at t (0..1) of the route's total length.
func (route Route) PointAtRatio(t float64) *Point {
	if len(route) == 0 {
		return nil
	}
	p, _ := route.GetPointAtDistance(route.Length() * t)
	if p == nil {
		return route[len(route)-1].Copy()
	}
	return p
}

func (route Route) GetBoundingBox() (tl, br *Point) {
	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)

	for _, p := range route {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return NewPoint(minX, minY), NewPoint(maxX, maxY)
}

// IsOrthogonal reports whether every segment of the route is axis aligned.
func (route Route) IsOrthogonal() bool {
	for i := 0; i < len(route)-1; i++ {
		if !(Segment{route[i], route[i+1]}).IsOrthogonal() {
			return false
		}
	}
	return true
}
