package geo

import (
	"fmt"
	"math"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

// ApproxEquals reports whether both coordinates are within PRECISION of each other.
func (p1 *Point) ApproxEquals(p2 *Point) bool {
	if p1 == nil || p2 == nil {
		return p1 == p2
	}
	return PrecisionCompare(p1.X, p2.X, PRECISION) == 0 && PrecisionCompare(p1.Y, p2.Y, PRECISION) == 0
}

func (p *Point) Copy() *Point {
	return &Point{X: p.X, Y: p.Y}
}

// Translate returns a new point moved by dx, dy.
func (p *Point) Translate(dx, dy float64) *Point {
	return NewPoint(p.X+dx, p.Y+dy)
}

func (p *Point) ToString() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// https://stackoverflow.com/questions/849211/shortest-distance-between-a-point-and-a-line-segment
func (p *Point) DistanceToLine(p1, p2 *Point) float64 {
	a := p.X - p1.X
	b := p.Y - p1.Y
	c := p2.X - p1.X
	d := p2.Y - p1.Y

	dot := (a * c) + (b * d)
	lenSq := (c * c) + (d * d)

	param := -1.0
	if lenSq != 0 {
		param = dot / lenSq
	}

	var xx, yy float64
	switch {
	case param < 0:
		xx, yy = p1.X, p1.Y
	case param > 1:
		xx, yy = p2.X, p2.Y
	default:
		xx = p1.X + param*c
		yy = p1.Y + param*d
	}

	return math.Hypot(p.X-xx, p.Y-yy)
}

// Creates a Vector of the size between start and endpoint, pointing to endpoint
func (start *Point) VectorTo(endpoint *Point) Vector {
	return endpoint.ToVector().Minus(start.ToVector())
}

// Moves the given point by Vector
func (start *Point) AddVector(v Vector) *Point {
	return start.ToVector().Add(v).ToPoint()
}

func (p *Point) ToVector() Vector {
	return []float64{p.X, p.Y}
}

// point t% of the way between a and b
func (a *Point) Interpolate(b *Point, t float64) *Point {
	return NewPoint(
		a.X*(1.0-t)+b.X*t,
		a.Y*(1.0-t)+b.Y*t,
	)
}

type Points []*Point

func (ps Points) ToString() string {
	strs := make([]string, 0, len(ps))
	for _, p := range ps {
		strs = append(strs, p.ToString())
	}
	return strings.Join(strs, ", ")
}

// Translate returns a copy of every point moved by dx, dy.
func (ps Points) Translate(dx, dy float64) Points {
	out := make(Points, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Translate(dx, dy))
	}
	return out
}

// Dedupe drops consecutive duplicate points.
func (ps Points) Dedupe() Points {
	out := make(Points, 0, len(ps))
	for _, p := range ps {
		if len(out) > 0 && out[len(out)-1].ApproxEquals(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IntersectionPoint returns the point where segments u and v cross, or nil.
func IntersectionPoint(u0, u1, v0, v1 *Point) *Point {
	// x = u0.X + s*(u1.X - u0.X) = v0.X + t*(v1.X - v0.X), same for y.
	// Solved with Cramer's rule; s and t must both land in [0, 1].
	udx := u1.X - u0.X
	vdx := v1.X - v0.X
	uvdx := v0.X - u0.X
	udy := u1.Y - u0.Y
	vdy := v1.Y - v0.Y
	uvdy := v0.Y - u0.Y

	denom := udy*vdx - udx*vdy
	if denom == 0 {
		// parallel
		return nil
	}
	s := (vdx*uvdy - vdy*uvdx) / denom
	t := (udx*uvdy - udy*uvdx) / denom

	if s < -PRECISION || s > 1+PRECISION || t < -PRECISION || t > 1+PRECISION {
		return nil
	}

	return NewPoint(
		RoundDecimals(u0.X+s*udx),
		RoundDecimals(u0.Y+s*udy),
	)
}
