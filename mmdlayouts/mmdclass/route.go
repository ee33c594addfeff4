package mmdclass

import (
	"oss.terrastruct.com/mmd/lib/geo"
)

// SELF_LOOP_SIZE is how far a self relationship reaches past its class.
const SELF_LOOP_SIZE = 24.

// snapOrthogonal replaces every diagonal segment with a vertical run followed
// by a horizontal one.
func snapOrthogonal(route []*geo.Point) []*geo.Point {
	if len(route) == 0 {
		return route
	}
	out := []*geo.Point{route[0].Copy()}
	for _, q := range route[1:] {
		p := out[len(out)-1]
		if !(geo.Segment{Start: p, End: q}).IsOrthogonal() {
			out = append(out, geo.NewPoint(p.X, q.Y))
		}
		out = append(out, q.Copy())
	}
	return simplify(out)
}

// simplify removes repeated points and interior points on a straight run.
func simplify(route []*geo.Point) []*geo.Point {
	route = geo.Points(route).Dedupe()
	if len(route) < 3 {
		return route
	}
	out := []*geo.Point{route[0]}
	for i := 1; i < len(route)-1; i++ {
		prev, p, next := out[len(out)-1], route[i], route[i+1]
		if collinear(prev, p, next) {
			continue
		}
		out = append(out, p)
	}
	return append(out, route[len(route)-1])
}

func collinear(a, b, c *geo.Point) bool {
	sameX := geo.PrecisionCompare(a.X, b.X, geo.PRECISION) == 0 && geo.PrecisionCompare(b.X, c.X, geo.PRECISION) == 0
	sameY := geo.PrecisionCompare(a.Y, b.Y, geo.PRECISION) == 0 && geo.PrecisionCompare(b.Y, c.Y, geo.PRECISION) == 0
	return sameX || sameY
}

// reclip trims an orthogonal route to start on the border of src and end on
// the border of dst, on the side its first and last segments approach from.
func reclip(route []*geo.Point, src, dst *geo.Box) []*geo.Point {
	route = clipStart(route, src)
	route = reversedRoute(clipStart(reversedRoute(route), dst))
	return simplify(route)
}

func strictlyInside(b *geo.Box, p *geo.Point) bool {
	return p.X > b.TopLeft.X && p.X < b.Right() && p.Y > b.TopLeft.Y && p.Y < b.Bottom()
}

// clipStart drops leading points buried in b and moves the first point onto
// the border of b facing the next point.
func clipStart(route []*geo.Point, b *geo.Box) []*geo.Point {
	if len(route) < 2 {
		return route
	}
	k := 0
	for k < len(route) && strictlyInside(b, route[k]) {
		k++
	}
	if k == len(route) {
		// the other end sits inside b too
		return route
	}
	if k > 0 {
		route = route[k-1:]
	}
	route = append([]*geo.Point{}, route...)
	if len(route) < 2 {
		return route
	}

	p, q := route[0], route[1]
	center := b.Center()
	s := geo.Segment{Start: p, End: q}

	switch {
	case s.IsVertical():
		y := b.TopLeft.Y
		if q.Y > center.Y {
			y = b.Bottom()
		}
		x := q.X
		if x <= b.TopLeft.X || x >= b.Right() {
			if len(route) > 2 && (geo.Segment{Start: q, End: route[2]}).IsHorizontal() {
				x = center.X
				route[1] = geo.NewPoint(x, q.Y)
			} else {
				route = append([]*geo.Point{nil, geo.NewPoint(center.X, q.Y)}, route[1:]...)
				x = center.X
			}
		}
		route[0] = geo.NewPoint(x, y)
	default:
		x := b.TopLeft.X
		if q.X > center.X {
			x = b.Right()
		}
		y := q.Y
		if y <= b.TopLeft.Y || y >= b.Bottom() {
			if len(route) > 2 && (geo.Segment{Start: q, End: route[2]}).IsVertical() {
				y = center.Y
				route[1] = geo.NewPoint(q.X, y)
			} else {
				route = append([]*geo.Point{nil, geo.NewPoint(q.X, center.Y)}, route[1:]...)
				y = center.Y
			}
		}
		route[0] = geo.NewPoint(x, y)
	}
	return route
}

// selfLoop leaves the right side of b in its upper half and comes back in its
// lower half.
func selfLoop(b *geo.Box) []*geo.Point {
	right := b.Right()
	top := b.TopLeft.Y + b.Height/4
	bottom := b.TopLeft.Y + 3*b.Height/4
	return []*geo.Point{
		geo.NewPoint(right, top),
		geo.NewPoint(right+SELF_LOOP_SIZE, top),
		geo.NewPoint(right+SELF_LOOP_SIZE, bottom),
		geo.NewPoint(right, bottom),
	}
}
