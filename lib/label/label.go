// Package label places text relative to boxes and routes.
package label

import (
	"math"

	"oss.terrastruct.com/mmd/lib/geo"
)

// These are % locations where labels will be placed along the connection
const LEFT_LABEL_POSITION = 1.0 / 4.0
const CENTER_LABEL_POSITION = 2.0 / 4.0
const RIGHT_LABEL_POSITION = 3.0 / 4.0

// This is the space between a node border and its outside label
const PADDING = 5

// Position is where a label sits relative to the box it names.
type Position int8

const (
	Unset Position = iota

	InsideTopCenter
	InsideMiddleCenter
)

// GetPointOnBox returns the top left point of a width x height label at the
// given position on box.
func (position Position) GetPointOnBox(box *geo.Box, padding, width, height float64) *geo.Point {
	p := box.TopLeft.Copy()
	center := box.Center()

	switch position {
	case InsideTopCenter:
		p.X = center.X - width/2
		p.Y += padding
	case InsideMiddleCenter:
		p.X = center.X - width/2
		p.Y = center.Y - height/2
	default:
		return nil
	}
	return p
}

// Box returns the width x height box centered on c.
func Box(c *geo.Point, width, height float64) *geo.Box {
	return geo.NewBox(geo.NewPoint(c.X-width/2, c.Y-height/2), width, height)
}

// Nudge slides b along the normal of the route segment it sits on until it
// overlaps none of obstacles, alternating sides with growing distance. It
// gives up after tries steps and returns the last candidate tried.
func Nudge(b *geo.Box, route geo.Route, obstacles []*geo.Box, step float64, tries int) *geo.Box {
	if !overlapsAny(b, obstacles) {
		return b
	}
	nx, ny := 0., -1.
	if idx := segmentIndex(route, b.Center()); idx >= 0 {
		s := geo.Segment{Start: route[idx], End: route[idx+1]}
		if s.IsVertical() {
			nx, ny = 1, 0
		}
	}
	candidate := b
	for i := 1; i <= tries; i++ {
		d := step * math.Ceil(float64(i)/2)
		if i%2 == 0 {
			d = -d
		}
		candidate = geo.NewBox(b.TopLeft.Translate(nx*d, ny*d), b.Width, b.Height)
		if !overlapsAny(candidate, obstacles) {
			return candidate
		}
	}
	return candidate
}

func overlapsAny(b *geo.Box, obstacles []*geo.Box) bool {
	for _, o := range obstacles {
		if b.Overlaps(o) {
			return true
		}
	}
	return false
}

// segmentIndex finds the route segment closest to p.
func segmentIndex(route geo.Route, p *geo.Point) int {
	best, bestD := -1, math.Inf(1)
	for i := 0; i < len(route)-1; i++ {
		if d := p.DistanceToLine(route[i], route[i+1]); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
