package mmdelk

import (
	"oss.terrastruct.com/mmd/lib/geo"
)

const (
	// distance from the outermost group to the first margin lane
	MARGIN_GAP = 20.
	// distance between consecutive margin lanes on the same side
	MARGIN_STEP = 10.
)

type groupBox struct {
	id  string
	box *geo.Box
}

// orthogonalizer rewrites diagonal segments into axis aligned ones. When the
// graph has groups, a diagonal detours through a vertical lane left or right
// of every group box, alternating sides with each edge stepping further out.
// A lane whose route would cut through a group holding neither endpoint is
// skipped; with no clear lane, or no groups at all, the diagonal becomes a Z
// bend halfway across the flow.
type orthogonalizer struct {
	ex       *extraction
	groups   []groupBox
	vertical bool
	outer    *geo.Box
	lanes    int
}

func newOrthogonalizer(ex *extraction, groupIDs []string, vertical bool) *orthogonalizer {
	o := &orthogonalizer{ex: ex, vertical: vertical}
	for _, id := range groupIDs {
		b, ok := ex.boxes[id]
		if !ok {
			continue
		}
		o.groups = append(o.groups, groupBox{id: id, box: b})
		o.outer = o.outer.Union(b)
	}
	return o
}

func (o *orthogonalizer) rewrite(route []*geo.Point, srcID, dstID string) []*geo.Point {
	if len(route) < 2 || geo.Route(route).IsOrthogonal() {
		return route
	}
	out := []*geo.Point{route[0]}
	for i := 0; i < len(route)-1; i++ {
		p, q := route[i], route[i+1]
		if (geo.Segment{Start: p, End: q}).IsOrthogonal() {
			out = append(out, q)
			continue
		}
		bend := o.margin(p, q, srcID, dstID)
		if bend == nil {
			bend = o.zBend(p, q)
		}
		out = append(out, bend[1:]...)
	}
	return dropCollinear(geo.Points(out).Dedupe())
}

// zBend bends halfway across the flow.
func (o *orthogonalizer) zBend(p, q *geo.Point) []*geo.Point {
	if o.vertical {
		midY := (p.Y + q.Y) / 2
		return []*geo.Point{p, geo.NewPoint(p.X, midY), geo.NewPoint(q.X, midY), q}
	}
	midX := (p.X + q.X) / 2
	return []*geo.Point{p, geo.NewPoint(midX, p.Y), geo.NewPoint(midX, q.Y), q}
}

// margin routes p to q through the next free lane outside every group, or
// returns nil when neither side is clear.
func (o *orthogonalizer) margin(p, q *geo.Point, srcID, dstID string) []*geo.Point {
	if o.outer == nil {
		return nil
	}
	offset := MARGIN_GAP + MARGIN_STEP*float64(o.lanes/2)
	left := o.lanes%2 == 0
	for _, onLeft := range []bool{left, !left} {
		x := o.outer.Right() + offset
		if onLeft {
			x = o.outer.TopLeft.X - offset
		}
		lane := []*geo.Point{p, geo.NewPoint(x, p.Y), geo.NewPoint(x, q.Y), q}
		if !o.crossesForeignGroup(lane, srcID, dstID) {
			o.lanes++
			return lane
		}
	}
	return nil
}

func (o *orthogonalizer) crossesForeignGroup(route []*geo.Point, srcID, dstID string) bool {
	for _, g := range o.groups {
		if o.ex.contains(g.id, srcID) || o.ex.contains(g.id, dstID) {
			continue
		}
		for i := 0; i < len(route)-1; i++ {
			if segmentCrossesBox(route[i], route[i+1], g.box) {
				return true
			}
		}
	}
	return false
}

// segmentCrossesBox reports whether an axis aligned segment enters the
// interior of b.
func segmentCrossesBox(p, q *geo.Point, b *geo.Box) bool {
	tl, br := geo.Route{p, q}.GetBoundingBox()
	return tl.X < b.Right() && br.X > b.TopLeft.X &&
		tl.Y < b.Bottom() && br.Y > b.TopLeft.Y
}

// dropCollinear removes points lying on a straight line between their
// neighbors.
func dropCollinear(route []*geo.Point) []*geo.Point {
	if len(route) < 3 {
		return route
	}
	out := []*geo.Point{route[0]}
	for i := 1; i < len(route)-1; i++ {
		prev, cur, next := out[len(out)-1], route[i], route[i+1]
		sameX := geo.PrecisionCompare(prev.X, cur.X, geo.PRECISION) == 0 && geo.PrecisionCompare(cur.X, next.X, geo.PRECISION) == 0
		sameY := geo.PrecisionCompare(prev.Y, cur.Y, geo.PRECISION) == 0 && geo.PrecisionCompare(cur.Y, next.Y, geo.PRECISION) == 0
		if sameX || sameY {
			continue
		}
		out = append(out, cur)
	}
	return append(out, route[len(route)-1])
}
