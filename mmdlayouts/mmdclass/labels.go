package mmdclass

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/label"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdtarget"
)

// labelPlacer positions relationship labels, keeping each one clear of the
// classes and of every label placed before it.
type labelPlacer struct {
	l         *classLayout
	obstacles []*geo.Box
	placed    []*geo.Box
}

func newLabelPlacer(l *classLayout, classes []*mmdtarget.ClassBox) *labelPlacer {
	p := &labelPlacer{l: l}
	for _, c := range classes {
		p.obstacles = append(p.obstacles, c.Box())
	}
	return p
}

func (p *labelPlacer) measure(s string) (float64, float64) {
	return p.l.ruler.MeasurePrecise(p.l.font(MEMBER_FONT_SIZE, textmeasure.FONT_STYLE_REGULAR), s)
}

func (p *labelPlacer) place(rel *mmdtarget.Relationship) {
	route := geo.Route(rel.Route)
	if len(route) < 2 {
		return
	}
	if rel.Label != "" {
		w, h := p.measure(rel.Label)
		rel.LabelPosition = p.fit(route, route.PointAtRatio(label.CENTER_LABEL_POSITION), w, h)
	}
	if rel.FromCardinality != "" {
		w, h := p.measure(rel.FromCardinality)
		rel.FromCardinalityPosition = p.fit(route, offset(route, label.LEFT_LABEL_POSITION, w, h), w, h)
	}
	if rel.ToCardinality != "" {
		w, h := p.measure(rel.ToCardinality)
		rel.ToCardinalityPosition = p.fit(route, offset(route, label.RIGHT_LABEL_POSITION, w, h), w, h)
	}
}

// fit nudges the w x h label centered on c and records where it ended up.
func (p *labelPlacer) fit(route geo.Route, c *geo.Point, w, h float64) *geo.Point {
	obstacles := append(append([]*geo.Box{}, p.obstacles...), p.placed...)
	b := label.Nudge(label.Box(c, w, h), route, obstacles, LABEL_NUDGE_STEP, LABEL_NUDGE_TRIES)
	p.placed = append(p.placed, b)
	return b.Center()
}

// offset returns the point at ratio along route, pushed off the line so a
// w x h label sits beside it rather than on it.
func offset(route geo.Route, ratio, w, h float64) *geo.Point {
	pt, idx := route.GetPointAtDistance(route.Length() * ratio)
	if pt == nil {
		return route.PointAtRatio(ratio)
	}
	s := geo.Segment{Start: route[idx], End: route[idx+1]}
	if s.IsVertical() {
		return pt.Translate(w/2+label.PADDING, 0)
	}
	return pt.Translate(0, -(h/2 + label.PADDING))
}
