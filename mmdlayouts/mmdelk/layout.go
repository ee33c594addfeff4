package mmdelk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/label"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdtarget"
)

// space kept around anything the solver placed out of its own bounds
const CANVAS_MARGIN = 20.

type ConfigurableOpts struct {
	Algorithm       string `json:"elk.algorithm,omitempty"`
	NodeSpacing     int    `json:"elk.spacing.nodeNode,omitempty"`
	LayerSpacing    int    `json:"spacing.nodeNodeBetweenLayers,omitempty"`
	Padding         string `json:"elk.padding,omitempty"`
	EdgeNodeSpacing int    `json:"spacing.edgeNodeBetweenLayers,omitempty"`
	SelfLoopSpacing int    `json:"elk.spacing.nodeSelfLoop"`

	FontFamily string `json:"-"`
	Solver     Solver `json:"-"`
}

var DefaultOpts = ConfigurableOpts{
	Algorithm:       "layered",
	NodeSpacing:     70,
	LayerSpacing:    70,
	Padding:         "[top=50,left=50,bottom=50,right=50]",
	EdgeNodeSpacing: 40,
	SelfLoopSpacing: 50,
}

func (opts ConfigurableOpts) withDefaults() ConfigurableOpts {
	if opts.Algorithm == "" {
		opts.Algorithm = DefaultOpts.Algorithm
	}
	if opts.NodeSpacing <= 0 {
		opts.NodeSpacing = DefaultOpts.NodeSpacing
	}
	if opts.LayerSpacing <= 0 {
		opts.LayerSpacing = DefaultOpts.LayerSpacing
	}
	if opts.Padding == "" {
		opts.Padding = DefaultOpts.Padding
	}
	if opts.EdgeNodeSpacing <= 0 {
		opts.EdgeNodeSpacing = DefaultOpts.EdgeNodeSpacing
	}
	if opts.SelfLoopSpacing <= 0 {
		opts.SelfLoopSpacing = DefaultOpts.SelfLoopSpacing
	}
	return opts
}

type Result struct {
	Graph *mmdtarget.Graph
	Err   error
}

// LayoutAsync runs Layout on its own goroutine. The channel receives exactly
// one result.
func LayoutAsync(ctx context.Context, kind mmdmodel.Kind, g *mmdmodel.Graph, opts *ConfigurableOpts) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := Layout(ctx, kind, g, opts)
		ch <- Result{Graph: out, Err: err}
	}()
	return ch
}

// Layout sizes the nodes of g, has the solver place them and post-processes
// the answer into absolute, orthogonal, clipped routes.
func Layout(ctx context.Context, kind mmdmodel.Kind, g *mmdmodel.Graph, opts *ConfigurableOpts) (_ *mmdtarget.Graph, err error) {
	if kind == "" {
		kind = mmdmodel.KindFlowchart
	}
	defer xdefer.Errorf(&err, "failed to lay out %s diagram", kind)

	if g == nil {
		return nil, errors.New("missing graph")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := opts.withDefaults()
	if o.Solver == nil {
		return nil, errors.New("no solver configured")
	}

	ctx = log.WithFields(ctx, slog.F("layout", "elk"), slog.F("kind", string(kind)))

	g.Normalize()
	for i, e := range g.Edges {
		if e.ID == "" {
			e.ID = fmt.Sprintf("e%d", i)
		}
	}
	c := newConverter(ctx, g, o, textmeasure.NewRuler())
	elkGraph := c.convert()

	t := time.Now()
	solved, err := o.Solver.Solve(ctx, elkGraph)
	if err != nil {
		return nil, err
	}
	if solved == nil {
		return nil, errors.New("solver returned no graph")
	}
	log.Debug(ctx, "solved", slog.F("duration", time.Since(t).String()), slog.F("separate", c.separate))

	ex := extract(solved)
	return c.result(kind, ex), nil
}

func (c *converter) result(kind mmdmodel.Kind, ex *extraction) *mmdtarget.Graph {
	out := &mmdtarget.Graph{
		Kind:      kind,
		Direction: c.g.Direction,
	}

	var groupIDs []string
	c.g.WalkSubgraphs(func(sg, parent *mmdmodel.Subgraph, depth int) {
		b, ok := ex.boxes[sg.ID]
		if !ok {
			log.Debug(c.ctx, "solver dropped group", slog.F("id", sg.ID))
			return
		}
		gr := &mmdtarget.Group{
			Rect:      rectOf(b),
			ID:        sg.ID,
			Label:     sg.Label,
			Direction: c.g.EffectiveDirection(sg),
			Depth:     depth,
		}
		if parent != nil {
			gr.Parent = parent.ID
		}
		out.Groups = append(out.Groups, gr)
		groupIDs = append(groupIDs, sg.ID)
	})

	for _, n := range c.g.OrderedNodes() {
		if c.g.Subgraph(n.ID) != nil {
			continue
		}
		b, ok := ex.boxes[n.ID]
		if !ok {
			log.Debug(c.ctx, "solver dropped node", slog.F("id", n.ID))
			continue
		}
		tn := &mmdtarget.Node{
			Rect:    rectOf(b),
			ID:      n.ID,
			Label:   n.Label,
			Shape:   shape.NewShape(n.Shape, b).GetType(),
			Rows:    n.Rows,
			Classes: n.Classes,
		}
		if sg := c.membership[n.ID]; sg != nil {
			tn.Group = sg.ID
		}
		out.Nodes = append(out.Nodes, tn)
	}

	orth := newOrthogonalizer(ex, groupIDs, !c.g.Direction.IsHorizontal())
	for _, e := range c.g.Edges {
		ids, ok := c.pieces[e.ID]
		if !ok {
			continue
		}
		route := ex.reassemble(ids)
		if len(route) < 2 {
			log.Debug(c.ctx, "solver returned no route", slog.F("edge", e.ID))
			continue
		}
		route = orth.rewrite(route, e.Src, e.Dst)

		src, dst := out.Node(e.Src), out.Node(e.Dst)
		if src == nil || dst == nil {
			continue
		}
		clipRoute(route, src, dst)

		te := &mmdtarget.Edge{
			ID:       e.ID,
			Src:      e.Src,
			Dst:      e.Dst,
			Label:    e.Label,
			Style:    e.Style,
			Route:    route,
			SrcLabel: e.SrcLabel,
			DstLabel: e.DstLabel,
		}
		if e.Label != "" {
			te.LabelPosition = c.labelPosition(ex, e, route)
		}
		if e.SrcLabel != "" {
			te.SrcLabelPosition = geo.Route(route).PointAtRatio(label.LEFT_LABEL_POSITION)
		}
		if e.DstLabel != "" {
			te.DstLabelPosition = geo.Route(route).PointAtRatio(label.RIGHT_LABEL_POSITION)
		}
		out.Edges = append(out.Edges, te)
	}

	c.fitCanvas(out, ex)
	return out
}

func rectOf(b *geo.Box) mmdtarget.Rect {
	return mmdtarget.Rect{X: b.TopLeft.X, Y: b.TopLeft.Y, Width: b.Width, Height: b.Height}
}

// labelPosition prefers the solver's label placement and falls back to the
// middle of the route.
func (c *converter) labelPosition(ex *extraction, e *mmdmodel.Edge, route []*geo.Point) *geo.Point {
	if se, ok := ex.edges[c.labelPiece[e.ID]]; ok && len(se.labels) > 0 {
		return se.labels[0]
	}
	return geo.Route(route).PointAtRatio(label.CENTER_LABEL_POSITION)
}

// clipRoute moves both route ends onto the borders of their nodes' shapes.
func clipRoute(route []*geo.Point, src, dst *mmdtarget.Node) {
	srcBox, dstBox := src.Box(), dst.Box()
	route[0] = snapToBorder(srcBox, route[0], route[1])
	last := len(route) - 1
	route[last] = snapToBorder(dstBox, route[last], route[last-1])
	shape.Clip(src.Shape, srcBox, route, false)
	shape.Clip(dst.Shape, dstBox, route, true)
}

// snapToBorder pushes an end point lying inside b out to the side facing
// its neighbor along the segment's axis.
func snapToBorder(b *geo.Box, p, next *geo.Point) *geo.Point {
	if !b.Contains(p) {
		return p
	}
	s := geo.Segment{Start: p, End: next}
	switch {
	case s.IsVertical() && !s.IsHorizontal():
		if next.Y < p.Y {
			return geo.NewPoint(p.X, b.TopLeft.Y)
		}
		return geo.NewPoint(p.X, b.Bottom())
	case s.IsHorizontal() && !s.IsVertical():
		if next.X < p.X {
			return geo.NewPoint(b.TopLeft.X, p.Y)
		}
		return geo.NewPoint(b.Right(), p.Y)
	}
	return p
}

// fitCanvas grows the solver's canvas to cover anything outside of it,
// shifting everything when something landed at negative coordinates.
func (c *converter) fitCanvas(out *mmdtarget.Graph, ex *extraction) {
	ext := mmdtarget.NewExtent()
	for _, n := range out.Nodes {
		ext.AddRect(n.Rect)
	}
	for _, gr := range out.Groups {
		ext.AddRect(gr.Rect)
	}
	for _, e := range out.Edges {
		for _, p := range e.Route {
			ext.AddPoint(p)
		}
		if e.LabelPosition != nil {
			w, h := c.ruler.MeasureFormatted(c.font(), e.Label)
			ext.AddPoint(e.LabelPosition.Translate(-w/2, -h/2))
			ext.AddPoint(e.LabelPosition.Translate(w/2, h/2))
		}
	}
	width, height := ex.width, ex.height
	if ext.Empty() {
		out.Width, out.Height = width, height
		return
	}

	var dx, dy float64
	if ext.MinX < 0 {
		dx = -ext.MinX + CANVAS_MARGIN
	}
	if ext.MinY < 0 {
		dy = -ext.MinY + CANVAS_MARGIN
	}
	if dx != 0 || dy != 0 {
		shiftGraph(out, dx, dy)
	}
	width += dx
	height += dy
	if ext.MaxX+dx > width {
		width = ext.MaxX + dx + CANVAS_MARGIN
	}
	if ext.MaxY+dy > height {
		height = ext.MaxY + dy + CANVAS_MARGIN
	}
	out.Width, out.Height = math.Ceil(width), math.Ceil(height)
}

func shiftGraph(g *mmdtarget.Graph, dx, dy float64) {
	for _, n := range g.Nodes {
		n.Shift(dx, dy)
	}
	for _, gr := range g.Groups {
		gr.Shift(dx, dy)
	}
	for _, e := range g.Edges {
		e.Route = geo.Points(e.Route).Translate(dx, dy)
		for _, p := range []**geo.Point{&e.LabelPosition, &e.SrcLabelPosition, &e.DstLabelPosition} {
			if *p != nil {
				*p = (*p).Translate(dx, dy)
			}
		}
	}
}
