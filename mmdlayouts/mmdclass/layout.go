// Package mmdclass lays out class diagrams: compartment boxes ranked by a
// leveled solver, relationships snapped to orthogonal routes.
package mmdclass

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdtarget"
)

type Opts struct {
	NodeSpacing float64
	RankSpacing float64
	FontFamily  string
	Solver      LeveledSolver
}

var DefaultOpts = Opts{
	NodeSpacing: NODE_SPACING,
	RankSpacing: RANK_SPACING,
}

func (o Opts) withDefaults() Opts {
	if o.NodeSpacing <= 0 {
		o.NodeSpacing = NODE_SPACING
	}
	if o.RankSpacing <= 0 {
		o.RankSpacing = RANK_SPACING
	}
	return o
}

type Result struct {
	Class *mmdtarget.Class
	Err   error
}

// LayoutAsync runs Layout on its own goroutine.
func LayoutAsync(ctx context.Context, c *mmdmodel.Class, opts *Opts) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := Layout(ctx, c, opts)
		ch <- Result{Class: out, Err: err}
	}()
	return ch
}

func Layout(ctx context.Context, c *mmdmodel.Class, opts *Opts) (_ *mmdtarget.Class, err error) {
	defer xdefer.Errorf(&err, "failed to lay out class diagram")

	if c == nil {
		return nil, errors.New("missing class diagram")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := opts.withDefaults()
	if o.Solver == nil {
		return nil, errors.New("no solver configured")
	}
	ctx = log.WithFields(ctx, slog.F("layout", "class"))

	l := &classLayout{
		ctx:   ctx,
		model: c,
		opts:  o,
		ruler: textmeasure.NewRuler(),
		mono:  textmeasure.NewMonoRuler(),
	}
	lg := l.leveledGraph()

	t := time.Now()
	if err := o.Solver.Solve(ctx, lg); err != nil {
		return nil, err
	}
	log.Debug(ctx, "solved", slog.F("duration", time.Since(t).String()))

	return l.result(lg), nil
}

type classLayout struct {
	ctx   context.Context
	model *mmdmodel.Class
	opts  Opts
	ruler *textmeasure.Ruler
	mono  *textmeasure.Ruler

	boxes    map[string]*mmdtarget.ClassBox
	reversed map[int]bool
}

func (l *classLayout) font(size int, style textmeasure.FontStyle) textmeasure.Font {
	return textmeasure.NewFont(l.opts.FontFamily, size, style)
}

// size computes the compartments of c.
func (l *classLayout) size(c *mmdmodel.ClassNode) *mmdtarget.ClassBox {
	b := &mmdtarget.ClassBox{
		ID:         c.ID,
		Label:      c.Label,
		Annotation: c.Annotation,
		Attributes: c.Attributes,
		Methods:    c.Methods,
	}

	headerW, headerH := l.ruler.MeasurePrecise(l.font(textmeasure.FONT_SIZE_M, textmeasure.FONT_STYLE_BOLD), c.Label)
	b.HeaderHeight = headerH + 2*HEADER_PADDING_Y
	if c.Annotation != "" {
		aw, _ := l.ruler.MeasurePrecise(l.font(MEMBER_FONT_SIZE, textmeasure.FONT_STYLE_ITALIC), "<<"+c.Annotation+">>")
		headerW = math.Max(headerW, aw)
		b.HeaderHeight += ANNOTATION_EXTRA
	}

	width := headerW
	section := func(members []string) float64 {
		if len(members) == 0 {
			return EMPTY_SECTION_HEIGHT
		}
		for _, m := range members {
			w, _ := l.mono.MeasurePrecise(l.font(MEMBER_FONT_SIZE, textmeasure.FONT_STYLE_REGULAR), m)
			width = math.Max(width, w)
		}
		return float64(len(members))*MEMBER_ROW_HEIGHT + SECTION_PADDING_Y
	}
	b.AttributesHeight = section(c.Attributes)
	b.MethodsHeight = section(c.Methods)

	b.Width = math.Max(MIN_WIDTH, math.Ceil(width+2*PADDING_X))
	b.Height = math.Ceil(b.HeaderHeight + b.AttributesHeight + b.MethodsHeight)
	return b
}

func relID(i int) string {
	return fmt.Sprintf("r%d", i)
}

func (l *classLayout) leveledGraph() *LeveledGraph {
	lg := &LeveledGraph{
		Direction:   l.model.Direction.Or(mmdmodel.DirectionTB),
		NodeSpacing: l.opts.NodeSpacing,
		RankSpacing: l.opts.RankSpacing,
	}
	l.boxes = make(map[string]*mmdtarget.ClassBox, len(l.model.Classes))
	for _, c := range l.model.Classes {
		if _, dup := l.boxes[c.ID]; dup {
			continue
		}
		b := l.size(c)
		l.boxes[c.ID] = b
		lg.Nodes = append(lg.Nodes, &LeveledNode{ID: c.ID, Width: b.Width, Height: b.Height})
	}

	l.reversed = breakCycles(l.model.Classes, l.model.Relationships)
	for i, r := range l.model.Relationships {
		if l.boxes[r.From] == nil || l.boxes[r.To] == nil {
			log.Debug(l.ctx, "skipping relationship with unknown class", slog.F("from", r.From), slog.F("to", r.To))
			continue
		}
		e := &LeveledEdge{ID: relID(i), Src: r.From, Dst: r.To}
		if l.reversed[i] {
			e.Src, e.Dst = r.To, r.From
		}
		if r.Label != "" {
			e.LabelWidth, e.LabelHeight = l.ruler.MeasurePrecise(l.font(MEMBER_FONT_SIZE, textmeasure.FONT_STYLE_REGULAR), r.Label)
		}
		lg.Edges = append(lg.Edges, e)
	}
	return lg
}

func (l *classLayout) result(lg *LeveledGraph) *mmdtarget.Class {
	out := &mmdtarget.Class{}
	for _, n := range lg.Nodes {
		b := l.boxes[n.ID]
		b.X, b.Y = n.X, n.Y
		out.Classes = append(out.Classes, b)
	}

	edges := make(map[string]*LeveledEdge, len(lg.Edges))
	for _, e := range lg.Edges {
		edges[e.ID] = e
	}

	placer := newLabelPlacer(l, out.Classes)
	for i, r := range l.model.Relationships {
		e, ok := edges[relID(i)]
		if !ok {
			continue
		}
		from, to := l.boxes[r.From], l.boxes[r.To]
		route := e.Route
		if l.reversed[i] {
			route = reversedRoute(route)
		}
		if len(route) < 2 {
			log.Debug(l.ctx, "solver returned no route", slog.F("relationship", relID(i)))
			route = []*geo.Point{from.Center(), to.Center()}
		}
		route = snapOrthogonal(route)
		if r.From == r.To {
			route = selfLoop(from.Box())
		} else {
			route = reclip(route, from.Box(), to.Box())
		}

		rel := &mmdtarget.Relationship{
			From:            r.From,
			To:              r.To,
			Type:            r.Type,
			Label:           r.Label,
			FromCardinality: r.FromCardinality,
			ToCardinality:   r.ToCardinality,
			Marker:          r.Marker,
			Route:           route,
		}
		placer.place(rel)
		out.Relationships = append(out.Relationships, rel)
	}

	fitCanvas(out, placer.placed)
	return out
}

func reversedRoute(route []*geo.Point) []*geo.Point {
	out := make([]*geo.Point, len(route))
	for i, p := range route {
		out[len(route)-1-i] = p
	}
	return out
}

// fitCanvas moves everything to start at CANVAS_PADDING and sizes the canvas
// around classes, routes and labels.
func fitCanvas(c *mmdtarget.Class, labels []*geo.Box) {
	ext := mmdtarget.NewExtent()
	for _, b := range c.Classes {
		ext.AddRect(b.Rect)
	}
	for _, r := range c.Relationships {
		for _, p := range r.Route {
			ext.AddPoint(p)
		}
	}
	for _, b := range labels {
		ext.AddPoint(b.TopLeft)
		ext.AddPoint(geo.NewPoint(b.Right(), b.Bottom()))
	}
	if ext.Empty() {
		return
	}

	dx, dy := CANVAS_PADDING-ext.MinX, CANVAS_PADDING-ext.MinY
	for _, b := range c.Classes {
		b.Shift(dx, dy)
	}
	for _, r := range c.Relationships {
		r.Route = geo.Points(r.Route).Translate(dx, dy)
		for _, p := range []**geo.Point{&r.LabelPosition, &r.FromCardinalityPosition, &r.ToCardinalityPosition} {
			if *p != nil {
				*p = (*p).Translate(dx, dy)
			}
		}
	}
	c.Width = math.Ceil(ext.MaxX - ext.MinX + 2*CANVAS_PADDING)
	c.Height = math.Ceil(ext.MaxY - ext.MinY + 2*CANVAS_PADDING)
}
