package mmdascii

import (
	"context"
	"strings"

	"cdr.dev/slog"

	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciicanvas"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciiroute"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

// box is a node as the grid sees it: stacked sections of text lines split
// by horizontal rules.
type box struct {
	id       string
	sections [][]string
	rounded  bool
}

type edge struct {
	src      string
	dst      string
	label    string
	srcLabel string
	dstLabel string
	stroke   asciiroute.Stroke
}

type group struct {
	label    string
	nodes    []string
	children []*group
}

// asciiGraph is what flowchart, state, ER and class diagrams are reduced to
// before they are placed on the grid.
type asciiGraph struct {
	flow   asciiroute.Flow
	boxes  []*box
	edges  []*edge
	groups []*group
}

func (ag *asciiGraph) box(id string) *box {
	for _, b := range ag.boxes {
		if b.id == id {
			return b
		}
	}
	return nil
}

func flowOf(d mmdmodel.Direction) asciiroute.Flow {
	if d.IsHorizontal() {
		return asciiroute.FlowLR
	}
	return asciiroute.FlowTD
}

func textLines(s string) []string {
	return textmeasure.Lines(textmeasure.StripFormatting(s))
}

func fromGraph(g *mmdmodel.Graph) *asciiGraph {
	ag := &asciiGraph{flow: flowOf(g.Direction)}
	for _, n := range g.OrderedNodes() {
		b := &box{id: n.ID, sections: [][]string{textLines(n.Label)}}
		if len(n.Rows) > 0 {
			b.sections = append(b.sections, n.Rows)
		}
		switch n.Shape {
		case shape.ROUNDED_TYPE, shape.STADIUM_TYPE, shape.CIRCLE_TYPE, shape.DOUBLE_CIRCLE_TYPE:
			b.rounded = true
		}
		ag.boxes = append(ag.boxes, b)
	}
	for _, e := range g.Edges {
		ag.edges = append(ag.edges, &edge{
			src:      e.Src,
			dst:      e.Dst,
			label:    strings.Join(textLines(e.Label), " "),
			srcLabel: e.SrcLabel,
			dstLabel: e.DstLabel,
			stroke: asciiroute.Stroke{
				Weight:    weightOf(e.Style.Line),
				Invisible: e.Style.Line == mmdmodel.LineInvisible,
				Start:     markerOf(e.Style.ArrowStart),
				End:       markerOf(e.Style.ArrowEnd),
			},
		})
	}
	var convert func(sg *mmdmodel.Subgraph) *group
	convert = func(sg *mmdmodel.Subgraph) *group {
		gr := &group{label: sg.Label, nodes: sg.Nodes}
		if gr.label == "" {
			gr.label = sg.ID
		}
		for _, child := range sg.Subgraphs {
			gr.children = append(gr.children, convert(child))
		}
		return gr
	}
	for _, sg := range g.Subgraphs {
		ag.groups = append(ag.groups, convert(sg))
	}
	return ag
}

func weightOf(l mmdmodel.LineStyle) charset.Weight {
	switch l {
	case mmdmodel.LineDotted:
		return charset.Dotted
	case mmdmodel.LineThick:
		return charset.Thick
	}
	return charset.Solid
}

func markerOf(a mmdmodel.ArrowType) asciiroute.Marker {
	switch a {
	case mmdmodel.ArrowNormal:
		return asciiroute.MarkerArrow
	case mmdmodel.ArrowCircle, mmdmodel.ArrowZeroOrOne:
		return asciiroute.MarkerCircle
	case mmdmodel.ArrowCross:
		return asciiroute.MarkerCross
	case mmdmodel.ArrowExactlyOne:
		return asciiroute.MarkerOne
	case mmdmodel.ArrowZeroOrMore, mmdmodel.ArrowOneOrMore:
		return asciiroute.MarkerMany
	}
	return asciiroute.MarkerNone
}

// gridRenderer places an asciiGraph on a grid and draws it. The grid, and
// with it every column widened for a label, lives for one render.
type gridRenderer struct {
	ctx   context.Context
	opts  *Opts
	chars charset.Set
	ruler *textmeasure.Ruler

	ag   *asciiGraph
	grid *asciiroute.Grid
	pos  map[string]asciiroute.GridCoord
}

func newGridRenderer(ctx context.Context, ag *asciiGraph, opts *Opts) *gridRenderer {
	return &gridRenderer{
		ctx:   ctx,
		opts:  opts,
		chars: charset.New(opts.Charset),
		ruler: textmeasure.NewASCIIRuler(),
		ag:    ag,
		grid:  asciiroute.NewGrid(),
		pos:   make(map[string]asciiroute.GridCoord),
	}
}

// STRIDE is the distance between the top-left cells of neighbouring nodes:
// a block and one gap.
const STRIDE = asciiroute.BLOCK + 1

func (r *gridRenderer) render() *asciicanvas.Canvas {
	r.place()
	r.size()

	paths := make([]asciiroute.Path, len(r.ag.edges))
	routed := make([]bool, len(r.ag.edges))
	for i, e := range r.ag.edges {
		from, okFrom := r.pos[e.src]
		to, okTo := r.pos[e.dst]
		if !okFrom || !okTo {
			log.Debug(r.ctx, "edge endpoint not on grid", slog.F("src", e.src), slog.F("dst", e.dst))
			continue
		}
		paths[i] = asciiroute.DeterminePath(r.grid, from, to, r.ag.flow)
		routed[i] = true
		if paths[i].Fallback {
			log.Debug(r.ctx, "no route found, drawing a direct line", slog.F("src", e.src), slog.F("dst", e.dst))
		}
	}

	labelSegments := make([]int, len(r.ag.edges))
	for i, e := range r.ag.edges {
		labelSegments[i] = -1
		if routed[i] && e.label != "" && !e.stroke.Invisible {
			labelSegments[i] = asciiroute.DetermineLabelLine(r.grid, paths[i].Points, asciicanvas.TextWidth(e.label), r.ag.flow)
		}
	}

	w, h := r.grid.CanvasSize()
	c := asciicanvas.New(w, h, r.chars)
	var titles []groupTitle
	for _, gr := range r.ag.groups {
		r.drawGroup(c, gr, &titles)
	}
	for i, e := range r.ag.edges {
		if routed[i] {
			asciiroute.DrawPath(c, r.chars, r.grid, paths[i], e.stroke)
		}
	}
	for i, e := range r.ag.edges {
		if !routed[i] || e.stroke.Invisible {
			continue
		}
		asciiroute.DrawLabel(c, r.grid, paths[i].Points, labelSegments[i], e.label)
		asciiroute.DrawEndLabel(c, r.grid, paths[i].Points, true, e.srcLabel)
		asciiroute.DrawEndLabel(c, r.grid, paths[i].Points, false, e.dstLabel)
	}
	// titles go over any path crossing a group border
	for _, t := range titles {
		c.DrawText(t.x, t.y, t.text, asciicanvas.RoleGroup)
	}
	for _, b := range r.ag.boxes {
		if _, ok := r.pos[b.id]; ok {
			r.drawBox(c, b)
		}
	}
	return c
}

// place layers nodes breadth first from the roots in declaration order. A
// node keeps the first layer it is reached at, so cycles do not move it.
func (r *gridRenderer) place() {
	children := make(map[string][]string)
	indegree := make(map[string]int)
	for _, e := range r.ag.edges {
		if e.src == e.dst || r.ag.box(e.src) == nil || r.ag.box(e.dst) == nil {
			continue
		}
		children[e.src] = append(children[e.src], e.dst)
		indegree[e.dst]++
	}

	level := make(map[string]int)
	var layers [][]string
	assign := func(id string, l int) {
		level[id] = l
		for len(layers) <= l {
			layers = append(layers, nil)
		}
		layers[l] = append(layers[l], id)
	}
	var queue []string
	drain := func() {
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, child := range children[id] {
				if _, ok := level[child]; !ok {
					assign(child, level[id]+1)
					queue = append(queue, child)
				}
			}
		}
	}

	for _, b := range r.ag.boxes {
		if indegree[b.id] == 0 {
			assign(b.id, 0)
			queue = append(queue, b.id)
		}
	}
	drain()
	for _, b := range r.ag.boxes {
		if _, ok := level[b.id]; !ok {
			assign(b.id, 0)
			queue = append(queue, b.id)
			drain()
		}
	}

	for l, ids := range layers {
		for i, id := range ids {
			along, across := 1+l*STRIDE, 1+i*STRIDE
			c := asciiroute.GridCoord{X: along, Y: across}
			if r.ag.flow == asciiroute.FlowTD {
				c = asciiroute.GridCoord{X: across, Y: along}
			}
			r.pos[id] = c
			r.grid.Reserve(c, id)
		}
	}
}

// size sets the width of every grid column and the height of every row:
// node interiors fit their text, gaps get the configured padding and the
// outer margin room for one line and any group frames.
func (r *gridRenderer) size() {
	margin := 1 + 2*groupDepth(r.ag.groups)
	for x := 0; x <= r.grid.MaxX; x++ {
		switch {
		case x == 0:
			r.grid.Widen(x, margin)
		case x%STRIDE == 0:
			r.grid.Widen(x, r.opts.PaddingX)
		}
	}
	for y := 0; y <= r.grid.MaxY; y++ {
		switch {
		case y == 0:
			r.grid.Heighten(y, margin)
		case y%STRIDE == 0:
			r.grid.Heighten(y, r.opts.PaddingY)
		}
	}

	pad := r.opts.BoxBorderPadding
	for _, b := range r.ag.boxes {
		c, ok := r.pos[b.id]
		if !ok {
			continue
		}
		w, h := r.measure(b)
		r.grid.Widen(c.X+1, w+2*pad)
		r.grid.Heighten(c.Y+1, h+2*pad)
	}
}

func groupDepth(groups []*group) int {
	var depth int
	for _, gr := range groups {
		depth = max(depth, 1+groupDepth(gr.children))
	}
	return depth
}

// measure is the width and height of the text of b, rules between sections
// included.
func (r *gridRenderer) measure(b *box) (w, h int) {
	font := textmeasure.NewFont("", 1, textmeasure.FONT_STYLE_REGULAR)
	for i, section := range b.sections {
		if i > 0 {
			h++
		}
		for _, line := range section {
			lw, _ := r.ruler.Measure(font, line)
			if lw > w {
				w = lw
			}
		}
		h += len(section)
	}
	return w, h
}

func (r *gridRenderer) boxBounds(id string) (x0, y0, x1, y1 int) {
	c := r.pos[id]
	x0, y0 = r.grid.X(c.X), r.grid.Y(c.Y)
	x1 = r.grid.X(c.X+2) + r.grid.Width(c.X+2) - 1
	y1 = r.grid.Y(c.Y+2) + r.grid.Height(c.Y+2) - 1
	return
}

func (r *gridRenderer) drawBox(c *asciicanvas.Canvas, b *box) {
	x0, y0, x1, y1 := r.boxBounds(b.id)
	drawRect(c, r.chars, x0, y0, x1, y1, b.rounded, asciicanvas.RoleBorder)

	pad := r.opts.BoxBorderPadding
	y := y0 + 1 + pad
	for i, section := range b.sections {
		if i > 0 {
			for x := x0; x <= x1; x++ {
				arms := charset.Horizontal
				switch x {
				case x0:
					arms = charset.Vertical | charset.ArmRight
				case x1:
					arms = charset.Vertical | charset.ArmLeft
				}
				c.DrawLine(x, y, arms, charset.Solid, asciicanvas.RoleBorder)
			}
			y++
		}
		for _, line := range section {
			lx := x0 + 1 + pad
			if i == 0 {
				// titles are centered, member rows left aligned
				inner := x1 - x0 - 1
				lx = x0 + 1 + (inner-asciicanvas.TextWidth(line))/2
			}
			c.DrawText(lx, y, line, asciicanvas.RoleText)
			y++
		}
	}
}

func drawRect(c *asciicanvas.Canvas, chars charset.Set, x0, y0, x1, y1 int, rounded bool, role asciicanvas.Role) {
	for x := x0 + 1; x < x1; x++ {
		c.DrawLine(x, y0, charset.Horizontal, charset.Solid, role)
		c.DrawLine(x, y1, charset.Horizontal, charset.Solid, role)
	}
	for y := y0 + 1; y < y1; y++ {
		c.DrawLine(x0, y, charset.Vertical, charset.Solid, role)
		c.DrawLine(x1, y, charset.Vertical, charset.Solid, role)
	}
	if rounded {
		c.Set(x0, y0, chars.TopLeftArc(), role)
		c.Set(x1, y0, chars.TopRightArc(), role)
		c.Set(x0, y1, chars.BottomLeftArc(), role)
		c.Set(x1, y1, chars.BottomRightArc(), role)
		return
	}
	c.DrawLine(x0, y0, charset.ArmDown|charset.ArmRight, charset.Solid, role)
	c.DrawLine(x1, y0, charset.ArmDown|charset.ArmLeft, charset.Solid, role)
	c.DrawLine(x0, y1, charset.ArmUp|charset.ArmRight, charset.Solid, role)
	c.DrawLine(x1, y1, charset.ArmUp|charset.ArmLeft, charset.Solid, role)
}

type groupTitle struct {
	x, y int
	text string
}

// drawGroup frames the nodes of gr and its children one character outside
// the frames it contains. The label's place on the top border is appended to
// titles.
func (r *gridRenderer) drawGroup(c *asciicanvas.Canvas, gr *group, titles *[]groupTitle) (x0, y0, x1, y1 int, ok bool) {
	include := func(a0, b0, a1, b1 int) {
		if !ok {
			x0, y0, x1, y1, ok = a0, b0, a1, b1, true
			return
		}
		x0, y0 = min(x0, a0), min(y0, b0)
		x1, y1 = max(x1, a1), max(y1, b1)
	}
	for _, child := range gr.children {
		if a0, b0, a1, b1, childOK := r.drawGroup(c, child, titles); childOK {
			include(a0, b0, a1, b1)
		}
	}
	for _, id := range gr.nodes {
		if _, placed := r.pos[id]; placed {
			include(r.boxBounds(id))
		}
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	x0, y0, x1, y1 = x0-2, y0-2, x1+2, y1+1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	drawRect(c, r.chars, x0, y0, x1, y1, false, asciicanvas.RoleGroup)
	if gr.label != "" {
		*titles = append(*titles, groupTitle{x: x0 + 2, y: y0, text: " " + gr.label + " "})
	}
	return x0, y0, x1, y1, true
}
