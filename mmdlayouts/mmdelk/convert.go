package mmdelk

import (
	"context"
	"fmt"
	"math"

	"cdr.dev/slog"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
)

const (
	rootID = "root"

	// width and height of hierarchical ports
	PORT_SIZE = 1.

	ROW_PADDING = 4.
)

// edgePartition groups edges by where both endpoints live.
type edgePartition struct {
	// internal edges keyed by the subgraph holding both endpoints
	internal map[string][]*mmdmodel.Edge
	root     []*mmdmodel.Edge
	cross    []*mmdmodel.Edge
	// edges whose endpoints are missing or are subgraphs
	skipped []*mmdmodel.Edge
}

func partitionEdges(g *mmdmodel.Graph, membership map[string]*mmdmodel.Subgraph) edgePartition {
	p := edgePartition{internal: make(map[string][]*mmdmodel.Edge)}
	for _, e := range g.Edges {
		if !isLeaf(g, e.Src) || !isLeaf(g, e.Dst) {
			p.skipped = append(p.skipped, e)
			continue
		}
		srcSG, dstSG := membership[e.Src], membership[e.Dst]
		switch {
		case srcSG == nil && dstSG == nil:
			p.root = append(p.root, e)
		case srcSG == dstSG:
			p.internal[srcSG.ID] = append(p.internal[srcSG.ID], e)
		default:
			p.cross = append(p.cross, e)
		}
	}
	return p
}

func isLeaf(g *mmdmodel.Graph, id string) bool {
	return g.Node(id) != nil && g.Subgraph(id) == nil
}

func toELKDirection(d mmdmodel.Direction) Direction {
	switch d {
	case mmdmodel.DirectionBT:
		return Up
	case mmdmodel.DirectionLR:
		return Right
	case mmdmodel.DirectionRL:
		return Left
	default:
		return Down
	}
}

// exitSide is the side a flow in direction d leaves a box through.
func exitSide(d mmdmodel.Direction) PortSide {
	switch d {
	case mmdmodel.DirectionBT:
		return North
	case mmdmodel.DirectionLR:
		return East
	case mmdmodel.DirectionRL:
		return West
	default:
		return South
	}
}

func entrySide(d mmdmodel.Direction) PortSide {
	switch exitSide(d) {
	case North:
		return South
	case East:
		return West
	case West:
		return East
	default:
		return North
	}
}

// piece is one solver edge of a possibly split model edge.
type piece struct {
	id        string
	src, dst  string
	container string
}

type converter struct {
	ctx   context.Context
	g     *mmdmodel.Graph
	opts  ConfigurableOpts
	ruler *textmeasure.Ruler

	membership map[string]*mmdmodel.Subgraph
	parents    map[string]*mmdmodel.Subgraph
	separate   bool

	// ELK nodes of leaves and groups by id
	nodes map[string]*ELKNode
	// solver edge ids making up each model edge, in route order
	pieces map[string][]string
	// the piece carrying each model edge's label
	labelPiece map[string]string
}

func newConverter(ctx context.Context, g *mmdmodel.Graph, opts ConfigurableOpts, ruler *textmeasure.Ruler) *converter {
	return &converter{
		ctx:        ctx,
		g:          g,
		opts:       opts,
		ruler:      ruler,
		membership: g.Membership(),
		parents:    g.SubgraphParents(),
		separate:   g.HasDirectionOverride(),
		nodes:      make(map[string]*ELKNode),
		pieces:     make(map[string][]string),
		labelPiece: make(map[string]string),
	}
}

func (c *converter) font() textmeasure.Font {
	return textmeasure.NewFont(c.opts.FontFamily, textmeasure.FONT_SIZE_M, textmeasure.FONT_STYLE_REGULAR)
}

func (c *converter) convert() *ELKGraph {
	elkGraph := &ELKGraph{
		ID: rootID,
		LayoutOptions: &ElkOpts{
			Algorithm:       c.opts.Algorithm,
			NodeSpacing:     c.opts.NodeSpacing,
			LayerSpacing:    c.opts.LayerSpacing,
			Padding:         c.opts.Padding,
			EdgeNodeSpacing: c.opts.EdgeNodeSpacing,
			SelfLoopSpacing: c.opts.SelfLoopSpacing,
			EdgeRouting:     "ORTHOGONAL",
			Direction:       toELKDirection(c.g.Direction),
			Thoroughness:    8,
			FixedAlignment:  "BALANCED",
		},
	}
	if c.separate {
		elkGraph.LayoutOptions.HierarchyHandling = SeparateChildren
	} else {
		elkGraph.LayoutOptions.HierarchyHandling = IncludeChildren
	}

	// groups first so leaves can find their parent
	c.g.WalkSubgraphs(func(sg, parent *mmdmodel.Subgraph, _ int) {
		n := c.groupNode(sg)
		c.nodes[sg.ID] = n
		if parent == nil {
			elkGraph.Children = append(elkGraph.Children, n)
		} else {
			pn := c.nodes[parent.ID]
			pn.Children = append(pn.Children, n)
		}
	})
	for _, n := range c.g.OrderedNodes() {
		if _, isGroup := c.nodes[n.ID]; isGroup {
			log.Debug(c.ctx, "node shadows a subgraph id", slog.F("id", n.ID))
			continue
		}
		en := c.leafNode(n)
		c.nodes[n.ID] = en
		if sg := c.membership[n.ID]; sg != nil {
			pn := c.nodes[sg.ID]
			pn.Children = append(pn.Children, en)
		} else {
			elkGraph.Children = append(elkGraph.Children, en)
		}
	}

	parts := partitionEdges(c.g, c.membership)
	for _, e := range parts.skipped {
		log.Debug(c.ctx, "skipping edge with unknown or group endpoint",
			slog.F("src", e.Src), slog.F("dst", e.Dst))
	}

	skipped := make(map[*mmdmodel.Edge]bool, len(parts.skipped))
	for _, e := range parts.skipped {
		skipped[e] = true
	}
	if !c.separate {
		for _, e := range c.g.Edges {
			if skipped[e] {
				continue
			}
			elkGraph.Edges = append(elkGraph.Edges, c.edge(e, piece{id: e.ID, src: e.Src, dst: e.Dst}, true))
			c.pieces[e.ID] = []string{e.ID}
			c.labelPiece[e.ID] = e.ID
		}
		return elkGraph
	}

	for _, e := range c.g.Edges {
		if skipped[e] {
			continue
		}
		var ps []piece
		if contains(parts.cross, e) {
			ps = c.splitCrossEdge(e)
		} else {
			container := ""
			if sg := c.membership[e.Src]; sg != nil {
				container = sg.ID
			}
			ps = []piece{{id: e.ID, src: e.Src, dst: e.Dst, container: container}}
		}
		labelAt := len(ps) / 2
		for i, p := range ps {
			ee := c.edge(e, p, i == labelAt)
			if p.container == "" {
				elkGraph.Edges = append(elkGraph.Edges, ee)
			} else {
				cn := c.nodes[p.container]
				cn.Edges = append(cn.Edges, ee)
			}
			c.pieces[e.ID] = append(c.pieces[e.ID], p.id)
		}
		c.labelPiece[e.ID] = ps[labelAt].id
	}
	return elkGraph
}

func contains(edges []*mmdmodel.Edge, e *mmdmodel.Edge) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}

// chain lists the subgraphs enclosing id from innermost outwards.
func (c *converter) chain(id string) []*mmdmodel.Subgraph {
	var out []*mmdmodel.Subgraph
	for sg := c.membership[id]; sg != nil; sg = c.parents[sg.ID] {
		out = append(out, sg)
	}
	return out
}

// splitCrossEdge routes e through a port on every subgraph boundary between
// each endpoint and their lowest common ancestor.
func (c *converter) splitCrossEdge(e *mmdmodel.Edge) []piece {
	srcChain := c.chain(e.Src)
	dstChain := c.chain(e.Dst)

	// strip the shared outer part
	for len(srcChain) > 0 && len(dstChain) > 0 &&
		srcChain[len(srcChain)-1] == dstChain[len(dstChain)-1] {
		srcChain = srcChain[:len(srcChain)-1]
		dstChain = dstChain[:len(dstChain)-1]
	}

	var ps []piece
	cur := e.Src
	add := func(dst, container string) {
		ps = append(ps, piece{
			id:        fmt.Sprintf("%s$%d", e.ID, len(ps)),
			src:       cur,
			dst:       dst,
			container: container,
		})
		cur = dst
	}

	for _, sg := range srcChain {
		port := c.addPort(sg, e.ID+"$"+sg.ID+"$out", exitSide(c.g.EffectiveDirection(sg)))
		add(port, sg.ID)
	}
	for i := len(dstChain) - 1; i >= 0; i-- {
		sg := dstChain[i]
		container := ""
		if p := c.parents[sg.ID]; p != nil {
			container = p.ID
		}
		port := c.addPort(sg, e.ID+"$"+sg.ID+"$in", entrySide(c.g.EffectiveDirection(sg)))
		add(port, container)
	}
	container := ""
	if sg := c.membership[e.Dst]; sg != nil {
		container = sg.ID
	}
	add(e.Dst, container)
	return ps
}

func (c *converter) addPort(sg *mmdmodel.Subgraph, id string, side PortSide) string {
	n := c.nodes[sg.ID]
	n.Ports = append(n.Ports, &ELKPort{
		ID:     id,
		Width:  PORT_SIZE,
		Height: PORT_SIZE,
		LayoutOptions: &ElkOpts{
			PortSide: side,
		},
	})
	return id
}

func (c *converter) edge(e *mmdmodel.Edge, p piece, withLabel bool) *ELKEdge {
	ee := &ELKEdge{
		ID:      p.id,
		Sources: []string{p.src},
		Targets: []string{p.dst},
	}
	if withLabel && e.Label != "" {
		w, h := c.ruler.MeasureFormatted(c.font(), e.Label)
		ee.Labels = append(ee.Labels, &ELKLabel{
			Text:   e.Label,
			Width:  math.Ceil(w),
			Height: math.Ceil(h),
			LayoutOptions: &ElkOpts{
				InlineEdgeLabels: true,
			},
		})
	}
	return ee
}

// leafSize measures the label and rows of n and grows the result to fit its
// shape.
func (c *converter) leafSize(n *mmdmodel.Node) (float64, float64) {
	w, h := c.ruler.MeasureFormatted(c.font(), n.Label)
	for _, row := range n.Rows {
		rw, rh := c.ruler.MeasureFormatted(c.font(), row)
		w = math.Max(w, rw)
		h += rh + ROW_PADDING
	}
	s := shape.NewShape(n.Shape, geo.NewBox(geo.NewPoint(0, 0), w, h))
	padX, padY := s.GetDefaultPadding()
	return s.GetDimensionsToFit(w, h, padX, padY)
}

func (c *converter) leafNode(n *mmdmodel.Node) *ELKNode {
	w, h := c.leafSize(n)
	return &ELKNode{
		ID:     n.ID,
		Width:  w,
		Height: h,
	}
}

func (c *converter) groupNode(sg *mmdmodel.Subgraph) *ELKNode {
	padding := ParsePadding(c.opts.Padding)
	n := &ELKNode{ID: sg.ID}
	if sg.Label != "" {
		w, h := c.ruler.MeasureFormatted(c.font(), sg.Label)
		padding.Top += int(math.Ceil(h))
		n.Labels = append(n.Labels, &ELKLabel{
			Text:   sg.Label,
			Width:  math.Ceil(w),
			Height: math.Ceil(h),
		})
	}
	n.LayoutOptions = &ElkOpts{
		Padding:          padding.String(),
		NodeSpacing:      c.opts.NodeSpacing,
		LayerSpacing:     c.opts.LayerSpacing,
		EdgeNodeSpacing:  c.opts.EdgeNodeSpacing,
		SelfLoopSpacing:  c.opts.SelfLoopSpacing,
		ContentAlignment: "H_CENTER V_CENTER",
	}
	if c.separate {
		n.LayoutOptions.HierarchyHandling = SeparateChildren
		n.LayoutOptions.Direction = toELKDirection(c.g.EffectiveDirection(sg))
		n.LayoutOptions.PortConstraints = FixedSide
		n.LayoutOptions.Algorithm = c.opts.Algorithm
		n.LayoutOptions.EdgeRouting = "ORTHOGONAL"
	}
	return n
}
