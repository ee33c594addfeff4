package mmdgraphviz

import (
	"context"
	"math"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdelk"
	"oss.terrastruct.com/mmd/mmdmodel"
)

const (
	DEFAULT_SPACING = 70.
	// size of a group with nothing inside
	EMPTY_GROUP_SIZE = 40.
)

// ELKSolver answers ELK graphs with dot. Hierarchical graphs are laid out
// in one run with clusters. Graphs with separately laid out children are
// solved bottom up, one run per container, ports spread evenly along their
// side.
type ELKSolver struct {
	*engine
}

func NewELKSolver(ctx context.Context) (*ELKSolver, error) {
	e, err := newEngine(ctx)
	if err != nil {
		return nil, err
	}
	return &ELKSolver{engine: e}, nil
}

func (s *ELKSolver) Solve(ctx context.Context, g *mmdelk.ELKGraph) (_ *mmdelk.ELKGraph, err error) {
	defer xdefer.Errorf(&err, "graphviz layout failed")

	if g.LayoutOptions == nil {
		g.LayoutOptions = &mmdelk.ElkOpts{}
	}
	if g.LayoutOptions.HierarchyHandling == mmdelk.SeparateChildren {
		err = s.solveSeparate(ctx, g)
	} else {
		err = s.solveFlat(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func fromELKDirection(d mmdelk.Direction) mmdmodel.Direction {
	switch d {
	case mmdelk.Up:
		return mmdmodel.DirectionBT
	case mmdelk.Right:
		return mmdmodel.DirectionLR
	case mmdelk.Left:
		return mmdmodel.DirectionRL
	default:
		return mmdmodel.DirectionTB
	}
}

func newDotInput(opts *mmdelk.ElkOpts, fallback *mmdelk.ElkOpts) *dotInput {
	in := &dotInput{
		nodeSpacing: DEFAULT_SPACING,
		rankSpacing: DEFAULT_SPACING,
	}
	for _, o := range []*mmdelk.ElkOpts{fallback, opts} {
		if o == nil {
			continue
		}
		if o.NodeSpacing > 0 {
			in.nodeSpacing = float64(o.NodeSpacing)
		}
		if o.LayerSpacing > 0 {
			in.rankSpacing = float64(o.LayerSpacing)
		}
		if o.Direction != "" {
			in.direction = fromELKDirection(o.Direction)
		}
	}
	if in.direction == mmdmodel.DirectionNone {
		in.direction = mmdmodel.DirectionTB
	}
	return in
}

func padding(n *mmdelk.ELKNode) mmdelk.Padding {
	if n == nil || n.LayoutOptions == nil {
		return mmdelk.Padding{}
	}
	return mmdelk.ParsePadding(n.LayoutOptions.Padding)
}

func isGroup(n *mmdelk.ELKNode) bool {
	return len(n.Children) > 0 || n.LayoutOptions != nil
}

func newDotEdge(e *mmdelk.ELKEdge) *dotEdge {
	de := &dotEdge{id: e.ID}
	if len(e.Sources) > 0 {
		de.src = e.Sources[0]
	}
	if len(e.Targets) > 0 {
		de.dst = e.Targets[0]
	}
	if len(e.Labels) > 0 {
		de.labelWidth = e.Labels[0].Width
		de.labelHeight = e.Labels[0].Height
	}
	return de
}

func sections(route []*geo.Point, origin *geo.Point) []mmdelk.ELKEdgeSection {
	if len(route) < 2 {
		return nil
	}
	rel := func(p *geo.Point) mmdelk.ELKPoint {
		return mmdelk.ELKPoint{X: p.X - origin.X, Y: p.Y - origin.Y}
	}
	s := mmdelk.ELKEdgeSection{
		Start: rel(route[0]),
		End:   rel(route[len(route)-1]),
	}
	for _, p := range route[1 : len(route)-1] {
		s.BendPoints = append(s.BendPoints, rel(p))
	}
	return []mmdelk.ELKEdgeSection{s}
}

func placeLabels(e *mmdelk.ELKEdge, center, origin *geo.Point) {
	if center == nil {
		return
	}
	for _, l := range e.Labels {
		l.X = center.X - origin.X - l.Width/2
		l.Y = center.Y - origin.Y - l.Height/2
	}
}

func (s *ELKSolver) solveFlat(ctx context.Context, g *mmdelk.ELKGraph) error {
	in := newDotInput(g.LayoutOptions, nil)

	g.Walk(func(n, parent *mmdelk.ELKNode) {
		cluster := ""
		if parent != nil {
			cluster = parent.ID
		}
		if len(n.Children) > 0 {
			p := padding(n)
			in.clusters = append(in.clusters, &dotCluster{
				id:     n.ID,
				parent: cluster,
				margin: float64(max(p.Top, p.Left, p.Bottom, p.Right)),
			})
			return
		}
		w, h := n.Width, n.Height
		if isGroup(n) && w == 0 && h == 0 {
			p := padding(n)
			w = math.Max(EMPTY_GROUP_SIZE, float64(p.Left+p.Right))
			h = math.Max(EMPTY_GROUP_SIZE, float64(p.Top+p.Bottom))
		}
		in.nodes = append(in.nodes, &dotNode{id: n.ID, width: w, height: h, cluster: cluster})
	})

	edges := append([]*mmdelk.ELKEdge(nil), g.Edges...)
	g.Walk(func(n, _ *mmdelk.ELKNode) {
		edges = append(edges, n.Edges...)
	})
	for _, e := range edges {
		in.edges = append(in.edges, newDotEdge(e))
	}

	out, err := s.run(ctx, in)
	if err != nil {
		return err
	}

	abs := make(map[string]*geo.Box)
	var boxOf func(n *mmdelk.ELKNode) *geo.Box
	boxOf = func(n *mmdelk.ELKNode) *geo.Box {
		if b, ok := abs[n.ID]; ok {
			return b
		}
		var b *geo.Box
		if len(n.Children) > 0 {
			b = out.clusters[n.ID]
			if b == nil {
				var union *geo.Box
				for _, c := range n.Children {
					union = union.Union(boxOf(c))
				}
				p := padding(n)
				b = geo.NewBox(
					geo.NewPoint(union.TopLeft.X-float64(p.Left), union.TopLeft.Y-float64(p.Top)),
					union.Width+float64(p.Left+p.Right),
					union.Height+float64(p.Top+p.Bottom),
				)
			}
		} else {
			b = out.nodes[n.ID]
			if b == nil {
				b = geo.NewBox(geo.NewPoint(0, 0), n.Width, n.Height)
			}
		}
		abs[n.ID] = b
		return b
	}

	g.Walk(func(n, parent *mmdelk.ELKNode) {
		b := boxOf(n)
		origin := geo.NewPoint(0, 0)
		if parent != nil {
			origin = boxOf(parent).TopLeft
		}
		n.X, n.Y = b.TopLeft.X-origin.X, b.TopLeft.Y-origin.Y
		n.Width, n.Height = b.Width, b.Height
	})

	origin := geo.NewPoint(0, 0)
	for _, e := range edges {
		e.Sections = sections(out.routes[e.ID], origin)
		placeLabels(e, out.labels[e.ID], origin)
	}

	ext := geo.NewBox(origin, out.width, out.height)
	for _, b := range abs {
		ext = ext.Union(b)
	}
	g.Width, g.Height = math.Ceil(ext.Right()), math.Ceil(ext.Bottom())
	return nil
}

// container is the root or a group whose children are laid out together.
type container struct {
	node     *mmdelk.ELKNode
	children []*mmdelk.ELKNode
	edges    []*mmdelk.ELKEdge
	opts     *mmdelk.ElkOpts
}

func compass(side mmdelk.PortSide) string {
	switch side {
	case mmdelk.North:
		return "n"
	case mmdelk.East:
		return "e"
	case mmdelk.West:
		return "w"
	default:
		return "s"
	}
}

func portSide(p *mmdelk.ELKPort) mmdelk.PortSide {
	if p.LayoutOptions == nil || p.LayoutOptions.PortSide == "" {
		return mmdelk.South
	}
	return p.LayoutOptions.PortSide
}

func portCenter(owner *mmdelk.ELKNode, p *mmdelk.ELKPort) *geo.Point {
	return geo.NewPoint(owner.X+p.X+p.Width/2, owner.Y+p.Y+p.Height/2)
}

func (s *ELKSolver) solveSeparate(ctx context.Context, g *mmdelk.ELKGraph) error {
	var groups []*mmdelk.ELKNode
	g.Walk(func(n, _ *mmdelk.ELKNode) {
		if isGroup(n) {
			groups = append(groups, n)
		}
	})
	// pre-order reversed: children before parents
	for i := len(groups) - 1; i >= 0; i-- {
		n := groups[i]
		c := &container{node: n, children: n.Children, edges: n.Edges, opts: n.LayoutOptions}
		if _, _, err := s.solveContainer(ctx, c, g.LayoutOptions); err != nil {
			return err
		}
	}
	root := &container{children: g.Children, edges: g.Edges, opts: g.LayoutOptions}
	w, h, err := s.solveContainer(ctx, root, g.LayoutOptions)
	if err != nil {
		return err
	}
	g.Width, g.Height = math.Ceil(w), math.Ceil(h)
	return nil
}

type portRef struct {
	owner *mmdelk.ELKNode
	port  *mmdelk.ELKPort
}

func (s *ELKSolver) solveContainer(ctx context.Context, c *container, rootOpts *mmdelk.ElkOpts) (width, height float64, _ error) {
	pad := padding(c.node)

	childPorts := make(map[string]portRef)
	for _, child := range c.children {
		for _, p := range child.Ports {
			childPorts[p.ID] = portRef{owner: child, port: p}
		}
	}
	ownPorts := make(map[string]*mmdelk.ELKPort)
	if c.node != nil {
		for _, p := range c.node.Ports {
			ownPorts[p.ID] = p
		}
	}

	in := newDotInput(c.opts, rootOpts)
	for _, child := range c.children {
		w, h := child.Width, child.Height
		if isGroup(child) && w == 0 && h == 0 {
			w, h = EMPTY_GROUP_SIZE, EMPTY_GROUP_SIZE
		}
		in.nodes = append(in.nodes, &dotNode{id: child.ID, width: w, height: h})
	}
	var deferred []*mmdelk.ELKEdge
	for _, e := range c.edges {
		de := newDotEdge(e)
		if _, ok := ownPorts[de.src]; ok {
			deferred = append(deferred, e)
			continue
		}
		if _, ok := ownPorts[de.dst]; ok {
			deferred = append(deferred, e)
			continue
		}
		if ref, ok := childPorts[de.src]; ok {
			de.src, de.tailPort = ref.owner.ID, compass(portSide(ref.port))
		}
		if ref, ok := childPorts[de.dst]; ok {
			de.dst, de.headPort = ref.owner.ID, compass(portSide(ref.port))
		}
		in.edges = append(in.edges, de)
	}

	out := &dotOutput{}
	if len(in.nodes) > 0 {
		var err error
		out, err = s.run(ctx, in)
		if err != nil {
			return 0, 0, err
		}
	}

	shift := geo.NewPoint(float64(pad.Left), float64(pad.Top))
	for _, child := range c.children {
		b, ok := out.nodes[child.ID]
		if !ok {
			continue
		}
		child.X, child.Y = b.TopLeft.X+shift.X, b.TopLeft.Y+shift.Y
		child.Width, child.Height = b.Width, b.Height
	}

	width = out.width + float64(pad.Left+pad.Right)
	height = out.height + float64(pad.Top+pad.Bottom)
	if c.node != nil {
		c.node.Width, c.node.Height = width, height
		placePorts(c.node)
	}

	origin := geo.NewPoint(0, 0)
	for _, e := range c.edges {
		if containsEdge(deferred, e) {
			continue
		}
		route := geo.Points(out.routes[e.ID]).Translate(shift.X, shift.Y)
		if len(route) >= 2 {
			if ref, ok := childPorts[e.Sources[0]]; ok {
				route[0] = portCenter(ref.owner, ref.port)
			}
			if ref, ok := childPorts[e.Targets[0]]; ok {
				route[len(route)-1] = portCenter(ref.owner, ref.port)
			}
		}
		e.Sections = sections(route, origin)
		if l := out.labels[e.ID]; l != nil {
			placeLabels(e, l.Translate(shift.X, shift.Y), origin)
		}
	}

	children := make(map[string]*mmdelk.ELKNode, len(c.children))
	for _, child := range c.children {
		children[child.ID] = child
	}
	for _, e := range deferred {
		route := routeToOwnPort(c.node, e, children, childPorts)
		e.Sections = sections(route, origin)
		if len(e.Labels) > 0 && len(route) >= 2 {
			placeLabels(e, longestSegmentMidpoint(route), origin)
		}
	}
	return width, height, nil
}

func containsEdge(edges []*mmdelk.ELKEdge, e *mmdelk.ELKEdge) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}

// placePorts spreads the ports of n evenly along their sides.
func placePorts(n *mmdelk.ELKNode) {
	bySide := make(map[mmdelk.PortSide][]*mmdelk.ELKPort)
	var sides []mmdelk.PortSide
	for _, p := range n.Ports {
		side := portSide(p)
		if _, ok := bySide[side]; !ok {
			sides = append(sides, side)
		}
		bySide[side] = append(bySide[side], p)
	}
	for _, side := range sides {
		ports := bySide[side]
		for i, p := range ports {
			t := float64(i+1) / float64(len(ports)+1)
			var x, y float64
			switch side {
			case mmdelk.North:
				x, y = n.Width*t, 0
			case mmdelk.South:
				x, y = n.Width*t, n.Height
			case mmdelk.West:
				x, y = 0, n.Height*t
			case mmdelk.East:
				x, y = n.Width, n.Height*t
			}
			p.X, p.Y = x-p.Width/2, y-p.Height/2
		}
	}
}

// routeToOwnPort connects a child of n with one of n's own ports: out of the
// child's side facing the port, one bend halfway, into the port.
func routeToOwnPort(n *mmdelk.ELKNode, e *mmdelk.ELKEdge, children map[string]*mmdelk.ELKNode, childPorts map[string]portRef) []*geo.Point {
	var own *mmdelk.ELKPort
	reverse := false
	inner := ""
	for _, p := range n.Ports {
		switch p.ID {
		case e.Targets[0]:
			own, inner = p, e.Sources[0]
		case e.Sources[0]:
			own, inner, reverse = p, e.Targets[0], true
		}
	}
	if own == nil {
		return nil
	}
	side := portSide(own)
	end := geo.NewPoint(own.X+own.Width/2, own.Y+own.Height/2)

	var start *geo.Point
	if ref, ok := childPorts[inner]; ok {
		start = portCenter(ref.owner, ref.port)
	} else if child, ok := children[inner]; ok {
		b := geo.NewBox(geo.NewPoint(child.X, child.Y), child.Width, child.Height)
		c := b.Center()
		switch side {
		case mmdelk.North:
			start = geo.NewPoint(c.X, b.TopLeft.Y)
		case mmdelk.South:
			start = geo.NewPoint(c.X, b.Bottom())
		case mmdelk.West:
			start = geo.NewPoint(b.TopLeft.X, c.Y)
		default:
			start = geo.NewPoint(b.Right(), c.Y)
		}
	} else {
		return nil
	}

	var route geo.Points
	switch side {
	case mmdelk.North, mmdelk.South:
		midY := (start.Y + end.Y) / 2
		route = geo.Points{start, geo.NewPoint(start.X, midY), geo.NewPoint(end.X, midY), end}
	default:
		midX := (start.X + end.X) / 2
		route = geo.Points{start, geo.NewPoint(midX, start.Y), geo.NewPoint(midX, end.Y), end}
	}
	route = route.Dedupe()
	if reverse {
		return reversed(route)
	}
	return route
}
