// Package mmdgraphviz solves layouts in process with the dot engine of
// Graphviz, compiled to wasm by go-graphviz.
package mmdgraphviz

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cdr.dev/slog"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdmodel"
)

// graphviz sizes are in inches, positions in points
const DPI = 72.

const clusterPrefix = "cluster_"

type dotNode struct {
	id      string
	width   float64
	height  float64
	cluster string
}

type dotCluster struct {
	id     string
	parent string
	margin float64
}

type dotEdge struct {
	id       string
	src      string
	dst      string
	tailPort string
	headPort string

	labelWidth  float64
	labelHeight float64
}

// dotInput is one dot run. Clusters must be listed parents first.
type dotInput struct {
	direction   mmdmodel.Direction
	nodeSpacing float64
	rankSpacing float64
	nodes       []*dotNode
	clusters    []*dotCluster
	edges       []*dotEdge
}

// dotOutput holds positions with the origin at the top left of the drawing.
type dotOutput struct {
	nodes    map[string]*geo.Box
	clusters map[string]*geo.Box
	routes   map[string][]*geo.Point
	labels   map[string]*geo.Point
	width    float64
	height   float64
}

func rankDir(d mmdmodel.Direction) cgraph.RankDir {
	switch d {
	case mmdmodel.DirectionBT:
		return cgraph.BTRank
	case mmdmodel.DirectionLR:
		return cgraph.LRRank
	case mmdmodel.DirectionRL:
		return cgraph.RLRank
	default:
		return cgraph.TBRank
	}
}

// runDot lays in out with a fresh graph on gv. Node sizes are fixed; dot
// only decides positions and orthogonal routes.
func runDot(ctx context.Context, gv *graphviz.Graphviz, in *dotInput) (*dotOutput, error) {
	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("create graph: %w", err)
	}
	defer graph.Close()

	var maxLabel float64
	for _, e := range in.edges {
		if in.direction.IsHorizontal() {
			maxLabel = math.Max(maxLabel, e.labelWidth)
		} else {
			maxLabel = math.Max(maxLabel, e.labelHeight)
		}
	}

	graph.SetRankDir(rankDir(in.direction))
	graph.SetNodeSeparator(in.nodeSpacing / DPI)
	graph.SetRankSeparator((in.rankSpacing + maxLabel) / DPI)
	graph.SetSplines("ortho")
	graph.SetNewRank(true)
	graph.SetCompound(true)
	graph.SetPad(0)

	subgraphs := make(map[string]*cgraph.Graph, len(in.clusters))
	for _, c := range in.clusters {
		parent := graph
		if c.parent != "" {
			parent = subgraphs[c.parent]
		}
		sub, err := parent.CreateSubGraphByName(clusterPrefix + c.id)
		if err != nil {
			return nil, fmt.Errorf("create cluster %s: %w", c.id, err)
		}
		if err := sub.SafeSet("margin", formatFloat(c.margin), "8"); err != nil {
			return nil, err
		}
		subgraphs[c.id] = sub
	}

	gvNodes := make(map[string]*cgraph.Node, len(in.nodes))
	for _, n := range in.nodes {
		parent := graph
		if n.cluster != "" {
			parent = subgraphs[n.cluster]
		}
		gvNode, err := parent.CreateNodeByName(n.id)
		if err != nil {
			return nil, fmt.Errorf("create node %s: %w", n.id, err)
		}
		gvNode.SetShape(cgraph.BoxShape)
		gvNode.SetFixedSize(true)
		gvNode.SetWidth(n.width / DPI)
		gvNode.SetHeight(n.height / DPI)
		gvNode.SetLabel("")
		gvNodes[n.id] = gvNode
	}

	for _, e := range in.edges {
		tail, head := gvNodes[e.src], gvNodes[e.dst]
		if tail == nil || head == nil {
			log.Debug(ctx, "edge endpoint missing from dot graph", slog.F("edge", e.id))
			continue
		}
		gvEdge, err := graph.CreateEdgeByName(e.id, tail, head)
		if err != nil {
			return nil, fmt.Errorf("create edge %s: %w", e.id, err)
		}
		if err := gvEdge.SafeSet("id", e.id, ""); err != nil {
			return nil, err
		}
		if e.tailPort != "" {
			gvEdge.SetTailPort(e.tailPort)
		}
		if e.headPort != "" {
			gvEdge.SetHeadPort(e.headPort)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return readDot(ctx, buf.Bytes(), in)
}

func readDot(ctx context.Context, dot []byte, in *dotInput) (*dotOutput, error) {
	parsed, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	defer parsed.Close()

	bb, ok := parseBB(parsed.GetStr("bb"))
	if !ok {
		return nil, fmt.Errorf("layout without bounding box")
	}
	// graphviz y grows upwards
	flip := func(x, y float64) *geo.Point {
		return geo.NewPoint(geo.RoundDecimals(x-bb.TopLeft.X), geo.RoundDecimals(bb.Bottom()-y))
	}

	out := &dotOutput{
		nodes:    make(map[string]*geo.Box),
		clusters: make(map[string]*geo.Box),
		routes:   make(map[string][]*geo.Point),
		labels:   make(map[string]*geo.Point),
		width:    math.Ceil(bb.Width),
		height:   math.Ceil(bb.Height),
	}

	for n, err := parsed.FirstNode(); n != nil; n, err = parsed.NextNode(n) {
		if err != nil {
			return nil, err
		}
		name, err := n.Name()
		if err != nil {
			return nil, err
		}
		pts := parsePoints(n.GetStr("pos"))
		if len(pts) == 0 {
			log.Debug(ctx, "node without position", slog.F("id", name))
			continue
		}
		w := parseFloat(n.GetStr("width")) * DPI
		h := parseFloat(n.GetStr("height")) * DPI
		c := flip(pts[0].X, pts[0].Y)
		out.nodes[name] = geo.NewBox(geo.NewPoint(c.X-w/2, c.Y-h/2), w, h)

		for e, err := parsed.FirstOut(n); e != nil; e, err = parsed.NextOut(e) {
			if err != nil {
				return nil, err
			}
			id := e.GetStr("id")
			route := parseSpline(e.GetStr("pos"), flip)
			if len(route) >= 2 {
				out.routes[id] = route
			}
		}
	}

	subgraphs := make(map[string]*cgraph.Graph, len(in.clusters))
	for _, c := range in.clusters {
		parent := parsed
		if c.parent != "" {
			parent = subgraphs[c.parent]
		}
		if parent == nil {
			continue
		}
		sub, err := parent.SubGraphByName(clusterPrefix + c.id)
		if err != nil || sub == nil {
			continue
		}
		subgraphs[c.id] = sub
		if cbb, ok := parseBB(sub.GetStr("bb")); ok {
			out.clusters[c.id] = geo.NewBox(flip(cbb.TopLeft.X, cbb.Bottom()), cbb.Width, cbb.Height)
		}
	}

	for _, e := range in.edges {
		route, ok := out.routes[e.id]
		if !ok {
			src, dst := out.nodes[e.src], out.nodes[e.dst]
			if src == nil || dst == nil {
				continue
			}
			log.Debug(ctx, "dot dropped route, falling back to a straight line", slog.F("edge", e.id))
			route = []*geo.Point{src.Center(), dst.Center()}
		}
		if src := out.nodes[e.src]; src != nil && len(route) >= 2 {
			// dot lists routes of reversed edges head first
			if distance(route[len(route)-1], src.Center()) < distance(route[0], src.Center()) {
				route = reversed(route)
			}
		}
		out.routes[e.id] = route
		if e.labelWidth > 0 {
			out.labels[e.id] = longestSegmentMidpoint(route)
		}
	}
	return out, nil
}

// parseBB reads "llx,lly,urx,ury" in graphviz coordinates into a box whose
// TopLeft is the lower left corner.
func parseBB(s string) (*geo.Box, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, false
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		v[i] = f
	}
	return geo.NewBox(geo.NewPoint(v[0], v[1]), v[2]-v[0], v[3]-v[1]), true
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// parsePoints reads space separated "x,y" pairs, skipping anything else.
func parsePoints(s string) []*geo.Point {
	var out []*geo.Point
	for _, field := range strings.Fields(s) {
		xy := strings.Split(field, ",")
		if len(xy) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(xy[0], 64)
		y, errY := strconv.ParseFloat(xy[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, geo.NewPoint(x, y))
	}
	return out
}

// parseSpline turns an edge "pos" into a polyline: the optional start point,
// the end points of every bezier segment, then the optional arrow tip.
func parseSpline(s string, flip func(x, y float64) *geo.Point) []*geo.Point {
	var start, end *geo.Point
	var ctrl []string
	for _, field := range strings.Fields(s) {
		switch {
		case strings.HasPrefix(field, "s,"):
			if pts := parsePoints(strings.TrimPrefix(field, "s,")); len(pts) == 1 {
				start = pts[0]
			}
		case strings.HasPrefix(field, "e,"):
			if pts := parsePoints(strings.TrimPrefix(field, "e,")); len(pts) == 1 {
				end = pts[0]
			}
		default:
			ctrl = append(ctrl, field)
		}
	}
	pts := parsePoints(strings.Join(ctrl, " "))

	var route geo.Points
	if start != nil {
		route = append(route, flip(start.X, start.Y))
	}
	for i := 0; i < len(pts); i += 3 {
		route = append(route, flip(pts[i].X, pts[i].Y))
	}
	if len(pts) > 0 && (len(pts)-1)%3 != 0 {
		last := pts[len(pts)-1]
		route = append(route, flip(last.X, last.Y))
	}
	if end != nil {
		route = append(route, flip(end.X, end.Y))
	}
	return route.Dedupe()
}

func distance(a, b *geo.Point) float64 {
	return geo.EuclideanDistance(a.X, a.Y, b.X, b.Y)
}

func reversed(route []*geo.Point) []*geo.Point {
	out := make([]*geo.Point, len(route))
	for i, p := range route {
		out[len(route)-1-i] = p
	}
	return out
}

func longestSegmentMidpoint(route []*geo.Point) *geo.Point {
	best, bestLen := 0, -1.
	for i := 0; i < len(route)-1; i++ {
		if l := distance(route[i], route[i+1]); l > bestLen {
			best, bestLen = i, l
		}
	}
	return geo.Segment{Start: route[best], End: route[best+1]}.Midpoint()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
