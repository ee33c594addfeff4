// Package mmddagre ranks class diagrams with dagre running inside a goja
// runtime.
package mmddagre

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/jsrunner"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
	"oss.terrastruct.com/mmd/mmdmodel"
)

//go:embed setup.js
var setupJS string

const (
	EDGE_SEP = 20
	// room kept between ranks beyond the tallest edge label
	LABEL_RANK_GAP = 20.
)

type dagreNode struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type dagreEdge struct {
	Points []*geo.Point `json:"points"`
	X      *float64     `json:"x"`
	Y      *float64     `json:"y"`
}

type dagreGraph struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type dagreAttrs struct {
	RankDir string  `json:"rankdir"`
	NodeSep float64 `json:"nodesep"`
	EdgeSep float64 `json:"edgesep"`
	RankSep float64 `json:"ranksep"`
}

// Solver implements mmdclass.LeveledSolver. The dagre bundle is supplied by
// the caller and must define a global dagre object.
type Solver struct {
	mu     sync.Mutex
	runner jsrunner.JSRunner
}

var _ mmdclass.LeveledSolver = (*Solver)(nil)

func NewSolver(ctx context.Context, dagreJS string) (_ *Solver, err error) {
	defer xdefer.Errorf(&err, "failed to load dagre")

	if dagreJS == "" {
		return nil, errors.New("empty dagre bundle")
	}
	runner, err := jsrunner.NewJSRunner(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := runner.RunString(dagreJS); err != nil {
		return nil, err
	}
	if _, err := runner.RunString(setupJS); err != nil {
		return nil, err
	}
	return &Solver{runner: runner}, nil
}

func rankDir(d mmdmodel.Direction) string {
	switch d {
	case mmdmodel.DirectionBT, mmdmodel.DirectionLR, mmdmodel.DirectionRL:
		return string(d)
	default:
		return "TB"
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func edgeRef(e *mmdclass.LeveledEdge) string {
	return fmt.Sprintf("{v:%s, w:%s, name:%s}", quote(e.Src), quote(e.Dst), quote(e.ID))
}

func (s *Solver) Solve(ctx context.Context, lg *mmdclass.LeveledGraph) (err error) {
	defer xdefer.Errorf(&err, "dagre layout failed")

	attrs := dagreAttrs{
		RankDir: rankDir(lg.Direction),
		NodeSep: lg.NodeSpacing,
		EdgeSep: EDGE_SEP,
		RankSep: lg.RankSpacing,
	}
	var maxLabel float64
	for _, e := range lg.Edges {
		if lg.Direction.IsHorizontal() {
			maxLabel = math.Max(maxLabel, e.LabelWidth)
		} else {
			maxLabel = math.Max(maxLabel, e.LabelHeight)
		}
	}
	if maxLabel > 0 {
		attrs.RankSep = math.Max(attrs.RankSep, maxLabel+LABEL_RANK_GAP)
	}
	rawAttrs, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(lg.Nodes))
	var script strings.Builder
	fmt.Fprintf(&script, "resetGraph(%s);\n", rawAttrs)
	for _, n := range lg.Nodes {
		known[n.ID] = true
		fmt.Fprintf(&script, "g.setNode(%s, {width: %s, height: %s});\n", quote(n.ID), formatFloat(n.Width), formatFloat(n.Height))
	}
	var edges []*mmdclass.LeveledEdge
	for _, e := range lg.Edges {
		if !known[e.Src] || !known[e.Dst] {
			log.Debug(ctx, "skipping edge with unknown endpoint", slog.F("edge", e.ID))
			continue
		}
		edges = append(edges, e)
		fmt.Fprintf(&script, "g.setEdge(%s, {width: %s, height: %s, labelpos: \"c\"});\n", edgeRef(e), formatFloat(e.LabelWidth), formatFloat(e.LabelHeight))
	}
	script.WriteString("dagre.layout(g);\n")

	s.mu.Lock()
	defer s.mu.Unlock()

	t := time.Now()
	if _, err := s.runner.RunString(script.String()); err != nil {
		return err
	}
	log.Debug(ctx, "dagre done", slog.F("duration", time.Since(t).String()))

	for _, n := range lg.Nodes {
		var dn dagreNode
		if err := s.read(fmt.Sprintf("g.node(%s)", quote(n.ID)), &dn); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		// dagre positions are centers
		n.X = math.Round(dn.X - n.Width/2)
		n.Y = math.Round(dn.Y - n.Height/2)
	}
	for _, e := range edges {
		var de dagreEdge
		if err := s.read(fmt.Sprintf("g.edge(%s)", edgeRef(e)), &de); err != nil {
			return fmt.Errorf("edge %s: %w", e.ID, err)
		}
		e.Route = de.Points
		if de.X != nil && de.Y != nil && e.LabelWidth > 0 {
			e.LabelPosition = geo.NewPoint(*de.X, *de.Y)
		}
	}
	var dg dagreGraph
	if err := s.read("g.graph()", &dg); err != nil {
		return err
	}
	lg.Width, lg.Height = math.Ceil(dg.Width), math.Ceil(dg.Height)
	return nil
}

func (s *Solver) read(expr string, v interface{}) error {
	val, err := s.runner.RunString(fmt.Sprintf("JSON.stringify(%s)", expr))
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val.String()), v)
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
