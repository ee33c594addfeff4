// Package mmdelk converts graph diagrams into the JSON graph of the ELK layered
// algorithm, hands it to a solver and turns the solver's answer back into
// positioned nodes, groups and edges.
//
// Coordinates in an ELKGraph are relative to parents.
// See https://www.eclipse.org/elk/documentation/tooldevelopers/graphdatastructure/coordinatesystem.html
package mmdelk

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Solver computes coordinates for every node, port, edge section and label of
// an ELK graph.
type Solver interface {
	Solve(ctx context.Context, g *ELKGraph) (*ELKGraph, error)
}

type ELKNode struct {
	ID            string      `json:"id"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	Children      []*ELKNode  `json:"children,omitempty"`
	Ports         []*ELKPort  `json:"ports,omitempty"`
	Labels        []*ELKLabel `json:"labels,omitempty"`
	Edges         []*ELKEdge  `json:"edges,omitempty"`
	LayoutOptions *ElkOpts    `json:"layoutOptions,omitempty"`
}

type PortSide string

const (
	South PortSide = "SOUTH"
	North PortSide = "NORTH"
	East  PortSide = "EAST"
	West  PortSide = "WEST"
)

type Direction string

const (
	Down  Direction = "DOWN"
	Up    Direction = "UP"
	Right Direction = "RIGHT"
	Left  Direction = "LEFT"
)

const (
	IncludeChildren  = "INCLUDE_CHILDREN"
	SeparateChildren = "SEPARATE_CHILDREN"

	FixedSide = "FIXED_SIDE"
)

type ELKPort struct {
	ID            string   `json:"id"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	LayoutOptions *ElkOpts `json:"layoutOptions,omitempty"`
}

type ELKLabel struct {
	Text          string   `json:"text"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	LayoutOptions *ElkOpts `json:"layoutOptions,omitempty"`
}

type ELKPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ELKEdgeSection struct {
	Start      ELKPoint   `json:"startPoint"`
	End        ELKPoint   `json:"endPoint"`
	BendPoints []ELKPoint `json:"bendPoints,omitempty"`
}

type ELKEdge struct {
	ID        string           `json:"id"`
	Sources   []string         `json:"sources"`
	Targets   []string         `json:"targets"`
	Sections  []ELKEdgeSection `json:"sections,omitempty"`
	Labels    []*ELKLabel      `json:"labels,omitempty"`
	Container string           `json:"container,omitempty"`
}

type ELKGraph struct {
	ID            string     `json:"id"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Width         float64    `json:"width"`
	Height        float64    `json:"height"`
	LayoutOptions *ElkOpts   `json:"layoutOptions"`
	Children      []*ELKNode `json:"children,omitempty"`
	Edges         []*ELKEdge `json:"edges,omitempty"`
}

// ElkOpts are the ELK layout options the converter sets. Solvers other than
// ELK read the subset they understand.
type ElkOpts struct {
	Algorithm                    string    `json:"elk.algorithm,omitempty"`
	NodeSpacing                  int       `json:"elk.spacing.nodeNode,omitempty"`
	LayerSpacing                 int       `json:"elk.layered.spacing.nodeNodeBetweenLayers,omitempty"`
	EdgeNodeSpacing              int       `json:"elk.layered.spacing.edgeNodeBetweenLayers,omitempty"`
	SelfLoopSpacing              int       `json:"elk.spacing.nodeSelfLoop,omitempty"`
	EdgeEdgeBetweenLayersSpacing int       `json:"elk.layered.spacing.edgeEdgeBetweenLayers,omitempty"`
	Padding                      string    `json:"elk.padding,omitempty"`
	Thoroughness                 int       `json:"elk.layered.thoroughness,omitempty"`
	FixedAlignment               string    `json:"elk.layered.nodePlacement.bk.fixedAlignment,omitempty"`
	Direction                    Direction `json:"elk.direction,omitempty"`
	HierarchyHandling            string    `json:"elk.hierarchyHandling,omitempty"`
	EdgeRouting                  string    `json:"elk.edgeRouting,omitempty"`
	InlineEdgeLabels             bool      `json:"elk.edgeLabels.inline,omitempty"`
	ConsiderModelOrder           string    `json:"elk.layered.considerModelOrder.strategy,omitempty"`
	CycleBreakingStrategy        string    `json:"elk.layered.cycleBreaking.strategy,omitempty"`
	NodeSizeConstraints          string    `json:"elk.nodeSize.constraints,omitempty"`
	NodeSizeMinimum              string    `json:"elk.nodeSize.minimum,omitempty"`
	ContentAlignment             string    `json:"elk.contentAlignment,omitempty"`

	PortSide        PortSide `json:"org.eclipse.elk.port.side,omitempty"`
	PortConstraints string   `json:"elk.portConstraints,omitempty"`
}

// Padding is the space between a container's border and its children.
type Padding struct {
	Top, Left, Bottom, Right int
}

var paddingRegex = regexp.MustCompile(`(top|left|bottom|right)=(\d+)`)

// ParsePadding reads an ELK padding string, e.g. "[top=50,left=50,bottom=50,right=50]".
func ParsePadding(in string) Padding {
	var p Padding
	for _, m := range paddingRegex.FindAllStringSubmatch(in, -1) {
		v, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch m[1] {
		case "top":
			p.Top = v
		case "left":
			p.Left = v
		case "bottom":
			p.Bottom = v
		case "right":
			p.Right = v
		}
	}
	return p
}

func (p Padding) String() string {
	return fmt.Sprintf("[top=%d,left=%d,bottom=%d,right=%d]", p.Top, p.Left, p.Bottom, p.Right)
}

// Walk calls fn for every node of g depth first, parents before children.
// parent is nil for top level nodes.
func (g *ELKGraph) Walk(fn func(n, parent *ELKNode)) {
	type frame struct {
		node   *ELKNode
		parent *ELKNode
	}
	var stack []frame
	for i := len(g.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: g.Children[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.node, f.parent)
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], parent: f.node})
		}
	}
}
