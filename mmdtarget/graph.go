package mmdtarget

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdmodel"
)

type Node struct {
	Rect
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Shape   string   `json:"shape"`
	Rows    []string `json:"rows,omitempty"`
	Classes []string `json:"classes,omitempty"`
	// Group is the id of the innermost group containing the node.
	Group string `json:"group,omitempty"`
}

type Edge struct {
	ID            string             `json:"id"`
	Src           string             `json:"src"`
	Dst           string             `json:"dst"`
	Label         string             `json:"label,omitempty"`
	Style         mmdmodel.EdgeStyle `json:"style"`
	Route         []*geo.Point       `json:"route"`
	LabelPosition *geo.Point         `json:"labelPosition,omitempty"`

	SrcLabel         string     `json:"srcLabel,omitempty"`
	DstLabel         string     `json:"dstLabel,omitempty"`
	SrcLabelPosition *geo.Point `json:"srcLabelPosition,omitempty"`
	DstLabelPosition *geo.Point `json:"dstLabelPosition,omitempty"`
}

type Group struct {
	Rect
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Direction mmdmodel.Direction `json:"direction"`
	Parent    string             `json:"parent,omitempty"`
	Depth     int                `json:"depth"`
}

type Graph struct {
	Kind      mmdmodel.Kind      `json:"kind"`
	Direction mmdmodel.Direction `json:"direction"`
	Nodes     []*Node            `json:"nodes"`
	Edges     []*Edge            `json:"edges"`
	Groups    []*Group           `json:"groups"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
}

func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (g *Graph) Group(id string) *Group {
	for _, gr := range g.Groups {
		if gr.ID == id {
			return gr
		}
	}
	return nil
}
