// Package mmdmodel holds the logical diagram models produced by a parser and
// consumed by the layout engines. Models carry no geometry.
package mmdmodel

import "fmt"

type Kind string

const (
	KindFlowchart Kind = "flowchart"
	KindState     Kind = "state"
	KindER        Kind = "er"
	KindSequence  Kind = "sequence"
	KindClass     Kind = "class"
)

// IsGraph reports whether diagrams of this kind are laid out by the graph
// pipeline.
func (k Kind) IsGraph() bool {
	switch k {
	case KindFlowchart, KindState, KindER:
		return true
	}
	return false
}

// Diagram is a tagged union: exactly the field matching Kind is set.
type Diagram struct {
	Kind     Kind
	Graph    *Graph
	Sequence *Sequence
	Class    *Class
}

func NewGraphDiagram(kind Kind, g *Graph) *Diagram {
	return &Diagram{Kind: kind, Graph: g}
}

func NewSequenceDiagram(s *Sequence) *Diagram {
	return &Diagram{Kind: KindSequence, Sequence: s}
}

func NewClassDiagram(c *Class) *Diagram {
	return &Diagram{Kind: KindClass, Class: c}
}

// Check verifies that the field selected by Kind is populated.
func (d *Diagram) Check() error {
	if d == nil {
		return fmt.Errorf("nil diagram")
	}
	switch {
	case d.Kind.IsGraph():
		if d.Graph == nil {
			return fmt.Errorf("%s diagram without graph", d.Kind)
		}
	case d.Kind == KindSequence:
		if d.Sequence == nil {
			return fmt.Errorf("sequence diagram without sequence")
		}
	case d.Kind == KindClass:
		if d.Class == nil {
			return fmt.Errorf("class diagram without classes")
		}
	default:
		return fmt.Errorf("unknown diagram kind %q", d.Kind)
	}
	return nil
}

type Direction string

const (
	DirectionNone Direction = ""
	DirectionTB   Direction = "TB"
	DirectionBT   Direction = "BT"
	DirectionLR   Direction = "LR"
	DirectionRL   Direction = "RL"
)

// ParseDirection accepts TB, TD, BT, LR and RL in any case.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "TB", "TD", "tb", "td":
		return DirectionTB, true
	case "BT", "bt":
		return DirectionBT, true
	case "LR", "lr":
		return DirectionLR, true
	case "RL", "rl":
		return DirectionRL, true
	}
	return DirectionNone, false
}

func (d Direction) IsHorizontal() bool {
	return d == DirectionLR || d == DirectionRL
}

func (d Direction) Or(fallback Direction) Direction {
	if d == DirectionNone {
		return fallback
	}
	return d
}
