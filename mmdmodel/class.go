package mmdmodel

type RelationType string

const (
	RelationInheritance RelationType = "inheritance"
	RelationComposition RelationType = "composition"
	RelationAggregation RelationType = "aggregation"
	RelationAssociation RelationType = "association"
	RelationDependency  RelationType = "dependency"
	RelationRealization RelationType = "realization"
	RelationLink        RelationType = "link"
	RelationDashedLink  RelationType = "dashed_link"
)

// IsDashed reports whether the relationship is drawn with a dashed line.
func (t RelationType) IsDashed() bool {
	switch t {
	case RelationDependency, RelationRealization, RelationDashedLink:
		return true
	}
	return false
}

// MarkerPlacement says which end of a relationship carries its marker.
type MarkerPlacement string

const (
	MarkerEnd   MarkerPlacement = "end"
	MarkerStart MarkerPlacement = "start"
	MarkerBoth  MarkerPlacement = "both"
	MarkerNone  MarkerPlacement = "none"
)

type ClassNode struct {
	ID         string
	Label      string
	Annotation string
	Attributes []string
	Methods    []string
}

type Relationship struct {
	From            string
	To              string
	Type            RelationType
	Label           string
	FromCardinality string
	ToCardinality   string
	Marker          MarkerPlacement
}

type Class struct {
	Direction     Direction
	Classes       []*ClassNode
	Relationships []*Relationship
}

func NewClass() *Class {
	return &Class{Direction: DirectionTB}
}

func (c *Class) Node(id string) *ClassNode {
	for _, n := range c.Classes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// AddClass declares id if needed and returns it.
func (c *Class) AddClass(id string) *ClassNode {
	if n := c.Node(id); n != nil {
		return n
	}
	n := &ClassNode{ID: id, Label: id}
	c.Classes = append(c.Classes, n)
	return n
}
