package mmdtarget

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdmodel"
)

type ClassBox struct {
	Rect
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Annotation string   `json:"annotation,omitempty"`
	Attributes []string `json:"attributes"`
	Methods    []string `json:"methods"`

	HeaderHeight     float64 `json:"headerHeight"`
	AttributesHeight float64 `json:"attributesHeight"`
	MethodsHeight    float64 `json:"methodsHeight"`
}

type Relationship struct {
	From            string                   `json:"from"`
	To              string                   `json:"to"`
	Type            mmdmodel.RelationType    `json:"type"`
	Label           string                   `json:"label,omitempty"`
	FromCardinality string                   `json:"fromCardinality,omitempty"`
	ToCardinality   string                   `json:"toCardinality,omitempty"`
	Marker          mmdmodel.MarkerPlacement `json:"marker"`
	Route           []*geo.Point             `json:"route"`

	LabelPosition           *geo.Point `json:"labelPosition,omitempty"`
	FromCardinalityPosition *geo.Point `json:"fromCardinalityPosition,omitempty"`
	ToCardinalityPosition   *geo.Point `json:"toCardinalityPosition,omitempty"`
}

type Class struct {
	Classes       []*ClassBox     `json:"classes"`
	Relationships []*Relationship `json:"relationships"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
}

func (c *Class) Box(id string) *ClassBox {
	for _, b := range c.Classes {
		if b.ID == id {
			return b
		}
	}
	return nil
}
