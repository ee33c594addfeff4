package mmdascii

import (
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciiroute"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

// fromClass draws every class as a box of three compartments and every
// relationship as an edge of the grid.
func fromClass(cd *mmdmodel.Class) *asciiGraph {
	ag := &asciiGraph{flow: flowOf(cd.Direction.Or(mmdmodel.DirectionTB))}
	for _, n := range cd.Classes {
		var title []string
		if n.Annotation != "" {
			title = append(title, "<<"+n.Annotation+">>")
		}
		title = append(title, textLines(n.Label)...)
		ag.boxes = append(ag.boxes, &box{
			id:       n.ID,
			sections: [][]string{title, n.Attributes, n.Methods},
		})
	}
	for _, rel := range cd.Relationships {
		m := relationMarker(rel.Type)
		st := asciiroute.Stroke{}
		if rel.Type.IsDashed() {
			st.Weight = charset.Dotted
		}
		switch rel.Marker {
		case mmdmodel.MarkerStart:
			st.Start = m
		case mmdmodel.MarkerBoth:
			st.Start, st.End = m, m
		case mmdmodel.MarkerNone:
		default:
			st.End = m
		}
		ag.edges = append(ag.edges, &edge{
			src:      rel.From,
			dst:      rel.To,
			label:    rel.Label,
			srcLabel: rel.FromCardinality,
			dstLabel: rel.ToCardinality,
			stroke:   st,
		})
	}
	return ag
}

func relationMarker(t mmdmodel.RelationType) asciiroute.Marker {
	switch t {
	case mmdmodel.RelationComposition:
		return asciiroute.MarkerDiamond
	case mmdmodel.RelationAggregation:
		return asciiroute.MarkerHollowDiamond
	case mmdmodel.RelationLink, mmdmodel.RelationDashedLink:
		return asciiroute.MarkerNone
	}
	return asciiroute.MarkerArrow
}
