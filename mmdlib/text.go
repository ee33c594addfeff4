package mmdlib

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/label"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdtext"
	"oss.terrastruct.com/mmd/mmdtarget"
	"oss.terrastruct.com/mmd/mmdthemes"
)

// Text returns the <text> elements of every label in d, nodes first, in
// the order the layout produced them. Group titles follow the edge labels.
func (l *Layouter) Text(d *mmdtarget.Diagram) []string {
	if d == nil {
		return nil
	}
	var out []string
	add := func(s string, at *geo.Point, size int, code string) {
		if s == "" || at == nil {
			return
		}
		out = append(out, mmdtext.Render(s, &mmdtext.Opts{
			X:          at.X,
			Y:          at.Y,
			FontSize:   size,
			FontFamily: l.opts.FontFamily,
			Fill:       l.theme.Resolve(code),
		})...)
	}

	lineHeight := float64(textmeasure.FONT_SIZE_M) * textmeasure.DEFAULT_LINE_HEIGHT_FACTOR

	switch {
	case d.Graph != nil:
		for _, n := range d.Graph.Nodes {
			if len(n.Rows) == 0 {
				add(n.Label, labelCenter(label.InsideMiddleCenter, n.Box(), 0, lineHeight), textmeasure.FONT_SIZE_M, mmdthemes.NodeText)
			}
		}
		for _, e := range d.Graph.Edges {
			add(e.Label, e.LabelPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
			add(e.SrcLabel, e.SrcLabelPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
			add(e.DstLabel, e.DstLabelPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
		}
		for _, gr := range d.Graph.Groups {
			add(gr.Label, labelCenter(label.InsideTopCenter, gr.Box(), label.PADDING, lineHeight), textmeasure.FONT_SIZE_M, mmdthemes.NodeText)
		}
	case d.Sequence != nil:
		for _, a := range d.Sequence.Actors {
			add(a.Label, labelCenter(label.InsideMiddleCenter, a.Box(), 0, lineHeight), textmeasure.FONT_SIZE_M, mmdthemes.NodeText)
		}
		for _, m := range d.Sequence.Messages {
			add(m.Label, m.LabelPosition, textmeasure.FONT_SIZE_M, mmdthemes.EdgeLabel)
		}
		for _, n := range d.Sequence.Notes {
			add(n.Text, labelCenter(label.InsideMiddleCenter, n.Box(), 0, lineHeight), textmeasure.FONT_SIZE_M, mmdthemes.NodeText)
		}
	case d.Class != nil:
		for _, c := range d.Class.Classes {
			add(c.Label, labelCenter(label.InsideTopCenter, c.Box(), 0, c.HeaderHeight), textmeasure.FONT_SIZE_M, mmdthemes.NodeText)
		}
		for _, r := range d.Class.Relationships {
			add(r.Label, r.LabelPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
			add(r.FromCardinality, r.FromCardinalityPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
			add(r.ToCardinality, r.ToCardinalityPosition, textmeasure.FONT_SIZE_S, mmdthemes.EdgeLabel)
		}
	}
	return out
}

// labelCenter is the center of a height tall label placed at pos on b.
func labelCenter(pos label.Position, b *geo.Box, padding, height float64) *geo.Point {
	p := pos.GetPointOnBox(b, padding, 0, height)
	if p == nil {
		return nil
	}
	return p.Translate(0, height/2)
}
