package mmdparser

import (
	"regexp"
	"strings"

	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/mmdmodel"
)

var erRelationship = regexp.MustCompile(`^("[^"]+"|[^\s"]+)\s*(\|o|\|\||\}o|\}\|)(--|\.\.)(o\||\|\||o\{|\|\{)\s*("[^"]+"|[^\s"]+)\s*(?::\s*(.*))?$`)

var erLeftMarkers = map[string]mmdmodel.ArrowType{
	"|o": mmdmodel.ArrowZeroOrOne,
	"||": mmdmodel.ArrowExactlyOne,
	"}o": mmdmodel.ArrowZeroOrMore,
	"}|": mmdmodel.ArrowOneOrMore,
}

var erRightMarkers = map[string]mmdmodel.ArrowType{
	"o|": mmdmodel.ArrowZeroOrOne,
	"||": mmdmodel.ArrowExactlyOne,
	"o{": mmdmodel.ArrowZeroOrMore,
	"|{": mmdmodel.ArrowOneOrMore,
}

func (p *parser) parseER() *mmdmodel.Graph {
	g := mmdmodel.NewGraph(mmdmodel.DirectionTB)
	entity := func(raw string) *mmdmodel.Node {
		id := unquote(raw)
		label := ""
		if i := strings.Index(id, "["); i > 0 && strings.HasSuffix(id, "]") {
			id, label = id[:i], unquote(id[i+1:len(id)-1])
		}
		return g.AddNode(id, label, shape.RECTANGLE_TYPE)
	}

	// entity whose attribute block is open
	var open *mmdmodel.Node
	for _, l := range p.lines {
		if open != nil {
			if l.text == "}" {
				open = nil
				continue
			}
			open.Rows = append(open.Rows, attributeRow(l.text))
			continue
		}

		if kw, rest := keyword(l.text); kw == "direction" {
			d, ok := mmdmodel.ParseDirection(rest)
			if !ok {
				p.errorf(l.n, "unknown direction %q", rest)
				continue
			}
			g.Direction = d
			continue
		}

		if m := erRelationship.FindStringSubmatch(l.text); m != nil {
			src, dst := entity(m[1]), entity(m[5])
			line := mmdmodel.LineSolid
			if m[3] == ".." {
				line = mmdmodel.LineDotted
			}
			g.AddEdge(src.ID, dst.ID, unquote(m[6]), mmdmodel.EdgeStyle{
				Line:       line,
				ArrowStart: erLeftMarkers[m[2]],
				ArrowEnd:   erRightMarkers[m[4]],
			})
			continue
		}

		if strings.HasSuffix(l.text, "{") {
			name := strings.TrimSpace(strings.TrimSuffix(l.text, "{"))
			if name == "" {
				p.errorf(l.n, "entity block without name")
				continue
			}
			open = entity(name)
			continue
		}
		if strings.ContainsAny(l.text, " \t") {
			p.errorf(l.n, "unexpected statement %q", l.text)
			continue
		}
		entity(l.text)
	}
	if open != nil {
		p.errorf(p.lines[len(p.lines)-1].n, "entity %s is never closed", open.ID)
	}
	return g
}

// attributeRow normalizes "type name PK "comment"" to single spaced
// "type name PK".
func attributeRow(s string) string {
	if i := strings.IndexByte(s, '"'); i >= 0 {
		s = s[:i]
	}
	return strings.Join(strings.Fields(s), " ")
}
