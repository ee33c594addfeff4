package mmdparser

import (
	"regexp"
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
)

var classRelationship = regexp.MustCompile(`^([^\s"<>|*.:-]+)\s*(?:"([^"]*)"\s*)?(<\|--|<\|\.\.|\*--|o--|<--|<\.\.|--\|>|\.\.\|>|--\*|--o|-->|\.\.>|--|\.\.)\s*(?:"([^"]*)"\s*)?([^\s":]+)\s*(?::\s*(.*))?$`)

type relationArrow struct {
	typ    mmdmodel.RelationType
	marker mmdmodel.MarkerPlacement
}

var classArrows = map[string]relationArrow{
	"<|--": {mmdmodel.RelationInheritance, mmdmodel.MarkerStart},
	"--|>": {mmdmodel.RelationInheritance, mmdmodel.MarkerEnd},
	"*--":  {mmdmodel.RelationComposition, mmdmodel.MarkerStart},
	"--*":  {mmdmodel.RelationComposition, mmdmodel.MarkerEnd},
	"o--":  {mmdmodel.RelationAggregation, mmdmodel.MarkerStart},
	"--o":  {mmdmodel.RelationAggregation, mmdmodel.MarkerEnd},
	"<--":  {mmdmodel.RelationAssociation, mmdmodel.MarkerStart},
	"-->":  {mmdmodel.RelationAssociation, mmdmodel.MarkerEnd},
	"<..":  {mmdmodel.RelationDependency, mmdmodel.MarkerStart},
	"..>":  {mmdmodel.RelationDependency, mmdmodel.MarkerEnd},
	"<|..": {mmdmodel.RelationRealization, mmdmodel.MarkerStart},
	"..|>": {mmdmodel.RelationRealization, mmdmodel.MarkerEnd},
	"--":   {mmdmodel.RelationLink, mmdmodel.MarkerNone},
	"..":   {mmdmodel.RelationDashedLink, mmdmodel.MarkerNone},
}

// className splits "Name~T~" and "Name[\"Label\"]" into id and label.
func className(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	raw, _ = cutClassSuffix(raw)
	if i := strings.Index(raw, "["); i > 0 && strings.HasSuffix(raw, "]") {
		return raw[:i], unquote(raw[i+1 : len(raw)-1])
	}
	if i := strings.Index(raw, "~"); i > 0 && strings.HasSuffix(raw, "~") {
		return raw[:i], raw[:i] + "<" + raw[i+1:len(raw)-1] + ">"
	}
	return raw, ""
}

func isMethod(member string) bool {
	return strings.Contains(member, "(")
}

func addMember(c *mmdmodel.ClassNode, member string) {
	member = strings.TrimSpace(member)
	if member == "" {
		return
	}
	if strings.HasPrefix(member, "<<") && strings.HasSuffix(member, ">>") {
		c.Annotation = strings.TrimSpace(member[2 : len(member)-2])
		return
	}
	if isMethod(member) {
		c.Methods = append(c.Methods, member)
	} else {
		c.Attributes = append(c.Attributes, member)
	}
}

func (p *parser) parseClass() *mmdmodel.Class {
	c := mmdmodel.NewClass()
	declare := func(raw string) *mmdmodel.ClassNode {
		id, label := className(raw)
		n := c.AddClass(id)
		if label != "" {
			n.Label = label
		}
		return n
	}

	// class whose member block is open
	var open *mmdmodel.ClassNode
	for _, l := range p.lines {
		if open != nil {
			if l.text == "}" {
				open = nil
				continue
			}
			addMember(open, l.text)
			continue
		}

		kw, rest := keyword(l.text)
		switch {
		case kw == "direction":
			d, ok := mmdmodel.ParseDirection(rest)
			if !ok {
				p.errorf(l.n, "unknown direction %q", rest)
				continue
			}
			c.Direction = d
			continue
		case kw == "class":
			if rest == "" {
				p.errorf(l.n, "class without name")
				continue
			}
			if strings.HasSuffix(rest, "{") {
				open = declare(strings.TrimSuffix(rest, "{"))
				continue
			}
			if strings.HasSuffix(rest, "}") {
				name, body, _ := splitOnce(strings.TrimSuffix(rest, "}"), "{")
				n := declare(name)
				for _, m := range strings.Split(body, ";") {
					addMember(n, m)
				}
				continue
			}
			declare(rest)
			continue
		case strings.EqualFold(kw, "note"), kw == "classDef", kw == "style", kw == "cssClass", kw == "click", kw == "link", kw == "callback":
			continue
		case strings.HasPrefix(l.text, "<<"):
			annotation, name, ok := splitOnce(l.text, ">>")
			if !ok || name == "" {
				p.errorf(l.n, "malformed annotation %q", l.text)
				continue
			}
			declare(name).Annotation = strings.TrimSpace(strings.TrimPrefix(annotation, "<<"))
			continue
		}

		if m := classRelationship.FindStringSubmatch(l.text); m != nil {
			from, to := declare(m[1]), declare(m[5])
			arrow := classArrows[m[3]]
			c.Relationships = append(c.Relationships, &mmdmodel.Relationship{
				From:            from.ID,
				To:              to.ID,
				Type:            arrow.typ,
				Label:           m[6],
				FromCardinality: m[2],
				ToCardinality:   m[4],
				Marker:          arrow.marker,
			})
			continue
		}

		if name, member, ok := splitOnce(l.text, ":"); ok && name != "" && !strings.ContainsAny(name, " \t") {
			addMember(declare(name), member)
			continue
		}

		p.errorf(l.n, "unexpected statement %q", l.text)
	}
	if open != nil {
		p.errorf(p.lines[len(p.lines)-1].n, "class %s is never closed", open.ID)
	}
	return c
}
