package mmdparser

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/mmdmodel"
)

const pseudoState = "[*]"

type stateParser struct {
	*parser
	g      *mmdmodel.Graph
	stack  []*mmdmodel.Subgraph
	labels map[string]string
	// inside a multi-line note
	inNote bool
}

func (p *parser) parseState() *mmdmodel.Graph {
	sp := &stateParser{
		parser: p,
		g:      mmdmodel.NewGraph(mmdmodel.DirectionTB),
		labels: make(map[string]string),
	}
	for _, l := range p.lines {
		sp.statement(l.n, l.text)
	}
	if len(sp.stack) > 0 {
		p.errorf(p.lines[len(p.lines)-1].n, "state %s is never closed", sp.stack[len(sp.stack)-1].ID)
	}
	return sp.g
}

func (sp *stateParser) scope() string {
	if len(sp.stack) == 0 {
		return "root"
	}
	return sp.stack[len(sp.stack)-1].ID
}

// declare adds a state to the innermost composite state. An explicit
// shapeType replaces the shape of an earlier declaration.
func (sp *stateParser) declare(id, label, shapeType string) *mmdmodel.Node {
	if sp.g.Subgraph(id) != nil {
		return nil
	}
	if label == "" {
		label = sp.labels[id]
	}
	n := sp.g.AddNode(id, label, shapeType)
	if n.Shape == "" {
		n.Shape = shape.ROUNDED_TYPE
	}
	if len(sp.stack) > 0 {
		sg := sp.stack[len(sp.stack)-1]
		for _, m := range sg.Nodes {
			if m == id {
				return n
			}
		}
		sg.Nodes = append(sg.Nodes, id)
	}
	return n
}

// declareMarker adds an unlabeled pseudo state.
func (sp *stateParser) declareMarker(id, shapeType string) {
	if n := sp.declare(id, "", shapeType); n != nil {
		n.Label = ""
	}
}

// endpoint resolves [*] to the start or end pseudo state of the scope.
func (sp *stateParser) endpoint(raw string, isSrc bool) string {
	raw, class := cutClassSuffix(raw)
	if raw != pseudoState {
		if n := sp.declare(raw, "", ""); n != nil && class != "" {
			addClass(n, class)
		}
		return raw
	}
	if isSrc {
		id := sp.scope() + "_start"
		sp.declareMarker(id, shape.CIRCLE_TYPE)
		return id
	}
	id := sp.scope() + "_end"
	sp.declareMarker(id, shape.DOUBLE_CIRCLE_TYPE)
	return id
}

func (sp *stateParser) statement(n int, stmt string) {
	if sp.inNote {
		if strings.EqualFold(stmt, "end note") {
			sp.inNote = false
		}
		return
	}

	kw, rest := keyword(stmt)
	switch {
	case stmt == "}":
		if len(sp.stack) == 0 {
			sp.errorf(n, "unexpected }")
			return
		}
		sp.stack = sp.stack[:len(sp.stack)-1]
		return
	case stmt == "--", kw == "hide", kw == "scale":
		return
	case strings.EqualFold(kw, "note"):
		if !strings.Contains(rest, ":") {
			sp.inNote = true
		}
		return
	case kw == "direction":
		d, ok := mmdmodel.ParseDirection(rest)
		if !ok {
			sp.errorf(n, "unknown direction %q", rest)
			return
		}
		if len(sp.stack) == 0 {
			sp.g.Direction = d
		} else {
			sp.stack[len(sp.stack)-1].Direction = d
		}
		return
	case kw == "classDef":
		if !parseClassDef(sp.g, rest) {
			sp.errorf(n, "malformed classDef %q", stmt)
		}
		return
	case kw == "class":
		if !parseClassAssignment(sp.g, rest) {
			sp.errorf(n, "malformed class statement %q", stmt)
		}
		return
	case kw == "state":
		if err := sp.stateDecl(rest); err != nil {
			sp.errorf(n, "%v", err)
		}
		return
	}

	if src, dst, ok := splitOnce(stmt, "-->"); ok {
		dst, label, _ := splitOnce(dst, ":")
		if src == "" || dst == "" {
			sp.errorf(n, "malformed transition %q", stmt)
			return
		}
		style := mmdmodel.EdgeStyle{Line: mmdmodel.LineSolid, ArrowEnd: mmdmodel.ArrowNormal}
		sp.g.AddEdge(sp.endpoint(src, true), sp.endpoint(dst, false), label, style)
		return
	}

	if id, desc, ok := splitOnce(stmt, ":"); ok && !strings.Contains(id, " ") && !strings.Contains(stmt, ":::") {
		if n := sp.declare(id, "", ""); n != nil {
			n.Label = desc
		}
		return
	}
	if strings.ContainsAny(stmt, " \t") {
		sp.errorf(n, "unexpected statement %q", stmt)
		return
	}
	sp.endpoint(stmt, true)
}

// stateDecl reads the forms
//
//	state "Description" as id
//	state id <<choice>>
//	state id {
func (sp *stateParser) stateDecl(rest string) error {
	if strings.HasPrefix(rest, `"`) {
		desc, id, ok := splitOnce(rest, " as ")
		if !ok {
			return fmt.Errorf("expected \"as\" in state declaration")
		}
		id = strings.TrimSpace(strings.TrimSuffix(id, "{"))
		sp.labels[id] = unquote(desc)
		composite := strings.HasSuffix(rest, "{")
		if composite {
			sp.openComposite(id)
			return nil
		}
		sp.declare(id, unquote(desc), "")
		return nil
	}

	if strings.HasSuffix(rest, "{") {
		sp.openComposite(strings.TrimSpace(strings.TrimSuffix(rest, "{")))
		return nil
	}

	id, stereotype, _ := splitOnce(rest, " ")
	switch stereotype {
	case "":
		sp.declare(id, "", "")
	case "<<choice>>":
		sp.declareMarker(id, shape.DIAMOND_TYPE)
	case "<<fork>>", "<<join>>":
		sp.declareMarker(id, shape.RECTANGLE_TYPE)
	default:
		return fmt.Errorf("unknown state stereotype %q", stereotype)
	}
	return nil
}

func (sp *stateParser) openComposite(id string) {
	label := sp.labels[id]
	if label == "" {
		label = id
	}
	sg := sp.g.Subgraph(id)
	if sg == nil {
		sg = &mmdmodel.Subgraph{ID: id, Label: label}
		if len(sp.stack) == 0 {
			sp.g.Subgraphs = append(sp.g.Subgraphs, sg)
		} else {
			parent := sp.stack[len(sp.stack)-1]
			parent.Subgraphs = append(parent.Subgraphs, sg)
		}
	}
	sp.stack = append(sp.stack, sg)
}
