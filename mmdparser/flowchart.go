package mmdparser

import (
	"fmt"
	"strings"
	"unicode"

	"oss.terrastruct.com/mmd/lib/shape"
	"oss.terrastruct.com/mmd/mmdmodel"
)

type shapeDelims struct {
	open   string
	closes []string
	types  []string
}

// Ordered so that longer openers win.
var flowShapes = []shapeDelims{
	{"(((", []string{")))"}, []string{shape.DOUBLE_CIRCLE_TYPE}},
	{"((", []string{"))"}, []string{shape.CIRCLE_TYPE}},
	{"([", []string{"])"}, []string{shape.STADIUM_TYPE}},
	{"[[", []string{"]]"}, []string{shape.SUBROUTINE_TYPE}},
	{"[(", []string{")]"}, []string{shape.CYLINDER_TYPE}},
	{"{{", []string{"}}"}, []string{shape.HEXAGON_TYPE}},
	{"[/", []string{"/]", `\]`}, []string{shape.PARALLELOGRAM_TYPE, shape.TRAPEZOID_TYPE}},
	{`[\`, []string{`\]`, "/]"}, []string{shape.PARALLELOGRAM_ALT_TYPE, shape.TRAPEZOID_ALT_TYPE}},
	{"[", []string{"]"}, []string{shape.RECTANGLE_TYPE}},
	{"(", []string{")"}, []string{shape.ROUNDED_TYPE}},
	{"{", []string{"}"}, []string{shape.DIAMOND_TYPE}},
	{">", []string{"]"}, []string{shape.ASYMMETRIC_TYPE}},
}

type flowNode struct {
	id    string
	label string
	shape string
	class string
}

type flowLink struct {
	label string
	style mmdmodel.EdgeStyle
}

// scanner walks one flowchart statement.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && (sc.s[sc.pos] == ' ' || sc.s[sc.pos] == '\t') {
		sc.pos++
	}
}

func (sc *scanner) peek(prefix string) bool {
	return strings.HasPrefix(sc.s[sc.pos:], prefix)
}

func isIDByte(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || b == '_' || b == '$' || b >= 0x80
}

func (sc *scanner) readID() string {
	start := sc.pos
	for sc.pos < len(sc.s) {
		b := sc.s[sc.pos]
		if isIDByte(b) {
			sc.pos++
			continue
		}
		// hyphenated ids, but not the start of a link
		if b == '-' && sc.pos+1 < len(sc.s) && isIDByte(sc.s[sc.pos+1]) && sc.pos > start {
			sc.pos++
			continue
		}
		break
	}
	return sc.s[start:sc.pos]
}

func (sc *scanner) readShape() (label, shapeType string, err error) {
	for _, d := range flowShapes {
		if !sc.peek(d.open) {
			continue
		}
		rest := sc.s[sc.pos+len(d.open):]
		body := 0
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return "", "", fmt.Errorf("unterminated string in node text")
			}
			body = end + 2
		}
		best, bestIdx := -1, -1
		for i, c := range d.closes {
			idx := strings.Index(rest[body:], c)
			if idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
				best, bestIdx = i, idx
			}
		}
		if best < 0 {
			return "", "", fmt.Errorf("missing %q", d.closes[0])
		}
		label = unquote(rest[:body+bestIdx])
		sc.pos += len(d.open) + body + bestIdx + len(d.closes[best])
		return label, d.types[best], nil
	}
	return "", "", nil
}

func (sc *scanner) readNode() (*flowNode, error) {
	sc.skipSpace()
	id := sc.readID()
	if id == "" {
		return nil, fmt.Errorf("expected node id at %q", sc.s[sc.pos:])
	}
	n := &flowNode{id: id}
	label, shapeType, err := sc.readShape()
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", id, err)
	}
	n.label, n.shape = label, shapeType
	if sc.peek(":::") {
		sc.pos += 3
		n.class = sc.readID()
	}
	return n, nil
}

// readGroup reads "a & b & c".
func (sc *scanner) readGroup() ([]*flowNode, error) {
	var out []*flowNode
	for {
		n, err := sc.readNode()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		sc.skipSpace()
		if !sc.peek("&") {
			return out, nil
		}
		sc.pos++
	}
}

func isLinkByte(b byte) bool {
	return b == '-' || b == '=' || b == '.' || b == '~'
}

func lineStyle(body string) mmdmodel.LineStyle {
	switch {
	case strings.Contains(body, "~"):
		return mmdmodel.LineInvisible
	case strings.Contains(body, "="):
		return mmdmodel.LineThick
	case strings.Contains(body, "."):
		return mmdmodel.LineDotted
	}
	return mmdmodel.LineSolid
}

func arrowFor(b byte) mmdmodel.ArrowType {
	switch b {
	case '>', '<':
		return mmdmodel.ArrowNormal
	case 'o':
		return mmdmodel.ArrowCircle
	case 'x':
		return mmdmodel.ArrowCross
	}
	return mmdmodel.ArrowNone
}

// markerEnds reports whether the o or x at pos is an arrowhead rather than
// the start of the next id.
func (sc *scanner) markerEnds(pos int) bool {
	return pos+1 >= len(sc.s) || sc.s[pos+1] == ' ' || sc.s[pos+1] == '|' || sc.s[pos+1] == '\t'
}

// readLink reads a link such as "-->", "-.->|text|", "-- text -->" or
// "<==>".
func (sc *scanner) readLink() (*flowLink, error) {
	sc.skipSpace()
	l := &flowLink{}
	if !sc.eof() {
		switch b := sc.s[sc.pos]; {
		case b == '<':
			l.style.ArrowStart = mmdmodel.ArrowNormal
			sc.pos++
		case (b == 'o' || b == 'x') && sc.pos+1 < len(sc.s) && isLinkByte(sc.s[sc.pos+1]):
			l.style.ArrowStart = arrowFor(b)
			sc.pos++
		}
	}

	start := sc.pos
	for !sc.eof() && isLinkByte(sc.s[sc.pos]) {
		sc.pos++
	}
	body := sc.s[start:sc.pos]
	if len(body) < 2 {
		return nil, fmt.Errorf("expected link at %q", sc.s[start:])
	}

	if !sc.eof() && sc.s[sc.pos] == ' ' && (body == "--" || body == "==" || body == "-.") {
		return sc.readInlineLabel(l, body)
	}
	l.style.Line = lineStyle(body)
	sc.readHead(l)

	sc.skipSpace()
	if sc.peek("|") {
		end := strings.IndexByte(sc.s[sc.pos+1:], '|')
		if end < 0 {
			return nil, fmt.Errorf("unterminated link label")
		}
		l.label = unquote(sc.s[sc.pos+1 : sc.pos+1+end])
		sc.pos += end + 2
	}
	return l, nil
}

func (sc *scanner) readHead(l *flowLink) {
	if sc.eof() {
		return
	}
	switch b := sc.s[sc.pos]; b {
	case '>':
		l.style.ArrowEnd = mmdmodel.ArrowNormal
		sc.pos++
	case 'o', 'x':
		if sc.markerEnds(sc.pos) {
			l.style.ArrowEnd = arrowFor(b)
			sc.pos++
		}
	}
}

var inlineClosers = map[string][]string{
	"--": {"-->", "---", "--o", "--x"},
	"==": {"==>", "===", "==o", "==x"},
	"-.": {".->", ".-"},
}

func (sc *scanner) readInlineLabel(l *flowLink, open string) (*flowLink, error) {
	rest := sc.s[sc.pos:]
	best, bestIdx := "", -1
	for _, c := range inlineClosers[open] {
		idx := strings.Index(rest, c)
		if idx >= 0 && (bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(c) > len(best))) {
			best, bestIdx = c, idx
		}
	}
	if bestIdx < 0 {
		return nil, fmt.Errorf("unterminated link text after %q", open)
	}
	l.label = unquote(rest[:bestIdx])
	sc.pos += bestIdx
	for !sc.eof() && isLinkByte(sc.s[sc.pos]) {
		sc.pos++
	}
	l.style.Line = lineStyle(open + best)
	sc.readHead(l)
	return l, nil
}

type flowParser struct {
	*parser
	g *mmdmodel.Graph
	// open subgraphs, innermost last
	stack     []*mmdmodel.Subgraph
	subgraphs map[string]bool
	anon      int
}

func (p *parser) parseFlowchart(dir mmdmodel.Direction) *mmdmodel.Graph {
	fp := &flowParser{
		parser:    p,
		g:         mmdmodel.NewGraph(dir),
		subgraphs: make(map[string]bool),
	}
	for _, l := range p.lines {
		for _, stmt := range splitStatements(l.text) {
			fp.statement(l.n, stmt)
		}
	}
	if len(fp.stack) > 0 {
		p.errorf(p.lines[len(p.lines)-1].n, "subgraph %s is never closed", fp.stack[len(fp.stack)-1].ID)
	}
	return fp.g
}

func (fp *flowParser) statement(n int, stmt string) {
	kw, rest := keyword(stmt)
	switch kw {
	case "subgraph":
		fp.openSubgraph(n, rest)
		return
	case "end":
		if rest == "" {
			if len(fp.stack) == 0 {
				fp.errorf(n, "end without subgraph")
				return
			}
			fp.stack = fp.stack[:len(fp.stack)-1]
			return
		}
	case "direction":
		d, ok := mmdmodel.ParseDirection(rest)
		if !ok {
			fp.errorf(n, "unknown direction %q", rest)
			return
		}
		if len(fp.stack) == 0 {
			fp.g.Direction = d
		} else {
			fp.stack[len(fp.stack)-1].Direction = d
		}
		return
	case "classDef":
		if !parseClassDef(fp.g, rest) {
			fp.errorf(n, "malformed classDef %q", stmt)
		}
		return
	case "class":
		if !parseClassAssignment(fp.g, rest) {
			fp.errorf(n, "malformed class statement %q", stmt)
		}
		return
	case "style", "linkStyle", "click":
		return
	}
	if err := fp.chain(stmt); err != nil {
		fp.errorf(n, "%v", err)
	}
}

func (fp *flowParser) openSubgraph(n int, rest string) {
	sg := &mmdmodel.Subgraph{}
	switch {
	case rest == "":
		fp.errorf(n, "subgraph without id")
		return
	case strings.HasPrefix(rest, `"`):
		fp.anon++
		sg.ID = fmt.Sprintf("subGraph%d", fp.anon)
		sg.Label = unquote(rest)
	case strings.Contains(rest, "["):
		id, label, _ := splitOnce(rest, "[")
		sg.ID = id
		sg.Label = unquote(strings.TrimSuffix(label, "]"))
	default:
		sg.ID = rest
		sg.Label = rest
	}
	if fp.subgraphs[sg.ID] {
		fp.errorf(n, "duplicate subgraph %s", sg.ID)
		return
	}
	fp.subgraphs[sg.ID] = true
	if len(fp.stack) == 0 {
		fp.g.Subgraphs = append(fp.g.Subgraphs, sg)
	} else {
		parent := fp.stack[len(fp.stack)-1]
		parent.Subgraphs = append(parent.Subgraphs, sg)
	}
	fp.stack = append(fp.stack, sg)
}

func (fp *flowParser) declare(fn *flowNode) {
	if fp.subgraphs[fn.id] {
		return
	}
	node := fp.g.AddNode(fn.id, fn.label, fn.shape)
	if fn.class != "" {
		addClass(node, fn.class)
	}
	if len(fp.stack) > 0 {
		sg := fp.stack[len(fp.stack)-1]
		for _, id := range sg.Nodes {
			if id == fn.id {
				return
			}
		}
		sg.Nodes = append(sg.Nodes, fn.id)
	}
}

// chain reads "a --> b & c -.-> d".
func (fp *flowParser) chain(stmt string) error {
	sc := &scanner{s: stmt}
	left, err := sc.readGroup()
	if err != nil {
		return err
	}
	for _, fn := range left {
		fp.declare(fn)
	}
	for {
		sc.skipSpace()
		if sc.eof() {
			return nil
		}
		link, err := sc.readLink()
		if err != nil {
			return err
		}
		right, err := sc.readGroup()
		if err != nil {
			return err
		}
		for _, fn := range right {
			fp.declare(fn)
		}
		for _, src := range left {
			for _, dst := range right {
				fp.g.AddEdge(src.id, dst.id, link.label, link.style)
			}
		}
		left = right
	}
}
