// Package mmdparser reads the Mermaid subset understood by the layout
// engines into mmdmodel diagrams.
//
// It is not a complete Mermaid grammar: each diagram type supports the
// statements needed to build its model, and anything else is reported as a
// parse error with its line number.
package mmdparser

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
)

type Error struct {
	// Line is 1-based.
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type ParseError struct {
	Errors []Error `json:"errs"`
}

func (pe *ParseError) Empty() bool {
	if pe == nil {
		return true
	}
	return len(pe.Errors) == 0
}

func (pe *ParseError) Error() string {
	var sb strings.Builder
	for i, err := range pe.Errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

type line struct {
	n    int
	text string
}

type parser struct {
	lines []line
	err   *ParseError
}

func (p *parser) errorf(n int, f string, v ...interface{}) {
	p.err.Errors = append(p.err.Errors, Error{Line: n, Message: fmt.Sprintf(f, v...)})
}

// Parse detects the diagram type of text and parses it. Partial input is
// never returned: any error yields a nil diagram and a *ParseError.
func Parse(text string) (*mmdmodel.Diagram, error) {
	lines := significantLines(text)
	if len(lines) == 0 {
		return nil, &ParseError{Errors: []Error{{Line: 1, Message: "empty diagram"}}}
	}
	kind, dir, err := header(lines[0])
	if err != nil {
		return nil, &ParseError{Errors: []Error{{Line: lines[0].n, Message: err.Error()}}}
	}

	p := &parser{lines: lines[1:], err: &ParseError{}}
	var d *mmdmodel.Diagram
	switch kind {
	case mmdmodel.KindFlowchart:
		d = mmdmodel.NewGraphDiagram(kind, p.parseFlowchart(dir))
	case mmdmodel.KindState:
		d = mmdmodel.NewGraphDiagram(kind, p.parseState())
	case mmdmodel.KindER:
		d = mmdmodel.NewGraphDiagram(kind, p.parseER())
	case mmdmodel.KindSequence:
		d = mmdmodel.NewSequenceDiagram(p.parseSequence())
	case mmdmodel.KindClass:
		d = mmdmodel.NewClassDiagram(p.parseClass())
	}
	if !p.err.Empty() {
		return nil, p.err
	}
	return d, nil
}

// significantLines drops blank lines, %% comments and a leading front matter
// block, trimming what is left.
func significantLines(text string) []line {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var out []line
	frontMatter := false
	for i, l := range raw {
		t := strings.TrimSpace(l)
		if len(out) == 0 && t == "---" {
			frontMatter = !frontMatter
			continue
		}
		if frontMatter || t == "" || strings.HasPrefix(t, "%%") {
			continue
		}
		out = append(out, line{n: i + 1, text: t})
	}
	return out
}

// splitOnce cuts s around the first sep, trimming both halves.
func splitOnce(s, sep string) (string, string, bool) {
	before, after, ok := strings.Cut(s, sep)
	return strings.TrimSpace(before), strings.TrimSpace(after), ok
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
