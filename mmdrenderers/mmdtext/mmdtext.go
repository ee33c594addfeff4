// Package mmdtext renders label text as SVG text elements, one per line.
//
// Labels may break lines with newlines or <br> and may be formatted with a
// small set of tags: <b>/<strong>, <i>/<em>, <u>/<ins> and <s>/<del>/<strike>.
// Any other markup is kept as literal text.
package mmdtext

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"oss.terrastruct.com/mmd/lib/textmeasure"
)

type Align string

const (
	AlignMiddle Align = "middle"
	AlignStart  Align = "start"
)

type Opts struct {
	// X is the center of every line, or its left edge with AlignStart.
	X float64
	// Y is the vertical center of the block of lines.
	Y float64

	FontSize   int
	FontFamily string
	// LineHeight is a multiple of FontSize.
	LineHeight float64
	Align      Align

	Fill  string
	Class string
}

func (opts *Opts) withDefaults() *Opts {
	out := &Opts{}
	if opts != nil {
		*out = *opts
	}
	if out.FontSize <= 0 {
		out.FontSize = textmeasure.FONT_SIZE_M
	}
	if out.LineHeight <= 0 {
		out.LineHeight = textmeasure.DEFAULT_LINE_HEIGHT_FACTOR
	}
	if out.Align == "" {
		out.Align = AlignMiddle
	}
	return out
}

type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

func (s Style) attrs() string {
	var attrs []string
	if s.Bold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	if s.Italic {
		attrs = append(attrs, `font-style="italic"`)
	}
	var decorations []string
	if s.Underline {
		decorations = append(decorations, "underline")
	}
	if s.Strikethrough {
		decorations = append(decorations, "line-through")
	}
	if len(decorations) > 0 {
		attrs = append(attrs, fmt.Sprintf(`text-decoration="%s"`, strings.Join(decorations, " ")))
	}
	return strings.Join(attrs, " ")
}

// Span is a run of text sharing one style.
type Span struct {
	Text string
	Style
}

type Line []Span

func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render returns one <text> element per line of text, stacked by the line
// height around opts.Y.
func Render(text string, opts *Opts) []string {
	opts = opts.withDefaults()
	lines := Parse(text)

	lineHeight := float64(opts.FontSize) * opts.LineHeight
	y := opts.Y - lineHeight*float64(len(lines)-1)/2

	var attrs strings.Builder
	fmt.Fprintf(&attrs, `text-anchor="%s" dominant-baseline="middle"`, opts.Align)
	if opts.Fill != "" {
		fmt.Fprintf(&attrs, ` fill="%s"`, escape(opts.Fill))
	}
	if opts.Class != "" {
		fmt.Fprintf(&attrs, ` class="%s"`, escape(opts.Class))
	}
	fmt.Fprintf(&attrs, ` style="font-size:%dpx`, opts.FontSize)
	if opts.FontFamily != "" {
		fmt.Fprintf(&attrs, `;font-family:%s`, escape(opts.FontFamily))
	}
	attrs.WriteString(`"`)

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		var b strings.Builder
		fmt.Fprintf(&b, `<text x="%v" y="%v" %s>`, opts.X, y+float64(i)*lineHeight, attrs.String())
		if len(line) == 0 {
			// an empty element would collapse the line
			b.WriteString(" ")
		}
		for _, span := range line {
			if a := span.attrs(); a != "" {
				fmt.Fprintf(&b, "<tspan %s>%s</tspan>", a, escape(span.Text))
			} else {
				b.WriteString(escape(span.Text))
			}
		}
		b.WriteString("</text>")
		out = append(out, b.String())
	}
	return out
}

// escape makes s safe inside an element or a quoted attribute.
func escape(s string) string {
	return html.EscapeString(s)
}

// Parse splits text into lines of styled spans. There is always at least one
// line.
func Parse(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	p := &parser{lines: []Line{nil}, depth: make(map[string]int)}
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		// TagName lowercases the buffer Raw reads from
		raw := string(z.Raw())
		switch tt {
		case html.ErrorToken:
			// an unterminated tag at the end is kept as text
			p.write(raw)
			return p.lines
		case html.TextToken:
			p.write(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			z.NextIsNotRawText()
			switch {
			case string(name) == "br":
				p.newline()
			case tt == html.StartTagToken && p.open(string(name)):
			default:
				p.write(raw)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch {
			case string(name) == "br":
				p.newline()
			case p.close(string(name)):
			default:
				p.write(raw)
			}
		default:
			p.write(raw)
		}
	}
}

// styleTags maps every formatting tag to the style it switches on.
var styleTags = map[string]string{
	"b":      "b",
	"strong": "b",
	"i":      "i",
	"em":     "i",
	"u":      "u",
	"ins":    "u",
	"s":      "s",
	"del":    "s",
	"strike": "s",
}

type parser struct {
	lines []Line
	// open tags per style
	depth map[string]int
}

func (p *parser) style() Style {
	return Style{
		Bold:          p.depth["b"] > 0,
		Italic:        p.depth["i"] > 0,
		Underline:     p.depth["u"] > 0,
		Strikethrough: p.depth["s"] > 0,
	}
}

func (p *parser) open(tag string) bool {
	style, ok := styleTags[tag]
	if ok {
		p.depth[style]++
	}
	return ok
}

// close drops a closing formatting tag even when nothing is open.
func (p *parser) close(tag string) bool {
	style, ok := styleTags[tag]
	if ok && p.depth[style] > 0 {
		p.depth[style]--
	}
	return ok
}

func (p *parser) newline() {
	p.lines = append(p.lines, nil)
}

func (p *parser) write(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			p.newline()
		}
		if part == "" {
			continue
		}
		cur := &p.lines[len(p.lines)-1]
		style := p.style()
		if n := len(*cur); n > 0 && (*cur)[n-1].Style == style {
			(*cur)[n-1].Text += part
			continue
		}
		*cur = append(*cur, Span{Text: part, Style: style})
	}
}
