// Package mmdascii draws diagrams as text, with ASCII or Unicode box drawing
// characters.
//
// Flowchart, state, ER and class diagrams are placed on a grid of cells, one
// block of three by three cells per node, and their edges are routed through
// the free cells. Sequence diagrams are laid out row by row.
package mmdascii

import (
	"context"
	"fmt"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdparser"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciicanvas"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
	"oss.terrastruct.com/mmd/mmdthemes"
	"oss.terrastruct.com/mmd/mmdthemes/mmdthemescatalog"
)

const (
	DEFAULT_PADDING_X          = 5
	DEFAULT_PADDING_Y          = 4
	DEFAULT_BOX_BORDER_PADDING = 1
)

// Parser turns diagram text into a model.
type Parser interface {
	Parse(text string) (*mmdmodel.Diagram, error)
}

type ParserFunc func(text string) (*mmdmodel.Diagram, error)

func (f ParserFunc) Parse(text string) (*mmdmodel.Diagram, error) {
	return f(text)
}

type Opts struct {
	// PaddingX is the width of the gaps between grid nodes and between
	// sequence actors.
	PaddingX int
	// PaddingY is the height of the gaps between grid nodes.
	PaddingY int
	// BoxBorderPadding is the space between a box border and its text.
	// Negative means none.
	BoxBorderPadding int

	Charset   charset.Type
	ColorMode ColorMode
	Theme     *mmdthemes.Theme

	// Parser defaults to mmdparser.
	Parser Parser
}

func (opts *Opts) withDefaults() *Opts {
	out := &Opts{}
	if opts != nil {
		*out = *opts
	}
	if out.PaddingX <= 0 {
		out.PaddingX = DEFAULT_PADDING_X
	}
	if out.PaddingY <= 0 {
		out.PaddingY = DEFAULT_PADDING_Y
	}
	switch {
	case out.BoxBorderPadding == 0:
		out.BoxBorderPadding = DEFAULT_BOX_BORDER_PADDING
	case out.BoxBorderPadding < 0:
		out.BoxBorderPadding = 0
	}
	if out.ColorMode == "" {
		out.ColorMode = ColorNone
	}
	if out.Theme == nil {
		theme := mmdthemescatalog.NeutralDefault
		out.Theme = &theme
	}
	if out.Parser == nil {
		out.Parser = ParserFunc(mmdparser.Parse)
	}
	return out
}

// Render detects the type of text from its first line, parses and draws it.
func Render(ctx context.Context, text string, opts *Opts) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to render ascii diagram")

	ctx = log.Ensure(ctx)
	opts = opts.withDefaults()
	kind, err := mmdparser.Detect(text)
	if err != nil {
		return "", err
	}
	d, err := opts.Parser.Parse(text)
	if err != nil {
		return "", err
	}
	if d.Kind != kind {
		return "", fmt.Errorf("parser returned a %s diagram for %s input", d.Kind, kind)
	}
	return RenderDiagram(ctx, d, opts)
}

// RenderDiagram draws an already parsed diagram.
func RenderDiagram(ctx context.Context, d *mmdmodel.Diagram, opts *Opts) (_ string, err error) {
	if d == nil {
		return "", fmt.Errorf("missing diagram")
	}
	defer xdefer.Errorf(&err, "failed to draw %s diagram", d.Kind)

	ctx = log.Ensure(ctx)
	if err := d.Check(); err != nil {
		return "", err
	}
	opts = opts.withDefaults()

	var c *asciicanvas.Canvas
	switch {
	case d.Kind.IsGraph():
		c = newGridRenderer(ctx, fromGraph(d.Graph), opts).render()
	case d.Kind == mmdmodel.KindSequence:
		c = newSequenceRenderer(d.Sequence, opts).render()
	case d.Kind == mmdmodel.KindClass:
		c = newGridRenderer(ctx, fromClass(d.Class), opts).render()
	default:
		return "", fmt.Errorf("unsupported diagram kind %q", d.Kind)
	}
	log.Debug(ctx, "drew ascii diagram")
	return c.Render(newPainter(opts.ColorMode, *opts.Theme)), nil
}
