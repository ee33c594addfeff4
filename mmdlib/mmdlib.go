// Package mmdlib ties parsing, layout and rendering together behind one
// entry point configured by Options.
package mmdlib

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdclass"
	"oss.terrastruct.com/mmd/mmdlayouts/mmddagre"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdelk"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdgraphviz"
	"oss.terrastruct.com/mmd/mmdlayouts/mmdsequence"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdparser"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii"
	"oss.terrastruct.com/mmd/mmdtarget"
	"oss.terrastruct.com/mmd/mmdthemes"
)

// LayoutError is returned when a diagram could not be laid out, solver
// failures included.
type LayoutError struct {
	Kind mmdmodel.Kind
	Err  error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s layout: %v", e.Kind, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// Engines replaces the solvers Options would create. JS bundles are only
// needed for the JS engines.
type Engines struct {
	Graph mmdelk.Solver
	Class mmdclass.LeveledSolver

	ELKJS   string
	DagreJS string
}

// Layouter lays out and renders diagrams. Solvers are created on first use
// and shared; a Layouter is safe for concurrent use.
type Layouter struct {
	opts    Options
	theme   mmdthemes.Theme
	engines Engines

	graphOnce   sync.Once
	graphSolver mmdelk.Solver
	graphErr    error

	classOnce   sync.Once
	classSolver mmdclass.LeveledSolver
	classErr    error
}

func New(opts *Options, engines *Engines) (*Layouter, error) {
	o := opts.withDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	theme, err := o.theme()
	if err != nil {
		return nil, err
	}
	l := &Layouter{opts: o, theme: theme}
	if engines != nil {
		l.engines = *engines
	}
	return l, nil
}

func (l *Layouter) graph(ctx context.Context) (mmdelk.Solver, error) {
	if l.engines.Graph != nil {
		return l.engines.Graph, nil
	}
	l.graphOnce.Do(func() {
		switch l.opts.LayoutEngine {
		case EngineELKJS:
			var s *mmdelk.JSSolver
			s, l.graphErr = mmdelk.NewJSSolver(ctx, l.engines.ELKJS)
			if l.graphErr == nil {
				l.graphSolver = s
			}
		default:
			var s *mmdgraphviz.ELKSolver
			s, l.graphErr = mmdgraphviz.NewELKSolver(ctx)
			if l.graphErr == nil {
				l.graphSolver = s
			}
		}
	})
	return l.graphSolver, l.graphErr
}

func (l *Layouter) class(ctx context.Context) (mmdclass.LeveledSolver, error) {
	if l.engines.Class != nil {
		return l.engines.Class, nil
	}
	l.classOnce.Do(func() {
		switch l.opts.LayoutEngine {
		case EngineDagreJS:
			var s *mmddagre.Solver
			s, l.classErr = mmddagre.NewSolver(ctx, l.engines.DagreJS)
			if l.classErr == nil {
				l.classSolver = s
			}
		default:
			var s *mmdgraphviz.LeveledSolver
			s, l.classErr = mmdgraphviz.NewLeveledSolver(ctx)
			if l.classErr == nil {
				l.classSolver = s
			}
		}
	})
	return l.classSolver, l.classErr
}

// Close releases the solvers the Layouter created.
func (l *Layouter) Close() error {
	var err error
	for _, s := range []interface{}{l.graphSolver, l.classSolver} {
		if c, ok := s.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	return err
}

// Layout computes the geometry of d.
func (l *Layouter) Layout(ctx context.Context, d *mmdmodel.Diagram) (*mmdtarget.Diagram, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	ctx = log.WithFields(log.Named(log.Ensure(ctx), "layout"), slog.F("kind", string(d.Kind)))

	t := time.Now()
	out := &mmdtarget.Diagram{Kind: d.Kind}
	var err error
	switch {
	case d.Kind.IsGraph():
		var solver mmdelk.Solver
		solver, err = l.graph(ctx)
		if err == nil {
			opts := mmdelk.DefaultOpts
			if l.opts.NodeSpacing > 0 {
				opts.NodeSpacing = l.opts.NodeSpacing
			}
			if l.opts.LayerSpacing > 0 {
				opts.LayerSpacing = l.opts.LayerSpacing
			}
			if l.opts.PaddingX > 0 || l.opts.PaddingY > 0 {
				pad := mmdelk.ParsePadding(opts.Padding)
				if l.opts.PaddingX > 0 {
					pad.Left, pad.Right = l.opts.PaddingX, l.opts.PaddingX
				}
				if l.opts.PaddingY > 0 {
					pad.Top, pad.Bottom = l.opts.PaddingY, l.opts.PaddingY
				}
				opts.Padding = pad.String()
			}
			opts.FontFamily = l.opts.FontFamily
			opts.Solver = solver
			out.Graph, err = mmdelk.Layout(ctx, d.Kind, d.Graph, &opts)
		}
	case d.Kind == mmdmodel.KindSequence:
		opts := mmdsequence.DefaultOpts
		if l.opts.PaddingX > 0 {
			opts.PaddingX = float64(l.opts.PaddingX)
		}
		if l.opts.PaddingY > 0 {
			opts.PaddingY = float64(l.opts.PaddingY)
		}
		opts.FontFamily = l.opts.FontFamily
		out.Sequence, err = mmdsequence.Layout(ctx, d.Sequence, &opts)
	case d.Kind == mmdmodel.KindClass:
		var solver mmdclass.LeveledSolver
		solver, err = l.class(ctx)
		if err == nil {
			opts := mmdclass.DefaultOpts
			if l.opts.NodeSpacing > 0 {
				opts.NodeSpacing = float64(l.opts.NodeSpacing)
			}
			if l.opts.LayerSpacing > 0 {
				opts.RankSpacing = float64(l.opts.LayerSpacing)
			}
			opts.FontFamily = l.opts.FontFamily
			opts.Solver = solver
			out.Class, err = mmdclass.Layout(ctx, d.Class, &opts)
		}
	default:
		err = fmt.Errorf("unsupported diagram kind %q", d.Kind)
	}
	if err != nil {
		return nil, &LayoutError{Kind: d.Kind, Err: err}
	}
	w, h := out.Size()
	log.Debug(ctx, "laid out", slog.F("duration", time.Since(t).String()), slog.F("width", w), slog.F("height", h))
	return out, nil
}

type Result struct {
	Diagram *mmdtarget.Diagram
	Err     error
}

// LayoutAsync runs Layout on its own goroutine. The channel receives exactly
// one result.
func (l *Layouter) LayoutAsync(ctx context.Context, d *mmdmodel.Diagram) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := l.Layout(ctx, d)
		ch <- Result{Diagram: out, Err: err}
	}()
	return ch
}

// Output holds either the geometry of a diagram and the text elements of its
// labels or, with UseASCII, its text drawing.
type Output struct {
	Diagram *mmdtarget.Diagram
	Text    []string
	ASCII   string
}

// Render parses text and lays it out, or draws it as text with UseASCII.
func (l *Layouter) Render(ctx context.Context, text string) (_ *Output, err error) {
	defer xdefer.Errorf(&err, "failed to render diagram")

	d, err := mmdparser.Parse(text)
	if err != nil {
		return nil, err
	}
	if l.opts.UseASCII {
		s, err := mmdascii.RenderDiagram(ctx, d, l.opts.asciiOpts(l.theme))
		if err != nil {
			return nil, err
		}
		return &Output{ASCII: s}, nil
	}
	out, err := l.Layout(ctx, d)
	if err != nil {
		return nil, err
	}
	return &Output{Diagram: out, Text: l.Text(out)}, nil
}
