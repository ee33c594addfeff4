package mmdgraphviz

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-graphviz"
)

// engine serializes dot runs: a graphviz context is not safe for concurrent
// use.
type engine struct {
	mu sync.Mutex
	gv *graphviz.Graphviz
}

func newEngine(ctx context.Context) (*engine, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create graphviz: %w", err)
	}
	gv.SetLayout(graphviz.DOT)
	return &engine{gv: gv}, nil
}

func (e *engine) run(ctx context.Context, in *dotInput) (*dotOutput, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return runDot(ctx, e.gv, in)
}

func (e *engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gv.Close()
}
