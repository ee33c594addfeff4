package mmdelk

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mmd/lib/jsrunner"
)

//go:embed setup.js
var setupJS string

// JSSolver runs elk.js inside a goja runtime. The bundle is supplied by the
// caller and must define a global ELK constructor.
type JSSolver struct {
	mu     sync.Mutex
	runner jsrunner.JSRunner
}

func NewJSSolver(ctx context.Context, elkJS string) (_ *JSSolver, err error) {
	defer xdefer.Errorf(&err, "failed to load elk.js")

	if elkJS == "" {
		return nil, errors.New("empty elk.js bundle")
	}
	runner, err := jsrunner.NewJSRunner(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := runner.RunString(elkJS); err != nil {
		return nil, err
	}
	if _, err := runner.RunString(setupJS); err != nil {
		return nil, err
	}
	return &JSSolver{runner: runner}, nil
}

func (s *JSSolver) Solve(ctx context.Context, g *ELKGraph) (_ *ELKGraph, err error) {
	defer xdefer.Errorf(&err, "elk.js layout failed")

	raw, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	arg, err := json.Marshal(string(raw))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	val, err := s.runner.RunString(fmt.Sprintf("elkLayout(%s)", arg))
	if err != nil {
		return nil, err
	}
	out, err := s.runner.WaitPromise(ctx, val)
	if err != nil {
		return nil, err
	}
	str, ok := out.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected layout result %T", out)
	}

	var solved ELKGraph
	if err := json.Unmarshal([]byte(str), &solved); err != nil {
		return nil, err
	}
	return &solved, nil
}
