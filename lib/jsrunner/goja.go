package jsrunner

import (
	"context"
	"errors"
	"fmt"

	"cdr.dev/slog"
	"github.com/dop251/goja"

	"oss.terrastruct.com/mmd/lib/log"
)

type gojaRunner struct {
	vm *goja.Runtime
}

type gojaValue struct {
	val goja.Value
}

// NewJSRunner returns a goja runtime with a console that forwards to the
// context logger.
func NewJSRunner(ctx context.Context) (JSRunner, error) {
	g := &gojaRunner{vm: goja.New()}
	console, err := g.createConsole(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.vm.Set("console", console); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *gojaRunner) RunString(code string) (JSValue, error) {
	val, err := g.vm.RunString(code)
	if err != nil {
		return nil, err
	}
	return &gojaValue{val: val}, nil
}

func (v *gojaValue) String() string {
	return v.val.String()
}

func (v *gojaValue) Export() interface{} {
	return v.val.Export()
}

func (g *gojaRunner) Set(name string, value interface{}) error {
	return g.vm.Set(name, value)
}

func (g *gojaRunner) WaitPromise(ctx context.Context, val JSValue) (interface{}, error) {
	gVal, ok := val.(*gojaValue)
	if !ok {
		return nil, fmt.Errorf("unexpected JS value %T", val)
	}
	promise, ok := gVal.val.Export().(*goja.Promise)
	if !ok {
		return gVal.Export(), nil
	}

	// goja drains its job queue before RunString returns, so a promise that
	// is still pending here can never settle.
	switch promise.State() {
	case goja.PromiseStatePending:
		return nil, errors.New("promise did not settle")
	case goja.PromiseStateRejected:
		reason := promise.Result()
		if reason == nil {
			return nil, errors.New("promise rejected")
		}
		return nil, fmt.Errorf("promise rejected: %s", reason.String())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return promise.Result().Export(), nil
}

func (g *gojaRunner) createConsole(ctx context.Context) (*goja.Object, error) {
	vm := g.vm
	console := vm.NewObject()

	logger := func(warn bool) func(call goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]interface{}, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.Export()
			}
			msg := fmt.Sprint(args...)
			if warn {
				log.Warn(ctx, "js console", slog.F("msg", msg))
			} else {
				log.Debug(ctx, "js console", slog.F("msg", msg))
			}
			return nil
		}
	}

	if err := console.Set("log", vm.ToValue(logger(false))); err != nil {
		return nil, err
	}
	if err := console.Set("warn", vm.ToValue(logger(true))); err != nil {
		return nil, err
	}
	if err := console.Set("error", vm.ToValue(logger(true))); err != nil {
		return nil, err
	}
	return console, nil
}
