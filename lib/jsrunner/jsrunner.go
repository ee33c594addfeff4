// Package jsrunner hosts JavaScript layout bundles.
package jsrunner

import "context"

type JSRunner interface {
	RunString(code string) (JSValue, error)
	Set(name string, value interface{}) error
	// WaitPromise returns the settled value of a promise, or val itself when
	// it is not a promise.
	WaitPromise(ctx context.Context, val JSValue) (interface{}, error)
}

type JSValue interface {
	String() string
	Export() interface{}
}
