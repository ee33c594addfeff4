package jsrunner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/jsrunner"
	"oss.terrastruct.com/mmd/lib/log"
)

func TestWaitPromise(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	runner, err := jsrunner.NewJSRunner(ctx)
	require.NoError(t, err)

	val, err := runner.RunString(`console.log("hi"); Promise.resolve(JSON.stringify({a: 1}))`)
	require.NoError(t, err)
	out, err := runner.WaitPromise(ctx, val)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)

	val, err = runner.RunString(`Promise.reject(new Error("boom"))`)
	require.NoError(t, err)
	_, err = runner.WaitPromise(ctx, val)
	assert.ErrorContains(t, err, "boom")

	val, err = runner.RunString(`new Promise(() => {})`)
	require.NoError(t, err)
	_, err = runner.WaitPromise(ctx, val)
	assert.Error(t, err)

	val, err = runner.RunString(`1 + 2`)
	require.NoError(t, err)
	out, err = runner.WaitPromise(ctx, val)
	require.NoError(t, err)
	assert.EqualValues(t, 3, out)
}

func TestSet(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	runner, err := jsrunner.NewJSRunner(ctx)
	require.NoError(t, err)

	require.NoError(t, runner.Set("input", `{"w": 10}`))
	val, err := runner.RunString(`JSON.parse(input).w * 2`)
	require.NoError(t, err)
	assert.Equal(t, "20", val.String())
}
