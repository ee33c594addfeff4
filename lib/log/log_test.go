package log

import (
	"context"
	"testing"

	"cdr.dev/slog"
	"github.com/stretchr/testify/assert"
)

func TestEnsure(t *testing.T) {
	t.Parallel()

	ctx := WithTB(context.Background(), t, nil)
	assert.Equal(t, ctx, Ensure(ctx))

	bare := Ensure(context.Background())
	_, ok := bare.Value(loggerKey{}).(slog.Logger)
	assert.True(t, ok)

	ctx = WithFields(Named(ctx, "test"), slog.F("k", "v"))
	Debug(ctx, "named with fields")
}
