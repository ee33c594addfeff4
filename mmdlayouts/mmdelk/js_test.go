package mmdelk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/log"
)

const stubELK = `
function ELK() {}
ELK.prototype.layout = function (g) {
  g.width = 10;
  g.height = 20;
  (g.children || []).forEach(function (c, i) { c.x = i * 100; });
  return Promise.resolve(g);
};
`

func TestJSSolver(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	s, err := NewJSSolver(ctx, stubELK)
	require.NoError(t, err)

	out, err := s.Solve(ctx, &ELKGraph{
		ID:            rootID,
		LayoutOptions: &ElkOpts{Algorithm: "layered"},
		Children: []*ELKNode{
			{ID: "a", Width: 10, Height: 10},
			{ID: "b", Width: 10, Height: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10., out.Width)
	assert.Equal(t, 20., out.Height)
	assert.Equal(t, 100., out.Children[1].X)

	_, err = NewJSSolver(ctx, "")
	assert.Error(t, err)
}
