package asciiroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpposite(t *testing.T) {
	t.Parallel()

	all := []Direction{Middle, Up, Down, Left, Right, UpperLeft, UpperRight, LowerLeft, LowerRight}
	for _, d := range all {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.Equal(t, d.Offset(), GridCoord{-d.Opposite().Offset().X, -d.Opposite().Offset().Y}, d.String())
	}
}

func TestDetermineDirection(t *testing.T) {
	t.Parallel()

	origin := GridCoord{4, 4}
	testCases := []struct {
		to  GridCoord
		exp Direction
	}{
		{GridCoord{4, 4}, Middle},
		{GridCoord{4, 0}, Up},
		{GridCoord{4, 8}, Down},
		{GridCoord{0, 4}, Left},
		{GridCoord{8, 4}, Right},
		{GridCoord{0, 0}, UpperLeft},
		{GridCoord{8, 0}, UpperRight},
		{GridCoord{0, 8}, LowerLeft},
		{GridCoord{8, 8}, LowerRight},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.exp, DetermineDirection(origin, tc.to), tc.exp.String())
	}
}

func TestDetermineStartAndEndDir(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		from GridCoord
		to   GridCoord
		flow Flow
		exp  [4]Direction
	}{
		{name: "self_lr", from: GridCoord{1, 1}, to: GridCoord{1, 1}, flow: FlowLR, exp: [4]Direction{Right, Down, Down, Right}},
		{name: "self_td", from: GridCoord{1, 1}, to: GridCoord{1, 1}, flow: FlowTD, exp: [4]Direction{Down, Right, Right, Down}},
		{name: "right", from: GridCoord{1, 1}, to: GridCoord{5, 1}, flow: FlowLR, exp: [4]Direction{Right, Left, Down, Down}},
		{name: "back_lr", from: GridCoord{5, 1}, to: GridCoord{1, 1}, flow: FlowLR, exp: [4]Direction{Down, Down, Left, Right}},
		{name: "back_td", from: GridCoord{1, 5}, to: GridCoord{1, 1}, flow: FlowTD, exp: [4]Direction{Right, Right, Up, Down}},
		{name: "lower_right_td", from: GridCoord{1, 1}, to: GridCoord{5, 5}, flow: FlowTD, exp: [4]Direction{Right, Up, Down, Left}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, e, as, ae := DetermineStartAndEndDir(tc.from, tc.to, tc.flow)
			assert.Equal(t, tc.exp, [4]Direction{s, e, as, ae})
		})
	}
}

func openGrid(maxX, maxY int) *Grid {
	g := NewGrid()
	g.MaxX, g.MaxY = maxX, maxY
	return g
}

func TestGetPath(t *testing.T) {
	t.Parallel()

	t.Run("straight", func(t *testing.T) {
		t.Parallel()

		path, err := GetPath(openGrid(4, 4), GridCoord{0, 0}, GridCoord{2, 0})
		require.NoError(t, err)
		assert.Equal(t, []GridCoord{{0, 0}, {1, 0}, {2, 0}}, path)
		assert.Equal(t, []GridCoord{{0, 0}, {2, 0}}, MergePath(path))
	})

	t.Run("single_turn", func(t *testing.T) {
		t.Parallel()

		path, err := GetPath(openGrid(4, 4), GridCoord{0, 0}, GridCoord{2, 2})
		require.NoError(t, err)
		merged := MergePath(path)
		assert.Len(t, merged, 3)
		assert.Equal(t, 4, Steps(merged))
	})

	t.Run("around_node", func(t *testing.T) {
		t.Parallel()

		g := openGrid(6, 6)
		g.Reserve(GridCoord{2, 0}, "wall")
		path, err := GetPath(g, GridCoord{0, 1}, GridCoord{6, 1})
		require.NoError(t, err)
		for _, c := range path {
			_, occupied := g.Occupant(c)
			assert.False(t, occupied, "%v", c)
		}
	})

	t.Run("out_of_bounds", func(t *testing.T) {
		t.Parallel()

		_, err := GetPath(openGrid(2, 2), GridCoord{0, 0}, GridCoord{3, 0})
		assert.ErrorIs(t, err, ErrNoPath)
	})
}

func twoNodes() *Grid {
	g := NewGrid()
	g.Reserve(GridCoord{1, 1}, "a")
	g.Reserve(GridCoord{5, 1}, "b")
	return g
}

func TestDeterminePath(t *testing.T) {
	t.Parallel()

	g := twoNodes()
	first := DeterminePath(g, GridCoord{1, 1}, GridCoord{5, 1}, FlowLR)
	assert.Equal(t, Path{Points: []GridCoord{{3, 2}, {5, 2}}, Start: Right, End: Left}, first)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeterminePath(g, GridCoord{1, 1}, GridCoord{5, 1}, FlowLR))
	}
}

func TestDeterminePathFallback(t *testing.T) {
	t.Parallel()

	g := twoNodes()
	// wall off both attachments of b
	g.occupied[GridCoord{4, 2}] = "wall"
	g.occupied[GridCoord{6, 4}] = "wall"

	p := DeterminePath(g, GridCoord{1, 1}, GridCoord{5, 1}, FlowLR)
	assert.True(t, p.Fallback)
	assert.Equal(t, []GridCoord{{3, 2}, {5, 2}}, p.Points)
}

func TestDetermineLabelLine(t *testing.T) {
	t.Parallel()

	t.Run("widens", func(t *testing.T) {
		t.Parallel()

		g := twoNodes()
		path := []GridCoord{{3, 2}, {5, 2}}
		assert.Equal(t, 1, capacity(g, path[0], path[1]))

		assert.Equal(t, 0, DetermineLabelLine(g, path, 5, FlowLR))
		assert.Equal(t, 5, g.ColumnWidth[4])
		assert.GreaterOrEqual(t, capacity(g, path[0], path[1]), 5)
	})

	t.Run("skips_first_segment", func(t *testing.T) {
		t.Parallel()

		g := openGrid(8, 8)
		path := []GridCoord{{0, 0}, {0, 4}, {8, 4}, {8, 8}}
		assert.Equal(t, 1, DetermineLabelLine(g, path, 3, FlowTD))
		assert.Empty(t, g.ColumnWidth)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, -1, DetermineLabelLine(openGrid(2, 2), []GridCoord{{0, 0}}, 3, FlowLR))
		assert.Equal(t, -1, DetermineLabelLine(openGrid(2, 2), []GridCoord{{0, 0}, {2, 0}}, 0, FlowLR))
	})
}
