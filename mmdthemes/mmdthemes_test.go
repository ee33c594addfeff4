package mmdthemes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/mmd/lib/color"
	"oss.terrastruct.com/mmd/mmdthemes"
	"oss.terrastruct.com/mmd/mmdthemes/mmdthemescatalog"
)

func TestCatalogComplete(t *testing.T) {
	t.Parallel()

	codes := []string{
		color.N1, color.N2, color.N3, color.N4, color.N5, color.N6, color.N7,
		color.B1, color.B2, color.B3, color.B4, color.B5, color.B6,
		color.AA2, color.AA4, color.AA5, color.AB4, color.AB5,
	}
	seen := make(map[int64]bool)
	for _, theme := range mmdthemescatalog.Catalog {
		assert.False(t, seen[theme.ID], "duplicate id %d", theme.ID)
		seen[theme.ID] = true
		for _, code := range codes {
			resolved := theme.Resolve(code)
			assert.NotEqual(t, code, resolved, "%s: %s", theme.Name, code)
			_, err := color.Normalize(resolved)
			assert.NoError(t, err, "%s: %s", theme.Name, code)
		}
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mmdthemescatalog.Terminal, mmdthemescatalog.Find(mmdthemescatalog.Terminal.ID))
	assert.Equal(t, mmdthemes.Theme{}, mmdthemescatalog.Find(-1))

	theme, ok := mmdthemescatalog.FindName("  neutral default ")
	require.True(t, ok)
	assert.Equal(t, mmdthemescatalog.NeutralDefault.ID, theme.ID)
	_, ok = mmdthemescatalog.FindName("nope")
	assert.False(t, ok)

	assert.Contains(t, mmdthemescatalog.CLIString(), "- Neutral Default: 0\n")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	theme := mmdthemescatalog.NeutralDefault
	assert.Equal(t, "#0D32B2", theme.Resolve(mmdthemes.NodeStroke))
	assert.Equal(t, "#abcdef", theme.Resolve("#abcdef"))
}

func TestOverride(t *testing.T) {
	t.Parallel()

	base := mmdthemescatalog.NeutralDefault
	theme, err := base.Override(map[string]string{
		"b1":  "red",
		" N2": "#00FF00",
	})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", theme.Resolve(color.B1))
	assert.Equal(t, "#00ff00", theme.Resolve(color.N2))
	assert.Equal(t, base.Colors.B2, theme.Colors.B2)
	// the base theme is untouched
	assert.Equal(t, "#0D32B2", mmdthemescatalog.NeutralDefault.Colors.B1)

	_, err = base.Override(map[string]string{"B9": "red"})
	assert.ErrorContains(t, err, `unknown theme color "B9"`)
	_, err = base.Override(map[string]string{"B1": "notacolor"})
	assert.ErrorContains(t, err, "invalid color")
}

func TestIsDark(t *testing.T) {
	t.Parallel()

	assert.False(t, mmdthemescatalog.NeutralDefault.IsDark())
	assert.True(t, mmdthemescatalog.DarkMauve.IsDark())
}

func TestMuted(t *testing.T) {
	t.Parallel()

	for _, theme := range []mmdthemes.Theme{mmdthemescatalog.NeutralDefault, mmdthemescatalog.DarkMauve} {
		base, err := color.Luminance(theme.Resolve(color.B1))
		require.NoError(t, err)
		bg, err := color.Luminance(theme.Resolve(color.N7))
		require.NoError(t, err)
		muted, err := color.Luminance(theme.Muted(color.B1, 0.5))
		require.NoError(t, err)

		// halfway towards the background
		assert.Less(t, math.Abs(muted-bg), math.Abs(base-bg), theme.Name)
	}
	assert.Equal(t, "nope", mmdthemes.Theme{}.Muted("nope", 0.5))
}
