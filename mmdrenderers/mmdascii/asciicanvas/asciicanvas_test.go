package asciicanvas

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

func TestDrawLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		draw func(c *Canvas)
		exp  string
	}{
		{
			name: "crossing",
			draw: func(c *Canvas) {
				c.DrawLine(1, 1, charset.Horizontal, charset.Solid, RoleLine)
				c.DrawLine(1, 1, charset.Vertical, charset.Solid, RoleLine)
			},
			exp: "┼",
		},
		{
			name: "tee",
			draw: func(c *Canvas) {
				c.DrawLine(1, 1, charset.Horizontal, charset.Solid, RoleLine)
				c.DrawLine(1, 1, charset.ArmDown, charset.Solid, RoleLine)
			},
			exp: "┬",
		},
		{
			name: "mixed_weights",
			draw: func(c *Canvas) {
				c.DrawLine(1, 1, charset.Horizontal, charset.Dotted, RoleLine)
				c.DrawLine(1, 1, charset.Horizontal, charset.Solid, RoleLine)
			},
			exp: "─",
		},
		{
			name: "dotted",
			draw: func(c *Canvas) {
				c.DrawLine(1, 1, charset.Vertical, charset.Dotted, RoleLine)
			},
			exp: "┆",
		},
		{
			name: "text_wins",
			draw: func(c *Canvas) {
				c.Set(1, 1, "a", RoleText)
				c.DrawLine(1, 1, charset.Vertical, charset.Solid, RoleLine)
			},
			exp: "a",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := New(3, 3, charset.New(charset.Unicode))
			tc.draw(c)
			assert.Equal(t, tc.exp, c.Get(1, 1))
		})
	}
}

func TestLineOverBorder(t *testing.T) {
	t.Parallel()

	c := New(3, 3, charset.New(charset.Unicode))
	c.DrawLine(1, 1, charset.Vertical, charset.Solid, RoleBorder)
	c.DrawLine(1, 1, charset.ArmRight, charset.Solid, RoleLine)
	assert.Equal(t, "├", c.Get(1, 1))
	assert.Equal(t, RoleBorder, c.Role(1, 1))
}

func TestDrawText(t *testing.T) {
	t.Parallel()

	c := New(1, 1, charset.New(charset.Unicode))
	assert.Equal(t, 4, c.DrawText(0, 0, "日本", RoleText))
	assert.Equal(t, 2, c.DrawText(4, 0, "ab", RoleText))
	assert.Equal(t, 6, c.Width())
	assert.Equal(t, "日本ab\n", c.String())
	assert.True(t, c.ContainsAlphaNumeric(4, 0))
	assert.False(t, c.ContainsAlphaNumeric(5, 5))
	assert.Equal(t, 4, TextWidth("日本"))
}

func TestStringTrims(t *testing.T) {
	t.Parallel()

	c := New(8, 6, charset.New(charset.ASCII))
	c.Set(2, 2, "x", RoleText)
	c.Set(4, 3, "y", RoleText)
	assert.Equal(t, "x\n  y\n", c.String())
	assert.Equal(t, "", New(2, 2, charset.New(charset.ASCII)).String())
}

type tagPainter struct{}

func (tagPainter) Paint(role Role, s string) string {
	return fmt.Sprintf("<%d>%s</%d>", role, s, role)
}

func TestRender(t *testing.T) {
	t.Parallel()

	c := New(1, 1, charset.New(charset.ASCII))
	c.DrawText(0, 0, "ab", RoleText)
	c.DrawLine(3, 0, charset.Horizontal, charset.Solid, RoleLine)
	assert.Equal(t, "<2>ab</2> <3>-</3>\n", c.Render(tagPainter{}))
	assert.Equal(t, "ab -\n", c.Render(nil))
}
