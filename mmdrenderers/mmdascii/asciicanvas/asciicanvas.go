// Package asciicanvas is a growable grid of terminal cells. Every cell
// remembers what drew it so the output can be coloured per element.
package asciicanvas

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

type Role uint8

const (
	RoleNone Role = iota
	RoleBorder
	RoleText
	RoleLine
	RoleArrow
	RoleLabel
	RoleGroup
)

type cell struct {
	char   string
	role   Role
	arms   charset.Arms
	weight charset.Weight
}

// continuation marks the second column of a wide character.
const continuation = "\x00"

type Canvas struct {
	chars charset.Set
	grid  [][]cell
	width int
}

func New(width, height int, chars charset.Set) *Canvas {
	c := &Canvas{chars: chars}
	c.grow(width-1, height-1)
	return c
}

func (c *Canvas) grow(x, y int) {
	if x+1 > c.width {
		c.width = x + 1
	}
	for len(c.grid) <= y {
		c.grid = append(c.grid, nil)
	}
	for i := range c.grid {
		for len(c.grid[i]) < c.width {
			c.grid[i] = append(c.grid[i], cell{char: " "})
		}
	}
}

func (c *Canvas) Set(x, y int, char string, role Role) {
	if x < 0 || y < 0 {
		return
	}
	c.grow(x, y)
	c.grid[y][x] = cell{char: char, role: role}
}

func (c *Canvas) Get(x, y int) string {
	if c.IsInBounds(x, y) {
		return c.grid[y][x].char
	}
	return ""
}

func (c *Canvas) Role(x, y int) Role {
	if c.IsInBounds(x, y) {
		return c.grid[y][x].role
	}
	return RoleNone
}

func (c *Canvas) IsInBounds(x, y int) bool {
	return y >= 0 && y < len(c.grid) && x >= 0 && x < len(c.grid[y])
}

func (c *Canvas) Width() int {
	return c.width
}

func (c *Canvas) Height() int {
	return len(c.grid)
}

// DrawLine adds arms to the line character at x, y, turning crossings into
// junctions. Text already on the cell wins.
func (c *Canvas) DrawLine(x, y int, arms charset.Arms, w charset.Weight, role Role) {
	if x < 0 || y < 0 {
		return
	}
	c.grow(x, y)
	cur := c.grid[y][x]
	switch cur.role {
	case RoleText, RoleLabel, RoleArrow:
		return
	}
	if cur.arms != 0 {
		arms |= cur.arms
		if cur.weight != w {
			w = charset.Solid
		}
	}
	if role == RoleLine && cur.role == RoleBorder {
		role = RoleBorder
	}
	c.grid[y][x] = cell{char: charset.Line(c.chars, arms, w), role: role, arms: arms, weight: w}
}

// DrawText writes s from x, y one grapheme cluster at a time and returns the
// number of columns used.
func (c *Canvas) DrawText(x, y int, s string, role Role) int {
	col := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		c.Set(col, y, cluster, role)
		for i := 1; i < w; i++ {
			c.Set(col+i, y, continuation, role)
		}
		col += w
	}
	return col - x
}

// TextWidth is the number of terminal columns s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

func (c *Canvas) ContainsAlphaNumeric(x, y int) bool {
	for _, r := range c.Get(x, y) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Painter styles a run of characters drawn by the same role.
type Painter interface {
	Paint(role Role, s string) string
}

func (c *Canvas) String() string {
	return c.Render(nil)
}

// Render stringifies the canvas without blank rows or columns around the
// drawing and without trailing spaces, styling every run of cells with p if
// set.
func (c *Canvas) Render(p Painter) string {
	start, end := 0, len(c.grid)-1
	for start <= end && c.blankRow(start) {
		start++
	}
	for end >= start && c.blankRow(end) {
		end--
	}

	left := c.width
	for y := start; y <= end; y++ {
		for x, cl := range c.grid[y] {
			if x >= left {
				break
			}
			if cl.char != " " && cl.char != continuation {
				left = x
			}
		}
	}

	var buf strings.Builder
	for y := start; y <= end; y++ {
		row := c.grid[y]
		last := len(row) - 1
		for last >= 0 && (row[last].char == " " || row[last].char == continuation) {
			last--
		}
		var run strings.Builder
		runRole := RoleNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if p != nil && runRole != RoleNone {
				buf.WriteString(p.Paint(runRole, run.String()))
			} else {
				buf.WriteString(run.String())
			}
			run.Reset()
		}
		for x := left; x <= last; x++ {
			cl := row[x]
			if cl.char == continuation {
				continue
			}
			role := cl.role
			if cl.char == " " {
				role = RoleNone
			}
			if role != runRole {
				flush()
				runRole = role
			}
			run.WriteString(cl.char)
		}
		flush()
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (c *Canvas) blankRow(y int) bool {
	for _, cl := range c.grid[y] {
		if cl.char != " " && cl.char != continuation {
			return false
		}
	}
	return true
}
