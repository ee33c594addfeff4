package asciiroute

import (
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciicanvas"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

// Marker is what an edge end is drawn with.
type Marker int8

const (
	MarkerNone Marker = iota
	MarkerArrow
	MarkerCircle
	MarkerCross
	MarkerOne
	MarkerMany
	MarkerDiamond
	MarkerHollowDiamond
)

type Stroke struct {
	Weight    charset.Weight
	Invisible bool
	Start     Marker
	End       Marker
}

type point struct {
	x, y int
}

// trace lists every canvas cell along the path, corners included once. A
// segment that is not orthogonal is drawn horizontal first.
func trace(g *Grid, path []GridCoord) []point {
	var corners []point
	for i, c := range path {
		x, y := g.Center(c)
		p := point{x, y}
		if i > 0 {
			prev := corners[len(corners)-1]
			if prev.x != p.x && prev.y != p.y {
				corners = append(corners, point{p.x, prev.y})
			}
		}
		corners = append(corners, p)
	}

	var cells []point
	for i, p := range corners {
		if i == 0 {
			cells = append(cells, p)
			continue
		}
		prev := corners[i-1]
		dx, dy := sign(p.x-prev.x), sign(p.y-prev.y)
		for cur := prev; cur != p; {
			cur = point{cur.x + dx, cur.y + dy}
			cells = append(cells, cur)
		}
	}
	return cells
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// armTowards is the arm of a reaching b, which must be adjacent.
func armTowards(a, b point) charset.Arms {
	switch {
	case b.y < a.y:
		return charset.ArmUp
	case b.y > a.y:
		return charset.ArmDown
	case b.x < a.x:
		return charset.ArmLeft
	case b.x > a.x:
		return charset.ArmRight
	}
	return 0
}

// DrawPath strokes path between the two node borders it ends on and draws
// the end markers next to them.
func DrawPath(c *asciicanvas.Canvas, chars charset.Set, g *Grid, path Path, st Stroke) {
	if st.Invisible || len(path.Points) < 2 {
		return
	}
	cells := trace(g, path.Points)
	last := len(cells) - 2
	if last < 1 {
		return
	}
	for i := 1; i <= last; i++ {
		arms := armTowards(cells[i], cells[i-1]) | armTowards(cells[i], cells[i+1])
		c.DrawLine(cells[i].x, cells[i].y, arms, st.Weight, asciicanvas.RoleLine)
	}
	if st.Start != MarkerNone && last > 1 {
		drawMarker(c, chars, cells[1], armTowards(cells[1], cells[0]), st.Start)
	}
	if st.End != MarkerNone {
		drawMarker(c, chars, cells[last], armTowards(cells[last], cells[last+1]), st.End)
	}
}

func drawMarker(c *asciicanvas.Canvas, chars charset.Set, at point, towards charset.Arms, m Marker) {
	var s string
	switch m {
	case MarkerArrow:
		s = charset.Arrow(chars, towards)
	case MarkerCircle:
		s = chars.Circle()
	case MarkerCross:
		s = chars.XMark()
	case MarkerOne:
		s = chars.Cross()
	case MarkerMany:
		s = charset.Arrow(chars, opposite(towards))
	case MarkerDiamond:
		s = chars.Diamond()
	case MarkerHollowDiamond:
		s = chars.HollowDiamond()
	default:
		return
	}
	c.Set(at.x, at.y, s, asciicanvas.RoleArrow)
}

func opposite(a charset.Arms) charset.Arms {
	switch a {
	case charset.ArmUp:
		return charset.ArmDown
	case charset.ArmDown:
		return charset.ArmUp
	case charset.ArmLeft:
		return charset.ArmRight
	}
	return charset.ArmLeft
}

// DrawLabel centers label on segment i of path.
func DrawLabel(c *asciicanvas.Canvas, g *Grid, path []GridCoord, i int, label string) {
	if i < 0 || i+1 >= len(path) || label == "" {
		return
	}
	ax, ay := g.Center(path[i])
	bx, by := g.Center(path[i+1])
	if ax != bx && ay != by {
		// drawn horizontal first
		by = ay
	}
	x := (ax+bx)/2 - asciicanvas.TextWidth(label)/2
	y := (ay + by) / 2
	if x < 0 {
		x = 0
	}
	c.DrawText(x, y, label, asciicanvas.RoleLabel)
}

// DrawEndLabel writes label beside the line next to one end of path: above
// a horizontal line, right of a vertical one.
func DrawEndLabel(c *asciicanvas.Canvas, g *Grid, path []GridCoord, atStart bool, label string) {
	if label == "" || len(path) < 2 {
		return
	}
	cells := trace(g, path)
	if len(cells) < 3 {
		return
	}
	at, next := cells[1], cells[0]
	if !atStart {
		at, next = cells[len(cells)-2], cells[len(cells)-1]
	}
	w := asciicanvas.TextWidth(label)
	switch armTowards(at, next) {
	case charset.ArmLeft:
		c.DrawText(at.x, at.y-1, label, asciicanvas.RoleLabel)
	case charset.ArmRight:
		c.DrawText(at.x-w+1, at.y-1, label, asciicanvas.RoleLabel)
	default:
		c.DrawText(at.x+1, at.y, label, asciicanvas.RoleLabel)
	}
}
