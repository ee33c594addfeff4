package asciiroute

// GridCoord addresses a cell of the layout grid, not a character.
type GridCoord struct {
	X int
	Y int
}

func (c GridCoord) Add(o GridCoord) GridCoord {
	return GridCoord{c.X + o.X, c.Y + o.Y}
}

// BLOCK is the number of grid cells along each side of a node: border,
// interior, border.
const BLOCK = 3

// Grid is the layout grid of one render. Every column and row has a width
// in characters; labels may widen columns after nodes are placed.
type Grid struct {
	ColumnWidth map[int]int
	RowHeight   map[int]int

	// cells beyond the extent are outside the grid
	MaxX int
	MaxY int

	occupied map[GridCoord]string
}

func NewGrid() *Grid {
	return &Grid{
		ColumnWidth: make(map[int]int),
		RowHeight:   make(map[int]int),
		occupied:    make(map[GridCoord]string),
	}
}

// Reserve marks the BLOCK x BLOCK cells of a node at topLeft as occupied and
// keeps one free cell past it inside the grid.
func (g *Grid) Reserve(topLeft GridCoord, id string) {
	for dx := 0; dx < BLOCK; dx++ {
		for dy := 0; dy < BLOCK; dy++ {
			g.occupied[GridCoord{topLeft.X + dx, topLeft.Y + dy}] = id
		}
	}
	if x := topLeft.X + BLOCK; x > g.MaxX {
		g.MaxX = x
	}
	if y := topLeft.Y + BLOCK; y > g.MaxY {
		g.MaxY = y
	}
}

// Occupant returns the id of the node covering c, if any.
func (g *Grid) Occupant(c GridCoord) (string, bool) {
	id, ok := g.occupied[c]
	return id, ok
}

func (g *Grid) InBounds(c GridCoord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X <= g.MaxX && c.Y <= g.MaxY
}

func (g *Grid) Width(x int) int {
	if w, ok := g.ColumnWidth[x]; ok {
		return w
	}
	return 1
}

func (g *Grid) Height(y int) int {
	if h, ok := g.RowHeight[y]; ok {
		return h
	}
	return 1
}

// Widen grows column x to at least w characters.
func (g *Grid) Widen(x, w int) {
	if w > g.Width(x) {
		g.ColumnWidth[x] = w
	}
}

// Heighten grows row y to at least h characters.
func (g *Grid) Heighten(y, h int) {
	if h > g.Height(y) {
		g.RowHeight[y] = h
	}
}

// X is the canvas column where grid column x starts.
func (g *Grid) X(x int) int {
	var out int
	for i := 0; i < x; i++ {
		out += g.Width(i)
	}
	return out
}

// Y is the canvas row where grid row y starts.
func (g *Grid) Y(y int) int {
	var out int
	for i := 0; i < y; i++ {
		out += g.Height(i)
	}
	return out
}

// Center is the canvas position lines through c are drawn at.
func (g *Grid) Center(c GridCoord) (int, int) {
	return g.X(c.X) + g.Width(c.X)/2, g.Y(c.Y) + g.Height(c.Y)/2
}

// CanvasSize covers every column and row of the grid.
func (g *Grid) CanvasSize() (int, int) {
	return g.X(g.MaxX + 1), g.Y(g.MaxY + 1)
}

// Attach is the border cell of the node at topLeft facing d.
func Attach(topLeft GridCoord, d Direction) GridCoord {
	return topLeft.Add(GridCoord{1, 1}).Add(d.Offset())
}
