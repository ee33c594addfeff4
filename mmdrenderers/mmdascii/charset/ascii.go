package charset

// ASCIISet implements the Set interface using standard ASCII characters
type ASCIISet struct{}

func NewASCII() Set {
	return &ASCIISet{}
}

// Corners
func (a *ASCIISet) TopLeftArc() string        { return "." }
func (a *ASCIISet) TopRightArc() string       { return "." }
func (a *ASCIISet) BottomLeftArc() string     { return "'" }
func (a *ASCIISet) BottomRightArc() string    { return "'" }
func (a *ASCIISet) TopLeftCorner() string     { return "+" }
func (a *ASCIISet) TopRightCorner() string    { return "+" }
func (a *ASCIISet) BottomLeftCorner() string  { return "+" }
func (a *ASCIISet) BottomRightCorner() string { return "+" }

// Lines
func (a *ASCIISet) Horizontal() string       { return "-" }
func (a *ASCIISet) Vertical() string         { return "|" }
func (a *ASCIISet) DottedHorizontal() string { return "." }
func (a *ASCIISet) DottedVertical() string   { return ":" }
func (a *ASCIISet) ThickHorizontal() string  { return "=" }
func (a *ASCIISet) ThickVertical() string    { return "H" }

// Junctions
func (a *ASCIISet) TDown() string  { return "+" }
func (a *ASCIISet) TLeft() string  { return "+" }
func (a *ASCIISet) TRight() string { return "+" }
func (a *ASCIISet) TUp() string    { return "+" }
func (a *ASCIISet) Cross() string  { return "+" }

// Markers
func (a *ASCIISet) Circle() string        { return "o" }
func (a *ASCIISet) XMark() string         { return "x" }
func (a *ASCIISet) Diamond() string       { return "*" }
func (a *ASCIISet) HollowDiamond() string { return "o" }

// Arrows
func (a *ASCIISet) ArrowUp() string    { return "^" }
func (a *ASCIISet) ArrowRight() string { return ">" }
func (a *ASCIISet) ArrowDown() string  { return "v" }
func (a *ASCIISet) ArrowLeft() string  { return "<" }
