package charset

// Arms is the set of directions a line character reaches out to.
type Arms uint8

const (
	ArmUp Arms = 1 << iota
	ArmDown
	ArmLeft
	ArmRight
)

const (
	Vertical   = ArmUp | ArmDown
	Horizontal = ArmLeft | ArmRight
)

// Weight is how a line is stroked.
type Weight int8

const (
	Solid Weight = iota
	Dotted
	Thick
)

// Set defines the characters used to draw a diagram
type Set interface {
	// Corners
	TopLeftArc() string
	TopRightArc() string
	BottomLeftArc() string
	BottomRightArc() string
	TopLeftCorner() string
	TopRightCorner() string
	BottomLeftCorner() string
	BottomRightCorner() string

	// Lines
	Horizontal() string
	Vertical() string
	DottedHorizontal() string
	DottedVertical() string
	ThickHorizontal() string
	ThickVertical() string

	// Junctions
	TDown() string
	TLeft() string
	TRight() string
	TUp() string
	Cross() string

	// Markers
	Circle() string
	XMark() string
	Diamond() string
	HollowDiamond() string

	// Arrows
	ArrowUp() string
	ArrowRight() string
	ArrowDown() string
	ArrowLeft() string
}

// Type represents the type of character set
type Type int

const (
	Unicode Type = iota
	ASCII
)

// New creates a new character set based on the specified type
func New(t Type) Set {
	switch t {
	case ASCII:
		return NewASCII()
	default:
		return NewUnicode()
	}
}

// Line returns the character joining arms. Straight lines honor w; corners
// and junctions are always solid.
func Line(s Set, arms Arms, w Weight) string {
	switch arms {
	case ArmUp, ArmDown, Vertical:
		switch w {
		case Dotted:
			return s.DottedVertical()
		case Thick:
			return s.ThickVertical()
		}
		return s.Vertical()
	case ArmLeft, ArmRight, Horizontal:
		switch w {
		case Dotted:
			return s.DottedHorizontal()
		case Thick:
			return s.ThickHorizontal()
		}
		return s.Horizontal()
	case ArmDown | ArmRight:
		return s.TopLeftCorner()
	case ArmDown | ArmLeft:
		return s.TopRightCorner()
	case ArmUp | ArmRight:
		return s.BottomLeftCorner()
	case ArmUp | ArmLeft:
		return s.BottomRightCorner()
	case Horizontal | ArmDown:
		return s.TDown()
	case Horizontal | ArmUp:
		return s.TUp()
	case Vertical | ArmRight:
		return s.TRight()
	case Vertical | ArmLeft:
		return s.TLeft()
	case Vertical | Horizontal:
		return s.Cross()
	}
	return " "
}

// Arrow returns the arrowhead pointing along arms, which must be a single arm.
func Arrow(s Set, towards Arms) string {
	switch towards {
	case ArmUp:
		return s.ArrowUp()
	case ArmDown:
		return s.ArrowDown()
	case ArmLeft:
		return s.ArrowLeft()
	default:
		return s.ArrowRight()
	}
}
