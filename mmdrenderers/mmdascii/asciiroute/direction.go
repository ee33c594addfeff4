package asciiroute

// Direction is where an edge attaches to a node, relative to its center.
type Direction int8

const (
	Middle Direction = iota
	Up
	Down
	Left
	Right
	UpperLeft
	UpperRight
	LowerLeft
	LowerRight
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case UpperLeft:
		return "upper-left"
	case UpperRight:
		return "upper-right"
	case LowerLeft:
		return "lower-left"
	case LowerRight:
		return "lower-right"
	}
	return "middle"
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpperLeft:
		return LowerRight
	case UpperRight:
		return LowerLeft
	case LowerLeft:
		return UpperRight
	case LowerRight:
		return UpperLeft
	}
	return Middle
}

// Offset is the unit step towards d.
func (d Direction) Offset() GridCoord {
	switch d {
	case Up:
		return GridCoord{0, -1}
	case Down:
		return GridCoord{0, 1}
	case Left:
		return GridCoord{-1, 0}
	case Right:
		return GridCoord{1, 0}
	case UpperLeft:
		return GridCoord{-1, -1}
	case UpperRight:
		return GridCoord{1, -1}
	case LowerLeft:
		return GridCoord{-1, 1}
	case LowerRight:
		return GridCoord{1, 1}
	}
	return GridCoord{}
}

// DetermineDirection classifies where to lies as seen from from.
func DetermineDirection(from, to GridCoord) Direction {
	switch {
	case to.X == from.X && to.Y < from.Y:
		return Up
	case to.X == from.X && to.Y > from.Y:
		return Down
	case to.Y == from.Y && to.X < from.X:
		return Left
	case to.Y == from.Y && to.X > from.X:
		return Right
	case to.X < from.X && to.Y < from.Y:
		return UpperLeft
	case to.X > from.X && to.Y < from.Y:
		return UpperRight
	case to.X < from.X && to.Y > from.Y:
		return LowerLeft
	case to.X > from.X && to.Y > from.Y:
		return LowerRight
	}
	return Middle
}

// Flow is the overall direction of a graph on the grid.
type Flow int8

const (
	FlowLR Flow = iota
	FlowTD
)

// DetermineStartAndEndDir picks the sides an edge leaves its source from and
// enters its destination by, as a preferred and an alternative pair. from and
// to are node positions.
func DetermineStartAndEndDir(from, to GridCoord, flow Flow) (start, end, altStart, altEnd Direction) {
	d := DetermineDirection(from, to)
	if d == Middle {
		return selfLoopDirections(flow)
	}

	lr := flow == FlowLR
	switch d {
	case Right:
		return Right, Left, Down, Down
	case Down:
		return Down, Up, Right, Right
	case Left:
		if lr {
			return Down, Down, Left, Right
		}
		return Left, Right, Down, Down
	case Up:
		if lr {
			return Up, Down, Right, Right
		}
		return Right, Right, Up, Down
	case LowerRight:
		if lr {
			return Down, Left, Right, Up
		}
		return Right, Up, Down, Left
	case UpperRight:
		if lr {
			return Up, Left, Right, Down
		}
		return Right, Down, Up, Left
	case LowerLeft:
		if lr {
			return Down, Right, Left, Up
		}
		return Left, Up, Down, Right
	default: // UpperLeft
		if lr {
			return Up, Right, Left, Down
		}
		return Left, Down, Up, Right
	}
}

// selfLoopDirections only depends on the flow: the loop leaves along the flow
// and comes back in from the side.
func selfLoopDirections(flow Flow) (start, end, altStart, altEnd Direction) {
	if flow == FlowLR {
		return Right, Down, Down, Right
	}
	return Down, Right, Right, Down
}
