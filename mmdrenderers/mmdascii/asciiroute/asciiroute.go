// Package asciiroute routes edges through the layout grid of the ASCII
// renderer and draws them onto a canvas.
package asciiroute

// Path is a routed edge. Points are merged: the endpoints on the two node
// borders and every turn in between.
type Path struct {
	Points []GridCoord
	Start  Direction
	End    Direction

	// Fallback is set when no route was found and Points is the straight
	// line between the preferred attachments.
	Fallback bool
}

// DeterminePath routes an edge between the nodes at from and to, given as
// block top-left cells. Both the preferred and the alternative attachment
// pairs are searched and the shorter merged path wins, the preferred one on
// ties.
func DeterminePath(g *Grid, from, to GridCoord, flow Flow) Path {
	start, end, altStart, altEnd := DetermineStartAndEndDir(from, to, flow)

	preferred, errPreferred := GetPath(g, Attach(from, start), Attach(to, end))
	alternative, errAlternative := GetPath(g, Attach(from, altStart), Attach(to, altEnd))

	switch {
	case errPreferred == nil && errAlternative == nil:
		preferred, alternative = MergePath(preferred), MergePath(alternative)
		if shorter(alternative, preferred) {
			return Path{Points: alternative, Start: altStart, End: altEnd}
		}
		return Path{Points: preferred, Start: start, End: end}
	case errPreferred == nil:
		return Path{Points: MergePath(preferred), Start: start, End: end}
	case errAlternative == nil:
		return Path{Points: MergePath(alternative), Start: altStart, End: altEnd}
	}
	return Path{
		Points:   []GridCoord{Attach(from, start), Attach(to, end)},
		Start:    start,
		End:      end,
		Fallback: true,
	}
}

func shorter(a, b []GridCoord) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return Steps(a) < Steps(b)
}
