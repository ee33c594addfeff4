package asciiroute

type labelCandidate struct {
	index     int
	capacity  int
	preferred bool
}

// DetermineLabelLine returns the index of the segment of a merged path that a
// label w characters wide is written on, or -1 without a segment.
//
// The first segment is skipped when there are others since sibling edges
// tend to share it. Among segments wide enough, those running along the flow
// win, then the one closest to the target. When none is wide enough the
// widest is picked and the column at its middle is widened in g to fit.
func DetermineLabelLine(g *Grid, path []GridCoord, w int, flow Flow) int {
	segments := len(path) - 1
	if segments < 1 || w <= 0 {
		return -1
	}
	first := 0
	if segments > 1 {
		first = 1
	}

	var candidates []labelCandidate
	for i := first; i < segments; i++ {
		a, b := path[i], path[i+1]
		vertical := a.X == b.X
		candidates = append(candidates, labelCandidate{
			index:     i,
			capacity:  capacity(g, a, b),
			preferred: vertical == (flow == FlowTD),
		})
	}

	for _, preferred := range []bool{true, false} {
		for i := len(candidates) - 1; i >= 0; i-- {
			c := candidates[i]
			if c.preferred == preferred && c.capacity >= w {
				return c.index
			}
		}
	}

	best := candidates[len(candidates)-1]
	for i := len(candidates) - 2; i >= 0; i-- {
		c := candidates[i]
		if c.capacity > best.capacity || (c.capacity == best.capacity && c.preferred && !best.preferred) {
			best = c
		}
	}
	widen(g, path[best.index], path[best.index+1], w-best.capacity)
	return best.index
}

// capacity is how many characters fit on the segment from a to b. Vertical
// segments carry labels across their column, others between the line ends.
func capacity(g *Grid, a, b GridCoord) int {
	if a.X == b.X {
		return g.Width(a.X)
	}
	ax, _ := g.Center(a)
	bx, _ := g.Center(b)
	return abs(bx-ax) - 1
}

func widen(g *Grid, a, b GridCoord, missing int) {
	if missing <= 0 {
		return
	}
	lo, hi := a.X, b.X
	if lo > hi {
		lo, hi = hi, lo
	}
	mid := (lo + hi) / 2
	if lo != hi && mid == lo {
		// only half of an end column lies between the line ends
		missing *= 2
	}
	g.ColumnWidth[mid] = g.Width(mid) + missing
}
