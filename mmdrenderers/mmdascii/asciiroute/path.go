package asciiroute

import (
	"container/heap"
	"errors"
)

// TURN_COST is added to a step that changes direction so routes prefer
// fewer bends over staircases of equal length.
const TURN_COST = 1

// MAX_EXPANSIONS bounds a single search.
const MAX_EXPANSIONS = 20000

var ErrNoPath = errors.New("no path")

type searchKey struct {
	at  GridCoord
	dir Direction
}

type searchNode struct {
	key    searchKey
	g      int
	h      int
	seq    int
	parent *searchNode
	index  int
}

type searchQueue []*searchNode

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if fi, fj := q[i].g+q[i].h, q[j].g+q[j].h; fi != fj {
		return fi < fj
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	// insertion order keeps equal candidates deterministic
	return q[i].seq < q[j].seq
}

func (q searchQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *searchQueue) Push(x interface{}) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *searchQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

// neighbours are tried in a fixed order.
var neighbours = []Direction{Up, Down, Left, Right}

func manhattan(a, b GridCoord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GetPath finds an orthogonal path of grid cells from from to to through
// cells no node occupies. The endpoints themselves may be occupied.
func GetPath(g *Grid, from, to GridCoord) ([]GridCoord, error) {
	if from == to {
		return []GridCoord{from}, nil
	}
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil, ErrNoPath
	}

	var seq int
	open := &searchQueue{}
	best := make(map[searchKey]int)
	closed := make(map[searchKey]bool)

	start := &searchNode{key: searchKey{at: from, dir: Middle}, h: manhattan(from, to)}
	heap.Push(open, start)
	best[start.key] = 0

	for expansions := 0; open.Len() > 0; expansions++ {
		if expansions > MAX_EXPANSIONS {
			return nil, ErrNoPath
		}
		cur := heap.Pop(open).(*searchNode)
		if cur.key.at == to {
			return unwind(cur), nil
		}
		if closed[cur.key] {
			continue
		}
		closed[cur.key] = true

		for _, d := range neighbours {
			next := cur.key.at.Add(d.Offset())
			if !g.InBounds(next) {
				continue
			}
			if _, blocked := g.Occupant(next); blocked && next != to {
				continue
			}
			cost := cur.g + 1
			if cur.key.dir != Middle && cur.key.dir != d {
				cost += TURN_COST
			}
			key := searchKey{at: next, dir: d}
			if closed[key] {
				continue
			}
			if prev, ok := best[key]; ok && prev <= cost {
				continue
			}
			best[key] = cost
			seq++
			heap.Push(open, &searchNode{key: key, g: cost, h: manhattan(next, to), seq: seq, parent: cur})
		}
	}
	return nil, ErrNoPath
}

func unwind(n *searchNode) []GridCoord {
	var out []GridCoord
	for ; n != nil; n = n.parent {
		out = append(out, n.key.at)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// MergePath keeps the endpoints and the cells where the path turns.
func MergePath(path []GridCoord) []GridCoord {
	if len(path) <= 2 {
		return append([]GridCoord(nil), path...)
	}
	out := []GridCoord{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := out[len(out)-1], path[i], path[i+1]
		if (prev.X == cur.X && cur.X == next.X) || (prev.Y == cur.Y && cur.Y == next.Y) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, path[len(path)-1])
}

// Steps is the number of cells a merged path crosses.
func Steps(path []GridCoord) int {
	var n int
	for i := 0; i+1 < len(path); i++ {
		n += manhattan(path[i], path[i+1])
	}
	return n
}
