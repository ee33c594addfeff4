package mmdascii

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciicanvas"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/asciiroute"
	"oss.terrastruct.com/mmd/mmdrenderers/mmdascii/charset"
)

const (
	// rows between consecutive elements
	SEQ_ROW_GAP = 1
	// columns a self message loops out to the right
	SEQ_SELF_WIDTH = 3
	// columns kept clear around a message label
	SEQ_LABEL_MARGIN = 4
	// columns between nested block frames
	SEQ_BLOCK_INSET = 2
)

// seqFrame is a block drawn once the rows it spans are known.
type seqFrame struct {
	block    *mmdmodel.Block
	depth    int
	top      int
	bottom   int
	dividers []seqDivider
}

type seqDivider struct {
	y     int
	label string
}

// sequenceRenderer lays a sequence diagram out in character cells: actors in
// a row of boxes, then one band of rows per message, note and block border.
// Positions may go negative while laying out; the whole drawing is shifted
// right before it is drawn.
type sequenceRenderer struct {
	opts  *Opts
	chars charset.Set
	seq   *mmdmodel.Sequence

	widths  []int
	centers []int
	header  int

	ops   []func(c *asciicanvas.Canvas, dx int)
	minX  int
	maxX  int
	depth []int
}

func newSequenceRenderer(seq *mmdmodel.Sequence, opts *Opts) *sequenceRenderer {
	return &sequenceRenderer{
		opts:  opts,
		chars: charset.New(opts.Charset),
		seq:   seq,
	}
}

func (r *sequenceRenderer) actorLabel(a *mmdmodel.Actor) string {
	return strings.Join(textLines(a.Label), " ")
}

func (r *sequenceRenderer) messageLabel(i int) string {
	label := strings.Join(textLines(r.seq.Messages[i].Label), " ")
	if r.seq.Autonumber {
		return fmt.Sprintf("%d. %s", i+1, label)
	}
	return label
}

// columns spaces lifelines so neighbouring boxes keep the configured gap and
// every message label fits between the lifelines it connects.
func (r *sequenceRenderer) columns() {
	n := len(r.seq.Actors)
	r.widths = make([]int, n)
	r.centers = make([]int, n)
	for i, a := range r.seq.Actors {
		r.widths[i] = asciicanvas.TextWidth(r.actorLabel(a)) + 2*r.opts.BoxBorderPadding + 2
		if i == 0 {
			r.centers[i] = r.widths[i] / 2
			continue
		}
		r.centers[i] = r.centers[i-1] + (r.widths[i-1]+r.widths[i])/2 + r.opts.PaddingX
	}

	shiftFrom := func(i, by int) {
		for j := i; j < n; j++ {
			r.centers[j] += by
		}
	}
	for i, m := range r.seq.Messages {
		from, to := r.seq.ActorIndex(m.From), r.seq.ActorIndex(m.To)
		if from < 0 || to < 0 {
			continue
		}
		need := asciicanvas.TextWidth(r.messageLabel(i)) + SEQ_LABEL_MARGIN
		lo, hi := min(from, to), max(from, to)
		if lo == hi {
			// self messages write their label right of the loop
			hi = lo + 1
			need += SEQ_SELF_WIDTH
			if hi >= n {
				continue
			}
		}
		if gap := r.centers[hi] - r.centers[lo]; gap < need {
			shiftFrom(hi, need-gap)
		}
	}

	r.minX, r.maxX = 0, 0
	if n > 0 {
		r.maxX = r.centers[n-1] + r.widths[n-1]/2
	}
}

// blockDepths counts the blocks enclosing each block.
func (r *sequenceRenderer) blockDepths() {
	r.depth = make([]int, len(r.seq.Blocks))
	for i, b := range r.seq.Blocks {
		for j, outer := range r.seq.Blocks {
			if i != j && outer.Start <= b.Start && b.End <= outer.End && (outer.Start != b.Start || outer.End != b.End || j < i) {
				r.depth[i]++
			}
		}
	}
}

func (r *sequenceRenderer) draw(op func(c *asciicanvas.Canvas, dx int)) {
	r.ops = append(r.ops, op)
}

func (r *sequenceRenderer) extend(x0, x1 int) {
	r.minX = min(r.minX, x0)
	r.maxX = max(r.maxX, x1)
}

func (r *sequenceRenderer) render() *asciicanvas.Canvas {
	r.columns()
	r.blockDepths()

	r.header = 3
	y := r.header + SEQ_ROW_GAP

	frames := make([]*seqFrame, len(r.seq.Blocks))
	for i, b := range r.seq.Blocks {
		frames[i] = &seqFrame{block: b, depth: r.depth[i]}
	}

	// empty blocks close right after they open
	openEmpty := func(f *seqFrame, y int) int {
		f.top = y
		f.bottom = y + 1
		return y + 2 + SEQ_ROW_GAP
	}

	y = r.notes(-1, y)
	for i := range r.seq.Messages {
		for _, f := range frames {
			if f.block.Start == i {
				if f.block.Empty() {
					y = openEmpty(f, y)
					continue
				}
				f.top = y
				y += 1 + SEQ_ROW_GAP
			}
			for _, d := range f.block.Dividers {
				if d.Index == i && d.Index != f.block.Start && d.Index <= f.block.End {
					f.dividers = append(f.dividers, seqDivider{y: y, label: d.Label})
					y += 1 + SEQ_ROW_GAP
				}
			}
		}
		y = r.message(i, y)
		for j := len(frames) - 1; j >= 0; j-- {
			if frames[j].block.End == i && !frames[j].block.Empty() {
				frames[j].bottom = y
				y += 1 + SEQ_ROW_GAP
			}
		}
		y = r.notes(i, y)
	}
	for _, f := range frames {
		if f.block.Empty() && f.block.Start >= len(r.seq.Messages) {
			y = openEmpty(f, y)
		}
	}
	bottom := y

	for _, f := range frames {
		r.frame(f)
	}

	dx := -r.minX
	c := asciicanvas.New(r.maxX+dx+1, bottom+1, r.chars)
	for i, a := range r.seq.Actors {
		x := r.centers[i] + dx
		for ly := r.header; ly < bottom; ly++ {
			c.DrawLine(x, ly, charset.Vertical, charset.Dotted, asciicanvas.RoleLine)
		}
		x0 := x - r.widths[i]/2
		x1 := x0 + r.widths[i] - 1
		drawRect(c, r.chars, x0, 0, x1, 2, a.Kind == mmdmodel.ActorPerson, asciicanvas.RoleBorder)
		c.DrawLine(x, 2, charset.ArmLeft|charset.ArmRight|charset.ArmDown, charset.Solid, asciicanvas.RoleBorder)
		label := r.actorLabel(a)
		c.DrawText(x0+(r.widths[i]-asciicanvas.TextWidth(label))/2, 1, label, asciicanvas.RoleText)
	}
	for _, op := range r.ops {
		op(c, dx)
	}
	return c
}

func (r *sequenceRenderer) message(i, y int) int {
	m := r.seq.Messages[i]
	from, to := r.seq.ActorIndex(m.From), r.seq.ActorIndex(m.To)
	if from < 0 || to < 0 {
		return y
	}
	label := r.messageLabel(i)
	weight := charset.Solid
	if m.Line == mmdmodel.LineDotted {
		weight = charset.Dotted
	}
	marker := asciiroute.MarkerArrow
	switch m.Arrow {
	case mmdmodel.MessageArrowOpen:
		marker = asciiroute.MarkerNone
	case mmdmodel.MessageArrowCross:
		marker = asciiroute.MarkerCross
	}

	x := r.centers[from]
	if from == to {
		x1 := x + SEQ_SELF_WIDTH
		r.extend(x, x1+1+asciicanvas.TextWidth(label))
		r.draw(func(c *asciicanvas.Canvas, dx int) {
			c.DrawText(x1+1+dx, y+1, label, asciicanvas.RoleLabel)
			c.DrawLine(x+dx, y, charset.ArmRight, weight, asciicanvas.RoleLine)
			for lx := x + 1; lx < x1; lx++ {
				c.DrawLine(lx+dx, y, charset.Horizontal, weight, asciicanvas.RoleLine)
				c.DrawLine(lx+dx, y+2, charset.Horizontal, weight, asciicanvas.RoleLine)
			}
			c.DrawLine(x1+dx, y, charset.ArmLeft|charset.ArmDown, weight, asciicanvas.RoleLine)
			c.DrawLine(x1+dx, y+1, charset.Vertical, weight, asciicanvas.RoleLine)
			c.DrawLine(x1+dx, y+2, charset.ArmLeft|charset.ArmUp, weight, asciicanvas.RoleLine)
			drawSeqMarker(c, r.chars, x+1+dx, y+2, charset.ArmLeft, marker)
		})
		return y + 3 + SEQ_ROW_GAP
	}

	x1 := r.centers[to]
	step, towards := 1, charset.ArmRight
	if x1 < x {
		step, towards = -1, charset.ArmLeft
	}
	lo := min(x, x1)
	span := abs(x1 - x)
	lx := lo + (span-asciicanvas.TextWidth(label))/2 + 1
	r.draw(func(c *asciicanvas.Canvas, dx int) {
		c.DrawText(lx+dx, y, label, asciicanvas.RoleLabel)
		c.DrawLine(x+dx, y+1, towards, weight, asciicanvas.RoleLine)
		for k := 1; k < span-1; k++ {
			c.DrawLine(x+k*step+dx, y+1, charset.Horizontal, weight, asciicanvas.RoleLine)
		}
		if span > 1 {
			drawSeqMarker(c, r.chars, x1-step+dx, y+1, towards, marker)
		}
	})
	return y + 2 + SEQ_ROW_GAP
}

func drawSeqMarker(c *asciicanvas.Canvas, chars charset.Set, x, y int, towards charset.Arms, m asciiroute.Marker) {
	switch m {
	case asciiroute.MarkerArrow:
		c.Set(x, y, charset.Arrow(chars, towards), asciicanvas.RoleArrow)
	case asciiroute.MarkerCross:
		c.Set(x, y, chars.XMark(), asciicanvas.RoleArrow)
	default:
		c.DrawLine(x, y, charset.Horizontal, charset.Solid, asciicanvas.RoleLine)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// notes draws the notes anchored after message i and returns the next free
// row.
func (r *sequenceRenderer) notes(i, y int) int {
	for _, n := range r.seq.Notes {
		if n.After != i || len(n.Actors) == 0 {
			continue
		}
		var xs []int
		for _, id := range n.Actors {
			if idx := r.seq.ActorIndex(id); idx >= 0 {
				xs = append(xs, r.centers[idx])
			}
		}
		if len(xs) == 0 {
			continue
		}
		lines := textLines(n.Text)
		var textW int
		for _, l := range lines {
			textW = max(textW, asciicanvas.TextWidth(l))
		}
		w := textW + 2*r.opts.BoxBorderPadding + 2
		h := len(lines) + 2

		var x0 int
		switch n.Position {
		case mmdmodel.NoteLeft:
			x0 = xs[0] - 2 - w + 1
		case mmdmodel.NoteRight:
			x0 = xs[0] + 2
		default:
			lo, hi := xs[0], xs[len(xs)-1]
			if lo > hi {
				lo, hi = hi, lo
			}
			if span := hi - lo + 5; span > w {
				w = span
			}
			x0 = (lo+hi)/2 - w/2
		}
		x1 := x0 + w - 1
		r.extend(x0, x1)
		top := y
		pad := r.opts.BoxBorderPadding
		r.draw(func(c *asciicanvas.Canvas, dx int) {
			for fy := top + 1; fy < top+h-1; fy++ {
				for fx := x0 + 1; fx < x1; fx++ {
					c.Set(fx+dx, fy, " ", asciicanvas.RoleNone)
				}
			}
			drawRect(c, r.chars, x0+dx, top, x1+dx, top+h-1, false, asciicanvas.RoleBorder)
			for k, l := range lines {
				c.DrawText(x0+1+pad+dx, top+1+k, l, asciicanvas.RoleText)
			}
		})
		y += h + SEQ_ROW_GAP
	}
	return y
}

func (r *sequenceRenderer) frame(f *seqFrame) {
	b := f.block
	lo, hi := len(r.centers), -1
	selfLoop := false
	for i := b.Start; i <= b.End && i < len(r.seq.Messages); i++ {
		m := r.seq.Messages[i]
		for _, id := range []string{m.From, m.To} {
			if idx := r.seq.ActorIndex(id); idx >= 0 {
				lo, hi = min(lo, idx), max(hi, idx)
				if m.From == m.To && idx == hi {
					selfLoop = true
				}
			}
		}
	}
	if hi < 0 && b.Empty() && len(r.centers) > 0 {
		lo, hi = 0, len(r.centers)-1
	}
	if hi < 0 {
		return
	}
	maxDepth := 0
	for _, d := range r.depth {
		maxDepth = max(maxDepth, d)
	}
	inset := SEQ_BLOCK_INSET * (1 + maxDepth - f.depth)
	x0 := r.centers[lo] - r.widths[lo]/2 - inset
	x1 := r.centers[hi] + r.widths[hi]/2 + inset
	if selfLoop {
		x1 = max(x1, r.centers[hi]+SEQ_SELF_WIDTH+1+inset+asciicanvas.TextWidth(r.messageLabel(b.End)))
	}
	label := "[" + string(b.Type)
	if b.Label != "" {
		label += " " + b.Label
	}
	label += "]"
	x1 = max(x1, x0+asciicanvas.TextWidth(label)+3)
	r.extend(x0, x1)

	top, bottom := f.top, f.bottom
	dividers := f.dividers
	r.draw(func(c *asciicanvas.Canvas, dx int) {
		drawRect(c, r.chars, x0+dx, top, x1+dx, bottom, false, asciicanvas.RoleGroup)
		c.DrawText(x0+2+dx, top, label, asciicanvas.RoleGroup)
		for _, d := range dividers {
			c.DrawLine(x0+dx, d.y, charset.Vertical|charset.ArmRight, charset.Solid, asciicanvas.RoleGroup)
			c.DrawLine(x1+dx, d.y, charset.Vertical|charset.ArmLeft, charset.Solid, asciicanvas.RoleGroup)
			for x := x0 + 1; x < x1; x++ {
				c.DrawLine(x+dx, d.y, charset.Horizontal, charset.Dotted, asciicanvas.RoleGroup)
			}
			if d.label != "" {
				c.DrawText(x0+2+dx, d.y, "["+d.label+"]", asciicanvas.RoleGroup)
			}
		}
	})
}
