package mmdsequence

import (
	"context"
	"math"

	"cdr.dev/slog"
	"golang.org/x/exp/slices"
	"oss.terrastruct.com/util-go/go2"

	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/lib/log"
	"oss.terrastruct.com/mmd/lib/textmeasure"
	"oss.terrastruct.com/mmd/mmdmodel"
	"oss.terrastruct.com/mmd/mmdtarget"
)

type dimensions struct {
	width  float64
	height float64
}

// span is a horizontal extent.
type span struct {
	left  float64
	right float64
}

func (s span) overlaps(o span) bool {
	return s.left < o.right && o.left < s.right
}

type activationStart struct {
	y     float64
	depth int
}

type sequenceDiagram struct {
	ctx   context.Context
	seq   *mmdmodel.Sequence
	opts  Opts
	ruler *textmeasure.Ruler
	font  textmeasure.Font

	actors     []*mmdtarget.Actor
	actorIndex map[string]int

	labelDims []dimensions
	noteDims  []dimensions

	// y of every message row, including messages that reference unknown actors
	messageY     []float64
	actorsBottom float64
	lifelineEnd  float64

	blockSpans []span
	// extra space reserved before a message because a divider precedes it
	dividerExtra map[int]float64
	// distance from a divider line to its message, keyed by block then divider
	dividerOffset map[[2]int]float64

	activationStacks map[string][]activationStart

	messages    []*mmdtarget.Message
	activations []*mmdtarget.Activation
	blocks      []*mmdtarget.Block
	notes       []*mmdtarget.Note
}

func newSequenceDiagram(ctx context.Context, seq *mmdmodel.Sequence, opts Opts, ruler *textmeasure.Ruler) *sequenceDiagram {
	sd := &sequenceDiagram{
		ctx:              ctx,
		seq:              seq,
		opts:             opts,
		ruler:            ruler,
		font:             textmeasure.NewFont(opts.FontFamily, LABEL_FONT_SIZE, textmeasure.FONT_STYLE_REGULAR),
		actorIndex:       make(map[string]int),
		dividerExtra:     make(map[int]float64),
		dividerOffset:    make(map[[2]int]float64),
		activationStacks: make(map[string][]activationStart),
	}

	for _, m := range seq.Messages {
		w, h := sd.measure(m.Label)
		sd.labelDims = append(sd.labelDims, dimensions{w, h})
	}
	for _, n := range seq.Notes {
		w, h := sd.measure(n.Text)
		sd.noteDims = append(sd.noteDims, dimensions{
			width:  math.Max(NOTE_WIDTH, w+2*NOTE_PADDING),
			height: h + 2*NOTE_PADDING,
		})
	}
	return sd
}

func (sd *sequenceDiagram) measure(s string) (float64, float64) {
	if s == "" {
		return 0, 0
	}
	return sd.ruler.MeasureFormatted(sd.font, s)
}

func (sd *sequenceDiagram) layout() {
	sd.placeActors()
	sd.computeBlockSpans()
	sd.computeDividerSpacing()
	sd.routeMessages()
	sd.placeBlocks()
	sd.closeOpenActivations()
	sd.fitCanvas()
}

// indices of a message's endpoints, ok is false if either actor is unknown
func (sd *sequenceDiagram) endpoints(m *mmdmodel.Message) (from, to int, ok bool) {
	from, okFrom := sd.actorIndex[m.From]
	to, okTo := sd.actorIndex[m.To]
	return from, to, okFrom && okTo
}

// placeActors sizes every actor box from its label and spreads the boxes left
// to right so that message labels, self messages and side notes fit between
// neighbours.
func (sd *sequenceDiagram) placeActors() {
	if len(sd.seq.Actors) == 0 {
		sd.actorsBottom = sd.opts.PaddingY
		return
	}

	maxHeight := ACTOR_HEIGHT
	for i, a := range sd.seq.Actors {
		w, h := sd.measure(a.Label)
		actor := &mmdtarget.Actor{
			ID:    a.ID,
			Label: a.Label,
			Kind:  a.Kind,
		}
		actor.Width = math.Max(MIN_ACTOR_WIDTH, w+2*ACTOR_LABEL_PADDING)
		maxHeight = math.Max(maxHeight, h+2*ACTOR_LABEL_PADDING)
		sd.actors = append(sd.actors, actor)
		sd.actorIndex[a.ID] = i
	}

	// min center to center distance between actor i and i+1
	need := make([]float64, len(sd.actors))
	for i := 0; i < len(sd.actors)-1; i++ {
		need[i] = sd.actors[i].Width/2 + sd.actors[i+1].Width/2 + MIN_ACTOR_GAP
	}
	for i, m := range sd.seq.Messages {
		from, to, ok := sd.endpoints(m)
		if !ok {
			continue
		}
		labelWidth := sd.labelDims[i].width
		if from == to {
			if from < len(need)-1 {
				need[from] = math.Max(need[from], SELF_MESSAGE_WIDTH+labelWidth+HORIZONTAL_PAD)
			}
			continue
		}
		// long labels spanning several actors are spread across each gap
		lo, hi := go2.Min(from, to), go2.Max(from, to)
		distributed := labelWidth/float64(hi-lo) + HORIZONTAL_PAD
		for k := lo; k < hi; k++ {
			need[k] = math.Max(need[k], distributed)
		}
	}
	for i, n := range sd.seq.Notes {
		if len(n.Actors) != 1 {
			continue
		}
		idx, ok := sd.actorIndex[n.Actors[0]]
		if !ok {
			continue
		}
		room := sd.noteDims[i].width + 2*NOTE_GAP
		switch n.Position {
		case mmdmodel.NoteRight:
			if idx < len(need)-1 {
				need[idx] = math.Max(need[idx], room)
			}
		case mmdmodel.NoteLeft:
			if idx > 0 {
				need[idx-1] = math.Max(need[idx-1], room)
			}
		}
	}

	centerX := sd.opts.PaddingX + sd.actors[0].Width/2
	for i, actor := range sd.actors {
		if i > 0 {
			centerX += need[i-1]
		}
		actor.X = centerX - actor.Width/2
		actor.Y = sd.opts.PaddingY
		actor.Height = maxHeight
	}
	sd.actorsBottom = sd.opts.PaddingY + maxHeight
}

func (sd *sequenceDiagram) centerX(actorIdx int) float64 {
	return sd.actors[actorIdx].CenterX()
}

// estimated horizontal extent of a message label before activations are known
func (sd *sequenceDiagram) messageLabelSpan(i int) (span, bool) {
	m := sd.seq.Messages[i]
	from, to, ok := sd.endpoints(m)
	if !ok || m.Label == "" {
		return span{}, false
	}
	w := sd.labelDims[i].width
	if from == to {
		left := sd.centerX(from) + HORIZONTAL_PAD/2
		return span{left, left + w}, true
	}
	mid := (sd.centerX(from) + sd.centerX(to)) / 2
	return span{mid - w/2, mid + w/2}, true
}

// messageRange clamps a block's message range to existing messages. Empty
// blocks have none.
func (sd *sequenceDiagram) messageRange(b *mmdmodel.Block) (start, end int, ok bool) {
	n := len(sd.seq.Messages)
	if n == 0 || b.Empty() {
		return 0, 0, false
	}
	start = go2.Max(0, go2.Min(b.Start, n-1))
	end = go2.Max(start, go2.Min(b.End, n-1))
	return start, end, true
}

// contains reports whether block i nests inside block j. Blocks covering the
// same messages nest in declaration order.
func (sd *sequenceDiagram) contains(j, i int) bool {
	if i == j {
		return false
	}
	bi, bj := sd.seq.Blocks[i], sd.seq.Blocks[j]
	if bj.Start > bi.Start || bi.End > bj.End {
		return false
	}
	return bj.Start < bi.Start || bi.End < bj.End || i > j
}

func (sd *sequenceDiagram) blockHeader(b *mmdmodel.Block) string {
	if b.Label == "" {
		return string(b.Type)
	}
	return string(b.Type) + " [" + b.Label + "]"
}

// computeBlockSpans derives each block's horizontal extent from the actors its
// messages touch, falling back to every actor. Outer blocks then grow to wrap
// their nested blocks.
func (sd *sequenceDiagram) computeBlockSpans() {
	sd.blockSpans = make([]span, len(sd.seq.Blocks))
	if len(sd.actors) == 0 {
		return
	}
	for bi, b := range sd.seq.Blocks {
		s := span{left: math.Inf(1), right: math.Inf(-1)}
		if start, end, ok := sd.messageRange(b); ok {
			for i := start; i <= end; i++ {
				from, to, ok := sd.endpoints(sd.seq.Messages[i])
				if !ok {
					continue
				}
				for _, idx := range []int{from, to} {
					a := sd.actors[idx]
					s.left = math.Min(s.left, a.X-BLOCK_PADDING_X)
					s.right = math.Max(s.right, a.Right()+BLOCK_PADDING_X)
				}
				if from == to {
					if ls, ok := sd.messageLabelSpan(i); ok {
						s.right = math.Max(s.right, ls.right+BLOCK_PADDING_X)
					}
					s.right = math.Max(s.right, sd.centerX(from)+SELF_MESSAGE_WIDTH+BLOCK_PADDING_X)
				}
			}
		}
		if math.IsInf(s.left, 1) {
			log.Debug(sd.ctx, "block touches no known actor, spanning all actors", slog.F("block", bi))
			s.left = sd.actors[0].X - BLOCK_PADDING_X
			s.right = sd.actors[len(sd.actors)-1].Right() + BLOCK_PADDING_X
		}
		headerWidth, _ := sd.measure(sd.blockHeader(b))
		s.right = math.Max(s.right, s.left+headerWidth+2*BLOCK_LABEL_PADDING)
		sd.blockSpans[bi] = s
	}

	order := make([]int, len(sd.seq.Blocks))
	for i := range order {
		order[i] = i
	}
	// innermost first
	slices.SortStableFunc(order, func(a, b int) int {
		return sd.nestedCount(a) - sd.nestedCount(b)
	})
	for _, j := range order {
		for i := range sd.seq.Blocks {
			if sd.contains(j, i) {
				sd.blockSpans[j].left = math.Min(sd.blockSpans[j].left, sd.blockSpans[i].left-BLOCK_PADDING_X)
				sd.blockSpans[j].right = math.Max(sd.blockSpans[j].right, sd.blockSpans[i].right+BLOCK_PADDING_X)
			}
		}
	}
}

func (sd *sequenceDiagram) nestedCount(j int) int {
	count := 0
	for i := range sd.seq.Blocks {
		if sd.contains(j, i) {
			count++
		}
	}
	return count
}

func dividerLabel(label string) string {
	if label == "" {
		return ""
	}
	return "[" + label + "]"
}

// computeDividerSpacing decides how far each divider sits above its message
// and how much extra space the message needs. The divider label hangs below
// the divider line and the message label sits above the message line, so when
// the two overlap horizontally the divider is pushed up until they clear.
func (sd *sequenceDiagram) computeDividerSpacing() {
	for bi, b := range sd.seq.Blocks {
		if b.Empty() {
			continue
		}
		for di, d := range b.Dividers {
			key := [2]int{bi, di}
			offset := DIVIDER_OFFSET
			extra := DIVIDER_EXTRA
			if d.Index < 0 || d.Index >= len(sd.seq.Messages) {
				sd.dividerOffset[key] = offset
				continue
			}

			text := dividerLabel(d.Label)
			dw, dh := sd.measure(text)
			dSpan := span{
				left:  sd.blockSpans[bi].left + BLOCK_LABEL_PADDING,
				right: sd.blockSpans[bi].left + BLOCK_LABEL_PADDING + dw,
			}
			mSpan, hasLabel := sd.messageLabelSpan(d.Index)
			if text != "" && hasLabel && dSpan.overlaps(mSpan) {
				mh := sd.labelDims[d.Index].height
				clearance := offset - MESSAGE_LABEL_GAP - mh - DIVIDER_LABEL_GAP - dh
				if clearance < sd.opts.DividerOverlapThreshold {
					grow := sd.opts.DividerOverlapClearance - clearance
					offset += grow
					extra += grow
					log.Debug(sd.ctx, "widening divider to clear message label",
						slog.F("block", bi), slog.F("divider", di), slog.F("grow", grow))
				}
			}
			sd.dividerOffset[key] = offset
			sd.dividerExtra[d.Index] = math.Max(sd.dividerExtra[d.Index], extra)
		}
	}
}

// number of blocks whose first message is i
func (sd *sequenceDiagram) blocksStartingAt(i int) int {
	count := 0
	for _, b := range sd.seq.Blocks {
		if start, _, ok := sd.messageRange(b); ok && start == i {
			count++
		}
	}
	return count
}

func (sd *sequenceDiagram) messageBottom(i int) float64 {
	y := sd.messageY[i]
	if sd.seq.Messages[i].IsSelf() {
		y += SELF_MESSAGE_HEIGHT
	}
	return y
}

// routeMessages walks the messages in order with a running y cursor, placing
// notes and tracking activations on the way.
func (sd *sequenceDiagram) routeMessages() {
	notesAfter := make(map[int][]int)
	for i, n := range sd.seq.Notes {
		after := go2.Max(-1, go2.Min(n.After, len(sd.seq.Messages)-1))
		notesAfter[after] = append(notesAfter[after], i)
	}
	marksAfter := make(map[int][]mmdmodel.ActivationMark)
	for _, mark := range sd.seq.ActivationMarks {
		after := go2.Max(-1, go2.Min(mark.After, len(sd.seq.Messages)-1))
		marksAfter[after] = append(marksAfter[after], mark)
	}

	prevY := sd.actorsBottom
	bottom := sd.actorsBottom
	for _, mark := range marksAfter[-1] {
		sd.applyMark(mark, sd.actorsBottom)
	}
	noteBottom := sd.placeNotes(notesAfter[-1], sd.actorsBottom)
	bottom = math.Max(bottom, noteBottom)

	for i, m := range sd.seq.Messages {
		y := prevY + ROW_HEIGHT
		if noteBottom > 0 {
			y = math.Max(y, noteBottom+NOTE_GAP+sd.labelDims[i].height+MESSAGE_LABEL_GAP)
		}
		y += float64(sd.blocksStartingAt(i)) * BLOCK_HEADER_EXTRA
		y += sd.dividerExtra[i]
		if i > 0 && sd.seq.Messages[i-1].IsSelf() {
			y += SELF_MESSAGE_EXTRA
		}
		sd.messageY = append(sd.messageY, y)

		sd.routeMessage(i, m, y)

		for _, mark := range marksAfter[i] {
			sd.applyMark(mark, y)
		}
		prevY = y
		bottom = math.Max(bottom, sd.messageBottom(i))
		noteBottom = sd.placeNotes(notesAfter[i], sd.messageBottom(i))
		bottom = math.Max(bottom, noteBottom)
	}

	sd.lifelineEnd = bottom + ROW_HEIGHT/2
}

// closeOpenActivations ends every activation still open at the end of the
// lifelines.
func (sd *sequenceDiagram) closeOpenActivations() {
	for _, a := range sd.actors {
		stack := sd.activationStacks[a.ID]
		for len(stack) > 0 {
			log.Debug(sd.ctx, "closing activation left open", slog.F("actor", a.ID))
			stack = sd.closeActivation(a.ID, stack, sd.lifelineEnd)
		}
		sd.activationStacks[a.ID] = stack
	}
	slices.SortStableFunc(sd.activations, func(a, b *mmdtarget.Activation) int {
		switch {
		case a.Y != b.Y:
			if a.Y < b.Y {
				return -1
			}
			return 1
		case a.Depth != b.Depth:
			return a.Depth - b.Depth
		}
		return sd.actorIndex[a.Actor] - sd.actorIndex[b.Actor]
	})
}

func (sd *sequenceDiagram) routeMessage(i int, m *mmdmodel.Message, y float64) {
	from, to, ok := sd.endpoints(m)
	if !ok {
		log.Debug(sd.ctx, "skipping message with unknown actor", slog.F("index", i), slog.F("from", m.From), slog.F("to", m.To))
		return
	}

	fromDepth := len(sd.activationStacks[m.From])
	if m.Activate {
		sd.openActivation(m.To, y)
	}
	toDepth := len(sd.activationStacks[m.To])

	msg := &mmdtarget.Message{
		From:  m.From,
		To:    m.To,
		Label: m.Label,
		Line:  m.Line,
		Arrow: m.Arrow,
		Y:     y,
	}
	if sd.seq.Autonumber {
		msg.Number = i + 1
	}

	dims := sd.labelDims[i]
	if from == to {
		x := sd.centerX(from) + barEdge(fromDepth, true)
		msg.Route = []*geo.Point{
			geo.NewPoint(x, y),
			geo.NewPoint(x+SELF_MESSAGE_WIDTH, y),
			geo.NewPoint(x+SELF_MESSAGE_WIDTH, y+SELF_MESSAGE_HEIGHT),
			geo.NewPoint(x, y+SELF_MESSAGE_HEIGHT),
		}
		if m.Label != "" {
			msg.LabelPosition = geo.NewPoint(x+HORIZONTAL_PAD/2+dims.width/2, y-MESSAGE_LABEL_GAP-dims.height/2)
		}
	} else {
		leftToRight := from < to
		startX := sd.centerX(from) + barEdge(fromDepth, leftToRight)
		endX := sd.centerX(to) + barEdge(toDepth, !leftToRight)
		msg.Route = []*geo.Point{
			geo.NewPoint(startX, y),
			geo.NewPoint(endX, y),
		}
		if m.Label != "" {
			msg.LabelPosition = geo.NewPoint((startX+endX)/2, y-MESSAGE_LABEL_GAP-dims.height/2)
		}
	}
	sd.messages = append(sd.messages, msg)

	if m.Deactivate {
		sd.applyMark(mmdmodel.ActivationMark{Actor: m.From, After: i}, y)
	}
}

// barEdge is the x offset from an actor's center to the edge of its innermost
// activation bar facing a message.
func barEdge(depth int, right bool) float64 {
	if depth == 0 {
		return 0
	}
	shift := float64(depth-1) * ACTIVATION_OFFSET
	if right {
		return ACTIVATION_WIDTH/2 + shift
	}
	return -ACTIVATION_WIDTH/2 + shift
}

func (sd *sequenceDiagram) applyMark(mark mmdmodel.ActivationMark, y float64) {
	if _, ok := sd.actorIndex[mark.Actor]; !ok {
		log.Debug(sd.ctx, "skipping activation of unknown actor", slog.F("actor", mark.Actor))
		return
	}
	if mark.Activate {
		sd.openActivation(mark.Actor, y)
		return
	}
	stack := sd.activationStacks[mark.Actor]
	if len(stack) == 0 {
		log.Debug(sd.ctx, "deactivating actor without activation", slog.F("actor", mark.Actor))
		return
	}
	sd.activationStacks[mark.Actor] = sd.closeActivation(mark.Actor, stack, y)
}

func (sd *sequenceDiagram) openActivation(actor string, y float64) {
	stack := sd.activationStacks[actor]
	sd.activationStacks[actor] = append(stack, activationStart{y: y, depth: len(stack)})
}

func (sd *sequenceDiagram) closeActivation(actor string, stack []activationStart, y float64) []activationStart {
	top := stack[len(stack)-1]
	idx := sd.actorIndex[actor]
	bar := &mmdtarget.Activation{
		Actor: actor,
		Depth: top.depth,
	}
	bar.X = sd.centerX(idx) - ACTIVATION_WIDTH/2 + float64(top.depth)*ACTIVATION_OFFSET
	bar.Y = top.y
	bar.Width = ACTIVATION_WIDTH
	bar.Height = math.Max(y-top.y, ACTIVATION_WIDTH)
	sd.activations = append(sd.activations, bar)
	return stack[:len(stack)-1]
}

// placeNotes stacks the given notes below anchorY and returns the bottom of
// the stack, or 0 if nothing was placed.
func (sd *sequenceDiagram) placeNotes(indices []int, anchorY float64) float64 {
	y := anchorY + NOTE_GAP
	bottom := 0.
	for _, ni := range indices {
		n := sd.seq.Notes[ni]
		dims := sd.noteDims[ni]

		var centers []float64
		for _, id := range n.Actors {
			if idx, ok := sd.actorIndex[id]; ok {
				centers = append(centers, sd.centerX(idx))
			}
		}
		if len(centers) == 0 {
			log.Debug(sd.ctx, "skipping note without known actors", slog.F("note", ni))
			continue
		}
		lo, hi := centers[0], centers[0]
		for _, c := range centers[1:] {
			lo = math.Min(lo, c)
			hi = math.Max(hi, c)
		}

		note := &mmdtarget.Note{
			Actors:   n.Actors,
			Text:     n.Text,
			Position: n.Position,
		}
		note.Width = dims.width
		note.Height = dims.height
		note.Y = y
		switch n.Position {
		case mmdmodel.NoteLeft:
			note.X = lo - NOTE_GAP - note.Width
		case mmdmodel.NoteRight:
			note.X = hi + NOTE_GAP
		default:
			if hi > lo {
				note.Width = math.Max(note.Width, hi-lo+2*NOTE_GAP)
			}
			note.X = (lo+hi)/2 - note.Width/2
		}
		sd.notes = append(sd.notes, note)
		bottom = note.Bottom()
		y = bottom + NOTE_GAP
	}
	return bottom
}

// placeBlocks derives each block's rectangle from the rows of its first and
// last message. Headers of blocks opening on the same message stack upward.
func (sd *sequenceDiagram) placeBlocks() {
	for bi, b := range sd.seq.Blocks {
		if b.Empty() {
			sd.placeEmptyBlock(bi, b)
			continue
		}
		start, end, ok := sd.messageRange(b)
		if !ok {
			log.Debug(sd.ctx, "skipping block in diagram without messages", slog.F("block", bi))
			continue
		}
		sameStart, sameEnd := 0, 0
		for i, other := range sd.seq.Blocks {
			if !sd.contains(bi, i) {
				continue
			}
			oStart, oEnd, ok := sd.messageRange(other)
			if !ok {
				continue
			}
			if oStart == start {
				sameStart++
			}
			if oEnd == end {
				sameEnd++
			}
		}

		top := sd.messageY[start] - BLOCK_TOP_PADDING - float64(sameStart)*BLOCK_HEADER_EXTRA
		bottom := sd.messageBottom(end) + BLOCK_BOTTOM_PADDING*float64(1+sameEnd)
		block := &mmdtarget.Block{
			Type:  b.Type,
			Label: b.Label,
		}
		block.X = sd.blockSpans[bi].left
		block.Y = top
		block.Width = sd.blockSpans[bi].right - sd.blockSpans[bi].left
		block.Height = bottom - top

		for di, d := range b.Dividers {
			var y float64
			if d.Index >= 0 && d.Index < len(sd.messageY) {
				y = sd.messageY[d.Index] - sd.dividerOffset[[2]int{bi, di}]
			} else {
				// empty trailing branch
				y = bottom - BLOCK_BOTTOM_PADDING/2
			}
			block.Dividers = append(block.Dividers, mmdtarget.DividerLine{Y: y, Label: d.Label})
		}
		sd.blocks = append(sd.blocks, block)
		sd.lifelineEnd = math.Max(sd.lifelineEnd, bottom+ROW_HEIGHT/2)
	}
}

// placeEmptyBlock lays a block without messages out as a zero height frame
// halfway between the rows around message b.Start.
func (sd *sequenceDiagram) placeEmptyBlock(bi int, b *mmdmodel.Block) {
	y := sd.actorsBottom + ROW_HEIGHT/2
	if prev := b.Start - 1; prev >= 0 && prev < len(sd.messageY) {
		y = sd.messageBottom(prev) + ROW_HEIGHT/2
	}
	block := &mmdtarget.Block{
		Type:  b.Type,
		Label: b.Label,
	}
	block.X = sd.blockSpans[bi].left
	block.Y = y
	block.Width = sd.blockSpans[bi].right - sd.blockSpans[bi].left
	for _, d := range b.Dividers {
		block.Dividers = append(block.Dividers, mmdtarget.DividerLine{Y: y, Label: d.Label})
	}
	sd.blocks = append(sd.blocks, block)
	sd.lifelineEnd = math.Max(sd.lifelineEnd, y+ROW_HEIGHT/2)
}

// fitCanvas shifts everything right when some element would render left of
// the padding, e.g. a note left of the first actor that is wider than it.
func (sd *sequenceDiagram) fitCanvas() {
	minX := math.Inf(1)
	for _, a := range sd.actors {
		minX = math.Min(minX, a.X)
	}
	for _, b := range sd.blocks {
		minX = math.Min(minX, b.X)
	}
	for _, n := range sd.notes {
		minX = math.Min(minX, n.X)
	}
	if !math.IsInf(minX, 1) && minX < sd.opts.PaddingX {
		sd.shift(sd.opts.PaddingX - minX)
	}

	for _, a := range sd.actors {
		a.LifelineEnd = sd.lifelineEnd
	}
}

func (sd *sequenceDiagram) shift(dx float64) {
	for _, a := range sd.actors {
		a.Shift(dx, 0)
	}
	for _, b := range sd.blocks {
		b.Shift(dx, 0)
	}
	for _, n := range sd.notes {
		n.Shift(dx, 0)
	}
	for _, a := range sd.activations {
		a.Shift(dx, 0)
	}
	for _, m := range sd.messages {
		m.Route = geo.Points(m.Route).Translate(dx, 0)
		if m.LabelPosition != nil {
			m.LabelPosition = m.LabelPosition.Translate(dx, 0)
		}
	}
}

func (sd *sequenceDiagram) width() float64 {
	maxX := 0.
	for _, a := range sd.actors {
		maxX = math.Max(maxX, a.Right())
	}
	for _, b := range sd.blocks {
		maxX = math.Max(maxX, b.Right())
	}
	for _, n := range sd.notes {
		maxX = math.Max(maxX, n.Right())
	}
	for i, m := range sd.messages {
		for _, p := range m.Route {
			maxX = math.Max(maxX, p.X)
		}
		if m.LabelPosition != nil {
			maxX = math.Max(maxX, m.LabelPosition.X+sd.messageLabelWidth(i)/2)
		}
	}
	return maxX + sd.opts.PaddingX
}

func (sd *sequenceDiagram) messageLabelWidth(outIdx int) float64 {
	w, _ := sd.measure(sd.messages[outIdx].Label)
	return w
}

func (sd *sequenceDiagram) height() float64 {
	maxY := sd.lifelineEnd
	for _, n := range sd.notes {
		maxY = math.Max(maxY, n.Bottom())
	}
	for _, b := range sd.blocks {
		maxY = math.Max(maxY, b.Bottom())
	}
	return maxY + sd.opts.PaddingY
}

func (sd *sequenceDiagram) result() *mmdtarget.Sequence {
	return &mmdtarget.Sequence{
		Actors:      sd.actors,
		Messages:    sd.messages,
		Activations: sd.activations,
		Blocks:      sd.blocks,
		Notes:       sd.notes,
		Width:       sd.width(),
		Height:      sd.height(),
	}
}
