package mmdparser

import (
	"regexp"
	"strings"

	"oss.terrastruct.com/mmd/mmdmodel"
)

var seqMessage = regexp.MustCompile(`^([^\s:>+-][^:>+]*?)\s*(-->>|->>|--x|-x|--\)|-\)|-->|->)\s*([+-]?)\s*([^\s:+-][^:]*?)\s*(?::\s*(.*))?$`)

var seqArrows = map[string]mmdmodel.MessageArrow{
	">>": mmdmodel.MessageArrowFilled,
	">":  mmdmodel.MessageArrowOpen,
	"x":  mmdmodel.MessageArrowCross,
	")":  mmdmodel.MessageArrowAsync,
}

var seqNote = regexp.MustCompile(`(?i)^note\s+(left of|right of|over)\s+([^:]+?)\s*:\s*(.*)$`)

var blockTypes = map[string]mmdmodel.BlockType{
	"loop":     mmdmodel.BlockLoop,
	"alt":      mmdmodel.BlockAlt,
	"opt":      mmdmodel.BlockOpt,
	"par":      mmdmodel.BlockPar,
	"critical": mmdmodel.BlockCritical,
	"break":    mmdmodel.BlockBreak,
	"rect":     mmdmodel.BlockRect,
}

// dividerKeywords lists the branch keywords each block type accepts.
var dividerKeywords = map[string][]mmdmodel.BlockType{
	"else":   {mmdmodel.BlockAlt},
	"and":    {mmdmodel.BlockPar},
	"option": {mmdmodel.BlockCritical},
}

func (p *parser) parseSequence() *mmdmodel.Sequence {
	seq := mmdmodel.NewSequence()
	// open blocks, innermost last
	var stack []*mmdmodel.Block

	for _, l := range p.lines {
		kw, rest := keyword(l.text)
		switch kw {
		case "participant", "actor":
			kind := mmdmodel.ActorParticipant
			if kw == "actor" {
				kind = mmdmodel.ActorPerson
			}
			id, alias, ok := splitOnce(rest, " as ")
			if !ok {
				id, alias = rest, ""
			}
			if id == "" {
				p.errorf(l.n, "%s without id", kw)
				continue
			}
			seq.AddActor(id, alias, kind)
			continue
		case "autonumber":
			seq.Autonumber = true
			continue
		case "activate", "deactivate":
			if rest == "" {
				p.errorf(l.n, "%s without actor", kw)
				continue
			}
			seq.AddActor(rest, "", "")
			seq.ActivationMarks = append(seq.ActivationMarks, mmdmodel.ActivationMark{
				Actor:    rest,
				After:    len(seq.Messages) - 1,
				Activate: kw == "activate",
			})
			continue
		case "end":
			if rest != "" {
				break
			}
			if len(stack) == 0 {
				p.errorf(l.n, "end without block")
				continue
			}
			stack[len(stack)-1].End = len(seq.Messages) - 1
			stack = stack[:len(stack)-1]
			continue
		case "else", "and", "option":
			if len(stack) == 0 || !acceptsDivider(stack[len(stack)-1].Type, kw) {
				p.errorf(l.n, "%s outside of a matching block", kw)
				continue
			}
			top := stack[len(stack)-1]
			top.Dividers = append(top.Dividers, mmdmodel.Divider{Index: len(seq.Messages), Label: rest})
			continue
		}

		if t, ok := blockTypes[kw]; ok {
			b := &mmdmodel.Block{Type: t, Label: rest, Start: len(seq.Messages), End: -1}
			seq.Blocks = append(seq.Blocks, b)
			stack = append(stack, b)
			continue
		}

		if m := seqNote.FindStringSubmatch(l.text); m != nil {
			note := &mmdmodel.Note{Text: m[3], After: len(seq.Messages) - 1}
			switch strings.ToLower(m[1]) {
			case "left of":
				note.Position = mmdmodel.NoteLeft
			case "right of":
				note.Position = mmdmodel.NoteRight
			default:
				note.Position = mmdmodel.NoteOver
			}
			for _, a := range strings.Split(m[2], ",") {
				a = strings.TrimSpace(a)
				if a == "" {
					continue
				}
				seq.AddActor(a, "", "")
				note.Actors = append(note.Actors, a)
			}
			seq.Notes = append(seq.Notes, note)
			continue
		}

		if m := seqMessage.FindStringSubmatch(l.text); m != nil {
			msg := &mmdmodel.Message{
				From:       strings.TrimSpace(m[1]),
				To:         strings.TrimSpace(m[4]),
				Label:      m[5],
				Line:       mmdmodel.LineSolid,
				Activate:   m[3] == "+",
				Deactivate: m[3] == "-",
			}
			arrow := m[2]
			if strings.HasPrefix(arrow, "--") {
				msg.Line = mmdmodel.LineDotted
			}
			msg.Arrow = seqArrows[strings.TrimLeft(arrow, "-")]
			seq.AddActor(msg.From, "", "")
			seq.AddActor(msg.To, "", "")
			seq.Messages = append(seq.Messages, msg)
			continue
		}

		p.errorf(l.n, "unexpected statement %q", l.text)
	}

	if len(stack) > 0 {
		p.errorf(p.lines[len(p.lines)-1].n, "%s block is never closed", stack[len(stack)-1].Type)
		return seq
	}

	if p.err.Empty() {
		if err := seq.Validate(); err != nil {
			p.errorf(p.lines[len(p.lines)-1].n, "%v", err)
		}
	}
	return seq
}

func acceptsDivider(t mmdmodel.BlockType, kw string) bool {
	for _, bt := range dividerKeywords[kw] {
		if bt == t {
			return true
		}
	}
	return false
}
