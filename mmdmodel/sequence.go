package mmdmodel

import (
	"fmt"
)

type ActorKind string

const (
	ActorParticipant ActorKind = "participant"
	ActorPerson      ActorKind = "actor"
)

type Actor struct {
	ID    string
	Label string
	Kind  ActorKind
}

type MessageArrow string

const (
	// ->> and -->>
	MessageArrowFilled MessageArrow = "filled"
	// -> and -->
	MessageArrowOpen MessageArrow = "open"
	// -x and --x
	MessageArrowCross MessageArrow = "cross"
	// -) and --)
	MessageArrowAsync MessageArrow = "async"
)

type Message struct {
	From  string
	To    string
	Label string
	Line  LineStyle
	Arrow MessageArrow
	// Activate opens an activation on To once the message is placed.
	Activate bool
	// Deactivate closes the innermost activation of From.
	Deactivate bool
}

func (m *Message) IsSelf() bool {
	return m.From == m.To
}

type BlockType string

const (
	BlockLoop     BlockType = "loop"
	BlockAlt      BlockType = "alt"
	BlockOpt      BlockType = "opt"
	BlockPar      BlockType = "par"
	BlockCritical BlockType = "critical"
	BlockBreak    BlockType = "break"
	BlockRect     BlockType = "rect"
)

// Divider separates the branches of alt, par and critical blocks. Index is
// the first message of the new branch.
type Divider struct {
	Index int
	Label string
}

// Block spans messages Start through End inclusive. An empty block has End
// one below Start and sits just before message Start.
type Block struct {
	Type     BlockType
	Label    string
	Start    int
	End      int
	Dividers []Divider
}

func (b *Block) Empty() bool {
	return b.End < b.Start
}

type NotePosition string

const (
	NoteLeft  NotePosition = "left"
	NoteRight NotePosition = "right"
	NoteOver  NotePosition = "over"
)

// Note is anchored to the message at index After; -1 places it before the
// first message.
type Note struct {
	Actors   []string
	Text     string
	Position NotePosition
	After    int
}

// ActivationMark is a standalone activate/deactivate statement applied after
// the message at index After.
type ActivationMark struct {
	Actor    string
	After    int
	Activate bool
}

type Sequence struct {
	Actors          []*Actor
	Messages        []*Message
	Blocks          []*Block
	Notes           []*Note
	ActivationMarks []ActivationMark
	Autonumber      bool
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Actor(id string) *Actor {
	for _, a := range s.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// AddActor declares id if needed, keeping first-declaration order.
func (s *Sequence) AddActor(id, label string, kind ActorKind) *Actor {
	if a := s.Actor(id); a != nil {
		if label != "" {
			a.Label = label
		}
		if kind != "" {
			a.Kind = kind
		}
		return a
	}
	if label == "" {
		label = id
	}
	if kind == "" {
		kind = ActorParticipant
	}
	a := &Actor{ID: id, Label: label, Kind: kind}
	s.Actors = append(s.Actors, a)
	return a
}

func (s *Sequence) ActorIndex(id string) int {
	for i, a := range s.Actors {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks block and divider indices against the message list.
func (s *Sequence) Validate() error {
	n := len(s.Messages)
	for i, b := range s.Blocks {
		if b.Start < 0 || b.Start > n || b.End >= n || b.End < b.Start-1 {
			return fmt.Errorf("block %d (%s) spans invalid messages [%d, %d]", i, b.Type, b.Start, b.End)
		}
		prev := b.Start
		for _, d := range b.Dividers {
			if d.Index < prev || d.Index > b.End+1 {
				return fmt.Errorf("block %d (%s) has divider at invalid message %d", i, b.Type, d.Index)
			}
			prev = d.Index
		}
	}
	for i, m := range s.Messages {
		if s.Actor(m.From) == nil || s.Actor(m.To) == nil {
			return fmt.Errorf("message %d references unknown actor", i)
		}
	}
	return nil
}
