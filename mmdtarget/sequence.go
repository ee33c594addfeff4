package mmdtarget

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdmodel"
)

type Actor struct {
	Rect
	ID    string             `json:"id"`
	Label string             `json:"label"`
	Kind  mmdmodel.ActorKind `json:"kind"`
	// LifelineEnd is the y where the actor's lifeline stops.
	LifelineEnd float64 `json:"lifelineEnd"`
}

func (a *Actor) CenterX() float64 {
	return a.X + a.Width/2
}

type Message struct {
	From          string                `json:"from"`
	To            string                `json:"to"`
	Label         string                `json:"label"`
	Line          mmdmodel.LineStyle    `json:"line"`
	Arrow         mmdmodel.MessageArrow `json:"arrow"`
	Y             float64               `json:"y"`
	Route         []*geo.Point          `json:"route"`
	LabelPosition *geo.Point            `json:"labelPosition,omitempty"`
	Number        int                   `json:"number,omitempty"`
}

type Activation struct {
	Rect
	Actor string `json:"actor"`
	Depth int    `json:"depth"`
}

type DividerLine struct {
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type Block struct {
	Rect
	Type     mmdmodel.BlockType `json:"type"`
	Label    string             `json:"label"`
	Dividers []DividerLine      `json:"dividers,omitempty"`
}

type Note struct {
	Rect
	Actors   []string              `json:"actors"`
	Text     string                `json:"text"`
	Position mmdmodel.NotePosition `json:"position"`
}

type Sequence struct {
	Actors      []*Actor      `json:"actors"`
	Messages    []*Message    `json:"messages"`
	Activations []*Activation `json:"activations"`
	Blocks      []*Block      `json:"blocks"`
	Notes       []*Note       `json:"notes"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
}
