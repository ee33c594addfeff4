// Package mmdtarget holds positioned diagrams: the logical models of
// mmdmodel with geometry attached. All coordinates are absolute, origin at the
// top left of the canvas.
package mmdtarget

import (
	"oss.terrastruct.com/mmd/lib/geo"
	"oss.terrastruct.com/mmd/mmdmodel"
)

// Diagram is a tagged union over the positioned kinds.
type Diagram struct {
	Kind     mmdmodel.Kind `json:"kind"`
	Graph    *Graph        `json:"graph,omitempty"`
	Sequence *Sequence     `json:"sequence,omitempty"`
	Class    *Class        `json:"class,omitempty"`
}

func (d *Diagram) Size() (width, height float64) {
	switch {
	case d.Graph != nil:
		return d.Graph.Width, d.Graph.Height
	case d.Sequence != nil:
		return d.Sequence.Width, d.Sequence.Height
	case d.Class != nil:
		return d.Class.Width, d.Class.Height
	}
	return 0, 0
}

// Rect is the geometry shared by every boxed element.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(r.X, r.Y), r.Width, r.Height)
}

func (r Rect) Center() *geo.Point {
	return geo.NewPoint(r.X+r.Width/2, r.Y+r.Height/2)
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Shift moves the rect by dx, dy.
func (r *Rect) Shift(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// Extent accumulates a bounding rectangle over points and rects.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
	empty                  bool
}

func NewExtent() *Extent {
	return &Extent{empty: true}
}

func (e *Extent) AddPoint(p *geo.Point) {
	if p == nil {
		return
	}
	if e.empty {
		e.MinX, e.MaxX, e.MinY, e.MaxY = p.X, p.X, p.Y, p.Y
		e.empty = false
		return
	}
	if p.X < e.MinX {
		e.MinX = p.X
	}
	if p.X > e.MaxX {
		e.MaxX = p.X
	}
	if p.Y < e.MinY {
		e.MinY = p.Y
	}
	if p.Y > e.MaxY {
		e.MaxY = p.Y
	}
}

func (e *Extent) AddRect(r Rect) {
	e.AddPoint(geo.NewPoint(r.X, r.Y))
	e.AddPoint(geo.NewPoint(r.Right(), r.Bottom()))
}

func (e *Extent) Empty() bool {
	return e.empty
}
