package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

func (b *Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

// Contains reports whether p lies inside or on the border of b.
func (b *Box) Contains(p *Point) bool {
	return p.X >= b.TopLeft.X-PRECISION && p.X <= b.Right()+PRECISION &&
		p.Y >= b.TopLeft.Y-PRECISION && p.Y <= b.Bottom()+PRECISION
}

// Overlaps reports whether the interiors of b and o intersect.
func (b *Box) Overlaps(o *Box) bool {
	return b.TopLeft.X < o.Right() && o.TopLeft.X < b.Right() &&
		b.TopLeft.Y < o.Bottom() && o.TopLeft.Y < b.Bottom()
}

// Union returns the smallest box containing both b and o.
func (b *Box) Union(o *Box) *Box {
	if b == nil {
		return o.Copy()
	}
	if o == nil {
		return b.Copy()
	}
	left := math.Min(b.TopLeft.X, o.TopLeft.X)
	top := math.Min(b.TopLeft.Y, o.TopLeft.Y)
	right := math.Max(b.Right(), o.Right())
	bottom := math.Max(b.Bottom(), o.Bottom())
	return NewBox(NewPoint(left, top), right-left, bottom-top)
}

// Expand grows the box by pad on every side.
func (b *Box) Expand(pad float64) *Box {
	return NewBox(NewPoint(b.TopLeft.X-pad, b.TopLeft.Y-pad), b.Width+2*pad, b.Height+2*pad)
}

func (b *Box) Intersections(s Segment) []*Point {
	pts := []*Point{}

	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)

	for _, side := range [][2]*Point{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}} {
		if p := IntersectionPoint(s.Start, s.End, side[0], side[1]); p != nil {
			pts = append(pts, p)
		}
	}
	return pts
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
