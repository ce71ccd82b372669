package layout

import "math"

type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

type Margin struct {
	Horizontal int
	Vertical   int
}

func (m Margin) normalized() Margin {
	return Margin{Horizontal: max(m.Horizontal, 0), Vertical: max(m.Vertical, 0)}
}

func (r Rect) Right() int {
	return satAdd(r.X, r.Width)
}

func (r Rect) Bottom() int {
	return satAdd(r.Y, r.Height)
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Centered places a width x height box in the middle of base. The box is
// clamped to base; odd leftover space goes below and to the right.
func Centered(base Rect, width int, height int) Rect {
	width = clamp(width, 0, max(base.Width, 0))
	height = clamp(height, 0, max(base.Height, 0))
	return Rect{
		X:      base.X + satSub(base.Width, width)/2,
		Y:      base.Y + satSub(base.Height, height)/2,
		Width:  width,
		Height: height,
	}
}

// Outset grows r by m on every side without going below zero or overflowing.
func (r Rect) Outset(m Margin) Rect {
	m = m.normalized()
	return Rect{
		X:      satSub(r.X, m.Horizontal),
		Y:      satSub(r.Y, m.Vertical),
		Width:  satAdd(r.Width, satMul2(m.Horizontal)),
		Height: satAdd(r.Height, satMul2(m.Vertical)),
	}
}

// Inset shrinks r by m on every side.
func (r Rect) Inset(m Margin) Rect {
	m = m.normalized()
	w := satSub(r.Width, satMul2(m.Horizontal))
	h := satSub(r.Height, satMul2(m.Vertical))
	if w == 0 || h == 0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + m.Horizontal, Y: r.Y + m.Vertical, Width: w, Height: h}
}

// Intersect clips r to bounds.
func (r Rect) Intersect(bounds Rect) Rect {
	x := max(r.X, bounds.X)
	y := max(r.Y, bounds.Y)
	right := min(r.Right(), bounds.Right())
	bottom := min(r.Bottom(), bounds.Bottom())
	if right <= x || bottom <= y {
		return Rect{X: x, Y: y}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func satAdd(a int, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satSub(a int, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func satMul2(v int) int {
	if v <= 0 {
		return 0
	}
	return satAdd(v, v)
}
