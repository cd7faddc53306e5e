// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no external dependencies (in
// particular no Bubble Tea) so game logic stays pure and testable.
package core

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Box is a center-anchored axis-aligned bounding box in world units.
// All simulation hitboxes are Boxes.
type Box struct {
	CX, CY float64 // Center
	W, H   float64 // Full width and height
}

// NewBox creates a box centered at (cx, cy).
func NewBox(cx, cy, w, h float64) Box {
	return Box{CX: cx, CY: cy, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.CX - b.W/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.CX + b.W/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.CY - b.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.CY + b.H/2 }

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.Left() >= o.Right() || o.Left() >= b.Right() {
		return false
	}
	if b.Top() >= o.Bottom() || o.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Expand returns a copy grown by margin on every side.
func (b Box) Expand(margin float64) Box {
	b.W += 2 * margin
	b.H += 2 * margin
	return b
}

// ContainsX reports whether x lies within the box's horizontal span.
func (b Box) ContainsX(x float64) bool {
	return x >= b.Left() && x <= b.Right()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Approach moves cur toward target by at most step and never overshoots.
func Approach(cur, target, step float64) float64 {
	if cur < target {
		cur += step
		if cur > target {
			return target
		}
		return cur
	}
	cur -= step
	if cur < target {
		return target
	}
	return cur
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
