package util

import (
	"fmt"
	"math"
)

// BoundsTolerance absorbs floating-point and client rounding error, in
// normalized mockup units.
const BoundsTolerance = 0.001

// Rect is an axis-aligned rectangle in normalized mockup coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// BoundingBox returns the axis-aligned box of a w×h rectangle placed at (x, y)
// and rotated by rotationDeg about its own center.
//
// The rotated size is w|cos θ| + h|sin θ| by w|sin θ| + h|cos θ|, re-centered
// on the unrotated box. This is the box of the rotated corners, not a
// rotated-rectangle containment test, so a design whose corners stay inside
// while its box pokes out is still rejected.
func BoundingBox(x, y, w, h, rotationDeg float64) Rect {
	if rotationDeg == 0 {
		return Rect{X: x, Y: y, W: w, H: h}
	}

	theta := degToRad(rotationDeg)
	cos := math.Abs(math.Cos(theta))
	sin := math.Abs(math.Sin(theta))

	rotatedW := w*cos + h*sin
	rotatedH := w*sin + h*cos

	return Rect{
		X: x - (rotatedW-w)/2,
		Y: y - (rotatedH-h)/2,
		W: rotatedW,
		H: rotatedH,
	}
}

// ContainsWithin reports whether inner lies inside outer, each edge allowed to
// overshoot by tolerance. When it does not, the first failing edge is described.
// Each edge must positively hold, so a NaN coordinate never passes.
func ContainsWithin(outer, inner Rect, tolerance float64) (bool, string) {
	switch {
	case !(inner.X >= outer.X-tolerance):
		return false, fmt.Sprintf("left edge %.4f is outside %.4f", inner.X, outer.X)
	case !(inner.Y >= outer.Y-tolerance):
		return false, fmt.Sprintf("top edge %.4f is outside %.4f", inner.Y, outer.Y)
	case !(inner.Right() <= outer.Right()+tolerance):
		return false, fmt.Sprintf("right edge %.4f is outside %.4f", inner.Right(), outer.Right())
	case !(inner.Bottom() <= outer.Bottom()+tolerance):
		return false, fmt.Sprintf("bottom edge %.4f is outside %.4f", inner.Bottom(), outer.Bottom())
	}
	return true, ""
}

// ValidateBounds scales a design of designW×designH, places it at (x, y) with
// the given rotation and checks it against area. A nil area always passes.
// Negative sizes and sizes that overflow when scaled are out of bounds.
func ValidateBounds(x, y, scale, rotationDeg, designW, designH float64, area *Rect) (bool, string) {
	if area == nil {
		return true, ""
	}
	if designW < 0 || designH < 0 {
		return false, fmt.Sprintf("negative design size %.4fx%.4f", designW, designH)
	}
	w, h := designW*scale, designH*scale
	if !finite(x, y, w, h, rotationDeg) {
		return false, "placement is not finite"
	}
	box := BoundingBox(x, y, w, h, rotationDeg)
	if !finite(box.X, box.Y, box.W, box.H) {
		return false, "rotated box is not finite"
	}
	return ContainsWithin(*area, box, BoundsTolerance)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// degToRad converts degrees to radians
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
