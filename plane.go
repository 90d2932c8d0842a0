package spcodec

import "fmt"

// Plane is a row-major view over a 2-D int32 buffer. Stride is the
// number of elements between successive row starts, which lets a Plane
// address a sub-rectangle of a larger buffer without copying.
//
// The buffer is owned by the caller; transforms only borrow it for the
// duration of one call and mutate values in place, never reallocating.
type Plane struct {
	Data   []int32
	Width  int
	Height int
	Stride int
}

// PlaneFor wraps buf as a densely packed width x height plane
// (stride == width).
func PlaneFor(buf []int32, width, height int) Plane {
	return Plane{Data: buf, Width: width, Height: height, Stride: width}
}

// validate panics on contract violations. A malformed plane is a
// programming error upstream, never silently corrected.
func (p Plane) validate() {
	if p.Data == nil {
		panic("spcodec: plane has nil data")
	}
	if p.Width <= 0 || p.Height <= 0 {
		panic(fmt.Sprintf("spcodec: plane dimensions %dx%d must be positive", p.Width, p.Height))
	}
	if p.Stride < p.Width {
		panic(fmt.Sprintf("spcodec: plane stride %d < width %d", p.Stride, p.Width))
	}
	if need := (p.Height-1)*p.Stride + p.Width; len(p.Data) < need {
		panic(fmt.Sprintf("spcodec: plane buffer holds %d elements, need %d", len(p.Data), need))
	}
}
