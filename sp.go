package spcodec

import (
	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-highway/hwy/contrib/wavelet"
)

// BorderMode selects how the S+P predictor resolves low-pass neighbor
// indices that fall past the ends of the band.
type BorderMode int

const (
	// BorderClamp saturates out-of-range indices to the nearest edge.
	BorderClamp BorderMode = iota
	// BorderMirror reflects out-of-range indices across the edge
	// without repeating the edge sample (whole-sample reflection:
	// 0,1,...,n-1,n-2,...,1,0,1,...).
	BorderMirror
)

// LiftingParams configures the S+P lifting transform. The predictor for
// a high-pass sample d1[l] is
//
//	pred = floor((BetaM1*(s[l-1]-s[l]) + Beta0*(s[l]-s[l+1]) +
//	              BetaP1*(s[l+1]-s[l+2]) - Phi1*d1[l+1]) / 2^CoeffShift)
//
// over the provisional low-pass band s and the raw pairwise differences
// d1. Params are immutable after construction and shared read-only by
// all levels of one transform invocation.
type LiftingParams struct {
	BetaM1, Beta0, BetaP1 int32
	Phi1                  int32

	// CoeffShift is the log2 of the predictor denominator.
	CoeffShift uint

	Border BorderMode

	// Levels is the pyramid depth. 0 means auto-compute from the
	// plane dimensions (halve until either dimension drops below 2).
	Levels int
}

// NaturalImageParams returns the S+P predictor coefficients tuned for
// natural images: beta = (0, 2, 3), phi = 2, denominator 8.
func NaturalImageParams() LiftingParams {
	return LiftingParams{BetaM1: 0, Beta0: 2, BetaP1: 3, Phi1: 2, CoeffShift: 3, Border: BorderClamp}
}

const (
	// spMaxLevels caps the pyramid depth regardless of plane size.
	spMaxLevels = 10
	// spEdgeIterCap bounds the fixed-point solve for the right-edge
	// inverse predictor. With |Phi1| < 2^CoeffShift the iteration is a
	// contraction and settles in a handful of rounds; the cap is a
	// safety valve against pathological parameters.
	spEdgeIterCap = 10
)

// floorDiv2 halves x rounding toward negative infinity. Arithmetic
// shift truncates toward zero for negative values, so the negative
// branch compensates.
func floorDiv2(x int32) int32 {
	if x >= 0 {
		return x >> 1
	}
	return -((-x + 1) >> 1)
}

// floorDivPow2 divides x by 2^shift rounding toward negative infinity.
func floorDivPow2(x int32, shift uint) int32 {
	if x >= 0 {
		return x >> shift
	}
	k := int32(1) << shift
	return -((-x + k - 1) >> shift)
}

// mirrorIndex reflects i into [0, n) across the band edges without
// repeating the edge sample. The reflection has period 2(n-1).
func mirrorIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	if i < 0 {
		i = -i
	}
	m := i % (2 * (n - 1))
	if m < n {
		return m
	}
	return 2*(n-1) - m
}

// borderIndex maps a possibly out-of-range low-pass index into [0, n)
// according to the configured border mode.
func (p LiftingParams) borderIndex(i, n int) int {
	if p.Border == BorderMirror {
		return mirrorIndex(i, n)
	}
	return hwyimage.Clamp(i, n)
}

// sPart evaluates the low-pass portion of the predictor numerator at
// position l over the band lo[0:n).
func (p LiftingParams) sPart(lo []int32, n, l int) int32 {
	sm1 := lo[p.borderIndex(l-1, n)]
	s0 := lo[l]
	sp1 := lo[p.borderIndex(l+1, n)]
	sp2 := lo[p.borderIndex(l+2, n)]
	return p.BetaM1*(sm1-s0) + p.Beta0*(s0-sp1) + p.BetaP1*(sp1-sp2)
}

// llDim returns ceil(n/2), the low-pass sample count for length n.
func llDim(n int) int { return (n + 1) >> 1 }

// hpDim returns floor(n/2), the high-pass sample count for length n.
func hpDim(n int) int { return n >> 1 }

// ceilShift returns ceil(n / 2^lev).
func ceilShift(n, lev int) int { return (n + (1 << lev) - 1) >> lev }

// autoLevels computes the pyramid depth for a w x h plane: both
// dimensions are halved (ceiling division) until either drops below 2,
// capped at spMaxLevels.
func autoLevels(w, h int) int {
	levels := 0
	for w >= 2 && h >= 2 && levels < spMaxLevels {
		levels++
		w = llDim(w)
		h = llDim(h)
	}
	return levels
}

// SPCore applies the integer-reversible multiresolution S+P transform
// to one plane at a time. Construct with NewSPCore.
//
// An SPCore reuses internal row/column scratch across calls purely as
// an allocation optimization, so a single instance must not be used
// from multiple goroutines. Planes and chunks are independent of one
// another; to parallelize, give each worker its own SPCore.
type SPCore struct {
	params LiftingParams

	lo, hi []int32 // split-stage subband scratch
	col    []int32 // column gather buffer

	// EdgeOverflows counts inverse right-edge solves that hit the
	// iteration cap without stabilizing. For coefficients produced by
	// the forward pass this stays zero; a nonzero count indicates a
	// latent bug or out-of-contract parameters.
	EdgeOverflows int
}

// NewSPCore returns a transform core using the given lifting params.
func NewSPCore(p LiftingParams) *SPCore {
	return &SPCore{params: p}
}

// Params returns the lifting configuration this core was built with.
func (c *SPCore) Params() LiftingParams { return c.params }

// ensure grows the scratch buffers for signals up to length n.
func (c *SPCore) ensure(n int) {
	half := llDim(n)
	if cap(c.lo) < half {
		c.lo = make([]int32, half)
	}
	if cap(c.hi) < half {
		c.hi = make([]int32, half)
	}
	if cap(c.col) < n {
		c.col = make([]int32, n)
	}
}

// forward1D runs one S+P analysis stage over data in place, packing the
// low-pass band into data[0:ceil(n/2)) and the high-pass residual band
// after it. Length-1 signals pass through untouched.
func (c *SPCore) forward1D(data []int32) {
	n := len(data)
	if n < 2 {
		return
	}
	nS := llDim(n)
	nD := hpDim(n)
	lo := c.lo[:nS]
	hi := c.hi[:nD]

	// S-stage. Even samples land in lo, odd samples in hi; for odd n
	// the unpaired last sample rides along in lo[nS-1] untouched.
	wavelet.Deinterleave(data, lo, nS, hi, nD, 0)
	for l := 0; l < nD; l++ {
		d1 := hi[l] - lo[l]
		lo[l] += floorDiv2(d1) // s[l]
		hi[l] = d1             // raw difference, refined below
	}

	// P-stage: subtract the prediction from each raw difference,
	// left to right. hi[l+1] still holds the raw d1[l+1] when row l is
	// processed; at the right edge the forward pass clamps d1[l+1] to
	// d1[l] itself.
	p := c.params
	for l := 0; l < nD; l++ {
		d1Next := hi[l]
		if l+1 < nD {
			d1Next = hi[l+1]
		}
		pred := floorDivPow2(p.sPart(lo, nS, l)-p.Phi1*d1Next, p.CoeffShift)
		hi[l] -= pred
	}

	copy(data[:nS], lo)
	copy(data[nS:], hi)
}

// inverse1D exactly undoes forward1D. The raw differences d1 are
// recomputed right to left so that d1[l+1] is known when row l is
// processed; only the rightmost sample needs the fixed-point solve.
func (c *SPCore) inverse1D(data []int32) {
	n := len(data)
	if n < 2 {
		return
	}
	nS := llDim(n)
	nD := hpDim(n)
	lo := c.lo[:nS]
	hi := c.hi[:nD]
	copy(lo, data[:nS])
	copy(hi, data[nS:])

	p := c.params
	for l := nD - 1; l >= 0; l-- {
		sPart := p.sPart(lo, nS, l)
		res := hi[l]
		if l == nD-1 {
			// The forward pass used d1[l+1] = d1[l] here, so
			//
			//	d1 = res + floor((sPart - Phi1*d1) / 2^shift)
			//
			// has d1 on both sides and no closed form over floor.
			// Iterate from a seed that substitutes the residual for
			// d1; each round recomputes the prediction with the
			// current estimate until it stabilizes.
			pred := floorDivPow2(sPart-p.Phi1*res, p.CoeffShift)
			d1 := res + pred
			converged := false
			for it := 0; it < spEdgeIterCap; it++ {
				next := floorDivPow2(sPart-p.Phi1*d1, p.CoeffShift)
				if next == pred {
					converged = true
					break
				}
				pred = next
				d1 = res + pred
			}
			if !converged {
				c.EdgeOverflows++
			}
			hi[l] = d1
		} else {
			pred := floorDivPow2(sPart-p.Phi1*hi[l+1], p.CoeffShift)
			hi[l] = res + pred
		}
	}

	// Undo the S-stage: xe = s - floor(d1/2), xo = d1 + xe.
	for l := 0; l < nD; l++ {
		d1 := hi[l]
		xe := lo[l] - floorDiv2(d1)
		lo[l] = xe
		hi[l] = d1 + xe
	}
	// Interleave writes xe to even slots, xo to odd slots, and copies
	// the surviving lo[nS-1] straight to data[n-1] when n is odd.
	wavelet.Interleave(data, lo, nS, hi, nD, 0)
}

// levelsFor resolves the configured or auto-computed pyramid depth.
func (c *SPCore) levelsFor(w, h int) int {
	if c.params.Levels > 0 {
		return c.params.Levels
	}
	return autoLevels(w, h)
}

// Forward2D applies the multi-level S+P analysis pyramid to plane in
// place. Each level transforms every row of the active region, then
// every column; the low-pass output packs into the top-left quadrant,
// which becomes the next level's active region.
func (c *SPCore) Forward2D(plane Plane) {
	plane.validate()
	w, h := plane.Width, plane.Height
	c.ensure(max(w, h))

	levels := c.levelsFor(w, h)
	for lev := 0; lev < levels; lev++ {
		aw := ceilShift(w, lev)
		ah := ceilShift(h, lev)
		if aw < 2 || ah < 2 {
			break
		}
		for y := 0; y < ah; y++ {
			c.forward1D(plane.Data[y*plane.Stride : y*plane.Stride+aw])
		}
		c.forwardCols(plane, aw, ah)
	}
}

// Inverse2D undoes Forward2D: levels in reverse order, columns before
// rows at each level.
func (c *SPCore) Inverse2D(plane Plane) {
	plane.validate()
	w, h := plane.Width, plane.Height
	c.ensure(max(w, h))

	levels := c.levelsFor(w, h)
	for lev := levels - 1; lev >= 0; lev-- {
		aw := ceilShift(w, lev)
		ah := ceilShift(h, lev)
		if aw < 2 || ah < 2 {
			continue
		}
		c.inverseCols(plane, aw, ah)
		for y := 0; y < ah; y++ {
			c.inverse1D(plane.Data[y*plane.Stride : y*plane.Stride+aw])
		}
	}
}

// forwardCols gathers each column of the active region into the column
// buffer, transforms it, and scatters it back.
func (c *SPCore) forwardCols(plane Plane, aw, ah int) {
	col := c.col[:ah]
	for x := 0; x < aw; x++ {
		for y := 0; y < ah; y++ {
			col[y] = plane.Data[y*plane.Stride+x]
		}
		c.forward1D(col)
		for y := 0; y < ah; y++ {
			plane.Data[y*plane.Stride+x] = col[y]
		}
	}
}

func (c *SPCore) inverseCols(plane Plane, aw, ah int) {
	col := c.col[:ah]
	for x := 0; x < aw; x++ {
		for y := 0; y < ah; y++ {
			col[y] = plane.Data[y*plane.Stride+x]
		}
		c.inverse1D(col)
		for y := 0; y < ah; y++ {
			plane.Data[y*plane.Stride+x] = col[y]
		}
	}
}
