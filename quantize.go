package spcodec

import "math"

// QuantParams configures the level-aware subband quantizer used by the
// S+P transform. Four base step sizes (one per subband kind) are scaled
// globally by Scale and per level by LevelGamma^lev, then rounded to
// the concrete integer steps for that level. A derived step <= 0 means
// lossless passthrough for that subband/level.
type QuantParams struct {
	StepLL, StepHL, StepLH, StepHH int32

	// Deadzone is the zero-bin half-width of the detail-subband
	// quantizer, as a multiple of the step size.
	Deadzone float64

	// Scale multiplies every base step. Larger is coarser.
	Scale float64

	// LevelGamma is the geometric per-level multiplier; a value <= 0
	// disables per-level scaling (every level uses the base steps).
	LevelGamma float64
}

// DefaultQuantParams returns the experimental table: lossless LL,
// modest detail steps that grow geometrically with level depth.
func DefaultQuantParams() QuantParams {
	return QuantParams{
		StepLL:     0,
		StepHL:     3,
		StepLH:     3,
		StepHH:     4,
		Deadzone:   1,
		Scale:      1,
		LevelGamma: 1.6,
	}
}

// qTable holds the four concrete integer step sizes for one level.
// Tables are derived from QuantParams on every quantize or dequantize
// call; nothing mutable persists between calls.
type qTable struct {
	ll, hl, lh, hh int32
}

func (t qTable) step(band Subband) int32 {
	switch band {
	case SubbandLL:
		return t.ll
	case SubbandHL:
		return t.hl
	case SubbandLH:
		return t.lh
	default:
		return t.hh
	}
}

// stepFor derives the concrete step for a base size at a level.
func (p QuantParams) stepFor(base int32, lev int) int32 {
	g := 1.0
	if p.LevelGamma > 0 {
		g = math.Pow(p.LevelGamma, float64(lev))
	}
	return int32(math.Round(float64(base) * p.Scale * g))
}

func (p QuantParams) tableForLevel(lev int) qTable {
	return qTable{
		ll: p.stepFor(p.StepLL, lev),
		hl: p.stepFor(p.StepHL, lev),
		lh: p.stepFor(p.StepLH, lev),
		hh: p.stepFor(p.StepHH, lev),
	}
}

func (p QuantParams) tables(w, h, levels int) []qTable {
	ts := make([]qTable, effectiveLevels(w, h, levels))
	for lev := range ts {
		ts[lev] = p.tableForLevel(lev)
	}
	return ts
}

// quantizeUniform maps v to round(v/step) with halves rounded away
// from zero. step <= 0 passes v through unchanged.
func quantizeUniform(v, step int32) int32 {
	if step <= 0 {
		return v
	}
	a := v
	neg := a < 0
	if neg {
		a = -a
	}
	q := (2*a + step) / (2 * step)
	if neg {
		return -q
	}
	return q
}

// dequantizeUniform reconstructs q*step, keeping zero coefficients
// exactly zero.
func dequantizeUniform(q, step int32) int32 {
	if step <= 0 {
		return q
	}
	return q * step
}

// quantizeDeadzone applies the dead-zone quantizer: magnitudes inside
// the zero bin (half-width Deadzone*step) collapse to 0, everything
// beyond falls into uniform bins of width step.
func (p QuantParams) quantizeDeadzone(v, step int32) int32 {
	if step <= 0 {
		return v
	}
	a := float64(v)
	if a < 0 {
		a = -a
	}
	z := p.Deadzone * float64(step)
	if a < z {
		return 0
	}
	q := int32((a-z)/float64(step)) + 1
	if v < 0 {
		return -q
	}
	return q
}

// dequantizeDeadzone reconstructs at the dead-zone edge plus the bin
// midpoint. A zero coefficient reconstructs to exactly zero.
func (p QuantParams) dequantizeDeadzone(q, step int32) int32 {
	if step <= 0 {
		return q
	}
	if q == 0 {
		return 0
	}
	aq := q
	if aq < 0 {
		aq = -aq
	}
	z := p.Deadzone * float64(step)
	r := int32(math.Round(z + (float64(aq-1)+0.5)*float64(step)))
	if q < 0 {
		return -r
	}
	return r
}

// QuantizePlane quantizes a decomposed plane in place: uniform
// quantization for the surviving LL quadrant, dead-zone quantization
// for every detail subband at the level that produced it.
func (p QuantParams) QuantizePlane(plane Plane, levels int) {
	tables := p.tables(plane.Width, plane.Height, levels)
	forEachBand(plane, levels, func(v int32, lev int, band Subband) int32 {
		step := tables[lev].step(band)
		if band == SubbandLL {
			return quantizeUniform(v, step)
		}
		return p.quantizeDeadzone(v, step)
	})
}

// DequantizePlane reconstructs representative coefficient values from a
// plane produced by QuantizePlane, walking the same level structure.
func (p QuantParams) DequantizePlane(plane Plane, levels int) {
	tables := p.tables(plane.Width, plane.Height, levels)
	forEachBand(plane, levels, func(q int32, lev int, band Subband) int32 {
		step := tables[lev].step(band)
		if band == SubbandLL {
			return dequantizeUniform(q, step)
		}
		return p.dequantizeDeadzone(q, step)
	})
}
