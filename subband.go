package spcodec

// Subband identifies one of the four quadrants produced by a single
// level of the 2-D decomposition.
type Subband int

const (
	SubbandLL Subband = iota // low-pass both directions
	SubbandHL                // horizontal high-pass
	SubbandLH                // vertical high-pass
	SubbandHH                // diagonal high-pass
)

func (s Subband) String() string {
	switch s {
	case SubbandLL:
		return "LL"
	case SubbandHL:
		return "HL"
	case SubbandLH:
		return "LH"
	case SubbandHH:
		return "HH"
	default:
		return "Unknown"
	}
}

// classifySubband labels position (x, y) within an active region whose
// low-low quadrant spans [0, wLL) x [0, hLL).
func classifySubband(x, y, wLL, hLL int) Subband {
	switch {
	case x < wLL && y < hLL:
		return SubbandLL
	case x >= wLL && y < hLL:
		return SubbandHL
	case x < wLL && y >= hLL:
		return SubbandLH
	default:
		return SubbandHH
	}
}

// effectiveLevels mirrors the pyramid driver's early-stop rule: levels
// stop counting once the active region drops below 2 in either
// dimension.
func effectiveLevels(w, h, levels int) int {
	for lev := 0; lev < levels; lev++ {
		if ceilShift(w, lev) < 2 || ceilShift(h, lev) < 2 {
			return lev
		}
	}
	return levels
}

// forEachBand visits every coefficient of a decomposed plane exactly
// once and replaces it with fn's return value. Detail subbands are
// visited at the level that produced them; the surviving low-pass
// quadrant is visited once, at the deepest level. Shallower levels
// skip their LL quadrant because the next level subdivides it.
func forEachBand(plane Plane, levels int, fn func(v int32, lev int, band Subband) int32) {
	plane.validate()
	levels = effectiveLevels(plane.Width, plane.Height, levels)
	for lev := 0; lev < levels; lev++ {
		aw := ceilShift(plane.Width, lev)
		ah := ceilShift(plane.Height, lev)
		wLL := llDim(aw)
		hLL := llDim(ah)
		last := lev == levels-1
		for y := 0; y < ah; y++ {
			row := plane.Data[y*plane.Stride : y*plane.Stride+aw]
			for x := 0; x < aw; x++ {
				band := classifySubband(x, y, wLL, hLL)
				if band == SubbandLL && !last {
					continue
				}
				row[x] = fn(row[x], lev, band)
			}
		}
	}
}
