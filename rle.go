package spcodec

// rleMaxRun caps the zero count of a single pair at what fits in a
// 4-bit field.
const rleMaxRun = 15

// rlePair is one run-length unit: Zeros preceding zero coefficients
// followed by the literal Value. A full-length run is flushed as
// (15, 0), where the literal zero is the sixteenth zero of the run.
type rlePair struct {
	Zeros uint8
	Value int32
}

// rleEncode run-length encodes a flat coefficient slice. Trailing
// zeros are flushed as a final (count, 0) pair; the decoder truncates
// at the known length, so the extra literal is harmless.
func rleEncode(flat []int32) []rlePair {
	var pairs []rlePair
	zeros := uint8(0)
	for _, v := range flat {
		if v == 0 && zeros < rleMaxRun {
			zeros++
			continue
		}
		pairs = append(pairs, rlePair{Zeros: zeros, Value: v})
		zeros = 0
	}
	if zeros > 0 {
		pairs = append(pairs, rlePair{Zeros: zeros, Value: 0})
	}
	return pairs
}

// rleDecode expands pairs into a slice of exactly n coefficients and
// reports how many pairs it consumed. Whole pairs are always consumed;
// anything past n is the flush literal and is dropped. Pairs beyond
// the n'th coefficient are left for the caller, which lets several
// encoded blocks share one pair stream.
func rleDecode(pairs []rlePair, n int) ([]int32, int, error) {
	flat := make([]int32, 0, n)
	used := 0
	for _, p := range pairs {
		if len(flat) == n {
			break
		}
		for z := uint8(0); z < p.Zeros && len(flat) < n; z++ {
			flat = append(flat, 0)
		}
		if len(flat) < n {
			flat = append(flat, p.Value)
		}
		used++
	}
	if len(flat) != n {
		return nil, used, ErrTruncatedData
	}
	return flat, used, nil
}
