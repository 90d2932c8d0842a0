package spcodec

import "math"

// DCTTransform applies the separable discrete cosine transform to each
// chunk, with samples centered at 128 before analysis. This is the
// direct O(n^4) evaluation; chunk sizes in this pipeline are small
// enough that a fast factorization has not been worth it.
type DCTTransform struct {
	flatQuantizer
}

// NewDCTTransform returns a cosine-transform strategy using the shared
// flat quantizer with a neutral (all-ones) matrix.
func NewDCTTransform() *DCTTransform {
	t := &DCTTransform{}
	t.flatQuantizer.m = t
	return t
}

func (t *DCTTransform) Space() Space { return SpaceDCT }

func (t *DCTTransform) quantMatrix(size int) []int32 { return onesMatrix(size) }

func (t *DCTTransform) EncodeChunk(in, out *Chunk) {
	n := in.Size
	fn := float64(n)
	for ch := range in.Ch {
		for u := 0; u < n; u++ {
			cu := 1.0
			if u == 0 {
				cu = 1 / math.Sqrt2
			}
			for v := 0; v < n; v++ {
				cv := 1.0
				if v == 0 {
					cv = 1 / math.Sqrt2
				}
				sum := 0.0
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						pixel := float64(in.At(ch, i, j) - 128)
						sum += pixel *
							math.Cos(math.Pi*float64(2*i+1)*float64(u)/(2*fn)) *
							math.Cos(math.Pi*float64(2*j+1)*float64(v)/(2*fn))
					}
				}
				out.Set(ch, u, v, int32(math.Round(2/fn*cu*cv*sum)))
			}
		}
	}
}

func (t *DCTTransform) DecodeChunk(in, out *Chunk) {
	n := in.Size
	fn := float64(n)
	for ch := range in.Ch {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				sum := 0.0
				for u := 0; u < n; u++ {
					cu := 1.0
					if u == 0 {
						cu = 1 / math.Sqrt2
					}
					for v := 0; v < n; v++ {
						cv := 1.0
						if v == 0 {
							cv = 1 / math.Sqrt2
						}
						sum += float64(in.At(ch, u, v)) * cu * cv *
							math.Cos(math.Pi*float64(2*i+1)*float64(u)/(2*fn)) *
							math.Cos(math.Pi*float64(2*j+1)*float64(v)/(2*fn))
					}
				}
				out.Set(ch, i, j, int32(math.Round(2/fn*sum))+128)
			}
		}
	}
}
