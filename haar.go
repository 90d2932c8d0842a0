package spcodec

// HaarTransform applies a non-standard Haar decomposition to each
// chunk: at every scale the surviving top-left square is transformed
// along rows and then columns before the scale halves. The lifting
// pair is the plain integer sum/difference, so the transform is
// exactly invertible. Chunk sizes must be a power of two.
type HaarTransform struct {
	flatQuantizer
	scratch []int32
}

// NewHaarTransform returns a Haar strategy using the flat quantizer
// with a dyadic step matrix that grows with coefficient scale.
func NewHaarTransform() *HaarTransform {
	t := &HaarTransform{}
	t.flatQuantizer.m = t
	return t
}

func (t *HaarTransform) Space() Space { return SpaceHaar }

// quantMatrix builds the dyadic step matrix: every coefficient starts
// at 1 and doubles once for each scale whose square contains it, so
// the coarsest corner carries the largest step.
func (t *HaarTransform) quantMatrix(size int) []int32 {
	m := make([]int32, size*size)
	for i := range m {
		m[i] = 1
	}
	for sz := 1; sz <= size; sz <<= 1 {
		for i := 0; i < sz; i++ {
			for j := 0; j < sz; j++ {
				m[i*size+j] <<= 1
			}
		}
	}
	return m
}

func (t *HaarTransform) ensure(n int) {
	if cap(t.scratch) < n {
		t.scratch = make([]int32, n)
	}
	t.scratch = t.scratch[:n]
}

// haar1D replaces the first n entries with n/2 sums followed by n/2
// differences of adjacent pairs.
func (t *HaarTransform) haar1D(data []int32, n int) {
	s := t.scratch[:n]
	for i := 0; i < n/2; i++ {
		s[i] = data[2*i] + data[2*i+1]
		s[i+n/2] = data[2*i] - data[2*i+1]
	}
	copy(data[:n], s)
}

func (t *HaarTransform) invHaar1D(data []int32, n int) {
	s := t.scratch[:n]
	for i := 0; i < n/2; i++ {
		s[2*i] = (data[i] + data[i+n/2]) / 2
		s[2*i+1] = (data[i] - data[i+n/2]) / 2
	}
	copy(data[:n], s)
}

func (t *HaarTransform) EncodeChunk(in, out *Chunk) {
	out.copyFrom(in)
	n := out.Size
	t.ensure(n)
	col := make([]int32, n)
	for ch := range out.Ch {
		buf := out.Ch[ch]
		for sz := n; sz > 1; sz /= 2 {
			for row := 0; row < sz; row++ {
				t.haar1D(buf[row*n:row*n+sz], sz)
			}
			for c := 0; c < sz; c++ {
				for i := 0; i < sz; i++ {
					col[i] = buf[i*n+c]
				}
				t.haar1D(col, sz)
				for i := 0; i < sz; i++ {
					buf[i*n+c] = col[i]
				}
			}
		}
	}
}

func (t *HaarTransform) DecodeChunk(in, out *Chunk) {
	out.copyFrom(in)
	n := out.Size
	t.ensure(n)
	col := make([]int32, n)
	for ch := range out.Ch {
		buf := out.Ch[ch]
		for sz := 2; sz <= n; sz *= 2 {
			// columns first to mirror the forward ordering
			for c := 0; c < sz; c++ {
				for i := 0; i < sz; i++ {
					col[i] = buf[i*n+c]
				}
				t.invHaar1D(col, sz)
				for i := 0; i < sz; i++ {
					buf[i*n+c] = col[i]
				}
			}
			for row := 0; row < sz; row++ {
				t.invHaar1D(buf[row*n:row*n+sz], sz)
			}
		}
	}
}
