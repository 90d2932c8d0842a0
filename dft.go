package spcodec

import "math"

// DFTTransform applies a 2-D discrete Fourier transform to channel 0
// of each chunk via a radix-2 FFT over rows then columns, with samples
// centered at 128. The real part of each coefficient lands in channel
// 0 and the imaginary part in channel 1, so the decode path can run
// the exact inverse FFT. Chunk sizes must be a power of two.
type DFTTransform struct {
	flatQuantizer
	scratch []complex128
}

// NewDFTTransform returns a Fourier strategy using the shared flat
// quantizer with a neutral matrix.
func NewDFTTransform() *DFTTransform {
	t := &DFTTransform{}
	t.flatQuantizer.m = t
	return t
}

func (t *DFTTransform) Space() Space { return SpaceDFT }

func (t *DFTTransform) quantMatrix(size int) []int32 { return onesMatrix(size) }

func bitReverse(num, bits int) int {
	res := 0
	for i := 0; i < bits; i++ {
		if num&(1<<i) != 0 {
			res |= 1 << (bits - 1 - i)
		}
	}
	return res
}

// fft runs the in-place radix-2 transform. Both directions divide by
// sqrt(n) so forward followed by inverse is the identity.
func fft(data []complex128, invert bool) {
	n := len(data)
	if n == 1 {
		return
	}
	bits := 0
	for 1<<bits < n {
		bits++
	}
	for i := 0; i < n; i++ {
		if j := bitReverse(i, bits); i < j {
			data[i], data[j] = data[j], data[i]
		}
	}
	for k := 2; k <= n; k <<= 1 {
		theta := 2 * math.Pi / float64(k)
		if invert {
			theta = -theta
		}
		w := complex(math.Cos(theta), math.Sin(theta))
		for i := 0; i < n; i += k {
			wn := complex(1, 0)
			for j := 0; j < k/2; j++ {
				u, v := data[i+j], data[i+j+k/2]*wn
				data[i+j] = u + v
				data[i+j+k/2] = u - v
				wn *= w
			}
		}
	}
	inv := complex(1/math.Sqrt(float64(n)), 0)
	for i := range data {
		data[i] *= inv
	}
}

func (t *DFTTransform) ensure(n int) {
	if cap(t.scratch) < n*n+n {
		t.scratch = make([]complex128, n*n+n)
	}
	t.scratch = t.scratch[:n*n+n]
}

// fft2D transforms the n x n grid held in t.scratch[:n*n] in place,
// rows first then columns, using the trailing n entries as a column
// buffer.
func (t *DFTTransform) fft2D(n int, invert bool) {
	grid := t.scratch[:n*n]
	col := t.scratch[n*n : n*n+n]
	for row := 0; row < n; row++ {
		fft(grid[row*n:(row+1)*n], invert)
	}
	for c := 0; c < n; c++ {
		for i := 0; i < n; i++ {
			col[i] = grid[i*n+c]
		}
		fft(col, invert)
		for i := 0; i < n; i++ {
			grid[i*n+c] = col[i]
		}
	}
}

func (t *DFTTransform) EncodeChunk(in, out *Chunk) {
	n := in.Size
	t.ensure(n)
	grid := t.scratch[:n*n]
	for i, v := range in.Ch[0] {
		grid[i] = complex(float64(v)-128, 0)
	}
	t.fft2D(n, false)
	for i, c := range grid {
		out.Ch[0][i] = int32(math.Round(real(c)))
		out.Ch[1][i] = int32(math.Round(imag(c)))
		out.Ch[2][i] = 0
	}
}

func (t *DFTTransform) DecodeChunk(in, out *Chunk) {
	n := in.Size
	t.ensure(n)
	grid := t.scratch[:n*n]
	for i := range in.Ch[0] {
		grid[i] = complex(float64(in.Ch[0][i]), float64(in.Ch[1][i]))
	}
	t.fft2D(n, true)
	for i, c := range grid {
		out.Ch[0][i] = int32(math.Round(real(c))) + 128
		out.Ch[1][i] = 0
		out.Ch[2][i] = 0
	}
}
