package spcodec

import (
	"math"
	"math/rand"
	"testing"
)

func TestFFT_InverseIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(50))
	for _, n := range []int{1, 2, 4, 8, 16, 64} {
		data := make([]complex128, n)
		orig := make([]complex128, n)
		for i := range data {
			data[i] = complex(rng.Float64()*200-100, rng.Float64()*200-100)
			orig[i] = data[i]
		}
		fft(data, false)
		fft(data, true)
		for i := range data {
			if math.Abs(real(data[i])-real(orig[i])) > 1e-9 ||
				math.Abs(imag(data[i])-imag(orig[i])) > 1e-9 {
				t.Fatalf("n=%d: round trip[%d] = %v, want %v", n, i, data[i], orig[i])
			}
		}
	}
}

func TestFFT_ParsevalScaling(t *testing.T) {
	// With the symmetric 1/sqrt(n) convention the transform preserves
	// the signal's energy.
	data := []complex128{1, 2, 3, 4, 5, 6, 7, 8}
	var before float64
	for _, v := range data {
		before += real(v)*real(v) + imag(v)*imag(v)
	}
	fft(data, false)
	var after float64
	for _, v := range data {
		after += real(v)*real(v) + imag(v)*imag(v)
	}
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("energy changed from %v to %v", before, after)
	}
}

func TestBitReverse(t *testing.T) {
	tests := []struct {
		num, bits, want int
	}{
		{0, 3, 0},
		{1, 3, 4},
		{2, 3, 2},
		{3, 3, 6},
		{5, 3, 5},
		{1, 4, 8},
	}
	for _, tt := range tests {
		if got := bitReverse(tt.num, tt.bits); got != tt.want {
			t.Errorf("bitReverse(%d, %d) = %d, want %d", tt.num, tt.bits, got, tt.want)
		}
	}
}

func TestDFT_ConstantChunkRoundTrip(t *testing.T) {
	// A constant tile has a purely real spectrum with a single DC
	// coefficient, so integer storage loses nothing.
	d := NewDFTTransform()
	in := NewChunk(8)
	coeffs := NewChunk(8)
	out := NewChunk(8)
	for i := range in.Ch[0] {
		in.Ch[0][i] = 200
	}
	d.EncodeChunk(&in, &coeffs)
	if got := coeffs.Ch[0][0]; got != 8*(200-128) {
		t.Errorf("DC = %d, want %d", got, 8*(200-128))
	}
	d.DecodeChunk(&coeffs, &out)
	for i := range out.Ch[0] {
		if out.Ch[0][i] != 200 {
			t.Fatalf("sample %d = %d, want 200", i, out.Ch[0][i])
		}
	}
}

func TestDFT_RoundTripWithinTolerance(t *testing.T) {
	// Coefficients are rounded to integers on both the real and the
	// imaginary channel, so reconstruction carries a small error.
	d := NewDFTTransform()
	rng := rand.New(rand.NewSource(51))
	in := NewChunk(8)
	coeffs := NewChunk(8)
	out := NewChunk(8)
	for i := range in.Ch[0] {
		in.Ch[0][i] = int32(rng.Intn(256))
	}
	d.EncodeChunk(&in, &coeffs)
	d.DecodeChunk(&coeffs, &out)
	for i := range out.Ch[0] {
		if diff := abs32(out.Ch[0][i] - in.Ch[0][i]); diff > 6 {
			t.Fatalf("sample %d drifted by %d, want <= 6", i, diff)
		}
	}
}
