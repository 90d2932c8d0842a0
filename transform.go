package spcodec

import (
	"fmt"
	"math"
)

// Space is the data-space tag carried by every chunk collection. Apply
// only accepts SpaceRaw input and ApplyInverse only accepts the
// transform's own output space; mismatches indicate a pipeline-ordering
// bug upstream, not a data error.
type Space int

const (
	SpaceRaw  Space = iota // untransformed samples
	SpaceDCT               // separable cosine transform coefficients
	SpaceDFT               // Fourier transform coefficients (real part)
	SpaceHaar              // Haar wavelet coefficients
	SpaceSP                // S+P integer wavelet coefficients
)

func (s Space) String() string {
	switch s {
	case SpaceRaw:
		return "Raw"
	case SpaceDCT:
		return "DCT"
	case SpaceDFT:
		return "DFT"
	case SpaceHaar:
		return "Haar"
	case SpaceSP:
		return "SP"
	default:
		return "Unknown"
	}
}

// Transform is the capability contract shared by every transform
// strategy in the pipeline. The chunk methods operate on a single tile;
// output chunks are preallocated by the package-level drivers. All four
// are pure over their tiles, but implementations may keep reusable
// scratch, so one Transform instance must not be shared across
// goroutines without external synchronization.
type Transform interface {
	// Space is the data-space tag this transform's encode produces.
	Space() Space

	EncodeChunk(in, out *Chunk)
	DecodeChunk(in, out *Chunk)

	// QuantizeChunk and DequantizeChunk map between coefficient tiles
	// and quantized tiles. scale coarsens (>1) or refines (<1) the
	// configured step sizes globally.
	QuantizeChunk(in, out *Chunk, scale float64)
	DequantizeChunk(in, out *Chunk, scale float64)
}

// Apply runs t's forward transform over every chunk of ci and returns a
// freshly tagged result. The input must be in Raw space.
func Apply(t Transform, ci *ChunkedImage) (*ChunkedImage, error) {
	if ci.Space != SpaceRaw {
		return nil, fmt.Errorf("%w: encode needs %v input, got %v", ErrWrongSpace, SpaceRaw, ci.Space)
	}
	out := ci.freshCopy(t.Space())
	for i := range ci.Chunks {
		t.EncodeChunk(&ci.Chunks[i], &out.Chunks[i])
	}
	return out, nil
}

// ApplyInverse runs t's inverse transform over every chunk of ci. The
// input must be in t's own output space; the result is tagged Raw.
func ApplyInverse(t Transform, ci *ChunkedImage) (*ChunkedImage, error) {
	if ci.Space != t.Space() {
		return nil, fmt.Errorf("%w: decode needs %v input, got %v", ErrWrongSpace, t.Space(), ci.Space)
	}
	out := ci.freshCopy(SpaceRaw)
	for i := range ci.Chunks {
		t.DecodeChunk(&ci.Chunks[i], &out.Chunks[i])
	}
	return out, nil
}

// Quantize quantizes a coefficient collection produced by t. The space
// tag is preserved on the result.
func Quantize(t Transform, ci *ChunkedImage, scale float64) (*ChunkedImage, error) {
	if ci.Space != t.Space() {
		return nil, fmt.Errorf("%w: quantize needs %v input, got %v", ErrWrongSpace, t.Space(), ci.Space)
	}
	out := ci.freshCopy(ci.Space)
	for i := range ci.Chunks {
		t.QuantizeChunk(&ci.Chunks[i], &out.Chunks[i], scale)
	}
	return out, nil
}

// Dequantize reconstructs representative coefficient values from a
// quantized collection produced by t.
func Dequantize(t Transform, ci *ChunkedImage, scale float64) (*ChunkedImage, error) {
	if ci.Space != t.Space() {
		return nil, fmt.Errorf("%w: dequantize needs %v input, got %v", ErrWrongSpace, t.Space(), ci.Space)
	}
	out := ci.freshCopy(ci.Space)
	for i := range ci.Chunks {
		t.DequantizeChunk(&ci.Chunks[i], &out.Chunks[i], scale)
	}
	return out, nil
}

// quantMatrixer supplies the per-coefficient step matrix for transforms
// that rely on the shared flat quantizer.
type quantMatrixer interface {
	quantMatrix(size int) []int32
}

// flatQuantizer is the default JPEG-style quantizer: every coefficient
// divides by its matrix entry times the global scale. Transforms that
// need subband awareness (S+P) replace it wholesale; others may only
// override the matrix (Haar).
type flatQuantizer struct {
	m quantMatrixer
}

func (f flatQuantizer) QuantizeChunk(in, out *Chunk, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	matrix := f.m.quantMatrix(in.Size)
	for ch := range in.Ch {
		for i, v := range in.Ch[ch] {
			out.Ch[ch][i] = int32(math.Round(float64(v) / (float64(matrix[i]) * scale)))
		}
	}
}

func (f flatQuantizer) DequantizeChunk(in, out *Chunk, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	matrix := f.m.quantMatrix(in.Size)
	for ch := range in.Ch {
		for i, q := range in.Ch[ch] {
			out.Ch[ch][i] = int32(math.Round(float64(q) * float64(matrix[i]) * scale))
		}
	}
}

// onesMatrix is the neutral flat matrix (uniform step 1).
func onesMatrix(size int) []int32 {
	m := make([]int32, size*size)
	for i := range m {
		m[i] = 1
	}
	return m
}
