package spcodec

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math"
)

// codecMagic opens every encoded stream.
var codecMagic = [4]byte{'S', 'P', 'C', 0x01}

// EncodeOptions controls the pipeline parameters.
type EncodeOptions struct {
	// Transform selects the transform strategy. nil picks the S+P
	// transform with the natural-image lifting parameters.
	Transform Transform

	// Lossless disables quantization and uses the reversible color
	// transform, so decoding reproduces the input exactly. Only the
	// S+P transform supports this mode end to end.
	Lossless bool

	// Quality controls the quantizer scale for lossy mode (0.0 to
	// 1.0]. 1.0 is the finest setting; lower values coarsen every
	// step proportionally. Ignored when Lossless is true.
	Quality float64

	// ChunkSize sets the tile edge length (default: 8). Must be a
	// power of two for the Haar and DFT transforms.
	ChunkSize int

	// PredictionSize sets the DPCM warmup window (default: 4).
	PredictionSize int
}

// Encode runs img through the full pipeline and writes the encoded
// stream to w: tiling, color conversion, transform, quantization,
// entropy coding, Huffman packing.
func Encode(w io.Writer, img image.Image, opts *EncodeOptions) error {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	o := *opts
	if o.ChunkSize <= 0 {
		o.ChunkSize = 8
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = 0.8
	}
	t := o.Transform
	if t == nil {
		sp := NewSPTransform(NaturalImageParams())
		if o.Lossless {
			sp.SetQuantParams(QuantParams{})
		}
		t = sp
	}
	scale := 1.0
	if !o.Lossless {
		scale = 1 / o.Quality
	}

	ci := ChunkImage(img, o.ChunkSize)
	if err := ci.ConvertToYCbCr(o.Lossless); err != nil {
		return err
	}
	coeffs, err := Apply(t, ci)
	if err != nil {
		return err
	}
	quantized, err := Quantize(t, coeffs, scale)
	if err != nil {
		return err
	}
	e, err := EntropyEncode(quantized, o.PredictionSize)
	if err != nil {
		return err
	}
	payload, err := e.Compress()
	if err != nil {
		return err
	}

	var header [13]byte
	copy(header[:4], codecMagic[:])
	if o.Lossless {
		header[4] = 1
	}
	binary.BigEndian.PutUint64(header[5:], math.Float64bits(scale))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// transformForSpace maps a stream's space tag back to the strategy
// that produced it, with default parameters.
func transformForSpace(space Space, lossless bool) (Transform, error) {
	switch space {
	case SpaceSP:
		sp := NewSPTransform(NaturalImageParams())
		if lossless {
			sp.SetQuantParams(QuantParams{})
		}
		return sp, nil
	case SpaceDCT:
		return NewDCTTransform(), nil
	case SpaceHaar:
		return NewHaarTransform(), nil
	case SpaceDFT:
		return NewDFTTransform(), nil
	default:
		return nil, fmt.Errorf("%w: no transform for space %v", ErrCorruptStream, space)
	}
}
