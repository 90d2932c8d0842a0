package spcodec

import (
	"fmt"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
)

// ConvertToYCbCr converts a Raw/RGB collection to YCbCr in place,
// chunk by chunk. With reversible set it uses the integer Reversible
// Color Transform:
//
//	Y  = floor((R + 2G + B) / 4)
//	Cb = B - G
//	Cr = R - G
//
// which round-trips exactly through ConvertToRGB. Otherwise it uses
// the floating-point Irreversible Color Transform with the standard
// coefficients:
//
//	Y  =  0.299   * R + 0.587   * G + 0.114   * B
//	Cb = -0.16875 * R - 0.33126 * G + 0.5     * B
//	Cr =  0.5     * R - 0.41869 * G - 0.08131 * B
//
// which loses up to a rounding unit per sample.
func (ci *ChunkedImage) ConvertToYCbCr(reversible bool) error {
	if ci.Space != SpaceRaw {
		return fmt.Errorf("%w: color conversion needs %v input, got %v", ErrWrongSpace, SpaceRaw, ci.Space)
	}
	if ci.Color != ColorRGB {
		return fmt.Errorf("%w: got %v, want %v", ErrWrongColor, ci.Color, ColorRGB)
	}
	if reversible {
		ci.eachChunkRCT(hwyimage.ForwardRCT)
	} else {
		ci.eachChunkICT(hwyimage.ForwardICT)
	}
	ci.Color = ColorYCbCr
	return nil
}

// ConvertToRGB converts a Raw/YCbCr collection back to RGB in place.
// reversible must match the value passed to ConvertToYCbCr.
func (ci *ChunkedImage) ConvertToRGB(reversible bool) error {
	if ci.Space != SpaceRaw {
		return fmt.Errorf("%w: color conversion needs %v input, got %v", ErrWrongSpace, SpaceRaw, ci.Space)
	}
	if ci.Color != ColorYCbCr {
		return fmt.Errorf("%w: got %v, want %v", ErrWrongColor, ci.Color, ColorYCbCr)
	}
	if reversible {
		ci.eachChunkRCT(hwyimage.InverseRCT)
	} else {
		ci.eachChunkICT(hwyimage.InverseICT)
	}
	ci.Color = ColorRGB
	return nil
}

// eachChunkRCT runs an integer three-plane color kernel over every
// chunk using pooled SIMD images.
func (ci *ChunkedImage) eachChunkRCT(kernel func(c0, c1, c2, o0, o1, o2 *hwyimage.Image[int32])) {
	n := ci.ChunkSize
	buf := getInt32Buf(n, n)
	defer putInt32Buf(buf)
	for i := range ci.Chunks {
		c := &ci.Chunks[i]
		for ch := range c.Ch {
			flatToImageInPlace(c.Ch[ch], n, n, buf.imgs[ch])
		}
		kernel(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])
		for ch := range c.Ch {
			imageToFlatInPlace(buf.imgs[3+ch], c.Ch[ch], n, n)
		}
	}
}

// eachChunkICT is the float64 counterpart, widening each channel on
// the way in and rounding on the way out.
func (ci *ChunkedImage) eachChunkICT(kernel func(c0, c1, c2, o0, o1, o2 *hwyimage.Image[float64])) {
	n := ci.ChunkSize
	buf := getFloat64Buf(n, n)
	defer putFloat64Buf(buf)
	for i := range ci.Chunks {
		c := &ci.Chunks[i]
		for ch := range c.Ch {
			chunkToFloatImage(c.Ch[ch], n, n, buf.imgs[ch])
		}
		kernel(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])
		for ch := range c.Ch {
			floatImageToChunk(buf.imgs[3+ch], c.Ch[ch], n, n)
		}
	}
}
