package spcodec

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"
)

// Decode reverses Encode: unpack, entropy decode, dequantize, inverse
// transform, color conversion, reassembly. Streams encoded with a
// custom Transform decode with that transform's default parameters.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 13 {
		return nil, ErrTruncatedData
	}
	if [4]byte(data[:4]) != codecMagic {
		return nil, ErrCorruptStream
	}
	lossless := data[4] == 1
	scale := math.Float64frombits(binary.BigEndian.Uint64(data[5:13]))

	e, err := Decompress(data[13:])
	if err != nil {
		return nil, err
	}
	quantized, err := EntropyDecode(e)
	if err != nil {
		return nil, err
	}
	t, err := transformForSpace(quantized.Space, lossless)
	if err != nil {
		return nil, err
	}
	coeffs, err := Dequantize(t, quantized, scale)
	if err != nil {
		return nil, err
	}
	ci, err := ApplyInverse(t, coeffs)
	if err != nil {
		return nil, err
	}
	if err := ci.ConvertToRGB(lossless); err != nil {
		return nil, err
	}
	return ci.ToImage()
}

// DecodeConfig returns the image dimensions without running the
// inverse pipeline.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	if len(data) < 13 {
		return image.Config{}, ErrTruncatedData
	}
	if [4]byte(data[:4]) != codecMagic {
		return image.Config{}, ErrCorruptStream
	}
	e, err := Decompress(data[13:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      e.Cols,
		Height:     e.Rows,
	}, nil
}

func init() {
	image.RegisterFormat("spc", string(codecMagic[:]), Decode, DecodeConfig)
}
