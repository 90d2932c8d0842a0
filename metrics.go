package spcodec

import (
	"fmt"
	"math"
)

// MSE computes the mean squared error between two Raw chunk
// collections over the true pixel area, averaged across the three
// channels. Edge padding is excluded.
func MSE(a, b *ChunkedImage) (float64, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols || a.ChunkSize != b.ChunkSize {
		return 0, fmt.Errorf("spcodec: MSE: geometry differs (%dx%d/%d vs %dx%d/%d)",
			a.Rows, a.Cols, a.ChunkSize, b.Rows, b.Cols, b.ChunkSize)
	}
	if a.Space != SpaceRaw || b.Space != SpaceRaw {
		return 0, fmt.Errorf("%w: MSE needs %v inputs, got %v and %v", ErrWrongSpace, SpaceRaw, a.Space, b.Space)
	}
	size := a.ChunkSize
	var acc float64
	for y := 0; y < a.Rows; y++ {
		for x := 0; x < a.Cols; x++ {
			ca := a.Chunk(y/size, x/size)
			cb := b.Chunk(y/size, x/size)
			for ch := 0; ch < 3; ch++ {
				d := float64(ca.At(ch, y%size, x%size) - cb.At(ch, y%size, x%size))
				acc += d * d
			}
		}
	}
	return acc / (3 * float64(a.Rows) * float64(a.Cols)), nil
}

// PSNRFromMSE converts an MSE to peak signal-to-noise ratio in dB
// against the given peak value. A zero MSE reports +Inf.
func PSNRFromMSE(mse, maxVal float64) float64 {
	if mse <= 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(maxVal*maxVal/mse)
}

// PSNR computes the peak signal-to-noise ratio between two Raw
// collections with an 8-bit peak.
func PSNR(a, b *ChunkedImage) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	return PSNRFromMSE(mse, 255), nil
}

// BitsPerPixel reports the coded size in bits per source pixel.
func BitsPerPixel(encodedBytes, rows, cols int) float64 {
	return float64(encodedBytes) * 8 / (float64(rows) * float64(cols))
}
