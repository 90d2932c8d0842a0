package spcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

// gradientImage builds a smooth RGBA test image.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x*4 + y) % 256),
				G: uint8((x + y*3) % 256),
				B: uint8((x*2 + y*2) % 256),
				A: 0xFF,
			})
		}
	}
	return img
}

// grayGradientImage builds a smooth grayscale RGBA test image.
func grayGradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*3 + y*2) % 256)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
	return img
}

func decodedPSNR(t *testing.T, src image.Image, dec image.Image) float64 {
	t.Helper()
	a := ChunkImage(src, 8)
	b := ChunkImage(dec, 8)
	psnr, err := PSNR(a, b)
	if err != nil {
		t.Fatalf("PSNR: %v", err)
	}
	return psnr
}

func TestEncodeDecode_Lossless(t *testing.T) {
	// 21x13 exercises edge padding on both axes.
	src := gradientImage(21, 13)
	var buf bytes.Buffer
	if err := Encode(&buf, src, &EncodeOptions{Lossless: true}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := dec.Bounds(); got.Dx() != 21 || got.Dy() != 13 {
		t.Fatalf("decoded bounds = %v, want 21x13", got)
	}
	for y := 0; y < 13; y++ {
		for x := 0; x < 21; x++ {
			if want, got := src.RGBAAt(x, y), dec.(*image.RGBA).RGBAAt(x, y); want != got {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEncodeDecode_LossyFidelity(t *testing.T) {
	src := gradientImage(32, 32)
	var buf bytes.Buffer
	if err := Encode(&buf, src, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := dec.Bounds(); got.Dx() != 32 || got.Dy() != 32 {
		t.Fatalf("decoded bounds = %v, want 32x32", got)
	}
	if psnr := decodedPSNR(t, src, dec); psnr < 25 {
		t.Errorf("PSNR = %.1f dB, want >= 25", psnr)
	}
}

func TestEncodeDecode_TransformVariants(t *testing.T) {
	// Grayscale input so the luma-only DFT path stays comparable.
	src := grayGradientImage(16, 16)
	tests := []struct {
		name    string
		tr      Transform
		minPSNR float64
	}{
		{"dct", NewDCTTransform(), 25},
		{"haar", NewHaarTransform(), 25},
		{"dft", NewDFTTransform(), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := &EncodeOptions{Transform: tt.tr, Quality: 1.0}
			if err := Encode(&buf, src, opts); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			dec, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if psnr := decodedPSNR(t, src, dec); psnr < tt.minPSNR {
				t.Errorf("PSNR = %.1f dB, want >= %.0f", psnr, tt.minPSNR)
			}
		})
	}
}

func TestEncode_QualityTradesRate(t *testing.T) {
	src := gradientImage(32, 32)
	var hi, lo bytes.Buffer
	if err := Encode(&hi, src, &EncodeOptions{Quality: 1.0}); err != nil {
		t.Fatalf("Encode quality 1.0: %v", err)
	}
	if err := Encode(&lo, src, &EncodeOptions{Quality: 0.2}); err != nil {
		t.Fatalf("Encode quality 0.2: %v", err)
	}
	if lo.Len() >= hi.Len() {
		t.Errorf("quality 0.2 wrote %d bytes, quality 1.0 wrote %d; want smaller", lo.Len(), hi.Len())
	}
}

func TestDecodeConfig(t *testing.T) {
	src := gradientImage(17, 24)
	var buf bytes.Buffer
	if err := Encode(&buf, src, &EncodeOptions{Lossless: true}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	cfg, err := DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 17 || cfg.Height != 24 {
		t.Errorf("config = %dx%d, want 17x24", cfg.Width, cfg.Height)
	}
}

func TestDecode_RegisteredFormat(t *testing.T) {
	src := gradientImage(16, 16)
	var buf bytes.Buffer
	if err := Encode(&buf, src, &EncodeOptions{Lossless: true}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "spc" {
		t.Errorf("format = %q, want %q", format, "spc")
	}
	if got := img.Bounds(); got.Dx() != 16 || got.Dy() != 16 {
		t.Errorf("bounds = %v, want 16x16", got)
	}
}

func TestDecode_BadStreams(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{1, 2, 3})); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("short stream: err = %v, want ErrTruncatedData", err)
	}
	bad := make([]byte, 20)
	copy(bad, "JUNK")
	if _, err := Decode(bytes.NewReader(bad)); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("bad magic: err = %v, want ErrCorruptStream", err)
	}
}
