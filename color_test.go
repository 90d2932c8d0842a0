package spcodec

import (
	"errors"
	"testing"
)

func TestConvertColor_RCTRoundTrip(t *testing.T) {
	ci := randomRawImage(t, 16, 16, 8, 20)
	orig := ci.freshCopy(SpaceRaw)
	for i := range ci.Chunks {
		orig.Chunks[i].copyFrom(&ci.Chunks[i])
	}

	if err := ci.ConvertToYCbCr(true); err != nil {
		t.Fatalf("ConvertToYCbCr: %v", err)
	}
	if ci.Color != ColorYCbCr {
		t.Fatalf("color tag = %v, want YCbCr", ci.Color)
	}
	if err := ci.ConvertToRGB(true); err != nil {
		t.Fatalf("ConvertToRGB: %v", err)
	}
	if !chunksEqual(ci, orig) {
		t.Error("reversible color transform did not round-trip exactly")
	}
}

func TestConvertColor_ICTWithinTolerance(t *testing.T) {
	ci := randomRawImage(t, 16, 16, 8, 21)
	orig := ci.freshCopy(SpaceRaw)
	for i := range ci.Chunks {
		orig.Chunks[i].copyFrom(&ci.Chunks[i])
	}

	if err := ci.ConvertToYCbCr(false); err != nil {
		t.Fatalf("ConvertToYCbCr: %v", err)
	}
	if err := ci.ConvertToRGB(false); err != nil {
		t.Fatalf("ConvertToRGB: %v", err)
	}
	for i := range ci.Chunks {
		for ch := range ci.Chunks[i].Ch {
			for j := range ci.Chunks[i].Ch[ch] {
				d := abs32(ci.Chunks[i].Ch[ch][j] - orig.Chunks[i].Ch[ch][j])
				if d > 3 {
					t.Fatalf("chunk %d ch %d sample %d drifted by %d, want <= 3", i, ch, j, d)
				}
			}
		}
	}
}

func TestConvertColor_GrayIsLuma(t *testing.T) {
	// For R=G=B the reversible transform yields Y=R, Cb=Cr=0.
	ci := NewChunkedImage(4, 4, SpaceRaw, ColorRGB, 4)
	for ch := range ci.Chunks[0].Ch {
		for j := range ci.Chunks[0].Ch[ch] {
			ci.Chunks[0].Ch[ch][j] = 99
		}
	}
	if err := ci.ConvertToYCbCr(true); err != nil {
		t.Fatalf("ConvertToYCbCr: %v", err)
	}
	c := &ci.Chunks[0]
	for j := range c.Ch[0] {
		if c.Ch[0][j] != 99 {
			t.Fatalf("Y[%d] = %d, want 99", j, c.Ch[0][j])
		}
		if c.Ch[1][j] != 0 || c.Ch[2][j] != 0 {
			t.Fatalf("chroma[%d] = (%d, %d), want (0, 0)", j, c.Ch[1][j], c.Ch[2][j])
		}
	}
}

func TestConvertColor_WrongTags(t *testing.T) {
	ci := NewChunkedImage(8, 8, SpaceDCT, ColorRGB, 8)
	if err := ci.ConvertToYCbCr(true); !errors.Is(err, ErrWrongSpace) {
		t.Errorf("ConvertToYCbCr on DCT space: err = %v, want ErrWrongSpace", err)
	}
	ci = NewChunkedImage(8, 8, SpaceRaw, ColorYCbCr, 8)
	if err := ci.ConvertToYCbCr(true); !errors.Is(err, ErrWrongColor) {
		t.Errorf("ConvertToYCbCr on YCbCr input: err = %v, want ErrWrongColor", err)
	}
	ci = NewChunkedImage(8, 8, SpaceRaw, ColorRGB, 8)
	if err := ci.ConvertToRGB(true); !errors.Is(err, ErrWrongColor) {
		t.Errorf("ConvertToRGB on RGB input: err = %v, want ErrWrongColor", err)
	}
}
