package spcodec

import (
	"math/rand"
	"testing"
)

func TestZigzagFlatten_Order4x4(t *testing.T) {
	// Index grid 0..15 in row-major order; the scan visits
	// anti-diagonals alternating up-right and down-left.
	grid := make([]int32, 16)
	for i := range grid {
		grid[i] = int32(i)
	}
	want := []int32{0, 1, 4, 8, 5, 2, 3, 6, 9, 12, 13, 10, 7, 11, 14, 15}
	got := zigzagFlatten(grid, 4)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flat[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestZigzag_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(60))
	for _, size := range []int{1, 2, 4, 8, 16} {
		grid := make([]int32, size*size)
		for i := range grid {
			grid[i] = int32(rng.Intn(1000) - 500)
		}
		back := zigzagUnflatten(zigzagFlatten(grid, size), size)
		for i := range grid {
			if back[i] != grid[i] {
				t.Fatalf("size %d: round trip[%d] = %d, want %d", size, i, back[i], grid[i])
			}
		}
	}
}

func TestLinearPredictor_PerfectLine(t *testing.T) {
	// Points (1,12) (2,24) (3,36) (4,48) lie on y = 12x, so the
	// prediction at x=5 is exactly 60.
	if got := linearPredictor([]int32{12, 24, 36, 48}); got != 60 {
		t.Errorf("linearPredictor = %d, want 60", got)
	}
}

func TestLinearPredictor_Constant(t *testing.T) {
	if got := linearPredictor([]int32{7, 7, 7, 7}); got != 7 {
		t.Errorf("linearPredictor = %d, want 7", got)
	}
}

func TestDPCM_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	tests := []struct {
		name string
		data []int32
		pred int
	}{
		{"short", []int32{5, 9, 1}, 4}, // window larger than data passes through
		{"line", []int32{10, 20, 30, 40, 50, 60, 70}, 4},
		{"window 2", []int32{3, 1, 4, 1, 5, 9, 2, 6}, 2},
	}
	long := make([]int32, 64)
	for i := range long {
		long[i] = int32(rng.Intn(512) - 256)
	}
	tests = append(tests, struct {
		name string
		data []int32
		pred int
	}{"random 64", long, 4})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := dpcmEncode(tt.data, tt.pred)
			dec := dpcmDecode(enc, tt.pred)
			for i := range tt.data {
				if dec[i] != tt.data[i] {
					t.Fatalf("round trip[%d] = %d, want %d", i, dec[i], tt.data[i])
				}
			}
		})
	}
}

func TestDPCM_LineResidualsAreZero(t *testing.T) {
	// A perfectly linear signal predicts exactly, so every residual
	// past the warmup prefix is zero.
	data := []int32{10, 20, 30, 40, 50, 60, 70, 80}
	enc := dpcmEncode(data, 4)
	for i := 4; i < len(enc); i++ {
		if enc[i] != 0 {
			t.Errorf("residual[%d] = %d, want 0", i, enc[i])
		}
	}
}
