package spcodec

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestHuffman_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(70))
	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 2048)
	for i := range skewed {
		if rng.Intn(10) < 8 {
			skewed[i] = 0
		} else {
			skewed[i] = byte(rng.Intn(256))
		}
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"two symbols", []byte{0, 1, 0, 0, 1}},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"random", random},
		{"skewed", skewed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := huffmanEncode(tt.data)
			if err != nil {
				t.Fatalf("huffmanEncode: %v", err)
			}
			dec, err := huffmanDecode(enc)
			if err != nil {
				t.Fatalf("huffmanDecode: %v", err)
			}
			if !bytes.Equal(dec, tt.data) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestHuffman_SkewedInputCompresses(t *testing.T) {
	data := bytes.Repeat([]byte{'a', 'a', 'a', 'a', 'a', 'a', 'a', 'b'}, 512)
	enc, err := huffmanEncode(data)
	if err != nil {
		t.Fatalf("huffmanEncode: %v", err)
	}
	if len(enc) >= len(data) {
		t.Errorf("encoded %d bytes from %d, want smaller", len(enc), len(data))
	}
}

func TestHuffman_DegenerateInputs(t *testing.T) {
	if _, err := huffmanEncode(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: err = %v, want ErrEmptyInput", err)
	}
	if _, err := huffmanEncode(bytes.Repeat([]byte{'x'}, 100)); !errors.Is(err, ErrSingleSymbol) {
		t.Errorf("single symbol: err = %v, want ErrSingleSymbol", err)
	}
}

func TestHuffman_Truncated(t *testing.T) {
	enc, err := huffmanEncode([]byte("hello world"))
	if err != nil {
		t.Fatalf("huffmanEncode: %v", err)
	}
	if _, err := huffmanDecode(enc[:len(enc)-2]); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("truncated stream: err = %v, want ErrTruncatedData", err)
	}
	if _, err := huffmanDecode(nil); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("empty stream: err = %v, want ErrTruncatedData", err)
	}
}

func TestHuffman_InflatedCountHeader(t *testing.T) {
	enc, err := huffmanEncode([]byte("hello world"))
	if err != nil {
		t.Fatalf("huffmanEncode: %v", err)
	}
	// The count header promises more symbols than the payload can hold.
	for i := 0; i < 4; i++ {
		enc[i] = 0xFF
	}
	if _, err := huffmanDecode(enc); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("inflated count: err = %v, want ErrTruncatedData", err)
	}
}
