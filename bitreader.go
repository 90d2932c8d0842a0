package spcodec

import (
	"encoding/binary"
	"fmt"
)

// bitReader provides bit-level reading from a byte stream.
// Bits are read in MSB-first order (most significant bit first).
type bitReader struct {
	data   []byte
	pos    int  // byte position
	bitPos uint // bit position within current byte (0-7), reads MSB first
}

// newBitReader creates a new bit reader from the given data.
func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// ReadBit reads a single bit (MSB first order).
// Returns 0 or 1, or ErrTruncatedData at end of stream.
func (r *bitReader) ReadBit() (int, error) {
	if r.pos >= len(r.data) {
		return 0, ErrTruncatedData
	}
	bit := int((r.data[r.pos] >> (7 - r.bitPos)) & 1)
	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.pos++
	}
	return bit, nil
}

// ReadBits reads n bits (n <= 32), MSB first.
func (r *bitReader) ReadBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("spcodec: invalid bit count: %d", n)
	}
	var result uint32
	for range n {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | uint32(bit)
	}
	return result, nil
}

// ReadByte reads 8 bits as a byte.
func (r *bitReader) ReadByte() (byte, error) {
	// Fast path: if byte-aligned, read directly
	if r.bitPos == 0 {
		if r.pos >= len(r.data) {
			return 0, ErrTruncatedData
		}
		b := r.data[r.pos]
		r.pos++
		return b, nil
	}
	bits, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}
	return byte(bits), nil
}

// ReadUint16 reads 16 bits big-endian.
func (r *bitReader) ReadUint16() (uint16, error) {
	if r.bitPos == 0 && r.pos+2 <= len(r.data) {
		val := binary.BigEndian.Uint16(r.data[r.pos:])
		r.pos += 2
		return val, nil
	}
	bits, err := r.ReadBits(16)
	if err != nil {
		return 0, err
	}
	return uint16(bits), nil
}

// ReadUint32 reads 32 bits big-endian.
func (r *bitReader) ReadUint32() (uint32, error) {
	if r.bitPos == 0 && r.pos+4 <= len(r.data) {
		val := binary.BigEndian.Uint32(r.data[r.pos:])
		r.pos += 4
		return val, nil
	}
	return r.ReadBits(32)
}

// ByteAlign aligns to the next byte boundary.
// If already byte-aligned, this is a no-op.
func (r *bitReader) ByteAlign() {
	if r.bitPos != 0 {
		r.bitPos = 0
		r.pos++
	}
}

// Position returns the current byte position.
func (r *bitReader) Position() int {
	return r.pos
}

// Remaining returns bytes remaining from the current position.
// This is approximate if not byte-aligned.
func (r *bitReader) Remaining() int {
	rem := len(r.data) - r.pos
	if rem < 0 {
		return 0
	}
	return rem
}

// Len returns the total length of the data.
func (r *bitReader) Len() int {
	return len(r.data)
}
