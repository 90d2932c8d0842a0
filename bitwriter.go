package spcodec

// bitWriter provides bit-level writing to a byte buffer.
// Bits are written in MSB-first order (most significant bit first).
type bitWriter struct {
	buf     []byte // completed bytes
	curByte byte   // current byte being assembled
	bitPos  uint   // number of bits written in current byte (0-7)
}

// newBitWriter creates a new bit writer.
func newBitWriter() *bitWriter {
	return &bitWriter{}
}

// WriteBit writes a single bit (0 or 1), MSB first.
func (w *bitWriter) WriteBit(bit int) {
	if bit != 0 {
		w.curByte |= 1 << (7 - w.bitPos)
	}
	w.bitPos++
	if w.bitPos == 8 {
		w.buf = append(w.buf, w.curByte)
		w.curByte = 0
		w.bitPos = 0
	}
}

// WriteBits writes n bits from val (MSB first, n <= 32).
func (w *bitWriter) WriteBits(val uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(int((val >> uint(i)) & 1))
	}
}

// WriteByte writes 8 bits from b.
func (w *bitWriter) WriteByte(b byte) error {
	w.WriteBits(uint32(b), 8)
	return nil
}

// ByteAlign pads with zero bits to reach the next byte boundary.
// If already byte-aligned, this is a no-op.
func (w *bitWriter) ByteAlign() {
	for w.bitPos != 0 {
		w.WriteBit(0)
	}
}

// Flush pads any partial byte with zeros and returns the encoded
// bytes. Returns a copy of the internal buffer.
func (w *bitWriter) Flush() []byte {
	w.ByteAlign()
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Len returns the current length in bytes, including any partial byte
// that has not yet been flushed.
func (w *bitWriter) Len() int {
	n := len(w.buf)
	if w.bitPos > 0 {
		n++
	}
	return n
}

// BitLen returns the exact number of bits written so far.
func (w *bitWriter) BitLen() int {
	return len(w.buf)*8 + int(w.bitPos)
}

// Reset resets the writer for reuse, clearing all internal state.
func (w *bitWriter) Reset() {
	w.buf = w.buf[:0]
	w.curByte = 0
	w.bitPos = 0
}
