package spcodec

import (
	"errors"
	"fmt"
)

// defaultPredictionSize is the DPCM warmup window used when the caller
// passes a non-positive size.
const defaultPredictionSize = 4

// EntropyEncoded is the entropy-coded form of a transformed chunk
// collection. Per channel it carries the DPCM residuals of the DC
// coefficients (one per chunk, in chunk order) and the run-length
// pairs of the zig-zag AC coefficients, concatenated chunk by chunk.
type EntropyEncoded struct {
	Rows, Cols     int
	ChunkSize      int
	Space          Space
	Color          ColorSpace
	PredictionSize int

	DC [3][]int32
	AC [3][]rlePair
}

// EntropyEncode entropy-codes a transformed collection. The DC
// coefficient of each chunk is predicted across chunks by DPCM; the
// remaining coefficients are zig-zag scanned and run-length encoded
// per chunk. predictionSize <= 0 selects the default warmup window.
func EntropyEncode(ci *ChunkedImage, predictionSize int) (*EntropyEncoded, error) {
	if ci.Space == SpaceRaw {
		return nil, fmt.Errorf("%w: entropy coding needs transformed input, got %v", ErrWrongSpace, ci.Space)
	}
	if predictionSize <= 0 {
		predictionSize = defaultPredictionSize
	}
	e := &EntropyEncoded{
		Rows:           ci.Rows,
		Cols:           ci.Cols,
		ChunkSize:      ci.ChunkSize,
		Space:          ci.Space,
		Color:          ci.Color,
		PredictionSize: predictionSize,
	}
	n := ci.ChunkSize
	for ch := 0; ch < 3; ch++ {
		dc := make([]int32, len(ci.Chunks))
		for i := range ci.Chunks {
			dc[i] = ci.Chunks[i].Ch[ch][0]
		}
		e.DC[ch] = dpcmEncode(dc, predictionSize)
		for i := range ci.Chunks {
			flat := zigzagFlatten(ci.Chunks[i].Ch[ch], n)
			e.AC[ch] = append(e.AC[ch], rleEncode(flat[1:])...)
		}
	}
	return e, nil
}

// EntropyDecode reconstructs the transformed collection. Chunk
// boundaries in the AC stream are implicit: each chunk consumes whole
// pairs until its coefficient count is filled.
//
// Geometry and stream lengths are cross-checked before any chunk
// storage is allocated, so a corrupt header cannot demand allocations
// out of proportion to the coded data it arrived with.
func EntropyDecode(e *EntropyEncoded) (*ChunkedImage, error) {
	n := e.ChunkSize
	if n <= 0 || e.Rows <= 0 || e.Cols <= 0 {
		return nil, fmt.Errorf("%w: bad geometry %dx%d, chunk size %d", ErrCorruptStream, e.Rows, e.Cols, n)
	}
	nChunks := ((e.Rows + n - 1) / n) * ((e.Cols + n - 1) / n)
	acLen := n*n - 1
	// Each run pair yields at most rleMaxRun+1 coefficients, so a chunk
	// needs at least this many pairs to fill.
	minPairs := nChunks * ((acLen + rleMaxRun) / (rleMaxRun + 1))
	for ch := 0; ch < 3; ch++ {
		if len(e.DC[ch]) != nChunks {
			return nil, fmt.Errorf("%w: %d DC residuals for %d chunks", ErrCorruptStream, len(e.DC[ch]), nChunks)
		}
		if len(e.AC[ch]) < minPairs {
			return nil, ErrTruncatedData
		}
	}
	ci := NewChunkedImage(e.Rows, e.Cols, e.Space, e.Color, n)
	for ch := 0; ch < 3; ch++ {
		dc := dpcmDecode(e.DC[ch], e.PredictionSize)
		pairs := e.AC[ch]
		for i := range ci.Chunks {
			flat, used, err := rleDecode(pairs, acLen)
			if err != nil {
				return nil, err
			}
			pairs = pairs[used:]
			full := make([]int32, 0, n*n)
			full = append(full, dc[i])
			full = append(full, flat...)
			copy(ci.Chunks[i].Ch[ch], zigzagUnflatten(full, n))
		}
	}
	return ci, nil
}

// MarshalBinary serializes the entropy-coded stream. The header and
// the DC residuals are byte-aligned; run pairs pack a 4-bit zero count
// with a 32-bit value, re-aligning at each channel boundary.
func (e *EntropyEncoded) MarshalBinary() ([]byte, error) {
	w := newBitWriter()
	w.WriteBits(uint32(e.Rows), 32)
	w.WriteBits(uint32(e.Cols), 32)
	w.WriteBits(uint32(e.ChunkSize), 16)
	w.WriteByte(byte(e.Space))
	w.WriteByte(byte(e.Color))
	w.WriteByte(byte(e.PredictionSize))
	for ch := 0; ch < 3; ch++ {
		w.WriteBits(uint32(len(e.DC[ch])), 32)
		for _, v := range e.DC[ch] {
			w.WriteBits(uint32(v), 32)
		}
		w.WriteBits(uint32(len(e.AC[ch])), 32)
		for _, p := range e.AC[ch] {
			w.WriteBits(uint32(p.Zeros), 4)
			w.WriteBits(uint32(p.Value), 32)
		}
		w.ByteAlign()
	}
	return w.Flush(), nil
}

// UnmarshalBinary parses a stream produced by MarshalBinary.
func (e *EntropyEncoded) UnmarshalBinary(data []byte) error {
	r := newBitReader(data)
	rows, err := r.ReadUint32()
	if err != nil {
		return err
	}
	cols, err := r.ReadUint32()
	if err != nil {
		return err
	}
	chunkSize, err := r.ReadUint16()
	if err != nil {
		return err
	}
	space, err := r.ReadByte()
	if err != nil {
		return err
	}
	colorTag, err := r.ReadByte()
	if err != nil {
		return err
	}
	predSize, err := r.ReadByte()
	if err != nil {
		return err
	}
	if chunkSize == 0 {
		return fmt.Errorf("%w: zero chunk size", ErrCorruptStream)
	}
	e.Rows = int(rows)
	e.Cols = int(cols)
	e.ChunkSize = int(chunkSize)
	e.Space = Space(space)
	e.Color = ColorSpace(colorTag)
	e.PredictionSize = int(predSize)
	for ch := 0; ch < 3; ch++ {
		nDC, err := r.ReadUint32()
		if err != nil {
			return err
		}
		// 4 bytes per residual still have to be present in the stream.
		if int(nDC) > r.Remaining()/4 {
			return ErrTruncatedData
		}
		dc := make([]int32, nDC)
		for i := range dc {
			v, err := r.ReadUint32()
			if err != nil {
				return err
			}
			dc[i] = int32(v)
		}
		e.DC[ch] = dc
		nAC, err := r.ReadUint32()
		if err != nil {
			return err
		}
		// 36 bits per pair still have to be present in the stream.
		if int(nAC) > r.Remaining()*8/36 {
			return ErrTruncatedData
		}
		ac := make([]rlePair, nAC)
		for i := range ac {
			zeros, err := r.ReadBits(4)
			if err != nil {
				return err
			}
			val, err := r.ReadBits(32)
			if err != nil {
				return err
			}
			ac[i] = rlePair{Zeros: uint8(zeros), Value: int32(val)}
		}
		e.AC[ch] = ac
		r.ByteAlign()
	}
	return nil
}

// Stream format tags for Compress output.
const (
	streamRaw     = 0 // payload stored verbatim
	streamHuffman = 1 // payload Huffman-coded
)

// Compress serializes the stream and Huffman-codes the result. Streams
// too uniform to build a code for (a single distinct byte) are stored
// verbatim behind a one-byte tag.
func (e *EntropyEncoded) Compress() ([]byte, error) {
	raw, err := e.MarshalBinary()
	if err != nil {
		return nil, err
	}
	packed, err := huffmanEncode(raw)
	if errors.Is(err, ErrSingleSymbol) || errors.Is(err, ErrEmptyInput) {
		return append([]byte{streamRaw}, raw...), nil
	}
	if err != nil {
		return nil, err
	}
	return append([]byte{streamHuffman}, packed...), nil
}

// Decompress parses a stream produced by Compress.
func Decompress(data []byte) (*EntropyEncoded, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	var raw []byte
	switch data[0] {
	case streamRaw:
		raw = data[1:]
	case streamHuffman:
		var err error
		raw, err = huffmanDecode(data[1:])
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown stream tag %d", ErrCorruptStream, data[0])
	}
	e := new(EntropyEncoded)
	if err := e.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return e, nil
}
