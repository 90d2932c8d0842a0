package spcodec

import (
	"image"
	"image/color"
)

// ColorSpace tags the channel interpretation of a chunk collection.
type ColorSpace int

const (
	ColorRGB ColorSpace = iota
	ColorYCbCr
)

func (c ColorSpace) String() string {
	switch c {
	case ColorRGB:
		return "RGB"
	case ColorYCbCr:
		return "YCbCr"
	default:
		return "Unknown"
	}
}

// Chunk is a fixed-size square tile holding three independent channel
// planes as flat row-major int32 buffers. Chunks are the unit the
// pipeline transforms one at a time; each pipeline stage produces a
// fresh chunk rather than mutating its input.
type Chunk struct {
	Size int
	Ch   [3][]int32
}

// NewChunk allocates a zeroed size x size chunk.
func NewChunk(size int) Chunk {
	c := Chunk{Size: size}
	for i := range c.Ch {
		c.Ch[i] = make([]int32, size*size)
	}
	return c
}

// Plane views channel ch as a densely packed Plane sharing the chunk's
// buffer.
func (c *Chunk) Plane(ch int) Plane {
	return PlaneFor(c.Ch[ch], c.Size, c.Size)
}

// At returns channel ch at row y, column x.
func (c *Chunk) At(ch, y, x int) int32 {
	return c.Ch[ch][y*c.Size+x]
}

// Set writes channel ch at row y, column x.
func (c *Chunk) Set(ch, y, x int, v int32) {
	c.Ch[ch][y*c.Size+x] = v
}

// copyFrom overwrites this chunk's samples with src's.
func (c *Chunk) copyFrom(src *Chunk) {
	for ch := range c.Ch {
		copy(c.Ch[ch], src.Ch[ch])
	}
}

// ChunkedImage is an image tiled into a row-major grid of square
// chunks, tagged with the data space and color space its samples are
// currently in.
type ChunkedImage struct {
	Rows, Cols           int // pixel dimensions of the source image
	ChunkRows, ChunkCols int
	ChunkSize            int
	Chunks               []Chunk
	Space                Space
	Color                ColorSpace
}

// NewChunkedImage allocates an empty chunk grid covering rows x cols
// pixels with the given tags.
func NewChunkedImage(rows, cols int, space Space, cs ColorSpace, chunkSize int) *ChunkedImage {
	chunkRows := (rows + chunkSize - 1) / chunkSize
	chunkCols := (cols + chunkSize - 1) / chunkSize
	ci := &ChunkedImage{
		Rows:      rows,
		Cols:      cols,
		ChunkRows: chunkRows,
		ChunkCols: chunkCols,
		ChunkSize: chunkSize,
		Chunks:    make([]Chunk, chunkRows*chunkCols),
		Space:     space,
		Color:     cs,
	}
	for i := range ci.Chunks {
		ci.Chunks[i] = NewChunk(chunkSize)
	}
	return ci
}

// ChunkImage tiles img into size x size chunks. Chunks at the right and
// bottom edges are zero-padded. The result is tagged Raw/RGB.
func ChunkImage(img image.Image, size int) *ChunkedImage {
	bounds := img.Bounds()
	ci := NewChunkedImage(bounds.Dy(), bounds.Dx(), SpaceRaw, ColorRGB, size)

	for cr := 0; cr < ci.ChunkRows; cr++ {
		for cc := 0; cc < ci.ChunkCols; cc++ {
			chunk := ci.Chunk(cr, cc)
			for y := 0; y < size; y++ {
				imgY := cr*size + y
				if imgY >= ci.Rows {
					break
				}
				for x := 0; x < size; x++ {
					imgX := cc*size + x
					if imgX >= ci.Cols {
						break
					}
					r, g, b, _ := img.At(bounds.Min.X+imgX, bounds.Min.Y+imgY).RGBA()
					chunk.Set(0, y, x, int32(r>>8))
					chunk.Set(1, y, x, int32(g>>8))
					chunk.Set(2, y, x, int32(b>>8))
				}
			}
		}
	}
	return ci
}

// Chunk returns the chunk at grid position (row, col).
func (ci *ChunkedImage) Chunk(row, col int) *Chunk {
	return &ci.Chunks[row*ci.ChunkCols+col]
}

// freshCopy returns an empty ChunkedImage with the same geometry and
// color space, tagged with the given data space. Pipeline stages write
// their results into a fresh copy instead of mutating their input.
func (ci *ChunkedImage) freshCopy(space Space) *ChunkedImage {
	return NewChunkedImage(ci.Rows, ci.Cols, space, ci.Color, ci.ChunkSize)
}

// ToImage reassembles the chunk grid into an RGBA image, dropping the
// edge padding. The collection must be back in Raw/RGB form.
func (ci *ChunkedImage) ToImage() (*image.RGBA, error) {
	if ci.Space != SpaceRaw {
		return nil, ErrWrongSpace
	}
	if ci.Color != ColorRGB {
		return nil, ErrWrongColor
	}
	img := image.NewRGBA(image.Rect(0, 0, ci.Cols, ci.Rows))
	size := ci.ChunkSize
	for y := 0; y < ci.Rows; y++ {
		for x := 0; x < ci.Cols; x++ {
			chunk := ci.Chunk(y/size, x/size)
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(chunk.At(0, y%size, x%size)),
				G: clampByte(chunk.At(1, y%size, x%size)),
				B: clampByte(chunk.At(2, y%size, x%size)),
				A: 0xFF,
			})
		}
	}
	return img, nil
}

func clampByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
