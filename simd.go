// Copyright 2026 go-spcodec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spcodec

import (
	"sync"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/image"
)

// flatToImageInPlace copies a flat row-major w x h buffer into a
// pre-allocated SIMD-aligned Image. Pre-allocation avoids churn when
// the image is reused across chunks.
func flatToImageInPlace[T hwy.Lanes](flat []T, w, h int, img *image.Image[T]) {
	for y := 0; y < h; y++ {
		row := img.Row(y)
		copy(row[:w], flat[y*w:(y+1)*w])
	}
}

// imageToFlatInPlace copies a SIMD-aligned Image back into a flat
// row-major buffer.
func imageToFlatInPlace[T hwy.Lanes](img *image.Image[T], flat []T, w, h int) {
	for y := 0; y < h; y++ {
		row := img.Row(y)
		copy(flat[y*w:(y+1)*w], row[:w])
	}
}

// chunkToFloatImage widens an int32 channel buffer into a float64
// image for the irreversible color path.
func chunkToFloatImage(flat []int32, w, h int, img *image.Image[float64]) {
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			row[x] = float64(flat[y*w+x])
		}
	}
}

// floatImageToChunk narrows a float64 image back to an int32 channel
// buffer, rounding to nearest.
func floatImageToChunk(img *image.Image[float64], flat []int32, w, h int) {
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			v := row[x]
			if v >= 0 {
				flat[y*w+x] = int32(v + 0.5)
			} else {
				flat[y*w+x] = int32(v - 0.5)
			}
		}
	}
}

// imageBufInt32 holds 6 pooled SIMD-aligned images for int32 color
// transforms (3 input + 3 output).
type imageBufInt32 struct {
	imgs [6]*image.Image[int32]
	w, h int
}

// imageBufFloat64 holds 6 pooled SIMD-aligned images for float64 color
// transforms.
type imageBufFloat64 struct {
	imgs [6]*image.Image[float64]
	w, h int
}

var int32ImagePool = sync.Pool{New: func() any { return new(imageBufInt32) }}
var float64ImagePool = sync.Pool{New: func() any { return new(imageBufFloat64) }}

func getInt32Buf(w, h int) *imageBufInt32 {
	buf := int32ImagePool.Get().(*imageBufInt32)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = image.NewImage[int32](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putInt32Buf(buf *imageBufInt32) {
	int32ImagePool.Put(buf)
}

func getFloat64Buf(w, h int) *imageBufFloat64 {
	buf := float64ImagePool.Get().(*imageBufFloat64)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = image.NewImage[float64](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putFloat64Buf(buf *imageBufFloat64) {
	float64ImagePool.Put(buf)
}
