package spcodec

// zigzagFlatten walks the size x size row-major grid along its
// anti-diagonals, alternating direction each diagonal, and writes the
// coefficients to a flat slice. Low-frequency coefficients end up at
// the front, which lengthens the zero runs the RLE stage feeds on.
func zigzagFlatten(grid []int32, size int) []int32 {
	flat := make([]int32, size*size)
	k := 0
	for d := 0; d < 2*size-1; d++ {
		if d%2 == 0 {
			// up-right
			i := d
			if i > size-1 {
				i = size - 1
			}
			j := d - i
			for i >= 0 && j < size {
				flat[k] = grid[i*size+j]
				k++
				i--
				j++
			}
		} else {
			// down-left
			j := d
			if j > size-1 {
				j = size - 1
			}
			i := d - j
			for j >= 0 && i < size {
				flat[k] = grid[i*size+j]
				k++
				i++
				j--
			}
		}
	}
	return flat
}

// zigzagUnflatten is the inverse of zigzagFlatten.
func zigzagUnflatten(flat []int32, size int) []int32 {
	grid := make([]int32, size*size)
	k := 0
	for d := 0; d < 2*size-1; d++ {
		if d%2 == 0 {
			i := d
			if i > size-1 {
				i = size - 1
			}
			j := d - i
			for i >= 0 && j < size {
				grid[i*size+j] = flat[k]
				k++
				i--
				j++
			}
		} else {
			j := d
			if j > size-1 {
				j = size - 1
			}
			i := d - j
			for j >= 0 && i < size {
				grid[i*size+j] = flat[k]
				k++
				i++
				j--
			}
		}
	}
	return grid
}

// linearPredictor fits y = m*x + b by least squares over the sample at
// x = 1..n and extrapolates to x = n+1, truncating toward zero.
func linearPredictor(sample []int32) int32 {
	n := len(sample)
	var xSum, ySum, xxSum, xySum int64
	for i, y := range sample {
		x := int64(i + 1)
		xSum += x
		ySum += int64(y)
		xxSum += x * x
		xySum += x * int64(y)
	}
	den := float64(int64(n)*xxSum - xSum*xSum)
	b := float64(ySum*xxSum-xSum*xySum) / den
	m := float64(int64(n)*xySum-xSum*ySum) / den
	return int32(m*float64(n+1) + b)
}

// dpcmEncode replaces each value past the warmup prefix with its
// residual against the linear prediction from the previous
// predictionSize values. The first predictionSize values pass through
// unchanged so the decoder can bootstrap.
func dpcmEncode(data []int32, predictionSize int) []int32 {
	if predictionSize < 2 || predictionSize > len(data) {
		out := make([]int32, len(data))
		copy(out, data)
		return out
	}
	out := make([]int32, len(data))
	copy(out[:predictionSize], data[:predictionSize])
	for i := predictionSize; i < len(data); i++ {
		out[i] = data[i] - linearPredictor(data[i-predictionSize:i])
	}
	return out
}

// dpcmDecode reverses dpcmEncode, rebuilding each value from its
// residual and the prediction over the already-decoded window.
func dpcmDecode(data []int32, predictionSize int) []int32 {
	if predictionSize < 2 || predictionSize > len(data) {
		out := make([]int32, len(data))
		copy(out, data)
		return out
	}
	out := make([]int32, len(data))
	copy(out[:predictionSize], data[:predictionSize])
	for i := predictionSize; i < len(data); i++ {
		out[i] = data[i] + linearPredictor(out[i-predictionSize:i])
	}
	return out
}
