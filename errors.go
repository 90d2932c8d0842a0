package spcodec

import "errors"

var (
	ErrWrongSpace    = errors.New("spcodec: chunked image is in the wrong data space")
	ErrWrongColor    = errors.New("spcodec: chunked image is in the wrong color space")
	ErrEmptyInput    = errors.New("spcodec: empty input")
	ErrSingleSymbol  = errors.New("spcodec: huffman input has fewer than two distinct symbols")
	ErrTruncatedData = errors.New("spcodec: truncated data")
	ErrCorruptStream = errors.New("spcodec: corrupt entropy stream")
)
