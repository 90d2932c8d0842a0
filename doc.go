// Package spcodec implements an experimental image-compression pipeline
// for comparing reversible and lossy transform strategies.
//
// The pipeline tiles an image into square three-channel chunks and runs
// each chunk through one of several interchangeable transforms: a
// separable cosine transform, a Fourier transform, a Haar wavelet, and
// an integer-reversible multiresolution S+P (split-and-predict)
// transform. Transformed coefficients are quantized (a flat JPEG-style
// matrix quantizer by default; the S+P transform supplies its own
// subband-aware dead-zone quantizer) and handed to a predictive
// RLE/Huffman entropy back end.
//
// A typical lossless round trip through the S+P engine:
//
//	ci := spcodec.ChunkImage(img, 32)
//	sp := spcodec.NewSPTransform(spcodec.NaturalImageParams())
//	coeffs, err := spcodec.Apply(sp, ci)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	back, err := spcodec.ApplyInverse(sp, coeffs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every chunk collection carries an explicit data-space tag; Apply only
// accepts Raw input and ApplyInverse only accepts input produced by the
// same transform, so pipeline-ordering bugs fail fast instead of
// corrupting data.
//
// Encode and Decode wrap the whole pipeline, including color
// conversion and the entropy back end, behind an image.Image API; the
// format is also registered with image.RegisterFormat under the name
// "spc".
package spcodec
