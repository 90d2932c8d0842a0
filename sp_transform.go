package spcodec

// SPTransform plugs the S+P engine into the generic pipeline: the
// forward and inverse multiresolution pyramid per channel, plus the
// level-aware subband quantizer in place of the shared flat one.
type SPTransform struct {
	core  *SPCore
	quant QuantParams
}

// NewSPTransform returns an S+P transform strategy with the given
// lifting params and the default quantization table.
func NewSPTransform(p LiftingParams) *SPTransform {
	return &SPTransform{core: NewSPCore(p), quant: DefaultQuantParams()}
}

// SetQuantParams replaces the subband quantizer configuration.
func (t *SPTransform) SetQuantParams(q QuantParams) { t.quant = q }

// QuantParams returns the current subband quantizer configuration.
func (t *SPTransform) QuantParams() QuantParams { return t.quant }

// Core exposes the underlying transform core, mainly so callers can
// inspect the EdgeOverflows diagnostic counter.
func (t *SPTransform) Core() *SPCore { return t.core }

func (t *SPTransform) Space() Space { return SpaceSP }

func (t *SPTransform) EncodeChunk(in, out *Chunk) {
	out.copyFrom(in)
	for ch := range out.Ch {
		t.core.Forward2D(out.Plane(ch))
	}
}

func (t *SPTransform) DecodeChunk(in, out *Chunk) {
	out.copyFrom(in)
	for ch := range out.Ch {
		t.core.Inverse2D(out.Plane(ch))
	}
}

// QuantizeChunk applies the subband quantizer to each channel. scale
// multiplies the configured global Scale, so the pipeline-level knob
// composes with the per-transform table.
func (t *SPTransform) QuantizeChunk(in, out *Chunk, scale float64) {
	q := t.quant
	if scale > 0 {
		q.Scale *= scale
	}
	levels := t.core.levelsFor(in.Size, in.Size)
	out.copyFrom(in)
	for ch := range out.Ch {
		q.QuantizePlane(out.Plane(ch), levels)
	}
}

func (t *SPTransform) DequantizeChunk(in, out *Chunk, scale float64) {
	q := t.quant
	if scale > 0 {
		q.Scale *= scale
	}
	levels := t.core.levelsFor(in.Size, in.Size)
	out.copyFrom(in)
	for ch := range out.Ch {
		q.DequantizePlane(out.Plane(ch), levels)
	}
}
