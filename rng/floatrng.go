package rng

import "math"

// floatPostProcess maps a raw MT word into (0, 1), matching
// basic_FRNG::post_process: (y + 0.5) / 2^32.
func floatPostProcess(y uint32) float32 {
	return (float32(y) + 0.5) * (1.0 / 4294967296.0)
}

// FloatRNG is the uniform-(0,1) draw generator gating Type I/II
// feedback decisions.
type FloatRNG struct {
	e *engine[float32]
}

// NewFloatRNG seeds a fresh float generator.
func NewFloatRNG(seed uint32) *FloatRNG {
	return &FloatRNG{e: newEngine[float32](seed, floatPostProcess)}
}

// Next returns the next draw in (0, 1).
func (r *FloatRNG) Next() float32 { return r.e.next() }

// Peek returns the current output slot without advancing.
func (r *FloatRNG) Peek() float32 { return r.e.peek() }

// Equal compares full state.
func (r *FloatRNG) Equal(other *FloatRNG) bool {
	return r.e.equal(other.e)
}

// Snapshot returns the JSON-serializable state. RES is stored as the
// bit pattern of each float32 widened to uint, so the round trip is
// exact (spec requires lossless state round-tripping).
func (r *FloatRNG) Snapshot() (index uint, res []uint, mt []uint) {
	res = make([]uint, len(r.e.res))
	for i, v := range r.e.res {
		res[i] = uint(math.Float32bits(v))
	}
	mt = make([]uint, len(r.e.mt))
	for i, v := range r.e.mt {
		mt[i] = uint(v)
	}
	return uint(r.e.index), res, mt
}

// RestoreFloat rebuilds a FloatRNG from a prior Snapshot.
func RestoreFloat(index uint, res []uint, mt []uint) *FloatRNG {
	e := &engine[float32]{
		index:       int(index),
		res:         make([]float32, len(res)),
		mt:          make([]uint32, len(mt)),
		postProcess: floatPostProcess,
	}
	for i, v := range res {
		e.res[i] = math.Float32frombits(uint32(v))
	}
	for i, v := range mt {
		e.mt[i] = uint32(v)
	}
	return &FloatRNG{e: e}
}
