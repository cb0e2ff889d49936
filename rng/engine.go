// Package rng implements the deterministic, SIMD-friendly Mersenne
// Twister PRNG pair used by the Tsetlin Machine core: an integer
// generator for shuffling and opposite-label sampling, and a float
// generator for the Type I/II Bernoulli gates.
//
// Both generators share one transition function operating on an array of
// 624*numStreams 32-bit words (numStreams interleaved streams, chosen
// here as 8 to match the reference implementation), differing only in
// their output post-process step. This mirrors
// original_source/lib/include/mt.hpp's BasePRNG/basic_IRNG/basic_FRNG
// split, expressed in Go with a post-process function value instead of
// CRTP.
package rng

const (
	// mtSize is the classic Mersenne Twister state word count.
	mtSize = 624
	// numStreams is the number of interleaved MT streams packed into one
	// state array, giving vectorized generation in bulk.
	numStreams = 8
)

// engine is the shared core of IntRNG and FloatRNG: index + output
// buffer + MT state, refilled lazily in whole batches.
type engine[T any] struct {
	index       int
	res         []T
	mt          []uint32
	postProcess func(uint32) T
}

func newEngine[T any](seed uint32, post func(uint32) T) *engine[T] {
	e := &engine[T]{
		res:         make([]T, mtSize*numStreams),
		mt:          make([]uint32, mtSize*numStreams),
		postProcess: post,
	}
	e.init(seed)
	return e
}

// init scrambles the MT state from seed + stream_index, matching
// BasePRNG::init, then fills the output buffer so slot 0 already holds
// the first draw.
func (e *engine[T]) init(seed uint32) {
	for i := 0; i < numStreams; i++ {
		e.mt[i] = uint32(i) + seed
	}
	for i := numStreams; i < mtSize*numStreams; i++ {
		e.mt[i] = 1812433253*(e.mt[i-numStreams]^(e.mt[i-numStreams]>>30)) + uint32(i/numStreams)
	}
	e.index = 0
	e.generate()
}

// generate refills the entire output buffer in one pass, matching
// BasePRNG::generate bit for bit (including its literal upper mask
// constant 0x8000000, which is why it is not renamed to the conventional
// MT19937 upper mask 0x80000000; the lower mask is the conventional
// 0x7FFFFFFF. Downstream bit-for-bit reproducibility depends on
// replicating the reference exactly, not "fixing" it).
func (e *engine[T]) generate() {
	const mult1 = uint32(2567483615)
	const upperMask = uint32(0x8000000)
	const lowerMask = uint32(0x7FFFFFFF)
	NS := numStreams
	mt := e.mt

	for i := 0; i < 227*NS; i++ {
		y := (mt[i] & upperMask) + (mt[i+NS] & lowerMask)
		mt[i] = mt[i+397*NS] ^ (y >> 1) ^ oddMult(y, mult1)
	}
	for i := 227 * NS; i < (mtSize-1)*NS; i++ {
		y := (mt[i] & upperMask) + (mt[i+NS] & lowerMask)
		mt[i] = mt[i-227*NS] ^ (y >> 1) ^ oddMult(y, mult1)
	}
	for it := 0; it < NS; it++ {
		idx := (mtSize-1)*NS + it
		y := (mt[idx] & upperMask) + (mt[it] & lowerMask)
		mt[idx] = mt[(mtSize-1-227)*NS+it] ^ (y >> 1) ^ oddMult(y, mult1)
	}

	for it := 0; it < mtSize*NS; it++ {
		y := mt[it]
		y ^= y >> 11
		y ^= (y << 7) & 2636928640
		y ^= (y << 15) & 4022730752
		y ^= y >> 18
		e.res[it] = e.postProcess(y)
	}
}

func oddMult(y, mult uint32) uint32 {
	if y&1 != 0 {
		return mult
	}
	return 0
}

// peek returns the current output slot without advancing.
func (e *engine[T]) peek() T {
	return e.res[e.index]
}

// next returns the next value, refilling the whole buffer as soon as
// the cursor has consumed its last slot, so peek always shows the value
// the following next returns.
func (e *engine[T]) next() T {
	v := e.res[e.index]
	if e.index == mtSize*numStreams-1 {
		e.generate()
		e.index = 0
	} else {
		e.index++
	}
	return v
}

func (e *engine[T]) equal(other *engine[T]) bool {
	if e.index != other.index || len(e.res) != len(other.res) || len(e.mt) != len(other.mt) {
		return false
	}
	for i := range e.res {
		if any(e.res[i]) != any(other.res[i]) {
			return false
		}
	}
	for i := range e.mt {
		if e.mt[i] != other.mt[i] {
			return false
		}
	}
	return true
}
