package rng

// IntRNG is the integer draw generator used for index shuffling and
// opposite-label sampling. Its post-process step is the identity: it
// returns the raw MT output word, matching basic_IRNG::post_process.
type IntRNG struct {
	e *engine[uint32]
}

// NewIntRNG seeds a fresh integer generator.
func NewIntRNG(seed uint32) *IntRNG {
	return &IntRNG{e: newEngine[uint32](seed, func(y uint32) uint32 { return y })}
}

// Next returns the next raw 32-bit draw.
func (r *IntRNG) Next() uint32 { return r.e.next() }

// Peek returns the current output slot without advancing.
func (r *IntRNG) Peek() uint32 { return r.e.peek() }

// Mod returns Next() % x, matching basic_IRNG::next(unsigned int).
func (r *IntRNG) Mod(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	return r.Next() % x
}

// NextRange returns a value in [a, b] inclusive, matching
// basic_IRNG::next(int, int): a + rand() % (b + 1 - a).
func (r *IntRNG) NextRange(a, b int) int {
	span := uint32(b + 1 - a)
	if span == 0 {
		return a
	}
	return a + int(r.Next()%span)
}

// Equal compares full state (index + output buffer + MT state).
func (r *IntRNG) Equal(other *IntRNG) bool {
	return r.e.equal(other.e)
}

// Shuffle permutes idx in place using a Fisher-Yates pass driven by
// NextRange, the integer generator's sole consumer in the orchestrator
// besides opposite-label sampling.
func (r *IntRNG) Shuffle(idx []int) {
	for i := len(idx) - 1; i > 0; i-- {
		j := r.NextRange(0, i)
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// Snapshot returns the JSON-serializable state: index, output buffer,
// and MT state, each widened to uint for the wire format described in
// spec §6 ("igen": {"index":uint, "RES":[uint,...], "MT":[uint,...]}).
func (r *IntRNG) Snapshot() (index uint, res []uint, mt []uint) {
	res = make([]uint, len(r.e.res))
	for i, v := range r.e.res {
		res[i] = uint(v)
	}
	mt = make([]uint, len(r.e.mt))
	for i, v := range r.e.mt {
		mt[i] = uint(v)
	}
	return uint(r.e.index), res, mt
}

// Restore rebuilds an IntRNG from a prior Snapshot, used by the state
// package when decoding a saved estimator.
func Restore(index uint, res []uint, mt []uint) *IntRNG {
	e := &engine[uint32]{
		index:       int(index),
		res:         make([]uint32, len(res)),
		mt:          make([]uint32, len(mt)),
		postProcess: func(y uint32) uint32 { return y },
	}
	for i, v := range res {
		e.res[i] = uint32(v)
	}
	for i, v := range mt {
		e.mt[i] = uint32(v)
	}
	return &IntRNG{e: e}
}
