// Package tastate implements the TA-state container (C4): the
// (2K)×F counter matrix whose sign is the include/exclude action of
// each Tsetlin Automaton, its bitwise sign-mirror, and the optional
// per-clause weight vector.
//
// Counter width (int8/int16/int32) is resolved once per fit call from
// counting_type and number_of_states (spec §9's "resolve the variant
// once per phase"), then held as a tagged union over three
// align.Matrix instantiations rather than re-dispatched per access.
package tastate

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/rng"
)

// Width is the resolved counter element size in bytes.
type Width int

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// ResolveWidth implements spec §4.4 step 1: "auto" picks the narrowest
// signed integer whose non-negative range [0, number_of_states) fits;
// explicit widths are honored if they fit, else rejected.
func ResolveWidth(countingType string, numberOfStates int) (Width, error) {
	fits8 := numberOfStates <= 128
	fits16 := numberOfStates <= 32768

	switch countingType {
	case "auto":
		switch {
		case fits8:
			return Width8, nil
		case fits16:
			return Width16, nil
		default:
			return Width32, nil
		}
	case "int8":
		if !fits8 {
			return 0, errors.Errorf("number_of_states=%d does not fit counting_type=int8", numberOfStates)
		}
		return Width8, nil
	case "int16":
		if !fits16 {
			return 0, errors.Errorf("number_of_states=%d does not fit counting_type=int16", numberOfStates)
		}
		return Width16, nil
	case "int32":
		return Width32, nil
	default:
		return 0, errors.Errorf("unknown counting_type %q", countingType)
	}
}

// State is the tagged-union counter container plus optional signs and
// weights. Exactly one of i8/i16/i32 is non-nil, selected by Width.
type State struct {
	width Width

	i8  *align.Matrix[int8]
	i16 *align.Matrix[int16]
	i32 *align.Matrix[int32]

	// Signs mirrors the sign bit of every counter; nil when New is called
	// with withSigns false. The tsetlin estimators allocate it for both
	// representations; only the bitwise clause kernel reads it.
	Signs *align.BitMatrix

	// Weights is nil unless the estimator is weighted. Length K (not
	// 2K: one weight per clause, not per TA row).
	Weights   []int32
	MaxWeight int32

	numberOfStates int
}

// New allocates an all-zero state of the given width for
// numberOfClauses clauses (2*numberOfClauses rows) over numberOfFeatures
// columns. withSigns controls bitwise sign-matrix allocation; weights
// of length numberOfClauses are allocated when weighted is true.
func New(width Width, numberOfClauses, numberOfFeatures, numberOfStates int, withSigns, weighted bool, maxWeight int32) *State {
	rows := 2 * numberOfClauses
	s := &State{width: width, numberOfStates: numberOfStates, MaxWeight: maxWeight}

	switch width {
	case Width8:
		s.i8 = align.NewMatrix[int8](rows, numberOfFeatures, align.DefaultAlignment)
	case Width16:
		s.i16 = align.NewMatrix[int16](rows, numberOfFeatures, align.DefaultAlignment)
	default:
		s.i32 = align.NewMatrix[int32](rows, numberOfFeatures, align.DefaultAlignment)
	}

	if withSigns {
		s.Signs = align.NewBitMatrix(rows, numberOfFeatures, align.DefaultAlignment)
	}
	if weighted {
		s.Weights = make([]int32, numberOfClauses)
		for j := range s.Weights {
			s.Weights[j] = 1
		}
	}
	return s
}

func (s *State) Width() Width               { return s.width }
func (s *State) NumberOfStates() int        { return s.numberOfStates }
func (s *State) HasSigns() bool             { return s.Signs != nil }
func (s *State) HasWeights() bool           { return s.Weights != nil }

// Rows/Cols report the counter matrix shape: Rows is 2*numberOfClauses.
func (s *State) Rows() int {
	switch s.width {
	case Width8:
		return s.i8.Rows()
	case Width16:
		return s.i16.Rows()
	default:
		return s.i32.Rows()
	}
}

func (s *State) Cols() int {
	switch s.width {
	case Width8:
		return s.i8.Cols()
	case Width16:
		return s.i16.Cols()
	default:
		return s.i32.Cols()
	}
}

// SetCounter directly assigns counter[r][k] (used by state decoding,
// which restores a previously serialized value rather than deriving it
// from an increment/decrement step) and mirrors Signs accordingly.
func (s *State) SetCounter(r, k int, v int32) {
	s.setRaw(r, k, v)
	s.mirror(r, k)
}

// Get returns counter[r][k] widened to int32.
func (s *State) Get(r, k int) int32 {
	switch s.width {
	case Width8:
		return int32(s.i8.At(r, k))
	case Width16:
		return int32(s.i16.At(r, k))
	default:
		return s.i32.At(r, k)
	}
}

func (s *State) setRaw(r, k int, v int32) {
	switch s.width {
	case Width8:
		s.i8.Set(r, k, int8(v))
	case Width16:
		s.i16.Set(r, k, int16(v))
	default:
		s.i32.Set(r, k, v)
	}
}

func (s *State) mirror(r, k int) {
	if s.Signs == nil {
		return
	}
	s.Signs.SetTo(r, k, s.Get(r, k) >= 0)
}

// Init implements spec §4.4 steps 3-4: every counter drawn uniformly
// from {-1, 0}, signs mirrored to match. Iteration is row-major so the
// PRNG draw order is fixed and reproducible for a given seed.
func (s *State) Init(irng *rng.IntRNG) {
	rows, cols := s.Rows(), s.Cols()
	for r := 0; r < rows; r++ {
		for k := 0; k < cols; k++ {
			v := int32(irng.NextRange(-1, 0))
			s.setRaw(r, k, v)
			s.mirror(r, k)
		}
	}
}

// IncrementClipped raises counter[r][k] by one, clipped at
// number_of_states-1, and mirrors the sign if it changed.
func (s *State) IncrementClipped(r, k int) {
	v := s.Get(r, k)
	if v < int32(s.numberOfStates-1) {
		v++
		s.setRaw(r, k, v)
		s.mirror(r, k)
	}
}

// DecrementClipped lowers counter[r][k] by one, clipped at
// -number_of_states, and mirrors the sign if it changed.
func (s *State) DecrementClipped(r, k int) {
	v := s.Get(r, k)
	if v > int32(-s.numberOfStates) {
		v--
		s.setRaw(r, k, v)
		s.mirror(r, k)
	}
}

// IncrementWeight raises Weights[j] by one, saturating at MaxWeight.
func (s *State) IncrementWeight(j int) {
	if s.Weights[j] < s.MaxWeight {
		s.Weights[j]++
	}
}

// DecrementWeight lowers Weights[j] by one, floored at 1 (spec §3:
// "weights: a vector of K positive integers").
func (s *State) DecrementWeight(j int) {
	if s.Weights[j] > 1 {
		s.Weights[j]--
	}
}

// Clone deep-copies the state, used by clone_state()/read_state().
func (s *State) Clone() *State {
	c := &State{width: s.width, numberOfStates: s.numberOfStates, MaxWeight: s.MaxWeight}
	switch s.width {
	case Width8:
		c.i8 = s.i8.Clone()
	case Width16:
		c.i16 = s.i16.Clone()
	default:
		c.i32 = s.i32.Clone()
	}
	if s.Signs != nil {
		c.Signs = s.Signs.Clone()
	}
	if s.Weights != nil {
		c.Weights = append([]int32(nil), s.Weights...)
	}
	return c
}

// Equal reports whether two states hold identical counters, signs, and
// weights — used by the determinism and serialize-round-trip tests.
func (s *State) Equal(o *State) bool {
	if s.width != o.width || s.numberOfStates != o.numberOfStates || s.MaxWeight != o.MaxWeight {
		return false
	}
	switch s.width {
	case Width8:
		if !s.i8.Equal(o.i8) {
			return false
		}
	case Width16:
		if !s.i16.Equal(o.i16) {
			return false
		}
	default:
		if !s.i32.Equal(o.i32) {
			return false
		}
	}
	if (s.Signs == nil) != (o.Signs == nil) {
		return false
	}
	if s.Signs != nil && !s.Signs.Equal(o.Signs) {
		return false
	}
	if len(s.Weights) != len(o.Weights) {
		return false
	}
	for i := range s.Weights {
		if s.Weights[i] != o.Weights[i] {
			return false
		}
	}
	return true
}

// MaxCounterMagnitude is the ceiling number_of_states must not exceed
// for a given Width, exported so params validation can cross-check
// counting_type against number_of_states before tastate.New is called.
func MaxCounterMagnitude(w Width) int {
	switch w {
	case Width8:
		return 128
	case Width16:
		return 32768
	default:
		return math.MaxInt32
	}
}
