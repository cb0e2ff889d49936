package automata

import (
	"testing"

	"github.com/wmigda/tsetlini-go/feedback"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
)

func TestTypeIFiredWithBoostAlwaysReinforcesMatchingHalf(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 3, 100, true, false, 0)
	frng := rng.NewFloatRNG(1)
	x := []byte{1, 0, 1}

	before := make([]int32, 3)
	for k := range x {
		before[k] = s.Get(0, k)
	}

	Update(s, 0, x, frng, true, 3.9, feedback.TypeI, true)

	for k, xk := range x {
		if xk == 1 {
			if s.Get(0, k) != before[k]+1 {
				t.Fatalf("x[%d]=1: counters[0][%d] should reinforce under boost", k, k)
			}
		} else {
			if s.Get(1, k) != before[k]+1 {
				t.Fatalf("x[%d]=0: counters[1][%d] should reinforce under boost", k, k)
			}
		}
	}
}

func TestTypeIFiredIncrementsWeightWhenWeighted(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 2, 100, true, true, 10)
	frng := rng.NewFloatRNG(1)
	x := []byte{1, 0}

	Update(s, 0, x, frng, true, 3.9, feedback.TypeI, true)
	if s.Weights[0] != 2 {
		t.Fatalf("weight = %d, want 2 (incremented once)", s.Weights[0])
	}
}

func TestTypeIIFiredIncrementsExcludedLiteralsTheInputFalsifies(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 2, 100, true, true, 10)
	// exclude both TAs for feature 0 and 1 on both rows.
	s.DecrementClipped(0, 0)
	s.DecrementClipped(1, 0)
	s.DecrementClipped(0, 1)
	s.DecrementClipped(1, 1)
	before00 := s.Get(0, 0)
	before11 := s.Get(1, 1)

	x := []byte{0, 1} // x[0]==0 -> row0 col0 eligible; x[1]==1 -> row1 col1 eligible
	frng := rng.NewFloatRNG(1)

	Update(s, 0, x, frng, false, 3.9, feedback.TypeII, true)

	if s.Get(0, 0) != before00+1 {
		t.Fatalf("counters[0][0] = %d, want %d (included toward positive)", s.Get(0, 0), before00+1)
	}
	if s.Get(1, 1) != before11+1 {
		t.Fatalf("counters[1][1] = %d, want %d", s.Get(1, 1), before11+1)
	}
	if s.Weights[0] != 1 {
		t.Fatalf("weight = %d, want 1 (floored: started at 1, decremented once)", s.Weights[0])
	}
}

func TestTypeIINotFiredIsNoop(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 2, 100, true, false, 0)
	s.DecrementClipped(0, 0)
	before := s.Get(0, 0)

	frng := rng.NewFloatRNG(1)
	Update(s, 0, []byte{0, 1}, frng, false, 3.9, feedback.TypeII, false)

	if s.Get(0, 0) != before {
		t.Fatalf("Type II on a non-firing clause must be a no-op, counter changed from %d to %d", before, s.Get(0, 0))
	}
}

func TestNoneFeedbackIsNoop(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 2, 100, true, false, 0)
	before := s.Get(0, 0)
	frng := rng.NewFloatRNG(1)
	Update(s, 0, []byte{1, 0}, frng, false, 3.9, feedback.None, true)
	if s.Get(0, 0) != before {
		t.Fatal("None feedback must not mutate counters")
	}
}
