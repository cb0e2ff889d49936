package tastate

import (
	"testing"

	"github.com/wmigda/tsetlini-go/rng"
)

func TestResolveWidthAuto(t *testing.T) {
	cases := []struct {
		n    int
		want Width
	}{
		{100, Width8},
		{128, Width8},
		{129, Width16},
		{32768, Width16},
		{32769, Width32},
	}
	for _, c := range cases {
		w, err := ResolveWidth("auto", c.n)
		if err != nil {
			t.Fatalf("ResolveWidth(auto, %d): %v", c.n, err)
		}
		if w != c.want {
			t.Fatalf("ResolveWidth(auto, %d) = %v, want %v", c.n, w, c.want)
		}
	}
}

func TestResolveWidthExplicitTooNarrowRejected(t *testing.T) {
	if _, err := ResolveWidth("int8", 200); err == nil {
		t.Fatal("expected error for number_of_states=200 with counting_type=int8")
	}
}

func TestInitDrawsFromMinusOneZeroAndMirrorsSigns(t *testing.T) {
	s := New(Width8, 2, 4, 100, true, false, 0)
	irng := rng.NewIntRNG(1)
	s.Init(irng)

	for r := 0; r < s.Rows(); r++ {
		for k := 0; k < s.Cols(); k++ {
			v := s.Get(r, k)
			if v != -1 && v != 0 {
				t.Fatalf("counter[%d][%d] = %d, want -1 or 0", r, k, v)
			}
			if s.Signs.Test(r, k) != (v >= 0) {
				t.Fatalf("signs[%d][%d] does not mirror counter sign", r, k)
			}
		}
	}
}

func TestIncrementDecrementClippedStayInRange(t *testing.T) {
	s := New(Width8, 1, 1, 3, true, false, 0)
	s.Init(rng.NewIntRNG(7))

	for i := 0; i < 10; i++ {
		s.IncrementClipped(0, 0)
	}
	if got := s.Get(0, 0); got != 2 {
		t.Fatalf("counter saturated at %d, want number_of_states-1=2", got)
	}
	if !s.Signs.Test(0, 0) {
		t.Fatal("signs should mirror positive counter")
	}

	for i := 0; i < 10; i++ {
		s.DecrementClipped(0, 0)
	}
	if got := s.Get(0, 0); got != -3 {
		t.Fatalf("counter floored at %d, want -number_of_states=-3", got)
	}
	if s.Signs.Test(0, 0) {
		t.Fatal("signs should mirror negative counter")
	}
}

func TestWeightsInitializedToOneAndSaturate(t *testing.T) {
	s := New(Width16, 3, 2, 100, false, true, 5)
	for j, w := range s.Weights {
		if w != 1 {
			t.Fatalf("weight[%d] = %d, want 1", j, w)
		}
	}
	for i := 0; i < 10; i++ {
		s.IncrementWeight(0)
	}
	if s.Weights[0] != 5 {
		t.Fatalf("weight saturated at %d, want MaxWeight=5", s.Weights[0])
	}
	for i := 0; i < 10; i++ {
		s.DecrementWeight(0)
	}
	if s.Weights[0] != 1 {
		t.Fatalf("weight floored at %d, want 1", s.Weights[0])
	}
}

func TestCloneIsIndependentAndEqual(t *testing.T) {
	s := New(Width32, 2, 4, 100, true, true, 10)
	s.Init(rng.NewIntRNG(3))

	c := s.Clone()
	if !s.Equal(c) {
		t.Fatal("clone should be equal to original")
	}
	c.IncrementClipped(0, 0)
	if s.Equal(c) {
		t.Fatal("mutating clone should not affect original")
	}
}
