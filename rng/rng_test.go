package rng

import "testing"

func TestIntRNGDeterministic(t *testing.T) {
	a := NewIntRNG(1)
	b := NewIntRNG(1)
	for i := 0; i < 2000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("diverged at draw %d", i)
		}
	}
	if !a.Equal(b) {
		t.Fatal("two generators with identical seed and call sequence should be state-equal")
	}
}

func TestIntRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewIntRNG(1)
	b := NewIntRNG(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should not produce identical streams")
	}
}

func TestIntRNGNextRangeBounds(t *testing.T) {
	r := NewIntRNG(42)
	for i := 0; i < 1000; i++ {
		v := r.NextRange(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("NextRange(3,7) = %d, out of bounds", v)
		}
	}
}

func TestFloatRNGRangeIsOpenUnitInterval(t *testing.T) {
	r := NewFloatRNG(7)
	for i := 0; i < 5000; i++ {
		v := r.Next()
		if v <= 0 || v >= 1 {
			t.Fatalf("draw %v outside (0,1)", v)
		}
	}
}

func TestFloatRNGDeterministic(t *testing.T) {
	a := NewFloatRNG(5)
	b := NewFloatRNG(5)
	for i := 0; i < 2000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("diverged at draw %d", i)
		}
	}
}

func TestIntRNGSnapshotRoundTrip(t *testing.T) {
	r := NewIntRNG(3)
	for i := 0; i < 10; i++ {
		r.Next()
	}
	idx, res, mt := r.Snapshot()
	restored := Restore(idx, res, mt)
	if !r.Equal(restored) {
		t.Fatal("restored generator should equal the snapshotted one")
	}
	for i := 0; i < 50; i++ {
		if r.Next() != restored.Next() {
			t.Fatal("restored generator diverged from original after round trip")
		}
	}
}

func TestFloatRNGSnapshotRoundTrip(t *testing.T) {
	r := NewFloatRNG(3)
	for i := 0; i < 10; i++ {
		r.Next()
	}
	idx, res, mt := r.Snapshot()
	restored := RestoreFloat(idx, res, mt)
	if !r.Equal(restored) {
		t.Fatal("restored generator should equal the snapshotted one")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := NewIntRNG(11)
	idx := make([]int, 20)
	for i := range idx {
		idx[i] = i
	}
	r.Shuffle(idx)
	seen := make(map[int]bool)
	for _, v := range idx {
		if v < 0 || v >= 20 || seen[v] {
			t.Fatalf("shuffle produced invalid permutation: %v", idx)
		}
		seen[v] = true
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewIntRNG(9)
	p := r.Peek()
	n := r.Next()
	if p != n {
		t.Fatalf("peek=%d next=%d should match since peek must not advance", p, n)
	}
}
