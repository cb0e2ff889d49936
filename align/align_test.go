package align

import "testing"

func TestMatrixPaddingIsZeroAndRoundTrips(t *testing.T) {
	m := NewMatrix[int16](3, 5, 64)
	if m.Rows() != 3 || m.Cols() != 5 {
		t.Fatalf("shape = %d,%d want 3,5", m.Rows(), m.Cols())
	}
	if m.RowStride()%(64/2) != 0 {
		t.Fatalf("row stride %d not aligned to 64 bytes for int16", m.RowStride())
	}
	m.Set(1, 3, -7)
	if got := m.At(1, 3); got != -7 {
		t.Fatalf("At(1,3) = %d, want -7", got)
	}
	row := m.Row(1)
	for i := m.Cols(); i < len(row); i++ {
		if row[i] != 0 {
			t.Fatalf("padding at col %d not zero", i)
		}
	}
}

func TestMatrixEqualAndClone(t *testing.T) {
	a := NewMatrix[int8](2, 2, 64)
	a.Set(0, 0, 5)
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should equal original")
	}
	b.Set(0, 1, 1)
	if a.Equal(b) {
		t.Fatal("mutated clone should not equal original")
	}
}

func TestMatrixTakeEmptiesDonor(t *testing.T) {
	a := NewMatrix[int32](2, 2, 64)
	a.Set(0, 0, 9)
	moved := a.Take()
	if a.Rows() != 0 || a.Cols() != 0 {
		t.Fatalf("donor not emptied: rows=%d cols=%d", a.Rows(), a.Cols())
	}
	if moved.At(0, 0) != 9 {
		t.Fatalf("moved value lost: %d", moved.At(0, 0))
	}
}

func TestBitMatrixSetClearFlip(t *testing.T) {
	m := NewBitMatrix(4, 10, 64)
	if m.Test(2, 3) {
		t.Fatal("fresh matrix should be all zero")
	}
	m.Set(2, 3)
	if !m.Test(2, 3) {
		t.Fatal("set bit not observed")
	}
	m.Flip(2, 3)
	if m.Test(2, 3) {
		t.Fatal("flip should have cleared the bit")
	}
	m.Set(2, 3)
	m.Clear(2, 3)
	if m.Test(2, 3) {
		t.Fatal("clear did not clear")
	}
}

func TestBitMatrixPaddingStaysZero(t *testing.T) {
	m := NewBitMatrix(1, 10, 64)
	blocks := m.Blocks(0)
	for c := 10; c < len(blocks)*BlockBits; c++ {
		if m.Test(0, c) {
			t.Fatalf("padding bit %d set", c)
		}
	}
}

func TestPopCountXORTile(t *testing.T) {
	a := []uint64{0b1010, 0b0000}
	mask := []uint64{0b1111, 0b1111}
	// (a[0] & mask[0]) ^ mask[0] == 0b0101, popcount == 2
	if got := PopCountXORTile(a, mask, 0, 1); got != 2 {
		t.Fatalf("PopCountXORTile(0,1) = %d, want 2", got)
	}
	// block 1 is all-zero against a full mask: (0 & mask) ^ mask == mask, popcount == 4
	if got := PopCountXORTile(a, mask, 1, 2); got != 4 {
		t.Fatalf("PopCountXORTile(1,2) = %d, want 4", got)
	}
	if got := PopCountXORTile(a, mask, 0, 2); got != 6 {
		t.Fatalf("PopCountXORTile(0,2) = %d, want 6", got)
	}
	maskZero := []uint64{0, 0}
	if got := PopCountXORTile(a, maskZero, 0, 2); got != 0 {
		t.Fatalf("PopCountXORTile with zero mask = %d, want 0", got)
	}
}

func TestAnyNonZero(t *testing.T) {
	if AnyNonZero([]uint64{0, 0, 0}) {
		t.Fatal("all-zero mask reported non-zero")
	}
	if !AnyNonZero([]uint64{0, 0, 1}) {
		t.Fatal("non-zero mask reported zero")
	}
}
