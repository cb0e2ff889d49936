package clause

import (
	"testing"

	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// excludeAll decrements every TA of clause j to a negative (excluded)
// counter value. tastate.New zero-fills its counters and 0 counts as
// "included" (sign >= 0), so tests that want a known-empty clause must
// exclude explicitly rather than rely on the zero value.
func excludeAll(s *tastate.State, j, cols int) {
	for k := 0; k < cols; k++ {
		s.DecrementClipped(2*j, k)
		s.DecrementClipped(2*j+1, k)
	}
}

func include(s *tastate.State, row, k int) {
	s.IncrementClipped(row, k)
}

func TestEmptyClauseFiresInTrainButNotPredict(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 4, 100, true, false, 0)
	excludeAll(s, 0, 4)
	x := []byte{1, 0, 1, 0}

	if !OutputTrain(s, 0, x, 16) {
		t.Fatal("empty clause must fire (1) on the training path")
	}
	if Output(s, 0, x, 16) {
		t.Fatal("empty clause must be suppressed to 0 on the predict path")
	}
}

func TestIncludedLiteralFalsifiesClause(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 4, 100, true, false, 0)
	excludeAll(s, 0, 4)
	include(s, 0, 0) // include positive literal x[0]

	if OutputTrain(s, 0, []byte{0, 0, 0, 0}, 16) {
		t.Fatal("clause should not fire when an included positive literal is 0")
	}
	if !OutputTrain(s, 0, []byte{1, 0, 0, 0}, 16) {
		t.Fatal("clause should fire when the included positive literal is satisfied and nothing else is included")
	}
}

func TestTileSizeDoesNotChangeResult(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 8, 100, true, false, 0)
	excludeAll(s, 0, 8)
	include(s, 0, 2) // positive literal x[2]
	include(s, 1, 5) // negative literal x[5]
	x := []byte{1, 1, 1, 1, 1, 0, 1, 1}

	want := OutputTrain(s, 0, x, 8)
	for _, tile := range []int{1, 2, 4, 8, 16} {
		if got := OutputTrain(s, 0, x, tile); got != want {
			t.Fatalf("tileSize=%d gave %v, want %v", tile, got, want)
		}
	}
}

func TestClassicAndBitwiseKernelsAgree(t *testing.T) {
	s := tastate.New(tastate.Width8, 1, 8, 100, true, false, 0)
	excludeAll(s, 0, 8)
	include(s, 0, 2)
	include(s, 1, 5)
	include(s, 0, 6)

	x := []byte{1, 1, 1, 1, 1, 0, 1, 1}
	// The kernel walks every block of the mask rows, so the sample must
	// have the same padded block count as s.Signs.
	blocks := make([]uint64, s.Signs.RowBlocks())
	negated := make([]uint64, len(blocks))
	for k, v := range x {
		if v == 1 {
			blocks[0] |= 1 << uint(k)
		}
	}
	for i := range blocks {
		negated[i] = ^blocks[i]
	}

	wantTrain := OutputTrain(s, 0, x, 8)
	gotTrain := OutputTrainBitwise(s, 0, blocks[:], negated[:], 64)
	if gotTrain != wantTrain {
		t.Fatalf("bitwise train kernel = %v, want %v", gotTrain, wantTrain)
	}

	wantPredict := Output(s, 0, x, 8)
	gotPredict := OutputWideBitwise(s, 0, blocks[:], negated[:], 64)
	if gotPredict != wantPredict {
		t.Fatalf("bitwise predict kernel = %v, want %v", gotPredict, wantPredict)
	}
}

func TestEvaluateClassicFillsOnePerClause(t *testing.T) {
	s := tastate.New(tastate.Width8, 4, 4, 100, true, false, 0)
	for j := 0; j < 4; j++ {
		excludeAll(s, j, 4)
	}
	include(s, 0, 0) // clause 0: positive literal x[0]
	x := []byte{1, 0, 0, 0}
	out := make([]byte, 4)

	p := workerpool.New(1)
	defer p.Close()

	EvaluateClassic(p, s, x, 16, true, out)
	if out[0] != 1 {
		t.Fatalf("clause 0 output = %d, want 1", out[0])
	}
	for j := 1; j < 4; j++ {
		if out[j] != 1 {
			t.Fatalf("clause %d (all-exclude, train path) output = %d, want 1", j, out[j])
		}
	}
}
