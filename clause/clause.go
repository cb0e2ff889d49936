// Package clause implements the clause kernel (C5): for a given clause
// j and sample x, whether the clause fires. Two entry points share the
// walk — Output (predict path, suppresses an all-exclude clause to 0)
// and OutputTrain (training path, no suppression, per spec §4.5) — each
// with a classic (byte-per-feature) and bitwise (block-packed) variant.
//
// The inner loop is walked in tiles of clause_output_tile_size so a
// falsifying literal found partway through a tile short-circuits the
// rest of the clause without touching later tiles, mirroring
// hwy/tail.go's tile-then-remainder looping idiom. The bitwise variant
// evaluates a whole tile of machine words at once via
// align.PopCountXORTile, the same scalar popcount pattern hwy/bitops.go
// uses before falling back to a vector instruction.
package clause

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// OutputClassic evaluates clause j against a 0/1 byte sample. When
// suppressAllExclude is true (predict path), a clause with no included
// literals reports false instead of true.
func OutputClassic(s *tastate.State, j int, x []byte, tileSize int, suppressAllExclude bool) bool {
	if tileSize <= 0 {
		tileSize = len(x)
	}
	posRow, negRow := 2*j, 2*j+1
	allExclude := true

	for tileStart := 0; tileStart < len(x); tileStart += tileSize {
		tileEnd := min(tileStart+tileSize, len(x))
		for k := tileStart; k < tileEnd; k++ {
			incPos := s.Get(posRow, k) >= 0
			incNeg := s.Get(negRow, k) >= 0
			if incPos || incNeg {
				allExclude = false
			}
			if (incPos && x[k] == 0) || (incNeg && x[k] == 1) {
				return false
			}
		}
	}

	if suppressAllExclude && allExclude {
		return false
	}
	return true
}

// Output is the predict-path classic kernel (all-exclude suppressed).
func Output(s *tastate.State, j int, x []byte, tileSize int) bool {
	return OutputClassic(s, j, x, tileSize, true)
}

// OutputTrain is the training-path classic kernel (no suppression).
func OutputTrain(s *tastate.State, j int, x []byte, tileSize int) bool {
	return OutputClassic(s, j, x, tileSize, false)
}

// OutputBitwise evaluates clause j against a block-packed sample using
// the include masks held in s.Signs. xBlocks and negatedBlocks are the
// sample row and its bitwise complement, both produced once per sample
// by the caller (tsetlin.newBitwiseSamples) rather than re-negated per
// clause; they and the mask rows must share the same block count, which
// the caller validates (tsetlin.validateBitwiseX) before this is
// reached.
func OutputBitwise(s *tastate.State, j int, xBlocks, negatedBlocks []uint64, tileBlocks int, suppressAllExclude bool) bool {
	posMask := s.Signs.Blocks(2 * j)
	negMask := s.Signs.Blocks(2*j + 1)
	nblocks := len(posMask)

	allExclude := !align.AnyNonZero(posMask) && !align.AnyNonZero(negMask)

	if tileBlocks <= 0 {
		tileBlocks = nblocks
	}

	for tileStart := 0; tileStart < nblocks; tileStart += tileBlocks {
		tileEnd := min(tileStart+tileBlocks, nblocks)
		if align.PopCountXORTile(xBlocks, posMask, tileStart, tileEnd) != 0 {
			return false
		}
		if align.PopCountXORTile(negatedBlocks, negMask, tileStart, tileEnd) != 0 {
			return false
		}
	}

	if suppressAllExclude && allExclude {
		return false
	}
	return true
}

// OutputWideBitwise is the predict-path bitwise kernel.
func OutputWideBitwise(s *tastate.State, j int, xBlocks, negatedBlocks []uint64, tileBlocks int) bool {
	return OutputBitwise(s, j, xBlocks, negatedBlocks, tileBlocks, true)
}

// OutputTrainBitwise is the training-path bitwise kernel.
func OutputTrainBitwise(s *tastate.State, j int, xBlocks, negatedBlocks []uint64, tileBlocks int) bool {
	return OutputBitwise(s, j, xBlocks, negatedBlocks, tileBlocks, false)
}

// boolByte renders a clause output into the 0/1 convention clause_output
// scratch (spec §3) uses.
func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// EvaluateClassic fills out[j] with the classic kernel's verdict for
// every clause 0..numberOfClauses-1, fanned out across pool per spec §5.
func EvaluateClassic(pool *workerpool.Pool, s *tastate.State, x []byte, tileSize int, train bool, out []byte) {
	numberOfClauses := len(out)
	pool.ParallelFor(numberOfClauses, func(start, end int) {
		for j := start; j < end; j++ {
			out[j] = boolByte(OutputClassic(s, j, x, tileSize, !train))
		}
	})
}

// EvaluateBitwise is EvaluateClassic's bitwise counterpart. tileSize is
// given in features (same units as clause_output_tile_size); it is
// converted to a block count since the bitwise kernel's atomic unit of
// work is one 64-bit word, not one bit. negatedBlocks is xBlocks'
// bitwise complement, precomputed once per sample by the caller so it
// is not renegated for every clause.
func EvaluateBitwise(pool *workerpool.Pool, s *tastate.State, xBlocks, negatedBlocks []uint64, tileSize int, train bool, out []byte) {
	tileBlocks := max(1, tileSize/align.BlockBits)
	numberOfClauses := len(out)
	pool.ParallelFor(numberOfClauses, func(start, end int) {
		for j := start; j < end; j++ {
			out[j] = boolByte(OutputBitwise(s, j, xBlocks, negatedBlocks, tileBlocks, !train))
		}
	})
}
