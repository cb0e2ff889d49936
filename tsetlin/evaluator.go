package tsetlin

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/clause"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// sampleSet abstracts over the classic (byte-per-feature) and bitwise
// (block-packed) representations so the orchestrator (C9) is written
// once and shared by all four estimator variants: the epoch loop, vote
// aggregation, feedback allocation, and automata update are
// representation-agnostic once clause evaluation and per-feature row
// access are abstracted.
type sampleSet interface {
	// Len returns the number of samples.
	Len() int
	// NumberOfFeatures returns the logical feature count F.
	NumberOfFeatures() int
	// Evaluate fills out[j] with clause j's verdict on sample idx for
	// every clause, fanned out over pool.
	Evaluate(pool *workerpool.Pool, s *tastate.State, idx, tileSize int, train bool, out []byte)
	// Row returns sample idx unpacked to a 0/1-byte-per-feature slice,
	// the representation the automata updater always operates on
	// (spec §4.8's per-feature loop is defined over x[k], not blocks).
	Row(idx int) []byte
}

// classicSamples wraps a plain byte-matrix input.
type classicSamples struct {
	x            [][]byte
	numFeatures  int
	tileSize     int
}

func (s classicSamples) Len() int               { return len(s.x) }
func (s classicSamples) NumberOfFeatures() int   { return s.numFeatures }
func (s classicSamples) Row(idx int) []byte      { return s.x[idx] }

func (s classicSamples) Evaluate(pool *workerpool.Pool, st *tastate.State, idx, tileSize int, train bool, out []byte) {
	clause.EvaluateClassic(pool, st, s.x[idx], tileSize, train, out)
}

// bitwiseSamples wraps a bit-packed input, unpacking once at
// construction so automata updates (which walk x[k] per feature) don't
// re-unpack every epoch. The negated blocks are also precomputed once
// per row rather than renegated for every clause the kernel evaluates.
type bitwiseSamples struct {
	blocks      [][]uint64
	negated     [][]uint64
	unpacked    [][]byte
	numFeatures int
}

func newBitwiseSamples(bm *align.BitMatrix) bitwiseSamples {
	rows := bm.Rows()
	cols := bm.Cols()
	b := bitwiseSamples{
		blocks:      make([][]uint64, rows),
		negated:     make([][]uint64, rows),
		unpacked:    make([][]byte, rows),
		numFeatures: cols,
	}
	for r := 0; r < rows; r++ {
		b.blocks[r] = append([]uint64(nil), bm.Blocks(r)...)
		negRow := make([]uint64, len(b.blocks[r]))
		for i, blk := range b.blocks[r] {
			negRow[i] = ^blk
		}
		b.negated[r] = negRow
		row := make([]byte, cols)
		for k := 0; k < cols; k++ {
			if bm.Test(r, k) {
				row[k] = 1
			}
		}
		b.unpacked[r] = row
	}
	return b
}

func (s bitwiseSamples) Len() int             { return len(s.blocks) }
func (s bitwiseSamples) NumberOfFeatures() int { return s.numFeatures }
func (s bitwiseSamples) Row(idx int) []byte   { return s.unpacked[idx] }

func (s bitwiseSamples) Evaluate(pool *workerpool.Pool, st *tastate.State, idx, tileSize int, train bool, out []byte) {
	clause.EvaluateBitwise(pool, st, s.blocks[idx], s.negated[idx], tileSize, train, out)
}
