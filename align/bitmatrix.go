package align

import (
	"fmt"
	"math/bits"
)

// BlockBits is the width of one bit-matrix storage block. uint64 is the
// natural word size for popcount-based clause evaluation on every
// current architecture, matching the 64-bit block_type used throughout
// the bitwise variant.
const BlockBits = 64

// BitMatrix is a row-major bit-packed matrix whose rows are padded to a
// whole number of 64-bit blocks, with the block count itself rounded up
// to a whole alignment unit. It is the Go analog of
// original_source/include/bit_matrix.hpp's bit_matrix<uint64_t>.
type BitMatrix struct {
	rows, cols int
	rowBlocks  int
	alignment  int
	data       []uint64
}

// NewBitMatrix allocates a zero-filled rows x cols bit matrix. alignment
// is in bytes; <= 0 selects DefaultAlignment.
func NewBitMatrix(rows, cols, alignment int) *BitMatrix {
	if alignment <= 0 {
		alignment = DefaultAlignment
	}
	blocksPerAlignment := alignment / 8 // uint64 is 8 bytes
	if blocksPerAlignment == 0 {
		blocksPerAlignment = 1
	}
	alignmentBits := alignment * 8
	rowBlocks := ((cols + alignmentBits - 1) / alignmentBits) * blocksPerAlignment
	if rowBlocks == 0 {
		rowBlocks = blocksPerAlignment
	}
	return &BitMatrix{
		rows:      rows,
		cols:      cols,
		rowBlocks: rowBlocks,
		alignment: alignment,
		data:      make([]uint64, rowBlocks*rows),
	}
}

func (m *BitMatrix) Rows() int      { return m.rows }
func (m *BitMatrix) Cols() int      { return m.cols }
func (m *BitMatrix) RowBlocks() int { return m.rowBlocks }
func (m *BitMatrix) Shape() (int, int) { return m.rows, m.cols }

// Blocks returns the raw padded blocks of row r, length RowBlocks().
// Bits beyond Cols() are zero after NewBitMatrix. Set, Clear, Flip and
// SetTo do not check c against Cols(), and BitMatrixFromBlocks copies
// the given blocks unchanged, so padding bits can be set through them
// (tsetlin.validateBitwiseX rejects such inputs).
func (m *BitMatrix) Blocks(r int) []uint64 {
	start := r * m.rowBlocks
	return m.data[start : start+m.rowBlocks]
}

func blockMask(pos int) uint64 { return uint64(1) << uint(pos%BlockBits) }

// Test reports whether bit (r, c) is set.
func (m *BitMatrix) Test(r, c int) bool {
	blocks := m.Blocks(r)
	return blocks[c/BlockBits]&blockMask(c) != 0
}

// Set sets bit (r, c).
func (m *BitMatrix) Set(r, c int) {
	blocks := m.Blocks(r)
	blocks[c/BlockBits] |= blockMask(c)
}

// Clear clears bit (r, c).
func (m *BitMatrix) Clear(r, c int) {
	blocks := m.Blocks(r)
	blocks[c/BlockBits] &^= blockMask(c)
}

// Flip toggles bit (r, c).
func (m *BitMatrix) Flip(r, c int) {
	blocks := m.Blocks(r)
	blocks[c/BlockBits] ^= blockMask(c)
}

// SetTo sets or clears bit (r, c) according to v.
func (m *BitMatrix) SetTo(r, c int, v bool) {
	if v {
		m.Set(r, c)
	} else {
		m.Clear(r, c)
	}
}

// Equal reports whether two bit matrices have the same logical shape
// and contents.
func (m *BitMatrix) Equal(other *BitMatrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.Test(r, c) != other.Test(r, c) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	cp := &BitMatrix{rows: m.rows, cols: m.cols, rowBlocks: m.rowBlocks, alignment: m.alignment}
	cp.data = make([]uint64, len(m.data))
	copy(cp.data, m.data)
	return cp
}

// RawBlocks exposes the full padded backing store, row-major, for state
// serialization (C10): the caller is trusted to preserve row/col/
// alignment metadata alongside it, since the block layout alone cannot
// be inverted back to a shape.
func (m *BitMatrix) RawBlocks() []uint64 { return m.data }

// BitMatrixFromBlocks reconstructs a BitMatrix from a previously
// serialized RawBlocks payload. It is the decode-side counterpart of
// RawBlocks and validates the block count the shape implies.
func BitMatrixFromBlocks(rows, cols, alignment int, blocks []uint64) (*BitMatrix, error) {
	m := NewBitMatrix(rows, cols, alignment)
	if len(blocks) != len(m.data) {
		return nil, fmt.Errorf("bit matrix block count mismatch: got %d, want %d for shape %dx%d", len(blocks), len(m.data), rows, cols)
	}
	copy(m.data, blocks)
	return m, nil
}

// Take moves m's storage into a new BitMatrix and empties the donor.
func (m *BitMatrix) Take() *BitMatrix {
	moved := &BitMatrix{rows: m.rows, cols: m.cols, rowBlocks: m.rowBlocks, alignment: m.alignment, data: m.data}
	m.rows, m.cols, m.rowBlocks = 0, 0, 0
	m.data = nil
	return moved
}

// PopCountXORTile computes popcount((a AND mask) XOR mask) summed across
// blocks [start, end) — the per-half-clause "any included literal
// unsatisfied" test used by the tiled early-exit loop in the bitwise
// clause kernel (spec §4.5): mask is the include mask, and a non-zero
// result means some included bit is 0 in a. a and mask must have equal
// block counts.
func PopCountXORTile(a, mask []uint64, start, end int) int {
	total := 0
	for i := start; i < end; i++ {
		total += bits.OnesCount64((a[i] & mask[i]) ^ mask[i])
	}
	return total
}

// AnyNonZero reports whether any block in mask is non-zero — used for
// the all-exclude suppression rule: the bitwise clause kernel calls it
// on both half-row include masks before its tile loop.
func AnyNonZero(mask []uint64) bool {
	for _, b := range mask {
		if b != 0 {
			return true
		}
	}
	return false
}
