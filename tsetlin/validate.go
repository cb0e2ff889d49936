package tsetlin

import (
	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/align"
)

func validateClassicX(x [][]byte) (int, error) {
	if len(x) == 0 {
		return 0, errors.New("X is empty")
	}
	cols := len(x[0])
	if cols == 0 {
		return 0, errors.New("X rows are empty")
	}
	for i, row := range x {
		if len(row) != cols {
			return 0, errors.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		for k, v := range row {
			if v != 0 && v != 1 {
				return 0, errors.Errorf("row %d col %d has value %d, want 0 or 1", i, k, v)
			}
		}
	}
	return cols, nil
}

func validateBitwiseX(bm *align.BitMatrix) error {
	if bm.Rows() == 0 {
		return errors.New("X is empty")
	}
	if bm.Cols() == 0 {
		return errors.New("X rows are empty")
	}
	for r := 0; r < bm.Rows(); r++ {
		blocks := bm.Blocks(r)
		for pos := bm.Cols(); pos < len(blocks)*align.BlockBits; pos++ {
			if blocks[pos/align.BlockBits]&(uint64(1)<<uint(pos%align.BlockBits)) != 0 {
				return errors.Errorf("row %d has a set bit at padding position %d beyond the declared feature count %d", r, pos, bm.Cols())
			}
		}
	}
	return nil
}

func validateClassifierLabels(y []int, nrows, maxLabels int) (int, error) {
	if len(y) != nrows {
		return 0, errors.Errorf("len(y)=%d does not match len(X)=%d", len(y), nrows)
	}
	numberOfLabels := maxLabels
	for _, label := range y {
		if label < 0 {
			return 0, errors.Errorf("label %d is negative", label)
		}
		if label+1 > numberOfLabels {
			numberOfLabels = label + 1
		}
	}
	if numberOfLabels < 1 {
		return 0, errors.New("could not derive number_of_labels from y or max_labels")
	}
	return numberOfLabels, nil
}

func validateClassifierLabelsAgainst(y []int, nrows, numberOfLabels int) error {
	if len(y) != nrows {
		return errors.Errorf("len(y)=%d does not match len(X)=%d", len(y), nrows)
	}
	for _, label := range y {
		if label < 0 || label >= numberOfLabels {
			return errors.Errorf("label %d out of range [0, %d)", label, numberOfLabels)
		}
	}
	return nil
}

func validateRegressorTargets(y []float64, nrows int, threshold int) error {
	if len(y) != nrows {
		return errors.Errorf("len(y)=%d does not match len(X)=%d", len(y), nrows)
	}
	for i, v := range y {
		if v != v { // NaN
			return errors.Errorf("y[%d] is NaN", i)
		}
		if v < 0 || v > float64(threshold) {
			return errors.Errorf("y[%d]=%v out of range [0, %d]", i, v, threshold)
		}
	}
	return nil
}

func featureCountMismatch(got, want int) error {
	return errors.Errorf("X has %d features, fitted state expects %d", got, want)
}
