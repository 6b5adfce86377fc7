package classifier

import (
	"cmp"
	"fmt"
	"slices"
)

// flattenX validates a row-major feature matrix and flattens it for the
// engine: every row must have the same column count and every value must be
// 0 or 1.
func flattenX(x [][]uint8) (flat []uint8, rows, cols uint32, err error) {
	if len(x) == 0 {
		return nil, 0, 0, fmt.Errorf("%w: X has no rows", ErrValidation)
	}
	nCols := len(x[0])
	if nCols == 0 {
		return nil, 0, 0, fmt.Errorf("%w: X has no columns", ErrValidation)
	}

	flat = make([]uint8, 0, len(x)*nCols)
	for i, row := range x {
		if len(row) != nCols {
			return nil, 0, 0, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrValidation, i, len(row), nCols)
		}
		for j, v := range row {
			if v > 1 {
				return nil, 0, 0, fmt.Errorf("%w: X[%d][%d] = %d, values must be 0 or 1",
					ErrValidation, i, j, v)
			}
		}
		flat = append(flat, row...)
	}
	return flat, uint32(len(x)), uint32(nCols), nil
}

// sortedDistinct returns the distinct values of ys in ascending order,
// matching the ordering rule of the label mapping.
func sortedDistinct[L cmp.Ordered](ys []L) []L {
	out := slices.Clone(ys)
	slices.Sort(out)
	return slices.Compact(out)
}

// checkShape verifies the matrix column count against the bound literal
// count and, when y is involved, the row count against the label count.
func checkShape(cols, wantCols uint32, rows uint32, yLen int, withY bool) error {
	if wantCols != 0 && cols != wantCols {
		return fmt.Errorf("%w: X has %d features, classifier expects %d",
			ErrValidation, cols, wantCols)
	}
	if withY && int(rows) != yLen {
		return fmt.Errorf("%w: X has %d rows but y has %d labels",
			ErrValidation, rows, yLen)
	}
	return nil
}
