// Package mat provides small helpers for building and rearranging gonum
// dense matrices from plain slices.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch    = errors.New("column size mismatch")
	ErrRowMismatch    = errors.New("row size mismatch")
	ErrRowOutOfBounds = errors.New("row is out of bounds")
	ErrNoColumns      = errors.New("no columns provided")
)

func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// GatherRows builds a new matrix whose i-th row is row idx[i] of x. Indices
// may repeat, which is how resampling gathers synthetic samples.
func GatherRows(x mat.Matrix, idx []int) (*mat.Dense, error) {
	m, n := x.Dims()
	out := mat.NewDense(len(idx), n, nil)
	for i, r := range idx {
		if r < 0 || r >= m {
			return nil, fmt.Errorf("index %d at position %d with %d rows, %w", r, i, m, ErrRowOutOfBounds)
		}
		for j := 0; j < n; j++ {
			out.Set(i, j, x.At(r, j))
		}
	}
	return out, nil
}

// GatherElems builds a new slice whose i-th element is x[idx[i]].
func GatherElems(x []float64, idx []int) ([]float64, error) {
	out := make([]float64, len(idx))
	for i, r := range idx {
		if r < 0 || r >= len(x) {
			return nil, fmt.Errorf("index %d at position %d with %d elements, %w", r, i, len(x), ErrRowOutOfBounds)
		}
		out[i] = x[r]
	}
	return out, nil
}

// StackCols builds a dense matrix from column slices. All columns must have
// the same length.
func StackCols(cols ...[]float64) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	m := len(cols[0])
	for j, col := range cols {
		if len(col) != m {
			return nil, fmt.Errorf("at column %d, %w", j, ErrRowMismatch)
		}
	}
	out := mat.NewDense(m, len(cols), nil)
	for j, col := range cols {
		out.SetCol(j, col)
	}
	return out, nil
}
