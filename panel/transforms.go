// Package panel implements data transformations and estimators for panel
// data: the within (fixed effects) transform, between-group aggregation,
// first differencing and quasi-demeaning for a random effects GLS, each
// feeding the shared OLS core in the regress package.
//
// Rows are ordered individual-then-time and each group's consecutive rows
// represent consecutive equally spaced periods with no internal gaps. That
// ordering is a caller precondition; the transforms never reorder rows.
package panel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// grouping holds the row indices of one panel individual in row order.
type grouping struct {
	id   int
	rows []int
}

// partition groups row indices by key, preserving first-appearance order of
// the keys. Each partition is independent of the others, so downstream
// per-group work is a pure function of its partition.
func partition(groups []int) []grouping {
	idx := make(map[int]int, len(groups))
	var parts []grouping
	for i, g := range groups {
		p, ok := idx[g]
		if !ok {
			p = len(parts)
			idx[g] = p
			parts = append(parts, grouping{id: g})
		}
		parts[p].rows = append(parts[p].rows, i)
	}
	return parts
}

func validate(data mat.Matrix, groups []int) (int, int, error) {
	if data == nil {
		return 0, 0, ErrNoData
	}
	m, n := data.Dims()
	if len(groups) != m {
		return 0, 0, fmt.Errorf("%d group keys for %d rows, %w", len(groups), m, ErrGroupLenMismatch)
	}
	return m, n, nil
}

func groupMeans(data mat.Matrix, parts []grouping) *mat.Dense {
	_, n := data.Dims()
	means := mat.NewDense(len(parts), n, nil)
	for p, part := range parts {
		for j := 0; j < n; j++ {
			sum := 0.0
			for _, r := range part.rows {
				sum += data.At(r, j)
			}
			means.Set(p, j, sum/float64(len(part.rows)))
		}
	}
	return means
}

// Within subtracts each group's row-wise mean from every row of the group.
// The output has the same shape as the input and each group's transformed
// rows sum to the zero vector. A constant column is annihilated, so the
// regression that consumes the output must drop it.
func Within(data mat.Matrix, groups []int) (*mat.Dense, error) {
	m, n, err := validate(data, groups)
	if err != nil {
		return nil, err
	}

	parts := partition(groups)
	means := groupMeans(data, parts)

	out := mat.NewDense(m, n, nil)
	for p, part := range parts {
		for _, r := range part.rows {
			for j := 0; j < n; j++ {
				out.Set(r, j, data.At(r, j)-means.At(p, j))
			}
		}
	}
	return out, nil
}

// Between collapses each group to a single row of column means, emitted in
// first-appearance order of the group keys. A constant column reduces to 1.
func Between(data mat.Matrix, groups []int) (*mat.Dense, error) {
	if _, _, err := validate(data, groups); err != nil {
		return nil, err
	}
	return groupMeans(data, partition(groups)), nil
}

// FirstDifference computes row[t] − row[t−1] within each group. A group's
// first row has no prior period and is dropped from the output entirely,
// never zero-filled. Differencing turns a constant column into zeros, so
// when constCol is non-negative that column is forced back to literal 1;
// pass -1 when the data carries no constant.
func FirstDifference(data mat.Matrix, groups []int, constCol int) (*mat.Dense, error) {
	m, n, err := validate(data, groups)
	if err != nil {
		return nil, err
	}
	if constCol >= n {
		return nil, fmt.Errorf("constant column %d with %d columns, %w", constCol, n, ErrConstColOutOfBounds)
	}

	parts := partition(groups)
	outRows := m - len(parts)
	if outRows <= 0 {
		return nil, fmt.Errorf("differencing leaves %d rows, %w", outRows, ErrInsufficientObservations)
	}

	out := mat.NewDense(outRows, n, nil)
	i := 0
	for _, part := range parts {
		for t := 1; t < len(part.rows); t++ {
			cur, prev := part.rows[t], part.rows[t-1]
			for j := 0; j < n; j++ {
				out.Set(i, j, data.At(cur, j)-data.At(prev, j))
			}
			if constCol >= 0 {
				out.Set(i, constCol, 1.0)
			}
			i++
		}
	}
	return out, nil
}

// QuasiDemean subtracts theta times the group mean from every row,
// including the constant column which becomes 1−theta. theta of 0 leaves
// the data untouched (pooled OLS) and theta of 1 reproduces the within
// transform.
func QuasiDemean(data mat.Matrix, groups []int, theta float64) (*mat.Dense, error) {
	m, n, err := validate(data, groups)
	if err != nil {
		return nil, err
	}
	if theta < 0.0 || theta > 1.0 {
		return nil, fmt.Errorf("theta %f, %w", theta, ErrThetaOutOfRange)
	}

	parts := partition(groups)
	means := groupMeans(data, parts)

	out := mat.NewDense(m, n, nil)
	for p, part := range parts {
		for _, r := range part.rows {
			for j := 0; j < n; j++ {
				out.Set(r, j, data.At(r, j)-theta*means.At(p, j))
			}
		}
	}
	return out, nil
}
