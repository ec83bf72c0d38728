// Package dataset loads and holds row-ordered numeric panels for the
// estimation packages. It is an I/O collaborator: the numeric core consumes
// plain matrices and slices, never files.
package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoData            = errors.New("no panel data")
	ErrNameCountMismatch = errors.New("column name count does not match data columns")
	ErrGroupLenMismatch  = errors.New("group key length does not match row count")
	ErrUnknownColumn     = errors.New("unknown column name")
	ErrNoColumns         = errors.New("no columns selected")
)

// Panel is a row-ordered observation matrix with named columns and an
// optional group key aligned row by row. Row order is significant:
// chronological for time series, individual-then-time for panels.
type Panel struct {
	Names  []string
	Groups []int
	Data   *mat.Dense
}

// NewPanel validates and assembles a panel. groups may be nil for plain
// cross-section or time-series data.
func NewPanel(names []string, groups []int, data *mat.Dense) (*Panel, error) {
	if data == nil {
		return nil, ErrNoData
	}
	m, n := data.Dims()
	if len(names) != n {
		return nil, fmt.Errorf("%d names for %d columns, %w", len(names), n, ErrNameCountMismatch)
	}
	if groups != nil && len(groups) != m {
		return nil, fmt.Errorf("%d group keys for %d rows, %w", len(groups), m, ErrGroupLenMismatch)
	}
	return &Panel{
		Names:  names,
		Groups: groups,
		Data:   data,
	}, nil
}

// NumObs returns the number of rows.
func (p *Panel) NumObs() int {
	m, _ := p.Data.Dims()
	return m
}

// NumGroups returns the number of distinct group keys, or 1 when the panel
// carries no grouping.
func (p *Panel) NumGroups() int {
	if p.Groups == nil {
		return 1
	}
	seen := make(map[int]struct{}, len(p.Groups))
	for _, g := range p.Groups {
		seen[g] = struct{}{}
	}
	return len(seen)
}

func (p *Panel) columnIndex(name string) (int, error) {
	for j, n := range p.Names {
		if n == name {
			return j, nil
		}
	}
	return 0, fmt.Errorf("column %q, %w", name, ErrUnknownColumn)
}

// Column returns a copy of the named column.
func (p *Panel) Column(name string) ([]float64, error) {
	j, err := p.columnIndex(name)
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, j, p.Data), nil
}

// Design builds a regressor matrix from the named columns in order,
// prepending a constant 1.0 column when withConst is set.
func (p *Panel) Design(withConst bool, names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}

	m := p.NumObs()
	cols := len(names)
	offset := 0
	if withConst {
		cols++
		offset = 1
	}

	out := mat.NewDense(m, cols, nil)
	if withConst {
		ones := make([]float64, m)
		floats.AddConst(1.0, ones)
		out.SetCol(0, ones)
	}
	for i, name := range names {
		col, err := p.Column(name)
		if err != nil {
			return nil, err
		}
		out.SetCol(offset+i, col)
	}
	return out, nil
}
