package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyHeader        = errors.New("empty header row")
	ErrUnknownGroupColumn = errors.New("group column not found in header")
)

// LoadCSV reads a panel from CSV with a header row. Every column is parsed
// as float64 except the named group column, which is parsed as integer keys
// and removed from the numeric columns; pass an empty groupColumn for
// ungrouped data.
func LoadCSV(r io.Reader, groupColumn string) (*Panel, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, ErrEmptyHeader
	}

	groupIdx := -1
	if groupColumn != "" {
		for j, name := range header {
			if name == groupColumn {
				groupIdx = j
				break
			}
		}
		if groupIdx < 0 {
			return nil, fmt.Errorf("column %q, %w", groupColumn, ErrUnknownGroupColumn)
		}
	}

	names := make([]string, 0, len(header))
	for j, name := range header {
		if j == groupIdx {
			continue
		}
		names = append(names, name)
	}

	var (
		data   []float64
		groups []int
		row    int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row+2, len(header), len(record))
		}

		for j, s := range record {
			if j == groupIdx {
				g, err := strconv.Atoi(s)
				if err != nil {
					return nil, fmt.Errorf("parse group at row %d col %d (%q): %w", row+2, j+1, s, err)
				}
				groups = append(groups, g)
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse float at row %d col %d (%q): %w", row+2, j+1, s, err)
			}
			data = append(data, v)
		}
		row++
	}
	if row == 0 {
		return nil, ErrNoData
	}

	return NewPanel(names, groups, mat.NewDense(row, len(names), data))
}
