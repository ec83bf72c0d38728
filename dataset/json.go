package dataset

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

type panelJSON struct {
	Names  []string    `json:"names"`
	Groups []int       `json:"groups,omitempty"`
	Rows   [][]float64 `json:"rows"`
}

// LoadJSON reads a panel from its JSON form: column names, optional group
// keys and row-ordered data.
func LoadJSON(r io.Reader) (*Panel, error) {
	var pj panelJSON
	if err := json.NewDecoder(r).Decode(&pj); err != nil {
		return nil, fmt.Errorf("decode panel: %w", err)
	}
	if len(pj.Rows) == 0 {
		return nil, ErrNoData
	}

	n := len(pj.Names)
	data := make([]float64, 0, len(pj.Rows)*n)
	for i, row := range pj.Rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d values for %d names, %w", i, len(row), n, ErrNameCountMismatch)
		}
		data = append(data, row...)
	}

	return NewPanel(pj.Names, pj.Groups, mat.NewDense(len(pj.Rows), n, data))
}

// WriteJSON writes the panel in the form LoadJSON reads.
func (p *Panel) WriteJSON(w io.Writer) error {
	m, n := p.Data.Dims()
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = p.Data.At(i, j)
		}
	}
	return json.NewEncoder(w).Encode(panelJSON{
		Names:  p.Names,
		Groups: p.Groups,
		Rows:   rows,
	})
}
