package resample

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a matrix of simulated coefficient vectors into a
// Monte-Carlo mean and standard deviation per coefficient. The standard
// deviation is reported as the bootstrap standard error.
type Summary struct {
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"std_dev"`
}

// Summarize computes per-column mean and standard deviation over the
// simulation rows produced by Bootstrap or BlockBootstrap.
func Summarize(coefs mat.Matrix) *Summary {
	_, n := coefs.Dims()
	s := &Summary{
		Mean:   make([]float64, n),
		StdDev: make([]float64, n),
	}
	for j := 0; j < n; j++ {
		col := mat.Col(nil, j, coefs)
		s.Mean[j], s.StdDev[j] = stat.MeanStdDev(col, nil)
	}
	return s
}
