package regress

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrMinimumFeatures        = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenInconsistent = errors.New("some feature length is not consistent")
	ErrFeatureLen             = errors.New("must have at least 2 points per feature")
)

// VarianceInflationFactor measures multicollinearity across named regressor
// columns by regressing each one on all the others. A factor of 1 means no
// collinearity; factors above roughly 10 usually signal a near rank
// deficient design matrix.
func VarianceInflationFactor(features map[string][]float64) (map[string]float64, error) {
	if len(features) < 2 {
		return nil, ErrMinimumFeatures
	}
	n := len(features)
	var m int
	for _, feature := range features {
		if len(feature) < 2 {
			return nil, ErrFeatureLen
		}
		if m == 0 {
			m = len(feature)
			continue
		}
		if m != len(feature) {
			return nil, ErrFeatureLenInconsistent
		}
	}

	vif := make(map[string]float64)
	x := mat.NewDense(m, n-1, nil)
	y := mat.NewDense(m, 1, nil)

	for label, labelFeature := range features {
		y.SetCol(0, labelFeature)
		c := 0
		for otherLabel, otherLabelFeature := range features {
			if otherLabel == label {
				continue
			}
			x.SetCol(c, otherLabelFeature)
			c++
		}

		model, err := NewOLSRegression(&OLSOptions{FitIntercept: true})
		if err != nil {
			return nil, err
		}
		if err := model.Fit(x, y); err != nil {
			return nil, err
		}

		rsq := model.RSquared()
		if rsq >= 1.0 {
			vif[label] = math.Inf(1)
			continue
		}
		vif[label] = 1.0 / (1.0 - rsq)
	}
	return vif, nil
}
