package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InterceptName labels the intercept coefficient in OLS output.
const InterceptName = "const"

// Coefficient is one fitted term of an OLS model.
type Coefficient struct {
	Name string
	Beta float64
	SE   float64
	T    float64
	P    float64 // two-sided
}

// OLSResult is a fitted ordinary-least-squares model.
type OLSResult struct {
	N            int
	DFResid      int
	R2           float64
	AdjR2        float64
	F            float64
	FP           float64
	Coefficients []Coefficient // intercept first, then predictors in input order
}

// FitOLS fits y against the predictor columns with an intercept. All
// columns must have the same length as y. Requires more observations than
// coefficients; a non-invertible design is a SingularDesign degeneracy.
func FitOLS(y []float64, names []string, columns [][]float64) (OLSResult, Degeneracy) {
	var r OLSResult
	n := len(y)
	p := len(columns) + 1 // including intercept
	if n <= p {
		return r, TooFewObservations
	}
	for _, col := range columns {
		if len(col) != n {
			return r, TooFewObservations
		}
	}

	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, col := range columns {
			X.Set(i, j+1, col[i])
		}
	}
	yVec := mat.NewVecDense(n, y)

	var beta mat.VecDense
	if err := beta.SolveVec(X, yVec); err != nil {
		return r, SingularDesign
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return r, SingularDesign
	}

	var fitted mat.VecDense
	fitted.MulVec(X, &beta)

	meanY := stat.Mean(y, nil)
	rss, tss := 0.0, 0.0
	for i := 0; i < n; i++ {
		res := y[i] - fitted.AtVec(i)
		rss += res * res
		dev := y[i] - meanY
		tss += dev * dev
	}
	if tss == 0 {
		return r, ZeroVariance
	}

	r.N = n
	r.DFResid = n - p
	sigma2 := rss / float64(r.DFResid)
	r.R2 = 1 - rss/tss
	r.AdjR2 = 1 - (1-r.R2)*float64(n-1)/float64(r.DFResid)

	dfModel := p - 1
	fDist := distuv.F{D1: float64(dfModel), D2: float64(r.DFResid)}
	if r.R2 >= 1 {
		r.F = math.Inf(1)
		r.FP = 0
	} else {
		r.F = (r.R2 / float64(dfModel)) / ((1 - r.R2) / float64(r.DFResid))
		r.FP = fDist.Survival(r.F)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DFResid)}
	coefNames := append([]string{InterceptName}, names...)
	for j := 0; j < p; j++ {
		c := Coefficient{Name: coefNames[j], Beta: beta.AtVec(j)}
		c.SE = math.Sqrt(sigma2 * inv.At(j, j))
		if c.SE > 0 {
			c.T = c.Beta / c.SE
			c.P = 2 * tDist.Survival(math.Abs(c.T))
		} else {
			c.T = math.NaN()
			c.P = math.NaN()
		}
		r.Coefficients = append(r.Coefficients, c)
	}
	return r, OK
}
