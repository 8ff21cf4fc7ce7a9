package stats

import "math"

// VIF classification thresholds. The boundaries belong to the worse band:
// exactly 5 is Caution, exactly 10 is Danger.
const (
	vifCaution = 5.0
	vifDanger  = 10.0
)

// VIF band labels.
const (
	VIFSafe    = "Safe"
	VIFCaution = "Caution"
	VIFDanger  = "Danger"
)

// VIFResult is the variance inflation factor of one predictor.
type VIFResult struct {
	Name  string
	VIF   float64
	Class string
}

// ClassifyVIF maps a VIF value onto its band.
func ClassifyVIF(v float64) string {
	switch {
	case v >= vifDanger:
		return VIFDanger
	case v >= vifCaution:
		return VIFCaution
	default:
		return VIFSafe
	}
}

// VIFs computes the variance inflation factor of every predictor by
// regressing it (with an intercept) on the remaining predictors. A
// perfectly collinear predictor yields +Inf and the Danger band.
func VIFs(names []string, columns [][]float64) ([]VIFResult, Degeneracy) {
	if len(columns) < 2 {
		return nil, TooFewGroups
	}

	var out []VIFResult
	for j := range columns {
		restNames := make([]string, 0, len(columns)-1)
		rest := make([][]float64, 0, len(columns)-1)
		for m := range columns {
			if m != j {
				restNames = append(restNames, names[m])
				rest = append(rest, columns[m])
			}
		}
		fit, deg := FitOLS(columns[j], restNames, rest)
		if !deg.Valid() {
			if deg == SingularDesign {
				out = append(out, VIFResult{Name: names[j], VIF: math.Inf(1), Class: VIFDanger})
				continue
			}
			return nil, deg
		}
		v := math.Inf(1)
		if fit.R2 < 1 {
			v = 1 / (1 - fit.R2)
		}
		out = append(out, VIFResult{Name: names[j], VIF: v, Class: ClassifyVIF(v)})
	}
	return out, OK
}
