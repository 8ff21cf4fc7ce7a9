package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Suzuka-Y/B4-2-analysis/internal/analysis"
	"github.com/Suzuka-Y/B4-2-analysis/internal/lexical"
	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
)

// Figure file names inside the figures directory.
const (
	StrengthFigurePattern = "strength_deltas_%s.png"
	CoefficientFigure     = "regression_coefficients.png"
	LexicalFigure         = "lexical_crosstab.png"
)

// StrengthFigureFile names the delta box plot for one level; level 0
// means the pooled run.
func StrengthFigureFile(level int) string {
	if level == 0 {
		return fmt.Sprintf(StrengthFigurePattern, "pooled")
	}
	return fmt.Sprintf(StrengthFigurePattern, fmt.Sprintf("level%d", level))
}

// SaveStrengthBoxPlot draws one box per category over the delta
// distributions of a strength-check grouping.
func SaveStrengthBoxPlot(res analysis.StrengthResult, path string) error {
	p := plot.New()
	p.Title.Text = "Manipulation strength (delta vs base)"
	p.Y.Label.Text = "standardized q1 delta"

	names := make([]string, 0, len(res.Groups))
	for i, g := range res.Groups {
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(g.Deltas))
		if err != nil {
			return err
		}
		p.Add(box)
		names = append(names, g.Category)
	}
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveCoefficientBarChart draws the regression betas, one bar group per
// predictor with a bar per outcome. The intercept is omitted.
func SaveCoefficientBarChart(res analysis.RegressionResult, path string) error {
	p := plot.New()
	p.Title.Text = "Regression coefficients"
	p.Y.Label.Text = "beta"

	colors := []color.Color{
		color.RGBA{R: 77, G: 121, B: 168, A: 255},
		color.RGBA{R: 225, G: 121, B: 62, A: 255},
	}

	width := vg.Points(16)
	var names []string
	drawn := 0
	for oi, outcome := range res.Outcomes {
		if !outcome.Deg.Valid() {
			continue
		}
		var betas plotter.Values
		var outNames []string
		for _, c := range outcome.Fit.Coefficients {
			if c.Name == stats.InterceptName {
				continue
			}
			betas = append(betas, c.Beta)
			outNames = append(outNames, c.Name)
		}
		bars, err := plotter.NewBarChart(betas, width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = 0
		bars.Color = colors[oi%len(colors)]
		bars.Offset = width * vg.Length(drawn)
		p.Add(bars)
		p.Legend.Add(outcome.Target, bars)
		if names == nil {
			names = outNames
		}
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("no fitted model to plot")
	}
	p.NominalX(names...)
	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// crossTabGrid adapts a lexical cross-tabulation to the heat map grid.
type crossTabGrid struct {
	ct *lexical.CrossTab
}

func (g crossTabGrid) Dims() (c, r int)   { return len(g.ct.Words), len(g.ct.Categories) }
func (g crossTabGrid) Z(c, r int) float64 { return float64(g.ct.Counts[r][c]) }
func (g crossTabGrid) X(c int) float64    { return float64(c) }
func (g crossTabGrid) Y(r int) float64    { return float64(r) }

// SaveLexicalHeatmap draws the word-by-category count matrix.
func SaveLexicalHeatmap(ct *lexical.CrossTab, path string) error {
	if len(ct.Words) == 0 || len(ct.Categories) == 0 {
		return fmt.Errorf("empty cross-tabulation")
	}

	pal := moreland.SmoothBlueRed().Palette(64)
	hm := plotter.NewHeatMap(crossTabGrid{ct: ct}, pal)

	p := plot.New()
	p.Title.Text = "Frequent words by category"
	p.X.Tick.Marker = wordTicks{labels: ct.Words}
	p.Y.Tick.Marker = wordTicks{labels: ct.Categories}
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Add(hm)
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// wordTicks places one labeled tick per matrix index.
type wordTicks struct {
	labels []string
}

func (t wordTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, label := range t.labels {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}
