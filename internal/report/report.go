// Package report renders the analysis results into the plain-text reports
// and image artifacts of the output directory. A failed write is reported
// to the caller, which logs it and moves on; report I/O never aborts the
// pipeline.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Suzuka-Y/B4-2-analysis/internal/analysis"
	"github.com/Suzuka-Y/B4-2-analysis/internal/lexical"
	"github.com/Suzuka-Y/B4-2-analysis/internal/stats"
)

// Report file names inside the output directory.
const (
	DemographicsFile  = "demographics_report.txt"
	ValidityFile      = "manipulation_check_report.txt"
	StrengthFile      = "strength_check_report.txt"
	RegressionPattern = "regression_summary_%s.txt"
	VIFCSVFile        = "vif_statistics.csv"
	VIFReportFile     = "vif_report.txt"
	LexicalFile       = "lexical_frequency_report.txt"
)

// PostHocFile names the post-hoc report for one level; level 0 means the
// pooled run.
func PostHocFile(level int) string {
	if level == 0 {
		return "post-hoc_pooled.txt"
	}
	return fmt.Sprintf("post-hoc_level%d.txt", level)
}

func writeLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

func rule(n int) string { return strings.Repeat("-", n) }

// num formats a float for report output, keeping NaN and Inf readable.
func num(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "-"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "inf"
		}
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// WriteDemographics renders the participant attribute summary.
func WriteDemographics(res analysis.DemographicsResult, path string) error {
	lines := []string{"=== Demographics Report ===", ""}
	lines = append(lines, fmt.Sprintf("Total Participants (N): %d", res.N), "")

	if res.HasAge {
		lines = append(lines,
			"--- Age ---",
			fmt.Sprintf("Mean: %s, SD: %s", num(res.Age.Mean, 2), num(res.Age.SD, 2)),
			fmt.Sprintf("Range: %s - %s", num(res.Age.Min, 0), num(res.Age.Max, 0)),
			"")
	}
	if res.HasGender {
		lines = append(lines, "--- Gender ---")
		for _, g := range res.Genders {
			pct := 100 * float64(g.Count) / float64(res.N)
			lines = append(lines, fmt.Sprintf("%s: %d (%.1f%%)", g.Label, g.Count, pct))
		}
		lines = append(lines, "")
	}
	if res.HasDuration {
		lines = append(lines,
			"--- Response Time ---",
			fmt.Sprintf("Mean: %s, SD: %s", num(res.Duration.Mean, 2), num(res.Duration.SD, 2)))
	}
	return writeLines(path, lines)
}

// WriteValidity renders the manipulation-check table. Degenerate rows are
// annotated with the reason the test was skipped.
func WriteValidity(rows []analysis.ValidityRow, path string) error {
	lines := []string{
		"==================================================",
		"  Manipulation Check (Validity Test)",
		"==================================================",
		fmt.Sprintf("%-12s %-8s %10s %10s %8s %8s %9s  %s",
			"Category", "Target", "Mean_Base", "Mean_Stim", "Diff", "t-stat", "p-val", "Sig"),
		rule(80),
	}
	for _, r := range rows {
		if !r.Deg.Valid() {
			lines = append(lines, fmt.Sprintf("%-12s %-8s %s (test skipped: %s)",
				r.Category, r.TargetQ, strings.Repeat(" ", 10), r.Deg))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %-8s %10s %10s %8s %8s %9s  %s",
			r.Category, r.TargetQ,
			num(r.Result.MeanBase, 2), num(r.Result.MeanStim, 2), num(r.Result.Diff, 2),
			num(r.Result.T, 3), num(r.Result.P, 4), r.Sig))
	}
	lines = append(lines, rule(80), "** : p < 0.01, * : p < 0.05, n.s. : not significant")
	return writeLines(path, lines)
}

// WriteStrength renders the homogeneity check: per-category descriptives
// and the ANOVA verdict for each level (or the pooled run).
func WriteStrength(results []analysis.StrengthResult, path string) error {
	lines := []string{
		"==================================================",
		"  Manipulation Strength Check (ANOVA)",
		"==================================================",
	}
	for _, res := range results {
		scope := "pooled levels"
		if !res.Pooled {
			scope = fmt.Sprintf("level %d", res.Level)
		}
		lines = append(lines, "", fmt.Sprintf("--- %s ---", scope),
			fmt.Sprintf("%-12s %6s %10s %10s %10s %10s",
				"Category", "N", "Mean", "SD", "Min", "Max"))
		for _, g := range res.Groups {
			lines = append(lines, fmt.Sprintf("%-12s %6d %10s %10s %10s %10s",
				g.Category, g.Stats.Count, num(g.Stats.Mean, 4), num(g.Stats.SD, 4),
				num(g.Stats.Min, 4), num(g.Stats.Max, 4)))
		}
		if !res.Deg.Valid() {
			lines = append(lines, fmt.Sprintf("ANOVA invalid, skipped: %s", res.Deg))
			continue
		}
		verdict := "homogeneous (no significant difference)"
		if res.Anova.P < 0.05 {
			verdict = "NOT homogeneous (significant difference between categories)"
		}
		lines = append(lines,
			fmt.Sprintf("F(%d, %d) = %s, p = %s",
				res.Anova.DFBetween, res.Anova.DFWithin, num(res.Anova.F, 4), num(res.Anova.P, 4)),
			fmt.Sprintf("Verdict: %s", verdict))
		if res.Anova.P < 0.05 && !res.PostHocDeg.Valid() {
			lines = append(lines, fmt.Sprintf("Post-hoc comparison skipped: %s", res.PostHocDeg))
		}
	}
	return writeLines(path, lines)
}

// WritePostHoc renders the Tukey-Kramer pairwise table of one level.
func WritePostHoc(res analysis.StrengthResult, path string) error {
	lines := []string{
		"============================================================",
		"  Post-hoc Test Results (Tukey-Kramer Method)",
		"============================================================",
		rule(70),
		fmt.Sprintf("%-12s | %-12s | %10s | %8s | %s",
			"Group 1", "Group 2", "Mean Diff", "p-adj", "Significant"),
		rule(70),
	}
	for _, p := range res.PostHoc {
		mark := ""
		resBool := "No"
		if p.Reject {
			mark = "*"
			resBool = "Yes"
		}
		lines = append(lines, fmt.Sprintf("%-12s | %-12s | %10s | %8s | %-5s %s",
			p.Group1, p.Group2, num(p.MeanDiff, 4), num(p.PAdj, 4), resBool, mark))
	}
	lines = append(lines,
		rule(70),
		"* : p < 0.05",
		"A 'Yes' pair differs clearly in manipulation strength.",
		"A positive Mean Diff means Group 2 is stronger, negative means Group 1.")
	return writeLines(path, lines)
}

// WriteRegression renders the fitted model of one outcome.
func WriteRegression(outcome analysis.RegressionOutcome, res analysis.RegressionResult, path string) error {
	lines := []string{
		"==================================================",
		fmt.Sprintf("  OLS Regression: outcome %s", outcome.Target),
		"==================================================",
		fmt.Sprintf("Observations: %d (non-base rows, complete cases)", res.NSamples),
		fmt.Sprintf("Standardized inputs: %t", res.Standardized),
		"",
	}
	if !outcome.Deg.Valid() {
		lines = append(lines, fmt.Sprintf("Model not fitted: %s", outcome.Deg))
		return writeLines(path, lines)
	}
	fit := outcome.Fit
	lines = append(lines,
		fmt.Sprintf("R-squared:       %s", num(fit.R2, 4)),
		fmt.Sprintf("Adj. R-squared:  %s", num(fit.AdjR2, 4)),
		fmt.Sprintf("F-statistic:     %s (p = %s)", num(fit.F, 4), num(fit.FP, 4)),
		"",
		fmt.Sprintf("%-8s %10s %10s %10s %10s  %s", "Factor", "Beta", "SE", "t", "p", "Sig"),
		rule(60),
	)
	for _, c := range fit.Coefficients {
		mark := ""
		switch {
		case c.P < 0.01:
			mark = "**"
		case c.P < 0.05:
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%-8s %10s %10s %10s %10s  %s",
			c.Name, num(c.Beta, 4), num(c.SE, 4), num(c.T, 4), num(c.P, 4), mark))
	}
	lines = append(lines, rule(60), "** : p < 0.01, * : p < 0.05")
	return writeLines(path, lines)
}

// WriteLexical renders the word-by-category count matrix as a text table,
// words down, categories across.
func WriteLexical(ct *lexical.CrossTab, path string) error {
	lines := []string{
		"==================================================",
		"  Frequent Words by Category (top words, base forms)",
		"==================================================",
	}
	header := fmt.Sprintf("%-14s", "Word")
	for _, c := range ct.Categories {
		header += fmt.Sprintf(" %10s", c)
	}
	lines = append(lines, header, rule(len(header)))
	for j, w := range ct.Words {
		line := fmt.Sprintf("%-14s", w)
		for i := range ct.Categories {
			line += fmt.Sprintf(" %10d", ct.Counts[i][j])
		}
		lines = append(lines, line)
	}
	return writeLines(path, lines)
}

// WriteVIFCSV persists the raw VIF values.
func WriteVIFCSV(vifs []stats.VIFResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Factor", "VIF"}); err != nil {
		return err
	}
	for _, v := range vifs {
		if err := w.Write([]string{v.Name, num(v.VIF, 6)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteVIFReport renders the multicollinearity verdict.
func WriteVIFReport(res analysis.RegressionResult, path string) error {
	lines := []string{
		"Multicollinearity Check Report (VIF)",
		"====================================",
		fmt.Sprintf("Data Points: %d", res.NSamples),
		rule(50),
	}
	if !res.VIFDeg.Valid() {
		lines = append(lines, fmt.Sprintf("VIF not computed: %s", res.VIFDeg))
		return writeLines(path, lines)
	}
	lines = append(lines,
		fmt.Sprintf("%-10s %10s %10s", "Factor", "VIF", "Result"),
		rule(50))
	for _, v := range res.VIFs {
		lines = append(lines, fmt.Sprintf("%-10s %10s %10s", v.Name, num(v.VIF, 4), v.Class))
	}
	lines = append(lines,
		rule(50),
		"  VIF < 5.0  : Safe",
		"  VIF >= 10.0: Danger",
		"No multicollinearity concern when every factor is 'Safe'.")
	return writeLines(path, lines)
}
