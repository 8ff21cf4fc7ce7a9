// Package pipeline orchestrates the full analysis run: dataset assembly,
// anonymization, standardization, statistical checks, and report output.
package pipeline

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Suzuka-Y/B4-2-analysis/internal/analysis"
	"github.com/Suzuka-Y/B4-2-analysis/internal/dataset"
	"github.com/Suzuka-Y/B4-2-analysis/internal/lexical"
	"github.com/Suzuka-Y/B4-2-analysis/internal/paths"
	"github.com/Suzuka-Y/B4-2-analysis/internal/report"
	"github.com/Suzuka-Y/B4-2-analysis/internal/sqlite"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// Persisted table file names inside the output directory.
const (
	TidyFile         = "integrated_tidy_data.csv"
	AnonymizedFile   = "integrated_tidy_data_anon.csv"
	StandardizedFile = "standardized_data.csv"
)

// lexicalTopN is how many of the most frequent words the cross-tabulation
// keeps.
const lexicalTopN = 30

// Pipeline runs the analysis stages in a fixed order. Failure to produce
// any single report is logged and skipped; only a dataset that cannot be
// built at all aborts the run.
type Pipeline struct {
	cfg types.Config
	log *zap.SugaredLogger

	// Tokenizer overrides the dictionary tokenizer, used by tests. When
	// nil the IPA dictionary tokenizer is constructed on demand.
	Tokenizer lexical.Tokenizer
}

// New returns a Pipeline over the given configuration.
func New(cfg types.Config, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes every stage. The returned error is non-nil only for fatal
// conditions: unusable configuration, an unwritable output directory, or
// an input directory yielding no data.
func (p *Pipeline) Run() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := paths.EnsureOutputDirs(p.cfg.OutputDir); err != nil {
		return err
	}

	store, runID := p.openStore()
	if store != nil {
		defer store.Close()
	}

	table, err := dataset.Build(paths.QuantDir(p.cfg.InputDir), paths.QualDir(p.cfg.InputDir), p.cfg, p.log)
	if err != nil {
		p.finishRun(store, runID, true)
		return err
	}
	table = dataset.FilterKeepLevel(table, p.cfg.KeepLevel)
	if len(table.Rows) == 0 {
		p.finishRun(store, runID, true)
		return dataset.ErrNoData
	}
	p.log.Infow("dataset built",
		"rows", len(table.Rows),
		"participants", len(table.ParticipantIDs()),
		"keep_level", p.cfg.KeepLevel)

	p.persist(store, runID, "tidy", table, TidyFile)
	p.demographics(table)

	anon := p.anonymize(table)
	p.persist(store, runID, "anonymized", anon, AnonymizedFile)

	p.validity(anon)

	std := dataset.Standardize(anon, types.QuestionColumns)
	p.persist(store, runID, "standardized", std, StandardizedFile)

	p.strength(std)
	p.regression(anon)
	p.lexical(anon)

	p.finishRun(store, runID, false)
	p.log.Infow("analysis complete", "output_dir", p.cfg.OutputDir)
	return nil
}

// openStore opens the results store and registers the run. A store
// failure downgrades to a warning; the run proceeds without auditing.
func (p *Pipeline) openStore() (*sqlite.Store, string) {
	store, err := sqlite.Open(p.cfg.OutputDir)
	if err != nil {
		p.log.Warnw("results store unavailable", "error", err)
		return nil, ""
	}
	runID, err := store.BeginRun(p.cfg)
	if err != nil {
		p.log.Warnw("run registration failed", "error", err)
		store.Close()
		return nil, ""
	}
	p.log.Infow("run registered", "run_id", runID)
	return store, runID
}

func (p *Pipeline) finishRun(store *sqlite.Store, runID string, failed bool) {
	if store == nil {
		return
	}
	if err := store.FinishRun(runID, failed); err != nil {
		p.log.Warnw("run finalization failed", "error", err)
	}
}

// persist writes the table as CSV and snapshots it into the store.
func (p *Pipeline) persist(store *sqlite.Store, runID, name string, t *types.Table, file string) {
	path := filepath.Join(p.cfg.OutputDir, file)
	if err := dataset.WriteCSV(t, path); err != nil {
		p.log.Errorw("table write failed", "table", name, "path", path, "error", err)
		return
	}
	p.log.Infow("table written", "table", name, "path", path, "rows", len(t.Rows))
	if store == nil {
		return
	}
	if err := store.Snapshot(runID, name, t); err != nil {
		p.log.Warnw("snapshot failed", "table", name, "error", err)
	}
}

func (p *Pipeline) demographics(t *types.Table) {
	res, ok := analysis.Demographics(t)
	if !ok {
		p.log.Warnw("demographics skipped", "reason", "no attribute columns in input")
		return
	}
	path := filepath.Join(p.cfg.OutputDir, report.DemographicsFile)
	if err := report.WriteDemographics(res, path); err != nil {
		p.log.Errorw("demographics report failed", "error", err)
		return
	}
	p.log.Infow("demographics reported", "participants", res.N)
}

// anonymize strips the sensitive attribute columns and applies the
// configured sentinel cleanup.
func (p *Pipeline) anonymize(t *types.Table) *types.Table {
	dropped := dataset.DroppedColumns(t)
	anon := dataset.Anonymize(t)
	if len(dropped) > 0 {
		p.log.Infow("columns dropped", "columns", dropped)
	}
	if p.cfg.Sentinel.Column != "" {
		anon = dataset.ReplaceSentinel(anon, p.cfg.Sentinel.Column, p.cfg.Sentinel.Missing, p.cfg.Sentinel.Replacement)
	}
	return anon
}

func (p *Pipeline) validity(t *types.Table) {
	rows := analysis.Validity(t, p.cfg.Targets)
	if len(rows) == 0 {
		p.log.Warnw("manipulation check produced no comparisons")
		return
	}
	path := filepath.Join(p.cfg.OutputDir, report.ValidityFile)
	if err := report.WriteValidity(rows, path); err != nil {
		p.log.Errorw("manipulation check report failed", "error", err)
		return
	}
	p.log.Infow("manipulation check reported", "categories", len(rows))
}

func (p *Pipeline) strength(std *types.Table) {
	results := analysis.StrengthCheck(std, p.cfg.PoolLevels)
	path := filepath.Join(p.cfg.OutputDir, report.StrengthFile)
	if err := report.WriteStrength(results, path); err != nil {
		p.log.Errorw("strength report failed", "error", err)
	}

	for _, res := range results {
		if len(res.PostHoc) > 0 {
			phPath := filepath.Join(p.cfg.OutputDir, report.PostHocFile(res.Level))
			if err := report.WritePostHoc(res, phPath); err != nil {
				p.log.Errorw("post-hoc report failed", "level", res.Level, "error", err)
			}
		}
		if len(res.Groups) == 0 {
			continue
		}
		figPath := filepath.Join(paths.FiguresDir(p.cfg.OutputDir), report.StrengthFigureFile(res.Level))
		if err := report.SaveStrengthBoxPlot(res, figPath); err != nil {
			p.log.Errorw("strength figure failed", "level", res.Level, "error", err)
		}
	}
}

func (p *Pipeline) regression(t *types.Table) {
	res := analysis.Regression(t, p.cfg.StandardizeBeforeRegression)
	if res.NSamples == 0 {
		p.log.Warnw("regression skipped", "reason", "no complete non-base rows")
		return
	}

	for _, outcome := range res.Outcomes {
		path := filepath.Join(p.cfg.OutputDir, "regression_summary_"+outcome.Target+".txt")
		if err := report.WriteRegression(outcome, res, path); err != nil {
			p.log.Errorw("regression report failed", "outcome", outcome.Target, "error", err)
		}
	}

	if res.VIFDeg.Valid() {
		if err := report.WriteVIFCSV(res.VIFs, filepath.Join(p.cfg.OutputDir, report.VIFCSVFile)); err != nil {
			p.log.Errorw("vif statistics write failed", "error", err)
		}
	}
	if err := report.WriteVIFReport(res, filepath.Join(p.cfg.OutputDir, report.VIFReportFile)); err != nil {
		p.log.Errorw("vif report failed", "error", err)
	}

	figPath := filepath.Join(paths.FiguresDir(p.cfg.OutputDir), report.CoefficientFigure)
	if err := report.SaveCoefficientBarChart(res, figPath); err != nil {
		p.log.Errorw("coefficient figure failed", "error", err)
	}
}

func (p *Pipeline) lexical(t *types.Table) {
	tok := p.Tokenizer
	if tok == nil {
		var err error
		tok, err = lexical.NewKagomeTokenizer()
		if err != nil {
			p.log.Errorw("tokenizer unavailable", "error", err)
			return
		}
	}

	ct, err := lexical.NewAnalyzer(tok).Analyze(t, lexicalTopN)
	if err != nil {
		p.log.Warnw("lexical analysis skipped", "reason", err)
		return
	}

	if err := report.WriteLexical(ct, filepath.Join(p.cfg.OutputDir, report.LexicalFile)); err != nil {
		p.log.Errorw("lexical report failed", "error", err)
	}
	figPath := filepath.Join(paths.FiguresDir(p.cfg.OutputDir), report.LexicalFigure)
	if err := report.SaveLexicalHeatmap(ct, figPath); err != nil {
		p.log.Errorw("lexical figure failed", "error", err)
	}
	p.log.Infow("lexical analysis reported", "words", len(ct.Words), "categories", len(ct.Categories))
}
