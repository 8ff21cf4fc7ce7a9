package pipeline

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Suzuka-Y/B4-2-analysis/internal/lexical"
	"github.com/Suzuka-Y/B4-2-analysis/internal/report"
	"github.com/Suzuka-Y/B4-2-analysis/internal/sqlite"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// spaceTokenizer stands in for the dictionary tokenizer: every
// space-separated token is treated as a noun in base form.
type spaceTokenizer struct{}

func (spaceTokenizer) Tokenize(text string) []lexical.Word {
	var words []lexical.Word
	for _, tok := range strings.Fields(text) {
		words = append(words, lexical.Word{Surface: tok, Base: tok, POS: "名詞"})
	}
	return words
}

var stimulusColumns = []string{"position2", "size2", "lack2", "repetition2", "human2"}

// writeParticipant generates one wide CSV plus a written-answer log with
// a block per category.
func writeParticipant(t *testing.T, inputDir string, pid int, rng *rand.Rand) {
	t.Helper()

	var b strings.Builder
	b.WriteString("questions,base," + strings.Join(stimulusColumns, ",") + ",PID,age,sex,expTime\n")
	for q := 1; q <= 7; q++ {
		b.WriteString(fmt.Sprintf("q%d,%d", q, 1+rng.Intn(3)))
		for range stimulusColumns {
			b.WriteString(fmt.Sprintf(",%d", 3+rng.Intn(5)))
		}
		if q == 1 {
			sex := "female"
			if pid%2 == 0 {
				sex = "male"
			}
			b.WriteString(fmt.Sprintf(",%d,%d,%s,%.1f\n", pid, 20+pid%5, sex, 30+float64(pid)))
		} else {
			b.WriteString(",,,,\n")
		}
	}
	quant := filepath.Join(inputDir, "quant_data")
	require.NoError(t, os.WriteFile(filepath.Join(quant, fmt.Sprintf("%d_log.csv", pid)), []byte(b.String()), 0o644))

	var q strings.Builder
	reasons := []string{"ゆがみ こわい", "大きい 大きい こわい", "欠損 不安", "繰り返し 違和感", "ひと ゆがみ"}
	for set := 1; set <= 5; set++ {
		fmt.Fprintf(&q, "Set Index: %d\n", set)
		q.WriteString("A.Q1 answer field: はい\n")
		q.WriteString("reason: " + reasons[set-1] + "\n")
		q.WriteString("A.Q2 answer field: すこし\n")
		q.WriteString("reason: " + reasons[(set)%5] + "\n")
	}
	qual := filepath.Join(inputDir, "qual_data")
	require.NoError(t, os.WriteFile(filepath.Join(qual, fmt.Sprintf("PID=%d.txt", pid)), []byte(q.String()), 0o644))
}

func setupInput(t *testing.T, participants int) string {
	t.Helper()
	inputDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "quant_data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "qual_data"), 0o755))

	rng := rand.New(rand.NewSource(42))
	for pid := 1; pid <= participants; pid++ {
		writeParticipant(t, inputDir, pid, rng)
	}
	return inputDir
}

func TestRunEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end run")
	}
	cfg := types.DefaultConfig()
	cfg.InputDir = setupInput(t, 8)
	cfg.OutputDir = t.TempDir()

	p := New(cfg, zap.NewNop().Sugar())
	p.Tokenizer = spaceTokenizer{}
	require.NoError(t, p.Run())

	for _, name := range []string{
		TidyFile,
		AnonymizedFile,
		StandardizedFile,
		report.DemographicsFile,
		report.ValidityFile,
		report.StrengthFile,
		"regression_summary_q1.txt",
		"regression_summary_q2.txt",
		report.VIFCSVFile,
		report.VIFReportFile,
		report.LexicalFile,
		sqlite.DBFile,
	} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, name)
	}

	validity, err := os.ReadFile(filepath.Join(cfg.OutputDir, report.ValidityFile))
	require.NoError(t, err)
	for _, category := range []string{"position", "size", "lack", "repetition", "human"} {
		assert.Contains(t, string(validity), category)
	}
	assert.NotContains(t, string(validity), "NaN")

	anon, err := os.ReadFile(filepath.Join(cfg.OutputDir, AnonymizedFile))
	require.NoError(t, err)
	header := strings.SplitN(string(anon), "\n", 2)[0]
	assert.NotContains(t, header, "age")
	assert.NotContains(t, header, "sex")
	assert.NotContains(t, header, "expTime")

	demo, err := os.ReadFile(filepath.Join(cfg.OutputDir, report.DemographicsFile))
	require.NoError(t, err)
	assert.Contains(t, string(demo), "Total Participants (N): 8")
}

func TestRunRecordsSnapshots(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end run")
	}
	cfg := types.DefaultConfig()
	cfg.InputDir = setupInput(t, 4)
	cfg.OutputDir = t.TempDir()

	p := New(cfg, zap.NewNop().Sugar())
	p.Tokenizer = spaceTokenizer{}
	require.NoError(t, p.Run())

	store, err := sqlite.Open(cfg.OutputDir)
	require.NoError(t, err)
	defer store.Close()

	runID, err := store.LatestRun()
	require.NoError(t, err)

	status, err := store.RunStatus(runID)
	require.NoError(t, err)
	assert.Equal(t, sqlite.StatusCompleted, status)

	infos, err := store.Snapshots(runID)
	require.NoError(t, err)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{"tidy", "anonymized", "standardized"}, names)
}

func TestRunEmptyInputIsFatal(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.InputDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.InputDir, "quant_data"), 0o755))

	p := New(cfg, zap.NewNop().Sugar())
	assert.Error(t, p.Run())
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Categories = nil

	p := New(cfg, zap.NewNop().Sugar())
	assert.ErrorIs(t, p.Run(), types.ErrNoCategories)
}

func TestRunPerLevelStrength(t *testing.T) {
	if testing.Short() {
		t.Skip("end-to-end run")
	}
	cfg := types.DefaultConfig()
	cfg.InputDir = setupInput(t, 6)
	cfg.OutputDir = t.TempDir()
	cfg.PoolLevels = false

	p := New(cfg, zap.NewNop().Sugar())
	p.Tokenizer = spaceTokenizer{}
	require.NoError(t, p.Run())

	strength, err := os.ReadFile(filepath.Join(cfg.OutputDir, report.StrengthFile))
	require.NoError(t, err)
	assert.Contains(t, string(strength), "--- level 2 ---")
}
