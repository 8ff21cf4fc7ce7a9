package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInputDirPrecedence(t *testing.T) {
	t.Setenv(EnvInputDir, "/env/input")

	got, err := ResolveInputDir("/flag/input", "/config/input")
	require.NoError(t, err)
	assert.Equal(t, "/flag/input", got)

	got, err = ResolveInputDir("", "/config/input")
	require.NoError(t, err)
	assert.Equal(t, "/config/input", got)

	got, err = ResolveInputDir("", "")
	require.NoError(t, err)
	assert.Equal(t, "/env/input", got)
}

func TestResolveInputDirDefault(t *testing.T) {
	t.Setenv(EnvInputDir, "")

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveInputDir("", "")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)
}

func TestResolveOutputDirDefault(t *testing.T) {
	t.Setenv(EnvOutputDir, "")

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveOutputDir("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, DefaultOutputDirName), got)
}

func TestEnsureOutputDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, EnsureOutputDirs(out))

	info, err := os.Stat(FiguresDir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInputSubdirs(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "quant_data"), QuantDir("in"))
	assert.Equal(t, filepath.Join("in", "qual_data"), QualDir("in"))
}
