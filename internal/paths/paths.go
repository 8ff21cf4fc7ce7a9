// Package paths resolves the input and output directory locations for a
// pipeline run.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative defaults used when no override is active.
const (
	DefaultInputDirName  = "."
	DefaultOutputDirName = "generated"
)

// Environment variable names for directory overrides.
const (
	EnvInputDir  = "ANALYZE_INPUT_DIR"
	EnvOutputDir = "ANALYZE_OUTPUT_DIR"
)

// FiguresDirName is the subdirectory of the output directory that holds
// image artifacts.
const FiguresDirName = "figures"

// ResolveInputDir returns the input directory following the precedence
// chain: flag > config file value > ANALYZE_INPUT_DIR env > CWD.
func ResolveInputDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvInputDir, DefaultInputDirName)
}

// ResolveOutputDir returns the output directory following the precedence
// chain: flag > config file value > ANALYZE_OUTPUT_DIR env > $(CWD)/generated.
func ResolveOutputDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvOutputDir, DefaultOutputDirName)
}

func resolve(flag, configValue, envName, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(envName); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if defaultName == "." {
		return cwd, nil
	}
	return filepath.Join(cwd, defaultName), nil
}

// QuantDir returns the quantitative-data directory under the input dir.
func QuantDir(inputDir string) string {
	return filepath.Join(inputDir, "quant_data")
}

// QualDir returns the written-answer log directory under the input dir.
func QualDir(inputDir string) string {
	return filepath.Join(inputDir, "qual_data")
}

// FiguresDir returns the figures directory under the output dir.
func FiguresDir(outputDir string) string {
	return filepath.Join(outputDir, FiguresDirName)
}

// EnsureOutputDirs creates the output directory and its figures
// subdirectory if they do not exist.
func EnsureOutputDirs(outputDir string) error {
	return os.MkdirAll(FiguresDir(outputDir), 0o755)
}
