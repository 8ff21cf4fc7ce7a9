// Config loading for the analyze CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Suzuka-Y/B4-2-analysis/internal/paths"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

const (
	configFileName = "analyze"
	configFileType = "yaml"
	envPrefix      = "ANALYZE"
)

// defaultLoadedConfig is the configuration used before PersistentPreRunE
// has run, for commands executed without the cobra lifecycle.
func defaultLoadedConfig() types.Config {
	return types.DefaultConfig()
}

// loadConfig resolves the effective configuration. An explicit --config
// file must exist; the implicit ./analyze.yaml may be absent. Directory
// flags and ANALYZE_* environment variables override file values.
func loadConfig(configFile, inputFlag, outputFlag string) (types.Config, error) {
	defaults := types.DefaultConfig()

	v := viper.New()
	v.SetDefault("keep_level", defaults.KeepLevel)
	v.SetDefault("base_level", defaults.BaseLevel)
	v.SetDefault("pool_levels", defaults.PoolLevels)
	v.SetDefault("standardize_before_regression", defaults.StandardizeBeforeRegression)
	v.SetDefault("sentinel.column", defaults.Sentinel.Column)
	v.SetDefault("sentinel.missing", defaults.Sentinel.Missing)
	v.SetDefault("sentinel.replacement", defaults.Sentinel.Replacement)
	v.SetDefault("schema.pid", defaults.Schema.PID)
	v.SetDefault("schema.age", defaults.Schema.Age)
	v.SetDefault("schema.gender", defaults.Schema.Gender)
	v.SetDefault("schema.duration", defaults.Schema.Duration)
	v.SetDefault("categories", defaults.Categories)
	v.SetDefault("targets", defaults.Targets)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return defaults, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return defaults, fmt.Errorf("read config: %w", err)
			}
			// Missing implicit config file is not an error.
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults, fmt.Errorf("parse config: %w", err)
	}

	inputDir, err := paths.ResolveInputDir(inputFlag, cfg.InputDir)
	if err != nil {
		return defaults, err
	}
	outputDir, err := paths.ResolveOutputDir(outputFlag, cfg.OutputDir)
	if err != nil {
		return defaults, err
	}
	cfg.InputDir = inputDir
	cfg.OutputDir = outputDir

	if err := cfg.Validate(); err != nil {
		return defaults, err
	}
	return cfg, nil
}
