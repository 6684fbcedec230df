package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/jointables/internal/config"
	"github.com/vvka-141/jointables/pkg/jointables"
)

// Environment variables consulted when the matching flag is not set.
const (
	envFeatureColumn = "JOINTABLES_FEATURE_COLUMN"
	envValueColumn   = "JOINTABLES_VALUE_COLUMN"
	envOutfile       = "JOINTABLES_OUTFILE"
	envFillNA        = "JOINTABLES_FILLNA"
	envFormat        = "JOINTABLES_FORMAT"
	envStrict        = "JOINTABLES_STRICT"
)

type joinFlagValues struct {
	featureColumn, valueColumn, outfile string
	fillNA                              float64
	format                              string
	strict                              bool
	configPath                          string
}

var joinFlags joinFlagValues

// loadFileConfig loads godotenv and the YAML defaults file.
// An explicit --config path must exist; the implicit ./jointables.yaml may not.
func loadFileConfig(configPath string) (*config.FileConfig, error) {
	_ = godotenv.Load()

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file '%s' not found: %w", configPath, jointables.ErrInvalidConfig)
		}
		return cfg, err
	}

	cfg, err := config.LoadDefault(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.FileConfig{}, nil
	}
	return cfg, err
}

// envValue returns a non-empty environment variable.
func envValue(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// resolveString applies flag > environment > file > flag default.
func resolveString(cmd *cobra.Command, flagName, flagValue, envKey, fileValue string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if v, ok := envValue(envKey); ok {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return flagValue
}

// buildJoinConfig builds a JoinConfig from CLI flags, environment and jointables.yaml.
// This function is extracted for testability and separation of concerns.
func buildJoinConfig(cmd *cobra.Command, tables []string, verbose bool) (jointables.JoinConfig, error) {
	fileCfg, err := loadFileConfig(joinFlags.configPath)
	if err != nil {
		return jointables.JoinConfig{}, err
	}

	featureColumns, err := resolveFeatureColumns(cmd, fileCfg)
	if err != nil {
		return jointables.JoinConfig{}, err
	}

	fillValue, err := resolveFillValue(cmd, fileCfg)
	if err != nil {
		return jointables.JoinConfig{}, err
	}

	strict, err := resolveStrict(cmd, fileCfg)
	if err != nil {
		return jointables.JoinConfig{}, err
	}

	format, err := jointables.ParseOutputFormat(resolveString(cmd, "format", joinFlags.format, envFormat, fileCfg.Format))
	if err != nil {
		return jointables.JoinConfig{}, err
	}

	cfg := jointables.JoinConfig{
		Tables:         tables,
		FeatureColumns: featureColumns,
		ValueColumn:    resolveString(cmd, "value-column", joinFlags.valueColumn, envValueColumn, fileCfg.ValueColumn),
		Outfile:        resolveString(cmd, "outfile", joinFlags.outfile, envOutfile, fileCfg.Outfile),
		FillValue:      fillValue,
		Format:         format,
		Strict:         strict,
		Verbose:        verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Join settings resolved:\n")
		fmt.Fprintf(os.Stderr, "  Tables: %d\n", len(cfg.Tables))
		fmt.Fprintf(os.Stderr, "  Feature Columns: %s\n", strings.Join(cfg.FeatureColumns, ", "))
		fmt.Fprintf(os.Stderr, "  Value Column: %s\n", cfg.ValueColumn)
		fmt.Fprintf(os.Stderr, "  Outfile: %s (%s)\n", cfg.Outfile, cfg.EffectiveFormat())
		fmt.Fprintf(os.Stderr, "  Fill Value: %v\n", cfg.FillValue)
		fmt.Fprintf(os.Stderr, "  Strict: %t\n", cfg.Strict)
	}

	return cfg, nil
}

func resolveFeatureColumns(cmd *cobra.Command, fileCfg *config.FileConfig) ([]string, error) {
	if !cmd.Flags().Changed("feature-column") {
		if v, ok := envValue(envFeatureColumn); ok {
			return jointables.ParseFeatureColumns(v)
		}
		if len(fileCfg.FeatureColumn) > 0 {
			return append([]string(nil), fileCfg.FeatureColumn...), nil
		}
	}
	return jointables.ParseFeatureColumns(joinFlags.featureColumn)
}

func resolveFillValue(cmd *cobra.Command, fileCfg *config.FileConfig) (float64, error) {
	if cmd.Flags().Changed("fillna") {
		return joinFlags.fillNA, nil
	}
	if v, ok := envValue(envFillNA); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envFillNA, v, jointables.ErrInvalidConfig)
		}
		return f, nil
	}
	if fileCfg.FillNA != nil {
		return *fileCfg.FillNA, nil
	}
	return joinFlags.fillNA, nil
}

func resolveStrict(cmd *cobra.Command, fileCfg *config.FileConfig) (bool, error) {
	if cmd.Flags().Changed("strict") {
		return joinFlags.strict, nil
	}
	if v, ok := envValue(envStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid %s value %q: %w", envStrict, v, jointables.ErrInvalidConfig)
		}
		return b, nil
	}
	if fileCfg.Strict != nil {
		return *fileCfg.Strict, nil
	}
	return joinFlags.strict, nil
}
