package cli

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/vvka-141/jointables/pkg/jointables"
)

var joinEnvKeys = []string{
	envFeatureColumn, envValueColumn, envOutfile, envFillNA, envFormat, envStrict,
}

// newJoinTestCommand returns a command with fresh join flags, running in an
// empty working directory with the JOINTABLES_* variables cleared.
func newJoinTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	chdirForTest(t, t.TempDir())
	for _, key := range joinEnvKeys {
		t.Setenv(key, "")
	}

	cmd := &cobra.Command{Use: "jointables"}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "")
	registerJoinFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildJoinConfig_Defaults(t *testing.T) {
	cmd := newJoinTestCommand(t)

	cfg, err := buildJoinConfig(cmd, []string{"a.tsv", "b.tsv"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Tables) != 2 {
		t.Errorf("Tables = %v", cfg.Tables)
	}
	if len(cfg.FeatureColumns) != 1 || cfg.FeatureColumns[0] != jointables.DefaultFeatureColumn {
		t.Errorf("FeatureColumns = %v", cfg.FeatureColumns)
	}
	if cfg.ValueColumn != jointables.DefaultValueColumn {
		t.Errorf("ValueColumn = %q", cfg.ValueColumn)
	}
	if cfg.Outfile != jointables.DefaultOutfile {
		t.Errorf("Outfile = %q", cfg.Outfile)
	}
	if cfg.FillValue != jointables.DefaultFillValue {
		t.Errorf("FillValue = %v", cfg.FillValue)
	}
	if cfg.Format != "" || cfg.EffectiveFormat() != jointables.FormatTSV {
		t.Errorf("Format = %q, effective %q", cfg.Format, cfg.EffectiveFormat())
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
}

func TestBuildJoinConfig_Flags(t *testing.T) {
	cmd := newJoinTestCommand(t,
		"-f", "name, taxid", "-c", "new_est_reads", "-o", "out.xlsx", "-n", "-1", "--strict")

	cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.FeatureColumns) != 2 || cfg.FeatureColumns[0] != "name" || cfg.FeatureColumns[1] != "taxid" {
		t.Errorf("FeatureColumns = %v", cfg.FeatureColumns)
	}
	if cfg.ValueColumn != "new_est_reads" {
		t.Errorf("ValueColumn = %q", cfg.ValueColumn)
	}
	if cfg.Outfile != "out.xlsx" || cfg.EffectiveFormat() != jointables.FormatXLSX {
		t.Errorf("Outfile = %q, effective format %q", cfg.Outfile, cfg.EffectiveFormat())
	}
	if cfg.FillValue != -1 {
		t.Errorf("FillValue = %v", cfg.FillValue)
	}
	if !cfg.Strict {
		t.Error("Strict should be true")
	}
}

func TestBuildJoinConfig_NaNFill(t *testing.T) {
	cmd := newJoinTestCommand(t, "-n", "nan")

	cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(cfg.FillValue) {
		t.Errorf("FillValue = %v, want NaN", cfg.FillValue)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("NaN fill value should be valid, got %v", err)
	}
}

func TestBuildJoinConfig_Precedence(t *testing.T) {
	yamlContent := `feature_column: [name, taxid]
value_column: from_yaml
outfile: yaml.tsv
fillna: 7
format: xlsx
strict: true
`

	t.Run("yaml over defaults", func(t *testing.T) {
		cmd := newJoinTestCommand(t)
		writeTestFile(t, "jointables.yaml", yamlContent)

		cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.FeatureColumns) != 2 || cfg.ValueColumn != "from_yaml" || cfg.Outfile != "yaml.tsv" {
			t.Errorf("yaml values not applied: %+v", cfg)
		}
		if cfg.FillValue != 7 || cfg.Format != jointables.FormatXLSX || !cfg.Strict {
			t.Errorf("yaml values not applied: %+v", cfg)
		}
	})

	t.Run("env over yaml", func(t *testing.T) {
		cmd := newJoinTestCommand(t)
		writeTestFile(t, "jointables.yaml", yamlContent)
		t.Setenv(envValueColumn, "from_env")
		t.Setenv(envFillNA, "-2.5")
		t.Setenv(envStrict, "false")
		t.Setenv(envFeatureColumn, "taxid")

		cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ValueColumn != "from_env" {
			t.Errorf("ValueColumn = %q, want from_env", cfg.ValueColumn)
		}
		if cfg.FillValue != -2.5 {
			t.Errorf("FillValue = %v, want -2.5", cfg.FillValue)
		}
		if cfg.Strict {
			t.Error("Strict should be overridden to false by env")
		}
		if len(cfg.FeatureColumns) != 1 || cfg.FeatureColumns[0] != "taxid" {
			t.Errorf("FeatureColumns = %v", cfg.FeatureColumns)
		}
		if cfg.Outfile != "yaml.tsv" {
			t.Errorf("Outfile = %q, want yaml.tsv", cfg.Outfile)
		}
	})

	t.Run("flag over env", func(t *testing.T) {
		cmd := newJoinTestCommand(t, "-c", "from_flag", "-n", "0")
		writeTestFile(t, "jointables.yaml", yamlContent)
		t.Setenv(envValueColumn, "from_env")
		t.Setenv(envFillNA, "-2.5")

		cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ValueColumn != "from_flag" {
			t.Errorf("ValueColumn = %q, want from_flag", cfg.ValueColumn)
		}
		if cfg.FillValue != 0 {
			t.Errorf("FillValue = %v, want 0", cfg.FillValue)
		}
	})
}

func TestBuildJoinConfig_DotEnv(t *testing.T) {
	cmd := newJoinTestCommand(t)
	// godotenv never overrides variables that are already set.
	if err := os.Unsetenv(envOutfile); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, ".env", envOutfile+"=dotenv.tsv\n")

	cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Outfile != "dotenv.tsv" {
		t.Errorf("Outfile = %q, want dotenv.tsv", cfg.Outfile)
	}
}

func TestBuildJoinConfig_ExplicitConfig(t *testing.T) {
	t.Run("loads the given file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		cmd := newJoinTestCommand(t, "--config", path)
		writeTestFile(t, path, "value_column: custom\n")

		cfg, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ValueColumn != "custom" {
			t.Errorf("ValueColumn = %q, want custom", cfg.ValueColumn)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cmd := newJoinTestCommand(t, "--config", "does-not-exist.yaml")

		_, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
		if !errors.Is(err, jointables.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestBuildJoinConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		yaml string
	}{
		{name: "env fillna", env: map[string]string{envFillNA: "lots"}},
		{name: "env strict", env: map[string]string{envStrict: "maybe"}},
		{name: "env format", env: map[string]string{envFormat: "parquet"}},
		{name: "flag format", args: []string{"--format", "csv"}},
		{name: "empty feature column", args: []string{"-f", "name,"}},
		{name: "unknown yaml key", yaml: "fill_value: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newJoinTestCommand(t, tt.args...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.yaml != "" {
				writeTestFile(t, "jointables.yaml", tt.yaml)
			}

			_, err := buildJoinConfig(cmd, []string{"a.tsv"}, false)
			if !errors.Is(err, jointables.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if code := jointables.ExitCodeForError(err); code != jointables.ExitConfigError {
				t.Errorf("exit code = %d, want %d", code, jointables.ExitConfigError)
			}
		})
	}
}
