package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/jointables/pkg/jointables"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the defaults file looked up in the working directory.
const ConfigFileName = "jointables.yaml"

// ColumnList is a list of column names. In YAML it may be written either as
// a sequence or as a comma-separated string ("name,taxid").
type ColumnList []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (c *ColumnList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		cols, err := jointables.ParseFeatureColumns(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = cols
		return nil
	case yaml.SequenceNode:
		var cols []string
		if err := value.Decode(&cols); err != nil {
			return err
		}
		cols, err := jointables.ParseFeatureColumns(strings.Join(cols, jointables.FeatureColumnSeparator))
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = cols
		return nil
	default:
		return fmt.Errorf("line %d: feature_column must be a string or a list of strings", value.Line)
	}
}

// FileConfig holds defaults read from jointables.yaml. Pointer fields
// distinguish "unset" from a zero value.
type FileConfig struct {
	FeatureColumn ColumnList `yaml:"feature_column,omitempty"`
	ValueColumn   string     `yaml:"value_column,omitempty"`
	Outfile       string     `yaml:"outfile,omitempty"`
	FillNA        *float64   `yaml:"fillna,omitempty"`
	Format        string     `yaml:"format,omitempty"`
	Strict        *bool      `yaml:"strict,omitempty"`
}

// Load reads the config file at path. Unknown keys are rejected so that a
// misspelled setting does not silently fall back to its default.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %v: %w", path, err, jointables.ErrInvalidConfig)
	}
	return &cfg, nil
}

// LoadDefault reads ConfigFileName from dir.
func LoadDefault(dir string) (*FileConfig, error) {
	return Load(filepath.Join(dir, ConfigFileName))
}
