package jointables_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/jointables/pkg/jointables"
)

func validConfig() jointables.JoinConfig {
	return jointables.JoinConfig{
		Tables:         []string{"sample1.tsv"},
		FeatureColumns: []string{jointables.DefaultFeatureColumn},
		ValueColumn:    jointables.DefaultValueColumn,
		Outfile:        jointables.DefaultOutfile,
		FillValue:      jointables.DefaultFillValue,
	}
}

func TestJoinConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *jointables.JoinConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *jointables.JoinConfig) {}, false},
		{"no tables", func(c *jointables.JoinConfig) { c.Tables = nil }, true},
		{"no feature columns", func(c *jointables.JoinConfig) { c.FeatureColumns = nil }, true},
		{"empty feature column", func(c *jointables.JoinConfig) { c.FeatureColumns = []string{"name", ""} }, true},
		{"value column is a feature column", func(c *jointables.JoinConfig) { c.ValueColumn = "name" }, true},
		{"empty value column", func(c *jointables.JoinConfig) { c.ValueColumn = "" }, true},
		{"empty outfile", func(c *jointables.JoinConfig) { c.Outfile = "" }, true},
		{"NaN fill value leaves gaps empty", func(c *jointables.JoinConfig) { c.FillValue = math.NaN() }, false},
		{"negative fill value", func(c *jointables.JoinConfig) { c.FillValue = -1 }, false},
		{"unknown format", func(c *jointables.JoinConfig) { c.Format = "parquet" }, true},
		{"xlsx format", func(c *jointables.JoinConfig) { c.Format = jointables.FormatXLSX }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, jointables.ErrInvalidConfig), "expected ErrInvalidConfig, got: %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFeatureColumns(t *testing.T) {
	tests := []struct {
		spec    string
		want    []string
		wantErr bool
	}{
		{"name", []string{"name"}, false},
		{"name,taxid", []string{"name", "taxid"}, false},
		{" name , taxid ", []string{"name", "taxid"}, false},
		{"", nil, true},
		{"name,,taxid", nil, true},
		{"name,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := jointables.ParseFeatureColumns(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, jointables.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, jointables.FormatXLSX, jointables.FormatFromPath("out/joined.XLSX"))
	assert.Equal(t, jointables.FormatTSV, jointables.FormatFromPath("joined_table.tsv"))
	assert.Equal(t, jointables.FormatTSV, jointables.FormatFromPath("joined"))

	f, err := jointables.ParseOutputFormat("Excel")
	require.NoError(t, err)
	assert.Equal(t, jointables.FormatXLSX, f)

	f, err = jointables.ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, jointables.OutputFormat(""), f)

	_, err = jointables.ParseOutputFormat("csv")
	assert.ErrorIs(t, err, jointables.ErrInvalidConfig)

	cfg := validConfig()
	cfg.Outfile = "joined.xlsx"
	assert.Equal(t, jointables.FormatXLSX, cfg.EffectiveFormat())
	cfg.Format = jointables.FormatTSV
	assert.Equal(t, jointables.FormatTSV, cfg.EffectiveFormat())
}
