package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/jointables/internal/table"
	"github.com/vvka-141/jointables/pkg/jointables"
)

// TableLoader reads one input table into a sample column.
type TableLoader interface {
	Load(path string, featureColumns []string, valueColumn string) (*table.SampleColumn, error)
}

// TableWriter serializes the combined table to the output path.
type TableWriter interface {
	Write(path string, c *table.Combined, format jointables.OutputFormat) error
}

// JoinService runs the load, merge, fill and write pipeline.
// Thread-Safety: Join holds no state between calls and may be called concurrently
// if the injected loader and writer allow it.
type JoinService struct {
	loader TableLoader
	writer TableWriter
	logger jointables.Logger
}

// NewJoinService creates a new JoinService with all dependencies injected.
// Nil dependencies are programmer errors and panic at construction time.
func NewJoinService(loader TableLoader, writer TableWriter, logger jointables.Logger) *JoinService {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &JoinService{
		loader: loader,
		writer: writer,
		logger: logger,
	}
}

// Join loads every table in cfg.Tables, outer-joins them on the feature key,
// fills missing cells and writes the result. Nothing is written unless every
// step before the write succeeds.
func (s *JoinService) Join(ctx context.Context, cfg jointables.JoinConfig) (jointables.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return jointables.Summary{}, err
	}

	columns := make([]*table.SampleColumn, 0, len(cfg.Tables))
	for i, path := range cfg.Tables {
		if err := ctx.Err(); err != nil {
			s.logger.Error("Join cancelled before loading %s; %s was not written", path, cfg.Outfile)
			return jointables.Summary{}, fmt.Errorf("join cancelled before loading '%s': %w", path, err)
		}

		s.logger.Verbose("Loading table %d/%d: %s", i+1, len(cfg.Tables), path)
		col, err := s.loader.Load(path, cfg.FeatureColumns, cfg.ValueColumn)
		if err != nil {
			return jointables.Summary{}, err
		}
		s.logger.Verbose("Sample %q: %d feature(s)", col.Name, col.Len())
		columns = append(columns, col)
	}

	combined, report, err := table.Merge(columns, table.MergeOptions{Strict: cfg.Strict})
	if err != nil {
		return jointables.Summary{}, err
	}
	s.warn(report)

	filled := combined.Fill(cfg.FillValue)
	s.logger.Verbose("Merged %d feature(s) across %d sample(s), filled %d cell(s) with %v",
		combined.Len(), len(combined.Samples), filled, cfg.FillValue)

	if err := ctx.Err(); err != nil {
		s.logger.Error("Join cancelled; %s was not written", cfg.Outfile)
		return jointables.Summary{}, fmt.Errorf("join cancelled before writing '%s': %w", cfg.Outfile, err)
	}

	format := cfg.EffectiveFormat()
	s.logger.Verbose("Writing %s output to %s", format, cfg.Outfile)
	if err := s.writer.Write(cfg.Outfile, combined, format); err != nil {
		return jointables.Summary{}, err
	}

	return jointables.Summary{
		Samples:    append([]string(nil), combined.Samples...),
		Features:   combined.Len(),
		Filled:     filled,
		OutputPath: cfg.Outfile,
		Format:     format,
	}, nil
}

func (s *JoinService) warn(report table.MergeReport) {
	for _, name := range report.DuplicateSamples {
		s.logger.Warn("Sample %q is derived from more than one table; the later table replaces the earlier column", name)
	}
	for _, dup := range report.DuplicateFeatures {
		s.logger.Warn("Sample %q repeats %d feature key(s) (first: %s); matching rows are multiplied in the join",
			dup.Sample, len(dup.Keys), dup.Keys[0])
	}
}
