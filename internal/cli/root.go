package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/jointables/internal/config"
	"github.com/vvka-141/jointables/internal/files/filesystem"
	"github.com/vvka-141/jointables/internal/files/loader"
	"github.com/vvka-141/jointables/internal/files/scanner"
	"github.com/vvka-141/jointables/internal/files/writer"
	"github.com/vvka-141/jointables/internal/logging"
	"github.com/vvka-141/jointables/internal/services"
	"github.com/vvka-141/jointables/internal/ui"
	"github.com/vvka-141/jointables/pkg/jointables"
)

var rootCmd = &cobra.Command{
	Use:   "jointables TABLE [TABLE ...]",
	Short: "Join per-sample feature tables into one combined table",
	Long: `jointables merges per-sample tab-separated feature tables (for example
taxonomic profiles) into a single table with one row per feature and one
column per sample.

Each TABLE contributes one column, named after the file: the text before
the first '.' of its base name (sample1.kraken.tsv -> sample1). Rows are
matched on the feature column(s); features missing from a sample receive
the fill value. Tables ending in .gz are decompressed transparently.
A directory TABLE is replaced by the .tsv, .txt and .tab tables found
below it (hidden entries and the output file are skipped).

Settings precedence: flag > environment variable > jointables.yaml > default.

Environment variables (also read from a .env file in the working directory):
  JOINTABLES_FEATURE_COLUMN, JOINTABLES_VALUE_COLUMN, JOINTABLES_OUTFILE,
  JOINTABLES_FILLNA, JOINTABLES_FORMAT, JOINTABLES_STRICT

Examples:
  # Join Bracken reports on taxon name
  jointables results/*.bracken.tsv -o abundances.tsv

  # Join on (name, taxid) using read counts, filling gaps with -1
  jointables a.tsv b.tsv -f name,taxid -c new_est_reads -n -1

  # Write an Excel workbook instead of TSV
  jointables results/*.tsv -o abundances.xlsx

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Input table not found
  12 - Missing column or invalid value in an input table
  13 - Output file not writable
  14 - Duplicate sample or feature key rejected by --strict`,
	Args:              RequireTables,
	ValidArgsFunction: completeTables,
	RunE:              runJoin,
	SilenceUsage:      true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	registerJoinFlags(rootCmd)

	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = rootCmd.RegisterFlagCompletionFunc("feature-column", completeColumns)
	_ = rootCmd.RegisterFlagCompletionFunc("value-column", completeColumns)
}

// registerJoinFlags binds the join flags of cmd to joinFlags.
func registerJoinFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&joinFlags.featureColumn, "feature-column", "f", jointables.DefaultFeatureColumn,
		"Column header of the feature column, typically containing taxa names.\n"+
			"Select several columns by separating with comma (e.g. name,taxid)")
	cmd.Flags().StringVarP(&joinFlags.valueColumn, "value-column", "c", jointables.DefaultValueColumn,
		"Column header of the value column, typically containing counts or abundances")
	cmd.Flags().StringVarP(&joinFlags.outfile, "outfile", "o", jointables.DefaultOutfile,
		"Output file name; an existing file is replaced")
	cmd.Flags().Float64VarP(&joinFlags.fillNA, "fillna", "n", jointables.DefaultFillValue,
		"Fill missing values in the merged table with FLOAT")
	cmd.Flags().StringVar(&joinFlags.format, "format", "",
		"Output format: tsv|xlsx (default: inferred from --outfile extension)")
	cmd.Flags().BoolVar(&joinFlags.strict, "strict", false,
		"Fail when two tables derive the same sample name or a table repeats a feature key")
	cmd.Flags().StringVar(&joinFlags.configPath, "config", "",
		"Read defaults from this YAML file instead of ./"+config.ConfigFileName)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func runJoin(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildJoinConfig(cmd, args, verbose)
	if err != nil {
		return err
	}

	// Create dependencies
	fsProvider := filesystem.NewOSFileSystem()

	cfg.Tables, err = scanner.NewScanner(fsProvider).Expand(cfg.Tables, cfg.Outfile)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	joiner := services.NewJoinService(
		loader.NewLoader(fsProvider),
		writer.NewWriter(fsProvider),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM); the join stops before writing
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling join...")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, err := joiner.Join(ctx, cfg)
	if err != nil {
		return fmt.Errorf("join failed: %w", err)
	}

	ui.ReportSummary(logger, summary, ui.StyledOutput(os.Stderr))
	return nil
}
