package jointables

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Join completed and output written
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or settings
	ExitInputNotFound     = 11 // An input table could not be opened
	ExitInputInvalid      = 12 // Missing column or unparseable value in an input table
	ExitOutputUnwritable  = 13 // Output file could not be written
	ExitDuplicateRejected = 14 // Duplicate sample or feature key rejected in strict mode
)

const (
	// DefaultFeatureColumn is the column holding feature identifiers,
	// typically taxon names.
	DefaultFeatureColumn = "name"

	// DefaultValueColumn is the column holding the per-sample value,
	// typically counts or abundances.
	DefaultValueColumn = "fraction_total_reads"

	// DefaultOutfile is the output path used when none is given.
	DefaultOutfile = "joined_table.tsv"

	// DefaultFillValue replaces cells with no value after the join.
	DefaultFillValue = 0.0

	// FeatureColumnSeparator separates column names in a composite key spec.
	FeatureColumnSeparator = ","
)
