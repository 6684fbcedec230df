package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireTables validates that at least one TABLE argument is provided.
// Returns a helpful error message with usage and examples if missing.
func RequireTables(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: TABLE

Usage: %s

Example:
  %s sample1.tsv sample2.tsv -o joined_table.tsv`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
