package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvka-141/jointables/internal/files/filesystem"
	"github.com/vvka-141/jointables/internal/files/loader"
)

// outputFormats contains the supported --format values for shell completion.
var outputFormats = []string{"tsv", "xlsx"}

// tableExtensions restricts TABLE completion to likely input files.
var tableExtensions = []string{"tsv", "txt", "tab", "gz"}

// completeTables provides shell completion for TABLE arguments.
func completeTables(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return tableExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats provides shell completion for the --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, f := range outputFormats {
		if strings.HasPrefix(f, toComplete) {
			matches = append(matches, f)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeColumns offers the header of the first TABLE already on the
// command line for --feature-column and --value-column.
func completeColumns(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	header, err := loader.NewLoader(filesystem.NewOSFileSystem()).Header(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	// Composite keys: complete the last name after the final comma.
	prefix := ""
	current := toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, current = toComplete[:i+1], toComplete[i+1:]
	}

	var matches []string
	for _, col := range header {
		if strings.HasPrefix(col, current) {
			matches = append(matches, prefix+col)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
