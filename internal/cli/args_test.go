package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/vvka-141/jointables/pkg/jointables"
)

func TestRequireTables(t *testing.T) {
	cmd := &cobra.Command{
		Use: "jointables TABLE [TABLE ...]",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTables(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: TABLE") {
			t.Errorf("expected error to contain 'missing required argument: TABLE', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := jointables.ExitCodeForError(err); code != jointables.ExitUsageError {
			t.Errorf("expected exit code %d, got %d", jointables.ExitUsageError, code)
		}
	})

	t.Run("accepts a single table", func(t *testing.T) {
		if err := RequireTables(cmd, []string{"sample1.tsv"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("accepts many tables", func(t *testing.T) {
		if err := RequireTables(cmd, []string{"a.tsv", "b.tsv", "c.tsv.gz"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})
}

func TestRootCmd_ArgsValidation(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	exitCode := jointables.ExitCodeForError(err)
	if exitCode != jointables.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", jointables.ExitUsageError, exitCode, err)
	}
}
