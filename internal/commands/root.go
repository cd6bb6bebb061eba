package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/dtb2iif/internal/buildinfo"
	"github.com/ledgerline/dtb2iif/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dtb2iif",
		Short:   "Convert DTB bank statements to QuickBooks IIF",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newAliasesCommand())

	return rootCmd
}

// loadConfig returns the config at path, or the built-in defaults when path
// is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
