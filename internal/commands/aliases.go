package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgerline/dtb2iif/internal/alias"
)

func newAliasesCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Print the derived token-to-vendor alias index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAliases(cfgPath)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to dtb2iif.yaml (default: built-in rosters)")

	return cmd
}

// runAliases lists every indexed token so operators can audit the automatic
// derivation before a run. Manual overrides are highlighted.
func runAliases(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	index := alias.Build(cfg.Vendors, cfg.Overrides)
	override := color.New(color.FgYellow)
	for _, tok := range index.Tokens() {
		vendor, _ := index.Lookup(tok)
		if index.Overridden(tok) {
			override.Printf("%-20s -> %s  (override)\n", tok, vendor)
			continue
		}
		fmt.Printf("%-20s -> %s\n", tok, vendor)
	}
	fmt.Printf("%d tokens over %d vendors\n", index.Len(), len(cfg.Vendors))
	return nil
}
