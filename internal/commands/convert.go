package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerline/dtb2iif/internal/auditlog"
	"github.com/ledgerline/dtb2iif/internal/convert"
	"github.com/ledgerline/dtb2iif/internal/importer"
)

func newConvertCommand() *cobra.Command {
	var output string
	var cfgPath string
	var auditPath string
	var format string
	var threshold int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "convert <statement.csv>",
		Short: "Convert a statement export to an IIF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], output, cfgPath, auditPath, format, threshold, verbose)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output IIF path (default: input name with .iif extension)")
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to dtb2iif.yaml (default: built-in rosters)")
	cmd.Flags().StringVar(&auditPath, "audit", "", "append dropped and suspense rows to this CSV")
	cmd.Flags().StringVar(&format, "format", "dtb", "statement format")
	cmd.Flags().IntVar(&threshold, "threshold", -1, "fuzzy match acceptance score 0-100 (default: config value)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every dropped row")

	return cmd
}

func runConvert(input, output, cfgPath, auditPath, format string, threshold int, verbose bool) error {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if threshold >= 0 {
		if threshold > 100 {
			return fmt.Errorf("threshold %d out of range 0-100", threshold)
		}
		cfg.Threshold = threshold
	}

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer in.Close()

	rows, err := parser.Parse(in)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".iif"
	}
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	conv := convert.New(cfg, logger)
	stats, audit, err := conv.Run(rows, out)
	if err != nil {
		return err
	}

	if auditPath != "" && len(audit) > 0 {
		if err := auditlog.Append(auditPath, audit); err != nil {
			return err
		}
	}

	logger.Info("conversion complete",
		"rows", stats.RowsIn,
		"groups", stats.GroupsOut,
		"dropped", stats.Dropped(),
		"suspense", stats.Suspense,
	)
	fmt.Printf("Wrote %s (%d posting groups from %d rows)\n", output, stats.GroupsOut, stats.RowsIn)
	return nil
}
