// Package export handles report export commands
package export

import (
	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/export"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export contracts marked for checking",
	Long: `Export the list of contracts marked for checking, with their
counterparties, KOSGU codes and procurement codes, as CSV or PDF.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or pdf")
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Export command called")
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("No output file specified, use --output")
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = s.Close() }()

	rows, err := s.ContractsForExport()
	if err != nil {
		root.Log.Fatalf("Error reading contracts: %v", err)
	}

	var count int
	switch format {
	case "csv":
		count, err = export.ContractsToCSV(rows, root.SharedFlags.Output)
	case "pdf":
		count, err = export.ContractsToPDF(rows, root.SharedFlags.Output, root.Cfg.Export.FontPath)
	default:
		root.Log.Fatalf("Unknown format %q, use csv or pdf", format)
	}
	if err != nil {
		root.Log.Fatalf("Error exporting contracts: %v", err)
	}

	root.Log.Infof("Exported %d contracts to %s", count, root.SharedFlags.Output)
}
