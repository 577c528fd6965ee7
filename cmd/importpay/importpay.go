// Package importpay handles bank statement import commands
package importpay

import (
	"fmt"
	"os"
	"os/signal"

	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/importer"
	"avkuzmin/finaudit/internal/tsvparser"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a bank statement TSV file",
	Long: `Import payments from a tab-separated bank statement export.
Each line becomes a payment with contract, invoice and KOSGU references
extracted from its description. Malformed lines are skipped and logged.
Interrupt with Ctrl-C to stop after the current line.`,
	Run: importFunc,
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Import command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("No input file specified, use --input")
	}
	ok, err := tsvparser.ValidateFormat(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}
	if !ok {
		root.Log.Fatal("Input file is not a bank statement TSV")
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	progress := importer.ReporterFunc(func(fraction float64, message string) {
		fmt.Printf("\r[%3.0f%%] %s", fraction*100, message)
	})

	result, err := importer.New(s).ImportPayments(ctx, root.SharedFlags.Input, progress)
	fmt.Println()
	if err != nil {
		root.Log.Fatalf("Error importing payments: %v", err)
	}

	if result.Cancelled {
		root.Log.Warnf("Import cancelled: %d payments imported before stopping", result.Inserted)
		return
	}
	root.Log.Infof("Imported %d payments with %d details, skipped %d lines",
		result.Inserted, result.Details, result.Skipped)
}
