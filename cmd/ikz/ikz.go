// Package ikz handles procurement code import commands
package ikz

import (
	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/importer"

	"github.com/spf13/cobra"
)

// Cmd represents the ikz command
var Cmd = &cobra.Command{
	Use:   "ikz",
	Short: "Backfill procurement codes from a registry export",
	Long: `Read a CSV export of the procurement registry and attach the
procurement code (IKZ) to each matching contract. Contracts that cannot
be matched by number and date are listed so they can be fixed by hand.`,
	Run: ikzFunc,
}

func ikzFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("IKZ command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("No input file specified, use --input")
	}

	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = s.Close() }()

	result, err := importer.New(s).ImportIkz(root.SharedFlags.Input, importer.NopReporter)
	if err != nil {
		root.Log.Fatalf("Error importing procurement codes: %v", err)
	}

	root.Log.Infof("Updated %d contracts", result.Updated)
	for _, u := range result.Unfound {
		root.Log.Warnf("Contract not found: number=%s date=%s ikz=%s", u.Number, u.Date, u.Ikz)
	}
}
