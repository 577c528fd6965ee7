// Package suspicious handles the suspicious payment audit command
package suspicious

import (
	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the suspicious command
var Cmd = &cobra.Command{
	Use:   "suspicious",
	Short: "List payments whose descriptions contain suspicious words",
	Long: `Scan payment descriptions for words from the suspicious-word
dictionary and report each match with the word that triggered it, plus
the total amount of all flagged payments.`,
	Run: suspiciousFunc,
}

func suspiciousFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = s.Close() }()

	matches, err := s.SuspiciousPayments()
	if err != nil {
		root.Log.Fatalf("Error scanning payments: %v", err)
	}

	for _, m := range matches {
		root.Log.Infof("Payment %s from %s for %s: word %q in %q",
			m.Payment.DocNumber, m.Payment.Date, m.Payment.Amount.StringFixed(2),
			m.Word, m.Payment.Description)
	}
	root.Log.Infof("Flagged %d payments, total %s",
		len(matches), store.SuspiciousTotal(matches).StringFixed(2))
}
