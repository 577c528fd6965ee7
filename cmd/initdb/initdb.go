// Package initdb handles database creation and seeding
package initdb

import (
	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/store"
	"avkuzmin/finaudit/internal/wordlist"

	"github.com/spf13/cobra"
)

// Cmd represents the initdb command
var Cmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the audit database",
	Long: `Create the SQLite database with the full schema, the default
reference-extraction patterns and settings, and seed the suspicious-word
dictionary from the configured YAML file if one exists.`,
	Run: initdbFunc,
}

func initdbFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Creating database: %s", root.SharedFlags.Database)

	s, err := store.Create(root.SharedFlags.Database)
	if err != nil {
		root.Log.Fatalf("Error creating database: %v", err)
	}
	defer func() { _ = s.Close() }()

	words, err := wordlist.Load(root.Cfg.Words.File)
	if err != nil {
		root.Log.Fatalf("Error loading suspicious words: %v", err)
	}
	seeded, err := wordlist.Seed(s, words)
	if err != nil {
		root.Log.Fatalf("Error seeding suspicious words: %v", err)
	}
	if seeded > 0 {
		root.Log.Infof("Seeded %d suspicious words from %s", seeded, root.Cfg.Words.File)
	}

	root.Log.Info("Database ready")
}
