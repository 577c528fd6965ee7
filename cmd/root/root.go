// Package root contains the root command for the application
package root

import (
	"avkuzmin/finaudit/internal/config"
	"avkuzmin/finaudit/internal/currencyutils"
	"avkuzmin/finaudit/internal/export"
	"avkuzmin/finaudit/internal/importer"
	"avkuzmin/finaudit/internal/refextract"
	"avkuzmin/finaudit/internal/resolver"
	"avkuzmin/finaudit/internal/store"
	"avkuzmin/finaudit/internal/tsvparser"
	"avkuzmin/finaudit/internal/wordlist"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Database string
	Input    string
	Output   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finaudit",
		Short: "A CLI tool to import bank statement payments and audit contract spending.",
		Long: `finaudit imports tab-separated bank statement files into a SQLite
database, extracts contract, invoice and KOSGU references from payment
descriptions, and produces audit reports over the collected data.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finaudit!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Log = config.ApplyLogConfig(Cfg)

			// Fan the configured logger out to every package
			store.SetLogger(Log)
			tsvparser.SetLogger(Log)
			currencyutils.SetLogger(Log)
			refextract.SetLogger(Log)
			resolver.SetLogger(Log)
			importer.SetLogger(Log)
			export.SetLogger(Log)
			wordlist.SetLogger(Log)

			if SharedFlags.Database == "" {
				SharedFlags.Database = Cfg.Database.Path
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Database, "db", "d", "", "Database file (defaults to the configured path)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// OpenStore opens the database selected by flags and configuration.
func OpenStore() (*store.Store, error) {
	return store.Open(SharedFlags.Database)
}
