// Package query handles ad-hoc SQL reporting commands
package query

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/internal/export"

	"github.com/spf13/cobra"
)

// Cmd represents the query command
var Cmd = &cobra.Command{
	Use:   "query [SQL]",
	Short: "Run a read-only SQL query against the database",
	Long: `Run a SELECT statement against the audit database and print the
result as a table. With --output the result is written as CSV instead.
Only SELECT statements are accepted.`,
	Args: cobra.ExactArgs(1),
	Run:  queryFunc,
}

func queryFunc(cmd *cobra.Command, args []string) {
	s, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = s.Close() }()

	columns, rows, err := s.ExecuteSelect(args[0])
	if err != nil {
		root.Log.Fatalf("Error executing query: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := export.GridToCSV(columns, rows, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing query result: %v", err)
		}
		root.Log.Infof("Wrote %d rows to %s", len(rows), root.SharedFlags.Output)
		return
	}

	printGrid(columns, rows)
	root.Log.Infof("%d rows", len(rows))
}

func printGrid(columns []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
