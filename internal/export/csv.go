// Package export renders audit reports: the contracts-for-checking list
// as CSV or PDF, and arbitrary query grids as CSV.
//
// CSV output is tuned for spreadsheet consumption: a UTF-8 byte-order
// mark so Excel detects the encoding, every field quoted, and a
// zero-width space prepended to number-like fields (contract numbers,
// procurement codes) so spreadsheets do not mangle them into dates or
// scientific notation.
package export

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"avkuzmin/finaudit/internal/dateutils"
	"avkuzmin/finaudit/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	utf8BOM = "\xEF\xBB\xBF"
	// zwsp defeats spreadsheet auto-formatting of numeric-looking text.
	zwsp = "\u200B"
)

// contractsHeader matches the column layout auditors expect from the
// checking workflow.
var contractsHeader = []string{
	"N п/п",
	"Номер договора",
	"Дата договора",
	"Наименование контрагента",
	"Коды КОСГУ",
	"Признак усиленного контроля",
	"Примечание",
	"ИКЗ",
}

// ContractsToCSV writes the contracts-for-checking report and returns the
// number of exported rows.
func ContractsToCSV(rows []models.ContractExportRow, path string) (int, error) {
	records := make([][]string, 0, len(rows))
	for i, r := range rows {
		records = append(records, contractRecord(i+1, r))
	}
	if err := writeGrid(path, contractsHeader, records); err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).
		Info("Contracts exported to CSV")
	return len(rows), nil
}

func contractRecord(index int, r models.ContractExportRow) []string {
	specialControl := "Нет"
	if r.IsForSpecialControl {
		specialControl = "Да"
	}
	return []string{
		strconv.Itoa(index),
		zwsp + r.Number,
		dateutils.FromISO(r.Date),
		r.CounterpartyName,
		r.KosguCodes,
		specialControl,
		r.Note,
		zwsp + r.ProcurementCode,
	}
}

// GridToCSV writes an arbitrary query result grid with the same BOM and
// quoting conventions as the contract report.
func GridToCSV(columns []string, rows [][]string, path string) error {
	if err := writeGrid(path, columns, rows); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).
		Info("Query grid exported to CSV")
	return nil
}

// writeGrid quotes every field unconditionally. encoding/csv only quotes
// when it has to, which spreadsheets then second-guess on Cyrillic text,
// so the quoting is done by hand.
func writeGrid(path string, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	if err := writeRecord(w, header); err != nil {
		return err
	}
	for _, record := range records {
		if err := writeRecord(w, record); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, record []string) error {
	for i, field := range record {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		quoted := "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
		if _, err := w.WriteString(quoted); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
