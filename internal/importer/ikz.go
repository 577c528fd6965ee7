package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"avkuzmin/finaudit/internal/dateutils"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// IkzRow is one row of a procurement-code reconciliation file.
type IkzRow struct {
	Number string `csv:"Номер"`
	Date   string `csv:"Дата"`
	Ikz    string `csv:"ИКЗ"`
}

// UnfoundContract records a reconciliation row whose contract does not
// exist in the store. Backfill never creates contracts: an IKZ without a
// matching contract is an audit finding, not new data.
type UnfoundContract struct {
	Number string
	Date   string
	Ikz    string
}

// IkzResult summarizes one procurement-code backfill run.
type IkzResult struct {
	Updated int
	Unfound []UnfoundContract
}

// ImportIkz reads a reconciliation file with Номер/Дата/ИКЗ columns and
// writes the procurement code onto every contract matched by
// (number, date). The delimiter is sniffed from the header: tab,
// semicolon or comma.
func (im *Importer) ImportIkz(path string, progress ProgressReporter) (IkzResult, error) {
	var result IkzResult

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open reconciliation file: %w", err)
	}
	defer func() { _ = file.Close() }()

	delimiter, err := sniffDelimiter(file)
	if err != nil {
		return result, err
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delimiter
		r.LazyQuotes = true
		return r
	})
	defer gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return csv.NewReader(in)
	})

	var rows []*IkzRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return result, fmt.Errorf("parse reconciliation file: %w", err)
	}

	if progress == nil {
		progress = NopReporter
	}

	for i, row := range rows {
		if err := im.backfillContract(row, &result); err != nil {
			return result, err
		}
		progress.Report(float64(i+1)/float64(len(rows)),
			fmt.Sprintf("Обработано записей ИКЗ: %d", i+1))
	}

	log.WithFields(logrus.Fields{
		"updated": result.Updated,
		"unfound": len(result.Unfound),
	}).Info("Procurement code backfill finished")
	return result, nil
}

// backfillContract applies one reconciliation row: blank numbers are
// ignored, unmatched contracts are recorded as unfound, matched ones get
// the procurement code.
func (im *Importer) backfillContract(row *IkzRow, result *IkzResult) error {
	number := strings.TrimSpace(row.Number)
	date := dateutils.ToISO(strings.TrimSpace(row.Date))
	ikz := strings.TrimSpace(row.Ikz)
	if number == "" {
		return nil
	}

	id, found, err := im.store.ContractIDByNumberDate(number, date)
	if err != nil {
		return err
	}
	if !found {
		result.Unfound = append(result.Unfound,
			UnfoundContract{Number: number, Date: date, Ikz: ikz})
		return nil
	}
	if err := im.store.SetContractProcurementCode(id, ikz); err != nil {
		log.WithField("contract", number).Errorf("Failed to set procurement code: %v", err)
		return nil
	}
	result.Updated++
	return nil
}

// sniffDelimiter inspects the header line and rewinds the file.
func sniffDelimiter(file *os.File) (rune, error) {
	reader := bufio.NewReader(file)
	header, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("read reconciliation header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind reconciliation file: %w", err)
	}

	switch {
	case strings.Contains(header, "\t"):
		return '\t', nil
	case strings.Contains(header, ";"):
		return ';', nil
	default:
		return ',', nil
	}
}
