// Package tsvparser parses tab-separated bank statement exports into
// payment candidates. The expected column layout is:
//
//	0: Состояние          — status, maps to the payment direction
//	1: Номер документа    — document number
//	2: Дата документа     — document date
//	3: Сумма              — amount, comma decimal separator
//	4: Л/с в ФО           — account, ignored
//	5: Наименование       — payer or recipient name, role depends on direction
//	6: Назначение платежа — description scanned by the reference extractor
//	7: Тип БК и направление — ignored
//	8: Дата принятия      — ignored
package tsvparser

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"avkuzmin/finaudit/internal/currencyutils"
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

// MinColumns is the minimum column count a data line must have.
const MinColumns = 9

// ErrShortLine is returned for lines with fewer than MinColumns columns.
// Such lines are skipped without producing a partial record.
var ErrShortLine = fmt.Errorf("line has fewer than %d columns", MinColumns)

// Line is one parsed statement row: the payment candidate plus the raw
// counterparty name, which the resolver turns into an id later.
type Line struct {
	Payment models.Payment
	// Payer is set for income rows, Recipient for expense rows; the
	// other role stays empty. Unknown-direction rows set neither.
	Payer     string
	Recipient string
}

// ParseLine splits one tab-separated record into a payment candidate.
// Fields are trimmed of whitespace and surrounding quotes. Amount parse
// failure yields a zero amount rather than an error; the orchestrator
// rejects zero-amount rows during validation.
func ParseLine(raw string) (Line, error) {
	fields := strings.Split(raw, "\t")
	for i := range fields {
		fields[i] = trimField(fields[i])
	}
	if len(fields) < MinColumns {
		return Line{}, ErrShortLine
	}

	var line Line
	line.Payment.Direction = models.DirectionFromStatus(fields[0])
	line.Payment.DocNumber = fields[1]
	// Statement dates come as DD.MM.YYYY; malformed dates pass through
	// and are caught by validation only when empty.
	line.Payment.Date = dateutils.ToISO(fields[2])
	line.Payment.Amount = currencyutils.ParseStatementAmount(fields[3])
	line.Payment.Description = fields[6]

	switch line.Payment.Direction {
	case models.DirectionIncome:
		line.Payer = fields[5]
	case models.DirectionExpense:
		line.Recipient = fields[5]
		line.Payment.Recipient = fields[5]
	}

	return line, nil
}

// trimField strips whitespace and surrounding quote characters.
func trimField(s string) string {
	return strings.Trim(s, " \t\n\r\"")
}

// ValidateFormat checks that the file starts with a tab-separated header
// of at least MinColumns columns.
func ValidateFormat(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open statement file: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	header := scanner.Text()
	if len(strings.Split(header, "\t")) < MinColumns {
		log.WithField("file", path).Warn("Statement header has too few columns")
		return false, nil
	}
	return true, nil
}
