// Package importer streams bank statement files into the store: one
// payment row per statement line, fanned out into detail rows for every
// classification-code reference found in the description.
//
// Failures are contained per line. A malformed row, an unresolvable
// reference or a store error on one record never aborts the batch; the
// line is logged, counted and skipped. Only a file that cannot be opened
// aborts the import before any row is touched.
package importer

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"avkuzmin/finaudit/internal/models"
	"avkuzmin/finaudit/internal/refextract"
	"avkuzmin/finaudit/internal/resolver"
	"avkuzmin/finaudit/internal/store"
	"avkuzmin/finaudit/internal/tsvparser"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Result summarizes one statement import run.
type Result struct {
	// Inserted counts successfully persisted payments.
	Inserted int
	// Skipped counts lines rejected during parsing or validation.
	Skipped int
	// Details counts persisted payment detail rows.
	Details int
	// Cancelled is set when the run stopped on context cancellation.
	// Rows committed before the stop are kept; the import is not
	// transactional as a whole.
	Cancelled bool
}

// Importer orchestrates statement imports against one store.
type Importer struct {
	store    *store.Store
	resolver *resolver.Resolver
}

// New returns an importer over the given store.
func New(s *store.Store) *Importer {
	return &Importer{store: s, resolver: resolver.New(s)}
}

// ImportPayments reads a tab-separated statement file line by line and
// persists one payment (plus detail rows) per valid line. The first line
// is a header and is skipped. Progress is published to the reporter;
// cancellation is checked between lines.
func (im *Importer) ImportPayments(ctx context.Context, path string, progress ProgressReporter) (Result, error) {
	var result Result

	extractor, err := refextract.Load(im.store)
	if err != nil {
		return result, fmt.Errorf("load extraction patterns: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open statement file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return result, fmt.Errorf("stat statement file: %w", err)
	}
	totalBytes := info.Size()

	if progress == nil {
		progress = NopReporter
	}
	progress.Report(0, "Чтение файла…")

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var consumed int64
	lineNo := 0
	for scanner.Scan() {
		raw := scanner.Text()
		consumed += int64(len(raw)) + 1
		lineNo++
		if lineNo == 1 {
			continue // header
		}

		if err := ctx.Err(); err != nil {
			log.WithField("line", lineNo).Info("Import cancelled")
			result.Cancelled = true
			progress.Report(1, "Импорт отменён")
			return result, nil
		}

		im.importLine(raw, lineNo, extractor, &result)

		if totalBytes > 0 {
			progress.Report(float64(consumed)/float64(totalBytes),
				fmt.Sprintf("Обработано строк: %d", lineNo-1))
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read statement file: %w", err)
	}

	progress.Report(1, fmt.Sprintf("Импорт завершён: %d платежей", result.Inserted))
	log.WithFields(logrus.Fields{
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
		"details":  result.Details,
	}).Info("Statement import finished")
	return result, nil
}

// importLine runs one statement line through the
// parse → validate → extract → resolve → persist sequence.
func (im *Importer) importLine(raw string, lineNo int, extractor *refextract.Extractor, result *Result) {
	line, err := tsvparser.ParseLine(raw)
	if err != nil {
		log.WithField("line", lineNo).Warnf("Skipping line: %v", err)
		result.Skipped++
		return
	}

	payment := line.Payment
	if payment.Date == "" || payment.Amount.IsZero() {
		log.WithField("line", lineNo).Warn("Skipping line: empty date or zero amount")
		result.Skipped++
		return
	}

	// The statement names the payer on income rows and the recipient on
	// expense rows; either way that name is the payment's counterparty.
	name := line.Payer
	if payment.Direction == models.DirectionExpense {
		name = line.Recipient
	}
	counterpartyID, err := im.resolver.Counterparty(name, "")
	if err != nil {
		log.WithField("line", lineNo).Errorf("Counterparty resolution failed: %v", err)
		result.Skipped++
		return
	}
	payment.CounterpartyID = counterpartyID

	var contractID sql.NullInt64
	if ref, ok := extractor.Contract(payment.Description); ok {
		contractID, err = im.resolver.Contract(ref, counterpartyID)
		if err != nil {
			log.WithField("line", lineNo).Errorf("Contract resolution failed: %v", err)
		}
	}

	var invoiceID sql.NullInt64
	if ref, ok := extractor.Invoice(payment.Description); ok {
		invoiceID, err = im.resolver.Invoice(ref, contractID)
		if err != nil {
			log.WithField("line", lineNo).Errorf("Invoice resolution failed: %v", err)
		}
	}

	paymentID, err := im.store.AddPayment(payment)
	if err != nil {
		log.WithField("line", lineNo).Errorf("Failed to add payment: %v", err)
		result.Skipped++
		return
	}
	result.Inserted++

	for _, ca := range extractor.CodeAmounts(payment.Description) {
		kosguID, err := im.resolver.Kosgu(ca.Code)
		if err != nil {
			log.WithField("line", lineNo).Errorf("KOSGU resolution failed for %q: %v", ca.Code, err)
			continue
		}
		_, err = im.store.AddPaymentDetail(models.PaymentDetail{
			PaymentID:  paymentID,
			KosguID:    kosguID,
			ContractID: contractID,
			InvoiceID:  invoiceID,
			Amount:     ca.Amount,
		})
		if err != nil {
			log.WithField("payment", paymentID).Errorf("Failed to add payment detail: %v", err)
			continue
		}
		result.Details++
	}
}
