package store

import (
	"fmt"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// Payments returns all payments ordered by date then id.
func (s *Store) Payments() ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, date, IFNULL(doc_number, ''), direction, amount,
		       IFNULL(recipient, ''), IFNULL(description, ''),
		       counterparty_id, IFNULL(note, '')
		FROM Payments ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		var amount float64
		var direction string
		err := rows.Scan(&p.ID, &p.Date, &p.DocNumber, &direction, &amount,
			&p.Recipient, &p.Description, &p.CounterpartyID, &p.Note)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Direction = models.Direction(direction)
		p.Amount = decimal.NewFromFloat(amount)
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddPayment inserts a payment and returns its id.
func (s *Store) AddPayment(p models.Payment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := p.Amount.Float64()
	res, err := s.db.Exec(`
		INSERT INTO Payments
			(date, doc_number, direction, amount, recipient, description,
			 counterparty_id, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Date, p.DocNumber, string(p.Direction), amount, p.Recipient,
		p.Description, p.CounterpartyID, p.Note)
	if err != nil {
		return 0, fmt.Errorf("insert payment %q of %s: %w", p.DocNumber, p.Date, err)
	}
	return res.LastInsertId()
}

// UpdatePayment updates a payment by id.
func (s *Store) UpdatePayment(p models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := p.Amount.Float64()
	_, err := s.db.Exec(`
		UPDATE Payments SET
			date = ?, doc_number = ?, direction = ?, amount = ?, recipient = ?,
			description = ?, counterparty_id = ?, note = ?
		WHERE id = ?`,
		p.Date, p.DocNumber, string(p.Direction), amount, p.Recipient,
		p.Description, p.CounterpartyID, p.Note, p.ID)
	if err != nil {
		return fmt.Errorf("update payment %d: %w", p.ID, err)
	}
	return nil
}

// DeletePayment removes a payment and, through the cascade, its detail
// rows.
func (s *Store) DeletePayment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM Payments WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	return nil
}

// AddPaymentDetail inserts one classified portion of a payment and
// returns its id.
func (s *Store) AddPaymentDetail(d models.PaymentDetail) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := d.Amount.Float64()
	res, err := s.db.Exec(`
		INSERT INTO PaymentDetails (payment_id, kosgu_id, contract_id, invoice_id, amount)
		VALUES (?, ?, ?, ?, ?)`,
		d.PaymentID, d.KosguID, d.ContractID, d.InvoiceID, amount)
	if err != nil {
		return 0, fmt.Errorf("insert payment detail for payment %d: %w", d.PaymentID, err)
	}
	return res.LastInsertId()
}

// PaymentDetails returns the detail rows of one payment.
func (s *Store) PaymentDetails(paymentID int64) ([]models.PaymentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, payment_id, kosgu_id, contract_id, invoice_id, amount
		FROM PaymentDetails WHERE payment_id = ? ORDER BY id`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("query payment details: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.PaymentDetail
	for rows.Next() {
		var d models.PaymentDetail
		var amount float64
		err := rows.Scan(&d.ID, &d.PaymentID, &d.KosguID, &d.ContractID,
			&d.InvoiceID, &amount)
		if err != nil {
			return nil, fmt.Errorf("scan payment detail: %w", err)
		}
		d.Amount = decimal.NewFromFloat(amount)
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdatePaymentDetail updates a detail row by id.
func (s *Store) UpdatePaymentDetail(d models.PaymentDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := d.Amount.Float64()
	_, err := s.db.Exec(`
		UPDATE PaymentDetails SET
			payment_id = ?, kosgu_id = ?, contract_id = ?, invoice_id = ?, amount = ?
		WHERE id = ?`,
		d.PaymentID, d.KosguID, d.ContractID, d.InvoiceID, amount, d.ID)
	if err != nil {
		return fmt.Errorf("update payment detail %d: %w", d.ID, err)
	}
	return nil
}

// DeletePaymentDetail removes one detail row.
func (s *Store) DeletePaymentDetail(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM PaymentDetails WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete payment detail %d: %w", id, err)
	}
	return nil
}

// DetailSum returns the summed detail amounts of one payment. Partial
// classification is allowed, so this need not equal the payment amount.
func (s *Store) DetailSum(paymentID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	err := s.db.QueryRow(
		"SELECT IFNULL(SUM(amount), 0) FROM PaymentDetails WHERE payment_id = ?",
		paymentID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum details of payment %d: %w", paymentID, err)
	}
	return decimal.NewFromFloat(sum), nil
}

// PaymentInfoForContract lists payments classified against one contract.
func (s *Store) PaymentInfoForContract(contractID int64) ([]models.PaymentInfo, error) {
	return s.paymentInfoByDetailFK("contract_id", contractID)
}

// PaymentInfoForInvoice lists payments classified against one invoice.
func (s *Store) PaymentInfoForInvoice(invoiceID int64) ([]models.PaymentInfo, error) {
	return s.paymentInfoByDetailFK("invoice_id", invoiceID)
}

// PaymentInfoForKosgu lists payments classified under one code.
func (s *Store) PaymentInfoForKosgu(kosguID int64) ([]models.PaymentInfo, error) {
	return s.paymentInfoByDetailFK("kosgu_id", kosguID)
}

func (s *Store) paymentInfoByDetailFK(column string, id int64) ([]models.PaymentInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// column is one of three fixed names chosen by the wrappers above.
	query := fmt.Sprintf(`
		SELECT pd.%s, p.date, IFNULL(p.doc_number, ''), pd.amount,
		       IFNULL(p.description, '')
		FROM PaymentDetails pd
		JOIN Payments p ON p.id = pd.payment_id
		WHERE pd.%s = ?
		ORDER BY p.date, p.id`, column, column)

	return s.queryPaymentInfo(query, id)
}

// PaymentInfoForCounterparty lists payments attributed to one
// counterparty.
func (s *Store) PaymentInfoForCounterparty(counterpartyID int64) ([]models.PaymentInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queryPaymentInfo(`
		SELECT counterparty_id, date, IFNULL(doc_number, ''), amount,
		       IFNULL(description, '')
		FROM Payments
		WHERE counterparty_id = ?
		ORDER BY date, id`, counterpartyID)
}

// queryPaymentInfo expects s.mu to be held by the caller.
func (s *Store) queryPaymentInfo(query string, id int64) ([]models.PaymentInfo, error) {
	rows, err := s.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("query payment info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.PaymentInfo
	for rows.Next() {
		var info models.PaymentInfo
		var amount float64
		err := rows.Scan(&info.EntityID, &info.Date, &info.DocNumber,
			&amount, &info.Description)
		if err != nil {
			return nil, fmt.Errorf("scan payment info: %w", err)
		}
		info.Amount = decimal.NewFromFloat(amount)
		out = append(out, info)
	}
	return out, rows.Err()
}
