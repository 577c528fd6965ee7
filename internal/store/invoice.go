package store

import (
	"database/sql"
	"fmt"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// Invoices returns all invoices ordered by date then number, each with
// the total amount of the payment details referencing it.
func (s *Store) Invoices() ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT i.id, i.number, i.date, i.contract_id,
		       IFNULL(SUM(pd.amount), 0.0)
		FROM Invoices i
		LEFT JOIN PaymentDetails pd ON pd.invoice_id = i.id
		GROUP BY i.id, i.number, i.date, i.contract_id
		ORDER BY i.date, i.number`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var total float64
		err := rows.Scan(&inv.ID, &inv.Number, &inv.Date, &inv.ContractID, &total)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.TotalAmount = decimal.NewFromFloat(total)
		out = append(out, inv)
	}
	return out, rows.Err()
}

// AddInvoice inserts an invoice and returns its id.
func (s *Store) AddInvoice(inv models.Invoice) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO Invoices (number, date, contract_id) VALUES (?, ?, ?)",
		inv.Number, inv.Date, inv.ContractID)
	if err != nil {
		return 0, fmt.Errorf("insert invoice %q: %w", inv.Number, err)
	}
	return res.LastInsertId()
}

// UpdateInvoice updates an invoice by id.
func (s *Store) UpdateInvoice(inv models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE Invoices SET number = ?, date = ?, contract_id = ? WHERE id = ?",
		inv.Number, inv.Date, inv.ContractID, inv.ID)
	if err != nil {
		return fmt.Errorf("update invoice %d: %w", inv.ID, err)
	}
	return nil
}

// DeleteInvoice removes an invoice. Detail rows keep their invoice_id
// values.
func (s *Store) DeleteInvoice(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM Invoices WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	return nil
}

// InvoiceIDByNumberDate looks an invoice up by its natural key. The date
// is expected in ISO form.
func (s *Store) InvoiceIDByNumberDate(number, dateISO string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM Invoices WHERE number = ? AND date = ?",
		number, dateISO).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup invoice (%q, %q): %w", number, dateISO, err)
	}
	return id, true, nil
}
