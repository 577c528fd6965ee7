package store

import (
	"database/sql"
	"fmt"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// Contracts returns all contracts ordered by date then number, each with
// the total amount of the payment details referencing it.
func (s *Store) Contracts() ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT c.id, c.number, c.date, c.counterparty_id, c.contract_amount,
		       IFNULL(c.end_date, ''), IFNULL(c.procurement_code, ''), IFNULL(c.note, ''),
		       c.is_for_checking, c.is_for_special_control, c.is_found,
		       IFNULL(SUM(pd.amount), 0.0)
		FROM Contracts c
		LEFT JOIN PaymentDetails pd ON pd.contract_id = c.id
		GROUP BY c.id, c.number, c.date, c.counterparty_id
		ORDER BY c.date, c.number`)
	if err != nil {
		return nil, fmt.Errorf("query contracts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanContract(rows *sql.Rows) (models.Contract, error) {
	var c models.Contract
	var amount, total float64
	var checking, special, found int
	err := rows.Scan(&c.ID, &c.Number, &c.Date, &c.CounterpartyID, &amount,
		&c.EndDate, &c.ProcurementCode, &c.Note, &checking, &special, &found,
		&total)
	if err != nil {
		return c, fmt.Errorf("scan contract: %w", err)
	}
	c.ContractAmount = decimal.NewFromFloat(amount)
	c.TotalAmount = decimal.NewFromFloat(total)
	c.IsForChecking = checking == 1
	c.IsForSpecialControl = special == 1
	c.IsFound = found == 1
	return c, nil
}

// AddContract inserts a contract and returns its id.
func (s *Store) AddContract(c models.Contract) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := c.ContractAmount.Float64()
	res, err := s.db.Exec(`
		INSERT INTO Contracts
			(number, date, counterparty_id, contract_amount, end_date,
			 procurement_code, note, is_for_checking, is_for_special_control, is_found)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Number, c.Date, c.CounterpartyID, amount, c.EndDate,
		c.ProcurementCode, c.Note, boolToInt(c.IsForChecking),
		boolToInt(c.IsForSpecialControl), boolToInt(c.IsFound))
	if err != nil {
		return 0, fmt.Errorf("insert contract %q: %w", c.Number, err)
	}
	return res.LastInsertId()
}

// UpdateContract updates a contract by id.
func (s *Store) UpdateContract(c models.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, _ := c.ContractAmount.Float64()
	_, err := s.db.Exec(`
		UPDATE Contracts SET
			number = ?, date = ?, counterparty_id = ?, contract_amount = ?,
			end_date = ?, procurement_code = ?, note = ?, is_for_checking = ?,
			is_for_special_control = ?, is_found = ?
		WHERE id = ?`,
		c.Number, c.Date, c.CounterpartyID, amount, c.EndDate,
		c.ProcurementCode, c.Note, boolToInt(c.IsForChecking),
		boolToInt(c.IsForSpecialControl), boolToInt(c.IsFound), c.ID)
	if err != nil {
		return fmt.Errorf("update contract %d: %w", c.ID, err)
	}
	return nil
}

// DeleteContract removes a contract. Invoices and detail rows keep their
// contract_id values.
func (s *Store) DeleteContract(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM Contracts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete contract %d: %w", id, err)
	}
	return nil
}

// ContractIDByNumberDate looks a contract up by its natural key. The date
// is expected in ISO form.
func (s *Store) ContractIDByNumberDate(number, dateISO string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM Contracts WHERE number = ? AND date = ?",
		number, dateISO).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup contract (%q, %q): %w", number, dateISO, err)
	}
	return id, true, nil
}

// SetContractProcurementCode records the IKZ for a contract and marks it
// found by the reconciliation flow.
func (s *Store) SetContractProcurementCode(id int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE Contracts SET procurement_code = ?, is_found = 1 WHERE id = ?",
		code, id)
	if err != nil {
		return fmt.Errorf("set procurement code on contract %d: %w", id, err)
	}
	return nil
}

// ContractsForExport returns the rows of the contracts-for-checking
// report: every contract marked for checking, with its counterparty name
// and the distinct KOSGU codes of its payment details.
func (s *Store) ContractsForExport() ([]models.ContractExportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT c.number, c.date, IFNULL(cp.name, ''),
		       IFNULL((SELECT GROUP_CONCAT(DISTINCT k.code)
		               FROM PaymentDetails pd
		               JOIN KOSGU k ON k.id = pd.kosgu_id
		               WHERE pd.contract_id = c.id), ''),
		       c.is_for_special_control, IFNULL(c.note, ''),
		       IFNULL(c.procurement_code, '')
		FROM Contracts c
		LEFT JOIN Counterparties cp ON cp.id = c.counterparty_id
		WHERE c.is_for_checking = 1
		ORDER BY c.date, c.number`)
	if err != nil {
		return nil, fmt.Errorf("query contracts for export: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ContractExportRow
	for rows.Next() {
		var r models.ContractExportRow
		var special int
		err := rows.Scan(&r.Number, &r.Date, &r.CounterpartyName,
			&r.KosguCodes, &special, &r.Note, &r.ProcurementCode)
		if err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		r.IsForSpecialControl = special == 1
		out = append(out, r)
	}
	return out, rows.Err()
}
