package store

import (
	"database/sql"
	"fmt"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// Counterparties returns all counterparties ordered by name, each with
// the total amount of the payments attributed to it.
func (s *Store) Counterparties() ([]models.Counterparty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.inn, c.is_contract_optional,
		       IFNULL(p_sum.total, 0.0)
		FROM Counterparties c
		LEFT JOIN (
			SELECT counterparty_id, SUM(amount) AS total
			FROM Payments
			WHERE counterparty_id IS NOT NULL
			GROUP BY counterparty_id
		) p_sum ON p_sum.counterparty_id = c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("query counterparties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Counterparty
	for rows.Next() {
		var c models.Counterparty
		var optional int
		var total float64
		if err := rows.Scan(&c.ID, &c.Name, &c.INN, &optional, &total); err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		c.IsContractOptional = optional == 1
		c.TotalAmount = decimal.NewFromFloat(total)
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddCounterparty inserts a counterparty and returns its id. An empty INN
// is stored as NULL so that the UNIQUE constraint on inn only applies to
// known tax ids.
func (s *Store) AddCounterparty(c models.Counterparty) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO Counterparties (name, inn, is_contract_optional) VALUES (?, ?, ?)",
		c.Name, nullIfEmpty(c.INN), boolToInt(c.IsContractOptional))
	if err != nil {
		return 0, fmt.Errorf("insert counterparty %q: %w", c.Name, err)
	}
	return res.LastInsertId()
}

// UpdateCounterparty updates a counterparty by id.
func (s *Store) UpdateCounterparty(c models.Counterparty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE Counterparties SET name = ?, inn = ?, is_contract_optional = ? WHERE id = ?",
		c.Name, nullIfEmpty(c.INN), boolToInt(c.IsContractOptional), c.ID)
	if err != nil {
		return fmt.Errorf("update counterparty %d: %w", c.ID, err)
	}
	return nil
}

// DeleteCounterparty removes a counterparty. Payments and contracts keep
// their counterparty_id values.
func (s *Store) DeleteCounterparty(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM Counterparties WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete counterparty %d: %w", id, err)
	}
	return nil
}

// CounterpartyIDByNameINN looks up a counterparty by its full natural key
// (name, inn). Use CounterpartyIDByName when the tax id is unknown; the
// two are distinct lookup paths, not fallbacks of each other.
func (s *Store) CounterpartyIDByNameINN(name, inn string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM Counterparties WHERE name = ? AND inn = ?",
		name, inn).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup counterparty (%q, %q): %w", name, inn, err)
	}
	return id, true, nil
}

// CounterpartyIDByName looks up a counterparty that has no recorded tax id.
func (s *Store) CounterpartyIDByName(name string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM Counterparties WHERE name = ? AND inn IS NULL",
		name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup counterparty %q: %w", name, err)
	}
	return id, true, nil
}

func nullIfEmpty(ns sql.NullString) interface{} {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return ns.String
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
