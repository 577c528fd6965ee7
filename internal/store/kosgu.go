package store

import (
	"database/sql"
	"fmt"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// KosguEntries returns all classification codes ordered by code, each
// with the total amount of the payment details carrying it.
func (s *Store) KosguEntries() ([]models.Kosgu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT k.id, k.code, k.name, IFNULL(k.note, ''),
		       IFNULL(SUM(pd.amount), 0.0)
		FROM KOSGU k
		LEFT JOIN PaymentDetails pd ON pd.kosgu_id = k.id
		GROUP BY k.id, k.code, k.name, k.note
		ORDER BY k.code`)
	if err != nil {
		return nil, fmt.Errorf("query KOSGU: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Kosgu
	for rows.Next() {
		var k models.Kosgu
		var total float64
		if err := rows.Scan(&k.ID, &k.Code, &k.Name, &k.Note, &total); err != nil {
			return nil, fmt.Errorf("scan KOSGU: %w", err)
		}
		k.TotalAmount = decimal.NewFromFloat(total)
		out = append(out, k)
	}
	return out, rows.Err()
}

// AddKosgu inserts a classification code and returns its id.
func (s *Store) AddKosgu(k models.Kosgu) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO KOSGU (code, name, note) VALUES (?, ?, ?)",
		k.Code, k.Name, k.Note)
	if err != nil {
		return 0, fmt.Errorf("insert KOSGU %q: %w", k.Code, err)
	}
	return res.LastInsertId()
}

// UpdateKosgu updates a classification code by id.
func (s *Store) UpdateKosgu(k models.Kosgu) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE KOSGU SET code = ?, name = ?, note = ? WHERE id = ?",
		k.Code, k.Name, k.Note, k.ID)
	if err != nil {
		return fmt.Errorf("update KOSGU %d: %w", k.ID, err)
	}
	return nil
}

// DeleteKosgu removes a classification code. Detail rows referencing it
// keep their kosgu_id; see the data model notes on referential integrity.
func (s *Store) DeleteKosgu(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM KOSGU WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete KOSGU %d: %w", id, err)
	}
	return nil
}

// KosguIDByCode looks a classification code up by its natural key.
func (s *Store) KosguIDByCode(code string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRow("SELECT id FROM KOSGU WHERE code = ?", code).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup KOSGU %q: %w", code, err)
	}
	return id, true, nil
}
