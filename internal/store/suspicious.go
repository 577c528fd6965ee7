package store

import (
	"fmt"
	"strings"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
)

// SuspiciousWords returns the audit word list ordered alphabetically.
func (s *Store) SuspiciousWords() ([]models.SuspiciousWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, word FROM SuspiciousWords ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("query suspicious words: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.SuspiciousWord
	for rows.Next() {
		var w models.SuspiciousWord
		if err := rows.Scan(&w.ID, &w.Word); err != nil {
			return nil, fmt.Errorf("scan suspicious word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AddSuspiciousWord inserts a word, ignoring duplicates, and returns its
// id.
func (s *Store) AddSuspiciousWord(word string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO SuspiciousWords (word) VALUES (?)", word)
	if err != nil {
		return 0, fmt.Errorf("insert suspicious word %q: %w", word, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var id int64
		err := s.db.QueryRow(
			"SELECT id FROM SuspiciousWords WHERE word = ?", word).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("lookup suspicious word %q: %w", word, err)
		}
		return id, nil
	}
	return res.LastInsertId()
}

// DeleteSuspiciousWord removes a word from the list.
func (s *Store) DeleteSuspiciousWord(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM SuspiciousWords WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete suspicious word %d: %w", id, err)
	}
	return nil
}

// SuspiciousPayments returns payments whose description contains any word
// of the list, case-insensitively, with the first word that matched.
func (s *Store) SuspiciousPayments() ([]models.SuspiciousPayment, error) {
	words, err := s.SuspiciousWords()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	payments, err := s.Payments()
	if err != nil {
		return nil, err
	}

	var out []models.SuspiciousPayment
	for _, p := range payments {
		description := strings.ToLower(p.Description)
		for _, w := range words {
			if strings.Contains(description, strings.ToLower(w.Word)) {
				out = append(out, models.SuspiciousPayment{Payment: p, Word: w.Word})
				break
			}
		}
	}
	return out, nil
}

// SuspiciousTotal sums the amounts of the flagged payments for the audit
// summary line.
func SuspiciousTotal(payments []models.SuspiciousPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Payment.Amount)
	}
	return total
}
