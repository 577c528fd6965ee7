package store

import (
	"database/sql"
	"fmt"
	"regexp"

	"avkuzmin/finaudit/internal/models"
)

// Patterns returns all extraction patterns ordered by name.
func (s *Store) Patterns() ([]models.RegexPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id, name, pattern FROM Regexes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.RegexPattern
	for rows.Next() {
		var p models.RegexPattern
		if err := rows.Scan(&p.ID, &p.Name, &p.Pattern); err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PatternByName returns one extraction pattern by its unique name.
func (s *Store) PatternByName(name string) (models.RegexPattern, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p models.RegexPattern
	err := s.db.QueryRow(
		"SELECT id, name, pattern FROM Regexes WHERE name = ?", name).
		Scan(&p.ID, &p.Name, &p.Pattern)
	if err == sql.ErrNoRows {
		return p, false, nil
	}
	if err != nil {
		return p, false, fmt.Errorf("lookup pattern %q: %w", name, err)
	}
	return p, true, nil
}

// AddPattern inserts an extraction pattern after validating that it
// compiles. Rejecting bad patterns at save time keeps the next import
// from failing at first use.
func (s *Store) AddPattern(p models.RegexPattern) (int64, error) {
	if _, err := regexp.Compile(p.Pattern); err != nil {
		return 0, fmt.Errorf("invalid pattern %q: %w", p.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO Regexes (name, pattern) VALUES (?, ?)", p.Name, p.Pattern)
	if err != nil {
		return 0, fmt.Errorf("insert pattern %q: %w", p.Name, err)
	}
	return res.LastInsertId()
}

// UpdatePattern updates an extraction pattern by id, with the same
// save-time validation as AddPattern.
func (s *Store) UpdatePattern(p models.RegexPattern) error {
	if _, err := regexp.Compile(p.Pattern); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", p.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE Regexes SET name = ?, pattern = ? WHERE id = ?",
		p.Name, p.Pattern, p.ID)
	if err != nil {
		return fmt.Errorf("update pattern %d: %w", p.ID, err)
	}
	return nil
}

// DeletePattern removes an extraction pattern.
func (s *Store) DeletePattern(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM Regexes WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete pattern %d: %w", id, err)
	}
	return nil
}
