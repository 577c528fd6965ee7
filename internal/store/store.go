// Package store provides the SQLite persistence layer: the schema, seed
// data, per-entity CRUD, natural-key lookups and the generic SELECT used
// by ad-hoc reporting.
//
// All methods are serialized by an internal mutex. The application runs
// at most one background import at a time; the mutex turns that
// convention into a guarantee.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Store wraps the SQLite database handle.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens an existing audit database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Create opens the database at path, creating the schema and seed rows
// when missing. Safe to call on an existing database: every statement is
// idempotent.
func Create(path string) (*Store, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSchema(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec(defaultSettingsSQL); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	for _, p := range defaultPatterns {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO Regexes (name, pattern) VALUES (?, ?)",
			p.name, p.pattern)
		if err != nil {
			return fmt.Errorf("seed pattern %q: %w", p.name, err)
		}
	}
	log.Debug("Schema ensured")
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Backup writes a consistent copy of the database to backupPath.
func (s *Store) Backup(backupPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("VACUUM INTO ?", backupPath); err != nil {
		return fmt.Errorf("backup database: %w", err)
	}
	log.WithField("path", backupPath).Info("Database backed up")
	return nil
}

// ExecuteSelect runs an ad-hoc parametrized SELECT and returns the column
// names and all rows as strings. Only SELECT statements are accepted; the
// reporting surface has no business mutating data.
func (s *Store) ExecuteSelect(query string, args ...interface{}) ([]string, [][]string, error) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		return nil, nil, fmt.Errorf("only SELECT statements are allowed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("execute select: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns: %w", err)
	}

	var result [][]string
	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		result = append(result, row)
	}
	return columns, result, rows.Err()
}

// ClearPayments removes all payments; detail rows go with them via the
// cascade.
func (s *Store) ClearPayments() error {
	return s.clearTable("Payments")
}

// ClearCounterparties removes all counterparties. Payments keep their
// counterparty_id values; dangling references are an accepted property of
// the data model.
func (s *Store) ClearCounterparties() error {
	return s.clearTable("Counterparties")
}

// ClearContracts removes all contracts.
func (s *Store) ClearContracts() error {
	return s.clearTable("Contracts")
}

// ClearInvoices removes all invoices.
func (s *Store) ClearInvoices() error {
	return s.clearTable("Invoices")
}

func (s *Store) clearTable(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	log.WithField("table", table).Info("Table cleared")
	return nil
}

// CleanOrphanPaymentDetails removes detail rows whose payment no longer
// exists. Needed after bulk deletions done with foreign keys off.
func (s *Store) CleanOrphanPaymentDetails() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(
		"DELETE FROM PaymentDetails WHERE payment_id NOT IN (SELECT id FROM Payments)")
	if err != nil {
		return 0, fmt.Errorf("clean orphan payment details: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
