package store

import (
	"fmt"

	"avkuzmin/finaudit/internal/models"
)

// Settings returns the singleton settings row.
func (s *Store) Settings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st models.Settings
	err := s.db.QueryRow(`
		SELECT id, IFNULL(organization_name, ''), IFNULL(period_start_date, ''),
		       IFNULL(period_end_date, ''), IFNULL(note, ''),
		       import_preview_lines, theme, font_size
		FROM Settings WHERE id = 1`).
		Scan(&st.ID, &st.OrganizationName, &st.PeriodStartDate,
			&st.PeriodEndDate, &st.Note, &st.ImportPreviewLines,
			&st.Theme, &st.FontSize)
	if err != nil {
		return st, fmt.Errorf("query settings: %w", err)
	}
	return st, nil
}

// UpdateSettings replaces the singleton settings row.
func (s *Store) UpdateSettings(st models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE Settings SET
			organization_name = ?, period_start_date = ?, period_end_date = ?,
			note = ?, import_preview_lines = ?, theme = ?, font_size = ?
		WHERE id = 1`,
		st.OrganizationName, st.PeriodStartDate, st.PeriodEndDate, st.Note,
		st.ImportPreviewLines, st.Theme, st.FontSize)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
