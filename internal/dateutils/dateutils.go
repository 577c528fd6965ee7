// Package dateutils provides the date conversions used by the import
// pipeline and the store.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutRussian = "02.01.2006"
)

// ToISO converts a DD.MM.YYYY date string to YYYY-MM-DD by character
// position. Only exact 10-character inputs are converted; anything else is
// returned unchanged, including two-digit-year dates a statement may
// contain. Callers that need rejection must validate separately.
func ToISO(dateRU string) string {
	if len(dateRU) != 10 {
		return dateRU
	}
	return dateRU[6:10] + "-" + dateRU[3:5] + "-" + dateRU[0:2]
}

// FromISO converts a YYYY-MM-DD date string back to DD.MM.YYYY for
// display. Non-10-character inputs pass through unchanged, mirroring ToISO.
func FromISO(dateISO string) string {
	if len(dateISO) != 10 {
		return dateISO
	}
	return dateISO[8:10] + "." + dateISO[5:7] + "." + dateISO[0:4]
}

// ParseRussianDate strictly parses a DD.MM.YYYY date string.
func ParseRussianDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutRussian, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
	}
	return t, nil
}

// IsISODate reports whether the string is a well-formed YYYY-MM-DD date.
func IsISODate(dateStr string) bool {
	_, err := time.Parse(DateLayoutISO, dateStr)
	return err == nil
}
