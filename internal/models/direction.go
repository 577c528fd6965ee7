package models

import "strings"

// Direction is the money flow direction of a payment.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
	DirectionUnknown Direction = "unknown"
)

// DirectionFromStatus maps the status column of a bank statement to a
// direction. Matching is by substring: statements abbreviate the status
// text inconsistently but always contain the key word.
func DirectionFromStatus(status string) Direction {
	switch {
	case strings.Contains(status, "Принят"):
		return DirectionIncome
	case strings.Contains(status, "Расход"):
		return DirectionExpense
	default:
		return DirectionUnknown
	}
}

// IsIncome returns true for income payments.
func (d Direction) IsIncome() bool { return d == DirectionIncome }

// IsExpense returns true for expense payments.
func (d Direction) IsExpense() bool { return d == DirectionExpense }

// Valid reports whether the direction is one of the known values.
// Unknown is a valid value: statement rows with an unrecognised status
// are still persisted with it.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense || d == DirectionUnknown
}
