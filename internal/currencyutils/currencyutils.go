// Package currencyutils provides the amount parsing used by the import
// pipeline. Bank statements in this format use a comma decimal separator
// and no thousands separator; classification sub-amounts inside payment
// descriptions use `=` between roubles and kopecks.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseStatementAmount parses an amount token from a statement column.
// The comma decimal separator is normalized to a dot before parsing.
// Parse failure yields zero: the caller rejects zero-amount rows one
// level up, so a bad token and a genuinely zero row take the same path.
func ParseStatementAmount(token string) decimal.Decimal {
	normalized := strings.ReplaceAll(strings.TrimSpace(token), ",", ".")
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		log.Warnf("Unparseable amount token %q, treating as zero", token)
		return decimal.Zero
	}
	return amount
}

// ParseSubAmount parses a classification sub-amount token such as
// "5537=40". The fractional part after `=` is discarded: the original
// records only keep whole roubles for detail rows.
func ParseSubAmount(token string) (decimal.Decimal, error) {
	if idx := strings.Index(token, "="); idx >= 0 {
		token = token[:idx]
	}
	return decimal.NewFromString(token)
}
