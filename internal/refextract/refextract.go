// Package refextract scans payment descriptions for contract, invoice and
// classification-code references. The patterns are user data: they live in
// the Regexes table and are compiled once per import run.
package refextract

import (
	"fmt"
	"regexp"

	"avkuzmin/finaudit/internal/currencyutils"
	"avkuzmin/finaudit/internal/dateutils"
	"avkuzmin/finaudit/internal/store"

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

// DocRef is a contract or invoice reference: document number plus ISO
// date. Dates that do not look like DD.MM.YYYY are carried through
// unconverted.
type DocRef struct {
	Number string
	Date   string
}

// CodeAmount is one classification-code match: the code (without the К
// prefix) and the sub-amount attributed to it.
type CodeAmount struct {
	Code   string
	Amount decimal.Decimal
}

// Extractor holds the three compiled patterns for one import run.
type Extractor struct {
	contract *regexp.Regexp
	invoice  *regexp.Regexp
	kosgu    *regexp.Regexp
}

// Load reads the three well-known patterns from the store and compiles
// them. A missing or uncompilable pattern is an error: imports without
// extraction rules would silently classify nothing.
func Load(s *store.Store) (*Extractor, error) {
	var e Extractor
	for _, slot := range []struct {
		name string
		dst  **regexp.Regexp
	}{
		{store.PatternNameContract, &e.contract},
		{store.PatternNameInvoice, &e.invoice},
		{store.PatternNameKosgu, &e.kosgu},
	} {
		p, ok, err := s.PatternByName(slot.name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("extraction pattern %q not found", slot.name)
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", slot.name, err)
		}
		*slot.dst = re
	}
	return &e, nil
}

// New builds an extractor from raw pattern strings. Used by tests and by
// callers that manage patterns themselves.
func New(contractPattern, invoicePattern, kosguPattern string) (*Extractor, error) {
	var e Extractor
	var err error
	if e.contract, err = regexp.Compile(contractPattern); err != nil {
		return nil, fmt.Errorf("compile contract pattern: %w", err)
	}
	if e.invoice, err = regexp.Compile(invoicePattern); err != nil {
		return nil, fmt.Errorf("compile invoice pattern: %w", err)
	}
	if e.kosgu, err = regexp.Compile(kosguPattern); err != nil {
		return nil, fmt.Errorf("compile kosgu pattern: %w", err)
	}
	return &e, nil
}

// Contract returns the first contract reference in the description, if
// any.
func (e *Extractor) Contract(description string) (DocRef, bool) {
	return e.firstDocRef(e.contract, description)
}

// Invoice returns the first invoice reference in the description, if any.
func (e *Extractor) Invoice(description string) (DocRef, bool) {
	return e.firstDocRef(e.invoice, description)
}

func (e *Extractor) firstDocRef(re *regexp.Regexp, description string) (DocRef, bool) {
	m := re.FindStringSubmatch(description)
	if len(m) != 3 {
		return DocRef{}, false
	}
	return DocRef{Number: m[1], Date: dateutils.ToISO(m[2])}, true
}

// CodeAmounts returns every classification-code match in the description.
// A match whose sub-amount token does not parse is dropped alone; the
// remaining matches are still returned.
func (e *Extractor) CodeAmounts(description string) []CodeAmount {
	var out []CodeAmount
	for _, m := range e.kosgu.FindAllStringSubmatch(description, -1) {
		if len(m) != 4 {
			continue
		}
		amount, err := currencyutils.ParseSubAmount(m[2])
		if err != nil {
			log.Warnf("Unparseable sub-amount %q in description, dropping match", m[2])
			continue
		}
		out = append(out, CodeAmount{Code: m[3], Amount: amount})
	}
	return out
}
