// Package resolver implements the lookup-or-create contract used during
// import: referenced counterparties, contracts, invoices and
// classification codes are deduplicated by natural key, so repeated
// imports of the same statement never create duplicate rows.
package resolver

import (
	"database/sql"
	"fmt"
	"strings"

	"avkuzmin/finaudit/internal/models"
	"avkuzmin/finaudit/internal/refextract"
	"avkuzmin/finaudit/internal/store"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// KosguNamePrefix is prepended to the code when a classification entry is
// auto-created and no display name is known yet.
const KosguNamePrefix = "КОСГУ"

// Resolver performs natural-key resolution against one store.
type Resolver struct {
	store *store.Store
}

// New returns a resolver over the given store.
func New(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// Counterparty resolves a counterparty by (name, inn), creating it when
// absent. An empty name resolves to no id at all: statement rows without
// a counterparty name stay unattributed.
func (r *Resolver) Counterparty(name, inn string) (sql.NullInt64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return sql.NullInt64{}, nil
	}
	inn = strings.TrimSpace(inn)

	var id int64
	var found bool
	var err error
	if inn != "" {
		id, found, err = r.store.CounterpartyIDByNameINN(name, inn)
	} else {
		id, found, err = r.store.CounterpartyIDByName(name)
	}
	if err != nil {
		return sql.NullInt64{}, err
	}
	if !found {
		c := models.Counterparty{Name: name}
		if inn != "" {
			c.INN = sql.NullString{String: inn, Valid: true}
		}
		id, err = r.store.AddCounterparty(c)
		if err != nil {
			return sql.NullInt64{}, fmt.Errorf("create counterparty %q: %w", name, err)
		}
		log.WithField("name", name).Debug("Counterparty created")
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// Contract resolves a contract reference, creating the contract when
// absent. New contracts are linked to the counterparty of the payment
// being imported.
func (r *Resolver) Contract(ref refextract.DocRef, counterpartyID sql.NullInt64) (sql.NullInt64, error) {
	id, found, err := r.store.ContractIDByNumberDate(ref.Number, ref.Date)
	if err != nil {
		return sql.NullInt64{}, err
	}
	if !found {
		id, err = r.store.AddContract(models.Contract{
			Number:         ref.Number,
			Date:           ref.Date,
			CounterpartyID: counterpartyID,
		})
		if err != nil {
			return sql.NullInt64{}, fmt.Errorf("create contract %q: %w", ref.Number, err)
		}
		log.WithFields(logrus.Fields{"number": ref.Number, "date": ref.Date}).
			Debug("Contract created")
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// Invoice resolves an invoice reference, creating the invoice when
// absent. New invoices are linked to whatever contract is resolved for
// the current line, which may be none.
func (r *Resolver) Invoice(ref refextract.DocRef, contractID sql.NullInt64) (sql.NullInt64, error) {
	id, found, err := r.store.InvoiceIDByNumberDate(ref.Number, ref.Date)
	if err != nil {
		return sql.NullInt64{}, err
	}
	if !found {
		id, err = r.store.AddInvoice(models.Invoice{
			Number:     ref.Number,
			Date:       ref.Date,
			ContractID: contractID,
		})
		if err != nil {
			return sql.NullInt64{}, fmt.Errorf("create invoice %q: %w", ref.Number, err)
		}
		log.WithFields(logrus.Fields{"number": ref.Number, "date": ref.Date}).
			Debug("Invoice created")
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// Kosgu resolves a classification code, creating it with a generated
// display name when absent.
func (r *Resolver) Kosgu(code string) (sql.NullInt64, error) {
	id, found, err := r.store.KosguIDByCode(code)
	if err != nil {
		return sql.NullInt64{}, err
	}
	if !found {
		id, err = r.store.AddKosgu(models.Kosgu{
			Code: code,
			Name: KosguNamePrefix + " " + code,
		})
		if err != nil {
			return sql.NullInt64{}, fmt.Errorf("create KOSGU %q: %w", code, err)
		}
		log.WithField("code", code).Debug("KOSGU entry created")
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}
