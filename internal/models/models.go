// Package models defines the entities stored in the audit database and the
// value types shared between the import pipeline and the store.
package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Kosgu is a budget classification code (КОСГУ).
// Code is the natural key; Name is a display name, generated on first
// import-time resolution when the code is not yet known.
type Kosgu struct {
	ID   int64
	Code string
	Name string
	Note string
	// TotalAmount is the sum of all payment details carrying this code,
	// computed by the list query.
	TotalAmount decimal.Decimal
}

// Counterparty is a payer or recipient organisation.
// The dedup key is (Name, INN) when the INN is known, and
// (Name, INN IS NULL) otherwise.
type Counterparty struct {
	ID                 int64
	Name               string
	INN                sql.NullString
	IsContractOptional bool
	// TotalAmount is the sum of all payments attributed to this
	// counterparty, computed by the list query.
	TotalAmount decimal.Decimal
}

// Contract is identified for resolution purposes by (Number, Date).
// Uniqueness is not enforced by the schema; duplicates are possible when
// rows are inserted outside the resolver.
type Contract struct {
	ID                  int64
	Number              string
	Date                string // ISO YYYY-MM-DD
	CounterpartyID      sql.NullInt64
	ContractAmount      decimal.Decimal
	EndDate             string
	ProcurementCode     string
	Note                string
	IsForChecking       bool
	IsForSpecialControl bool
	IsFound             bool
	// TotalAmount is the sum of all payment details referencing this
	// contract, computed by the list query. Contrast ContractAmount,
	// which is the agreed contract value entered by hand.
	TotalAmount decimal.Decimal
}

// Invoice is identified for resolution purposes by (Number, Date).
type Invoice struct {
	ID         int64
	Number     string
	Date       string // ISO YYYY-MM-DD
	ContractID sql.NullInt64
	// TotalAmount is the sum of all payment details referencing this
	// invoice, computed by the list query.
	TotalAmount decimal.Decimal
}

// Payment is one bank statement row.
type Payment struct {
	ID             int64
	Date           string // ISO YYYY-MM-DD
	DocNumber      string
	Direction      Direction
	Amount         decimal.Decimal
	Recipient      string
	Description    string
	CounterpartyID sql.NullInt64
	Note           string
}

// PaymentDetail is one classified portion of a payment. Details are owned
// by their payment and removed with it; the code/contract/invoice links
// are optional.
type PaymentDetail struct {
	ID         int64
	PaymentID  int64
	KosguID    sql.NullInt64
	ContractID sql.NullInt64
	InvoiceID  sql.NullInt64
	Amount     decimal.Decimal
}

// RegexPattern is a user-editable extraction pattern, addressed by its
// unique name. Three names are well known to the reference extractor:
// Контракты, Накладные and КОСГУ.
type RegexPattern struct {
	ID      int64
	Name    string
	Pattern string
}

// SuspiciousWord is one entry of the audit word list matched against
// payment descriptions.
type SuspiciousWord struct {
	ID   int64
	Word string
}

// Settings is the singleton settings row.
type Settings struct {
	ID                 int64
	OrganizationName   string
	PeriodStartDate    string
	PeriodEndDate      string
	Note               string
	ImportPreviewLines int
	Theme              int
	FontSize           int
}

// PaymentInfo is the aggregate row returned by the per-entity payment
// listings (payments of a contract, counterparty, invoice or KOSGU code).
type PaymentInfo struct {
	EntityID    int64
	Date        string
	DocNumber   string
	Amount      decimal.Decimal
	Description string
}

// ContractExportRow is one row of the contracts-for-checking report.
type ContractExportRow struct {
	Number              string
	Date                string
	CounterpartyName    string
	KosguCodes          string
	IsForSpecialControl bool
	Note                string
	ProcurementCode     string
}

// SuspiciousPayment is a payment flagged by the suspicious-word scan,
// together with the word that matched.
type SuspiciousPayment struct {
	Payment Payment
	Word    string
}
