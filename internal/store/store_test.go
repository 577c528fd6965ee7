package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Create(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{PatternNameContract, PatternNameInvoice, PatternNameKosgu} {
		p, ok, err := s.PatternByName(name)
		require.NoError(t, err)
		assert.True(t, ok, "pattern %q missing", name)
		assert.NotEmpty(t, p.Pattern)
	}

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, int64(1), settings.ID)
	assert.Equal(t, 20, settings.ImportPreviewLines)
	assert.Equal(t, 0, settings.Theme)
	assert.Equal(t, 24, settings.FontSize)
}

func TestCreateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	s, err := Create(path)
	require.NoError(t, err)
	_, err = s.AddKosgu(models.Kosgu{Code: "225", Name: "Работы, услуги"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Opening again with Create must not reset data or duplicate seeds.
	s, err = Create(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.KosguEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	patterns, err := s.Patterns()
	require.NoError(t, err)
	assert.Len(t, patterns, 3)
}

func TestKosguCRUD(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "Работы, услуги", Note: "прим."})
	require.NoError(t, err)

	gotID, ok, err := s.KosguIDByCode("225")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, gotID)

	_, ok, err = s.KosguIDByCode("310")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpdateKosgu(models.Kosgu{ID: id, Code: "225", Name: "обновлено"}))
	entries, err := s.KosguEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "обновлено", entries[0].Name)

	require.NoError(t, s.DeleteKosgu(id))
	entries, err = s.KosguEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCounterpartyLookupPaths(t *testing.T) {
	s := newTestStore(t)

	withINN, err := s.AddCounterparty(models.Counterparty{
		Name: "ООО Ромашка",
		INN:  sql.NullString{String: "7701234567", Valid: true},
	})
	require.NoError(t, err)

	withoutINN, err := s.AddCounterparty(models.Counterparty{Name: "ООО Ромашка"})
	require.NoError(t, err)

	// The two lookup paths must not see each other's rows.
	id, ok, err := s.CounterpartyIDByNameINN("ООО Ромашка", "7701234567")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, withINN, id)

	id, ok, err = s.CounterpartyIDByName("ООО Ромашка")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, withoutINN, id)

	_, ok, err = s.CounterpartyIDByNameINN("ООО Ромашка", "0000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContractLookupAndProcurementCode(t *testing.T) {
	s := newTestStore(t)

	id, err := s.AddContract(models.Contract{
		Number:         "12/44",
		Date:           "2024-03-05",
		ContractAmount: decimal.RequireFromString("100000"),
	})
	require.NoError(t, err)

	gotID, ok, err := s.ContractIDByNumberDate("12/44", "2024-03-05")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, gotID)

	_, ok, err = s.ContractIDByNumberDate("12/44", "2024-03-06")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetContractProcurementCode(id, "221234567890123456789012345"))
	contracts, err := s.Contracts()
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "221234567890123456789012345", contracts[0].ProcurementCode)
	assert.True(t, contracts[0].IsFound)
}

func TestPaymentDetailsCascadeAndSum(t *testing.T) {
	s := newTestStore(t)

	kosguID, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "КОСГУ 225"})
	require.NoError(t, err)

	payID, err := s.AddPayment(models.Payment{
		Date:      "2024-03-05",
		DocNumber: "125",
		Direction: models.DirectionExpense,
		Amount:    decimal.RequireFromString("5637.40"),
	})
	require.NoError(t, err)

	for _, amount := range []string{"5537", "100"} {
		_, err := s.AddPaymentDetail(models.PaymentDetail{
			PaymentID: payID,
			KosguID:   sql.NullInt64{Int64: kosguID, Valid: true},
			Amount:    decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}

	sum, err := s.DetailSum(payID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5637").Equal(sum), "got %s", sum)

	require.NoError(t, s.DeletePayment(payID))
	details, err := s.PaymentDetails(payID)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestListTotalAmounts(t *testing.T) {
	s := newTestStore(t)

	cpID, err := s.AddCounterparty(models.Counterparty{Name: "ООО Ромашка"})
	require.NoError(t, err)
	kosguID, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "КОСГУ 225"})
	require.NoError(t, err)
	contractID, err := s.AddContract(models.Contract{Number: "12/44", Date: "2024-03-05"})
	require.NoError(t, err)
	invoiceID, err := s.AddInvoice(models.Invoice{Number: "77", Date: "2024-02-01"})
	require.NoError(t, err)

	for _, amount := range []string{"5537", "100"} {
		payID, err := s.AddPayment(models.Payment{
			Date: "2024-03-05", Direction: models.DirectionExpense,
			Amount:         decimal.RequireFromString(amount),
			CounterpartyID: sql.NullInt64{Int64: cpID, Valid: true},
		})
		require.NoError(t, err)
		_, err = s.AddPaymentDetail(models.PaymentDetail{
			PaymentID:  payID,
			KosguID:    sql.NullInt64{Int64: kosguID, Valid: true},
			ContractID: sql.NullInt64{Int64: contractID, Valid: true},
			InvoiceID:  sql.NullInt64{Int64: invoiceID, Valid: true},
			Amount:     decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}

	total := decimal.RequireFromString("5637")

	entries, err := s.KosguEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, total.Equal(entries[0].TotalAmount), "got %s", entries[0].TotalAmount)

	counterparties, err := s.Counterparties()
	require.NoError(t, err)
	require.Len(t, counterparties, 1)
	assert.True(t, total.Equal(counterparties[0].TotalAmount), "got %s", counterparties[0].TotalAmount)

	contracts, err := s.Contracts()
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.True(t, total.Equal(contracts[0].TotalAmount), "got %s", contracts[0].TotalAmount)

	invoices, err := s.Invoices()
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.True(t, total.Equal(invoices[0].TotalAmount), "got %s", invoices[0].TotalAmount)
}

func TestListTotalAmountsZeroWithoutPayments(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddKosgu(models.Kosgu{Code: "310", Name: "КОСГУ 310"})
	require.NoError(t, err)
	_, err = s.AddCounterparty(models.Counterparty{Name: "ИП Иванов"})
	require.NoError(t, err)

	entries, err := s.KosguEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].TotalAmount.IsZero())

	counterparties, err := s.Counterparties()
	require.NoError(t, err)
	require.Len(t, counterparties, 1)
	assert.True(t, counterparties[0].TotalAmount.IsZero())
}

func TestPatternValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddPattern(models.RegexPattern{Name: "broken", Pattern: "("})
	assert.Error(t, err)

	id, err := s.AddPattern(models.RegexPattern{Name: "ok", Pattern: `\d+`})
	require.NoError(t, err)

	err = s.UpdatePattern(models.RegexPattern{ID: id, Name: "ok", Pattern: "["})
	assert.Error(t, err)

	p, ok, err := s.PatternByName("ok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `\d+`, p.Pattern)
}

func TestExecuteSelect(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "Работы, услуги"})
	require.NoError(t, err)

	columns, rows, err := s.ExecuteSelect("SELECT code, name FROM KOSGU")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name"}, columns)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"225", "Работы, услуги"}, rows[0])

	_, _, err = s.ExecuteSelect("DELETE FROM KOSGU")
	assert.Error(t, err)

	_, _, err = s.ExecuteSelect("  select code from KOSGU")
	assert.NoError(t, err)
}

func TestContractsForExport(t *testing.T) {
	s := newTestStore(t)

	cpID, err := s.AddCounterparty(models.Counterparty{Name: "ООО Ромашка"})
	require.NoError(t, err)
	kosguID, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "КОСГУ 225"})
	require.NoError(t, err)

	checkedID, err := s.AddContract(models.Contract{
		Number:              "12/44",
		Date:                "2024-03-05",
		CounterpartyID:      sql.NullInt64{Int64: cpID, Valid: true},
		IsForChecking:       true,
		IsForSpecialControl: true,
		Note:                "на контроль",
		ProcurementCode:     "2212345",
	})
	require.NoError(t, err)

	// Not marked for checking, must not appear.
	_, err = s.AddContract(models.Contract{Number: "13/44", Date: "2024-03-06"})
	require.NoError(t, err)

	payID, err := s.AddPayment(models.Payment{
		Date: "2024-03-07", Direction: models.DirectionExpense,
		Amount: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
	_, err = s.AddPaymentDetail(models.PaymentDetail{
		PaymentID:  payID,
		KosguID:    sql.NullInt64{Int64: kosguID, Valid: true},
		ContractID: sql.NullInt64{Int64: checkedID, Valid: true},
		Amount:     decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	rows, err := s.ContractsForExport()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12/44", rows[0].Number)
	assert.Equal(t, "ООО Ромашка", rows[0].CounterpartyName)
	assert.Equal(t, "225", rows[0].KosguCodes)
	assert.True(t, rows[0].IsForSpecialControl)
	assert.Equal(t, "2212345", rows[0].ProcurementCode)
}

func TestSuspiciousPayments(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddSuspiciousWord("штраф")
	require.NoError(t, err)
	// Duplicate insert returns the existing id.
	id1, err := s.AddSuspiciousWord("пени")
	require.NoError(t, err)
	id2, err := s.AddSuspiciousWord("пени")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	_, err = s.AddPayment(models.Payment{
		Date: "2024-03-05", Direction: models.DirectionExpense,
		Amount:      decimal.RequireFromString("500"),
		Description: "Оплата ШТРАФА по постановлению",
	})
	require.NoError(t, err)
	_, err = s.AddPayment(models.Payment{
		Date: "2024-03-06", Direction: models.DirectionExpense,
		Amount:      decimal.RequireFromString("200"),
		Description: "Оплата услуг связи",
	})
	require.NoError(t, err)

	matches, err := s.SuspiciousPayments()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "штраф", matches[0].Word)

	total := SuspiciousTotal(matches)
	assert.True(t, decimal.RequireFromString("500").Equal(total), "got %s", total)
}

func TestCleanOrphanPaymentDetails(t *testing.T) {
	s := newTestStore(t)

	payID, err := s.AddPayment(models.Payment{
		Date: "2024-03-05", Direction: models.DirectionExpense,
		Amount: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
	_, err = s.AddPaymentDetail(models.PaymentDetail{
		PaymentID: payID,
		Amount:    decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	// With foreign keys on the cascade already removes details, so a
	// fresh database reports nothing to clean.
	n, err := s.CleanOrphanPaymentDetails()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBackup(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddKosgu(models.Kosgu{Code: "225", Name: "КОСГУ 225"})
	require.NoError(t, err)

	backupPath := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, s.Backup(backupPath))

	b, err := Open(backupPath)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	entries, err := b.KosguEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
