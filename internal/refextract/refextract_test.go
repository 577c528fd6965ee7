package refextract

import (
	"path/filepath"
	"testing"

	"avkuzmin/finaudit/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractPattern = `по контракту\s*([^\s]+)\s*(\d{2}\.\d{2}\.\d{4})`
	invoicePattern  = `(?:док\.о пр-ке пост\.товаров|акт об оказ\.услуг|тов\.накладная|счет на оплату|№)\s*([^\s]+)\s*от\s*(\d{2}\.\d{2}\.\d{4})`
	kosguPattern    = `\(000-0000-0000000000-(\d+):\s*([\d=]+)\s*ЛС\s*\d+\)\s*К(\d+)`
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(contractPattern, invoicePattern, kosguPattern)
	require.NoError(t, err)
	return e
}

func TestContract(t *testing.T) {
	e := newExtractor(t)

	ref, ok := e.Contract("Оплата по контракту 12/44 05.03.2024 за услуги")
	require.True(t, ok)
	assert.Equal(t, "12/44", ref.Number)
	assert.Equal(t, "2024-03-05", ref.Date)

	_, ok = e.Contract("Оплата без ссылки на документы")
	assert.False(t, ok)
}

func TestContractFirstMatchOnly(t *testing.T) {
	e := newExtractor(t)

	ref, ok := e.Contract("по контракту 1/A 01.01.2024, ранее по контракту 2/B 02.02.2024")
	require.True(t, ok)
	assert.Equal(t, "1/A", ref.Number)
	assert.Equal(t, "2024-01-01", ref.Date)
}

func TestInvoice(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		name        string
		description string
		number      string
		date        string
	}{
		{"Goods delivery document", "док.о пр-ке пост.товаров 77 от 01.02.2024", "77", "2024-02-01"},
		{"Service act", "акт об оказ.услуг 12-А от 15.06.2024", "12-А", "2024-06-15"},
		{"Waybill", "тов.накладная 5 от 20.07.2024", "5", "2024-07-20"},
		{"Payment bill", "счет на оплату 99 от 31.12.2023", "99", "2023-12-31"},
		{"Number sign", "№ 404 от 04.04.2024", "404", "2024-04-04"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := e.Invoice(tc.description)
			require.True(t, ok)
			assert.Equal(t, tc.number, ref.Number)
			assert.Equal(t, tc.date, ref.Date)
		})
	}
}

func TestCodeAmounts(t *testing.T) {
	e := newExtractor(t)

	out := e.CodeAmounts("(000-0000-0000000000-1:5537=40 ЛС 12) К225")
	require.Len(t, out, 1)
	assert.Equal(t, "225", out[0].Code)
	assert.True(t, decimal.NewFromInt(5537).Equal(out[0].Amount), "got %s", out[0].Amount)
}

func TestCodeAmountsMultiple(t *testing.T) {
	e := newExtractor(t)

	out := e.CodeAmounts(
		"(000-0000-0000000000-1:5537=40 ЛС 12) К225 " +
			"(000-0000-0000000000-2:100=00 ЛС 12) К310")
	require.Len(t, out, 2)
	assert.Equal(t, "225", out[0].Code)
	assert.Equal(t, "310", out[1].Code)
	assert.True(t, decimal.NewFromInt(100).Equal(out[1].Amount))
}

func TestCodeAmountsBadSubAmountDropsOnlyThatMatch(t *testing.T) {
	e := newExtractor(t)

	out := e.CodeAmounts(
		"(000-0000-0000000000-1:=40 ЛС 12) К225 " +
			"(000-0000-0000000000-2:100=00 ЛС 12) К310")
	require.Len(t, out, 1)
	assert.Equal(t, "310", out[0].Code)
}

func TestCodeAmountsNoMatches(t *testing.T) {
	e := newExtractor(t)
	assert.Empty(t, e.CodeAmounts("Оплата услуг без классификации"))
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New("(", invoicePattern, kosguPattern)
	assert.Error(t, err)
}

func TestLoadFromStore(t *testing.T) {
	s, err := store.Create(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	// The seeded default patterns must load and match the documented
	// description format end to end.
	e, err := Load(s)
	require.NoError(t, err)

	ref, ok := e.Contract("Оплата по контракту 7/Б 05.03.2024")
	require.True(t, ok)
	assert.Equal(t, "7/Б", ref.Number)

	out := e.CodeAmounts("(000-0000-0000000000-1:5537=40 ЛС 12) К225")
	require.Len(t, out, 1)
	assert.Equal(t, "225", out[0].Code)
}
