package tsvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avkuzmin/finaudit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementLine(fields ...string) string {
	return strings.Join(fields, "\t")
}

func TestParseLineIncome(t *testing.T) {
	raw := statementLine(
		"Принято", "125", "05.03.2024", "5537,40", "ЛС 12",
		"ООО Ромашка", "Оплата по контракту 44-ФЗ", "225", "06.03.2024",
	)

	line, err := ParseLine(raw)
	require.NoError(t, err)

	assert.Equal(t, models.DirectionIncome, line.Payment.Direction)
	assert.Equal(t, "125", line.Payment.DocNumber)
	assert.Equal(t, "2024-03-05", line.Payment.Date)
	assert.True(t, decimal.RequireFromString("5537.40").Equal(line.Payment.Amount))
	assert.Equal(t, "Оплата по контракту 44-ФЗ", line.Payment.Description)
	assert.Equal(t, "ООО Ромашка", line.Payer)
	assert.Empty(t, line.Recipient)
}

func TestParseLineExpense(t *testing.T) {
	raw := statementLine(
		"Расход", "126", "06.03.2024", "100,00", "ЛС 12",
		"ИП Иванов", "Оплата услуг", "226", "07.03.2024",
	)

	line, err := ParseLine(raw)
	require.NoError(t, err)

	assert.Equal(t, models.DirectionExpense, line.Payment.Direction)
	assert.Equal(t, "ИП Иванов", line.Recipient)
	assert.Equal(t, "ИП Иванов", line.Payment.Recipient)
	assert.Empty(t, line.Payer)
}

func TestParseLineUnknownDirection(t *testing.T) {
	raw := statementLine(
		"Отклонен", "127", "06.03.2024", "10,00", "ЛС 12",
		"ООО Ромашка", "Возврат", "226", "07.03.2024",
	)

	line, err := ParseLine(raw)
	require.NoError(t, err)

	// Unrecognised status rows still parse, with neither role assigned.
	assert.Equal(t, models.DirectionUnknown, line.Payment.Direction)
	assert.Empty(t, line.Payer)
	assert.Empty(t, line.Recipient)
}

func TestParseLineShort(t *testing.T) {
	_, err := ParseLine(statementLine("Принято", "125", "05.03.2024"))
	assert.ErrorIs(t, err, ErrShortLine)
}

func TestParseLineTrimsQuotesAndSpaces(t *testing.T) {
	raw := statementLine(
		"\"Принято\"", " 125 ", "05.03.2024", "\"5537,40\"", "",
		"\" ООО Ромашка \"", "  описание  ", "", "",
	)

	line, err := ParseLine(raw)
	require.NoError(t, err)

	assert.Equal(t, "125", line.Payment.DocNumber)
	assert.Equal(t, "ООО Ромашка", line.Payer)
	assert.Equal(t, "описание", line.Payment.Description)
	assert.True(t, decimal.RequireFromString("5537.40").Equal(line.Payment.Amount))
}

func TestParseLineBadAmountYieldsZero(t *testing.T) {
	raw := statementLine(
		"Принято", "125", "05.03.2024", "n/a", "",
		"ООО Ромашка", "описание", "", "",
	)

	line, err := ParseLine(raw)
	require.NoError(t, err)
	assert.True(t, line.Payment.Amount.IsZero())
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.tsv")
	header := statementLine(
		"Состояние", "Номер", "Дата", "Сумма", "Л/с",
		"Наименование", "Назначение", "Тип", "Принято",
	)
	require.NoError(t, os.WriteFile(good, []byte(header+"\n"), 0o644))

	ok, err := ValidateFormat(good)
	assert.NoError(t, err)
	assert.True(t, ok)

	bad := filepath.Join(dir, "bad.tsv")
	require.NoError(t, os.WriteFile(bad, []byte("a;b;c\n"), 0o644))

	ok, err = ValidateFormat(bad)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = ValidateFormat(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)
}
