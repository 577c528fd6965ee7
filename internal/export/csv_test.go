package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avkuzmin/finaudit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []models.ContractExportRow {
	return []models.ContractExportRow{
		{
			Number:              "12/44",
			Date:                "2024-03-05",
			CounterpartyName:    "ООО Ромашка",
			KosguCodes:          "225,310",
			IsForSpecialControl: true,
			Note:                "примечание",
			ProcurementCode:     "221234567890",
		},
		{
			Number:           "13/44",
			Date:             "2024-03-06",
			CounterpartyName: "ИП Иванов",
		},
	}
}

func TestContractsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.csv")

	count, err := ContractsToCSV(sampleRows(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Excel needs the BOM to pick UTF-8.
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"))

	lines := strings.Split(strings.TrimRight(content[3:], "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		`"N п/п","Номер договора","Дата договора","Наименование контрагента","Коды КОСГУ","Признак усиленного контроля","Примечание","ИКЗ"`,
		lines[0])

	// Number-like fields carry a zero-width space so spreadsheets keep
	// them as text; dates are shown in DD.MM.YYYY.
	assert.Equal(t,
		"\"1\",\"\u200B12/44\",\"05.03.2024\",\"ООО Ромашка\",\"225,310\",\"Да\",\"примечание\",\"\u200B221234567890\"",
		lines[1])
	assert.Equal(t,
		"\"2\",\"\u200B13/44\",\"06.03.2024\",\"ИП Иванов\",\"\",\"Нет\",\"\",\"\u200B\"",
		lines[2])
}

func TestWriteGridEscapesQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.csv")

	err := GridToCSV([]string{"col"}, [][]string{{`значение "в кавычках"`}}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"значение ""в кавычках"""`)
}

func TestGridToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := GridToCSV([]string{"a", "b"}, nil, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF\"a\",\"b\"\n", string(data))
}

func TestContractsToPDF(t *testing.T) {
	fontPath, err := FindFont()
	if err != nil {
		t.Skip("no Unicode TTF font available")
	}

	path := filepath.Join(t.TempDir(), "contracts.pdf")
	count, err := ContractsToPDF(sampleRows(), path, fontPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestContractsToPDFMissingFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.pdf")
	_, err := ContractsToPDF(sampleRows(), path, filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}
