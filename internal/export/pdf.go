package export

import (
	"fmt"
	"os"

	"avkuzmin/finaudit/internal/dateutils"
	"avkuzmin/finaudit/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// defaultFontPaths are probed when no font is configured. The report is
// in Russian, so a Unicode TTF is required; the built-in core fonts only
// cover Latin-1.
var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// FindFont returns the first readable font from the default locations.
func FindFont() (string, error) {
	for _, p := range defaultFontPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no Unicode TTF font found; pass one explicitly")
}

// pdfColumnWidths sum to the printable width of a landscape A4 page.
var pdfColumnWidths = []float64{12, 40, 22, 70, 30, 25, 52, 26}

// ContractsToPDF renders the contracts-for-checking report as a landscape
// A4 table and returns the number of exported rows.
func ContractsToPDF(rows []models.ContractExportRow, path, fontPath string) (int, error) {
	if fontPath == "" {
		var err error
		fontPath, err = FindFont()
		if err != nil {
			return 0, err
		}
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddUTF8Font("report", "", fontPath)
	pdf.SetFont("report", "", 9)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("report", "", 12)
	pdf.CellFormat(0, 8, "Договоры на проверку", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("report", "", 9)
	writePDFHeader(pdf)
	for i, r := range rows {
		specialControl := "Нет"
		if r.IsForSpecialControl {
			specialControl = "Да"
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			r.Number,
			dateutils.FromISO(r.Date),
			r.CounterpartyName,
			r.KosguCodes,
			specialControl,
			r.Note,
			r.ProcurementCode,
		}
		writePDFRow(pdf, cells)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("write PDF report: %w", err)
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).
		Info("Contracts exported to PDF")
	return len(rows), nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(230, 230, 230)
	for i, title := range contractsHeader {
		pdf.CellFormat(pdfColumnWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writePDFRow(pdf *fpdf.Fpdf, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(pdfColumnWidths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
