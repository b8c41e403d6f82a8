package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFName is the file name the web form used for its download.
const PDFName = "Financial_Advice_Report.pdf"

type lineKind int

const (
	lineText lineKind = iota
	lineHeading
	lineBullet
	lineRule
	lineBlank
)

type pdfLine struct {
	kind lineKind
	text string
}

// pdfLines classifies advice lines for layout. Inline bold markers are
// dropped since the core fonts cannot switch weight mid-line in MultiCell.
func pdfLines(advice string) []pdfLine {
	var out []pdfLine
	for _, raw := range strings.Split(strings.TrimSpace(advice), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			out = append(out, pdfLine{kind: lineBlank})
		case strings.Trim(line, "-*_") == "" && len(line) >= 3:
			out = append(out, pdfLine{kind: lineRule})
		case strings.HasPrefix(line, "#"):
			out = append(out, pdfLine{kind: lineHeading, text: plain(strings.TrimLeft(line, "# "))})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			out = append(out, pdfLine{kind: lineBullet, text: plain(line[2:])})
		default:
			out = append(out, pdfLine{kind: lineText, text: plain(line)})
		}
	}
	return out
}

// plain strips emphasis markers and replaces the rupee sign, which the
// cp1252 core fonts lack.
func plain(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "", "₹", "Rs. ").Replace(s)
}

// WritePDF renders advice as an A4 PDF document to w.
func WritePDF(w io.Writer, advice string, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreationDate(generated)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(110, 110, 105)
	pdf.CellFormat(0, 6, tr(Subtitle), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Generated "+generated.Format("2 Jan 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetTextColor(16, 15, 15)

	for _, l := range pdfLines(advice) {
		switch l.kind {
		case lineBlank:
			pdf.Ln(3)
		case lineRule:
			y := pdf.GetY() + 2
			pdf.Line(18, y, 192, y)
			pdf.Ln(5)
		case lineHeading:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(l.text), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		case lineBullet:
			pdf.SetX(22)
			pdf.MultiCell(0, 6, tr("• "+l.text), "", "L", false)
		default:
			pdf.MultiCell(0, 6, tr(l.text), "", "L", false)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(208, 162, 21)
	pdf.MultiCell(0, 6, tr("Note: "+Note), "", "C", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
