package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/measuretrack/measuretrack/internal/columns"
)

// PDF layout, in millimetres and points.
const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 8
	pdfHeaderSize = 9
	pdfTitleSize  = 14
	pdfLineHeight = 4.0
	pdfPadding    = 1.0
	pdfMargin     = 10.0
	pdfFooterGap  = 12.0
)

// PDFRenderer writes a landscape A4 document with one table per sheet.
// Header rows repeat on each page and every page carries a page number.
type PDFRenderer struct{}

func (r *PDFRenderer) Format() string    { return "pdf" }
func (r *PDFRenderer) Extension() string { return ".pdf" }

func (r *PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")
	pdf.SetTitle(doc.Title, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfFooterGap)
		pdf.SetFont(pdfFont, "", pdfBodySize)
		pdf.SetTextColor(96, 96, 96)
		pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Filtered {
		pdf.SetFont(pdfFont, "I", pdfBodySize)
		pdf.CellFormat(0, pdfLineHeight+1, tr("Filtered: "+doc.Filters), "", 1, "L", false, 0, "")
	}

	if len(doc.Tables) == 0 {
		pdf.SetFont(pdfFont, "", pdfHeaderSize)
		pdf.Ln(4)
		pdf.CellFormat(0, pdfLineHeight, "No records", "", 1, "L", false, 0, "")
	}

	for i, t := range doc.Tables {
		if i > 0 {
			pdf.AddPage()
		}
		writePDFTable(pdf, tr, t)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

type pdfTable struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	t      Table
	widths []float64
	bottom float64
}

func writePDFTable(pdf *fpdf.Fpdf, tr func(string) string, t Table) {
	pageW, pageH := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	pt := &pdfTable{
		pdf:    pdf,
		tr:     tr,
		t:      t,
		widths: columnWidths(t.Columns, pageW-left-right),
		bottom: pageH - pdfFooterGap - pdfLineHeight,
	}

	pdf.Ln(3)
	pdf.SetFont(pdfFont, "B", pdfTitleSize-2)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, tr(t.Sheet), "", 1, "L", false, 0, "")
	pt.header()

	for _, row := range t.Rows {
		pt.row(row)
	}
}

func (pt *pdfTable) header() {
	pt.pdf.SetFont(pdfFont, "B", pdfHeaderSize)
	pt.pdf.SetFillColor(230, 230, 230)
	pt.pdf.SetTextColor(0, 0, 0)
	pt.draw(pt.split(pt.t.Header), true)
	pt.pdf.SetFont(pdfFont, "", pdfBodySize)
}

func (pt *pdfTable) newPage() {
	pt.pdf.AddPage()
	pt.header()
}

// row draws one record. A row that fits on a fresh page is moved there
// whole; a taller one is split line by line across as many pages as it
// needs, with the header repeated on each.
func (pt *pdfTable) row(cells []string) {
	lines := pt.split(cells)
	n := lineCount(lines)

	if pt.room() < n && pt.pageRoom() >= n {
		pt.newPage()
	}
	for start := 0; start < n; {
		room := pt.room()
		if room < 1 {
			if pt.pageRoom() < 1 {
				room = 1
			} else {
				pt.newPage()
				continue
			}
		}
		end := min(start+room, n)
		chunk := make([][]string, len(lines))
		for i, l := range lines {
			chunk[i] = l[min(start, len(l)):min(end, len(l))]
		}
		pt.draw(chunk, false)
		start = end
		if start < n {
			pt.newPage()
		}
	}
}

// room is the number of body lines that still fit on the current page.
func (pt *pdfTable) room() int {
	return int((pt.bottom - pt.pdf.GetY() - 2*pdfPadding) / pdfLineHeight)
}

// pageRoom is the number of body lines that fit below the header on an
// empty page.
func (pt *pdfTable) pageRoom() int {
	_, top, _, _ := pt.pdf.GetMargins()
	pt.pdf.SetFont(pdfFont, "B", pdfHeaderSize)
	header := rowHeight(lineCount(pt.split(pt.t.Header)))
	pt.pdf.SetFont(pdfFont, "", pdfBodySize)
	return int((pt.bottom - top - header - 2*pdfPadding) / pdfLineHeight)
}

// split wraps every cell to its column width in the current font.
func (pt *pdfTable) split(cells []string) [][]string {
	out := make([][]string, len(cells))
	for i, text := range cells {
		out[i] = pt.lines(text, pt.widths[i])
	}
	return out
}

func (pt *pdfTable) lines(text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}
		out = append(out, pt.pdf.SplitText(pt.tr(para), width-2*pdfPadding)...)
	}
	return out
}

func lineCount(cells [][]string) int {
	n := 1
	for _, l := range cells {
		n = max(n, len(l))
	}
	return n
}

func rowHeight(lines int) float64 {
	return float64(lines)*pdfLineHeight + 2*pdfPadding
}

// draw writes one band of pre-wrapped cells at the current position.
func (pt *pdfTable) draw(cells [][]string, fill bool) {
	pdf := pt.pdf
	h := rowHeight(lineCount(cells))
	x, y := pdf.GetXY()

	style := "D"
	if fill {
		style = "FD"
	}
	for i, lines := range cells {
		w := pt.widths[i]
		pdf.Rect(x, y, w, h, style)
		for j, line := range lines {
			pdf.SetXY(x+pdfPadding, y+pdfPadding+float64(j)*pdfLineHeight)
			pdf.CellFormat(w-2*pdfPadding, pdfLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += w
	}

	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+h)
}

// columnWidths shares the available width in proportion to each column's
// width hint.
func columnWidths(cols []columns.Column, available float64) []float64 {
	total := 0
	for _, c := range cols {
		total += max(c.Width, 1)
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = available * float64(max(c.Width, 1)) / float64(total)
	}
	return widths
}
