package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
)

// PDFRenderer produces the printable quote and contract documents.
type PDFRenderer struct {
	company config.CompanyConfig
	now     func() time.Time
}

func NewPDFRenderer(company config.CompanyConfig) *PDFRenderer {
	return &PDFRenderer{company: company, now: time.Now}
}

// Filename returns the download name for a record.
func Filename(q models.Quote) string {
	kind := "quote"
	if q.IsContract() {
		kind = "contract"
	}
	return fmt.Sprintf("%s-%s.pdf", kind, ShortReference(q.ID))
}

// Render writes the document for q. Contracts carry the deposit line and
// the signature block.
func (r *PDFRenderer) Render(q models.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r.header(pdf, tr, q)
	r.clientBlock(pdf, tr, q)
	r.linesTable(pdf, tr, q)
	r.summary(pdf, tr, q)

	if q.Notes != "" {
		section(pdf, tr, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(q.Notes), "", "L", false)
		pdf.Ln(3)
	}

	if q.IsContract() {
		r.signatures(pdf, tr, q)
	} else {
		section(pdf, tr, "CONDICIONES DE PAGO")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, tr("• 50% del importe total al inicio de los trabajos"), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr("• 50% restante a la finalización de los trabajos"), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, tr func(string) string, q models.Quote) {
	c := r.company
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr(c.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, tr(c.Slogan), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 4, tr(c.Address+", "+c.Area), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(c.City+", "+c.Province+" "+c.PostalCode), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("Tel: "+c.Phone+" | Email: "+c.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr("Company S.L: "+c.SLNumber), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	title := "QUOTATION"
	if q.IsContract() {
		title = "CONTRACT"
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Reference #%s | Date %s | Generated on %s",
		ShortReference(q.ID), FormatDate(q.CreatedAt), r.now().UTC().Format("02/01/2006"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *PDFRenderer) clientBlock(pdf *gofpdf.Fpdf, tr func(string) string, q models.Quote) {
	section(pdf, tr, "Client Information")
	name := q.ClientInfo.Name
	if name == "" {
		name = "N/A"
	}
	field(pdf, tr, "Name:", name)
	if q.ClientInfo.Address != "" {
		field(pdf, tr, "Address:", q.ClientInfo.Address)
	}
	if q.ClientInfo.Phone != "" {
		field(pdf, tr, "Phone:", q.ClientInfo.Phone)
	}
	if q.ClientInfo.Email != "" {
		field(pdf, tr, "Email:", q.ClientInfo.Email)
	}
	if q.ClientInfo.DieNie != "" {
		field(pdf, tr, "DIE/NIE:", q.ClientInfo.DieNie)
	}
	field(pdf, tr, "Duration:", DaysLabel(q.Days))
	pdf.Ln(3)
}

func (r *PDFRenderer) linesTable(pdf *gofpdf.Fpdf, tr func(string) string, q models.Quote) {
	section(pdf, tr, "Products Selected")
	widths := []float64{80, 30, 35, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(218, 165, 32)
	for i, h := range []string{"Product", "Meters", "Rate", "Total"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range q.SelectedProducts {
		pdf.CellFormat(widths[0], 6, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, FormatNumber(p.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(Euro(p.Price)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(Euro(p.TotalPrice)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func (r *PDFRenderer) summary(pdf *gofpdf.Fpdf, tr func(string) string, q models.Quote) {
	section(pdf, tr, "Summary")
	field(pdf, tr, "Subtotal", Euro(q.Subtotal))
	field(pdf, tr, "VAT (7%)", Euro(q.VAT))
	field(pdf, tr, "Total", Euro(q.FinalTotal))
	if q.IsContract() {
		field(pdf, tr, "Required Deposit (50%)", Euro(pricing.RequiredDeposit(q.FinalTotal)))
	}
	pdf.Ln(3)
}

func (r *PDFRenderer) signatures(pdf *gofpdf.Fpdf, tr func(string) string, q models.Quote) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 5, "Cliente:", "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 5, "Todopro:", "", 1, "L", false, 0, "")
	pdf.Ln(15)
	pdf.CellFormat(90, 5, tr(q.ClientInfo.Name), "T", 0, "L", false, 0, "")
	pdf.CellFormat(90, 5, tr(r.company.Signatory), "T", 1, "L", false, 0, "")
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func field(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 5, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
}
