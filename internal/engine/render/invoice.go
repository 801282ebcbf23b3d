package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"nexus/internal/engine/documents"
	"nexus/internal/engine/invoices"
	"nexus/internal/engine/share"
)

const (
	descWidth   = 135.0
	amountWidth = 45.0
	qrImageName = "share-qr"
)

// invoicePDF carries the drawing state of one invoice render.
type invoicePDF struct {
	*canvas
	doc *documents.InvoiceDocument
	r   *Renderer
}

// RenderInvoice draws doc onto A4 pages. Output depends only on doc, so the
// same invoice renders to the same bytes on every call.
func (r *Renderer) RenderInvoice(doc *documents.InvoiceDocument) (*Output, error) {
	inv := doc.Invoice
	company := r.companyName(doc.Settings.General.CompanyName)
	p := &invoicePDF{
		canvas: newCanvas(fmt.Sprintf("Invoice %s", inv.Number()), company, invoiceDate(inv)),
		doc:    doc,
		r:      r,
	}

	p.pdf.SetHeaderFunc(p.watermark)
	p.pdf.AddPage()

	p.header()
	p.parties()
	p.lineItems()
	p.totals()
	p.notes()
	if err := p.shareCode(); err != nil {
		return nil, err
	}

	data, err := p.output()
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.ID, err)
	}

	r.metrics.DocumentRendered("invoice")
	return &Output{
		Filename:    invoiceFilename(inv.ID),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

func invoiceDate(inv *invoices.Invoice) time.Time {
	if t, err := time.Parse(invoices.DateLayout, inv.IssuedDate); err == nil {
		return t
	}
	return time.Unix(inv.CreatedAt, 0).UTC()
}

// watermark runs as the page header so later content draws over it.
func (p *invoicePDF) watermark() {
	if p.doc.Invoice.Status != invoices.StatusPaid {
		return
	}
	pdf := p.pdf
	cx, cy := p.width/2, p.height/2

	pdf.SetFont("Helvetica", "B", 120)
	p.color(colorPaid)
	pdf.SetAlpha(0.12, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, cy)
	w := pdf.GetStringWidth("PAID")
	pdf.SetXY(cx-w/2, cy-20)
	pdf.CellFormat(w, 40, "PAID", "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")

	pdf.SetXY(pageMargin, pageMargin)
}

func (p *invoicePDF) header() {
	pdf := p.pdf
	inv := p.doc.Invoice
	general := p.doc.Settings.General

	p.fill(colorBand)
	pdf.Rect(0, 0, p.width, 42, "F")

	p.color(colorWhite)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(pageMargin, 12)
	pdf.CellFormat(110, 10, p.tr(p.company), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(p.width-pageMargin-70, 12)
	pdf.CellFormat(70, 10, "INVOICE", "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if general.Tagline != "" {
		pdf.SetXY(pageMargin, 23)
		pdf.CellFormat(110, 6, p.tr(general.Tagline), "", 0, "L", false, 0, "")
	}
	pdf.SetXY(p.width-pageMargin-70, 23)
	pdf.CellFormat(70, 6, "# "+inv.Number(), "", 0, "R", false, 0, "")

	contact := joinNonEmpty(" | ", general.Email, general.Phone, general.Website)
	if contact != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(pageMargin, 30)
		pdf.CellFormat(p.width-2*pageMargin, 5, p.tr(contact), "", 0, "L", false, 0, "")
	}

	pdf.SetXY(pageMargin, 52)
}

func (p *invoicePDF) parties() {
	pdf := p.pdf
	inv := p.doc.Invoice
	client := p.doc.Client
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 9)
	p.color(colorMuted)
	pdf.CellFormat(95, 5, "BILL TO", "", 1, "L", false, 0, "")

	p.color(colorInk)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, p.tr(client.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{client.Company, client.Email, client.Phone, client.Address} {
		if line == "" {
			continue
		}
		for _, wrapped := range p.wrap(line, 95) {
			pdf.CellFormat(95, 5, wrapped, "", 1, "L", false, 0, "")
		}
	}
	billBottom := pdf.GetY()

	meta := [][2]string{{"Issued", displayDate(inv.IssuedDate)}}
	if inv.DueDate != nil {
		meta = append(meta, [2]string{"Due", displayDate(*inv.DueDate)})
	}
	if inv.PaidDate != nil {
		meta = append(meta, [2]string{"Paid", displayDate(*inv.PaidDate)})
	}
	meta = append(meta, [2]string{"Status", strings.ToUpper(string(inv.Status))})
	if project := p.doc.Project; project != nil {
		meta = append(meta, [2]string{"Project", project.Title})
	}

	x := p.width - pageMargin - 80
	pdf.SetXY(x, top)
	for _, row := range meta {
		pdf.SetX(x)
		pdf.SetFont("Helvetica", "B", 9)
		p.color(colorMuted)
		pdf.CellFormat(25, 6, strings.ToUpper(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		p.color(colorInk)
		if row[0] == "Status" && inv.Status == invoices.StatusPaid {
			p.color(colorPaid)
		}
		pdf.CellFormat(55, 6, p.tr(row[1]), "", 1, "R", false, 0, "")
	}

	y := pdf.GetY()
	if billBottom > y {
		y = billBottom
	}
	pdf.SetXY(pageMargin, y+10)
}

func (p *invoicePDF) lineItems() {
	pdf := p.pdf
	inv := p.doc.Invoice

	p.fill(colorTableBg)
	p.color(colorInk)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(descWidth, 8, "Description", "", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, 8, "Amount", "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	lines := p.wrap(p.description(), descWidth)
	rowHeight := float64(len(lines))*lineHeight + 4
	p.ensureSpace(rowHeight)

	y := pdf.GetY() + 2
	for i, line := range lines {
		pdf.SetXY(pageMargin, y+float64(i)*lineHeight)
		pdf.CellFormat(descWidth, lineHeight, line, "", 0, "L", false, 0, "")
	}
	pdf.SetXY(pageMargin+descWidth, y)
	pdf.CellFormat(amountWidth, lineHeight, p.r.money.FormatMoney(inv.Amount), "", 0, "R", false, 0, "")

	bottom := y + float64(len(lines))*lineHeight + 2
	p.rule(bottom)
	pdf.SetXY(pageMargin, bottom+4)
}

func (p *invoicePDF) description() string {
	if project := p.doc.Project; project != nil {
		if project.Description != "" {
			return project.Title + "\n" + project.Description
		}
		return project.Title
	}
	return "Professional services"
}

func (p *invoicePDF) totals() {
	pdf := p.pdf
	inv := p.doc.Invoice
	t := p.doc.Totals
	money := p.r.money

	rows := [][2]string{{"Subtotal", money.FormatMoney(t.Subtotal)}}
	if t.HasAdvance() {
		rows = append(rows, [2]string{"Advance payment", "-" + money.FormatMoney(t.AdvanceDeducted)})
	}
	if t.HasTax() {
		name := inv.CustomTaxName
		if name == "" {
			name = "Tax"
		}
		rows = append(rows, [2]string{
			fmt.Sprintf("%s (%s)", name, money.FormatPercent(inv.TaxPercentage)),
			money.FormatMoney(t.TaxAmount),
		})
	}

	p.ensureSpace(float64(len(rows)+1)*7 + 4)
	labelX := pageMargin + descWidth + amountWidth - 90

	pdf.SetFont("Helvetica", "", 10)
	p.color(colorInk)
	for _, row := range rows {
		pdf.SetX(labelX)
		pdf.CellFormat(45, 7, p.tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, row[1], "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetX(labelX)
	p.fill(colorAccent)
	p.color(colorWhite)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 9, "Total due", "", 0, "L", true, 0, "")
	pdf.CellFormat(45, 9, money.FormatMoney(t.Total), "", 1, "R", true, 0, "")
	p.color(colorInk)
	pdf.Ln(8)
}

func (p *invoicePDF) notes() {
	notes := strings.TrimSpace(p.doc.Invoice.Notes)
	if notes == "" {
		return
	}
	pdf := p.pdf
	width := p.width - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 10)
	p.ensureSpace(lineHeight * 3)
	pdf.CellFormat(width, lineHeight, "Notes", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	p.color(colorMuted)
	for _, line := range p.wrap(notes, width) {
		p.ensureSpace(5)
		pdf.CellFormat(width, 5, line, "", 1, "L", false, 0, "")
	}
	p.color(colorInk)
	pdf.Ln(4)
}

// shareCode draws a QR code of the public link for invoices that have one.
func (p *invoicePDF) shareCode() error {
	inv := p.doc.Invoice
	if inv.ShareToken == nil || p.r.invoices == nil {
		return nil
	}
	url := p.r.invoices.URL(*inv.ShareToken)

	png, err := share.QRCode(url, 256)
	if err != nil {
		return err
	}

	pdf := p.pdf
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))

	const size = 28.0
	p.ensureSpace(size + 6)
	y := pdf.GetY()
	pdf.ImageOptions(qrImageName, pageMargin, y, size, size, false, opts, 0, url)

	pdf.SetXY(pageMargin+size+4, y+size/2-3)
	pdf.SetFont("Helvetica", "", 9)
	p.color(colorMuted)
	pdf.CellFormat(100, 6, "Scan to view this invoice online", "", 1, "L", false, 0, url)
	p.color(colorInk)
	return pdf.Error()
}
