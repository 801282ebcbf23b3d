package render

import (
	"fmt"
	"strings"
	"time"

	"nexus/internal/engine/documents"
)

const bulletIndent = 6.0

type proposalPDF struct {
	*canvas
	doc     *documents.ProposalDocument
	created time.Time
}

// RenderProposal lays the proposal out as flowing text. The document date is
// the proposal's creation time, so repeat renders are byte-identical.
func (r *Renderer) RenderProposal(doc *documents.ProposalDocument) (*Output, error) {
	prop := doc.Proposal
	created := time.Unix(prop.CreatedAt, 0).UTC()
	company := r.companyName(doc.Settings.General.CompanyName)

	p := &proposalPDF{
		canvas:  newCanvas(prop.Title, company, created),
		doc:     doc,
		created: created,
	}
	p.pdf.AddPage()

	p.header()
	p.meta()
	p.body()
	p.closing()

	data, err := p.output()
	if err != nil {
		return nil, fmt.Errorf("render proposal %s: %w", prop.ID, err)
	}

	r.metrics.DocumentRendered("proposal")
	return &Output{
		Filename:    proposalFilename(prop.Title, prop.ID),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

func (p *proposalPDF) header() {
	pdf := p.pdf
	general := p.doc.Settings.General
	inner := p.width - 2*pageMargin

	p.fill(colorBand)
	pdf.Rect(0, 0, p.width, 32, "F")

	p.color(colorWhite)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pageMargin, 10)
	pdf.CellFormat(120, 8, p.tr(p.company), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(p.width-pageMargin-60, 10)
	pdf.CellFormat(60, 8, "PROPOSAL", "", 0, "R", false, 0, "")

	if general.Tagline != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(pageMargin, 19)
		pdf.CellFormat(120, 5, p.tr(general.Tagline), "", 0, "L", false, 0, "")
	}

	pdf.SetXY(pageMargin, 42)
	p.color(colorInk)
	pdf.SetFont("Helvetica", "B", 18)
	for _, line := range p.wrap(p.doc.Proposal.Title, inner) {
		pdf.CellFormat(inner, 9, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func (p *proposalPDF) meta() {
	pdf := p.pdf
	inner := p.width - 2*pageMargin
	client := p.doc.Client

	prepared := "Prepared for: General audience"
	if client != nil {
		prepared = "Prepared for: " + client.Name
		if client.Company != "" {
			prepared += ", " + client.Company
		}
	}

	pdf.SetFont("Helvetica", "", 10)
	p.color(colorInk)
	pdf.CellFormat(inner-50, lineHeight, p.tr(prepared), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, lineHeight, p.created.Format("January 2, 2006"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	p.color(colorMuted)
	if client != nil && client.Email != "" {
		pdf.CellFormat(inner, 5, p.tr(client.Email), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(inner, 5, "Status: "+strings.ToUpper(string(p.doc.Proposal.Status)), "", 1, "L", false, 0, "")

	pdf.Ln(3)
	p.rule(pdf.GetY())
	pdf.Ln(4)
}

func (p *proposalPDF) body() {
	pdf := p.pdf
	inner := p.width - 2*pageMargin
	p.color(colorInk)

	for _, b := range parseMarkup(p.doc.Proposal.Content) {
		switch b.kind {
		case blockHeading:
			pdf.SetFont("Helvetica", "B", 14)
			p.lines(b.text, pageMargin, inner, 7, 5)
		case blockSubheading:
			pdf.SetFont("Helvetica", "B", 12)
			p.lines(b.text, pageMargin, inner, 6, 4)
		case blockBullet:
			pdf.SetFont("Helvetica", "", 10)
			p.ensureSpace(12)
			pdf.Ln(1)
			pdf.SetX(pageMargin)
			pdf.CellFormat(bulletIndent, 5, "-", "", 0, "C", false, 0, "")
			p.lines(b.text, pageMargin+bulletIndent, inner-bulletIndent, 5, 0)
		default:
			pdf.SetFont("Helvetica", "", 10)
			p.lines(b.text, pageMargin, inner, 5, 3)
		}
	}
}

// lines writes text wrapped to width at x, top millimetres below the
// current line. A block never leaves its first line orphaned at a page end.
func (p *proposalPDF) lines(text string, x, width, height, top float64) {
	pdf := p.pdf
	wrapped := p.wrap(text, width)

	p.ensureSpace(top + height*float64(min(len(wrapped), 2)))
	if top > 0 {
		pdf.Ln(top)
	}
	for _, line := range wrapped {
		p.ensureSpace(height)
		pdf.SetX(x)
		pdf.CellFormat(width, height, line, "", 1, "L", false, 0, "")
	}
}

func (p *proposalPDF) closing() {
	pdf := p.pdf
	general := p.doc.Settings.General
	inner := p.width - 2*pageMargin
	contact := joinNonEmpty(" | ", general.Email, general.Phone, general.Website)

	p.ensureSpace(24)
	pdf.Ln(6)
	p.rule(pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	p.color(colorInk)
	pdf.CellFormat(inner, 5, p.tr(p.company), "", 1, "L", false, 0, "")
	if contact != "" {
		pdf.SetFont("Helvetica", "", 8)
		p.color(colorMuted)
		pdf.CellFormat(inner, 5, p.tr(contact), "", 1, "L", false, 0, "")
	}
}
