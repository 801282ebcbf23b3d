package handlers

import (
	"nexus/internal/engine/documents"
	"nexus/internal/engine/finance"
	"nexus/internal/engine/invoices"
	"nexus/internal/platform/models"
)

type formattedTotals struct {
	Subtotal        string `json:"subtotal"`
	AdvanceDeducted string `json:"advance_deducted"`
	TaxRate         string `json:"tax_rate"`
	TaxAmount       string `json:"tax_amount"`
	Total           string `json:"total"`
}

// invoiceView is an invoice with its derived totals, raw and display-ready.
type invoiceView struct {
	*invoices.Invoice
	Totals    finance.Totals  `json:"totals"`
	Formatted formattedTotals `json:"formatted"`
}

func newInvoiceView(inv *invoices.Invoice, money *finance.Formatter) invoiceView {
	totals := finance.ComputeTotals(inv.Amount, inv.AdvancePayment, inv.TaxPercentage)
	return invoiceView{
		Invoice: inv,
		Totals:  totals,
		Formatted: formattedTotals{
			Subtotal:        money.FormatMoney(totals.Subtotal),
			AdvanceDeducted: money.FormatMoney(totals.AdvanceDeducted),
			TaxRate:         money.FormatPercent(inv.TaxPercentage),
			TaxAmount:       money.FormatMoney(totals.TaxAmount),
			Total:           money.FormatMoney(totals.Total),
		},
	}
}

func newInvoiceViews(list []*invoices.Invoice, money *finance.Formatter) []invoiceView {
	views := make([]invoiceView, 0, len(list))
	for _, inv := range list {
		views = append(views, newInvoiceView(inv, money))
	}
	return views
}

type invoiceDocumentView struct {
	Invoice  invoiceView          `json:"invoice"`
	Client   *models.Client       `json:"client"`
	Project  *models.Project      `json:"project,omitempty"`
	Settings *models.SiteSettings `json:"settings"`
}

func newInvoiceDocumentView(doc *documents.InvoiceDocument, money *finance.Formatter) invoiceDocumentView {
	return invoiceDocumentView{
		Invoice:  newInvoiceView(doc.Invoice, money),
		Client:   doc.Client,
		Project:  doc.Project,
		Settings: doc.Settings,
	}
}
