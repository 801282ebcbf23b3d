package handlers

import (
	"net/http"

	"nexus/internal/engine/documents"
	"nexus/internal/engine/finance"
	"nexus/internal/engine/render"
	"nexus/internal/pkg/errors"
)

// SharedHandler serves documents to anyone holding a share token. Unknown
// and malformed tokens both answer 404.
type SharedHandler struct {
	assembler *documents.Assembler
	renderer  *render.Renderer
	money     *finance.Formatter
}

func NewSharedHandler(assembler *documents.Assembler, renderer *render.Renderer, money *finance.Formatter) *SharedHandler {
	return &SharedHandler{assembler: assembler, renderer: renderer, money: money}
}

func (h *SharedHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleInvoiceByToken(r.Context(), param(r, "token"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceDocumentView(doc, h.money))
}

func (h *SharedHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleInvoiceByToken(r.Context(), param(r, "token"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	out, err := h.renderer.RenderInvoice(doc)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writePDF(w, out.Filename, out.ContentType, out.Data)
}

func (h *SharedHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleProposalByToken(r.Context(), param(r, "token"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *SharedHandler) ProposalPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleProposalByToken(r.Context(), param(r, "token"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	out, err := h.renderer.RenderProposal(doc)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writePDF(w, out.Filename, out.ContentType, out.Data)
}
