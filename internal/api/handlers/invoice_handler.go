package handlers

import (
	"net/http"
	"strconv"

	"nexus/internal/engine/documents"
	"nexus/internal/engine/finance"
	"nexus/internal/engine/invoices"
	"nexus/internal/engine/render"
	"nexus/internal/engine/share"
	"nexus/internal/pkg/errors"
)

const (
	qrSize    = 256
	qrMaxSize = 1024
)

type InvoiceHandler struct {
	service   *invoices.Service
	assembler *documents.Assembler
	renderer  *render.Renderer
	issuer    *share.Issuer
	money     *finance.Formatter
}

func NewInvoiceHandler(service *invoices.Service, assembler *documents.Assembler, renderer *render.Renderer, issuer *share.Issuer, money *finance.Formatter) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		assembler: assembler,
		renderer:  renderer,
		issuer:    issuer,
		money:     money,
	}
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoices.Invoice
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.service.CreateInvoice(r.Context(), &req)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newInvoiceView(inv, h.money))
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	q := r.URL.Query()

	list, err := h.service.ListInvoices(r.Context(), invoices.Filter{
		Status:   invoices.Status(q.Get("status")),
		ClientID: q.Get("client_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceViews(list, h.money))
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInvoice(r.Context(), param(r, "id"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceView(inv, h.money))
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch invoices.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	inv, err := h.service.UpdateInvoice(r.Context(), param(r, "id"), &patch)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceView(inv, h.money))
}

func (h *InvoiceHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status invoices.Status `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := h.service.ChangeStatus(r.Context(), param(r, "id"), req.Status)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceView(inv, h.money))
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteInvoice(r.Context(), param(r, "id")); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleInvoice(r.Context(), param(r, "id"))
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

func (h *InvoiceHandler) Share(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Share(r.Context(), param(r, "id"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Token: token, URL: h.issuer.URL(token)})
}

// ShareQR returns a PNG QR code of the public link, sharing the invoice
// first if it has no token yet.
func (h *InvoiceHandler) ShareQR(w http.ResponseWriter, r *http.Request) {
	size := qrSize
	if v := r.URL.Query().Get("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s < share.MinQRSize || s > qrMaxSize {
			errors.WriteDomainError(w, &errors.ValidationError{Fields: map[string]string{"size": "must be between 128 and 1024"}})
			return
		}
		size = s
	}

	token, err := h.issuer.Share(r.Context(), param(r, "id"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	png, err := share.QRCode(h.issuer.URL(token), size)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type shareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}
