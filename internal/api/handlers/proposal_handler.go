package handlers

import (
	stderrors "errors"
	"net/http"

	"nexus/internal/engine/documents"
	"nexus/internal/engine/proposals"
	"nexus/internal/engine/render"
	"nexus/internal/engine/share"
	"nexus/internal/pkg/errors"
)

type ProposalHandler struct {
	service   *proposals.Service
	assembler *documents.Assembler
	renderer  *render.Renderer
	issuer    *share.Issuer
}

func NewProposalHandler(service *proposals.Service, assembler *documents.Assembler, renderer *render.Renderer, issuer *share.Issuer) *ProposalHandler {
	return &ProposalHandler{
		service:   service,
		assembler: assembler,
		renderer:  renderer,
		issuer:    issuer,
	}
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req proposals.Proposal
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.CreateProposal(r.Context(), &req)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)

	list, err := h.service.ListProposals(r.Context(), limit, offset)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProposal(r.Context(), param(r, "id"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch proposals.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	p, err := h.service.UpdateProposal(r.Context(), param(r, "id"), &patch)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProposalHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status proposals.Status `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.ChangeStatus(r.Context(), param(r, "id"), req.Status)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProposal(r.Context(), param(r, "id")); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProposalHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assembler.AssembleProposal(r.Context(), param(r, "id"))
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

func (h *ProposalHandler) Share(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Share(r.Context(), param(r, "id"))
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Token: token, URL: h.issuer.URL(token)})
}

func (h *ProposalHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req proposals.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.service.GenerateProposal(r.Context(), req)
	if stderrors.Is(err, proposals.ErrGeneratorDisabled) {
		errors.WriteError(w, http.StatusServiceUnavailable, errors.ErrCodeUpstream, err.Error(), nil)
		return
	}
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
