package handlers

import (
	stderrors "errors"
	"net/http"

	"nexus/internal/engine/reorder"
	"nexus/internal/engine/showcase"
	"nexus/internal/pkg/errors"
)

type CollectionHandler struct {
	service *showcase.Service
}

func NewCollectionHandler(service *showcase.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := collection(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), c)
	if err != nil {
		writeReorderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := collection(w, r)
	if !ok {
		return
	}

	var (
		created interface{}
		err     error
	)
	switch c {
	case reorder.Portfolio:
		var item showcase.PortfolioItem
		if !decodeJSON(w, r, &item) {
			return
		}
		created, err = h.service.AddPortfolioItem(r.Context(), &item)
	case reorder.Testimonials:
		var t showcase.Testimonial
		if !decodeJSON(w, r, &t) {
			return
		}
		created, err = h.service.AddTestimonial(r.Context(), &t)
	case reorder.ClientLogos:
		var l showcase.ClientLogo
		if !decodeJSON(w, r, &l) {
			return
		}
		created, err = h.service.AddClientLogo(r.Context(), &l)
	}
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := collection(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), c, param(r, "id")); err != nil {
		writeReorderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder moves the entry at index from to index to and returns the
// collection in its new order.
func (h *CollectionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	c, ok := collection(w, r)
	if !ok {
		return
	}

	var req struct {
		From *int `json:"from"`
		To   *int `json:"to"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "from and to are required", nil)
		return
	}

	items, err := h.service.Reorder(r.Context(), c, *req.From, *req.To)
	if err != nil {
		writeReorderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Normalize rewrites the collection's orders as 0..N-1, repairing gaps
// left by imports or manual edits.
func (h *CollectionHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	c, ok := collection(w, r)
	if !ok {
		return
	}

	items, err := h.service.Normalize(r.Context(), c)
	if err != nil {
		writeReorderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func collection(w http.ResponseWriter, r *http.Request) (reorder.Collection, bool) {
	c, err := reorder.ParseCollection(param(r, "collection"))
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, err.Error(), nil)
		return "", false
	}
	return c, true
}

func writeReorderError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, reorder.ErrIndexOutOfRange):
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
	case stderrors.Is(err, reorder.ErrStaleSequence):
		errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, err.Error(), nil)
	case stderrors.Is(err, reorder.ErrUnknownCollection):
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, err.Error(), nil)
	default:
		errors.WriteDomainError(w, err)
	}
}
