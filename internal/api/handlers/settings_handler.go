package handlers

import (
	"net/http"

	"nexus/internal/pkg/errors"
	"nexus/internal/pkg/validator"
	"nexus/internal/platform/models"
	"nexus/internal/platform/repositories"
)

type SettingsHandler struct {
	settings *repositories.SettingsRepository
}

func NewSettingsHandler(settings *repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	site, err := h.settings.Site(r.Context())
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (h *SettingsHandler) SaveGeneral(w http.ResponseWriter, r *http.Request) {
	var general models.GeneralSettings
	if !decodeJSON(w, r, &general) {
		return
	}
	if err := validator.Struct(&general); err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	if err := h.settings.SaveGeneral(r.Context(), &general); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	h.Get(w, r)
}

// ReplaceSocial takes the full ordered list; list position becomes the
// display order.
func (h *SettingsHandler) ReplaceSocial(w http.ResponseWriter, r *http.Request) {
	var links []models.SocialLink
	if !decodeJSON(w, r, &links) {
		return
	}

	seen := make(map[models.SocialPlatform]bool, len(links))
	for i := range links {
		if err := validator.Struct(&links[i]); err != nil {
			errors.WriteDomainError(w, err)
			return
		}
		if links[i].Platform < models.PlatformFacebook {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "platform is required", nil)
			return
		}
		if seen[links[i].Platform] {
			errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput,
				"duplicate platform "+links[i].Platform.String(), nil)
			return
		}
		seen[links[i].Platform] = true
	}

	if err := h.settings.ReplaceSocial(r.Context(), links); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	h.Get(w, r)
}
