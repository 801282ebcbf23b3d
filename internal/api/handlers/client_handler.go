package handlers

import (
	"net/http"

	"nexus/internal/pkg/errors"
	"nexus/internal/pkg/validator"
	"nexus/internal/platform/models"
	"nexus/internal/platform/repositories"
)

type ClientHandler struct {
	clients  *repositories.ClientRepository
	projects *repositories.ProjectRepository
}

func NewClientHandler(clients *repositories.ClientRepository, projects *repositories.ProjectRepository) *ClientHandler {
	return &ClientHandler{clients: clients, projects: projects}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !decodeJSON(w, r, &client) {
		return
	}
	if client.Status == "" {
		client.Status = models.ClientStatusLead
	}
	if err := validator.Struct(&client); err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	if err := h.clients.Create(r.Context(), &client); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)

	list, err := h.clients.List(r.Context(), limit, offset)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	client, err := h.clients.GetByID(r.Context(), id)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	if client == nil {
		errors.WriteDomainError(w, errors.NewNotFound("client", id))
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPending
	}
	if err := validator.Struct(&project); err != nil {
		errors.WriteDomainError(w, err)
		return
	}

	client, err := h.clients.GetByID(r.Context(), project.ClientID)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	if client == nil {
		errors.WriteDomainError(w, errors.NewNotFound("client", project.ClientID))
		return
	}

	if err := h.projects.Create(r.Context(), &project); err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// ListProjects requires ?client_id=.
func (h *ClientHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "client_id is required", nil)
		return
	}

	list, err := h.projects.ListByClient(r.Context(), clientID)
	if err != nil {
		errors.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
