package httpx

import (
	"errors"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// ProjectHandlers provides HTTP handlers for project portfolio operations.
type ProjectHandlers struct {
	Svc *service.ProjectService
}

// Create handles HTTP requests to create a new project.
func (h *ProjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	project, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, project)
}

// List handles HTTP requests to list projects.
func (h *ProjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	page, err := h.Svc.List(r.Context(), model.ProjectsListOptions{
		Limit:  params.Limit,
		Offset: params.Offset(),
		Q:      params.Q,
		Sort:   params.Sort,
		Dir:    params.Dir,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteListPage(w, params, page.Items, page.Total)
}

// GetByID handles HTTP requests to get a project by ID.
func (h *ProjectHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("project id is required"),
		})
		return
	}

	project, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

// Update handles HTTP requests to update a project.
func (h *ProjectHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("project id is required"),
		})
		return
	}

	var req model.UpdateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	project, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, project)
}

// Delete handles HTTP requests to delete a project.
func (h *ProjectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("project id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
