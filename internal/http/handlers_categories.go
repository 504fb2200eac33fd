package httpx

import (
	"errors"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// CategoryHandlers provides HTTP handlers for category operations.
type CategoryHandlers struct {
	Svc *service.CategoryService
}

// Create handles HTTP requests to create a new category.
func (h *CategoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, category)
}

// List handles HTTP requests to list categories with pagination and search.
func (h *CategoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	page, err := h.Svc.List(r.Context(), model.CategoriesListOptions{
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

// GetByID handles HTTP requests to get a category by ID.
func (h *CategoryHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("category id is required"),
		})
		return
	}

	category, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

// Update handles HTTP requests to update a category.
func (h *CategoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("category id is required"),
		})
		return
	}

	var req model.UpdateCategoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

// Delete handles HTTP requests to delete a category.
func (h *CategoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("category id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
