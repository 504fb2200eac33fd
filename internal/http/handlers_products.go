package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// ProductHandlers provides HTTP handlers for product operations.
type ProductHandlers struct {
	Svc *service.ProductService
}

// Create handles HTTP requests to create a new product.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, product)
}

// List handles HTTP requests to list products. The catalog can grow large,
// so search always runs server-side, optionally narrowed to one category.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	opts := model.ProductsListOptions{
		Limit:  params.Limit,
		Offset: params.Offset(),
		Q:      params.Q,
		Sort:   params.Sort,
		Dir:    params.Dir,
	}
	if categoryID := strings.TrimSpace(r.URL.Query().Get("category_id")); categoryID != "" {
		opts.CategoryID = &categoryID
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteListPage(w, params, page.Items, page.Total)
}

// GetByID handles HTTP requests to get a product by ID.
func (h *ProductHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("product id is required"),
		})
		return
	}

	product, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, product)
}

// Update handles HTTP requests to update a product.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("product id is required"),
		})
		return
	}

	var req model.UpdateProductRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, product)
}

// Delete handles HTTP requests to delete a product.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("product id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
