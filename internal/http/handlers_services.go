package httpx

import (
	"errors"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// ServiceHandlers provides HTTP handlers for the offered-services catalog.
type ServiceHandlers struct {
	Svc *service.OfferingService
}

// Create handles HTTP requests to create a new service offering.
func (h *ServiceHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateServiceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	offering, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, offering)
}

// List handles HTTP requests to list service offerings.
func (h *ServiceHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	page, err := h.Svc.List(r.Context(), model.ServicesListOptions{
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

// GetByID handles HTTP requests to get a service offering by ID.
func (h *ServiceHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("service id is required"),
		})
		return
	}

	offering, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, offering)
}

// Update handles HTTP requests to update a service offering.
func (h *ServiceHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("service id is required"),
		})
		return
	}

	var req model.UpdateServiceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	offering, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, offering)
}

// Delete handles HTTP requests to delete a service offering.
func (h *ServiceHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("service id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
