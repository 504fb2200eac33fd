package httpx

import (
	"errors"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// ContactHandlers provides HTTP handlers for contact requests. Submit is
// public; list, triage, and delete are admin-only and guarded in the router.
type ContactHandlers struct {
	Svc *service.ContactService
}

// Submit handles public contact-form submissions.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	contact, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, contact)
}

// List handles HTTP requests to list contacts with search and status filter.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	opts := model.ContactsListOptions{
		Limit:  params.Limit,
		Offset: params.Offset(),
		Q:      params.Q,
		Sort:   params.Sort,
		Dir:    params.Dir,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseContactStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("invalid status filter"),
			})
			return
		}
		opts.Status = &status
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteListPage(w, params, page.Items, page.Total)
}

// GetByID handles HTTP requests to get a contact by ID.
func (h *ContactHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("contact id is required"),
		})
		return
	}

	contact, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, contact)
}

// Update handles HTTP requests to change a contact's triage status.
func (h *ContactHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("contact id is required"),
		})
		return
	}

	var req model.UpdateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	contact, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, contact)
}

// Delete handles HTTP requests to delete a contact.
func (h *ContactHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("contact id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
