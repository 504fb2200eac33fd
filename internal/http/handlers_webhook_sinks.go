package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// WebhookSinkHandlers provides HTTP handlers for webhook sink administration.
type WebhookSinkHandlers struct {
	Svc *service.WebhookSinkService
}

// Create handles HTTP requests to create a new webhook sink.
func (h *WebhookSinkHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateWebhookSinkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sink, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, sink)
}

// List handles HTTP requests to list webhook sinks.
func (h *WebhookSinkHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	opts := model.WebhookSinksListOptions{
		Limit:  params.Limit,
		Offset: params.Offset(),
		Q:      params.Q,
		Sort:   params.Sort,
		Dir:    params.Dir,
	}
	if raw := r.URL.Query().Get("enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("invalid enabled filter"),
			})
			return
		}
		opts.Enabled = &enabled
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteListPage(w, params, page.Items, page.Total)
}

// GetByID handles HTTP requests to get a webhook sink by ID.
func (h *WebhookSinkHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("webhook sink id is required"),
		})
		return
	}

	sink, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sink)
}

// Update handles HTTP requests to update a webhook sink.
func (h *WebhookSinkHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("webhook sink id is required"),
		})
		return
	}

	var req model.UpdateWebhookSinkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sink, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sink)
}

// Delete handles HTTP requests to delete a webhook sink.
func (h *WebhookSinkHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("webhook sink id is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
