package httpx

import (
	"errors"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// UserHandlers provides HTTP handlers for dashboard account management.
// All routes are admin-only.
type UserHandlers struct {
	Svc *service.UserService
}

// Create handles HTTP requests to create a new user.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// List handles HTTP requests to list users with search and role filter.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	opts := model.UsersListOptions{
		Limit:  params.Limit,
		Offset: params.Offset(),
		Q:      params.Q,
		Sort:   params.Sort,
		Dir:    params.Dir,
	}
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, ok := model.ParseUserRole(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("invalid role filter"),
			})
			return
		}
		opts.Role = &role
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteListPage(w, params, page.Items, page.Total)
}

// GetByID handles HTTP requests to get a user by ID.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("user id is required"),
		})
		return
	}

	user, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Update handles HTTP requests to update a user.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("user id is required"),
		})
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles HTTP requests to delete a user. Admins cannot delete their
// own account; losing the last admin mid-session is a bad failure mode.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("user id is required"),
		})
		return
	}

	if claims, ok := GetClaimsFromContext(r.Context()); ok && claims.UserID == id {
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: "conflict",
			Err:     errors.New("cannot delete your own account"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
