// Package httpx provides HTTP handlers and utilities for the dashboard API.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
	Field   string
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	body := map[string]string{"error": p.ErrCode, "message": p.Err.Error()}
	if p.Field != "" {
		body["field"] = p.Field
	}
	WriteJSON(w, p.Code, body)
}

// WriteAppError maps a service-layer error onto an HTTP status and writes it.
// Services return *apperrors.AppError for all expected failures; anything
// else is reported as a 500 with a generic code.
func WriteAppError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	errCode := "internal_error"

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		code, errCode = http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		code, errCode = http.StatusConflict, "conflict"
	case apperrors.ErrCodeValidation:
		code, errCode = http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeForeignKey:
		code, errCode = http.StatusConflict, "foreign_key_violation"
	case apperrors.ErrCodeUnauthorized:
		code, errCode = http.StatusUnauthorized, "unauthorized"
	case apperrors.ErrCodeInternal:
	}

	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err, Field: apperrors.GetField(err)})
}

// ListEnvelope is the response shape for all list endpoints.
type ListEnvelope struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
