package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListParams are the pagination and search parameters common to all list
// endpoints. Page is 1-indexed to match the dashboard's pager.
type ListParams struct {
	Q     *string
	Page  int
	Limit int
	Sort  string
	Dir   string
}

// Offset converts the 1-indexed page into a row offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseListParams reads q, page, limit, sort, and dir from the query string,
// clamping values into a sane range.
func ParseListParams(r *http.Request) ListParams {
	query := r.URL.Query()

	p := ListParams{
		Page:  parsePositiveInt(query.Get("page"), 1),
		Limit: parsePositiveInt(query.Get("limit"), defaultListLimit),
		Sort:  query.Get("sort"),
		Dir:   query.Get("dir"),
	}
	if p.Limit > maxListLimit {
		p.Limit = maxListLimit
	}
	if q := strings.TrimSpace(query.Get("q")); q != "" {
		p.Q = &q
	}
	return p
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// WriteListPage writes the standard list envelope.
func WriteListPage(w http.ResponseWriter, p ListParams, items any, total int) {
	WriteJSON(w, http.StatusOK, ListEnvelope{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}
