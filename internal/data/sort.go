package data

import "strings"

const (
	sortDirAsc  = "asc"
	sortDirDesc = "desc"
)

// validateSortOptions validates and returns a safe sort column and direction.
// Unknown columns fall back to created_at; unknown directions fall back to desc.
func validateSortOptions(sort, dir string, allowed ...string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		s := strings.ToLower(strings.TrimSpace(sort))
		for _, a := range allowed {
			if s == a {
				sortCol = a
				break
			}
		}
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case sortDirAsc:
		sortDir = sortDirAsc
	case sortDirDesc:
		sortDir = sortDirDesc
	}
	return sortCol, sortDir
}
