package data

import "testing"

func TestValidateSortOptions(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		dir     string
		allowed []string
		wantCol string
		wantDir string
	}{
		{name: "empty falls back", allowed: []string{"name"}, wantCol: "created_at", wantDir: "desc"},
		{name: "allowed column", sort: "name", dir: "asc", allowed: []string{"name", "created_at"}, wantCol: "name", wantDir: "asc"},
		{name: "unknown column falls back", sort: "password_hash", dir: "asc", allowed: []string{"name"}, wantCol: "created_at", wantDir: "asc"},
		{name: "unknown direction falls back", sort: "name", dir: "sideways", allowed: []string{"name"}, wantCol: "name", wantDir: "desc"},
		{name: "case and whitespace normalized", sort: " NAME ", dir: " ASC ", allowed: []string{"name"}, wantCol: "name", wantDir: "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, dir := validateSortOptions(tt.sort, tt.dir, tt.allowed...)
			if col != tt.wantCol {
				t.Errorf("col = %q, want %q", col, tt.wantCol)
			}
			if dir != tt.wantDir {
				t.Errorf("dir = %q, want %q", dir, tt.wantDir)
			}
		})
	}
}
