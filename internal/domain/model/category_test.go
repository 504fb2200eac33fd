package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRequest_Validate(t *testing.T) {
	t.Parallel()

	longName := strings.Repeat("a", 256)
	longDesc := strings.Repeat("b", 2001)

	tests := []struct {
		name    string
		req     CreateCategoryRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateCategoryRequest{Name: "Kitchen", Description: strPtr("Pots and pans")},
		},
		{
			name: "valid without description",
			req:  CreateCategoryRequest{Name: "Kitchen"},
		},
		{
			name:    "empty name",
			req:     CreateCategoryRequest{Name: "   "},
			wantErr: "name is required",
		},
		{
			name:    "name too long",
			req:     CreateCategoryRequest{Name: longName},
			wantErr: "name cannot exceed 255 characters",
		},
		{
			name:    "description too long",
			req:     CreateCategoryRequest{Name: "Kitchen", Description: &longDesc},
			wantErr: "description cannot exceed 2000 characters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestUpdateCategoryRequest_Validate(t *testing.T) {
	t.Parallel()

	empty := UpdateCategoryRequest{}
	require.False(t, empty.HasUpdates())
	require.Error(t, empty.Validate())

	valid := UpdateCategoryRequest{Name: strPtr("Lighting")}
	require.True(t, valid.HasUpdates())
	assert.NoError(t, valid.Validate())

	blank := UpdateCategoryRequest{Name: strPtr("  ")}
	assert.Error(t, blank.Validate())
}

func strPtr(s string) *string {
	return &s
}
