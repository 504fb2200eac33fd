package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

type staticTokens string

func (t staticTokens) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseURL: srv.URL, Tokens: tokens})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient(ClientOptions{})
	assert.Error(t, err)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "cat-1"})
	}), staticTokens("tok-123"))

	var out model.Category
	require.NoError(t, client.do(context.Background(), http.MethodGet, "/api/categories/cat-1", "", nil, &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}), staticTokens(""))

	require.NoError(t, client.do(context.Background(), http.MethodGet, "/api/health", "", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "conflict",
			"message": "a category with this name already exists",
		})
	}), nil)

	err := client.do(context.Background(), http.MethodPost, "/api/categories", "", map[string]string{"name": "Kitchen"}, nil)
	require.Error(t, err)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusConflict, re.Status)
	assert.Equal(t, "a category with this name already exists", re.Message)
	assert.Equal(t, "request failed (409): a category with this name already exists", re.Error())
}

func TestClient_FallbackToStatusText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "plain text, not the JSON envelope", http.StatusBadGateway)
	}), nil)

	err := client.do(context.Background(), http.MethodGet, "/api/categories", "", nil, nil)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Equal(t, "Bad Gateway", re.Message)
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(&RequestError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&RequestError{Status: http.StatusConflict}))
	assert.False(t, IsNotFound(context.Canceled))
	assert.False(t, IsNotFound(nil))
}

func TestResource_RoundTrips(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kit", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(Page[model.Category]{
			Items: []model.Category{{ID: "cat-1", Name: "Kitchen"}},
			Total: 11,
			Page:  2,
			Limit: 10,
		})
	})
	mux.HandleFunc("GET /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Category{ID: r.PathValue("id"), Name: "Kitchen"})
	})
	mux.HandleFunc("POST /api/categories", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateCategoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Category{ID: "cat-new", Name: req.Name})
	})
	mux.HandleFunc("PUT /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Category{ID: r.PathValue("id"), Name: "Renamed"})
	})
	mux.HandleFunc("DELETE /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
	})

	client := newTestClient(t, mux, nil)
	res := NewResource[model.Category](client, "/api/categories")
	ctx := context.Background()

	page, err := res.FindAll(ctx, ListParams{Q: "kit", Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 11, page.Total)

	got, err := res.FindByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", got.ID)

	created, err := res.Create(ctx, &model.CreateCategoryRequest{Name: "Lighting"})
	require.NoError(t, err)
	assert.Equal(t, "cat-new", created.ID)
	assert.Equal(t, "Lighting", created.Name)

	updated, err := res.Update(ctx, "cat-1", map[string]string{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, res.Delete(ctx, "cat-1"))
}

func TestResource_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "message": "category not found"})
	}), nil)

	res := NewResource[model.Category](client, "/api/categories")
	_, err := res.FindByID(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestListParams_Encode_ExtraFilters(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(Page[model.Contact]{})
	}), nil)

	res := NewResource[model.Contact](client, "/api/contacts")
	_, err := res.FindAll(context.Background(), ListParams{Limit: 20, Extra: url.Values{"status": {"new"}}})
	require.NoError(t, err)
	assert.Equal(t, "limit=20&status=new", gotQuery)
}
