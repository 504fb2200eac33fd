package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/mocks"
)

func newWebhookSinkService(t *testing.T) (*mocks.MockWebhookSinkRepository, *WebhookSinkService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockWebhookSinkRepository(ctrl)
	svc := NewWebhookSinkService(WebhookSinkServiceOptions{SinkRepo: repo})
	return repo, svc
}

func TestWebhookSinkService_Create(t *testing.T) {
	t.Parallel()
	repo, svc := newWebhookSinkService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateWebhookSinkRequest) (*model.WebhookSink, error) {
			return &model.WebhookSink{ID: "sink-1", Name: req.Name, URL: req.URL, Method: req.Method}, nil
		})

	sink, err := svc.Create(context.Background(), &model.CreateWebhookSinkRequest{
		Name: "  slack  ",
		URL:  "https://hooks.example.com/T123",
	})
	require.NoError(t, err)
	assert.Equal(t, "slack", sink.Name)
	assert.Equal(t, http.MethodPost, sink.Method)
}

func TestWebhookSinkService_Create_BadHeaders(t *testing.T) {
	t.Parallel()
	_, svc := newWebhookSinkService(t)

	headers := `{"Authorization": 42}`
	_, err := svc.Create(context.Background(), &model.CreateWebhookSinkRequest{
		Name:    "slack",
		URL:     "https://hooks.example.com/T123",
		Headers: &headers,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "headers", apperrors.GetField(err))
}

func TestWebhookSinkService_Create_BadExtract(t *testing.T) {
	t.Parallel()
	_, svc := newWebhookSinkService(t)

	extract := "{name: "
	_, err := svc.Create(context.Background(), &model.CreateWebhookSinkRequest{
		Name:    "slack",
		URL:     "https://hooks.example.com/T123",
		Extract: &extract,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "extract", apperrors.GetField(err))
}

func TestWebhookSinkService_Create_BadURL(t *testing.T) {
	t.Parallel()
	_, svc := newWebhookSinkService(t)

	_, err := svc.Create(context.Background(), &model.CreateWebhookSinkRequest{
		Name: "slack",
		URL:  "ftp://hooks.example.com",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestWebhookSinkService_Update_NameConflict(t *testing.T) {
	t.Parallel()
	repo, svc := newWebhookSinkService(t)

	name := "slack"
	repo.EXPECT().Update(gomock.Any(), "sink-1", gomock.Any()).Return(nil, data.ErrWebhookSinkNameExists)

	_, err := svc.Update(context.Background(), "sink-1", model.UpdateWebhookSinkRequest{Name: &name})
	assert.True(t, apperrors.IsConflict(err))
}

func TestWebhookSinkService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newWebhookSinkService(t)

	repo.EXPECT().Delete(gomock.Any(), "missing").Return(false, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

type receivedDelivery struct {
	method string
	header http.Header
	body   string
}

func newDispatcher(t *testing.T) (*mocks.MockWebhookSinkRepository, *ContactDispatcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockWebhookSinkRepository(ctrl)
	d := NewContactDispatcher(ContactDispatcherOptions{SinkRepo: repo})
	return repo, d
}

func captureServer(t *testing.T, status int, out *[]receivedDelivery) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*out = append(*out, receivedDelivery{method: r.Method, header: r.Header.Clone(), body: string(body)})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestContactDispatcher_DeliversFullContact(t *testing.T) {
	t.Parallel()
	repo, d := newDispatcher(t)

	var got []receivedDelivery
	srv := captureServer(t, http.StatusOK, &got)

	headers := `{"X-Token": "secret"}`
	repo.EXPECT().ListEnabled(gomock.Any()).Return([]*model.WebhookSink{
		{ID: "sink-1", Name: "crm", URL: srv.URL, Method: http.MethodPost, Headers: &headers, Enabled: true},
	}, nil)

	contact := &model.Contact{ID: "contact-1", Name: "Minh Tran", Email: "minh@example.com", Message: "hello"}
	require.NoError(t, d.Dispatch(context.Background(), contact))

	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.Equal(t, "secret", got[0].header.Get("X-Token"))
	assert.Equal(t, "application/json", got[0].header.Get("Content-Type"))
	assert.Contains(t, got[0].body, `"email":"minh@example.com"`)
}

func TestContactDispatcher_ExtractShapesPayload(t *testing.T) {
	t.Parallel()
	repo, d := newDispatcher(t)

	var got []receivedDelivery
	srv := captureServer(t, http.StatusOK, &got)

	extract := "{contact_name: name, from: email}"
	repo.EXPECT().ListEnabled(gomock.Any()).Return([]*model.WebhookSink{
		{ID: "sink-1", Name: "slack", URL: srv.URL, Method: http.MethodPost, Extract: &extract, Enabled: true},
	}, nil)

	contact := &model.Contact{ID: "contact-1", Name: "Minh Tran", Email: "minh@example.com", Message: "hello"}
	require.NoError(t, d.Dispatch(context.Background(), contact))

	require.Len(t, got, 1)
	assert.JSONEq(t, `{"contact_name": "Minh Tran", "from": "minh@example.com"}`, got[0].body)
}

func TestContactDispatcher_FailingSinkSkipped(t *testing.T) {
	t.Parallel()
	repo, d := newDispatcher(t)

	var broken, healthy []receivedDelivery
	brokenSrv := captureServer(t, http.StatusBadGateway, &broken)
	healthySrv := captureServer(t, http.StatusOK, &healthy)

	repo.EXPECT().ListEnabled(gomock.Any()).Return([]*model.WebhookSink{
		{ID: "sink-1", Name: "broken", URL: brokenSrv.URL, Method: http.MethodPost, Enabled: true},
		{ID: "sink-2", Name: "healthy", URL: healthySrv.URL, Method: http.MethodPost, Enabled: true},
	}, nil)

	contact := &model.Contact{ID: "contact-1", Name: "Minh Tran"}
	require.NoError(t, d.Dispatch(context.Background(), contact))

	// One sink failing must not stop delivery to the rest.
	assert.Len(t, broken, 1)
	assert.Len(t, healthy, 1)
}

func TestContactDispatcher_NoSinks(t *testing.T) {
	t.Parallel()
	repo, d := newDispatcher(t)

	repo.EXPECT().ListEnabled(gomock.Any()).Return(nil, nil)

	assert.NoError(t, d.Dispatch(context.Background(), &model.Contact{ID: "contact-1"}))
}
