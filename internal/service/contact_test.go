package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/khunglong92/dogiadung-sub001/internal/data"
	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
	apperrors "github.com/khunglong92/dogiadung-sub001/internal/errors"
	"github.com/khunglong92/dogiadung-sub001/internal/mocks"
)

// recordingNotifier captures dispatched contacts and optionally fails.
// Dispatch blocks on release when it is set, letting tests hold a
// delivery in flight.
type recordingNotifier struct {
	mu         sync.Mutex
	dispatched []*model.Contact
	ctxErrs    []error
	err        error
	release    chan struct{}
}

func (n *recordingNotifier) Dispatch(ctx context.Context, contact *model.Contact) error {
	if n.release != nil {
		<-n.release
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dispatched = append(n.dispatched, contact)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	return n.err
}

func (n *recordingNotifier) contacts() []*model.Contact {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*model.Contact(nil), n.dispatched...)
}

func newContactService(t *testing.T, notifier ContactNotifier) (*mocks.MockContactRepository, *ContactService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockContactRepository(ctrl)
	svc := NewContactService(ContactServiceOptions{ContactRepo: repo, Notifier: notifier})
	return repo, svc
}

func validContactSubmission() *model.CreateContactRequest {
	return &model.CreateContactRequest{
		Name:    "Minh Tran",
		Email:   "minh@example.com",
		Message: "Please quote a stainless steel railing.",
	}
}

func TestContactService_Submit(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	repo, svc := newContactService(t, notifier)

	stored := &model.Contact{ID: "contact-1", Name: "Minh Tran", Status: model.ContactStatusNew}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(stored, nil)

	contact, err := svc.Submit(context.Background(), validContactSubmission())
	require.NoError(t, err)
	assert.Equal(t, stored, contact)

	svc.dispatches.Wait()
	dispatched := notifier.contacts()
	require.Len(t, dispatched, 1)
	assert.Equal(t, "contact-1", dispatched[0].ID)
}

func TestContactService_Submit_DoesNotWaitForDelivery(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{release: make(chan struct{})}
	repo, svc := newContactService(t, notifier)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Contact{ID: "contact-1"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	contact, err := svc.Submit(ctx, validContactSubmission())
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Equal(t, "contact-1", contact.ID)

	// The form response came back while the sink delivery is still held open.
	assert.Less(t, elapsed, time.Second)
	assert.Empty(t, notifier.contacts())

	// Delivery outlives the request: cancelling the submit context does not
	// cancel the in-flight dispatch.
	cancel()
	close(notifier.release)
	svc.dispatches.Wait()

	require.Len(t, notifier.contacts(), 1)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.ctxErrs, 1)
	assert.NoError(t, notifier.ctxErrs[0])
}

func TestContactService_Submit_NotifierFailureIgnored(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{err: errors.New("sink unreachable")}
	repo, svc := newContactService(t, notifier)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Contact{ID: "contact-1"}, nil)

	// The submission is already persisted; a dead webhook must not surface
	// to the visitor filling in the form.
	contact, err := svc.Submit(context.Background(), validContactSubmission())
	require.NoError(t, err)
	assert.Equal(t, "contact-1", contact.ID)
	svc.dispatches.Wait()
}

func TestContactService_Submit_Validation(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	_, svc := newContactService(t, notifier)

	req := validContactSubmission()
	req.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, notifier.contacts())
}

func TestContactService_Submit_NoNotifier(t *testing.T) {
	t.Parallel()
	repo, svc := newContactService(t, nil)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Contact{ID: "contact-1"}, nil)

	_, err := svc.Submit(context.Background(), validContactSubmission())
	assert.NoError(t, err)
}

func TestContactService_Update_Status(t *testing.T) {
	t.Parallel()
	repo, svc := newContactService(t, nil)

	status := model.ContactStatusHandled
	req := model.UpdateContactRequest{Status: &status}
	repo.EXPECT().Update(gomock.Any(), "contact-1", req).Return(&model.Contact{ID: "contact-1", Status: status}, nil)

	contact, err := svc.Update(context.Background(), "contact-1", req)
	require.NoError(t, err)
	assert.Equal(t, model.ContactStatusHandled, contact.Status)
}

func TestContactService_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newContactService(t, nil)

	status := model.ContactStatusHandled
	req := model.UpdateContactRequest{Status: &status}
	repo.EXPECT().Update(gomock.Any(), "missing", req).Return(nil, data.ErrContactNotFound)

	_, err := svc.Update(context.Background(), "missing", req)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestContactService_List(t *testing.T) {
	t.Parallel()
	repo, svc := newContactService(t, nil)

	status := model.ContactStatusNew
	opts := model.ContactsListOptions{Limit: 20, Status: &status}
	items := []*model.Contact{{ID: "contact-1"}}

	repo.EXPECT().List(gomock.Any(), opts).Return(items, nil)
	repo.EXPECT().Count(gomock.Any(), opts).Return(1, nil)

	page, err := svc.List(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, items, page.Items)
	assert.Equal(t, 1, page.Total)
}

func TestContactService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, svc := newContactService(t, nil)

	repo.EXPECT().Delete(gomock.Any(), "missing").Return(false, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
