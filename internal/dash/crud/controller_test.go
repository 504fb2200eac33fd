package crud

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khunglong92/dogiadung-sub001/internal/dash/api"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type item struct {
	ID   string
	Name string
	Desc string
}

type itemDraft struct {
	Name string `json:"name"`
	Desc string `json:"description,omitempty"`
}

// fakeData is an in-memory DataAccess that records every call.
type fakeData struct {
	mu      sync.Mutex
	items   []item
	findErr error
	saveErr error
	finds   int
	creates int
	updates int
	deletes int
	lastID  string
	blockOn chan struct{} // when set, mutations block until closed
	nextID  int
}

func (f *fakeData) FindAll(_ context.Context, params api.ListParams) (api.Page[item], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.findErr != nil {
		return api.Page[item]{}, f.findErr
	}
	return api.Page[item]{Items: f.items, Total: len(f.items), Page: params.Page, Limit: params.Limit}, nil
}

func (f *fakeData) Create(_ context.Context, payload any) (item, error) {
	f.mu.Lock()
	block := f.blockOn
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.saveErr != nil {
		return item{}, f.saveErr
	}
	draft := payload.(itemDraft)
	f.nextID++
	it := item{ID: "item-" + strconv.Itoa(f.nextID), Name: draft.Name, Desc: draft.Desc}
	f.items = append(f.items, it)
	return it, nil
}

func (f *fakeData) Update(_ context.Context, id string, payload any) (item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	f.lastID = id
	if f.saveErr != nil {
		return item{}, f.saveErr
	}
	draft := payload.(itemDraft)
	return item{ID: id, Name: draft.Name, Desc: draft.Desc}, nil
}

func (f *fakeData) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.lastID = id
	return f.saveErr
}

func (f *fakeData) counts() (finds, creates, updates, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds, f.creates, f.updates, f.deletes
}

// fakeNotifier records emitted notifications.
type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func (n *fakeNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func itemConfig(data *fakeData, policy SearchPolicy) Config[item, itemDraft] {
	return Config[item, itemDraft]{
		Entity:    "item",
		Data:      data,
		NewDraft:  func() itemDraft { return itemDraft{} },
		DraftFrom: func(r item) itemDraft { return itemDraft{Name: r.Name, Desc: r.Desc} },
		ID:        func(r item) string { return r.ID },
		PrimaryField: func(d itemDraft) string {
			return d.Name
		},
		SearchText: func(r item) string { return r.Name + " " + r.Desc },
		Search:     policy,
	}
}

func newTestController(t *testing.T, data *fakeData, policy SearchPolicy) (*Controller[item, itemDraft], *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	ctrl, err := NewController(itemConfig(data, policy), ControllerOptions{Notifier: notifier})
	require.NoError(t, err)
	return ctrl, notifier
}

func TestController_ConfigValidation(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	cfg := itemConfig(data, ServerFilter)
	cfg.Entity = ""
	_, err := NewController(cfg, ControllerOptions{Notifier: &fakeNotifier{}})
	assert.Error(t, err)

	cfg = itemConfig(data, ClientFilter)
	cfg.SearchText = nil
	_, err = NewController(cfg, ControllerOptions{Notifier: &fakeNotifier{}})
	assert.Error(t, err)

	// A nil notifier falls back to logging rather than failing.
	ctrl, err := NewController(itemConfig(data, ServerFilter), ControllerOptions{})
	require.NoError(t, err)
	assert.NotNil(t, ctrl)
}

func TestController_List_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	data := &fakeData{items: []item{{ID: "item-1", Name: "Chair"}}}
	ctrl, _ := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	page, err := ctrl.List(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	// Same parameters, same cache entry: the server is hit once.
	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	finds, _, _, _ := data.counts()
	assert.Equal(t, 1, finds)

	// A successful mutation invalidates; the next list refetches.
	ctrl.OpenCreate()
	ctrl.SetDraft(itemDraft{Name: "Table"})
	require.True(t, ctrl.Submit(ctx))

	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	finds, _, _, _ = data.counts()
	assert.Equal(t, 2, finds)
}

func TestController_List_FailureNotifies(t *testing.T) {
	t.Parallel()

	data := &fakeData{findErr: &api.RequestError{Status: http.StatusBadGateway, Message: "upstream down"}}
	ctrl, notifier := newTestController(t, data, ServerFilter)

	_, err := ctrl.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "upstream down", notifier.lastError())
}

func TestController_List_FailureFallbackMessage(t *testing.T) {
	t.Parallel()

	data := &fakeData{findErr: errors.New("connection refused")}
	ctrl, notifier := newTestController(t, data, ServerFilter)

	_, err := ctrl.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "failed to load item list", notifier.lastError())
}

func TestController_ClientFilter(t *testing.T) {
	t.Parallel()

	data := &fakeData{items: []item{
		{ID: "item-1", Name: "Chair", Desc: "oak"},
		{ID: "item-2", Name: "Table", Desc: "walnut"},
		{ID: "item-3", Name: "Rocking CHAIR", Desc: "pine"},
	}}
	ctrl, _ := newTestController(t, data, ClientFilter)
	ctx := context.Background()

	ctrl.SetSearch("cha")
	page, err := ctrl.List(ctx)
	require.NoError(t, err)

	// Case-insensitive substring match over name and description.
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Chair", page.Items[0].Name)
	assert.Equal(t, "Rocking CHAIR", page.Items[1].Name)
	assert.Equal(t, 2, page.Total)

	// Matching on the description field.
	ctrl.SetSearch("walnut")
	page, err = ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Table", page.Items[0].Name)

	// Changing the local filter never refetches: the unfiltered window
	// is cached once.
	finds, _, _, _ := data.counts()
	assert.Equal(t, 1, finds)
}

func TestController_ServerFilter_PassesQuery(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, _ := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	ctrl.SetSearch("chair")
	_, err := ctrl.List(ctx)
	require.NoError(t, err)

	// A different query is a different cache key, so it refetches.
	ctrl.SetSearch("table")
	_, err = ctrl.List(ctx)
	require.NoError(t, err)

	finds, _, _, _ := data.counts()
	assert.Equal(t, 2, finds)
}

func TestController_Pagination(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, _ := newTestController(t, data, ServerFilter)

	ctrl.SetPage(3)
	page, limit := ctrl.Pagination()
	assert.Equal(t, 3, page)
	assert.Equal(t, defaultLimit, limit)

	ctrl.SetPage(0)
	page, _ = ctrl.Pagination()
	assert.Equal(t, 1, page)

	ctrl.SetLimit(50)
	_, limit = ctrl.Pagination()
	assert.Equal(t, 50, limit)
}

func TestController_SetLimit_ResetsPageWhenConfigured(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	cfg := itemConfig(data, ServerFilter)
	cfg.ResetPageOnLimitChange = true
	ctrl, err := NewController(cfg, ControllerOptions{Notifier: &fakeNotifier{}})
	require.NoError(t, err)

	ctrl.SetPage(5)
	ctrl.SetLimit(50)
	page, limit := ctrl.Pagination()
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, limit)

	// And stays put when the flag is off.
	ctrl2, _ := newTestController(t, data, ServerFilter)
	ctrl2.SetPage(5)
	ctrl2.SetLimit(50)
	page, _ = ctrl2.Pagination()
	assert.Equal(t, 5, page)
}

func TestController_Submit_Create(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, notifier := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	ctrl.OpenCreate()
	assert.True(t, ctrl.IsDialogOpen())
	assert.Nil(t, ctrl.Editing())

	ctrl.SetDraft(itemDraft{Name: "Chair"})
	require.True(t, ctrl.Submit(ctx))

	_, creates, updates, _ := data.counts()
	assert.Equal(t, 1, creates)
	assert.Equal(t, 0, updates)
	assert.False(t, ctrl.IsDialogOpen())
	assert.Equal(t, itemDraft{}, ctrl.Draft())
	assert.Equal(t, "item created", notifier.lastSuccess())
}

func TestController_Submit_EditCallsUpdate(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, notifier := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	ctrl.OpenEdit(item{ID: "item-7", Name: "Chair"})
	require.NotNil(t, ctrl.Editing())
	assert.Equal(t, itemDraft{Name: "Chair"}, ctrl.Draft())

	ctrl.SetDraft(itemDraft{Name: "Armchair"})
	require.True(t, ctrl.Submit(ctx))

	// Edit mode must hit update with the record's ID, never create.
	_, creates, updates, _ := data.counts()
	assert.Equal(t, 0, creates)
	assert.Equal(t, 1, updates)
	assert.Equal(t, "item-7", data.lastID)
	assert.Equal(t, "item updated", notifier.lastSuccess())
}

func TestController_Submit_EmptyPrimaryFieldNoRequest(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, notifier := newTestController(t, data, ServerFilter)

	ctrl.OpenCreate()
	ctrl.SetDraft(itemDraft{Name: "   "})
	assert.False(t, ctrl.Submit(context.Background()))

	_, creates, updates, _ := data.counts()
	assert.Equal(t, 0, creates)
	assert.Equal(t, 0, updates)
	assert.Equal(t, "item name is required", notifier.lastError())
	// The dialog stays open for correction.
	assert.True(t, ctrl.IsDialogOpen())
}

func TestController_Submit_FailureKeepsDraft(t *testing.T) {
	t.Parallel()

	data := &fakeData{saveErr: &api.RequestError{Status: http.StatusConflict, Message: "a category with this name already exists"}}
	ctrl, notifier := newTestController(t, data, ServerFilter)

	ctrl.OpenCreate()
	ctrl.SetDraft(itemDraft{Name: "Chair"})
	assert.False(t, ctrl.Submit(context.Background()))

	// Nothing is lost on failure: dialog open, draft intact.
	assert.True(t, ctrl.IsDialogOpen())
	assert.Equal(t, itemDraft{Name: "Chair"}, ctrl.Draft())
	assert.Equal(t, "a category with this name already exists", notifier.lastError())
	assert.False(t, ctrl.IsSaving())
}

func TestController_Submit_DoubleSubmitGuard(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	data := &fakeData{blockOn: block}
	ctrl, _ := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	ctrl.OpenCreate()
	ctrl.SetDraft(itemDraft{Name: "Chair"})

	done := make(chan bool)
	go func() { done <- ctrl.Submit(ctx) }()

	// Wait until the first submit is in flight, then try again.
	require.Eventually(t, ctrl.IsSaving, waitFor, tick)
	assert.False(t, ctrl.Submit(ctx))

	close(block)
	assert.True(t, <-done)

	_, creates, _, _ := data.counts()
	assert.Equal(t, 1, creates)
}

func TestController_Remove(t *testing.T) {
	t.Parallel()

	data := &fakeData{items: []item{{ID: "item-1", Name: "Chair"}}}
	ctrl, notifier := newTestController(t, data, ServerFilter)
	ctx := context.Background()

	_, err := ctrl.List(ctx)
	require.NoError(t, err)

	require.True(t, ctrl.Remove(ctx, "item-1"))
	assert.Equal(t, "item-1", data.lastID)
	assert.Equal(t, "item deleted", notifier.lastSuccess())

	// Delete invalidates the cached list.
	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	finds, _, _, _ := data.counts()
	assert.Equal(t, 2, finds)
}

func TestController_Remove_Failure(t *testing.T) {
	t.Parallel()

	data := &fakeData{saveErr: &api.RequestError{Status: http.StatusConflict, Message: "category is referenced by existing products"}}
	ctrl, notifier := newTestController(t, data, ServerFilter)

	assert.False(t, ctrl.Remove(context.Background(), "item-1"))
	assert.Equal(t, "category is referenced by existing products", notifier.lastError())
}

func TestController_CloseDialogDiscardsDraft(t *testing.T) {
	t.Parallel()

	data := &fakeData{}
	ctrl, _ := newTestController(t, data, ServerFilter)

	ctrl.OpenEdit(item{ID: "item-1", Name: "Chair"})
	ctrl.CloseDialog()

	assert.False(t, ctrl.IsDialogOpen())
	assert.Nil(t, ctrl.Editing())
	assert.Equal(t, itemDraft{}, ctrl.Draft())
}
