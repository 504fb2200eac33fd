// Package crud implements the generic list/search/paginate/create/edit/delete
// interaction every admin entity shares. One Controller is instantiated per
// entity with that entity's data access, draft shape, and search policy.
package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/khunglong92/dogiadung-sub001/internal/dash/api"
)

// SearchPolicy decides where the search query is applied. Picking one per
// entity is a real design decision: mixing silently produces wrong counts.
type SearchPolicy int

const (
	// ServerFilter passes q/page/limit through to the server. Use for
	// collections too large to filter locally (products, contacts, users).
	ServerFilter SearchPolicy = iota
	// ClientFilter fetches the page unfiltered and applies a
	// case-insensitive substring match locally. Use for small bounded
	// collections (categories, services, projects). Total then reflects
	// the filtered count of the fetched window, not the server total.
	ClientFilter
)

// DataAccess is the server contract a Controller drives. api.Resource
// satisfies it.
type DataAccess[T any] interface {
	FindAll(ctx context.Context, params api.ListParams) (api.Page[T], error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Config parameterizes a Controller for one entity.
type Config[T, D any] struct {
	// Entity is the singular display and cache-key name, e.g. "category".
	Entity string
	Data   DataAccess[T]

	// NewDraft produces the empty draft used by OpenCreate. DraftFrom
	// copies a record's editable fields into a draft for OpenEdit.
	NewDraft  func() D
	DraftFrom func(record T) D

	// ID extracts a record's identifier. PrimaryField extracts the
	// required name/title field from a draft; Submit rejects drafts where
	// it is empty without calling the server.
	ID           func(record T) string
	PrimaryField func(draft D) string

	// SearchText extracts the text ClientFilter matches against, usually
	// name plus description. Unused under ServerFilter.
	SearchText func(record T) string

	Search SearchPolicy

	// ResetPageOnLimitChange returns to page 1 when the page size changes.
	ResetPageOnLimitChange bool
}

func (c *Config[T, D]) validate() error {
	if c.Entity == "" {
		return errors.New("entity name is required")
	}
	if c.Data == nil {
		return errors.New("data access is required")
	}
	if c.NewDraft == nil || c.DraftFrom == nil {
		return errors.New("draft constructors are required")
	}
	if c.ID == nil {
		return errors.New("ID extractor is required")
	}
	if c.PrimaryField == nil {
		return errors.New("primary field extractor is required")
	}
	if c.Search == ClientFilter && c.SearchText == nil {
		return errors.New("search text extractor is required for client-side filtering")
	}
	return nil
}

const defaultLimit = 20

// Controller holds the per-entity interaction state: search, pagination,
// the edit dialog, and the in-flight mutation counter. Mutations never
// fail loudly; every failure becomes a notification and the state is left
// so the user can retry without losing input.
//
// Concurrent mutations on one record are not serialized; whichever
// response arrives last wins, which is acceptable for a single admin user.
type Controller[T, D any] struct {
	cfg      Config[T, D]
	cache    *Cache
	notifier Notifier

	mu      sync.Mutex
	query   string
	page    int
	limit   int
	open    bool
	editing *T
	draft   D
	saving  int
}

// ControllerOptions groups shared dependencies for NewController.
type ControllerOptions struct {
	Cache    *Cache // optional, a private cache is created when nil
	Notifier Notifier
}

// NewController constructs a Controller for one entity.
func NewController[T, D any](cfg Config[T, D], opts ControllerOptions) (*Controller[T, D], error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("crud controller %q: %w", cfg.Entity, err)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewCache()
	}
	return &Controller[T, D]{
		cfg:      cfg,
		cache:    cache,
		notifier: notifier,
		page:     1,
		limit:    defaultLimit,
	}, nil
}

// List returns the current page of the collection, served from the query
// cache until a mutation invalidates it. Failures notify and are also
// returned so headless consumers can branch.
func (c *Controller[T, D]) List(ctx context.Context) (api.Page[T], error) {
	c.mu.Lock()
	q, page, limit := c.query, c.page, c.limit
	c.mu.Unlock()

	serverQ := q
	if c.cfg.Search == ClientFilter {
		serverQ = ""
	}

	key := cacheKey(c.cfg.Entity, serverQ, page, limit)
	v, err := c.cache.do(key, func() (any, error) {
		return c.cfg.Data.FindAll(ctx, api.ListParams{Q: serverQ, Page: page, Limit: limit})
	})
	if err != nil {
		c.notifier.Error(errMessage(err, "failed to load "+c.cfg.Entity+" list"))
		return api.Page[T]{}, err
	}

	result := v.(api.Page[T])
	if c.cfg.Search == ClientFilter && q != "" {
		result = c.filterLocal(result, q)
	}
	return result, nil
}

// filterLocal applies the case-insensitive substring match over the fetched
// window. Total becomes the filtered count of this window.
func (c *Controller[T, D]) filterLocal(page api.Page[T], q string) api.Page[T] {
	needle := strings.ToLower(q)
	filtered := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		if strings.Contains(strings.ToLower(c.cfg.SearchText(item)), needle) {
			filtered = append(filtered, item)
		}
	}
	page.Items = filtered
	page.Total = len(filtered)
	return page
}

// SetSearch updates the search query. Pagination is untouched.
func (c *Controller[T, D]) SetSearch(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// SetPage moves to page p (1-indexed, clamped to 1).
func (c *Controller[T, D]) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	c.mu.Lock()
	c.page = p
	c.mu.Unlock()
}

// SetLimit changes the page size. Whether this resets to page 1 is a
// per-entity choice made at construction.
func (c *Controller[T, D]) SetLimit(limit int) {
	if limit < 1 {
		limit = defaultLimit
	}
	c.mu.Lock()
	c.limit = limit
	if c.cfg.ResetPageOnLimitChange {
		c.page = 1
	}
	c.mu.Unlock()
}

// OpenCreate opens the dialog in create mode with an empty draft.
func (c *Controller[T, D]) OpenCreate() {
	c.mu.Lock()
	c.editing = nil
	c.draft = c.cfg.NewDraft()
	c.open = true
	c.mu.Unlock()
}

// OpenEdit opens the dialog in edit mode, copying the record's editable
// fields into the draft.
func (c *Controller[T, D]) OpenEdit(record T) {
	c.mu.Lock()
	c.editing = &record
	c.draft = c.cfg.DraftFrom(record)
	c.open = true
	c.mu.Unlock()
}

// CloseDialog discards the draft and edit target.
func (c *Controller[T, D]) CloseDialog() {
	c.mu.Lock()
	c.open = false
	c.editing = nil
	var zero D
	c.draft = zero
	c.mu.Unlock()
}

// Draft returns the current draft.
func (c *Controller[T, D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft with the caller's edited copy.
func (c *Controller[T, D]) SetDraft(draft D) {
	c.mu.Lock()
	c.draft = draft
	c.mu.Unlock()
}

// Submit validates the draft and issues the create or update mutation,
// branching on whether an edit target is set. Success closes the dialog and
// invalidates the cached list; failure leaves both dialog and draft intact
// so no input is lost. Returns whether the mutation succeeded.
func (c *Controller[T, D]) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.saving > 0 {
		// A mutation is already in flight; a second click must not issue
		// a second request.
		c.mu.Unlock()
		return false
	}
	draft := c.draft
	editing := c.editing
	if strings.TrimSpace(c.cfg.PrimaryField(draft)) == "" {
		c.mu.Unlock()
		c.notifier.Error(c.cfg.Entity + " name is required")
		return false
	}
	c.saving++
	c.mu.Unlock()

	var err error
	if editing != nil {
		_, err = c.cfg.Data.Update(ctx, c.cfg.ID(*editing), draft)
	} else {
		_, err = c.cfg.Data.Create(ctx, draft)
	}

	c.mu.Lock()
	c.saving--
	if err != nil {
		c.mu.Unlock()
		c.notifier.Error(errMessage(err, "failed to save "+c.cfg.Entity))
		return false
	}
	c.open = false
	c.editing = nil
	var zero D
	c.draft = zero
	c.mu.Unlock()

	c.cache.Invalidate(c.cfg.Entity)
	if editing != nil {
		c.notifier.Success(c.cfg.Entity + " updated")
	} else {
		c.notifier.Success(c.cfg.Entity + " created")
	}
	return true
}

// Remove deletes a record. Confirmation, if any, is the caller's concern.
// Returns whether the delete succeeded.
func (c *Controller[T, D]) Remove(ctx context.Context, id string) bool {
	if err := c.cfg.Data.Delete(ctx, id); err != nil {
		c.notifier.Error(errMessage(err, "failed to delete "+c.cfg.Entity))
		return false
	}
	c.cache.Invalidate(c.cfg.Entity)
	c.notifier.Success(c.cfg.Entity + " deleted")
	return true
}

// IsSaving reports whether a create or update mutation is in flight.
func (c *Controller[T, D]) IsSaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving > 0
}

// IsDialogOpen reports whether the create/edit dialog is open.
func (c *Controller[T, D]) IsDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Editing returns the current edit target, nil in create mode or when the
// dialog is closed.
func (c *Controller[T, D]) Editing() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Query returns the current search query.
func (c *Controller[T, D]) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Pagination returns the current page and limit.
func (c *Controller[T, D]) Pagination() (page, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.limit
}

// errMessage prefers the server-provided message on a RequestError and
// falls back otherwise.
func errMessage(err error, fallback string) string {
	var re *api.RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
