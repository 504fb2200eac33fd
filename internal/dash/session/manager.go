// Package session owns the client-side answer to "who is the current actor
// and are they authenticated". The manager is the single writer of session
// state; everything else reads through selectors or subscriptions.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// ProfileFetcher loads the authenticated user's profile with the current
// token. The api.Client satisfies this.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*model.User, error)
}

// ManagerOptions groups dependencies for NewManager.
type ManagerOptions struct {
	Store   Store          // optional, nil keeps state in memory only
	Fetcher ProfileFetcher // optional, nil skips the post-login profile fetch
	Logger  *slog.Logger
}

// Manager holds the session state machine.
//
// Login is two-phase and deliberately not transactional: tokens and the
// authenticated flag are set synchronously, the profile is fetched in the
// background. Possessing a valid token is sufficient for "authenticated";
// profile data is best effort and a failed fetch is logged, never surfaced
// as a login failure.
type Manager struct {
	mu      sync.Mutex
	state   State
	epoch   uint64
	subs    map[int]func(State)
	nextSub int

	store   Store
	fetcher ProfileFetcher
	logger  *slog.Logger

	// fetches tracks in-flight profile fetches so tests can wait for them.
	fetches sync.WaitGroup
}

// NewManager constructs a Manager, rehydrating persisted state when the
// store holds a compatible snapshot.
func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		subs:    make(map[int]func(State)),
		store:   opts.Store,
		fetcher: opts.Fetcher,
		logger:  logger,
	}

	if opts.Store != nil {
		state, ok, err := opts.Store.Load()
		switch {
		case err != nil:
			logger.Warn("load persisted session failed", "error", err)
		case ok && state.IsAuthenticated && state.AccessToken == "":
			// Invariant: authenticated implies a token. Discard rather
			// than start in a broken state.
			logger.Warn("discarding persisted session without access token")
		case ok:
			m.state = state
		}
	}

	return m
}

// ErrEmptyToken is returned by Login when the access token is empty.
var ErrEmptyToken = errors.New("access token must not be empty")

// Login sets the token pair and marks the session authenticated, then kicks
// off a background profile fetch. The synchronous part completes before
// Login returns; the profile lands whenever the fetch resolves. A fetch that
// resolves after Logout is dropped.
func (m *Manager) Login(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	m.state = State{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		IsAuthenticated: true,
	}
	// Each login starts a new epoch so a profile fetch from an earlier
	// login cannot land on this session.
	m.epoch++
	epoch := m.epoch
	m.persistLocked()
	snapshot := m.state
	m.mu.Unlock()
	m.notify(snapshot)

	if m.fetcher == nil {
		return nil
	}

	m.fetches.Add(1)
	go func() {
		defer m.fetches.Done()
		m.fetchProfile(ctx, epoch)
	}()

	return nil
}

// fetchProfile completes the second phase of login. The epoch captured at
// login time guards against a late response resurrecting state after Logout
// or a newer Login has moved the session on.
func (m *Manager) fetchProfile(ctx context.Context, epoch uint64) {
	user, err := m.fetcher.Profile(ctx)
	if err != nil {
		m.logger.Warn("profile fetch failed", "error", err)
		return
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return
	}
	m.state.User = user
	m.persistLocked()
	snapshot := m.state
	m.mu.Unlock()
	m.notify(snapshot)
}

// UpdateUser replaces the cached profile without touching tokens.
func (m *Manager) UpdateUser(user *model.User) {
	m.mu.Lock()
	m.state.User = user
	m.persistLocked()
	snapshot := m.state
	m.mu.Unlock()
	m.notify(snapshot)
}

// Logout resets the session and clears the persisted copy. Server-side
// token revocation is the caller's concern; the manager only owns state.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.epoch++
	m.state = State{}
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("clear persisted session failed", "error", err)
		}
	}
	snapshot := m.state
	m.mu.Unlock()
	m.notify(snapshot)
}

// Token returns the current access token, empty when anonymous. Implements
// api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.AccessToken
}

// RefreshToken returns the current refresh token, empty when anonymous.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.RefreshToken
}

// User returns the cached profile, nil when not yet fetched.
func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.User
}

// IsAuthenticated reports whether the session holds a live token.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsAuthenticated
}

// Snapshot returns a copy of the full session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function. Callbacks run outside the manager lock.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// WaitProfileFetch blocks until every in-flight profile fetch has resolved.
// Short-lived commands call this before exiting so the fetched profile makes
// it into the persisted session.
func (m *Manager) WaitProfileFetch() {
	m.fetches.Wait()
}

// persistLocked saves the current state; the caller holds m.mu. Persistence
// failures are logged, never fatal.
func (m *Manager) persistLocked() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.state); err != nil {
		m.logger.Warn("persist session failed", "error", err)
	}
}

func (m *Manager) notify(snapshot State) {
	m.mu.Lock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
