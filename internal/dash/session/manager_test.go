package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khunglong92/dogiadung-sub001/internal/domain/model"
)

// fakeFetcher serves a fixed profile, optionally blocking until released so
// tests can interleave the fetch with other session transitions.
type fakeFetcher struct {
	mu      sync.Mutex
	user    *model.User
	err     error
	release chan struct{}
	calls   int
}

func (f *fakeFetcher) Profile(_ context.Context) (*model.User, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestManager_Login_SynchronousPhase(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{release: make(chan struct{})}
	m := NewManager(ManagerOptions{Fetcher: fetcher})

	require.NoError(t, m.Login(context.Background(), "access", "refresh"))

	// Tokens and the authenticated flag are visible before the profile
	// fetch resolves; the user stays nil until then.
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "access", m.Token())
	assert.Equal(t, "refresh", m.RefreshToken())
	assert.Nil(t, m.User())

	close(fetcher.release)
	m.WaitProfileFetch()
}

func TestManager_Login_ProfileLands(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: "user-1", Name: "Minh Tran"}
	fetcher := &fakeFetcher{user: user}
	m := NewManager(ManagerOptions{Fetcher: fetcher})

	require.NoError(t, m.Login(context.Background(), "access", "refresh"))
	m.WaitProfileFetch()

	assert.Equal(t, user, m.User())
	assert.True(t, m.IsAuthenticated())
}

func TestManager_Login_EmptyToken(t *testing.T) {
	t.Parallel()

	m := NewManager(ManagerOptions{})
	err := m.Login(context.Background(), "", "refresh")

	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_Login_ProfileFetchFailureNotFatal(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("profile endpoint down")}
	m := NewManager(ManagerOptions{Fetcher: fetcher})

	require.NoError(t, m.Login(context.Background(), "access", "refresh"))
	m.WaitProfileFetch()

	// A failed fetch never demotes the session; the token is what counts.
	assert.True(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
}

func TestManager_LateProfileAfterLogoutDropped(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{
		user:    &model.User{ID: "user-1"},
		release: make(chan struct{}),
	}
	store := NewMemoryStore()
	m := NewManager(ManagerOptions{Store: store, Fetcher: fetcher})

	require.NoError(t, m.Login(context.Background(), "access", "refresh"))
	m.Logout()

	// The fetch resolves only now, against a logged-out session.
	close(fetcher.release)
	m.WaitProfileFetch()

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
	assert.Empty(t, m.Token())

	// The dropped fetch must not resurrect the persisted session either.
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	m := NewManager(ManagerOptions{Store: store})
	require.NoError(t, m.Login(context.Background(), "access", "refresh"))

	m.Logout()

	assert.Equal(t, State{}, m.Snapshot())
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_RehydratesFromStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.Save(State{
		User:            &model.User{ID: "user-1"},
		AccessToken:     "access",
		RefreshToken:    "refresh",
		IsAuthenticated: true,
	}))

	m := NewManager(ManagerOptions{Store: store})

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "access", m.Token())
	require.NotNil(t, m.User())
	assert.Equal(t, "user-1", m.User().ID)
}

func TestManager_DiscardsPersistedSessionWithoutToken(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.Save(State{IsAuthenticated: true}))

	m := NewManager(ManagerOptions{Store: store})

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
}

func TestManager_PersistsAcrossRestart(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	fetcher := &fakeFetcher{user: &model.User{ID: "user-1"}}

	first := NewManager(ManagerOptions{Store: store, Fetcher: fetcher})
	require.NoError(t, first.Login(context.Background(), "access", "refresh"))
	first.WaitProfileFetch()

	second := NewManager(ManagerOptions{Store: store})
	assert.True(t, second.IsAuthenticated())
	require.NotNil(t, second.User())
	assert.Equal(t, "user-1", second.User().ID)
}

func TestManager_Subscribe(t *testing.T) {
	t.Parallel()

	m := NewManager(ManagerOptions{})

	var states []State
	unsubscribe := m.Subscribe(func(s State) { states = append(states, s) })

	require.NoError(t, m.Login(context.Background(), "access", "refresh"))
	m.Logout()

	require.Len(t, states, 2)
	assert.True(t, states[0].IsAuthenticated)
	assert.False(t, states[1].IsAuthenticated)

	unsubscribe()
	m.UpdateUser(&model.User{ID: "user-1"})
	assert.Len(t, states, 2)
}

func TestManager_SecondLoginSupersedesFirstFetch(t *testing.T) {
	t.Parallel()

	stale := &fakeFetcher{
		user:    &model.User{ID: "stale"},
		release: make(chan struct{}),
	}
	m := NewManager(ManagerOptions{Fetcher: stale})

	require.NoError(t, m.Login(context.Background(), "first-access", "first-refresh"))

	// Logout then log in again while the first fetch is still in flight.
	m.Logout()
	require.NoError(t, m.Login(context.Background(), "second-access", "second-refresh"))

	close(stale.release)
	m.WaitProfileFetch()

	// The second fetch wins; call order through the channel makes both
	// resolve with the same fixture, so assert on tokens and call count.
	assert.Equal(t, "second-access", m.Token())
	assert.Equal(t, 2, stale.callCount())
}

// sequencedFetcher hands out a distinct profile per call, optionally holding
// a given call open until its gate closes.
type sequencedFetcher struct {
	mu    sync.Mutex
	users []*model.User
	gates map[int]chan struct{}
	calls int
}

func (f *sequencedFetcher) Profile(_ context.Context) (*model.User, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	gate := f.gates[idx]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if idx >= len(f.users) {
		return nil, errors.New("no profile fixture for call")
	}
	return f.users[idx], nil
}

func TestManager_LoginOverLoginDropsStaleProfile(t *testing.T) {
	t.Parallel()

	firstRelease := make(chan struct{})
	fetcher := &sequencedFetcher{
		users: []*model.User{{ID: "stale"}, {ID: "fresh"}},
		gates: map[int]chan struct{}{0: firstRelease},
	}
	m := NewManager(ManagerOptions{Fetcher: fetcher})

	require.NoError(t, m.Login(context.Background(), "first-access", "first-refresh"))

	// A second login with no logout in between. It alone must invalidate
	// the first login's still-running profile fetch.
	require.NoError(t, m.Login(context.Background(), "second-access", "second-refresh"))

	close(firstRelease)
	m.WaitProfileFetch()

	assert.Equal(t, "second-access", m.Token())
	require.NotNil(t, m.User())
	assert.Equal(t, "fresh", m.User().ID)
}
