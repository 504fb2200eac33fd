// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider      = (*MockAuthProvider)(nil)
	_ ports.RefreshTokenStore = (*MemoryRefreshStore)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL         string
	DefaultIdentity domainauth.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultIdentity: domainauth.Identity{
			Subject:   "mock-subject-1",
			Name:      "Mock User",
			Email:     "mock.user@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// Begin implements ports.AuthProvider.
func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	return m.AuthURL, fmt.Sprintf("state-%d", m.callCount), fmt.Sprintf("nonce-%d", m.callCount), nil
}

// Exchange implements ports.AuthProvider.
func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	return m.DefaultIdentity, nil
}

// ErrRecordNotFound is returned by MemoryRefreshStore when a token is unknown.
var ErrRecordNotFound = errors.New("refresh record not found")

// MemoryRefreshStore is an in-memory ports.RefreshTokenStore with expiry.
type MemoryRefreshStore struct {
	mu      sync.Mutex
	records map[string]domainauth.RefreshRecord

	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

// NewMemoryRefreshStore creates an empty MemoryRefreshStore.
func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{records: make(map[string]domainauth.RefreshRecord)}
}

// Save implements ports.RefreshTokenStore.
func (s *MemoryRefreshStore) Save(_ context.Context, rec domainauth.RefreshRecord) error {
	if rec.ID == "" {
		return errors.New("refresh record ID is required")
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return nil
}

// Get implements ports.RefreshTokenStore.
func (s *MemoryRefreshStore) Get(_ context.Context, id string) (domainauth.RefreshRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return domainauth.RefreshRecord{}, ErrRecordNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, id)
		return domainauth.RefreshRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

// Delete implements ports.RefreshTokenStore.
func (s *MemoryRefreshStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many records are stored, expired or not.
func (s *MemoryRefreshStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryRefreshStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
