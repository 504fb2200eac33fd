package redis

// Package redis provides Redis-based adapters for the dashboard API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
)

// RefreshTokenStore is a Redis-based store for opaque refresh tokens.
// It handles TTL semantics automatically based on record ExpiresAt, so a
// token vanishes from Redis the moment it expires.
type RefreshTokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRefreshTokenStore creates a new Redis-based refresh token store.
func NewRefreshTokenStore(client redis.UniversalClient) *RefreshTokenStore {
	return &RefreshTokenStore{
		client: client,
		prefix: "refresh:",
	}
}

// NewRefreshTokenStoreWithPrefix creates a store with a custom key prefix.
func NewRefreshTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *RefreshTokenStore {
	return &RefreshTokenStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RefreshTokenStore) Save(ctx context.Context, rec domainauth.RefreshRecord) error {
	if rec.ID == "" {
		return errors.New("refresh token ID cannot be empty")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal refresh record: %w", err)
	}

	key := s.prefix + rec.ID
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return errors.New("refresh token is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RefreshTokenStore) Get(ctx context.Context, id string) (domainauth.RefreshRecord, error) {
	if id == "" {
		return domainauth.RefreshRecord{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.RefreshRecord{}, ErrNotFound
		}
		return domainauth.RefreshRecord{}, fmt.Errorf("redis get: %w", err)
	}

	var rec domainauth.RefreshRecord
	if unmarshalErr := json.Unmarshal([]byte(data), &rec); unmarshalErr != nil {
		return domainauth.RefreshRecord{}, fmt.Errorf("unmarshal refresh record: %w", unmarshalErr)
	}

	// Redis TTL should have evicted expired records already, but clocks drift.
	if time.Now().After(rec.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.RefreshRecord{}, fmt.Errorf("cleanup expired refresh token: %w", deleteErr)
		}
		return domainauth.RefreshRecord{}, ErrNotFound
	}

	return rec, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	key := s.prefix + id
	return s.client.Del(ctx, key).Err()
}

// ErrNotFound is returned when a refresh token is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "refresh token not found" }

var ErrNotFound error = notFoundError{}
