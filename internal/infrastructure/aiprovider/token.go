package aiprovider

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// tokenCacheKey is the single entry key in the token cache.
const tokenCacheKey = "provider_token"

// StaticTokenSource serves a fixed API key. Most completion providers use
// long-lived keys, so this is the production default.
type StaticTokenSource struct {
	key string
}

// NewStaticTokenSource wraps a configured API key.
func NewStaticTokenSource(key string) *StaticTokenSource {
	return &StaticTokenSource{key: key}
}

// Token implements port.TokenProvider.
func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	if s.key == "" {
		return "", fmt.Errorf("provider API key is not configured")
	}
	return s.key, nil
}

// Invalidate implements port.TokenProvider. Static keys cannot be
// refreshed, so this is a no-op.
func (s *StaticTokenSource) Invalidate() {}

// RefreshFunc obtains a fresh short-lived token from an auth endpoint.
type RefreshFunc func(ctx context.Context) (string, error)

// CachingTokenSource caches short-lived tokens with a TTL and refreshes
// them on expiry. The cache owns its state behind its own lock, so the
// source is safe under concurrent request handling.
type CachingTokenSource struct {
	refresh RefreshFunc
	cache   *gocache.Cache
}

// NewCachingTokenSource builds a source that refreshes via refresh and
// keeps tokens for ttl.
func NewCachingTokenSource(refresh RefreshFunc, ttl time.Duration) *CachingTokenSource {
	return &CachingTokenSource{
		refresh: refresh,
		cache:   gocache.New(ttl, ttl),
	}
}

// Token implements port.TokenProvider: it returns the cached token or
// refreshes once the TTL has lapsed.
func (s *CachingTokenSource) Token(ctx context.Context) (string, error) {
	if cached, ok := s.cache.Get(tokenCacheKey); ok {
		return cached.(string), nil
	}

	token, err := s.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("refresh provider token: %w", err)
	}

	s.cache.SetDefault(tokenCacheKey, token)
	return token, nil
}

// Invalidate implements port.TokenProvider.
func (s *CachingTokenSource) Invalidate() {
	s.cache.Delete(tokenCacheKey)
}
