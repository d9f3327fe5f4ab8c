package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"archreview/internal/redis"
)

// Verifier is the identity-provider collaborator. It turns a bearer token
// into a stable subject identifier or fails.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Service validates bearer tokens against the identity collaborator and
// caches verified subjects in redis so repeated calls within the TTL skip the
// provider round trip.
type Service struct {
	verifier   Verifier
	cache      *redis.Client
	cacheTTL   time.Duration
	headerName string
}

// NewService constructs an auth service. cache may be nil, in which case every
// request hits the verifier.
func NewService(verifier Verifier, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		verifier:   verifier,
		cache:      cache,
		cacheTTL:   cacheTTL,
		headerName: "Authorization",
	}
}

// ValidateToken resolves the subject for a bearer token, consulting the cache
// first. Cache errors fall through to the verifier; a dead cache never blocks
// authentication.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.New("token required")
	}
	if s.verifier == nil {
		return "", errors.New("no identity provider configured")
	}

	cacheKey := "auth:token:" + hashToken(token)
	if s.cache != nil {
		if subject, err := s.cache.Get(ctx, cacheKey); err == nil && subject != "" {
			return subject, nil
		}
	}

	subject, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, subject, s.cacheTTL)
	}
	return subject, nil
}

// Tokens are hashed before use as cache keys so raw credentials never land in
// redis.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// StaticVerifier resolves tokens against a fixed token-to-subject table. It
// stands in for an external identity provider in small deployments and tests.
type StaticVerifier struct {
	Tokens map[string]string
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	subject, ok := v.Tokens[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return subject, nil
}
