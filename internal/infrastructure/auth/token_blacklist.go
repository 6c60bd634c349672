package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes JWTs ahead of their natural expiry. Individual
// tokens are revoked by JTI on logout; a whole account's outstanding
// sessions are revoked by timestamp on password change.
type TokenBlacklist interface {
	// Revoke marks a single token, identified by its JTI, as revoked.
	// ttl should be the remaining lifetime of the token.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether the JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser revokes every token issued to the user up to now.
	// ttl must cover the longest-lived outstanding token, typically the
	// refresh token expiration.
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserRevoked reports whether a token issued to the user at
	// issuedAt falls under a user-wide revocation
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const (
	revokedJTIPrefix  = "auth:revoked:jti:"
	revokedUserPrefix = "auth:revoked:user:"
)

// RedisBlacklistConfig holds connection settings for the Redis-backed
// blacklist
type RedisBlacklistConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisBlacklist stores revocations in Redis so they survive restarts
// and are shared across instances
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist connects to Redis and verifies the connection
func NewRedisBlacklist(cfg RedisBlacklistConfig) (*RedisBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis blacklist: %w", err)
	}

	return &RedisBlacklist{client: client}, nil
}

func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, revokedJTIPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedJTIPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

func (b *RedisBlacklist) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(time.Now().Unix(), 10)
	if err := b.client.Set(ctx, revokedUserPrefix+userID, cutoff, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, revokedUserPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user revocation: %w", err)
	}

	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parse revocation cutoff: %w", err)
	}

	// Tokens issued at or before the cutoff are revoked.
	return issuedAt.Unix() <= cutoff, nil
}

// Close closes the underlying Redis client
func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisBlacklist)(nil)

// MemoryBlacklist keeps revocations in process memory. It serves tests
// and single-instance deployments where Redis is unavailable; state is
// lost on restart.
type MemoryBlacklist struct {
	mu          sync.Mutex
	jtis        map[string]time.Time // JTI -> entry expiry
	userCutoffs map[string]time.Time // userID -> revocation cutoff
}

// NewMemoryBlacklist creates an empty in-memory blacklist
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		jtis:        make(map[string]time.Time),
		userCutoffs: make(map[string]time.Time),
	}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.jtis[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		// The token itself has expired by now, so the entry is moot.
		delete(b.jtis, jti)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBlacklist) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userCutoffs[userID] = time.Now()
	return nil
}

func (b *MemoryBlacklist) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff, ok := b.userCutoffs[userID]
	if !ok {
		return false, nil
	}
	// Nanosecond comparison keeps tests deterministic without sleeps.
	return !issuedAt.After(cutoff), nil
}

var _ TokenBlacklist = (*MemoryBlacklist)(nil)
