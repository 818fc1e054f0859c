// Package session implements the server-side session store. Sessions live in
// Redis keyed by an opaque identifier carried in a cookie; the cookie itself
// holds no user data.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the session identifier cookie.
const CookieName = "dayflow_session"

const keyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

// Data is the authenticated-user state held server-side.
type Data struct {
	UserID       uuid.UUID  `json:"user_id"`
	Role         model.Role `json:"role"`
	EmployeeCode string     `json:"employee_code"`
	CSRFToken    string     `json:"csrf_token"`
	LastActivity time.Time  `json:"last_activity"`
}

// Store is the session persistence contract. The production implementation is
// Redis-backed; tests substitute an in-memory stub.
type Store interface {
	Create(ctx context.Context, data *Data) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Destroy(ctx context.Context, id string) error
}

type redisStore struct {
	rdb *redis.Client
	// ttl bounds how long an untouched session survives in Redis. The auth
	// gate enforces the idle timeout itself; the TTL is the backstop that
	// keeps abandoned sessions from accumulating.
	ttl time.Duration
}

// NewRedisStore returns a Store backed by Redis. idleTimeout should match the
// auth gate's timeout; entries are kept for twice that.
func NewRedisStore(rdb *redis.Client, idleTimeout time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: 2 * idleTimeout}
}

// NewID returns a 128-bit random session identifier.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *redisStore) Create(ctx context.Context, data *Data) (string, error) {
	id, err := NewID()
	if err != nil {
		return "", err
	}
	if err := s.Save(ctx, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Data, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *redisStore) Save(ctx context.Context, id string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+id, raw, s.ttl).Err()
}

func (s *redisStore) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}
