// Package cache provides a Redis read-through cache for user profiles.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/okian/stylematch/internal/adapters/repository"
	"github.com/okian/stylematch/internal/domain/model"
	"github.com/okian/stylematch/pkg/logger"
	"github.com/okian/stylematch/pkg/metrics"
)

const (
	keyPrefix  = "stylematch:user:"
	defaultTTL = 5 * time.Minute
)

// ClientConfig holds Redis connection settings.
type ClientConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client and verifies it with a ping.
func NewClient(ctx context.Context, cfg ClientConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// cachedProfile is the stored form of a model.UserProfile.
type cachedProfile struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Aesthetic      string   `json:"aesthetic,omitempty"`
	Palette        string   `json:"palette,omitempty"`
	Vibe           string   `json:"vibe,omitempty"`
	Silhouette     string   `json:"silhouette,omitempty"`
	FollowedBrands []string `json:"followed_brands,omitempty"`
}

func toCached(u model.UserProfile) cachedProfile {
	return cachedProfile{
		ID:             u.ID,
		Name:           u.Name,
		Aesthetic:      string(u.Aesthetic),
		Palette:        string(u.Palette),
		Vibe:           string(u.Vibe),
		Silhouette:     string(u.Silhouette),
		FollowedBrands: u.FollowedBrands,
	}
}

func (c cachedProfile) profile() model.UserProfile {
	return model.UserProfile{
		ID:             c.ID,
		Name:           c.Name,
		Aesthetic:      model.Aesthetic(c.Aesthetic),
		Palette:        model.Palette(c.Palette),
		Vibe:           model.Vibe(c.Vibe),
		Silhouette:     model.Silhouette(c.Silhouette),
		FollowedBrands: c.FollowedBrands,
	}
}

// ProfileStore wraps a repository.Store and serves LoadUser from Redis.
// Redis failures are logged and fall through to the wrapped store.
type ProfileStore struct {
	repository.Store
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// Option applies a configuration option to a ProfileStore.
type Option func(*ProfileStore)

// WithTTL sets how long cached profiles live.
func WithTTL(ttl time.Duration) Option {
	return func(p *ProfileStore) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithLogger sets the cache logger.
func WithLogger(l logger.Logger) Option {
	return func(p *ProfileStore) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProfileStore returns store with a profile cache in front of LoadUser.
func NewProfileStore(store repository.Store, client *redis.Client, opts ...Option) *ProfileStore {
	p := &ProfileStore{
		Store:  store,
		client: client,
		ttl:    defaultTTL,
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func userKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

// LoadUser returns the cached profile for id, loading and caching it from
// the wrapped store on a miss. Unknown users are not cached.
func (p *ProfileStore) LoadUser(ctx context.Context, id int64) (model.UserProfile, error) {
	key := userKey(id)
	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cp cachedProfile
		derr := json.Unmarshal(raw, &cp)
		if derr == nil {
			metrics.RecordCacheHit()
			return cp.profile(), nil
		}
		p.bypass(ctx, "decode", id, derr)
	case errors.Is(err, redis.Nil):
	default:
		p.bypass(ctx, "get", id, err)
	}
	metrics.RecordCacheMiss()

	u, err := p.Store.LoadUser(ctx, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	payload, err := json.Marshal(toCached(u))
	if err != nil {
		p.bypass(ctx, "encode", id, err)
		return u, nil
	}
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		p.bypass(ctx, "set", id, err)
	}
	return u, nil
}

// Close closes the wrapped store and the Redis client.
func (p *ProfileStore) Close() error {
	return errors.Join(p.Store.Close(), p.client.Close())
}

func (p *ProfileStore) bypass(ctx context.Context, op string, id int64, err error) {
	metrics.RecordCacheError()
	metrics.RecordErrorByComponent("cache", op)
	p.logger.Warn(ctx, "profile cache bypassed",
		logger.String("op", op),
		logger.Int64("userID", id),
		logger.Error(err),
	)
}
