package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketzone/internal/domain"

	"github.com/redis/go-redis/v9"
)

const roleKeyPrefix = "role:"

// RoleCache keeps email -> role lookups in Redis for a bounded time.
type RoleCache struct {
	Client redis.Cmdable
	TTL    time.Duration
}

func NewRoleCache(client redis.Cmdable, ttl time.Duration) *RoleCache {
	return &RoleCache{Client: client, TTL: ttl}
}

// NewRedisClient parses addr as a redis:// URL or a plain host:port and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func roleKey(email string) string {
	return roleKeyPrefix + domain.NormalizeEmail(email)
}

// Get returns the cached role. ok is false on a miss.
func (c *RoleCache) Get(ctx context.Context, email string) (role domain.Role, ok bool, err error) {
	val, err := c.Client.Get(ctx, roleKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.RoleNone, false, nil
	}
	if err != nil {
		return domain.RoleNone, false, err
	}
	// "" is cached for emails without a user record.
	if val == "" {
		return domain.RoleNone, true, nil
	}
	r, valid := domain.ParseRole(val)
	if !valid {
		return domain.RoleNone, false, nil
	}
	return r, true, nil
}

func (c *RoleCache) Set(ctx context.Context, email string, role domain.Role) error {
	return c.Client.Set(ctx, roleKey(email), string(role), c.TTL).Err()
}

// Invalidate drops the entry so the next lookup reads the store.
func (c *RoleCache) Invalidate(ctx context.Context, email string) error {
	return c.Client.Del(ctx, roleKey(email)).Err()
}
