package classrooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rollcall-app/rollcall/internal/authz"
)

// OwnershipStore is the subset of Repository the cache decorates.
type OwnershipStore interface {
	OwnsClassroom(ctx context.Context, teacherID, classroomID int64) (bool, error)
}

// OwnershipCache fronts ownership lookups with a short-lived Redis
// cache. Cache trouble falls through to the database; it never turns
// into a verdict on its own.
type OwnershipCache struct {
	store  OwnershipStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewOwnershipCache constructs the cache decorator.
func NewOwnershipCache(store OwnershipStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *OwnershipCache {
	return &OwnershipCache{store: store, client: client, ttl: ttl, logger: logger}
}

// OwnsClassroom implements authz.OwnershipChecker.
func (c *OwnershipCache) OwnsClassroom(ctx context.Context, teacherID, classroomID int64) (bool, error) {
	key := c.key(teacherID, classroomID)
	if c.client != nil {
		cached, err := c.client.Get(ctx, key).Result()
		switch {
		case err == nil:
			return cached == "1", nil
		case !errors.Is(err, redis.Nil):
			if c.logger != nil {
				c.logger.Warn("ownership cache get", slog.Any("error", err))
			}
		}
	}
	owns, err := c.store.OwnsClassroom(ctx, teacherID, classroomID)
	if err != nil {
		return false, err
	}
	if c.client != nil {
		value := "0"
		if owns {
			value = "1"
		}
		if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.Warn("ownership cache set", slog.Any("error", err))
		}
	}
	return owns, nil
}

func (c *OwnershipCache) key(teacherID, classroomID int64) string {
	return fmt.Sprintf("rollcall:own:%d:%d", teacherID, classroomID)
}

var _ authz.OwnershipChecker = (*OwnershipCache)(nil)
var _ authz.OwnershipChecker = (*Repository)(nil)
