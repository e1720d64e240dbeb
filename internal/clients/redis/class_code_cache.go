package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/classroom-backend/internal/platform/envutil"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

const classCodePrefix = "classcode:"

// ClassCodeCache maps join codes to class ids. A miss is (uuid.Nil, false, nil);
// callers fall back to the database and Set the result.
type ClassCodeCache interface {
	Get(ctx context.Context, code string) (uuid.UUID, bool, error)
	Set(ctx context.Context, code string, classID uuid.UUID) error
	Delete(ctx context.Context, code string) error
	Client() *goredis.Client
	Close() error
}

type classCodeCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewClassCodeCache connects to REDIS_ADDR. Without it the returned cache is a
// no-op and every lookup misses.
func NewClassCodeCache(log *logger.Logger) (ClassCodeCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Info("REDIS_ADDR not set; class code cache disabled")
		return NoopClassCodeCache(), nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &classCodeCache{
		log: log.With("service", "ClassCodeCache"),
		rdb: rdb,
		ttl: envutil.Duration("CLASS_CODE_CACHE_TTL", time.Hour),
	}, nil
}

func (c *classCodeCache) Get(ctx context.Context, code string) (uuid.UUID, bool, error) {
	raw, err := c.rdb.Get(ctx, classCodePrefix+code).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// Unreadable entries are dropped and treated as a miss.
		_ = c.rdb.Del(ctx, classCodePrefix+code).Err()
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (c *classCodeCache) Set(ctx context.Context, code string, classID uuid.UUID) error {
	return c.rdb.Set(ctx, classCodePrefix+code, classID.String(), c.ttl).Err()
}

func (c *classCodeCache) Delete(ctx context.Context, code string) error {
	return c.rdb.Del(ctx, classCodePrefix+code).Err()
}

func (c *classCodeCache) Client() *goredis.Client { return c.rdb }

func (c *classCodeCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

type noopClassCodeCache struct{}

func NoopClassCodeCache() ClassCodeCache { return noopClassCodeCache{} }

func (noopClassCodeCache) Get(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}
func (noopClassCodeCache) Set(context.Context, string, uuid.UUID) error { return nil }
func (noopClassCodeCache) Delete(context.Context, string) error         { return nil }
func (noopClassCodeCache) Client() *goredis.Client                      { return nil }
func (noopClassCodeCache) Close() error                                 { return nil }
