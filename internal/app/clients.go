package app

import (
	"context"
	"fmt"

	rediscache "github.com/yungbote/classroom-backend/internal/clients/redis"
	"github.com/yungbote/classroom-backend/internal/platform/gcp"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type Clients struct {
	CodeCache rediscache.ClassCodeCache
	// Content is nil when no bucket or emulator is configured.
	Content gcp.ContentStore
}

func wireClients(ctx context.Context, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	cache, err := rediscache.NewClassCodeCache(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init class code cache: %w", err)
	}

	var store gcp.ContentStore
	storeCfg := gcp.ContentStoreConfigFromEnv()
	if storeCfg.Bucket != "" || storeCfg.EmulatorHost != "" {
		store, err = gcp.NewContentStore(ctx, log, storeCfg)
		if err != nil {
			_ = cache.Close()
			return Clients{}, fmt.Errorf("init content store: %w", err)
		}
	} else {
		log.Info("No content bucket configured; guide paths resolve over http only")
	}

	return Clients{CodeCache: cache, Content: store}, nil
}

func (c Clients) Close() {
	if c.CodeCache != nil {
		_ = c.CodeCache.Close()
	}
	if c.Content != nil {
		_ = c.Content.Close()
	}
}
