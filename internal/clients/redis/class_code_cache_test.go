package redis

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

func TestNewClassCodeCache_NoAddrIsNoop(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cache, err := NewClassCodeCache(logger.Nop())
	if err != nil {
		t.Fatalf("NewClassCodeCache: %v", err)
	}
	if cache.Client() != nil {
		t.Fatalf("expected no client for noop cache")
	}
	if err := cache.Set(context.Background(), "ABC123", uuid.New()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := cache.Get(context.Background(), "ABC123"); ok || err != nil {
		t.Fatalf("noop Get: ok=%v err=%v", ok, err)
	}
}

func TestClassCodeCache_RoundTrip(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	t.Setenv("REDIS_ADDR", addr)
	cache, err := NewClassCodeCache(logger.Nop())
	if err != nil {
		t.Fatalf("NewClassCodeCache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	code := "T" + strings.ToUpper(uuid.NewString()[:5])
	id := uuid.New()
	if err := cache.Set(ctx, code, id); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := cache.Get(ctx, code)
	if err != nil || !ok || got != id {
		t.Fatalf("Get: got=%v ok=%v err=%v", got, ok, err)
	}
	if err := cache.Delete(ctx, code); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := cache.Get(ctx, code); ok || err != nil {
		t.Fatalf("Get after delete: ok=%v err=%v", ok, err)
	}
}
