package cache

import (
	"context"
	"testing"
	"time"

	"github.com/grocertrack/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	t.Run("store and retrieve string", func(t *testing.T) {
		if err := cache.Set(ctx, "test-key-1", "test-value", time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := cache.Get(ctx, "test-key-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "test-value" {
			t.Errorf("Get() = %v, want test-value", got)
		}
	})

	t.Run("typed values round-trip unchanged", func(t *testing.T) {
		stored := domain.IntentResult{
			Intent:     domain.IntentNavigation,
			Navigation: &domain.NavigationParams{Target: "settings"},
			Message:    "Going to settings...",
			Confidence: 0.9,
		}
		if err := cache.Set(ctx, "test-key-2", stored, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := cache.Get(ctx, "test-key-2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		result, ok := got.(domain.IntentResult)
		if !ok {
			t.Fatalf("Get() returned %T, want domain.IntentResult", got)
		}
		if result.Intent != domain.IntentNavigation || result.Navigation.Target != "settings" {
			t.Errorf("Get() = %+v, want stored result", result)
		}
	})

	t.Run("expires after ttl", func(t *testing.T) {
		if err := cache.Set(ctx, "test-key-3", "expires-soon", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := cache.Get(ctx, "test-key-3"); err != domain.ErrCacheMiss {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := cache.Get(ctx, key); err != nil {
		t.Fatalf("Get() before delete error = %v", err)
	}
	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, key); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "missing")
	if err != nil || exists {
		t.Errorf("Exists() = (%v, %v), want (false, nil)", exists, err)
	}

	cache.Set(ctx, "present", "v", time.Minute)
	exists, err = cache.Exists(ctx, "present")
	if err != nil || !exists {
		t.Errorf("Exists() = (%v, %v), want (true, nil)", exists, err)
	}

	cache.Set(ctx, "expired", "v", time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	exists, err = cache.Exists(ctx, "expired")
	if err != nil || exists {
		t.Errorf("Exists() on expired = (%v, %v), want (false, nil)", exists, err)
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)
	if cache.Size() != 2 {
		t.Errorf("Size() = %d, want 2", cache.Size())
	}

	cache.Clear()
	if cache.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", cache.Size())
	}
}
