package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedProfile struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "user:"), mr
}

func TestCacheHelper_GetSet(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		stored := cachedProfile{ID: 1, Name: "Ada"}
		if err := helper.Set(ctx, "id:1", stored, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var got cachedProfile
		if err := helper.Get(ctx, "id:1", &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != stored {
			t.Errorf("Expected %+v, got %+v", stored, got)
		}
	})

	t.Run("KeyIsPrefixed", func(t *testing.T) {
		if !mr.Exists("user:id:1") {
			t.Error("Expected key to carry the user: prefix")
		}
	})

	t.Run("Miss", func(t *testing.T) {
		var got cachedProfile
		err := helper.Get(ctx, "id:999", &got)
		if !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("Expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		if err := helper.Set(ctx, "id:2", cachedProfile{ID: 2}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		mr.FastForward(2 * time.Minute)

		var got cachedProfile
		if err := helper.Get(ctx, "id:2", &got); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("Expected entry to expire, got %v", err)
		}
	})
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := helper.Set(ctx, fmt.Sprintf("id:%d", i), cachedProfile{ID: uint(i)}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.Delete(ctx, "id:1", "id:2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if mr.Exists("user:id:1") || mr.Exists("user:id:2") {
		t.Error("Expected deleted keys to be gone")
	}
	if !mr.Exists("user:id:3") {
		t.Error("Expected untouched key to survive")
	}

	if err := helper.Delete(ctx); err != nil {
		t.Errorf("Expected delete with no keys to be a no-op, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := helper.Set(ctx, fmt.Sprintf("id:%d", i), cachedProfile{ID: uint(i)}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := helper.Set(ctx, "list:all", []uint{1, 2}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "id:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if mr.Exists(fmt.Sprintf("user:id:%d", i)) {
			t.Errorf("Expected user:id:%d to be invalidated", i)
		}
	}
	if !mr.Exists("user:list:all") {
		t.Error("Expected non-matching key to survive")
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	t.Run("MissExecutesFetch", func(t *testing.T) {
		calls := 0
		var got cachedProfile
		err := helper.CacheOrExecute(ctx, "id:10", &got, time.Minute, func() (interface{}, error) {
			calls++
			return cachedProfile{ID: 10, Name: "Grace"}, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if calls != 1 {
			t.Errorf("Expected one fetch call, got %d", calls)
		}
		if got.Name != "Grace" {
			t.Errorf("Expected fetched value, got %+v", got)
		}
	})

	t.Run("HitSkipsFetch", func(t *testing.T) {
		if err := helper.Set(ctx, "id:11", cachedProfile{ID: 11, Name: "Margaret"}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var got cachedProfile
		err := helper.CacheOrExecute(ctx, "id:11", &got, time.Minute, func() (interface{}, error) {
			t.Error("Fetch must not run on a cache hit")
			return nil, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if got.Name != "Margaret" {
			t.Errorf("Expected cached value, got %+v", got)
		}
	})

	t.Run("FetchError", func(t *testing.T) {
		var got cachedProfile
		err := helper.CacheOrExecute(ctx, "id:12", &got, time.Minute, func() (interface{}, error) {
			return nil, fmt.Errorf("db unavailable")
		})
		if err == nil {
			t.Error("Expected fetch error to propagate")
		}
	})
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	var got cachedProfile
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Set(ctx, "id:1", cachedProfile{}, time.Minute); err != nil {
		t.Errorf("Expected Set to degrade to no-op, got %v", err)
	}
	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Errorf("Expected Delete to degrade to no-op, got %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "*"); err != nil {
		t.Errorf("Expected InvalidatePattern to degrade to no-op, got %v", err)
	}

	calls := 0
	err := helper.CacheOrExecute(ctx, "id:1", &got, time.Minute, func() (interface{}, error) {
		calls++
		return cachedProfile{ID: 1}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected fetch to run without cache, got %d calls", calls)
	}
}

func TestCacheManager(t *testing.T) {
	t.Run("HealthCheck", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })

		cm := NewCacheManager(client)
		if err := cm.HealthCheck(context.Background()); err != nil {
			t.Errorf("Expected healthy cache, got %v", err)
		}
	})

	t.Run("HealthCheckWithoutClient", func(t *testing.T) {
		cm := NewCacheManager(nil)
		if err := cm.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
			t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
		}
	})

	t.Run("InvalidateUser", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })

		cm := NewCacheManager(client)
		ctx := context.Background()

		if err := cm.User.Set(ctx, "id:7", cachedProfile{ID: 7}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := cm.MentorList.Set(ctx, "all", []uint{7}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		cm.InvalidateUser(ctx, 7)

		if mr.Exists("user:id:7") {
			t.Error("Expected cached user row to be dropped")
		}
		if mr.Exists("mentors:all") {
			t.Error("Expected mentor listings to be dropped")
		}
	})
}
