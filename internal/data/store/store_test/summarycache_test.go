package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/data/redisStore"
	"github.com/akolanti/DocSummaryAPI/internal/data/store"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var sampleResult = summaryModel.Result{
	Label:    summaryModel.LegalDocument,
	Depth:    summaryModel.Short,
	Language: "English",
	Summary:  "**Acme** leases the premises to **Beta**.",
}

func TestRedisSummaryCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := store.NewRedisSummaryCache(redisStore.NewStoreFromClient(client, config.RedisSummaryCache), time.Hour)
	ctx := context.Background()

	if _, found := cache.Get(ctx, "k1"); found {
		t.Fatal("empty cache should miss")
	}

	stored := sampleResult
	stored.Cached = true
	if err := cache.Set(ctx, "k1", stored); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := cache.Get(ctx, "k1")
	if !found {
		t.Fatal("expected hit")
	}
	if got != sampleResult {
		t.Errorf("got %+v, want %+v", got, sampleResult)
	}

	mr.FastForward(2 * time.Hour)
	if _, found := cache.Get(ctx, "k1"); found {
		t.Error("entry should expire with its ttl")
	}
}

func TestRedisSummaryCache_OfflineIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	cache := store.NewRedisSummaryCache(redisStore.NewStoreFromClient(client, config.RedisSummaryCache), time.Hour)

	mr.Close()
	if _, found := cache.Get(context.Background(), "k1"); found {
		t.Error("unreachable redis must read as a miss")
	}
}

func TestInMemorySummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit_And_Expiry", func(t *testing.T) {
		cache := store.InitInMemorySummaryCache(30*time.Millisecond, 10)
		_ = cache.Set(ctx, "k", sampleResult)

		got, found := cache.Get(ctx, "k")
		if !found || got != sampleResult {
			t.Fatalf("got %+v, %v", got, found)
		}

		time.Sleep(60 * time.Millisecond)
		if _, found := cache.Get(ctx, "k"); found {
			t.Error("entry should have expired")
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		cache := store.InitInMemorySummaryCache(time.Hour, 2)
		_ = cache.Set(ctx, "a", sampleResult)
		_ = cache.Set(ctx, "b", sampleResult)
		_ = cache.Set(ctx, "c", sampleResult)

		if cache.Len() != 2 {
			t.Errorf("len got %d, want 2", cache.Len())
		}
		if _, found := cache.Get(ctx, "c"); !found {
			t.Error("latest entry must survive eviction")
		}
	})
}
