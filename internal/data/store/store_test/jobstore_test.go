package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/data/redisStore"
	"github.com/akolanti/DocSummaryAPI/internal/data/store"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisJobStore(t *testing.T) (*miniredis.Miniredis, *store.RedisJobStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, store.NewRedisJobStore(redisStore.NewStoreFromClient(client, config.RedisJobStore))
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr, jobStore := newRedisJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:     jobID,
		Status: jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			DocumentName: "lease.pdf",
			Depth:        summaryModel.Detailed,
			Language:     "Hindi",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.DocumentName != testJob.JobPayload.DocumentName ||
			retrievedJob.JobPayload.Depth != summaryModel.Detailed {
			t.Errorf("Data mismatch! Got %+v, want %+v", retrievedJob.JobPayload, testJob.JobPayload)
		}
	})

	t.Run("Saved With TTL", func(t *testing.T) {
		if ttl := mr.TTL("job:" + jobID); ttl != config.RedisJobStoreTTL {
			t.Errorf("ttl got %v, want %v", ttl, config.RedisJobStoreTTL)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Corrupt Entry Is Not Found", func(t *testing.T) {
		if err := mr.Set("job:broken", "{not json"); err != nil {
			t.Fatal(err)
		}
		if _, found := jobStore.GetJob(ctx, "broken"); found {
			t.Error("Expected found=false for corrupt value")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists("job:" + jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	_, jobStore := newRedisJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()

	if _, found := jobStore.GetJob(ctx, "race-job"); !found {
		t.Error("race-job should be stored")
	}
}

func TestInMemoryJobStore(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	if err := jobStore.SaveJob(ctx, jobModel.Job{Id: "a", Status: jobModel.JobStatusQueued}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	got, found := jobStore.GetJob(ctx, "a")
	if !found || got.Status != jobModel.JobStatusQueued {
		t.Fatalf("got %+v, %v", got, found)
	}

	jobStore.DeleteJob(ctx, "a")
	if _, found := jobStore.GetJob(ctx, "a"); found {
		t.Error("job should be deleted")
	}
}

func TestInMemoryJobStore_Expiry(t *testing.T) {
	jobStore := store.InitInMemoryJobStoreWithTTL(20 * time.Millisecond)
	ctx := context.Background()

	if err := jobStore.SaveJob(ctx, jobModel.Job{Id: "old", Status: jobModel.JobStatusComplete}); err != nil {
		t.Fatal(err)
	}
	if _, found := jobStore.GetJob(ctx, "old"); !found {
		t.Fatal("job should be readable before it expires")
	}

	time.Sleep(40 * time.Millisecond)
	if _, found := jobStore.GetJob(ctx, "old"); found {
		t.Error("expired job should not be found")
	}
}
