package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("inmem_job_store")

type storedJob struct {
	job       jobModel.Job
	expiresAt time.Time
}

// InMemoryJobStore is used when Redis is disabled or offline. Jobs expire
// after the same TTL the Redis store uses; expired entries are dropped on
// the next write.
type InMemoryJobStore struct {
	jobMutex sync.RWMutex
	jobMap   map[string]storedJob
	ttl      time.Duration
	now      func() time.Time
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return InitInMemoryJobStoreWithTTL(config.RedisJobStoreTTL)
}

func InitInMemoryJobStoreWithTTL(ttl time.Duration) *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMap: make(map[string]storedJob),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()

	now := store.now()
	for id, entry := range store.jobMap {
		if now.After(entry.expiresAt) {
			delete(store.jobMap, id)
		}
	}
	store.jobMap[job.Id] = storedJob{job: job, expiresAt: now.Add(store.ttl)}
	inMemLogger.FromContext(ctx).Debug("Saved job to store", "jobId", job.Id, "status", job.Status)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	store.jobMutex.RLock()
	defer store.jobMutex.RUnlock()
	entry, found := store.jobMap[jobId]
	if found && store.now().After(entry.expiresAt) {
		found = false
	}
	inMemLogger.FromContext(ctx).Debug("Job lookup", "jobId", jobId, "found", found)
	if !found {
		return jobModel.Job{}, false
	}
	return entry.job, true
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	delete(store.jobMap, jobID)
}
