package store

import (
	"context"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/data/redisStore"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

const jobKeyPrefix = "job:"

type RedisJobStore struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

// GetRedisJobStore returns nil when Redis is unreachable.
func GetRedisJobStore(ctx context.Context, opts redisStore.Options) *RedisJobStore {
	rs := redisStore.GetRedisStore(ctx, opts, config.RedisJobStore)
	if rs == nil {
		return nil
	}
	return NewRedisJobStore(rs)
}

func NewRedisJobStore(rs *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  rs,
		ttl:    config.RedisJobStoreTTL,
		logger: logger_i.NewLogger("job_store"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.FromContext(ctx).With("jobId", job.Id)
	if err := s.store.SetJSON(ctx, jobKeyPrefix+job.Id, job, s.ttl); err != nil {
		return err
	}
	log.Debug("Saved job to Redis", "status", job.Status)
	return nil
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	var job jobModel.Job
	log := s.logger.FromContext(ctx).With("jobId", jobId)
	found, err := s.store.GetJSON(ctx, jobKeyPrefix+jobId, &job)
	if err != nil {
		log.Error("Error reading job from Redis", "error", err)
		return jobModel.Job{}, false
	}
	log.Debug("Job lookup", "found", found)
	return job, found
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	err := s.store.Del(ctx, jobKeyPrefix+jobID)
	if err != nil {
		s.logger.Error("Error deleting job from Redis", "jobId", jobID, "error", err)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobID)
}
