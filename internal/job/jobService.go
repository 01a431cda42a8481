package job

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/adapter/utils"
	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/metrics"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

type Service struct {
	JobChannel        chan jobModel.Job
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	requestCount      int64
	logger            *logger_i.Logger
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		logger:            logger_i.NewLogger("job_service"),
	}
}

// CreateJob stores a QUEUED job and hands it to the worker pool. The send
// blocks while the buffer is full so a burst cannot overwhelm the pool; it
// gives up when ctx ends.
func (s *Service) CreateJob(ctx context.Context, doc commonModels.Document, depth summaryModel.Depth, language string) (jobModel.Job, error) {
	newJob := jobModel.Job{
		Id:          utils.GetNewUUID(),
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.SummaryInit,
		JobPayload: jobModel.JobPayload{
			DocumentName: doc.Name,
			DocumentText: doc.Text,
			Depth:        depth,
			Language:     language,
		},
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		newJob.TraceId = trace
	}
	log := s.logger.FromContext(ctx).With("jobId", newJob.Id)

	//the stored copy never carries the document text
	stored := newJob
	stored.JobPayload.DocumentText = ""
	if err := s.JobStore.SaveJob(ctx, stored); err != nil {
		log.Error("Failed to save queued job", "error", err)
		return jobModel.Job{}, err
	}

	select {
	case s.JobChannel <- newJob:
	case <-ctx.Done():
		s.JobStore.DeleteJob(context.WithoutCancel(ctx), newJob.Id)
		return jobModel.Job{}, ctx.Err()
	}
	metrics.IncrementJobsInQueue()
	log.Info("Created new job", "document", doc.Name)

	//a new worker is requested every N jobs; idle workers retire on their own
	accurateCount := atomic.AddInt64(&s.requestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		s.signalDispatcher()
	}
	return stored, nil
}

func (s *Service) signalDispatcher() {
	select {
	case s.DispatcherChannel <- true:
		metrics.StartDispatcherSignalCount()
	default:
		//a signal is already pending
	}
}

func (s *Service) GetJob(ctx context.Context, id string) (jobModel.Job, bool) {
	if id == "" {
		return jobModel.Job{}, false
	}
	return s.JobStore.GetJob(ctx, id)
}

func (s *Service) SaveJobState(ctx context.Context, job jobModel.Job, status jobModel.JobStatus) {
	job.Status = status
	job.JobPayload.DocumentText = ""
	if err := s.JobStore.SaveJob(ctx, job); err != nil {
		s.logger.FromContext(ctx).Error("Failed to update job state", "jobId", job.Id, "error", err)
	}
}

// AbandonJob records a queued job that will never run. The client may
// resubmit it.
func (s *Service) AbandonJob(ctx context.Context, job jobModel.Job, reason string) {
	job.Error = jobModel.JobError{
		Code:    http.StatusServiceUnavailable,
		Kind:    "shutdown",
		Message: reason,
		Retry:   true,
	}
	job.CurrentStep = jobModel.Error
	job.EndTime = time.Now()
	s.SaveJobState(ctx, job, jobModel.JobStatusError)
	s.logger.FromContext(ctx).Warn("Abandoned queued job", "jobId", job.Id, "reason", reason)
}
