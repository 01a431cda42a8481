package worker

import (
	"context"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/metrics"
)

func (p *Pool) executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	log := p.logger.FromContext(ctx).With("jobId", job.Id)
	log.Debug("Processing job")

	p.jobService.SaveJobState(ctx, job, jobModel.JobStatusRunning)

	job = p.summaryService.ProcessJob(ctx, job)

	p.jobService.SaveJobState(ctx, job, job.Status)
	log.Info("Job finished", "status", job.Status, "elapsed", time.Since(start).String())
}

// removeWorker runs after the caller has given up its slot in currentWorkerCount.
func (p *Pool) removeWorker(reason string) {
	metrics.DecrementActiveWorkerCount()
	p.logger.Info("Removed worker", "reason", reason, "workerCount", p.WorkerCount())
	p.workerWaitGroup.Done()
}
