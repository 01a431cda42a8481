package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/job"
	"github.com/akolanti/DocSummaryAPI/internal/metrics"
	"github.com/akolanti/DocSummaryAPI/internal/summary"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

type PoolConfig struct {
	JobService        *job.Service
	SummaryService    summary.Service
	MinWorkerCount    int64
	MaxWorkerCount    int64
	IdleWorkerTimeout time.Duration
}

// Pool grows by one worker per dispatcher signal up to MaxWorkerCount.
// Workers idle for IdleWorkerTimeout retire while more than MinWorkerCount
// are running.
type Pool struct {
	jobService         *job.Service
	summaryService     summary.Service
	stopWorkerChannel  chan struct{}
	stopOnce           sync.Once
	workerWaitGroup    sync.WaitGroup
	currentWorkerCount int64
	minWorkerCount     int64
	maxWorkerCount     int64
	idleTimeout        time.Duration
	logger             *logger_i.Logger
}

func NewPool(cfg PoolConfig) *Pool {
	p := &Pool{
		jobService:        cfg.JobService,
		summaryService:    cfg.SummaryService,
		stopWorkerChannel: make(chan struct{}),
		minWorkerCount:    cfg.MinWorkerCount,
		maxWorkerCount:    cfg.MaxWorkerCount,
		idleTimeout:       cfg.IdleWorkerTimeout,
		logger:            logger_i.NewLogger("worker_pool"),
	}
	if p.minWorkerCount < 1 {
		p.minWorkerCount = config.MinWorkerCount
	}
	if p.maxWorkerCount < p.minWorkerCount {
		p.maxWorkerCount = config.MaxWorkerCount
	}
	if p.idleTimeout <= 0 {
		p.idleTimeout = config.IdleWorkerTimeout
	}
	return p
}

func (p *Pool) Start() {
	p.logger.Info("Initializing worker pool", "min", p.minWorkerCount, "max", p.maxWorkerCount)
	for i := int64(0); i < p.minWorkerCount; i++ {
		p.createWorker()
	}
	//the dispatcher holds a count so its createWorker calls never race Wait
	p.workerWaitGroup.Add(1)
	go p.dispatcher()
}

// Stop retires every worker once its current job is done and waits for them.
// Jobs still buffered after that are marked as failed with a retry hint.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopWorkerChannel)
	})
	p.workerWaitGroup.Wait()
	p.drainQueue()
	p.logger.Info("Worker pool stopped")
}

func (p *Pool) drainQueue() {
	for {
		select {
		case queued := <-p.jobService.JobChannel:
			metrics.DecrementJobsInQueue()
			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, queued.TraceId)
			p.jobService.AbandonJob(ctx, queued, "The service shut down before this job started. Please resubmit it.")
		default:
			return
		}
	}
}

func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.currentWorkerCount)
}

func (p *Pool) dispatcher() {
	defer p.workerWaitGroup.Done()
	p.logger.Info("Dispatcher started")
	for {
		select {
		case <-p.jobService.DispatcherChannel:
			//select picks at random when stop is also ready
			if p.stopping() {
				return
			}
			if atomic.LoadInt64(&p.currentWorkerCount) < p.maxWorkerCount {
				p.logger.Info("Creating new worker", "workerCount", p.WorkerCount())
				p.createWorker()
			}
		case <-p.stopWorkerChannel:
			return
		}
	}
}

func (p *Pool) stopping() bool {
	select {
	case <-p.stopWorkerChannel:
		return true
	default:
		return false
	}
}

func (p *Pool) createWorker() {
	p.workerWaitGroup.Add(1)
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
}

func (p *Pool) worker() {
	idle := time.NewTimer(p.idleTimeout)
	defer idle.Stop()
	for {
		select {
		case currentJob := <-p.jobService.JobChannel:
			metrics.DecrementJobsInQueue()
			p.executeJob(currentJob)
			idle.Reset(p.idleTimeout)

		case <-p.stopWorkerChannel:
			atomic.AddInt64(&p.currentWorkerCount, -1)
			p.removeWorker("Stop worker signal received")
			return

		case <-idle.C:
			if p.tryRetire() {
				p.removeWorker("Idle worker timeout")
				return
			}
			idle.Reset(p.idleTimeout)
		}
	}
}

// tryRetire claims one slot above the minimum so two idle workers cannot
// both retire past it.
func (p *Pool) tryRetire() bool {
	for {
		current := atomic.LoadInt64(&p.currentWorkerCount)
		if current <= p.minWorkerCount {
			return false
		}
		if atomic.CompareAndSwapInt64(&p.currentWorkerCount, current, current-1) {
			return true
		}
	}
}
