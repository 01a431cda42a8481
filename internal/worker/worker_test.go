package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/job"
)

// MockSummaryService tracks which jobs were executed
type MockSummaryService struct {
	ProcessedCount int32
}

func (m *MockSummaryService) Summarize(ctx context.Context, req summaryModel.SummaryRequest) (summaryModel.Result, error) {
	return summaryModel.Result{Summary: "mocked"}, nil
}

func (m *MockSummaryService) ProcessJob(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	j.JobPayload.Summary = "summary of " + j.JobPayload.DocumentText
	j.Status = jobModel.JobStatusComplete
	j.CurrentStep = jobModel.Complete
	return j
}

type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]jobModel.Job
	// every status a job passed through, in order
	history map[string][]jobModel.JobStatus
}

func newMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: map[string]jobModel.Job{}, history: map[string][]jobModel.JobStatus{}}
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.Id] = j
	m.history[j.Id] = append(m.history[j.Id], j.Status)
	return nil
}

func (m *MockJobStore) statuses(id string) []jobModel.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]jobModel.JobStatus(nil), m.history[id]...)
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func newJobService(store jobModel.JobStore) *job.Service {
	return job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store,
	})
}

func TestWorkerPool_Flow(t *testing.T) {
	store := newMockJobStore()
	jobSvc := newJobService(store)
	mockSummary := &MockSummaryService{}

	pool := NewPool(PoolConfig{
		JobService:        jobSvc,
		SummaryService:    mockSummary,
		MinWorkerCount:    1,
		MaxWorkerCount:    3,
		IdleWorkerTimeout: time.Hour,
	})
	pool.Start()

	t.Run("Starts with the minimum", func(t *testing.T) {
		if got := pool.WorkerCount(); got != 1 {
			t.Errorf("Expected 1 worker, got %d", got)
		}
	})

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		eventually(t, func() bool { return pool.WorkerCount() == 2 }, "dispatcher did not add a worker")
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		doc := commonModels.Document{Name: "note.txt", Text: "hello"}
		queued, err := jobSvc.CreateJob(context.Background(), doc, summaryModel.Short, "English")
		if err != nil {
			t.Fatalf("CreateJob failed: %v", err)
		}

		eventually(t, func() bool {
			j, _ := store.GetJob(context.Background(), queued.Id)
			return j.Status == jobModel.JobStatusComplete
		}, "job was not completed")

		if atomic.LoadInt32(&mockSummary.ProcessedCount) != 1 {
			t.Errorf("Expected 1 job processed, got %d", mockSummary.ProcessedCount)
		}
		got := store.statuses(queued.Id)
		want := []jobModel.JobStatus{jobModel.JobStatusQueued, jobModel.JobStatusRunning, jobModel.JobStatusComplete}
		if len(got) != len(want) {
			t.Fatalf("status history got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("status history got %v, want %v", got, want)
			}
		}
		j, _ := store.GetJob(context.Background(), queued.Id)
		if j.JobPayload.DocumentText != "" {
			t.Errorf("document text must not be persisted")
		}
		if j.JobPayload.Summary != "summary of hello" {
			t.Errorf("summary got %q", j.JobPayload.Summary)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			pool.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Workers did not stop within timeout")
		}
		if got := pool.WorkerCount(); got != 0 {
			t.Errorf("Expected 0 workers after stop, got %d", got)
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	jobSvc := newJobService(newMockJobStore())
	pool := NewPool(PoolConfig{
		JobService:        jobSvc,
		SummaryService:    &MockSummaryService{},
		MinWorkerCount:    1,
		MaxWorkerCount:    3,
		IdleWorkerTimeout: 20 * time.Millisecond,
	})
	defer pool.Stop()

	//spawn above the minimum directly; the dispatcher is not needed here
	pool.createWorker()
	pool.createWorker()
	pool.createWorker()

	eventually(t, func() bool { return pool.WorkerCount() == 1 }, "idle workers did not retire down to the minimum")

	time.Sleep(80 * time.Millisecond)
	if got := pool.WorkerCount(); got != 1 {
		t.Errorf("Assertion Failed: pool must keep the minimum, got %d", got)
	}
}

// slowSummaryService holds each job long enough for the queue to back up.
type slowSummaryService struct {
	MockSummaryService
	delay time.Duration
}

func (s *slowSummaryService) ProcessJob(ctx context.Context, j jobModel.Job) jobModel.Job {
	time.Sleep(s.delay)
	return s.MockSummaryService.ProcessJob(ctx, j)
}

func TestPool_StopSettlesQueuedJobs(t *testing.T) {
	store := newMockJobStore()
	jobSvc := newJobService(store)
	pool := NewPool(PoolConfig{
		JobService:        jobSvc,
		SummaryService:    &slowSummaryService{delay: 50 * time.Millisecond},
		MinWorkerCount:    1,
		MaxWorkerCount:    1,
		IdleWorkerTimeout: time.Hour,
	})
	pool.Start()

	var ids []string
	for i := 0; i < 5; i++ {
		queued, err := jobSvc.CreateJob(context.Background(), commonModels.Document{Name: "note.txt", Text: "hello"}, summaryModel.Short, "English")
		if err != nil {
			t.Fatalf("CreateJob failed: %v", err)
		}
		ids = append(ids, queued.Id)
	}

	pool.Stop()

	if n := len(jobSvc.JobChannel); n != 0 {
		t.Errorf("Expected an empty queue after stop, %d jobs left", n)
	}
	var abandoned int
	for _, id := range ids {
		j, _ := store.GetJob(context.Background(), id)
		switch j.Status {
		case jobModel.JobStatusComplete:
		case jobModel.JobStatusError:
			abandoned++
			if !j.Error.Retry || j.Error.Message == "" {
				t.Errorf("job %s: abandoned job must carry a retryable error, got %+v", id, j.Error)
			}
			if j.CurrentStep != jobModel.Error {
				t.Errorf("job %s: step got %s", id, j.CurrentStep)
			}
		default:
			t.Errorf("job %s left in status %s", id, j.Status)
		}
	}
	if abandoned == 0 {
		t.Error("Expected some jobs to still be queued when the pool stopped")
	}
}

func TestPool_StopWithPendingDispatcherSignal(t *testing.T) {
	for i := 0; i < 50; i++ {
		jobSvc := newJobService(newMockJobStore())
		pool := NewPool(PoolConfig{
			JobService:        jobSvc,
			SummaryService:    &MockSummaryService{},
			MinWorkerCount:    1,
			MaxWorkerCount:    3,
			IdleWorkerTimeout: time.Hour,
		})
		pool.Start()

		jobSvc.DispatcherChannel <- true
		pool.Stop()

		if got := pool.WorkerCount(); got != 0 {
			t.Fatalf("run %d: expected 0 workers after stop, got %d", i, got)
		}
	}
}
