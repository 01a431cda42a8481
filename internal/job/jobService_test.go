package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

type mockJobStore struct {
	mu      sync.Mutex
	jobs    map[string]jobModel.Job
	deleted []string
}

func (m *mockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *mockJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.Id] = job
	return nil
}

func (m *mockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
	m.deleted = append(m.deleted, jobID)
}

func newTestService(buffer int) (*Service, *mockJobStore) {
	store := &mockJobStore{jobs: map[string]jobModel.Job{}}
	return InitJobService(ServiceConfig{
		JobChannel:        make(chan jobModel.Job, buffer),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store,
	}), store
}

func TestCreateJob(t *testing.T) {
	svc, store := newTestService(1)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-1")
	doc := commonModels.Document{Name: "contract.pdf", Text: "This Agreement is made between..."}

	stored, err := svc.CreateJob(ctx, doc, summaryModel.Detailed, "Spanish")
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	if stored.Status != jobModel.JobStatusQueued || stored.TraceId != "trace-1" {
		t.Errorf("unexpected job %+v", stored)
	}
	if stored.JobPayload.DocumentText != "" {
		t.Errorf("returned job must not carry the document text")
	}

	saved, found := store.GetJob(ctx, stored.Id)
	if !found || saved.JobPayload.DocumentText != "" {
		t.Errorf("stored job got %+v, found=%v", saved, found)
	}

	queued := <-svc.JobChannel
	if queued.Id != stored.Id || queued.JobPayload.DocumentText != doc.Text {
		t.Errorf("queued job should carry the text, got %+v", queued)
	}
	if queued.JobPayload.Depth != summaryModel.Detailed || queued.JobPayload.Language != "Spanish" {
		t.Errorf("queued payload got %+v", queued.JobPayload)
	}
}

func TestCreateJob_FullBufferHonoursContext(t *testing.T) {
	svc, store := newTestService(1)
	doc := commonModels.Document{Text: "x"}

	if _, err := svc.CreateJob(context.Background(), doc, summaryModel.Short, "English"); err != nil {
		t.Fatalf("first CreateJob failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.CreateJob(ctx, doc, summaryModel.Short, "English")
	if err == nil {
		t.Fatal("expected an error while the buffer is full")
	}
	if len(store.deleted) != 1 {
		t.Errorf("abandoned job should be removed from the store, deleted=%v", store.deleted)
	}
}

func TestCreateJob_SignalsDispatcher(t *testing.T) {
	svc, _ := newTestService(int(config.RequestsPerNewWorkerCount))
	doc := commonModels.Document{Text: "x"}

	for i := int64(0); i < config.RequestsPerNewWorkerCount-1; i++ {
		if _, err := svc.CreateJob(context.Background(), doc, summaryModel.Short, "English"); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-svc.DispatcherChannel:
		t.Fatal("dispatcher signalled too early")
	default:
	}

	if _, err := svc.CreateJob(context.Background(), doc, summaryModel.Short, "English"); err != nil {
		t.Fatal(err)
	}
	select {
	case <-svc.DispatcherChannel:
	default:
		t.Fatal("dispatcher not signalled")
	}
}

func TestGetJob_EmptyId(t *testing.T) {
	svc, _ := newTestService(1)
	if _, found := svc.GetJob(context.Background(), ""); found {
		t.Error("empty id must not be found")
	}
}
