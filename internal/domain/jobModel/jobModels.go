package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	SummaryInit    InternalStatus = "Init"
	CacheCall      InternalStatus = "CacheCall"
	ClassifyCall   InternalStatus = "Classify"
	ComposePrompt  InternalStatus = "ComposePrompt"
	SummarizeCall  InternalStatus = "Summarize"
	Error          InternalStatus = "Error"
	Complete       InternalStatus = "Complete"
	StoreJobStatus InternalStatus = "Store"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentName string             `json:"document_name,omitempty"`
	DocumentText string             `json:"document_text,omitempty"`
	Depth        summaryModel.Depth `json:"depth"`
	Language     string             `json:"language"`

	Label   summaryModel.Label `json:"label,omitempty"`
	Summary string             `json:"summary,omitempty"`
	Cached  bool               `json:"cached,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
