package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"3f0c7a8e-5d1b-4c1e-9d1a-0b6c3e2f9a11"`
	Document  string            `json:"document,omitempty" example:"lease.pdf"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Kind    string `json:"kind,omitempty" example:"validation"`
	Message string `json:"message" example:"⚠️ Please upload a file or enter some text."`
	Retry   bool   `json:"can_retry" example:"false"`
}

type SummaryResponse struct {
	Label    string `json:"label" example:"LegalDocument"`
	Depth    string `json:"summary_type" example:"short"`
	Language string `json:"language" example:"English"`
	Summary  string `json:"summary" example:"**Acme Ltd** leases the premises to **Beta LLP**..."`
	Cached   bool   `json:"cached" example:"false"`
}

type Result struct {
	Status  string           `json:"status" example:"COMPLETE"`
	Step    string           `json:"step,omitempty" example:"Summarize"`
	Summary *SummaryResponse `json:"summary,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type HealthResponse struct {
	Status       string            `json:"status" example:"ok"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// requests---------------------

// SummaryForm holds the non-file fields of a summary submission.
type SummaryForm struct {
	Text        string `form:"text"`
	SummaryType string `form:"summary_type" validate:"omitempty,oneof=short detailed"`
	Language    string `form:"language" validate:"omitempty,max=64,excludesall=<>{}"`
}
