package summary

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

// CacheKey identifies a summary by everything that changes the model's answer.
func CacheKey(depth summaryModel.Depth, language string, text string) string {
	h := sha256.New()
	h.Write([]byte(depth))
	h.Write([]byte{'|'})
	h.Write([]byte(language))
	h.Write([]byte{'|'})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func documentFromJob(job jobModel.Job) commonModels.Document {
	return commonModels.Document{
		Name: job.JobPayload.DocumentName,
		Text: job.JobPayload.DocumentText,
	}
}

func returnOutput(job jobModel.Job, result summaryModel.Result) jobModel.Job {
	job.JobPayload.Label = result.Label
	job.JobPayload.Depth = result.Depth
	job.JobPayload.Language = result.Language
	job.JobPayload.Summary = result.Summary
	job.JobPayload.Cached = result.Cached
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	job.EndTime = time.Now()
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessJob", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, log *logger_i.Logger) jobModel.Job {
	kind := summaryModel.Kind(err)
	log.Error("summary job failed", "kind", kind, "error", err)

	job.Error = jobModel.JobError{
		Code:    summaryModel.HTTPStatus(err),
		Kind:    string(kind),
		Message: summaryModel.UserMessage(err),
		Retry:   kind == summaryModel.KindClassify || kind == summaryModel.KindSummarization,
	}
	job.CurrentStep = jobModel.Error
	job.Status = jobModel.JobStatusError
	job.EndTime = time.Now()
	return job
}
