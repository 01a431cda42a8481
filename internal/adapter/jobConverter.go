package adapter

import (
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/api"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

const SummariesPath = "/api/v1/summaries"

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: SummariesPath + "/" + id,
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Kind:    job.Error.Kind,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:  string(job.Status),
		Step:    string(job.CurrentStep),
		Summary: ToSummaryFromPayload(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		Document:  job.JobPayload.DocumentName,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToSummaryFromPayload(payload jobModel.JobPayload) *api.SummaryResponse {
	if payload.Summary == "" {
		return nil
	}
	return ToSummaryResponse(ToResult(payload))
}

func ToResult(payload jobModel.JobPayload) summaryModel.Result {
	return summaryModel.Result{
		Label:    payload.Label,
		Depth:    payload.Depth,
		Language: payload.Language,
		Summary:  payload.Summary,
		Cached:   payload.Cached,
	}
}

func ToSummaryResponse(result summaryModel.Result) *api.SummaryResponse {
	return &api.SummaryResponse{
		Label:    string(result.Label),
		Depth:    string(result.Depth),
		Language: result.Language,
		Summary:  result.Summary,
		Cached:   result.Cached,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}

// FromError is BadRequest for the typed summary errors.
func FromError(err error) api.JobResponse {
	resp := BadRequest("", summaryModel.UserMessage(err), summaryModel.HTTPStatus(err))
	resp.Error.Kind = string(summaryModel.Kind(err))
	return resp
}
