package handlers

import (
	"fmt"
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/adapter"
	"github.com/akolanti/DocSummaryAPI/internal/adapter/utils"
	"github.com/akolanti/DocSummaryAPI/internal/api"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/export"
	"github.com/akolanti/DocSummaryAPI/internal/summary"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// PostSummaryHandler godoc
// @Summary      Queue a document for summarization
// @Description  Accepts a file or pasted text, extracts and validates it, then queues a summary job and returns its id.
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file          formData  file    false  "A .txt, .pdf or .docx document; wins over text"
// @Param        text          formData  string  false  "Pasted document text"
// @Param        summary_type  formData  string  false  "short (default) or detailed"
// @Param        language      formData  string  false  "Language of the summary, default English"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "No content, empty text or invalid field"
// @Failure      413  {object}  api.JobResponse      "Document or upload too large"
// @Failure      415  {object}  api.JobResponse      "Unsupported file type"
// @Failure      422  {object}  api.JobResponse      "Text could not be extracted"
// @Router       /api/v1/summaries [post]
func (h *Handler) PostSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.FromContext(ctx)

	sub, err := h.readSubmission(w, r)
	defer sub.cleanup()
	if err != nil {
		writeSummaryError(w, err)
		return
	}
	if err := h.validate.Struct(sub.form); err != nil {
		log.Warn("Bad summary request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", validationMessage(err))
		return
	}

	doc, err := h.loader.Load(ctx, sub.input)
	if err != nil {
		writeSummaryError(w, err)
		return
	}
	if err := summary.CheckText(doc.Text, h.maxDocumentLen); err != nil {
		writeSummaryError(w, err)
		return
	}

	created, err := h.jobService.CreateJob(ctx, doc,
		summaryModel.ParseDepth(sub.form.SummaryType),
		summaryModel.NormalizeLanguage(sub.form.Language))
	if err != nil {
		log.Error("Could not queue summary job", "error", err)
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Could not queue the job, try again later")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(created.Id))
}

// GetStatusHandler godoc
// @Summary      Get summary job status
// @Description  Returns the state of a summary job and, once complete, the summary.
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "Current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /api/v1/summaries/{id} [get]
func (h *Handler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := h.jobService.GetJob(r.Context(), idString)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// GetSummaryDocxHandler godoc
// @Summary      Download a summary as a Word document
// @Tags         Summaries
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Failure      409  {object}  api.JobResponse  "Job has no summary yet"
// @Router       /api/v1/summaries/{id}/docx [get]
func (h *Handler) GetSummaryDocxHandler(w http.ResponseWriter, r *http.Request) {
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := h.jobService.GetJob(r.Context(), idString)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	if result.Status != jobModel.JobStatusComplete || result.JobPayload.Summary == "" {
		WriteErrorResponse(w, http.StatusConflict, idString, "Summary is not ready")
		return
	}

	title := result.JobPayload.DocumentName
	if title == "" {
		title = "Summary"
	}
	data, err := export.SummaryToDocx(title, adapter.ToResult(result.JobPayload))
	if err != nil {
		h.logger.FromContext(r.Context()).Error("docx export failed", "jobId", idString, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, idString, "Could not build the document")
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%s.docx"`, idString))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("docx write failed", "jobId", idString, "error", err)
	}
}

// HealthHandler godoc
// @Summary      Service health
// @Tags         Operations
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Failure      503  {object}  api.HealthResponse
// @Router       /healthz [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{Status: "ok", Dependencies: map[string]string{}}
	code := http.StatusOK
	for name, check := range h.healthChecks {
		if err := check(r.Context()); err != nil {
			resp.Dependencies[name] = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}
	writeJsonResponse(w, code, resp)
}
