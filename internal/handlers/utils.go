package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/adapter"
	"github.com/akolanti/DocSummaryAPI/internal/api"
	"github.com/akolanti/DocSummaryAPI/internal/document"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/go-playground/validator/v10"
)

var logRH = logger_i.NewLogger("response_writer")

type submission struct {
	input document.Input
	form  api.SummaryForm
	file  multipart.File
	req   *http.Request
}

func (s submission) cleanup() {
	if s.file != nil {
		_ = s.file.Close()
	}
	if s.req != nil && s.req.MultipartForm != nil {
		_ = s.req.MultipartForm.RemoveAll()
	}
}

// readSubmission parses the multipart (or urlencoded) form shared by the
// HTML page and the JSON API. A missing file is not an error.
func (h *Handler) readSubmission(w http.ResponseWriter, r *http.Request) (submission, error) {
	sub := submission{req: r}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return sub, &summaryModel.ValidationError{Err: summaryModel.ErrUploadTooLarge, Limit: int(h.maxUploadSize)}
		}
		return sub, &summaryModel.ValidationError{Err: err}
	}

	sub.form = api.SummaryForm{
		Text:        r.FormValue("text"),
		SummaryType: strings.ToLower(strings.TrimSpace(r.FormValue("summary_type"))),
		Language:    strings.TrimSpace(r.FormValue("language")),
	}
	sub.input.Text = sub.form.Text

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return sub, &summaryModel.ValidationError{Err: err}
	default:
		sub.file = file
		sub.input.File = file
		sub.input.FileName = header.Filename
	}
	return sub, nil
}

// validationMessage names the offending form fields.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "invalid request"
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return "invalid field: " + strings.Join(fields, ", ")
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// the status line is already out
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func writeSummaryError(w http.ResponseWriter, err error) {
	writeJsonResponse(w, summaryModel.HTTPStatus(err), adapter.FromError(err))
}
