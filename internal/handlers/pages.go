package handlers

import (
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

var languages = []string{
	"English", "Hindi", "Bengali", "Tamil", "Telugu", "Marathi", "Gujarati", "Kannada",
	"Malayalam", "Punjabi", "Urdu", "Spanish", "French", "German",
}

type pageData struct {
	Title     string
	Languages []string
	Summary   string
	Result    *summaryModel.Result
	LabelText string
}

func (h *Handler) LandingHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "index.html", pageData{Title: "Home"})
}

func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "dashboard.html", pageData{Title: "Dashboard"})
}

func (h *Handler) UploadPageHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "upload.html", pageData{Title: "Summarize", Languages: languages})
}

// SummarizeHandler serves the HTML form. It always answers 200; failures are
// shown as a message in place of the summary.
func (h *Handler) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.FromContext(r.Context())

	sub, err := h.readSubmission(w, r)
	defer sub.cleanup()
	if err != nil {
		h.renderResult(w, nil, err)
		return
	}

	doc, err := h.loader.Load(r.Context(), sub.input)
	if err != nil {
		h.renderResult(w, nil, err)
		return
	}

	result, err := h.summaryService.Summarize(r.Context(), summaryModel.SummaryRequest{
		Document: doc,
		Depth:    summaryModel.ParseDepth(sub.form.SummaryType),
		Language: summaryModel.NormalizeLanguage(sub.form.Language),
	})
	if err != nil {
		log.Warn("summarize failed", "kind", summaryModel.Kind(err), "error", err)
		h.renderResult(w, nil, err)
		return
	}
	h.renderResult(w, &result, nil)
}

// RejectPage shows a request the middleware turned away as a result page, so
// the form keeps answering 200.
func (h *Handler) RejectPage(w http.ResponseWriter, r *http.Request, code int, message string) {
	data := pageData{Title: "Summary", Summary: "⚠️ " + message}
	if code == http.StatusTooManyRequests {
		data.Summary = summaryModel.MsgRateLimited
	}
	h.renderPage(w, "result.html", data)
}

func (h *Handler) renderResult(w http.ResponseWriter, result *summaryModel.Result, err error) {
	data := pageData{Title: "Summary", Result: result}
	if err != nil {
		data.Summary = summaryModel.UserMessage(err)
	} else {
		data.Summary = result.Summary
		data.LabelText = labelText(result.Label)
	}
	h.renderPage(w, "result.html", data)
}

func (h *Handler) renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Error rendering page", "page", name, "error", err)
	}
}

func labelText(label summaryModel.Label) string {
	if label == summaryModel.LegalDocument {
		return "Legal document"
	}
	return "General document"
}
