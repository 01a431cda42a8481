package summary

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/metrics"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

// NoSummaryMessage replaces an empty model answer.
const NoSummaryMessage = "Could not generate a summary."

// Service is what the handlers, the worker pool and the MCP tool call.
// The model clients and the cache stay behind it.
type Service interface {
	Summarize(ctx context.Context, req summaryModel.SummaryRequest) (summaryModel.Result, error)
	ProcessJob(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	classifier llm.Provider
	summarizer llm.Provider
	cache      summaryModel.SummaryCache
	maxChars   int
	logger     *logger_i.Logger
}

// NewService wires the two model calls. cache may be nil; maxChars <= 0
// disables the length guard.
func NewService(classifier llm.Provider, summarizer llm.Provider, cache summaryModel.SummaryCache, maxChars int) Service {
	return &service{
		classifier: classifier,
		summarizer: summarizer,
		cache:      cache,
		maxChars:   maxChars,
		logger:     logger_i.NewLogger("summary_service"),
	}
}

func (s *service) Summarize(ctx context.Context, req summaryModel.SummaryRequest) (summaryModel.Result, error) {
	log := s.logger.FromContext(ctx)
	return s.run(ctx, req, func(step jobModel.InternalStatus) {
		log.Debug("Summarize", "Current Status", step)
	})
}

func (s *service) ProcessJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.FromContext(ctx).With("JobId", job.Id)

	processContext, cancel := context.WithTimeout(ctx, config.JobTimeout)
	defer cancel()

	req := summaryModel.SummaryRequest{
		Document: documentFromJob(job),
		Depth:    job.JobPayload.Depth,
		Language: job.JobPayload.Language,
	}
	result, err := s.run(processContext, req, func(step jobModel.InternalStatus) {
		job = logOutput(job, step, log)
	})

	//the text is only needed until the model has seen it
	job.JobPayload.DocumentText = ""
	if err != nil {
		return s.jobError(job, err, log)
	}
	return returnOutput(job, result)
}

func (s *service) run(ctx context.Context, req summaryModel.SummaryRequest, step func(jobModel.InternalStatus)) (summaryModel.Result, error) {
	depth := summaryModel.ParseDepth(string(req.Depth))
	language := summaryModel.NormalizeLanguage(req.Language)
	text := req.Document.Text

	step(jobModel.SummaryInit)
	if err := CheckText(text, s.maxChars); err != nil {
		metrics.CountSummary(string(depth), string(summaryModel.KindValidation))
		return summaryModel.Result{}, err
	}

	key := CacheKey(depth, language, text)
	if cached, found := s.executeCacheCheckStep(ctx, step, key); found {
		cached.Cached = true
		metrics.CountSummary(string(depth), "cached")
		return cached, nil
	}

	label, err := s.executeClassifyStep(ctx, step, text)
	if err != nil {
		metrics.CountSummary(string(depth), string(summaryModel.KindClassify))
		return summaryModel.Result{}, err
	}

	step(jobModel.ComposePrompt)
	prompt := Compose(label, depth, language, text)

	answer, err := s.executeSummarizeStep(ctx, step, prompt)
	if err != nil {
		metrics.CountSummary(string(depth), string(summaryModel.KindSummarization))
		return summaryModel.Result{}, err
	}

	result := summaryModel.Result{
		Label:    label,
		Depth:    depth,
		Language: language,
		Summary:  answer,
	}
	if strings.TrimSpace(answer) == "" {
		result.Summary = NoSummaryMessage
	} else {
		s.executeCacheSaveStep(ctx, step, key, result)
	}

	step(jobModel.Complete)
	metrics.CountSummary(string(depth), "ok")
	return result, nil
}

// CheckText rejects text that must never reach a model: empty or whitespace
// only, or longer than maxChars characters when maxChars > 0.
func CheckText(text string, maxChars int) error {
	if strings.TrimSpace(text) == "" {
		return &summaryModel.ValidationError{Err: summaryModel.ErrEmptyDocument}
	}
	if maxChars > 0 && utf8.RuneCountInString(text) > maxChars {
		return &summaryModel.ValidationError{Err: summaryModel.ErrDocumentTooLong, Limit: maxChars}
	}
	return nil
}

func (s *service) executeCacheCheckStep(ctx context.Context, step func(jobModel.InternalStatus), key string) (summaryModel.Result, bool) {
	if s.cache == nil {
		return summaryModel.Result{}, false
	}
	step(jobModel.CacheCall)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	result, found := s.cache.Get(ctx, key)
	metrics.CountCacheLookup(found)
	return result, found
}

func (s *service) executeClassifyStep(ctx context.Context, step func(jobModel.InternalStatus), text string) (summaryModel.Label, error) {
	step(jobModel.ClassifyCall)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_classify", time.Since(start)) }()

	label, err := Classify(ctx, s.classifier, text)
	if err != nil {
		return "", err
	}
	metrics.CountLabel(string(label))
	return label, nil
}

func (s *service) executeSummarizeStep(ctx context.Context, step func(jobModel.InternalStatus), prompt string) (string, error) {
	step(jobModel.SummarizeCall)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_summarize", time.Since(start)) }()

	answer, err := s.summarizer.Generate(ctx, prompt)
	if err != nil {
		return "", &summaryModel.SummarizationError{Err: err}
	}
	return answer, nil
}

func (s *service) executeCacheSaveStep(ctx context.Context, step func(jobModel.InternalStatus), key string, result summaryModel.Result) {
	if s.cache == nil {
		return
	}
	step(jobModel.StoreJobStatus)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.FromContext(ctx).Warn("Failed to save summary to cache", "error", err)
	}
}
