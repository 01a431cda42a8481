package handlers

import (
	"context"
	"embed"
	"html/template"
	"reflect"

	"github.com/akolanti/DocSummaryAPI/internal/document"
	"github.com/akolanti/DocSummaryAPI/internal/job"
	"github.com/akolanti/DocSummaryAPI/internal/summary"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html
var templateFS embed.FS

// HealthCheck reports one dependency; a nil error means healthy.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Loader         *document.Loader
	SummaryService summary.Service
	JobService     *job.Service
	MaxUploadSize  int64
	MaxDocumentLen int
	HealthChecks   map[string]HealthCheck
}

type Handler struct {
	loader         *document.Loader
	summaryService summary.Service
	jobService     *job.Service
	maxUploadSize  int64
	maxDocumentLen int
	healthChecks   map[string]HealthCheck
	pages          *template.Template
	validate       *validator.Validate
	logger         *logger_i.Logger
}

func NewHandler(deps Deps) (*Handler, error) {
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("form"); name != "" {
			return name
		}
		return field.Name
	})

	return &Handler{
		loader:         deps.Loader,
		summaryService: deps.SummaryService,
		jobService:     deps.JobService,
		maxUploadSize:  deps.MaxUploadSize,
		maxDocumentLen: deps.MaxDocumentLen,
		healthChecks:   deps.HealthChecks,
		pages:          pages,
		validate:       validate,
		logger:         logger_i.NewLogger("handlers"),
	}, nil
}
