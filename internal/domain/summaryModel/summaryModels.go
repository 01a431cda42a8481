package summaryModel

import (
	"context"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
)

type Label string

const (
	LegalDocument   Label = "LegalDocument"
	GeneralDocument Label = "GeneralDocument"
)

type Depth string

const (
	Short    Depth = "short"
	Detailed Depth = "detailed"
)

const DefaultLanguage = "English"

// ParseDepth maps the summary_type form value to a Depth. Anything other
// than "detailed" is a short summary.
func ParseDepth(s string) Depth {
	if strings.EqualFold(strings.TrimSpace(s), string(Detailed)) {
		return Detailed
	}
	return Short
}

func NormalizeLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage
	}
	return s
}

type SummaryRequest struct {
	Document commonModels.Document
	Depth    Depth
	Language string
}

type Result struct {
	Label    Label  `json:"label"`
	Depth    Depth  `json:"depth"`
	Language string `json:"language"`
	Summary  string `json:"summary"`
	Cached   bool   `json:"cached"`
}

type SummaryCache interface {
	Get(ctx context.Context, key string) (Result, bool)
	Set(ctx context.Context, key string, result Result) error
}
