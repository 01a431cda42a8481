package summary

import (
	"context"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
)

const (
	legalMarker   = "Legal Document"
	generalMarker = "General Document"
)

const classifyInstruction = "Analyze the following text and decide whether it is a legal document " +
	"(for example a contract, agreement, deed, court judgment, order, petition, affidavit, statute or legal notice) " +
	"or a general document. Respond with exactly one of these two phrases and nothing else: \"" +
	legalMarker + "\" or \"" + generalMarker + "\".\n\n--- Text ---\n"

func classificationPrompt(text string) string {
	return classifyInstruction + text
}

// LabelFromAnswer maps a raw model answer to a label. The answer is matched
// by substring, so anything that does not mention "Legal Document" (including
// an empty or off-topic answer) is GeneralDocument. This is a known accuracy
// limit of the heuristic.
func LabelFromAnswer(answer string) summaryModel.Label {
	if strings.Contains(answer, legalMarker) {
		return summaryModel.LegalDocument
	}
	return summaryModel.GeneralDocument
}

// Classify makes one model call. Failures are returned unretried.
func Classify(ctx context.Context, provider llm.Provider, text string) (summaryModel.Label, error) {
	answer, err := provider.Generate(ctx, classificationPrompt(text))
	if err != nil {
		return "", &summaryModel.ClassificationError{Err: err}
	}
	return LabelFromAnswer(answer), nil
}
