package summary

import (
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
)

const (
	legalPersona   = "You are an expert legal analyst. Please summarize the following legal document. "
	generalPersona = "You are a helpful assistant. Please summarize the following document. "

	detailedStyle = "Create a detailed, legally precise summary suitable for a lawyer, including key arguments, " +
		"precedents, and legal reasoning. Use bold markdown (**text**) to highlight important legal terms, parties, and dates. " +
		"If the document concerns India, explain it under the Indian legal framework. " +
		"After the summary, add a \"Key Highlights\" section with 3-4 bullet points. " +
		"Finally, add a section titled \"Legal Sections and Articles Referenced\" that lists every legal section, " +
		"article, or act cited in the document, each with a short explanation. "

	shortStyle = "Create a simple, easy-to-understand summary suitable for a citizen, written as one paragraph in plain language. " +
		"Use bold markdown (**text**) to highlight the parties involved and the outcome. " +
		"After the summary, add a \"Key Takeaways\" section with 2-3 bullet points. "

	noGlossary       = "Do not include a separate glossary or definitions section. "
	languageTemplate = "The entire response, including every heading and section title, must be written in %LANG%. " +
		"Only proper nouns may remain untranslated."

	documentHeader = "\n\n--- Document Content ---\n"
)

func personaClause(label summaryModel.Label) string {
	if label == summaryModel.LegalDocument {
		return legalPersona
	}
	return generalPersona
}

func styleClause(depth summaryModel.Depth) string {
	if depth == summaryModel.Detailed {
		return detailedStyle
	}
	return shortStyle
}

func languageClause(language string) string {
	return strings.Replace(languageTemplate, "%LANG%", language, 1)
}

// Compose builds the summarization prompt. It has no side effects: the same
// arguments always give the same string. The document text is appended
// verbatim as the last section.
func Compose(label summaryModel.Label, depth summaryModel.Depth, language string, text string) string {
	var b strings.Builder
	b.Grow(len(detailedStyle) + len(text) + 512)
	b.WriteString(personaClause(label))
	b.WriteString(styleClause(depth))
	b.WriteString(noGlossary)
	b.WriteString(languageClause(language))
	b.WriteString(documentHeader)
	b.WriteString(text)
	return b.String()
}
