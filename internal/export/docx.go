package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Calibri"
	fontSize  = 11
	textColor = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*•]\s+(.+)$`)
)

// SummaryToDocx renders a markdown summary as a Word document. Headings and
// **bold** spans keep their emphasis; bullets become "• " paragraphs.
func SummaryToDocx(title string, result summaryModel.Result) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("docx: new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addStyledRun(doc.AddParagraph(""), metaLine(result), false, 9)

	for _, line := range strings.Split(result.Summary, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		addRichText(doc.AddParagraph(""), trimmed)
	}

	return render(doc)
}

// render goes through a temp file; godocx only saves by path.
func render(doc *docx.RootDoc) ([]byte, error) {
	dir, err := os.MkdirTemp("", "summary-docx-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "summary.docx")
	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("docx: save: %w", err)
	}
	return os.ReadFile(path)
}

func metaLine(result summaryModel.Result) string {
	label := "General document"
	if result.Label == summaryModel.LegalDocument {
		label = "Legal document"
	}
	return fmt.Sprintf("%s · %s summary · %s", label, result.Depth, result.Language)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 15
	case 2:
		return 14
	case 3:
		return 13
	default:
		return 12
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
