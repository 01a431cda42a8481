package document

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

func extractTXT(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// extractPDF joins the text of every page that parses. Pages that fail or
// time out are skipped, so a scanned PDF yields an empty string, not an error.
func (e *FileExtractor) extractPDF(path string) (string, error) {
	e.logger.Debug("extractPDF", "attempting extraction", path)
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat pdf: %w", err)
	}

	f, err := pdf.NewReader(file, info.Size())
	if err != nil {
		e.logger.Error("failed opening of pdf file", "error", err)
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var parts []string
	numPages := f.NumPage()
	e.logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			e.logger.Debug("extractPDF", "null page", i)
			continue
		}

		content, err := e.protectExtract(page)
		if err != nil {
			e.logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		if content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func extractDOCX(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to extract docx: %w", err)
	}
	return text, nil
}

func (e *FileExtractor) protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		//malformed content streams can panic inside the parser
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("pdf parser panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errors.New("page extraction timeout")
	}
}
