package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

// Extractor returns the plain text of a stored file. An unreadable file is an
// error; a readable file without a text layer is an empty string.
type Extractor interface {
	Extract(ctx context.Context, path string, docType commonModels.DocType) (string, error)
}

type FileExtractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewFileExtractor() *FileExtractor {
	return &FileExtractor{
		pageTimeout: config.PDFPageTimeout,
		logger:      logger_i.NewLogger("Extractor"),
	}
}

func (e *FileExtractor) Extract(ctx context.Context, path string, docType commonModels.DocType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch docType {
	case commonModels.TXT:
		return extractTXT(path)
	case commonModels.PDF:
		return e.extractPDF(path)
	case commonModels.DOCX:
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("unsupported content type: %s", docType)
	}
}

// Input is one submission: an optional uploaded file and optional pasted text.
type Input struct {
	FileName string
	File     io.Reader
	Text     string
}

func (in Input) HasFile() bool {
	return in.File != nil && in.FileName != ""
}

// Loader turns an Input into a Document. The file wins when both are given.
type Loader struct {
	extractor Extractor
	uploadDir string
	logger    *logger_i.Logger
}

func NewLoader(extractor Extractor, uploadDir string) *Loader {
	return &Loader{
		extractor: extractor,
		uploadDir: uploadDir,
		logger:    logger_i.NewLogger("DocumentLoader"),
	}
}

func (l *Loader) Load(ctx context.Context, in Input) (commonModels.Document, error) {
	log := l.logger.FromContext(ctx)

	if !in.HasFile() {
		if in.Text == "" {
			return commonModels.Document{}, &summaryModel.ValidationError{Err: summaryModel.ErrNoContent}
		}
		return commonModels.Document{Source: commonModels.SourceText, Text: in.Text}, nil
	}

	docType := DocTypeFromName(in.FileName)
	if docType == commonModels.ERR {
		log.Warn("rejected upload", "filename", in.FileName)
		return commonModels.Document{}, &summaryModel.ValidationError{Err: summaryModel.ErrUnsupportedType}
	}

	path, err := SaveUpload(l.uploadDir, in.FileName, in.File)
	if err != nil {
		return commonModels.Document{}, &summaryModel.ExtractionError{Name: in.FileName, Err: err}
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn("could not remove upload", "path", path, "error", err)
		}
	}()

	log.Debug("extracting document", "filename", in.FileName, "type", docType)
	text, err := l.extractor.Extract(ctx, path, docType)
	if err != nil {
		log.Error("extraction failed", "filename", in.FileName, "error", err)
		return commonModels.Document{}, &summaryModel.ExtractionError{Name: in.FileName, Err: err}
	}

	return commonModels.Document{
		Name:        SanitizeFilename(in.FileName),
		ContentType: docType,
		Source:      commonModels.SourceFile,
		Text:        text,
	}, nil
}
