package summaryModel

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindExtraction    ErrorKind = "extraction"
	KindClassify      ErrorKind = "classification"
	KindSummarization ErrorKind = "summarization"
)

var (
	ErrNoContent       = errors.New("no file or text supplied")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("document text is empty")
	ErrDocumentTooLong = errors.New("document exceeds the length limit")
	ErrUploadTooLarge  = errors.New("upload exceeds the size limit")
)

const (
	MsgNoContent   = "⚠️ Please upload a file or enter some text."
	MsgUnsupported = "⚠️ Unsupported file type. Please upload a .txt, .pdf, or .docx file."
	MsgRateLimited = "⚠️ Too many requests. Please wait a moment and try again."
	MsgEmpty       = "❌ Error: Could not extract any text from the document or the text area was empty."
	msgTooLong     = "⚠️ The document is too long to summarize (limit: %d characters)."
	msgTooLarge    = "⚠️ The uploaded file is too large (limit: %s)."
	msgUnexpected  = "❌ An unexpected error occurred: %s"
)

type ValidationError struct {
	Err   error
	Limit int
}

func (e *ValidationError) Error() string { return "validation: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Name, e.Err)
}
func (e *ExtractionError) Unwrap() error { return e.Err }

type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string { return "classify document: " + e.Err.Error() }
func (e *ClassificationError) Unwrap() error { return e.Err }

type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string { return "summarize document: " + e.Err.Error() }
func (e *SummarizationError) Unwrap() error { return e.Err }

func Kind(err error) ErrorKind {
	var (
		v *ValidationError
		x *ExtractionError
		c *ClassificationError
		s *SummarizationError
	)
	switch {
	case errors.As(err, &v):
		return KindValidation
	case errors.As(err, &x):
		return KindExtraction
	case errors.As(err, &c):
		return KindClassify
	case errors.As(err, &s):
		return KindSummarization
	}
	return ""
}

// UserMessage turns err into the text shown to the person who submitted the
// document. Model and transport failures carry the underlying error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var v *ValidationError
	switch {
	case errors.Is(err, ErrNoContent):
		return MsgNoContent
	case errors.Is(err, ErrUnsupportedType):
		return MsgUnsupported
	case errors.Is(err, ErrEmptyDocument):
		return MsgEmpty
	case errors.Is(err, ErrDocumentTooLong) && errors.As(err, &v):
		return fmt.Sprintf(msgTooLong, v.Limit)
	case errors.Is(err, ErrUploadTooLarge) && errors.As(err, &v):
		return fmt.Sprintf(msgTooLarge, sizeLabel(v.Limit))
	}
	return fmt.Sprintf(msgUnexpected, rootCause(err).Error())
}

// sizeLabel rounds up so a limit is never shown as zero.
func sizeLabel(bytes int) string {
	const kb, mb = 1 << 10, 1 << 20
	if bytes < mb {
		return fmt.Sprintf("%d KB", (bytes+kb-1)/kb)
	}
	return fmt.Sprintf("%d MB", (bytes+mb-1)/mb)
}

// HTTPStatus is used by the JSON API only; the HTML page always answers 200.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoContent), errors.Is(err, ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, ErrDocumentTooLong), errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	}
	switch Kind(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindExtraction:
		return http.StatusUnprocessableEntity
	case KindClassify, KindSummarization:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// rootCause strips our own wrappers so the message shows what actually failed.
func rootCause(err error) error {
	switch e := err.(type) {
	case *ClassificationError:
		return e.Err
	case *SummarizationError:
		return e.Err
	case *ExtractionError:
		return e.Err
	}
	return err
}
