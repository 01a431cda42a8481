package commonModels

type DocType string

const (
	TXT  DocType = "TXT"
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

type Source string

const (
	SourceFile  Source = "file"
	SourceText  Source = "text"
	SourceMCP   Source = "mcp"
	SourceEmpty Source = ""
)

// Document is the plain text a summary is produced from.
type Document struct {
	Name        string  `json:"doc_name,omitempty"`
	ContentType DocType `json:"content_type,omitempty"`
	Source      Source  `json:"source"`
	Text        string  `json:"-"`
}
