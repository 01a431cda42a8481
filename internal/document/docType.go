package document

import (
	"path/filepath"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/domain/commonModels"
)

func DocTypeFromName(name string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt":
		return commonModels.TXT
	case ".pdf":
		return commonModels.PDF
	case ".docx":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

// SanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] so the result is safe to join onto the upload directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), "._")
	if clean == "" {
		return "upload"
	}
	return clean
}
