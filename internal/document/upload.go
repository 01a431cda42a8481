package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUpload copies r into dir. The stored name is prefixed with a uuid so
// two uploads sharing a filename never overwrite each other.
func SaveUpload(dir string, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	target := filepath.Join(dir, fmt.Sprintf("%s-%s", uuid.New().String(), SanitizeFilename(filename)))
	destinationFileWriter, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, r); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return target, nil
}
