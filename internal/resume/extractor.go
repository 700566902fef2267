package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// ErrUnsupportedFormat is returned for file types the extractor cannot read.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

var convertibleExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
}

// Supported reports whether the filename's extension can be extracted.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md" || convertibleExtensions[ext]
}

// Extract pulls plain text out of a resume file. Called once at candidate
// registration; the session flow only ever sees the stored text.
func Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case ext == ".txt" || ext == ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read resume %s: %w", path, err)
		}
		return strings.TrimSpace(string(data)), nil

	case convertibleExtensions[ext]:
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("convert resume %s: %w", path, err)
		}
		return strings.TrimSpace(res.Body), nil

	default:
		return "", ErrUnsupportedFormat
	}
}
