package upload

import (
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileBytes is the client-side size cap for resume uploads.
const MaxFileBytes = 5 * 1024 * 1024

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupportedType = errors.New("unsupported resume file: pdf or docx required")
	ErrTooLarge        = errors.New("resume file must be smaller than 5MB")
	ErrInfected        = errors.New("malicious file detected")
)

// Validate accepts a PDF by MIME type or a DOCX by extension, below MaxFileBytes.
// It never touches the network.
func Validate(name, contentType string, size int64) error {
	if !isPDF(contentType) && !strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".docx") {
		return ErrUnsupportedType
	}
	if size >= MaxFileBytes {
		return ErrTooLarge
	}
	return nil
}

// DetectContentType returns the declared type when present, otherwise sniffs the data.
func DetectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

// ExtractionType maps an accepted upload to the MIME used for text extraction.
func ExtractionType(name, contentType string) string {
	if isPDF(contentType) {
		return MIMEPDF
	}
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), ".docx") {
		return MIMEDOCX
	}
	return contentType
}

func isPDF(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), MIMEPDF)
}
