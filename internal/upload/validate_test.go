package upload

import (
	"context"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		file        string
		contentType string
		size        int64
		want        error
	}{
		{"pdf by mime", "resume.bin", "application/pdf", 1024, nil},
		{"pdf mime with params", "resume", "application/pdf; charset=binary", 1024, nil},
		{"docx by extension", "Resume.DOCX", "application/octet-stream", 1024, nil},
		{"pdf extension but wrong mime", "resume.pdf", "text/plain", 1024, ErrUnsupportedType},
		{"plain text", "resume.txt", "text/plain", 10, ErrUnsupportedType},
		{"legacy doc", "resume.doc", "application/msword", 10, ErrUnsupportedType},
		{"just under cap", "resume.docx", "", MaxFileBytes - 1, nil},
		{"exactly cap", "resume.docx", "", MaxFileBytes, ErrTooLarge},
		{"over cap", "resume.pdf", "application/pdf", MaxFileBytes + 1, ErrTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.file, tc.contentType, tc.size); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, err)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	if got := DetectContentType("application/pdf", nil); got != "application/pdf" {
		t.Fatalf("declared type should win, got %q", got)
	}
	if got := DetectContentType("", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")); got != "application/pdf" {
		t.Fatalf("expected sniffed pdf got %q", got)
	}
}

func TestExtractionType(t *testing.T) {
	if got := ExtractionType("cv.docx", "application/octet-stream"); got != MIMEDOCX {
		t.Fatalf("expected docx mime got %q", got)
	}
	if got := ExtractionType("cv", "application/pdf"); got != MIMEPDF {
		t.Fatalf("expected pdf mime got %q", got)
	}
}

func TestNewScannerWithoutAddressAcceptsEverything(t *testing.T) {
	s := NewScanner("")
	if _, ok := s.(NopScanner); !ok {
		t.Fatalf("expected NopScanner got %T", s)
	}
	if err := s.Scan(context.Background(), []byte("anything")); err != nil {
		t.Fatalf("nop scanner returned %v", err)
	}
}
