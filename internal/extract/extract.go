// Package extract pulls plain text out of uploaded resumes so later screens
// can reuse it without asking for the file again.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePlain = "text/plain"
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupported is returned for types this package cannot read.
var ErrUnsupported = errors.New("unsupported resume type")

// ResumeText returns the text content of a resume file.
func ResumeText(mime string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch mime {
	case mimePlain:
		text = string(data)
	case mimePDF:
		text, err = pdfText(data)
	case mimeDOCX:
		text, err = docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mime)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func pdfText(data []byte) (_ string, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return stripTags(doc.Editable().GetContent()), nil
}

// stripTags drops the WordprocessingML markup GetContent leaves in place and
// turns paragraph ends into newlines.
func stripTags(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")

	var b strings.Builder
	inTag := false
	for _, r := range xml {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
