// Package textextract converts uploaded document bytes into plain text,
// dispatching on the declared MIME type.
package textextract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTXT  = "text/plain"
)

// ErrUnsupportedFormat is returned for MIME types this package cannot handle.
// The wrapping error names the offending type.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ErrExtraction is returned when a supported format fails to parse. The
// upstream library's message is attached.
var ErrExtraction = errors.New("text extraction failed")

type ExtractedText struct {
	Content string
	Pages   int
}

// Extract converts document bytes to plain text. PDFs are read via their
// text layer; image-based PDFs yield little or no content here and are the
// caller's cue to fall back to OCR.
func Extract(data io.ReaderAt, size int64, mimeType string) (*ExtractedText, error) {
	switch normalizeMime(mimeType) {
	case MimePDF:
		return extractPDF(data, size)
	case MimeDOCX:
		return extractDOCX(data, size)
	case MimeTXT:
		return extractTXT(data, size)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

func SupportedTypes() []string {
	return []string{MimePDF, MimeDOCX, MimeTXT}
}

// normalizeMime strips parameters like "; charset=utf-8".
func normalizeMime(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func extractPDF(data io.ReaderAt, size int64) (*ExtractedText, error) {
	// Preflight with pdfcpu: catches encrypted and structurally broken
	// files with a clearer message than the text-layer walk below.
	rs := io.NewSectionReader(data, 0, size)
	pageCount, err := api.PageCount(rs, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: validate PDF: %v", ErrExtraction, err)
	}

	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open PDF: %v", ErrExtraction, err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &ExtractedText{
		Content: strings.TrimSpace(buf.String()),
		Pages:   pageCount,
	}, nil
}

func extractDOCX(data io.ReaderAt, size int64) (*ExtractedText, error) {
	reader, err := zip.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open DOCX: %v", ErrExtraction, err)
	}

	var buf strings.Builder
	for _, f := range reader.File {
		if filepath.Base(f.Name) != "document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open document.xml: %v", ErrExtraction, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read document.xml: %v", ErrExtraction, err)
		}
		buf.WriteString(stripXMLTags(string(content)))
		break
	}

	return &ExtractedText{
		Content: strings.TrimSpace(buf.String()),
		Pages:   1,
	}, nil
}

func extractTXT(data io.ReaderAt, size int64) (*ExtractedText, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: read TXT: %v", ErrExtraction, err)
	}

	return &ExtractedText{
		Content: string(bytes.TrimSpace(buf)),
		Pages:   1,
	}, nil
}

func stripXMLTags(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}
