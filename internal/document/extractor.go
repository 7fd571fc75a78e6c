package document

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rahulverma/legalclarity/pkg/textextract"
)

// Upload is one submitted file: raw bytes plus the client-declared MIME
// type and original name. The bytes are never persisted; only the derived
// text survives the request.
type Upload struct {
	Data     []byte
	MimeType string
	Name     string
}

// Text is the extraction result held in memory for the rest of the request.
type Text struct {
	Content  string `json:"content"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Pages    int    `json:"pages"`
}

// OCR is the vision-model text extraction capability.
type OCR interface {
	ExtractText(ctx context.Context, mimeType string, data []byte) (string, error)
}

// Extractor dispatches uploads by MIME type. Images always go through OCR.
// PDFs are read via their text layer first; when that yields less than the
// quality threshold (scanned or image-based PDFs), the whole file is sent
// through OCR instead.
type Extractor struct {
	ocr OCR
}

func NewExtractor(ocr OCR) *Extractor {
	return &Extractor{ocr: ocr}
}

func (e *Extractor) Extract(ctx context.Context, up Upload) (*Text, error) {
	mime := normalizeMime(up.MimeType)

	if strings.HasPrefix(mime, "image/") {
		content, err := e.ocr.ExtractText(ctx, mime, up.Data)
		if err != nil {
			return nil, err
		}
		return &Text{Content: content, FileName: up.Name, MimeType: mime, Pages: 1}, nil
	}

	result, err := textextract.Extract(bytes.NewReader(up.Data), int64(len(up.Data)), mime)
	if err != nil {
		return nil, err
	}

	content := result.Content
	if mime == textextract.MimePDF && utf8.RuneCountInString(strings.TrimSpace(content)) < MinTextLength {
		ocrText, ocrErr := e.ocr.ExtractText(ctx, mime, up.Data)
		if ocrErr != nil {
			return nil, ocrErr
		}
		content = ocrText
	}

	return &Text{
		Content:  content,
		FileName: up.Name,
		MimeType: mime,
		Pages:    result.Pages,
	}, nil
}

func normalizeMime(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
