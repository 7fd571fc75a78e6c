package textextract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractTXT(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mimeType string
		want     string
	}{
		{
			name:     "plain text",
			input:    "This Agreement is made between the parties.",
			mimeType: "text/plain",
			want:     "This Agreement is made between the parties.",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n\n  hello  \n",
			mimeType: "text/plain",
			want:     "hello",
		},
		{
			name:     "mime type with charset parameter",
			input:    "charset param",
			mimeType: "text/plain; charset=utf-8",
			want:     "charset param",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.input)
			got, err := Extract(bytes.NewReader(data), int64(len(data)), tt.mimeType)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got.Content != tt.want {
				t.Errorf("Content = %q, want %q", got.Content, tt.want)
			}
		})
	}
}

func TestExtractDOCX(t *testing.T) {
	xml := `<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>Lease Agreement</w:t></w:r><w:r><w:t>between landlord and tenant.</w:t></w:r></w:p></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	got, err := Extract(bytes.NewReader(data), int64(len(data)), MimeDOCX)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(got.Content, "Lease Agreement") {
		t.Errorf("Content = %q, want it to contain %q", got.Content, "Lease Agreement")
	}
	if !strings.Contains(got.Content, "between landlord and tenant.") {
		t.Errorf("Content = %q, want it to contain the second run", got.Content)
	}
	if strings.Contains(got.Content, "<") {
		t.Errorf("Content = %q, still contains markup", got.Content)
	}
}

func TestExtractDOCXNotAZip(t *testing.T) {
	data := []byte("definitely not a zip archive")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), MimeDOCX)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction", err)
	}
}

func TestExtractPDFCorrupt(t *testing.T) {
	data := []byte("%PDF-1.7 truncated garbage")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), MimePDF)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("error = %v, want ErrExtraction", err)
	}
}

func TestExtractUnsupported(t *testing.T) {
	tests := []string{"application/zip", "image/png", "video/mp4", ""}

	for _, mimeType := range tests {
		t.Run(mimeType, func(t *testing.T) {
			data := []byte("irrelevant")
			_, err := Extract(bytes.NewReader(data), int64(len(data)), mimeType)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
			}
			if mimeType != "" && !strings.Contains(err.Error(), mimeType) {
				t.Errorf("error %q does not name the offending type %q", err, mimeType)
			}
		})
	}
}
