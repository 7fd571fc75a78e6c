package document

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rahulverma/legalclarity/internal/llm"
)

const ocrPrompt = `You are an Optical Character Recognition (OCR) expert.

Extract all text from the following document. Maintain the original formatting as much as possible. Return only the extracted text.`

// OCRService extracts text from PDFs and images through a vision-capable
// chat model. The payload travels as a base64 data URI.
type OCRService struct {
	gateway llm.Gateway
	model   string
}

func NewOCRService(gw llm.Gateway, model string) *OCRService {
	return &OCRService{gateway: gw, model: model}
}

func (o *OCRService) ExtractText(ctx context.Context, mimeType string, data []byte) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	resp, err := o.gateway.Chat(ctx, llm.ChatRequest{
		Model: o.model,
		Messages: []llm.Message{
			{Role: "system", Content: ocrPrompt},
			{Role: "user", Content: fmt.Sprintf("[Document: %s]", dataURI)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}

	return resp.Content, nil
}
