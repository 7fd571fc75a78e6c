package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type stubGateway struct {
	content string
	err     error
	lastReq ChatRequest
}

func (s *stubGateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &ChatResponse{Content: s.content}, nil
}

func (s *stubGateway) Provider(name string) (Provider, error) { return nil, errors.New("no provider") }
func (s *stubGateway) ListModels() []ModelInfo                { return nil }

func answerTestSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
		"required":             []any{"answer"},
		"additionalProperties": false,
	}
}

func TestGenerateUnmarshalsValidOutput(t *testing.T) {
	gw := &stubGateway{content: `{"answer": "Thirty days."}`}
	s := NewStructured(gw, "gpt-4o")

	var out struct {
		Answer string `json:"answer"`
	}
	err := s.Generate(context.Background(), "Answer the question.", "What is the notice period?", answerTestSchema(), &out)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Answer != "Thirty days." {
		t.Errorf("Answer = %q", out.Answer)
	}

	if gw.lastReq.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", gw.lastReq.Model)
	}
	if len(gw.lastReq.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(gw.lastReq.Messages))
	}
	if !strings.Contains(gw.lastReq.Messages[0].Content, `"answer"`) {
		t.Error("system prompt does not embed the schema")
	}
	if gw.lastReq.Messages[1].Content != "What is the notice period?" {
		t.Errorf("user message = %q", gw.lastReq.Messages[1].Content)
	}
}

func TestGenerateStripsCodeFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "json fence", content: "```json\n{\"answer\": \"Yes.\"}\n```"},
		{name: "bare fence", content: "```\n{\"answer\": \"Yes.\"}\n```"},
		{name: "leading whitespace", content: "\n\n  {\"answer\": \"Yes.\"}  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{content: tt.content}
			s := NewStructured(gw, "gpt-4o")

			var out struct {
				Answer string `json:"answer"`
			}
			if err := s.Generate(context.Background(), "instr", "input", answerTestSchema(), &out); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if out.Answer != "Yes." {
				t.Errorf("Answer = %q", out.Answer)
			}
		})
	}
}

func TestGenerateRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing required field", content: `{}`},
		{name: "wrong type", content: `{"answer": 42}`},
		{name: "extra property", content: `{"answer": "ok", "extra": true}`},
		{name: "not json at all", content: `I cannot answer that.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{content: tt.content}
			s := NewStructured(gw, "gpt-4o")

			var out struct {
				Answer string `json:"answer"`
			}
			err := s.Generate(context.Background(), "instr", "input", answerTestSchema(), &out)
			if !errors.Is(err, ErrModel) {
				t.Fatalf("error = %v, want ErrModel", err)
			}
		})
	}
}

func TestGeneratePassesThroughGatewayError(t *testing.T) {
	wantErr := fmt.Errorf("%w: openai chat: rate limited", ErrModel)
	gw := &stubGateway{err: wantErr}
	s := NewStructured(gw, "gpt-4o")

	var out struct{}
	err := s.Generate(context.Background(), "instr", "input", answerTestSchema(), &out)
	if !errors.Is(err, ErrModel) {
		t.Fatalf("error = %v, want the gateway error", err)
	}
}
