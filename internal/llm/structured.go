package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Structured forces model responses into a declared JSON schema. The schema
// is embedded into the system prompt and the response is validated against
// it before unmarshaling, so a malformed answer surfaces as ErrModel rather
// than as a half-populated struct.
type Structured struct {
	gateway Gateway
	model   string
}

func NewStructured(gw Gateway, model string) *Structured {
	return &Structured{gateway: gw, model: model}
}

// Generate asks the model for JSON matching schemaMap and unmarshals the
// validated response into target.
func (s *Structured) Generate(ctx context.Context, instruction, input string, schemaMap map[string]any, target any) error {
	schemaJSON, err := json.MarshalIndent(schemaMap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	resp, err := s.gateway.Chat(ctx, ChatRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role: "system",
				Content: fmt.Sprintf(`%s

You must respond with ONLY valid JSON matching this schema:

%s

Do not include any text outside the JSON. No markdown, no explanation.`, instruction, schemaJSON),
			},
			{Role: "user", Content: input},
		},
		Temperature: 0,
	})
	if err != nil {
		return err
	}

	content := stripFences(resp.Content)

	if err := validateAgainstSchema(schemaMap, []byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrModel, err)
	}

	if err := json.Unmarshal([]byte(content), target); err != nil {
		return fmt.Errorf("%w: parse structured output: %v", ErrModel, err)
	}

	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal output: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("output does not match schema: %w", err)
	}
	return nil
}
