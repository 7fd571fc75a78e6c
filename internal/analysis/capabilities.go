package analysis

import (
	"context"
	"fmt"
)

// Capabilities groups the secondary, stateless model calls invoked from the
// UI after an initial analysis. Each is a single request/response with no
// cross-call state.
type Capabilities struct {
	inv Invoker
}

func NewCapabilities(inv Invoker) *Capabilities {
	return &Capabilities{inv: inv}
}

// Amendment is a suggested rewrite of a risky clause.
type Amendment struct {
	SuggestedAmendment string `json:"suggestedAmendment"`
	Explanation        string `json:"explanation"`
}

func (c *Capabilities) Answer(ctx context.Context, documentText, question string) (string, error) {
	var out struct {
		Answer string `json:"answer"`
	}
	input := fmt.Sprintf("Document:\n%s\n\nQuestion:\n%s", documentText, question)
	if err := c.inv.Generate(ctx, answerInstruction, input, answerSchema(), &out); err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return out.Answer, nil
}

func (c *Capabilities) Simplify(ctx context.Context, legalText string) (string, error) {
	var out struct {
		PlainLanguageText string `json:"plainLanguageText"`
	}
	input := "Legal Text:\n" + legalText
	if err := c.inv.Generate(ctx, simplifyInstruction, input, simplifySchema(), &out); err != nil {
		return "", fmt.Errorf("simplify text: %w", err)
	}
	return out.PlainLanguageText, nil
}

func (c *Capabilities) Compare(ctx context.Context, document1, document2 string) (string, error) {
	var out struct {
		Comparison string `json:"comparison"`
	}
	input := fmt.Sprintf("Document 1:\n%s\n\n---\n\nDocument 2:\n%s", document1, document2)
	if err := c.inv.Generate(ctx, compareInstruction, input, compareSchema(), &out); err != nil {
		return "", fmt.Errorf("compare documents: %w", err)
	}
	return out.Comparison, nil
}

func (c *Capabilities) SuggestAmendment(ctx context.Context, originalClause, riskExplanation string) (*Amendment, error) {
	var out Amendment
	input := fmt.Sprintf("Original Clause:\n%q\n\nIdentified Risk/Illegality:\n%q", originalClause, riskExplanation)
	if err := c.inv.Generate(ctx, amendInstruction, input, amendmentSchema(), &out); err != nil {
		return nil, fmt.Errorf("suggest amendment: %w", err)
	}
	return &out, nil
}
