package analysis

// JSON-Schema maps (draft 2020-12 subset) passed to the structured model
// invoker as output constraints and validated locally against the response.

func fullAnalysisSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary":            map[string]any{"type": "string", "minLength": 1},
			"riskAssessment":     map[string]any{"type": "string", "minLength": 1},
			"keyClauses":         map[string]any{"type": "string", "minLength": 1},
			"complianceAnalysis": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"summary", "riskAssessment", "keyClauses", "complianceAnalysis"},
	}
}

func clauseRisksSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"clause":           map[string]any{"type": "string", "minLength": 1},
				"riskLevel":        map[string]any{"type": "string", "enum": []string{"Low", "Medium", "High"}},
				"explanation":      map[string]any{"type": "string"},
				"complianceIssues": map[string]any{"type": "string"},
			},
			"required": []string{"clause", "riskLevel", "explanation", "complianceIssues"},
		},
	}
}

func answerSchema() map[string]any {
	return stringObjectSchema("answer")
}

func simplifySchema() map[string]any {
	return stringObjectSchema("plainLanguageText")
}

func compareSchema() map[string]any {
	return stringObjectSchema("comparison")
}

func amendmentSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"suggestedAmendment": map[string]any{"type": "string", "minLength": 1},
			"explanation":        map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"suggestedAmendment", "explanation"},
	}
}

func stringObjectSchema(field string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			field: map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{field},
	}
}
