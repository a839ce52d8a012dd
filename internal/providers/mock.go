package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic output so pipelines can run without
// any external API configured.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

var mockSurveyHeader = []string{
	"paper title", "authors", "year", "venue", "DOI", "arXiv ID",
	"architecture type", "contribution", "data bottleneck", "compute bottleneck",
	"constraint types", "data type", "data scale", "data collection method",
	"data solution", "model scale", "training resources", "inference efficiency",
	"compute solution", "task type", "environment", "performance", "tradeoff",
	"advantages", "limitations", "future work", "innovation",
}

var mockSurveyRow = []string{
	"Mock Paper", "Mock Author", "2024", "not mentioned", "not mentioned", "not mentioned",
	"transformer", "deterministic placeholder record", "no", "no",
	"not mentioned", "not mentioned", "not mentioned", "not mentioned",
	"not mentioned", "not mentioned", "not mentioned", "not mentioned",
	"not mentioned", "not mentioned", "not mentioned", "not mentioned", "not mentioned",
	"not mentioned", "not mentioned", "not mentioned", "not mentioned",
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	text := "Mock response."
	if strings.Contains(op, "survey") || strings.Contains(op, "analyze") {
		text = strings.Join(mockSurveyHeader, ",") + "\n" + strings.Join(mockSurveyRow, ",")
	}
	prompt := 0
	for _, msg := range req.Messages {
		prompt += len(strings.Fields(msg.Content))
	}
	completion := len(strings.Fields(text))
	usage := TokenUsage{PromptTokens: prompt, CompletionTokens: completion, TotalTokens: prompt + completion}
	return GenerateResponse{Text: text, Usage: usage}, info, nil
}
