package providers

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
)

func TestMockProviderSurveyCSVShape(t *testing.T) {
	p := NewMockProvider()
	resp, info, err := p.Generate(context.Background(), GenerateRequest{
		Operation: "survey_record",
		Messages:  []Message{{Role: "user", Content: "summarize"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if info.Name != "mock" {
		t.Fatalf("unexpected provider info: %+v", info)
	}
	rows, err := csv.NewReader(strings.NewReader(resp.Text)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and data row, got %d rows", len(rows))
	}
	if len(rows[0]) != 27 || len(rows[1]) != 27 {
		t.Fatalf("expected 27 columns, got %d and %d", len(rows[0]), len(rows[1]))
	}
	if resp.Usage.TotalTokens == 0 {
		t.Fatalf("expected nonzero usage")
	}
}

func TestMockProviderNonSurveyText(t *testing.T) {
	p := NewMockProvider()
	resp, _, err := p.Generate(context.Background(), GenerateRequest{Operation: "ping"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(resp.Text, ",") && strings.Contains(resp.Text, "\n") {
		t.Fatalf("non-survey operation should not emit csv: %q", resp.Text)
	}
}
