package providers

import (
	"testing"

	"litscan/internal/config"
)

func TestManagerFallsBackToMock(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: ""})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if m.LLMCount() != 1 {
		t.Fatalf("expected single mock provider, got %d", m.LLMCount())
	}
	_, ref := m.LLMProviderByIndex(0)
	if ref.Name != "mock" {
		t.Fatalf("expected mock fallback, got %q", ref.Name)
	}
}

func TestManagerRejectsUnknownProvider(t *testing.T) {
	if _, err := NewManager(config.Config{LLMProviders: "gemini"}); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestPreferredLLMOrderRotates(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "openai:a|openai:b|mock"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	order := m.PreferredLLMOrder()
	if len(order) != 3 || order[0] != 0 || order[2] != 2 {
		t.Fatalf("unexpected initial order: %v", order)
	}

	m.AdvanceRotation()
	order = m.PreferredLLMOrder()
	if order[0] != 1 {
		t.Fatalf("expected rotation to start at second provider, got %v", order)
	}
	if order[len(order)-1] != 2 {
		t.Fatalf("mock should stay last, got %v", order)
	}
}

func TestFindLLMProviderByName(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock|groq:g1"})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, ref, ok := m.FindLLMProviderByName("groq"); !ok || ref.KeyAlias != "g1" {
		t.Fatalf("expected groq lookup, got %+v ok=%v", ref, ok)
	}
	if _, _, ok := m.FindLLMProviderByName("openai"); ok {
		t.Fatalf("unexpected openai match")
	}
}
