package providers

import "testing"

func TestResolveOllamaModel_Default(t *testing.T) {
	t.Setenv("LITSCAN_OLLAMA_MODEL", "")
	got := resolveOllamaModel("")
	if got != "llama3.1" {
		t.Fatalf("expected default llama3.1, got %q", got)
	}
}

func TestResolveOllamaModel_DirectModelAlias(t *testing.T) {
	t.Setenv("LITSCAN_OLLAMA_MODEL", "")
	got := resolveOllamaModel("qwen2.5-coder")
	if got != "qwen2.5-coder" {
		t.Fatalf("expected alias to pass through as model, got %q", got)
	}
}
