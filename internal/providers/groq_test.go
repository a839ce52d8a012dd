package providers

import "testing"

func TestResolveGroqKeyAlias(t *testing.T) {
	t.Setenv("LITSCAN_GROQ_KEY_BACKUP", "gsk-alias")
	t.Setenv("GROQ_API_KEY", "gsk-shared")

	if got := resolveGroqKey("backup"); got != "gsk-alias" {
		t.Fatalf("alias key not preferred: %q", got)
	}
	if got := resolveGroqKey("other"); got != "gsk-shared" {
		t.Fatalf("unknown alias should fall back to the shared key: %q", got)
	}
	if got := resolveGroqKey(""); got != "gsk-shared" {
		t.Fatalf("empty alias should use the shared key: %q", got)
	}
}

func TestNewGroqProviderModelDefault(t *testing.T) {
	t.Setenv("LITSCAN_GROQ_MODEL", "")
	if p := NewGroqProvider("backup"); p.model != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected default model: %q", p.model)
	}
	t.Setenv("LITSCAN_GROQ_MODEL", "llama-3.3-70b-versatile")
	if p := NewGroqProvider("backup"); p.model != "llama-3.3-70b-versatile" {
		t.Fatalf("model env not honored: %q", p.model)
	}
}
