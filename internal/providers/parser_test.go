package providers

import "testing"

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("openai:primary | groq:backup |ollama:llama3.1| mock")
	if len(refs) != 4 {
		t.Fatalf("expected 4 providers got %d", len(refs))
	}
	if refs[0].Name != "openai" || refs[0].KeyAlias != "primary" {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
	if refs[2].Name != "ollama" || refs[2].KeyAlias != "llama3.1" {
		t.Fatalf("ollama model alias not kept: %+v", refs[2])
	}
	if refs[3].Name != "mock" || refs[3].KeyAlias != "" {
		t.Fatalf("bare name should have no alias: %+v", refs[3])
	}
}

func TestParseProviderListEmptyFallsBackToMock(t *testing.T) {
	for _, raw := range []string{"", "  ", "||"} {
		refs := ParseProviderList(raw)
		if len(refs) != 1 || refs[0].Name != "mock" {
			t.Fatalf("list %q: expected mock fallback, got %+v", raw, refs)
		}
	}
}
