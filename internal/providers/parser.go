package providers

import "strings"

// ProviderRef is one parsed entry of the LITSCAN_LLM_PROVIDERS list.
// Entries are pipe-separated "name" or "name:alias" pairs, e.g.
// "openai:primary|groq:backup|mock". The alias selects the API key env var
// for openai and groq; for ollama it may name a model directly.
type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderList splits the configured provider list into refs, keeping
// list order since it is also the failover order. An empty or blank list
// yields the mock provider so keyless environments still run.
func ParseProviderList(raw string) []ProviderRef {
	parts := strings.Split(raw, "|")
	out := make([]ProviderRef, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, alias, found := strings.Cut(p, ":")
		ref := ProviderRef{Raw: p, Name: strings.TrimSpace(name)}
		if found {
			ref.KeyAlias = strings.TrimSpace(alias)
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		out = append(out, ProviderRef{Raw: "mock", Name: "mock"})
	}
	return out
}
