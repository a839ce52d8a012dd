package providers

import (
	"fmt"
	"strings"
	"sync"

	"litscan/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager holds the configured LLM providers and the rotation cursor used
// to spread calls across keys when one hits quota or rate limits.
type Manager struct {
	llmProviders []NamedLLMProvider

	mu       sync.Mutex
	rotation int
}

func NewManager(cfg config.Config) (*Manager, error) {
	refs := ParseProviderList(cfg.LLMProviders)

	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	if len(m.llmProviders) == 0 {
		m.llmProviders = []NamedLLMProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func (m *Manager) FirstLLMProvider() LLMProvider {
	return m.llmProviders[0].Provider
}

func (m *Manager) LLMProviderByIndex(i int) (LLMProvider, ProviderRef) {
	if len(m.llmProviders) == 0 {
		return NewMockProvider(), ProviderRef{Raw: "mock", Name: "mock"}
	}
	if i < 0 || i >= len(m.llmProviders) {
		i = 0
	}
	return m.llmProviders[i].Provider, m.llmProviders[i].Ref
}

func (m *Manager) LLMCount() int {
	return len(m.llmProviders)
}

// RotationStart reports the index the next call chain should try first.
func (m *Manager) RotationStart() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.llmProviders) == 0 {
		return 0
	}
	return m.rotation % len(m.llmProviders)
}

// AdvanceRotation moves the cursor past a provider that just failed with a
// quota or rate error so subsequent calls start elsewhere.
func (m *Manager) AdvanceRotation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.llmProviders) == 0 {
		return
	}
	m.rotation = (m.rotation + 1) % len(m.llmProviders)
}

// PreferredLLMOrder lists provider indexes with real providers first and
// mock fallbacks last, rotated so the chain starts at the rotation cursor.
func (m *Manager) PreferredLLMOrder() []int {
	n := len(m.llmProviders)
	if n == 0 {
		return nil
	}
	start := m.RotationStart()
	real := make([]int, 0, n)
	mocks := make([]int, 0, n)
	for off := 0; off < n; off++ {
		i := (start + off) % n
		if strings.ToLower(m.llmProviders[i].Ref.Name) == "mock" {
			mocks = append(mocks, i)
		} else {
			real = append(real, i)
		}
	}
	return append(real, mocks...)
}

func (m *Manager) FindLLMProviderByName(name string) (LLMProvider, ProviderRef, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, ProviderRef{}, false
	}
	for i := range m.llmProviders {
		if strings.ToLower(m.llmProviders[i].Ref.Name) == target {
			return m.llmProviders[i].Provider, m.llmProviders[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func (m *Manager) LLMProviderRefs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.llmProviders))
	for i := range m.llmProviders {
		out = append(out, m.llmProviders[i].Ref)
	}
	return out
}

func buildProvider(ref ProviderRef) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
