package providers

import (
	"errors"
	"fmt"
	"testing"

	"litscan/internal/util"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"openai generate error 429: insufficient_quota": ErrorQuota,
		"billing hard limit reached":                    ErrorQuota,
		"groq generate error 429: rate_limit_exceeded":  ErrorRate,
		"429 Too Many Requests":                         ErrorRate,
		"context_length_exceeded":                       ErrorContext,
		"maximum context length is 8192 tokens":         ErrorContext,
		"request timeout":                               ErrorTransient,
		"dial tcp: connection refused":                  ErrorTransient,
		"service unavailable":                           ErrorTransient,
		"invalid_api_key":                               ErrorPermanent,
	}
	for msg, want := range cases {
		if got := ClassifyError(errors.New(msg)); got != want {
			t.Fatalf("classify %q: got %s want %s", msg, got, want)
		}
	}
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("classify nil: got %q", got)
	}
}

func TestClassifiedWrapsSentinel(t *testing.T) {
	if Classified(nil) != nil {
		t.Fatal("classified nil should stay nil")
	}

	base := errors.New("groq generate error 429: rate_limit_exceeded")
	err := Classified(base)
	if !errors.Is(err, util.ErrRateLimited) {
		t.Fatalf("rate error lost its sentinel: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("original error dropped from chain: %v", err)
	}

	wrapped := fmt.Errorf("generate via openai:primary: %w", Classified(errors.New("insufficient_quota")))
	if !errors.Is(wrapped, util.ErrQuotaExhausted) {
		t.Fatalf("quota sentinel not visible through wrapping: %v", wrapped)
	}
	if errors.Is(wrapped, util.ErrRateLimited) {
		t.Fatalf("wrong sentinel attached: %v", wrapped)
	}
}
