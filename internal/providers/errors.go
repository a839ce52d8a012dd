package providers

import (
	"fmt"
	"strings"

	"litscan/internal/util"
)

// ErrorType buckets chat completion failures for the rotation and retry
// decisions: quota and rate errors advance the key rotation, context errors
// mean the condensed text is still too large, transient errors are worth
// retrying on the same provider.
type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
	ErrorContext   ErrorType = "context"
)

// ClassifyError maps a provider error onto the taxonomy. The providers fold
// the HTTP status and response body into their error strings, so the match
// covers both the OpenAI-style error codes (insufficient_quota,
// rate_limit_exceeded, context_length_exceeded) and plain transport failures.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "insufficient_quota"), strings.Contains(e, "quota"),
		strings.Contains(e, "billing"), strings.Contains(e, "credit"):
		return ErrorQuota
	case strings.Contains(e, "rate_limit_exceeded"), strings.Contains(e, "too many requests"),
		strings.Contains(e, "rate"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "context_length_exceeded"), strings.Contains(e, "maximum context length"),
		strings.Contains(e, "context"), strings.Contains(e, "too long"):
		return ErrorContext
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"),
		strings.Contains(e, "unavailable"), strings.Contains(e, "connection refused"),
		strings.Contains(e, "502"), strings.Contains(e, "503"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}

// Sentinel returns the shared error value for a classification so callers
// outside this package can branch with errors.Is.
func (t ErrorType) Sentinel() error {
	switch t {
	case ErrorQuota:
		return util.ErrQuotaExhausted
	case ErrorRate:
		return util.ErrRateLimited
	case ErrorContext:
		return util.ErrContextTooLong
	case ErrorTransient:
		return util.ErrTransient
	case ErrorPermanent:
		return util.ErrPermanent
	default:
		return nil
	}
}

// Classified tags err with the sentinel matching its classification while
// keeping the original chain intact.
func Classified(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ClassifyError(err).Sentinel(), err)
}
