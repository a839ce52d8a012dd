package util

import "errors"

// Document sentinels are wrapped by pdfdoc.DocumentError when a PDF cannot
// be structured.
var (
	ErrNoExtractableText = errors.New("no extractable text found in PDF")
	ErrEmptyDocument     = errors.New("document has no pages")
)

// Provider sentinels tag classified LLM call failures; providers.Classified
// attaches the one matching the error taxonomy so callers can errors.Is.
var (
	ErrQuotaExhausted = errors.New("provider quota exhausted")
	ErrRateLimited    = errors.New("provider rate limited")
	ErrTransient      = errors.New("transient provider error")
	ErrPermanent      = errors.New("permanent provider error")
	ErrContextTooLong = errors.New("context too long")
)
