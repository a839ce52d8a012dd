package storage

import (
	"context"
	"fmt"
)

type LLMCallRecord struct {
	CallID           string
	Operation        string
	RunID            string
	PaperHash        string
	ProviderName     string
	Model            string
	Status           string
	ErrorType        string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type LLMAuditRepo struct {
	db *DB
}

func NewLLMAuditRepo(db *DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec LLMCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO llm_calls(call_id, operation, run_id, paper_hash, provider_name, model, status, error_type,
  prompt_tokens, completion_tokens, total_tokens)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, NULLIF($3,'')::uuid, NULLIF($4,''), $5, $6, $7, NULLIF($8,''), $9, $10, $11)`,
		rec.CallID, rec.Operation, rec.RunID, rec.PaperHash, rec.ProviderName, rec.Model, rec.Status, rec.ErrorType,
		rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens)
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}
