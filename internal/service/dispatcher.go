package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"careernav/internal/config"

	"google.golang.org/genai"
)

// Attachment is one inline binary part for multimodal prompts.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest describes a single generation the caller wants answered by
// whichever backend happens to be available.
type GenerateRequest struct {
	Prompt     string
	Structured bool // caller expects machine-parseable JSON
	Attachment *Attachment
}

// Generator is what the orchestrators depend on; Dispatcher is the production
// implementation.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Embedder produces embedding vectors for the job-recommendation search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ModelBackend is one provider client able to serve multiple model names.
type ModelBackend interface {
	GenerateContent(ctx context.Context, model string, req GenerateRequest) (string, error)
}

// Candidate is one (credential, model) pair in the fixed traversal order.
type Candidate struct {
	Label   string
	Model   string
	Backend ModelBackend
}

// Attempt records one failed candidate for diagnostics.
type Attempt struct {
	Label string
	Model string
	Err   error
}

// ProviderExhaustedError means every candidate failed. It carries the full
// per-pair failure list so callers can tell "everything rate-limited" from
// "everything not-found".
type ProviderExhaustedError struct {
	Attempts []Attempt
}

func (e *ProviderExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s/%s: %v", a.Label, a.Model, a.Err))
	}
	return fmt.Sprintf("all %d model candidates failed: %s", len(e.Attempts), strings.Join(parts, "; "))
}

// RateLimited reports whether any constituent failure looks like a quota
// error, so the API layer can answer 429 instead of a generic 500.
func (e *ProviderExhaustedError) RateLimited() bool {
	for _, a := range e.Attempts {
		if isQuotaError(a.Err) {
			return true
		}
	}
	return false
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}

// Dispatcher tries each candidate in order until one answers. Strictly
// sequential, one attempt in flight at a time, no backoff between attempts.
type Dispatcher struct {
	candidates []Candidate
}

func NewDispatcher(candidates []Candidate) (*Dispatcher, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no model candidates configured: set GEMINI_API_KEYS or OPENROUTER_API_KEY")
	}
	return &Dispatcher{candidates: candidates}, nil
}

// Generate returns the first successful response, or ProviderExhaustedError
// enumerating every per-pair failure. Per-attempt failures are logged but
// never surfaced individually.
func (d *Dispatcher) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	var attempts []Attempt
	for _, candidate := range d.candidates {
		text, err := candidate.Backend.GenerateContent(ctx, candidate.Model, req)
		if err == nil {
			return text, nil
		}
		log.Printf("model candidate %s/%s failed: %v", candidate.Label, candidate.Model, err)
		attempts = append(attempts, Attempt{Label: candidate.Label, Model: candidate.Model, Err: err})
	}
	return "", &ProviderExhaustedError{Attempts: attempts}
}

// BuildCandidates assembles the fixed traversal order from configuration:
// every Gemini key crossed with the model preference list, then one
// OpenRouter candidate when a key is present.
func BuildCandidates(ctx context.Context, geminiCfg *config.GeminiConfig, openRouterCfg *config.OpenRouterConfig) ([]Candidate, []*GeminiService, error) {
	var candidates []Candidate
	var geminis []*GeminiService

	for i, key := range geminiCfg.APIKeys {
		svc, err := NewGeminiService(ctx, key, geminiCfg.EmbeddingModel)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini key %d: %w", i+1, err)
		}
		geminis = append(geminis, svc)
		label := fmt.Sprintf("gemini-key-%d", i+1)
		for _, model := range geminiCfg.Models {
			candidates = append(candidates, Candidate{Label: label, Model: model, Backend: svc})
		}
	}

	if openRouterCfg.APIKey != "" {
		candidates = append(candidates, Candidate{
			Label:   "openrouter",
			Model:   openRouterCfg.Model,
			Backend: NewOpenRouterService(openRouterCfg.APIKey),
		})
	}

	return candidates, geminis, nil
}
