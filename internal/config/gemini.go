package config

import (
	"os"
	"strings"
	"sync"
)

// Fixed model preference order, most capable first. Overridable via
// GEMINI_MODELS for rollouts of new model names without a deploy.
var defaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
}

type GeminiConfig struct {
	APIKeys        []string
	Models         []string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		keys := splitCSV(os.Getenv("GEMINI_API_KEYS"))
		if len(keys) == 0 {
			if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
				keys = []string{k}
			}
		}
		models := splitCSV(os.Getenv("GEMINI_MODELS"))
		if len(models) == 0 {
			models = defaultGeminiModels
		}
		embeddingModel := os.Getenv("GEMINI_EMBEDDING_MODEL")
		if embeddingModel == "" {
			embeddingModel = "gemini-embedding-001"
		}
		geminiConfig = &GeminiConfig{
			APIKeys:        keys,
			Models:         models,
			EmbeddingModel: embeddingModel,
		}
	})
	return geminiConfig
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
