package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the last fallback tier: an OpenAI-compatible
// chat-completions endpoint behind a single key.
type OpenRouterService struct {
	APIKey string
	client *resty.Client
}

func NewOpenRouterService(apiKey string) *OpenRouterService {
	return &OpenRouterService{
		APIKey: apiKey,
		client: resty.New(),
	}
}

func (s *OpenRouterService) GenerateContent(ctx context.Context, model string, req GenerateRequest) (string, error) {
	if req.Attachment != nil {
		// Inline binary parts are a Gemini feature; let the dispatcher move on.
		return "", fmt.Errorf("inline attachments not supported by openrouter backend")
	}

	system := "You are a helpful career-coaching assistant."
	if req.Structured {
		system = "You are a helpful assistant that outputs only valid JSON."
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": req.Prompt},
			},
		}).
		Post(openRouterURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
