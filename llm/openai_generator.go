package llm

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

type OpenAIGenerator struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewOpenAIGenerator() *OpenAIGenerator {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIGenerator{
		apiKey:     os.Getenv("OPENAI_API_KEY"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		url:        "https://api.openai.com/v1/chat/completions",
		model:      model,
	}
}

func (g *OpenAIGenerator) GenerateReply(ctx context.Context, prompt string) string {
	if g.apiKey == "" {
		return "LLM not configured (missing OPENAI_API_KEY)."
	}

	reply, err := chatCompletion(ctx, g.httpClient, g.url, g.apiKey, g.model, prompt)
	if err != nil {
		logger.Error("OpenAI inference failed", zap.Error(err))
		return "LLM error (openai): " + err.Error()
	}

	return reply
}

func (g *OpenAIGenerator) Status() Status {
	return Status{Provider: "openai", APIKeyPresent: g.apiKey != "", Model: g.model}
}
