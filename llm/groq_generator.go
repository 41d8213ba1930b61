package llm

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

type GroqGenerator struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewGroqGenerator() *GroqGenerator {
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &GroqGenerator{
		apiKey:     os.Getenv("GROQ_API_KEY"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		url:        "https://api.groq.com/openai/v1/chat/completions",
		model:      model,
	}
}

func (g *GroqGenerator) GenerateReply(ctx context.Context, prompt string) string {
	if g.apiKey == "" {
		return "LLM not configured (missing GROQ_API_KEY)."
	}

	reply, err := chatCompletion(ctx, g.httpClient, g.url, g.apiKey, g.model, prompt)
	if err != nil {
		logger.Error("Groq inference failed", zap.Error(err))
		return "LLM error (groq): " + err.Error()
	}

	return reply
}

func (g *GroqGenerator) Status() Status {
	return Status{Provider: "groq", APIKeyPresent: g.apiKey != "", Model: g.model}
}
