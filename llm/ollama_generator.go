package llm

import (
	"context"
	"os"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaGenerator runs replies against a local Ollama daemon. Host comes from
// the standard OLLAMA_HOST environment variable.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

func NewOllamaGenerator() *OllamaGenerator {
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3.1"
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Error("Failed to create Ollama client", zap.Error(err))
	}

	return &OllamaGenerator{client: client, model: model}
}

func (g *OllamaGenerator) GenerateReply(ctx context.Context, prompt string) string {
	if g.client == nil {
		return "LLM not configured (ollama client unavailable)."
	}

	stream := false
	request := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
	}

	var reply strings.Builder
	err := g.client.Chat(ctx, request, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		logger.Error("Ollama inference failed", zap.Error(err))
		return "LLM error (ollama): " + err.Error()
	}

	return strings.TrimSpace(reply.String())
}

func (g *OllamaGenerator) Status() Status {
	return Status{Provider: "ollama", APIKeyPresent: false, Model: g.model}
}
