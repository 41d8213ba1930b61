package llm

import (
	"context"
	"os"
	"strings"
)

// systemPrompt frames every provider call; replies are resume rewrites, not
// open-ended chat.
const systemPrompt = "You are a concise resume assistant. Improve clarity, impact, and metrics."

// Status describes the active provider for the /llm/status surface.
type Status struct {
	Provider      string `json:"provider"`
	APIKeyPresent bool   `json:"apiKeyPresent"`
	Model         string `json:"model"`
}

// ReplyGenerator produces assistant text for a user prompt.
//
// Implementations never fail: misconfiguration and upstream errors come back
// as human-readable placeholder text, so the transcript always receives an
// assistant entry. Retrying is the caller's business, not ours.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) string
	Status() Status
}

// ProvideReplyGenerator selects the provider from the LLM_PROVIDER environment
// variable: mock | groq | openai | ollama. Anything else falls back to mock.
func ProvideReplyGenerator() ReplyGenerator {
	switch strings.ToLower(os.Getenv("LLM_PROVIDER")) {
	case "groq":
		return NewGroqGenerator()
	case "openai":
		return NewOpenAIGenerator()
	case "ollama":
		return NewOllamaGenerator()
	default:
		return NewMockGenerator()
	}
}

// MockGenerator echoes a canned rewrite. Default provider; keeps local dev and
// tests off the network.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) GenerateReply(_ context.Context, prompt string) string {
	return "Here's a clearer version: " + prompt
}

func (g *MockGenerator) Status() Status {
	return Status{Provider: "mock", APIKeyPresent: false, Model: "mock"}
}
