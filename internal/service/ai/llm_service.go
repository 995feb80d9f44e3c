package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/lunafall/aura/backend/internal/config"
	"github.com/lunafall/aura/backend/internal/model/chat"
)

// enhanceInstruction conditions the model when rewriting portrait prompts.
const enhanceInstruction = "You rewrite image-generation prompts into vivid, concrete visual descriptions. " +
	"Reply with the rewritten prompt only, no commentary."

// Service runs persona conversations through a compiled eino chain:
// system instruction, replayed history, then the new user turn.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		cfg:   cfg,
		chain: runnable,
	}, nil
}

// StreamingEnabled reports whether SSE streaming output is configured.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Generate produces a single reply conditioned on the system prompt and the
// caller-supplied history.
func (s *Service) Generate(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (*schema.Message, error) {
	input := buildChainInput(systemPrompt, history, userMessage)

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated response, history=%d, length=%d", len(history), len(response.Content))
	return response, nil
}

// Stream returns the reply as a chunk stream via the configured chain.
func (s *Service) Stream(ctx context.Context, systemPrompt string, history []chat.Message, userMessage string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	input := buildChainInput(systemPrompt, history, userMessage)

	stream, err := s.chain.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}

	return stream, nil
}

// EnhanceImagePrompt asks the model for a more vivid rendition of a portrait
// prompt. Callers treat any failure as best-effort and keep the original.
func (s *Service) EnhanceImagePrompt(ctx context.Context, imagePrompt string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"system":  enhanceInstruction,
		"history": []*schema.Message(nil),
		"query":   imagePrompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to enhance image prompt: %w", err)
	}
	if response.Content == "" {
		return "", fmt.Errorf("empty enhancement response")
	}
	return response.Content, nil
}

func buildChainInput(systemPrompt string, history []chat.Message, userMessage string) map[string]any {
	return map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}
}

// buildHistoryMessages replays the caller-supplied transcript into model
// turns. "avatar" and "assistant" map to the model side, everything else to
// the user side.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleAvatar, chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		default:
			history = append(history, schema.UserMessage(msg.Content))
		}
	}

	return history
}
