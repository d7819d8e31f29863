package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/voice_assistant/internal/ports"
)

const systemPrompt = `Act like a personal assistant. You can respond to questions, translate sentences, summarize news, and give recommendations. Be helpful, friendly, and concise in your responses.`

// FallbackReply is what the user hears when no completion could be produced.
const FallbackReply = "I'm sorry, I couldn't process your request right now. Please try again."

type Service struct {
	completer Completer
	log       *logger.ZapLogger
}

func NewService(completer Completer, log *logger.ZapLogger) *Service {
	return &Service{completer: completer, log: log}
}

// GenerateReply answers one message. Each call is single-turn.
func (s *Service) GenerateReply(ctx context.Context, userMessage string) ports.Result[string] {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userMessage},
	}

	reply, err := s.completer.GetCompletion(ctx, messages)
	if err != nil {
		err = fmt.Errorf("chat completion: %w (%s)", err, analyzeOpenAIError(err))
		s.log.Log(logger.LogEntry{Level: "error", Message: "chat completion failed", Service: "ai", Error: err})
		return ports.Degrade(FallbackReply, err)
	}

	s.log.Log(logger.LogEntry{Level: "debug", Message: "chat completion: " + reply, Service: "ai"})
	return ports.OK(reply)
}

// analyzeOpenAIError gives a short operator-facing hint for common failures.
func analyzeOpenAIError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "invalid OpenAI API key"
	case strings.Contains(msg, "status code: 404"):
		return "model not found"
	case strings.Contains(msg, "status code: 429"):
		return "OpenAI rate limit or quota exceeded"
	case strings.Contains(msg, "status code: 400"):
		return "request rejected by OpenAI"
	case strings.Contains(msg, "status code: 5"):
		return "OpenAI server error"
	case strings.Contains(msg, "no choices"):
		return "empty completion"
	}
	return "unknown OpenAI error"
}
