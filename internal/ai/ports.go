package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the chat completions backend behind Service.
type Completer interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}
