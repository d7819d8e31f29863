package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	reply    string
	err      error
	messages []openai.ChatCompletionMessage
	calls    int
}

func (f *fakeCompleter) GetCompletion(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	f.calls++
	f.messages = messages
	return f.reply, f.err
}

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

func TestService_GenerateReply(t *testing.T) {
	fc := &fakeCompleter{reply: "Paris."}
	s := NewService(fc, nopLogger())

	res := s.GenerateReply(context.Background(), "Capital of France?")

	assert.False(t, res.Degraded)
	assert.Equal(t, "Paris.", res.Value)

	require.Len(t, fc.messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fc.messages[0].Role)
	assert.Equal(t, systemPrompt, fc.messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, fc.messages[1].Role)
	assert.Equal(t, "Capital of France?", fc.messages[1].Content)
}

func TestService_EmptyMessageForwarded(t *testing.T) {
	fc := &fakeCompleter{reply: "?"}
	s := NewService(fc, nopLogger())

	s.GenerateReply(context.Background(), "")

	require.Len(t, fc.messages, 2)
	assert.Equal(t, "", fc.messages[1].Content)
}

func TestService_FallbackOnError(t *testing.T) {
	errs := []error{
		errors.New("dial tcp: connection refused"),
		&openai.APIError{HTTPStatusCode: 401, Message: "bad key"},
		errNoChoices,
		context.DeadlineExceeded,
	}

	for _, e := range errs {
		t.Run(e.Error(), func(t *testing.T) {
			s := NewService(&fakeCompleter{err: e}, nopLogger())

			res := s.GenerateReply(context.Background(), "hello")

			assert.True(t, res.Degraded)
			assert.Equal(t, FallbackReply, res.Value)
			assert.ErrorIs(t, res.Reason, e)
		})
	}
}

func TestService_NoHistory(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	s := NewService(fc, nopLogger())

	s.GenerateReply(context.Background(), "first")
	s.GenerateReply(context.Background(), "second")

	assert.Equal(t, 2, fc.calls)
	require.Len(t, fc.messages, 2)
	assert.Equal(t, "second", fc.messages[1].Content)
}

func TestAnalyzeOpenAIError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("error, status code: 401, message: x"), "invalid OpenAI API key"},
		{errors.New("error, status code: 429, message: x"), "OpenAI rate limit or quota exceeded"},
		{errors.New("error, status code: 503, message: x"), "OpenAI server error"},
		{errNoChoices, "empty completion"},
		{errors.New("eof"), "unknown OpenAI error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, analyzeOpenAIError(tt.err))
	}
}

func TestService_Repeatable(t *testing.T) {
	tests := []struct {
		name string
		fc   *fakeCompleter
	}{
		{name: "success", fc: &fakeCompleter{reply: "Hi there!"}},
		{name: "fallback", fc: &fakeCompleter{err: errNoChoices}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.fc, nopLogger())

			first := s.GenerateReply(context.Background(), "Hello")
			second := s.GenerateReply(context.Background(), "Hello")

			assert.Equal(t, first, second)
			assert.Equal(t, 2, tt.fc.calls)
		})
	}
}
