package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "Hi there!\n\n"}, "finish_reason": "stop"},
    {"index": 1, "message": {"role": "assistant", "content": "second"}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
}`

func TestOpenAIClient_GetCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 4000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-6)
		assert.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody)
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", srv.URL+"/v1", "gpt-3.5-turbo", time.Second)
	reply, err := c.GetCompletion(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hi there!\n\n", reply)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", srv.URL+"/v1", "gpt-3.5-turbo", time.Second)
	_, err := c.GetCompletion(context.Background(), nil)
	assert.ErrorIs(t, err, errNoChoices)
}

func TestService_WithUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota","type":"insufficient_quota","code":"insufficient_quota"}}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", srv.URL+"/v1", "gpt-3.5-turbo", time.Second)
	res := NewService(c, nopLogger()).GenerateReply(context.Background(), "hello")

	assert.True(t, res.Degraded)
	assert.Equal(t, FallbackReply, res.Value)
}
