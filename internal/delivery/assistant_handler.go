package delivery

import (
	"context"
	_ "embed"
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/voice_assistant/internal/domain"
	"github.com/Vovarama1992/voice_assistant/internal/ports"
)

//go:embed static/index.html
var indexPage []byte

type Assistant interface {
	Transcribe(ctx context.Context, audio []byte) ports.Result[string]
	ProcessMessage(ctx context.Context, userMessage, voice string) domain.Reply
}

type AssistantHandler struct {
	assistant Assistant
	log       *logger.ZapLogger
}

func NewAssistantHandler(assistant Assistant, log *logger.ZapLogger) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, log: log}
}

type speechToTextResponse struct {
	Text string `json:"text"`
}

type processMessageRequest struct {
	UserMessage *string `json:"userMessage"`
	Voice       *string `json:"voice"`
}

type processMessageResponse struct {
	Text   string `json:"openaiResponseText"`
	Speech string `json:"openaiResponseSpeech"`
}

var errMissingField = errors.New("userMessage and voice are required")

func (h *AssistantHandler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexPage)
}

// SpeechToText forwards the raw body, even an empty one, to the recognizer.
func (h *AssistantHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, "failed to read audio body", err)
		return
	}

	res := h.assistant.Transcribe(r.Context(), audio)
	if res.Degraded {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "no transcript", Service: "delivery", Error: res.Reason, Fields: requestFields(r)})
	}

	writeJSON(w, http.StatusOK, speechToTextResponse{Text: res.Value})
}

func (h *AssistantHandler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	var req processMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, "invalid json", err)
		return
	}
	if req.UserMessage == nil || req.Voice == nil {
		h.fail(w, r, "invalid request", errMissingField)
		return
	}

	fields := requestFields(r)
	fields["user_message"] = *req.UserMessage
	fields["voice"] = *req.Voice
	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "processing message",
		Service: "delivery",
		Fields:  fields,
	})

	reply := h.assistant.ProcessMessage(r.Context(), *req.UserMessage, *req.Voice)
	for _, reason := range reply.Degraded {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "degraded reply", Service: "delivery", Error: reason, Fields: requestFields(r)})
	}

	writeJSON(w, http.StatusOK, processMessageResponse{
		Text:   reply.Text,
		Speech: base64.StdEncoding.EncodeToString(reply.Speech),
	})
}

func (h *AssistantHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Log(logger.LogEntry{Level: "error", Message: msg, Service: "delivery", Error: err, Fields: requestFields(r)})
	writeError(w, http.StatusInternalServerError, msgInternal)
}
