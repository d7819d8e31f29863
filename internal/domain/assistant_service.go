package domain

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_assistant/internal/ports"
)

// Reply is the answer to one user message: cleaned text and its audio.
type Reply struct {
	Text   string
	Speech []byte
	// Degraded lists why any stage fell back to its default value.
	Degraded []error
}

type AssistantService struct {
	recognizer  ports.Recognizer
	generator   ports.ReplyGenerator
	synthesizer ports.Synthesizer
	log         *logger.ZapLogger
}

func NewAssistantService(
	recognizer ports.Recognizer,
	generator ports.ReplyGenerator,
	synthesizer ports.Synthesizer,
	log *logger.ZapLogger,
) *AssistantService {
	return &AssistantService{
		recognizer:  recognizer,
		generator:   generator,
		synthesizer: synthesizer,
		log:         log,
	}
}

func (s *AssistantService) Transcribe(ctx context.Context, audio []byte) ports.Result[string] {
	return s.recognizer.Recognize(ctx, audio)
}

// ProcessMessage runs chat, cleanup and synthesis in order. It never fails:
// each stage degrades to its default value.
func (s *AssistantService) ProcessMessage(ctx context.Context, userMessage, voice string) Reply {
	start := time.Now()

	var reply Reply

	chat := s.generator.GenerateReply(ctx, userMessage)
	if chat.Degraded {
		reply.Degraded = append(reply.Degraded, chat.Reason)
	}
	reply.Text = StripBlankLines(chat.Value)

	audio := s.synthesizer.Synthesize(ctx, reply.Text, voice)
	if audio.Degraded {
		reply.Degraded = append(reply.Degraded, audio.Reason)
	}
	reply.Speech = audio.Value

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "message processed in " + time.Since(start).Round(time.Millisecond).String(),
		Service: "assistant",
	})
	return reply
}
