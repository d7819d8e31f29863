package ports

import "context"

// Recognizer turns speech audio into a transcript.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) Result[string]
}

// ReplyGenerator answers a single user message, without history.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, userMessage string) Result[string]
}

// Synthesizer turns text into WAV audio. An empty voice selects the vendor default.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) Result[[]byte]
}
