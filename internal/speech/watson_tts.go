package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/voice_assistant/internal/ports"
)

// DefaultVoice selects the vendor's default voice, same as an empty selector.
const DefaultVoice = "default"

type WatsonTTS struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *logger.ZapLogger
}

func NewWatsonTTS(baseURL, apiKey string, timeout time.Duration, log *logger.ZapLogger) *WatsonTTS {
	return &WatsonTTS{
		endpoint: baseURL + "/text-to-speech/api/v1/synthesize",
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// synthesizeURL builds the request URL; the voice parameter is left out for
// the default selectors.
func (c *WatsonTTS) synthesizeURL(voice string) string {
	q := url.Values{}
	q.Set("output", "output_text.wav")
	if voice != "" && voice != DefaultVoice {
		q.Set("voice", voice)
	}
	return c.endpoint + "?" + q.Encode()
}

// Synthesize returns the response body as WAV audio.
//
// The body is returned whatever the HTTP status. A non-2xx body is marked
// degraded but still handed back, so an upstream error page can reach the
// client as "audio".
func (c *WatsonTTS) Synthesize(ctx context.Context, text, voice string) ports.Result[[]byte] {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return c.degrade(fmt.Errorf("encode tts payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.synthesizeURL(voice), bytes.NewReader(payload))
	if err != nil {
		return c.degrade(err)
	}
	req.Header.Set("Accept", "audio/wav")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.SetBasicAuth("apikey", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.degrade(fmt.Errorf("tts request: %w", err))
	}
	defer resp.Body.Close()

	c.log.Log(logger.LogEntry{Level: "info", Message: "text-to-speech status: " + strconv.Itoa(resp.StatusCode), Service: "speech"})

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.degrade(fmt.Errorf("read tts body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("tts status: %s", resp.Status)
		c.log.Log(logger.LogEntry{Level: "warn", Message: "text-to-speech returned error body as audio", Service: "speech", Error: err})
		return ports.Degrade(audio, err)
	}
	return ports.OK(audio)
}

func (c *WatsonTTS) degrade(err error) ports.Result[[]byte] {
	c.log.Log(logger.LogEntry{Level: "warn", Message: "text-to-speech degraded", Service: "speech", Error: err})
	return ports.Degrade([]byte{}, err)
}
