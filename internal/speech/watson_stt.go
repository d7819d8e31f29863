package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/voice_assistant/internal/ports"
)

// NoTranscript is returned in place of a transcript when nothing was recognized
// or the recognition call failed.
const NoTranscript = "null"

var (
	errNoResults         = errors.New("no recognition results")
	errNoAlternatives    = errors.New("no alternatives in first result")
	errMissingTranscript = errors.New("transcript field missing")
)

type WatsonSTT struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
	log      *logger.ZapLogger
}

func NewWatsonSTT(baseURL, model, apiKey string, timeout time.Duration, log *logger.ZapLogger) *WatsonSTT {
	return &WatsonSTT{
		endpoint: baseURL + "/speech-to-text/api/v1/recognize",
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript *string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Recognize sends audio as-is and returns the best transcript of the first result.
func (c *WatsonSTT) Recognize(ctx context.Context, audio []byte) ports.Result[string] {
	text, err := c.recognize(ctx, audio)
	if err != nil {
		c.log.Log(logger.LogEntry{Level: "warn", Message: "speech-to-text degraded", Service: "speech", Error: err})
		return ports.Degrade(NoTranscript, err)
	}
	c.log.Log(logger.LogEntry{Level: "info", Message: "recognized text: " + text, Service: "speech"})
	return ports.OK(text)
}

func (c *WatsonSTT) recognize(ctx context.Context, audio []byte) (string, error) {
	q := url.Values{}
	q.Set("model", c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	// octet-stream lets the service detect the codec itself
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiKey != "" {
		req.SetBasicAuth("apikey", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read stt body: %w", err)
	}
	c.log.Log(logger.LogEntry{Level: "debug", Message: "speech-to-text response: " + string(body), Service: "speech"})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("stt status: %s", resp.Status)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode stt: %w", err)
	}

	if len(parsed.Results) == 0 {
		return "", errNoResults
	}
	alts := parsed.Results[0].Alternatives
	if len(alts) == 0 {
		return "", errNoAlternatives
	}
	if alts[0].Transcript == nil {
		return "", errMissingTranscript
	}
	return *alts[0].Transcript, nil
}
