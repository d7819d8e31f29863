package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	Port string

	STTURL    string
	STTModel  string
	STTAPIKey string

	TTSURL    string
	TTSAPIKey string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	UpstreamTimeout time.Duration
	LogLevel        string
	CORSOrigins     []string
}

var ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY not set")

// Load reads .env (if present) and the environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		STTURL:          strings.TrimRight(getEnv("STT_URL", "https://sn-watson-stt.labs.skills.network"), "/"),
		STTModel:        getEnv("STT_MODEL", "en-US_Multimedia"),
		STTAPIKey:       os.Getenv("WATSON_STT_API_KEY"),
		TTSURL:          strings.TrimRight(getEnv("TTS_URL", "https://sn-watson-tts.labs.skills.network"), "/"),
		TTSAPIKey:       os.Getenv("WATSON_TTS_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingOpenAIKey
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
