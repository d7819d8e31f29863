package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_assistant/internal/ai"
	"github.com/Vovarama1992/voice_assistant/internal/config"
	"github.com/Vovarama1992/voice_assistant/internal/delivery"
	"github.com/Vovarama1992/voice_assistant/internal/domain"
	"github.com/Vovarama1992/voice_assistant/internal/speech"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	baseLogger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// CLIENTS (STT / CHAT / TTS)
	// =========================================================================

	sttClient := speech.NewWatsonSTT(cfg.STTURL, cfg.STTModel, cfg.STTAPIKey, cfg.UpstreamTimeout, zl)
	ttsClient := speech.NewWatsonTTS(cfg.TTSURL, cfg.TTSAPIKey, cfg.UpstreamTimeout, zl)
	openAIClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.UpstreamTimeout)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	aiService := ai.NewService(openAIClient, zl)
	assistant := domain.NewAssistantService(sttClient, aiService, ttsClient, zl)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	handler := delivery.NewAssistantHandler(assistant, zl)
	r := delivery.NewRouter(handler, cfg.CORSOrigins, zl)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Log(logger.LogEntry{Level: "error", Message: "shutdown failed", Service: "voice_assistant", Error: err})
		}
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice_assistant",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
