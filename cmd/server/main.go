package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mkuchak/get-youtube-transcription/internal/config"
	"github.com/mkuchak/get-youtube-transcription/internal/handlers"
	"github.com/mkuchak/get-youtube-transcription/internal/provider"
	"github.com/mkuchak/get-youtube-transcription/internal/proxy"
	"github.com/mkuchak/get-youtube-transcription/internal/repository"
	"github.com/mkuchak/get-youtube-transcription/internal/resolver"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Each request gets its own engine because the proxy credential decides
	// how the upstream HTTP client is built.
	factory := func(cred *proxy.Credential) handlers.Resolver {
		fetcher := repository.NewHTTPFetcher(proxy.HTTPClient(cred))
		return resolver.NewEngine(provider.New(fetcher), logger)
	}

	handler := handlers.NewTranscriptHandler(cfg, factory, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/transcript", handler.HandleTranscript)
	mux.HandleFunc("/healthz", handler.HandleHealthz)

	logger.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
