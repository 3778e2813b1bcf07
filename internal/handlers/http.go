// Package handlers exposes the HTTP surface: request validation, proxy
// credential decryption, and mapping of resolution outcomes onto status
// codes and JSON payloads.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mkuchak/get-youtube-transcription/internal/config"
	"github.com/mkuchak/get-youtube-transcription/internal/crypto"
	"github.com/mkuchak/get-youtube-transcription/internal/provider"
	"github.com/mkuchak/get-youtube-transcription/internal/proxy"
	"github.com/mkuchak/get-youtube-transcription/internal/resolver"
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

// Resolver runs the fallback chain for one request.
type Resolver interface {
	Resolve(ctx context.Context, videoID string, language string, preserveFormatting bool) (*models.ResolvedTranscript, error)
}

// ResolverFactory builds a Resolver whose upstream calls are routed through
// cred. A nil credential means a direct connection.
type ResolverFactory func(cred *proxy.Credential) Resolver

type TranscriptHandler struct {
	cfg         config.Config
	newResolver ResolverFactory
	logger      *slog.Logger
}

func NewTranscriptHandler(cfg config.Config, factory ResolverFactory, logger *slog.Logger) *TranscriptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranscriptHandler{
		cfg:         cfg,
		newResolver: factory,
		logger:      logger,
	}
}

type transcriptRequest struct {
	VideoID            string `json:"videoId"`
	Language           string `json:"language"`
	Proxy              string `json:"proxy"`
	PreserveFormatting bool   `json:"preserveFormatting"`
}

type transcriptResponse struct {
	Transcript       []models.TranscriptSnippet `json:"transcript"`
	Language         string                     `json:"language"`
	IsGenerated      bool                       `json:"is_generated"`
	Translated       bool                       `json:"translated,omitempty"`
	OriginalLanguage string                     `json:"original_language,omitempty"`
	Fallback         bool                       `json:"fallback,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *TranscriptHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := h.logger.With("request_id", uuid.NewString())

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing JSON body")
		return
	}

	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "Missing videoId in request body")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	logger.Info("transcript requested", "video_id", req.VideoID, "language", req.Language)

	cred, status, message := h.proxyCredential(req.Proxy, logger)
	if message != "" {
		writeError(w, status, message)
		return
	}

	result, err := h.newResolver(cred).Resolve(r.Context(), req.VideoID, req.Language, req.PreserveFormatting)
	if err != nil {
		h.writeResolutionError(w, logger, req.VideoID, err)
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		Transcript:       result.Snippets,
		Language:         result.LanguageCode,
		IsGenerated:      result.IsGenerated,
		Translated:       result.Translated,
		OriginalLanguage: result.OriginalLanguage,
		Fallback:         result.FallbackUsed,
	})
}

// proxyCredential resolves which proxy the request should use: the
// per-request encrypted credential when present, otherwise the static
// always-on proxy when configured. A non-empty message means the request
// must be rejected with the paired status.
func (h *TranscriptHandler) proxyCredential(encrypted string, logger *slog.Logger) (*proxy.Credential, int, string) {
	if encrypted == "" {
		if h.cfg.StaticProxy != nil {
			logger.Info("using static proxy configuration", "proxy", h.cfg.StaticProxy.Redacted())
			return h.cfg.StaticProxy, 0, ""
		}
		return nil, 0, ""
	}

	if h.cfg.SecretKey == "" {
		return nil, http.StatusInternalServerError, "Secret key not configured"
	}

	plaintext, err := crypto.Decrypt(encrypted, h.cfg.SecretKey)
	if err != nil {
		logger.Warn("proxy decryption failed")
		return nil, http.StatusBadRequest, "Failed to decrypt proxy string"
	}
	if plaintext == "" {
		return nil, 0, ""
	}

	cred := proxy.Parse(plaintext)
	if cred == nil {
		return nil, http.StatusBadRequest, "Invalid proxy string format. Expected format: username:password@hostname:port"
	}

	logger.Info("using proxy configuration for request", "proxy", cred.Redacted())
	return cred, 0, ""
}

func (h *TranscriptHandler) writeResolutionError(w http.ResponseWriter, logger *slog.Logger, videoID string, err error) {
	switch {
	case errors.Is(err, provider.ErrVideoUnavailable):
		logger.Info("video unavailable", "video_id", videoID)
		writeError(w, http.StatusNotFound, "Video is unavailable")
	case isConnectionError(err):
		logger.Error("upstream unreachable", "video_id", videoID, "error", err)
		writeError(w, http.StatusInternalServerError, "Upstream transcript provider is unreachable")
	case errors.Is(err, resolver.ErrExhausted):
		logger.Info("resolution exhausted", "video_id", videoID)
		writeError(w, http.StatusNotFound, "No transcript found for this video after multiple attempts")
	default:
		logger.Error("transcript resolution failed", "video_id", videoID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve transcript")
	}
}

func isConnectionError(err error) bool {
	var connErr *provider.ConnectionError
	return errors.As(err, &connErr)
}

func (h *TranscriptHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
