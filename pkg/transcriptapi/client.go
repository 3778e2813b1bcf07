// Package transcriptapi is the embeddable entry point: a client that runs
// the same fallback resolution the HTTP service uses, without the HTTP
// layer.
package transcriptapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkuchak/get-youtube-transcription/internal/provider"
	"github.com/mkuchak/get-youtube-transcription/internal/proxy"
	"github.com/mkuchak/get-youtube-transcription/internal/repository"
	"github.com/mkuchak/get-youtube-transcription/internal/resolver"
	"github.com/mkuchak/get-youtube-transcription/pkg/formatters"
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

type Client struct {
	engine    *resolver.Engine
	fetcher   repository.Fetcher
	proxyCred *proxy.Credential
	timeout   time.Duration
	formatter formatters.Formatter
	logger    *slog.Logger
}

func NewClient(options ...Option) *Client {
	formatter := formatters.NewJSONFormatter()
	formatter.Configure(formatters.WithPrettyPrint(true))

	client := &Client{
		timeout:   30 * time.Second,
		formatter: formatter,
	}

	for _, opt := range options {
		opt(client)
	}

	if client.fetcher == nil {
		client.fetcher = repository.NewHTTPFetcher(proxy.HTTPClient(client.proxyCred))
	}
	client.engine = resolver.NewEngine(provider.New(client.fetcher), client.logger)

	return client
}

// ResolveTranscript runs the fallback chain for videoID and the requested
// language.
func (c *Client) ResolveTranscript(videoID string, language string, preserveFormatting bool) (*models.ResolvedTranscript, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.engine.Resolve(ctx, videoID, language, preserveFormatting)
}

// GetFormattedTranscript resolves a transcript and renders it with the
// configured formatter.
func (c *Client) GetFormattedTranscript(videoID string, language string, preserveFormatting bool) (string, error) {
	transcript, err := c.ResolveTranscript(videoID, language, preserveFormatting)
	if err != nil {
		return "", err
	}

	return c.formatter.Format(transcript)
}
