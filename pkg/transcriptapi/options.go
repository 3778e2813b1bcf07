package transcriptapi

import (
	"log/slog"
	"time"

	"github.com/mkuchak/get-youtube-transcription/internal/proxy"
	"github.com/mkuchak/get-youtube-transcription/internal/repository"
	"github.com/mkuchak/get-youtube-transcription/pkg/formatters"
)

type Option func(*Client)

// WithCustomFetcher substitutes the upstream fetcher, mainly for tests.
func WithCustomFetcher(fetcher repository.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = fetcher
	}
}

// WithProxy routes upstream calls through a "username:password@host:port"
// proxy. Strings that do not match that shape are ignored.
func WithProxy(proxyString string) Option {
	return func(c *Client) {
		c.proxyCred = proxy.Parse(proxyString)
	}
}

// WithTimeout bounds one whole resolution attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithFormatter(formatter formatters.Formatter) Option {
	return func(c *Client) {
		c.formatter = formatter
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
