package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/cenkalti/backoff/v5"
)

var videoBaseURL = "https://www.youtube.com/watch?v=%s"

const (
	fetchMaxTries  = 3
	requestTimeout = 30 * time.Second
)

// Fetcher retrieves raw upstream payloads: watch pages and caption
// documents.
type Fetcher interface {
	Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error)
	FetchVideo(ctx context.Context, videoID string) ([]byte, error)
}

// HTTPFetcher fetches over a caller-supplied HTTP client, which is how
// per-request proxy routing is injected.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil || client == http.DefaultClient {
		client = &http.Client{Timeout: requestTimeout}
	} else if client.Timeout == 0 {
		clone := *client
		clone.Timeout = requestTimeout
		client = &clone
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("Accept-Language", "en-US")
		if cookie != nil {
			req.AddCookie(cookie)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		if len(body) == 0 {
			return nil, fmt.Errorf("empty response body")
		}

		return body, nil
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(fetchMaxTries),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch after retries: %w", err)
	}
	return body, nil
}

func (f *HTTPFetcher) FetchVideo(ctx context.Context, videoID string) ([]byte, error) {
	videoURL := fmt.Sprintf(videoBaseURL, videoID)

	body, err := f.Fetch(ctx, videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video page: %w", err)
	}

	if consentRequired(body) {
		cookie, err := f.createConsentCookie(ctx, videoURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create consent cookie: %w", err)
		}

		body, err = f.Fetch(ctx, videoURL, cookie)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video page after setting consent: %w", err)
		}
	}

	return body, nil
}

func (f *HTTPFetcher) createConsentCookie(ctx context.Context, videoURL string) (*http.Cookie, error) {
	html, err := f.Fetch(ctx, videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTML to extract consent value: %w", err)
	}

	re := regexp.MustCompile(`name="v" value="(.*?)"`)
	match := re.FindSubmatch(html)
	if len(match) < 2 {
		return nil, fmt.Errorf("failed to find consent value in HTML")
	}
	consentValue := string(match[1])

	cookie := &http.Cookie{
		Name:   "CONSENT",
		Value:  "YES+" + consentValue,
		Domain: ".youtube.com",
	}
	return cookie, nil
}

func consentRequired(body []byte) bool {
	consentRegex := regexp.MustCompile(`action="https://consent\.youtube\.com/s`)
	return consentRegex.Match(body)
}
