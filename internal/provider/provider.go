// Package provider implements the upstream transcript collaborator: listing
// the catalog of available transcripts for a video and fetching or
// translating individual transcripts from it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/mkuchak/get-youtube-transcription/internal/repository"
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

// watch-page JSON shapes, only the fields the lister needs.
type captionTrack struct {
	BaseUrl        string  `json:"baseUrl"`
	Name           name    `json:"name"`
	LanguageCode   string  `json:"languageCode"`
	Kind           *string `json:"kind"`
	IsTranslatable bool    `json:"isTranslatable"`
}

type name struct {
	SimpleText string `json:"simpleText"`
}

type captionsRenderer struct {
	CaptionTracks []captionTrack `json:"captionTracks"`
}

type captionsPayload struct {
	PlayerCaptionsTracklistRenderer *captionsRenderer `json:"playerCaptionsTracklistRenderer"`
}

// YouTubeProvider lists and fetches transcripts from YouTube watch pages
// and timedtext endpoints.
type YouTubeProvider struct {
	fetcher repository.Fetcher
}

func New(fetcher repository.Fetcher) *YouTubeProvider {
	return &YouTubeProvider{fetcher: fetcher}
}

// ListCatalog fetches the watch page once and extracts the ordered set of
// available transcript descriptors. Upstream conditions are surfaced as
// ErrVideoUnavailable, ErrTooManyRequests or ErrNoCaptions; transport
// failures come back as *ConnectionError.
func (p *YouTubeProvider) ListCatalog(ctx context.Context, videoID string) (*models.TranscriptCatalog, error) {
	videoID = sanitizeVideoID(videoID)

	page, err := p.fetcher.FetchVideo(ctx, videoID)
	if err != nil {
		return nil, &ConnectionError{Op: "catalog listing", Err: err}
	}

	body := string(page)

	parts := strings.Split(body, `"captions":`)
	if len(parts) <= 1 {
		if strings.Contains(body, `class="g-recaptcha"`) {
			return nil, ErrTooManyRequests
		}
		if !strings.Contains(body, `"playabilityStatus":`) {
			return nil, ErrVideoUnavailable
		}
		return nil, ErrNoCaptions
	}

	rawCaptions := strings.Split(parts[1], `,"videoDetails`)[0]
	rawCaptions = strings.ReplaceAll(rawCaptions, "\n", "")

	var payload captionsPayload
	if err := json.Unmarshal([]byte(rawCaptions), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal captions JSON: %w", err)
	}
	if payload.PlayerCaptionsTracklistRenderer == nil {
		return nil, ErrNoCaptions
	}

	tracks := payload.PlayerCaptionsTracklistRenderer.CaptionTracks
	descriptors := make([]models.TranscriptDescriptor, 0, len(tracks))
	for _, track := range tracks {
		descriptors = append(descriptors, models.TranscriptDescriptor{
			Language:       track.Name.SimpleText,
			LanguageCode:   track.LanguageCode,
			IsGenerated:    track.Kind != nil && *track.Kind == "asr",
			IsTranslatable: track.IsTranslatable,
			FetchURL:       track.BaseUrl,
		})
	}

	return &models.TranscriptCatalog{
		VideoID:     videoID,
		VideoTitle:  extractTitle(body),
		Descriptors: descriptors,
	}, nil
}

// Fetch retrieves and parses the transcript content behind one descriptor.
func (p *YouTubeProvider) Fetch(ctx context.Context, descriptor models.TranscriptDescriptor, preserveFormatting bool) ([]models.TranscriptSnippet, error) {
	body, err := p.fetcher.Fetch(ctx, descriptor.FetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	parser := repository.NewTranscriptParser(preserveFormatting)

	snippets, err := parser.Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	return snippets, nil
}

// Translate derives a descriptor whose fetch yields the transcript
// translated into languageCode. Only translatable descriptors support it.
func (p *YouTubeProvider) Translate(descriptor models.TranscriptDescriptor, languageCode string) (models.TranscriptDescriptor, error) {
	if !descriptor.IsTranslatable {
		return models.TranscriptDescriptor{}, ErrNotTranslatable
	}

	fetchURL, err := url.Parse(descriptor.FetchURL)
	if err != nil {
		return models.TranscriptDescriptor{}, fmt.Errorf("failed to parse transcript URL: %w", err)
	}
	query := fetchURL.Query()
	query.Set("tlang", languageCode)
	fetchURL.RawQuery = query.Encode()

	translated := descriptor
	translated.LanguageCode = languageCode
	translated.FetchURL = fetchURL.String()
	return translated, nil
}

// DirectFetch is the single-shot path used when the catalog could not be
// obtained: one fresh listing attempt narrowed to languageCode, manual
// transcripts preferred.
func (p *YouTubeProvider) DirectFetch(ctx context.Context, videoID string, languageCode string, preserveFormatting bool) (models.TranscriptDescriptor, []models.TranscriptSnippet, error) {
	catalog, err := p.ListCatalog(ctx, videoID)
	if err != nil {
		return models.TranscriptDescriptor{}, nil, err
	}

	var found *models.TranscriptDescriptor
	for i := range catalog.Descriptors {
		d := catalog.Descriptors[i]
		if d.LanguageCode != languageCode {
			continue
		}
		if found == nil || (found.IsGenerated && !d.IsGenerated) {
			found = &d
		}
	}
	if found == nil {
		return models.TranscriptDescriptor{}, nil, fmt.Errorf("%w for language %q", ErrNoCaptions, languageCode)
	}

	snippets, err := p.Fetch(ctx, *found, preserveFormatting)
	if err != nil {
		return models.TranscriptDescriptor{}, nil, err
	}
	return *found, snippets, nil
}

// extractTitle pulls the first <title> element out of the watch page.
func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				title = n.FirstChild.Data
				return
			}
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title
}

// sanitizeVideoID accepts either a bare video id or a full watch URL and
// reduces the latter to its "v" parameter.
func sanitizeVideoID(videoID string) string {
	if strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://") || strings.HasPrefix(videoID, "www.") {
		if strings.Contains(videoID, "youtube.com") {
			u, err := url.Parse(videoID)
			if err != nil {
				return videoID
			}
			return u.Query().Get("v")
		}
	}
	return videoID
}
