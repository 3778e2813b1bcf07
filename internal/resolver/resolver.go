// Package resolver applies the ordered fallback policy that turns "best
// available transcript for a language" into one concrete fetched transcript.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkuchak/get-youtube-transcription/internal/provider"
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

// ErrExhausted is returned when every resolution step failed.
var ErrExhausted = errors.New("no transcript found after exhaustion")

// Provider is the upstream collaborator the engine drives. The concrete
// implementation lives in the provider package; tests substitute their own.
type Provider interface {
	ListCatalog(ctx context.Context, videoID string) (*models.TranscriptCatalog, error)
	Fetch(ctx context.Context, descriptor models.TranscriptDescriptor, preserveFormatting bool) ([]models.TranscriptSnippet, error)
	Translate(descriptor models.TranscriptDescriptor, languageCode string) (models.TranscriptDescriptor, error)
	DirectFetch(ctx context.Context, videoID string, languageCode string, preserveFormatting bool) (models.TranscriptDescriptor, []models.TranscriptSnippet, error)
}

// Engine resolves transcripts by trying an ordered list of strategies until
// one succeeds. Step-local failures are demoted to "try the next step";
// only video-unavailable or total exhaustion reach the caller.
type Engine struct {
	provider Provider
	logger   *slog.Logger
}

func NewEngine(p Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{provider: p, logger: logger}
}

// request carries the immutable inputs of one resolution attempt.
type request struct {
	catalog            *models.TranscriptCatalog
	language           string
	preserveFormatting bool
}

// A step inspects the catalog snapshot and either produces a resolved
// transcript, reports that it has no candidate (nil, nil), or fails with an
// error the driver logs and moves past.
type step struct {
	name string
	run  func(ctx context.Context, req request) (*models.ResolvedTranscript, error)
}

// Resolve fetches the catalog once and runs the fallback chain against that
// snapshot. When the listing itself fails with a connection-class error it
// falls through to single-shot direct fetches instead.
func (e *Engine) Resolve(ctx context.Context, videoID string, language string, preserveFormatting bool) (*models.ResolvedTranscript, error) {
	catalog, err := e.provider.ListCatalog(ctx, videoID)
	if err != nil {
		if errors.Is(err, provider.ErrVideoUnavailable) || errors.Is(err, provider.ErrTooManyRequests) {
			return nil, err
		}
		if errors.Is(err, provider.ErrNoCaptions) {
			return nil, fmt.Errorf("%w: %w", ErrExhausted, err)
		}
		e.logger.Warn("catalog listing failed, attempting direct fetch",
			"video_id", videoID, "error", err)
		return e.directFetchFallback(ctx, videoID, language, preserveFormatting, catalog, err)
	}

	req := request{
		catalog:            catalog,
		language:           language,
		preserveFormatting: preserveFormatting,
	}

	steps := []step{
		{name: "manual exact match", run: e.exactManual},
		{name: "any generated, original language", run: e.anyGenerated},
		{name: "manual translated to requested language", run: e.translatedManual},
		{name: "any transcript, any language", run: e.anyAvailable},
	}

	for _, s := range steps {
		result, err := s.run(ctx, req)
		if err != nil {
			e.logger.Debug("resolution step failed",
				"step", s.name, "video_id", videoID, "language", language, "error", err)
			continue
		}
		if result == nil {
			continue
		}
		result.VideoID = catalog.VideoID
		result.VideoTitle = catalog.VideoTitle
		return result, nil
	}

	return nil, ErrExhausted
}

// exactManual looks for a human-authored transcript in the requested
// language.
func (e *Engine) exactManual(ctx context.Context, req request) (*models.ResolvedTranscript, error) {
	for _, d := range req.catalog.Descriptors {
		if d.IsGenerated || d.LanguageCode != req.language {
			continue
		}
		snippets, err := e.provider.Fetch(ctx, d, req.preserveFormatting)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch manual transcript in %s: %w", req.language, err)
		}
		return &models.ResolvedTranscript{
			LanguageCode: d.LanguageCode,
			IsGenerated:  false,
			Snippets:     snippets,
		}, nil
	}
	return nil, nil
}

// anyGenerated takes the first generated transcript in catalog order,
// fetched in its own language. The provider exposes no cross-language
// quality signal, so catalog order decides.
func (e *Engine) anyGenerated(ctx context.Context, req request) (*models.ResolvedTranscript, error) {
	for _, d := range req.catalog.Descriptors {
		if !d.IsGenerated {
			continue
		}
		snippets, err := e.provider.Fetch(ctx, d, req.preserveFormatting)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch generated transcript in %s: %w", d.LanguageCode, err)
		}
		return &models.ResolvedTranscript{
			LanguageCode: d.LanguageCode,
			IsGenerated:  true,
			Snippets:     snippets,
		}, nil
	}
	return nil, nil
}

// translatedManual translates the first manual, translatable transcript
// into the requested language.
func (e *Engine) translatedManual(ctx context.Context, req request) (*models.ResolvedTranscript, error) {
	for _, d := range req.catalog.Descriptors {
		if d.IsGenerated || !d.IsTranslatable {
			continue
		}
		translated, err := e.provider.Translate(d, req.language)
		if err != nil {
			return nil, fmt.Errorf("failed to translate transcript from %s: %w", d.LanguageCode, err)
		}
		snippets, err := e.provider.Fetch(ctx, translated, req.preserveFormatting)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch translated transcript: %w", err)
		}
		return &models.ResolvedTranscript{
			LanguageCode:     req.language,
			IsGenerated:      false,
			Translated:       true,
			OriginalLanguage: d.LanguageCode,
			Snippets:         snippets,
		}, nil
	}
	return nil, nil
}

// anyAvailable walks the whole catalog in order and returns the first
// transcript that fetches successfully, whatever its language.
func (e *Engine) anyAvailable(ctx context.Context, req request) (*models.ResolvedTranscript, error) {
	var lastErr error
	for _, d := range req.catalog.Descriptors {
		snippets, err := e.provider.Fetch(ctx, d, req.preserveFormatting)
		if err != nil {
			lastErr = err
			e.logger.Debug("last-resort fetch failed",
				"language", d.LanguageCode, "error", err)
			continue
		}
		return &models.ResolvedTranscript{
			LanguageCode: d.LanguageCode,
			IsGenerated:  d.IsGenerated,
			FallbackUsed: true,
			Snippets:     snippets,
		}, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("every catalog entry failed to fetch: %w", lastErr)
	}
	return nil, nil
}

// directFetchFallback runs when the catalog path itself failed: one direct
// fetch by the requested language, then by each language code a partial
// listing revealed before failing.
func (e *Engine) directFetchFallback(ctx context.Context, videoID string, language string, preserveFormatting bool, partial *models.TranscriptCatalog, listErr error) (*models.ResolvedTranscript, error) {
	candidates := []string{language}
	if partial != nil {
		for _, code := range partial.LanguageCodes() {
			if code != language {
				candidates = append(candidates, code)
			}
		}
	}

	for _, candidate := range candidates {
		descriptor, snippets, err := e.provider.DirectFetch(ctx, videoID, candidate, preserveFormatting)
		if err != nil {
			if errors.Is(err, provider.ErrVideoUnavailable) {
				return nil, err
			}
			e.logger.Debug("direct fetch failed",
				"video_id", videoID, "language", candidate, "error", err)
			continue
		}
		return &models.ResolvedTranscript{
			VideoID:      videoID,
			LanguageCode: descriptor.LanguageCode,
			IsGenerated:  descriptor.IsGenerated,
			FallbackUsed: true,
			Snippets:     snippets,
		}, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrExhausted, listErr)
}
