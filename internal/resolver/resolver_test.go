package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkuchak/get-youtube-transcription/internal/provider"
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ListCatalog(ctx context.Context, videoID string) (*models.TranscriptCatalog, error) {
	args := m.Called(ctx, videoID)
	catalog, _ := args.Get(0).(*models.TranscriptCatalog)
	return catalog, args.Error(1)
}

func (m *mockProvider) Fetch(ctx context.Context, descriptor models.TranscriptDescriptor, preserveFormatting bool) ([]models.TranscriptSnippet, error) {
	args := m.Called(ctx, descriptor, preserveFormatting)
	snippets, _ := args.Get(0).([]models.TranscriptSnippet)
	return snippets, args.Error(1)
}

func (m *mockProvider) Translate(descriptor models.TranscriptDescriptor, languageCode string) (models.TranscriptDescriptor, error) {
	args := m.Called(descriptor, languageCode)
	return args.Get(0).(models.TranscriptDescriptor), args.Error(1)
}

func (m *mockProvider) DirectFetch(ctx context.Context, videoID string, languageCode string, preserveFormatting bool) (models.TranscriptDescriptor, []models.TranscriptSnippet, error) {
	args := m.Called(ctx, videoID, languageCode, preserveFormatting)
	snippets, _ := args.Get(1).([]models.TranscriptSnippet)
	return args.Get(0).(models.TranscriptDescriptor), snippets, args.Error(2)
}

var snippets = []models.TranscriptSnippet{{Text: "hello", Start: 0, Duration: 1}}

func descriptorsOnly(descriptors ...models.TranscriptDescriptor) *models.TranscriptCatalog {
	return &models.TranscriptCatalog{
		VideoID:     "abc123",
		VideoTitle:  "Test Video",
		Descriptors: descriptors,
	}
}

func TestResolvePrefersManualOverGenerated(t *testing.T) {
	manual := models.TranscriptDescriptor{LanguageCode: "en", FetchURL: "manual-en"}
	generated := models.TranscriptDescriptor{LanguageCode: "en", IsGenerated: true, FetchURL: "generated-en"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(generated, manual), nil)
	p.On("Fetch", mock.Anything, manual, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "en", result.LanguageCode)
	assert.False(t, result.IsGenerated)
	assert.False(t, result.Translated)
	assert.Equal(t, "Test Video", result.VideoTitle)
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Fetch", mock.Anything, generated, false)
}

func TestResolveFallsBackToGeneratedOriginalLanguage(t *testing.T) {
	generatedES := models.TranscriptDescriptor{LanguageCode: "es", IsGenerated: true, FetchURL: "generated-es"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(generatedES), nil)
	p.On("Fetch", mock.Anything, generatedES, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "es", result.LanguageCode)
	assert.True(t, result.IsGenerated)
	assert.False(t, result.Translated)
	p.AssertExpectations(t)
}

func TestResolveTranslatesManualTranscript(t *testing.T) {
	manualFR := models.TranscriptDescriptor{LanguageCode: "fr", IsTranslatable: true, FetchURL: "manual-fr"}
	translatedEN := models.TranscriptDescriptor{LanguageCode: "en", IsTranslatable: true, FetchURL: "manual-fr&tlang=en"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(manualFR), nil)
	p.On("Translate", manualFR, "en").Return(translatedEN, nil)
	p.On("Fetch", mock.Anything, translatedEN, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "en", result.LanguageCode)
	assert.True(t, result.Translated)
	assert.Equal(t, "fr", result.OriginalLanguage)
	assert.False(t, result.IsGenerated)
	p.AssertExpectations(t)
}

func TestResolveSkipsNonTranslatableManual(t *testing.T) {
	manualFR := models.TranscriptDescriptor{LanguageCode: "fr", FetchURL: "manual-fr"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(manualFR), nil)
	// Translated-manual step has no candidate; the any-transcript step
	// should pick the French track as-is.
	p.On("Fetch", mock.Anything, manualFR, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "fr", result.LanguageCode)
	assert.True(t, result.FallbackUsed)
	p.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
}

func TestResolveStepFailureContinuesChain(t *testing.T) {
	manualEN := models.TranscriptDescriptor{LanguageCode: "en", FetchURL: "manual-en"}
	generatedES := models.TranscriptDescriptor{LanguageCode: "es", IsGenerated: true, FetchURL: "generated-es"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(manualEN, generatedES), nil)
	p.On("Fetch", mock.Anything, manualEN, false).Return(nil, errors.New("fetch failed"))
	p.On("Fetch", mock.Anything, generatedES, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "es", result.LanguageCode)
	assert.True(t, result.IsGenerated)
}

func TestResolveAnyAvailableLastResort(t *testing.T) {
	manualDE := models.TranscriptDescriptor{LanguageCode: "de", FetchURL: "manual-de"}
	manualFR := models.TranscriptDescriptor{LanguageCode: "fr", FetchURL: "manual-fr"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(manualDE, manualFR), nil)
	p.On("Fetch", mock.Anything, manualDE, false).Return(nil, errors.New("fetch failed"))
	p.On("Fetch", mock.Anything, manualFR, false).Return(snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "fr", result.LanguageCode)
	assert.True(t, result.FallbackUsed)
}

func TestResolveExhaustion(t *testing.T) {
	manualDE := models.TranscriptDescriptor{LanguageCode: "de", FetchURL: "manual-de"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(descriptorsOnly(manualDE), nil)
	p.On("Fetch", mock.Anything, mock.Anything, false).Return(nil, errors.New("fetch failed"))

	engine := NewEngine(p, nil)
	_, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.ErrorIs(t, err, ErrExhausted)
}

func TestResolveVideoUnavailableIsFatal(t *testing.T) {
	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(nil, provider.ErrVideoUnavailable)

	engine := NewEngine(p, nil)
	_, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.ErrorIs(t, err, provider.ErrVideoUnavailable)
	p.AssertNotCalled(t, "DirectFetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveNoCaptionsMapsToExhaustion(t *testing.T) {
	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(nil, provider.ErrNoCaptions)

	engine := NewEngine(p, nil)
	_, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.ErrorIs(t, err, ErrExhausted)
	p.AssertNotCalled(t, "DirectFetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveDirectFetchFallbackOnListingFailure(t *testing.T) {
	connErr := &provider.ConnectionError{Op: "catalog listing", Err: errors.New("connection reset")}
	descriptor := models.TranscriptDescriptor{LanguageCode: "en", IsGenerated: true, FetchURL: "direct-en"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(nil, connErr)
	p.On("DirectFetch", mock.Anything, "abc123", "en", false).Return(descriptor, snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "en", result.LanguageCode)
	assert.True(t, result.FallbackUsed)
	p.AssertExpectations(t)
}

func TestResolveDirectFetchTriesPartialCatalogLanguages(t *testing.T) {
	connErr := &provider.ConnectionError{Op: "catalog listing", Err: errors.New("connection reset")}
	partial := descriptorsOnly(models.TranscriptDescriptor{LanguageCode: "pt"})
	descriptor := models.TranscriptDescriptor{LanguageCode: "pt", FetchURL: "direct-pt"}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(partial, connErr)
	p.On("DirectFetch", mock.Anything, "abc123", "en", false).
		Return(models.TranscriptDescriptor{}, nil, errors.New("no track"))
	p.On("DirectFetch", mock.Anything, "abc123", "pt", false).Return(descriptor, snippets, nil)

	engine := NewEngine(p, nil)
	result, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, "pt", result.LanguageCode)
	p.AssertExpectations(t)
}

func TestResolveDirectFetchExhaustionSurfacesConnectionError(t *testing.T) {
	connErr := &provider.ConnectionError{Op: "catalog listing", Err: errors.New("connection reset")}

	p := &mockProvider{}
	p.On("ListCatalog", mock.Anything, "abc123").Return(nil, connErr)
	p.On("DirectFetch", mock.Anything, "abc123", "en", false).
		Return(models.TranscriptDescriptor{}, nil, errors.New("still down"))

	engine := NewEngine(p, nil)
	_, err := engine.Resolve(context.Background(), "abc123", "en", false)

	assert.ErrorIs(t, err, ErrExhausted)
	var connection *provider.ConnectionError
	assert.ErrorAs(t, err, &connection)
}
