package transcriptapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkuchak/get-youtube-transcription/internal/repository/fixtures"
	"github.com/mkuchak/get-youtube-transcription/pkg/formatters"
)

const watchPage = `<title>Test Video</title>{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"http://example.com/manual-en","name":{"simpleText":"English"},"languageCode":"en","isTranslatable":true}` +
	`]}},"videoDetails":{}}`

const captionXML = `<transcript><text start="0" dur="1">Hello world</text></transcript>`

func TestClientResolveTranscript(t *testing.T) {
	fetcher := &fixtures.MockFetcher{}
	fetcher.On("FetchVideo", mock.Anything, "abc123").Return([]byte(watchPage), nil)
	fetcher.On("Fetch", mock.Anything, "http://example.com/manual-en", mock.Anything).Return([]byte(captionXML), nil)

	client := NewClient(WithCustomFetcher(fetcher))

	transcript, err := client.ResolveTranscript("abc123", "en", false)
	assert.NoError(t, err)
	assert.Equal(t, "en", transcript.LanguageCode)
	assert.Equal(t, "Test Video", transcript.VideoTitle)
	assert.Len(t, transcript.Snippets, 1)
}

func TestClientGetFormattedTranscript(t *testing.T) {
	fetcher := &fixtures.MockFetcher{}
	fetcher.On("FetchVideo", mock.Anything, "abc123").Return([]byte(watchPage), nil)
	fetcher.On("Fetch", mock.Anything, "http://example.com/manual-en", mock.Anything).Return([]byte(captionXML), nil)

	client := NewClient(
		WithCustomFetcher(fetcher),
		WithFormatter(formatters.NewTextFormatter(formatters.WithTimestamps(false), formatters.WithLanguage(false))),
	)

	out, err := client.GetFormattedTranscript("abc123", "en", false)
	assert.NoError(t, err)
	assert.Equal(t, "Hello world\n", out)
}
