package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

const sampleTranscriptXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>
    <text start="0" dur="1.5">Hello world</text>
    <text start="1.5" dur="2">Second &amp;amp; third</text>
</transcript>`

func TestParse(t *testing.T) {
	parser := NewTranscriptParser(false)

	snippets, err := parser.Parse(sampleTranscriptXML)
	assert.NoError(t, err)
	assert.Equal(t, []models.TranscriptSnippet{
		{Text: "Hello world", Start: 0, Duration: 1.5},
		{Text: "Second & third", Start: 1.5, Duration: 2},
	}, snippets)
}

func TestParseStripsMarkup(t *testing.T) {
	xmlData := `<transcript><text start="0" dur="1">Hello &amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt; &amp;lt;font color="red"&amp;gt;red&amp;lt;/font&amp;gt;</text></transcript>`

	t.Run("formatting stripped by default", func(t *testing.T) {
		parser := NewTranscriptParser(false)
		snippets, err := parser.Parse(xmlData)
		assert.NoError(t, err)
		assert.Equal(t, "Hello bold red", snippets[0].Text)
	})

	t.Run("allowed tags preserved on request", func(t *testing.T) {
		parser := NewTranscriptParser(true)
		snippets, err := parser.Parse(xmlData)
		assert.NoError(t, err)
		assert.Equal(t, "Hello <b>bold</b> red", snippets[0].Text)
	})
}

func TestParseMalformedAttributes(t *testing.T) {
	parser := NewTranscriptParser(false)

	snippets, err := parser.Parse(`<transcript><text start="oops" dur="nope">text</text></transcript>`)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, snippets[0].Start)
	assert.Equal(t, 0.0, snippets[0].Duration)
}

func TestParseInvalidXML(t *testing.T) {
	parser := NewTranscriptParser(false)

	_, err := parser.Parse(`<transcript><text`)
	assert.Error(t, err)
}
