package repository

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

// transcriptParser turns caption XML documents into snippet lists.
type transcriptParser struct {
	preserveFormatting bool
}

// Formatting tags kept when formatting preservation is requested.
var formattingTags = []string{
	"strong", "em", "b", "i", "mark", "small", "del", "ins", "sub", "sup",
}

var htmlTagRegex = regexp.MustCompile(`(?i)<[^>]*>`)

// NewTranscriptParser initializes the parser with or without preserving
// formatting tags.
func NewTranscriptParser(preserveFormatting bool) *transcriptParser {
	return &transcriptParser{preserveFormatting: preserveFormatting}
}

// cleanText unescapes HTML entities and strips markup. When formatting is
// preserved, allowed tags are shielded with placeholder bytes before the
// strip and restored afterwards (RE2 has no lookahead to exclude them in
// the pattern itself).
func (p *transcriptParser) cleanText(text string) string {
	cleaned := html.UnescapeString(text)

	if p.preserveFormatting {
		for _, tag := range formattingTags {
			cleaned = strings.ReplaceAll(cleaned, "<"+tag+">", "\x00"+tag+"\x01")
			cleaned = strings.ReplaceAll(cleaned, "</"+tag+">", "\x00/"+tag+"\x01")
		}
	}

	cleaned = htmlTagRegex.ReplaceAllString(cleaned, "")

	if p.preserveFormatting {
		cleaned = strings.ReplaceAll(cleaned, "\x00", "<")
		cleaned = strings.ReplaceAll(cleaned, "\x01", ">")
	}

	return cleaned
}

// Parse extracts snippet text, start time, and duration from caption XML.
func (p *transcriptParser) Parse(plainData string) ([]models.TranscriptSnippet, error) {
	type xmlTranscript struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Text     string `xml:",chardata"`
			Start    string `xml:"start,attr"`
			Duration string `xml:"dur,attr"`
		} `xml:"text"`
	}

	var parsedXML xmlTranscript
	if err := xml.Unmarshal([]byte(plainData), &parsedXML); err != nil {
		return nil, fmt.Errorf("failed to unmarshal caption XML: %w", err)
	}

	var results []models.TranscriptSnippet
	for _, entry := range parsedXML.Texts {
		text := p.cleanText(entry.Text)

		start, err := strconv.ParseFloat(entry.Start, 64)
		if err != nil {
			start = 0.0
		}

		duration, err := strconv.ParseFloat(entry.Duration, 64)
		if err != nil {
			duration = 0.0
		}

		results = append(results, models.TranscriptSnippet{
			Text:     text,
			Start:    start,
			Duration: duration,
		})
	}
	return results, nil
}
