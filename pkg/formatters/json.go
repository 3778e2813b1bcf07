package formatters

import (
	"encoding/json"

	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

type jsonTranscript struct {
	VideoID          string                     `json:"video_id,omitempty"`
	VideoTitle       string                     `json:"video_title,omitempty"`
	Language         string                     `json:"language,omitempty"`
	IsGenerated      bool                       `json:"is_generated"`
	Translated       bool                       `json:"translated,omitempty"`
	OriginalLanguage string                     `json:"original_language,omitempty"`
	Snippets         []models.TranscriptSnippet `json:"transcript"`
}

// JSONFormatterOption is specifically for JSON formatter options
type JSONFormatterOption func(*JSONFormatter)

type JSONFormatter struct {
	BaseFormatter
	PrettyPrint bool
}

func NewJSONFormatter(baseOptions ...FormatterOption) *JSONFormatter {
	f := &JSONFormatter{
		BaseFormatter: BaseFormatter{
			IncludeTimestamps: true,
			IncludeLanguage:   true,
		},
	}

	for _, opt := range baseOptions {
		opt(&f.BaseFormatter)
	}
	return f
}

// WithPrettyPrint returns a function that sets the PrettyPrint option
func WithPrettyPrint(pretty bool) JSONFormatterOption {
	return func(f *JSONFormatter) {
		f.PrettyPrint = pretty
	}
}

// Configure allows applying JSON-specific options after creation
func (f *JSONFormatter) Configure(options ...JSONFormatterOption) {
	for _, opt := range options {
		opt(f)
	}
}

func (f *JSONFormatter) Format(transcript *models.ResolvedTranscript) (string, error) {
	out := jsonTranscript{
		VideoID:          transcript.VideoID,
		VideoTitle:       transcript.VideoTitle,
		IsGenerated:      transcript.IsGenerated,
		Translated:       transcript.Translated,
		OriginalLanguage: transcript.OriginalLanguage,
		Snippets:         transcript.Snippets,
	}
	if f.IncludeLanguage {
		out.Language = transcript.LanguageCode
	}

	var (
		bytes []byte
		err   error
	)

	if f.PrettyPrint {
		bytes, err = json.MarshalIndent(out, "", "  ")
	} else {
		bytes, err = json.Marshal(out)
	}

	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
