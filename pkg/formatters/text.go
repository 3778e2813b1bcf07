package formatters

import (
	"fmt"
	"strings"

	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

type TextFormatter struct {
	BaseFormatter
}

func NewTextFormatter(options ...FormatterOption) *TextFormatter {
	f := &TextFormatter{
		BaseFormatter: BaseFormatter{
			IncludeTimestamps: true,
			IncludeLanguage:   true,
		},
	}

	for _, opt := range options {
		opt(&f.BaseFormatter)
	}

	return f
}

func (t *TextFormatter) Format(transcript *models.ResolvedTranscript) (string, error) {
	var text strings.Builder

	if t.IncludeLanguage {
		fmt.Fprintf(&text, "Language: %s\n", transcript.LanguageCode)
		if transcript.Translated {
			fmt.Fprintf(&text, "Translated from: %s\n", transcript.OriginalLanguage)
		}
	}

	for _, snippet := range transcript.Snippets {
		if t.IncludeTimestamps {
			fmt.Fprintf(&text, "%f: %s\n", snippet.Start, snippet.Text)
		} else {
			text.WriteString(snippet.Text + "\n")
		}
	}

	return text.String(), nil
}
