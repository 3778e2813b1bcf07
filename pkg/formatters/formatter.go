package formatters

import (
	"github.com/mkuchak/get-youtube-transcription/pkg/models"
)

// Formatter defines the interface for transcript formatters
type Formatter interface {
	// Format renders a resolved transcript into a specific output format
	Format(transcript *models.ResolvedTranscript) (string, error)
}

// BaseFormatter contains common formatting options
type BaseFormatter struct {
	IncludeTimestamps bool
	IncludeLanguage   bool
}

// FormatterOption is a function type for formatter configuration
type FormatterOption func(f *BaseFormatter)

// WithTimestamps configures whether timestamps should be included
func WithTimestamps(include bool) FormatterOption {
	return func(f *BaseFormatter) {
		f.IncludeTimestamps = include
	}
}

// WithLanguage configures whether the language header should be included
func WithLanguage(include bool) FormatterOption {
	return func(f *BaseFormatter) {
		f.IncludeLanguage = include
	}
}
