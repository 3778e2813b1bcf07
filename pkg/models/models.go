package models

// TranscriptSnippet is a single timed caption line.
type TranscriptSnippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptDescriptor describes one transcript a video reports as
// available, before any content has been fetched. FetchURL is the opaque
// caption endpoint the provider hands out for it.
type TranscriptDescriptor struct {
	Language       string
	LanguageCode   string
	IsGenerated    bool
	IsTranslatable bool
	FetchURL       string
}

// TranscriptCatalog is the ordered set of descriptors for one video, in
// provider-returned order. Once listed it is a read-only snapshot for the
// whole resolution attempt.
type TranscriptCatalog struct {
	VideoID     string
	VideoTitle  string
	Descriptors []TranscriptDescriptor
}

// LanguageCodes returns the descriptor language codes in catalog order.
func (c *TranscriptCatalog) LanguageCodes() []string {
	codes := make([]string, 0, len(c.Descriptors))
	for _, d := range c.Descriptors {
		codes = append(codes, d.LanguageCode)
	}
	return codes
}

// ResolvedTranscript is the realized result of one resolution attempt:
// the fetched snippets plus how they were sourced.
type ResolvedTranscript struct {
	VideoID          string
	VideoTitle       string
	LanguageCode     string
	IsGenerated      bool
	Translated       bool
	OriginalLanguage string
	FallbackUsed     bool
	Snippets         []TranscriptSnippet
}
