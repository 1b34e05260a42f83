package model

// Confidence is the extraction adapter's self-reported certainty about the
// data it pulled from an uploaded certificate document.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"   // Every basics field located unambiguously
	ConfidenceMedium Confidence = "medium" // Rating/score/property type located, secondary gaps
	ConfidenceLow    Confidence = "low"    // Missing primary fields or parse failure
)

// ExtractionResult is the outcome of one certificate extraction attempt.
// It is created once per upload and never mutated; a re-upload supersedes
// the previous result rather than merging into it.
type ExtractionResult struct {
	Success    bool       `json:"success"`
	Fields     AnswerSet  `json:"data"`
	Confidence Confidence `json:"confidence"`
	Warnings   []string   `json:"warnings"`
}

// DocumentMeta describes the uploaded or fetched certificate document.
type DocumentMeta struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	SniffedType string `json:"sniffed_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	SourceURL   string `json:"source_url,omitempty"`
}
