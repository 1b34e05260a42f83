package model

import "time"

// Report is the complete output of one analysis or exemption check run.
type Report struct {
	Subject     string       `json:"subject"`
	AnalyzedAt  time.Time    `json:"analyzed_at"`
	Document    DocumentMeta `json:"document,omitempty"`

	Extraction *ExtractionResult `json:"extraction,omitempty"` // Present for certificate analysis runs
	Answers    AnswerSet         `json:"answers"`
	Assessment *Assessment       `json:"assessment,omitempty"` // Present for exemption check runs

	LLM *LLMSummary `json:"llm,omitempty"` // Optional plain-English summary (never affects the assessment)
}

// LLMSummary is an optional generated restatement of the report. It is
// produced after classification and can never change a verdict.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
