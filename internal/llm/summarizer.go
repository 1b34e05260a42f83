package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/meescheck/meescheck/internal/model"
)

// Summarizer produces the optional plain-English summary of a report. It
// runs strictly after extraction and classification: whatever it returns
// is attached verbatim and can never change a verdict.
type Summarizer struct {
	provider Provider
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer from the LLM configuration. An empty
// provider name disables summarization.
func NewSummarizer(config model.LLMConfig) (*Summarizer, error) {
	s := &Summarizer{config: config}

	switch strings.ToLower(config.Provider) {
	case "":
		// Disabled
	case "openai":
		provider, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		s.provider = provider
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}

	return s, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Summarize generates the plain-English summary for a report. Returns
// (nil, nil) when disabled.
func (s *Summarizer) Summarize(ctx context.Context, report *model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    *report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}
	if resp.TokensUsed > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	}
	return summary, nil
}
