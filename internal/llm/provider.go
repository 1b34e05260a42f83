package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-English restatement of a report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for summarization
type SummarizeRequest struct {
	// Report is the meescheck report to restate
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated summary
type SummarizeResponse struct {
	// Summary is the generated text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt. The verdict in
// the report is already final; the prompt forbids the model from changing
// or second-guessing it.
func BuildPrompt(report model.Report) string {
	var b strings.Builder

	b.WriteString(`You are restating an EPC compliance report in plain English for a landlord. The assessment below was produced by fixed eligibility rules; you must restate it, never change it.

RULES:
1. Repeat the eligibility verdict exactly as given. Never upgrade, downgrade or soften it.
2. If required evidence is missing, say which documents to gather next.
3. Do not give legal advice. Point the reader to the official MEES guidance for decisions.
4. Write 3-4 short sentences.

Report:
`)
	fmt.Fprintf(&b, "- Subject: %s\n", report.Subject)

	if ex := report.Extraction; ex != nil {
		fmt.Fprintf(&b, "- Certificate extraction: success=%v, confidence=%s, %d fields found\n",
			ex.Success, ex.Confidence, len(ex.Fields))
		if rating, ok := ex.Fields[schema.FieldCurrentRating]; ok {
			fmt.Fprintf(&b, "- Current EPC rating: %s\n", rating)
		}
		if len(ex.Warnings) > 0 {
			fmt.Fprintf(&b, "- Extraction warnings: %d\n", len(ex.Warnings))
		}
	}

	if a := report.Assessment; a != nil {
		fmt.Fprintf(&b, "- Exemption type: %s\n", a.ExemptionType)
		fmt.Fprintf(&b, "- Verdict: %s: %s\n", a.Verdict.Level, a.Verdict.Headline)
		fmt.Fprintf(&b, "- Explanation: %s\n", a.Verdict.Explanation)
		if len(a.Evidence.MissingRequired) > 0 {
			b.WriteString("- Missing required evidence:\n")
			for _, id := range a.Evidence.MissingRequired {
				fmt.Fprintf(&b, "  - %s\n", model.KnownDocuments[id])
			}
		} else {
			b.WriteString("- Missing required evidence: none\n")
		}
	}

	b.WriteString("\nWrite the summary now.")
	return b.String()
}
