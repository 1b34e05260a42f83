package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// mockProvider implements the Provider interface for testing
type mockProvider struct {
	name     string
	response *SummarizeResponse
	err      error
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestNewSummarizer_Disabled(t *testing.T) {
	summarizer, err := NewSummarizer(model.LLMConfig{Provider: ""})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if summarizer.IsEnabled() {
		t.Error("expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("expected empty provider name when disabled")
	}

	summary, err := summarizer.Summarize(context.Background(), &model.Report{Subject: "flat 2"})
	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
	if summary != nil {
		t.Error("expected nil summary when disabled")
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Provider: "mystery"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewSummarizer_OpenAIRequiresKey(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error when API key missing")
	}
}

func TestSummarizer_Success(t *testing.T) {
	summarizer := &Summarizer{
		provider: &mockProvider{
			name: "test-provider",
			response: &SummarizeResponse{
				Summary:    "Your exemption claim looks strong.",
				Model:      "test-model",
				TokensUsed: 150,
			},
		},
	}

	summary, err := summarizer.Summarize(context.Background(), &model.Report{Subject: "flat 2"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary == nil {
		t.Fatal("expected summary")
	}

	if !summary.Enabled {
		t.Error("expected summary to be enabled")
	}
	if summary.Provider != "test-provider" {
		t.Errorf("expected provider test-provider, got %s", summary.Provider)
	}
	if summary.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", summary.Model)
	}
	if summary.SummaryMD != "Your exemption claim looks strong." {
		t.Errorf("unexpected summary text: %s", summary.SummaryMD)
	}

	foundTokens := false
	for _, w := range summary.Warnings {
		if strings.Contains(w, "Tokens used") {
			foundTokens = true
		}
	}
	if !foundTokens {
		t.Error("expected token usage note")
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	summarizer := &Summarizer{
		provider: &mockProvider{
			name: "test-provider",
			err:  errors.New("API rate limit exceeded"),
		},
	}

	summary, err := summarizer.Summarize(context.Background(), &model.Report{Subject: "flat 2"})
	if err == nil {
		t.Fatal("expected error to propagate so the caller can degrade")
	}
	if summary != nil {
		t.Error("expected nil summary on error")
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestBuildPrompt_Assessment(t *testing.T) {
	report := model.Report{
		Subject: "12 Example Street",
		Assessment: &model.Assessment{
			ExemptionType: model.ExemptionCostCap,
			Verdict: model.Verdict{
				Level:       model.VerdictConditional,
				Headline:    "Likely eligible, evidence gaps remain",
				Explanation: "Spend is above the cap but quotes are missing.",
			},
			Evidence: model.EvidenceSummary{
				MissingRequired: []model.DocumentID{model.DocInstallerQuotes},
			},
		},
	}

	prompt := BuildPrompt(report)

	required := []string{
		"never change it",
		"Do not give legal advice",
		"Subject: 12 Example Street",
		"Exemption type: cost-cap",
		"Likely eligible, evidence gaps remain",
		"Spend is above the cap but quotes are missing.",
		"Missing required evidence",
		model.KnownDocuments[model.DocInstallerQuotes],
	}
	for _, element := range required {
		if !strings.Contains(prompt, element) {
			t.Errorf("expected prompt to contain %q", element)
		}
	}
}

func TestBuildPrompt_ExtractionOnly(t *testing.T) {
	report := model.Report{
		Subject: "certificate-123",
		Extraction: &model.ExtractionResult{
			Success:    true,
			Confidence: model.ConfidenceHigh,
			Fields: model.AnswerSet{
				schema.FieldCurrentRating: "E",
			},
		},
	}

	prompt := BuildPrompt(report)

	if !strings.Contains(prompt, "Current EPC rating: E") {
		t.Error("expected rating in prompt")
	}
	if strings.Contains(prompt, "Exemption type") {
		t.Error("did not expect assessment section without an assessment")
	}
}

func TestBuildPrompt_NoMissingEvidence(t *testing.T) {
	report := model.Report{
		Subject: "12 Example Street",
		Assessment: &model.Assessment{
			ExemptionType: model.ExemptionHeritage,
			Verdict: model.Verdict{
				Level:    model.VerdictStrong,
				Headline: "Strong case",
			},
		},
	}

	prompt := BuildPrompt(report)

	if !strings.Contains(prompt, "Missing required evidence: none") {
		t.Error("expected explicit none for missing evidence")
	}
}
