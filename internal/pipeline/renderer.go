package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/meescheck/meescheck/internal/model"
)

// Renderer writes reports to JSON and Markdown, plus a short stdout
// summary. Presentation renders extraction warnings verbatim.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# EPC compliance report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))

	if report.Extraction != nil {
		r.writeExtraction(&b, report.Extraction)
	}
	if report.Assessment != nil {
		r.writeAssessment(&b, report.Assessment)
	}
	if report.LLM != nil && report.LLM.SummaryMD != "" {
		b.WriteString("## Plain-English summary\n\n")
		b.WriteString("_Generated automatically; it never affects the assessment above._\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nmeescheck is advisory, not authoritative: always confirm exemption decisions against the current MEES guidance before registering.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func (r *Renderer) writeExtraction(b *strings.Builder, ex *model.ExtractionResult) {
	b.WriteString("## Certificate extraction\n\n")
	fmt.Fprintf(b, "- Success: %v\n", ex.Success)
	fmt.Fprintf(b, "- Confidence: %s\n\n", ex.Confidence)

	if len(ex.Fields) > 0 {
		names := make([]string, 0, len(ex.Fields))
		for name := range ex.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, name := range names {
			value, _ := ex.Fields.Get(name)
			fmt.Fprintf(b, "| %s | %s |\n", name, value)
		}
		b.WriteString("\n")
	}

	if len(ex.Warnings) > 0 {
		b.WriteString("### Warnings\n\n")
		for _, w := range ex.Warnings {
			fmt.Fprintf(b, "- %s\n", w)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeAssessment(b *strings.Builder, a *model.Assessment) {
	b.WriteString("## Exemption assessment\n\n")
	fmt.Fprintf(b, "- Exemption type: **%s**\n", a.ExemptionType)
	fmt.Fprintf(b, "- Eligibility: **%s** - %s\n\n", a.Verdict.Level, a.Verdict.Headline)
	fmt.Fprintf(b, "%s\n\n", a.Verdict.Explanation)

	b.WriteString("### Evidence checklist\n\n")
	for _, req := range a.Evidence.Required {
		fmt.Fprintf(b, "- [required] %s\n", req.Label)
	}
	for _, rec := range a.Evidence.Recommended {
		fmt.Fprintf(b, "- [recommended] %s\n", rec.Label)
	}
	b.WriteString("\n")

	if len(a.Evidence.MissingRequired) > 0 {
		b.WriteString("### Still needed\n\n")
		for _, id := range a.Evidence.MissingRequired {
			fmt.Fprintf(b, "- %s\n", model.KnownDocuments[id])
		}
		b.WriteString("\n")
	}
}

// RenderSummary prints a short summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\nSubject: %s\n", report.Subject)

	if ex := report.Extraction; ex != nil {
		fmt.Printf("Extraction: success=%v confidence=%s fields=%d\n",
			ex.Success, ex.Confidence, len(ex.Fields))
		for _, w := range ex.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}
	if a := report.Assessment; a != nil {
		fmt.Printf("Exemption type: %s\n", a.ExemptionType)
		fmt.Printf("Eligibility: %s - %s\n", a.Verdict.Level, a.Verdict.Headline)
		if len(a.Evidence.MissingRequired) > 0 {
			fmt.Printf("Missing required evidence:\n")
			for _, id := range a.Evidence.MissingRequired {
				fmt.Printf("  - %s\n", model.KnownDocuments[id])
			}
		}
	}
}

// RenderReport renders the report to the requested outputs.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	p.renderer.RenderSummary(report)
	return nil
}
