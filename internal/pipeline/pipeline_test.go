package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

const certificateHTML = `
<html>
<body>
	<h1>Energy performance certificate</h1>
	<p>Property type: Semi-detached house</p>
	<p>Current energy efficiency rating: E</p>
	<p>Current energy efficiency score: 46</p>
	<p>Age band: 1930-1949</p>
	<p>Main heating: Boiler and radiators, mains gas</p>
	<p>Walls: Cavity wall, as built, no insulation</p>
</body>
</html>
`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func writeCertificate(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(certificateHTML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPipeline_AnalyzeFile(t *testing.T) {
	p := NewPipeline(testConfig(t))

	report, err := p.AnalyzeFile(context.Background(), writeCertificate(t, "12-example-street.html"))
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	if report.Subject != "12-example-street" {
		t.Errorf("expected subject from filename, got %q", report.Subject)
	}
	if report.Extraction == nil {
		t.Fatal("expected extraction result")
	}
	if !report.Extraction.Success {
		t.Fatalf("expected success, warnings: %v", report.Extraction.Warnings)
	}
	if rating, _ := report.Extraction.Fields.Get(schema.FieldCurrentRating); rating != "E" {
		t.Errorf("expected rating E, got %q", rating)
	}
	if report.Assessment != nil {
		t.Error("analysis runs carry no exemption assessment")
	}
	if report.Document.Filename != "12-example-street.html" {
		t.Errorf("unexpected document meta: %+v", report.Document)
	}
}

func TestPipeline_AnalyzeFile_Missing(t *testing.T) {
	p := NewPipeline(testConfig(t))

	if _, err := p.AnalyzeFile(context.Background(), "no_such_certificate.html"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPipeline_AnalyzeFile_CachedByContent(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)
	ctx := context.Background()

	first, err := p.AnalyzeFile(ctx, writeCertificate(t, "a.html"))
	if err != nil {
		t.Fatal(err)
	}

	// Same bytes under a different name resolve through the cache and
	// produce the identical extraction.
	second, err := p.AnalyzeFile(ctx, writeCertificate(t, "b.html"))
	if err != nil {
		t.Fatal(err)
	}

	if !first.Extraction.Fields.Equal(second.Extraction.Fields) {
		t.Error("expected identical extraction for identical content")
	}
	if first.Extraction.Confidence != second.Extraction.Confidence {
		t.Error("expected identical confidence for identical content")
	}
}

func TestPipeline_CheckAnswers(t *testing.T) {
	p := NewPipeline(testConfig(t))

	answers := model.NewAnswerSet()
	answers.Set(schema.FieldCurrentRating, "E")
	answers.Set(schema.FieldIsListed, "false")
	answers.Set(schema.FieldInConservationArea, "false")
	answers.Set(schema.FieldSpendToDate, "over-10000")
	answers.SetList(schema.FieldInstalledMeasures, []string{"loft-insulation"})
	answers.Set(schema.FieldExemptionReason, string(model.ReasonCostCapReached))
	answers.SetList(schema.FieldEvidenceAvailable, []string{
		string(model.DocCurrentEPC), string(model.DocInstallerQuotes),
	})

	report := p.CheckAnswers(context.Background(), answers, "12 Example Street")

	if report.Assessment == nil {
		t.Fatal("expected assessment")
	}
	if report.Assessment.ExemptionType != model.ExemptionCostCap {
		t.Errorf("expected cost-cap, got %s", report.Assessment.ExemptionType)
	}
	if report.Assessment.Verdict.Level != model.VerdictStrong {
		t.Errorf("expected strong verdict, got %s", report.Assessment.Verdict.Level)
	}
	if report.Extraction != nil {
		t.Error("exemption checks carry no extraction result")
	}
}

func TestLoadAnswers(t *testing.T) {
	content := `currentRating: F
isListed: true
currentScore: 28
installedMeasures:
  - loft-insulation
  - glazing
`
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	answers, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers failed: %v", err)
	}

	if v, _ := answers.Get(schema.FieldCurrentRating); v != "F" {
		t.Errorf("expected F, got %q", v)
	}
	if v, _ := answers.Get(schema.FieldIsListed); v != "true" {
		t.Errorf("expected YAML bool normalized to true, got %q", v)
	}
	if v, _ := answers.Get(schema.FieldCurrentScore); v != "28" {
		t.Errorf("expected YAML int normalized to 28, got %q", v)
	}
	want := []string{"glazing", "loft-insulation"}
	got := answers.GetList(schema.FieldInstalledMeasures)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected canonical sorted list %v, got %v", want, got)
		}
	}
}

func TestLoadAnswers_Missing(t *testing.T) {
	if _, err := LoadAnswers("no_such_answers.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func validExemptionAnswers() model.AnswerSet {
	answers := model.NewAnswerSet()
	answers.Set(schema.FieldCurrentRating, "F")
	answers.Set(schema.FieldIsListed, "true")
	answers.Set(schema.FieldInConservationArea, "false")
	answers.Set(schema.FieldSpendToDate, "under-3500")
	answers.SetList(schema.FieldInstalledMeasures, []string{"none"})
	answers.Set(schema.FieldExemptionReason, string(model.ReasonListedBuilding))
	return answers
}

func TestReplayAnswers_Complete(t *testing.T) {
	final, err := ReplayAnswers(validExemptionAnswers())
	if err != nil {
		t.Fatalf("ReplayAnswers failed: %v", err)
	}
	if v, _ := final.Get(schema.FieldExemptionReason); v != string(model.ReasonListedBuilding) {
		t.Errorf("expected reason preserved, got %q", v)
	}
}

func TestReplayAnswers_MissingField(t *testing.T) {
	answers := validExemptionAnswers()
	answers.Set(schema.FieldSpendToDate, "")

	_, err := ReplayAnswers(answers)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), schema.FieldSpendToDate) {
		t.Errorf("expected error to name the blocking field, got %v", err)
	}
}

func TestReplayAnswers_BadValue(t *testing.T) {
	answers := validExemptionAnswers()
	answers.Set(schema.FieldCurrentRating, "Z")

	_, err := ReplayAnswers(answers)
	if err == nil {
		t.Fatal("expected validation error for out-of-domain rating")
	}
	if !strings.Contains(err.Error(), schema.FieldCurrentRating) {
		t.Errorf("expected error to name the blocking field, got %v", err)
	}
}

func TestRenderer_JSONRoundTrip(t *testing.T) {
	p := NewPipeline(testConfig(t))
	report, err := p.AnalyzeFile(context.Background(), writeCertificate(t, "cert.html"))
	if err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(true).RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON does not round-trip: %v", err)
	}
	if decoded.Subject != report.Subject {
		t.Errorf("expected subject %q, got %q", report.Subject, decoded.Subject)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	p := NewPipeline(testConfig(t))

	answers := validExemptionAnswers()
	report := p.CheckAnswers(context.Background(), answers, "12 Example Street")

	mdPath := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(true).RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)

	for _, want := range []string{
		"# EPC compliance report: 12 Example Street",
		"## Exemption assessment",
		"heritage",
		"### Evidence checklist",
		"### Still needed",
		"advisory, not authoritative",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_Markdown_NoFooter(t *testing.T) {
	p := NewPipeline(testConfig(t))
	report := p.CheckAnswers(context.Background(), validExemptionAnswers(), "x")

	mdPath := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(false).RenderMarkdown(report, mdPath); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(mdPath)
	if strings.Contains(string(data), "advisory, not authoritative") {
		t.Error("expected footer omitted")
	}
}

func TestRenderer_WarningsVerbatim(t *testing.T) {
	report := &model.Report{
		Subject: "cert",
		Extraction: &model.ExtractionResult{
			Success:    true,
			Confidence: model.ConfidenceMedium,
			Fields:     model.NewAnswerSet(),
			Warnings:   []string{"could not locate propertyAge"},
		},
	}

	mdPath := filepath.Join(t.TempDir(), "report.md")
	if err := NewRenderer(false).RenderMarkdown(report, mdPath); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(mdPath)
	if !strings.Contains(string(data), "could not locate propertyAge") {
		t.Error("expected extraction warning rendered verbatim")
	}
}

func TestSubjectFromFilename(t *testing.T) {
	if got := subjectFromFilename("/tmp/certs/12-example-street.html"); got != "12-example-street" {
		t.Errorf("unexpected subject %q", got)
	}
	if got := subjectFromFilename("cert.txt"); got != "cert" {
		t.Errorf("unexpected subject %q", got)
	}
}
