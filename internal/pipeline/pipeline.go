package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meescheck/meescheck/internal/cache"
	"github.com/meescheck/meescheck/internal/extract"
	"github.com/meescheck/meescheck/internal/llm"
	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/rules"
)

// Pipeline orchestrates the complete analysis and exemption-check flows.
type Pipeline struct {
	extractor  *extract.Extractor
	fetcher    *Fetcher
	store      cache.Cache
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional (nil when disabled)
	config     *model.Config
}

// NewPipeline creates a pipeline from the configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		extractor:  extract.NewExtractor(),
		fetcher:    NewFetcher(cfg.HTTP),
		store:      store,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// AnalyzeFile extracts structured property data from a certificate file
// on disk and builds an analysis report.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read certificate: %w", err)
	}

	meta := model.DocumentMeta{
		Filename:  filepath.Base(path),
		SizeBytes: int64(len(data)),
	}
	return p.analyze(ctx, data, "", meta, subjectFromFilename(path)), nil
}

// FetchAndAnalyze downloads a certificate page from the public EPC
// register and runs the same extraction path over it.
func (p *Pipeline) FetchAndAnalyze(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch certificate: %w", err)
	}

	meta := model.DocumentMeta{
		ContentType: fetched.ContentType,
		SizeBytes:   int64(len(fetched.Data)),
		SourceURL:   fetched.FinalURL,
	}
	return p.analyze(ctx, fetched.Data, fetched.ContentType, meta, fetched.Subject), nil
}

// analyze runs extraction (cached by content hash) and assembles a report.
func (p *Pipeline) analyze(ctx context.Context, data []byte, declaredType string, meta model.DocumentMeta, subject string) *model.Report {
	result, fromCache := p.cachedExtraction(data)
	if !fromCache {
		r := p.extractor.Extract(data, declaredType)
		result = &r
		p.storeExtraction(data, result)
	}
	meta.SniffedType = sniffedTypeOf(data)

	report := &model.Report{
		Subject:    subject,
		AnalyzedAt: time.Now().UTC(),
		Document:   meta,
		Extraction: result,
		Answers:    result.Fields,
	}

	p.addSummary(ctx, report)
	return report
}

// CheckAnswers classifies a completed exemption answer set and assembles
// a report around the assessment.
func (p *Pipeline) CheckAnswers(ctx context.Context, answers model.AnswerSet, subject string) *model.Report {
	assessment := rules.Classify(answers)

	report := &model.Report{
		Subject:    subject,
		AnalyzedAt: time.Now().UTC(),
		Answers:    answers,
		Assessment: &assessment,
	}

	p.addSummary(ctx, report)
	return report
}

// addSummary attaches the optional LLM summary. It runs strictly after
// extraction and classification and can never change either; a failure
// degrades to a warning on stderr.
func (p *Pipeline) addSummary(ctx context.Context, report *model.Report) {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return
	}
	summary, err := p.summarizer.Summarize(ctx, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		return
	}
	report.LLM = summary
}

func (p *Pipeline) cachedExtraction(data []byte) (*model.ExtractionResult, bool) {
	if p.store == nil {
		return nil, false
	}
	raw, found := p.store.Get(contentKey(data))
	if !found {
		return nil, false
	}
	var result model.ExtractionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (p *Pipeline) storeExtraction(data []byte, result *model.ExtractionResult) {
	if p.store == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = p.store.Set(contentKey(data), raw, 0)
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return cache.Key(hex.EncodeToString(sum[:]))
}

func sniffedTypeOf(data []byte) string {
	_, sniffed := extract.SniffFormat(data, "")
	return sniffed
}

func subjectFromFilename(path string) string {
	base := filepath.Base(path)
	if idx := len(base) - len(filepath.Ext(base)); idx > 0 {
		base = base[:idx]
	}
	return base
}
