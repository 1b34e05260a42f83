package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noFooter       bool
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <certificate-file>",
	Short: "Extract property data from an EPC document",
	Long: `Analyze reads an Energy Performance Certificate (HTML or plain
text) and extracts the property data meescheck needs:
- Current rating and numeric score
- Property type, age band, heating and wall construction
- A confidence grade and any extraction warnings

Extracted values pre-fill the exemption questions; low-confidence
extractions are flagged so nothing is submitted unreviewed.

Example:
  meescheck analyze certificate.html
  meescheck analyze certificate.html --json report.json --md report.md
  meescheck analyze certificate.html --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable plain-English summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	reportProgress(report)

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig applies the shared flag set on top of the file and
// environment configuration. Flags only override what they state: an
// absent flag leaves the loaded value in place.
func buildConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if httpTimeout > 0 {
		cfg.HTTP.Timeout = httpTimeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// reportProgress prints the verbose per-report progress lines.
func reportProgress(report *model.Report) {
	if !verbose {
		return
	}
	if ex := report.Extraction; ex != nil {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d fields (confidence: %s)\n", len(ex.Fields), ex.Confidence)
		for _, w := range ex.Warnings {
			fmt.Fprintf(os.Stderr, "  ! %s\n", w)
		}
	}
	if a := report.Assessment; a != nil {
		fmt.Fprintf(os.Stderr, "✓ Assessed %s exemption: %s\n", a.ExemptionType, a.Verdict.Level)
	}
	if report.LLM != nil && report.LLM.Enabled {
		fmt.Fprintf(os.Stderr, "✓ Generated summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
	}
	fmt.Fprintln(os.Stderr)
}
