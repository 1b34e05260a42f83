package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meescheck/meescheck/internal/pipeline"
)

var (
	httpTimeout time.Duration
	httpProxy   string
	httpsProxy  string
	noRobots    bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <certificate-url>",
	Short: "Download an EPC from the public register and analyze it",
	Long: `Fetch downloads a certificate page from the public EPC register and
runs the same extraction as analyze. Fetching is polite: robots.txt is
honoured and requests are rate limited per host.

Example:
  meescheck fetch https://find-energy-certificate.service.gov.uk/energy-certificate/1234-5678
  meescheck fetch https://example.org/certificate.html --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	fetchCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	fetchCmd.Flags().DurationVar(&httpTimeout, "timeout", 0, "HTTP timeout (0 uses the configured default)")
	fetchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	fetchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (0 uses the configured default)")
	fetchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable extraction cache")
	fetchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	fetchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	fetchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	fetchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	fetchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable plain-English summary generation")
	fetchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	fetchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.ProxyHTTP = httpProxy
	cfg.HTTP.ProxyHTTPS = httpsProxy
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", url)
		fmt.Fprintf(os.Stderr, "Robots: %v\n", cfg.HTTP.RespectRobots)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.FetchAndAnalyze(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	reportProgress(report)

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
