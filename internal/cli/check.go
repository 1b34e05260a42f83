package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meescheck/meescheck/internal/pipeline"
)

var checkSubject string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check --answers <answers.yaml>",
	Short: "Grade an exemption claim from an answer file",
	Long: `Check replays a completed exemption answer file through the same
question flow and validation an interactive user goes through, then
grades the claim:
- strong:      the evidence on hand supports registering the exemption
- conditional: plausible, but required evidence or thresholds are missing
- unlikely:    the stated situation does not fit the exemption

The answer file is YAML, one entry per question; multi-select questions
take a list:

  currentRating: F
  isListed: "true"
  inConservationArea: "false"
  spendToDate: under-3500
  installedMeasures:
    - loft-insulation
  exemptionReason: listed-building
  evidenceAvailable:
    - current-epc
    - listed-officer-advice

Example:
  meescheck check --answers claim.yaml
  meescheck check --answers claim.yaml --subject "12 Example Street" --md claim.md`,
	RunE: runCheck,
}

var answersPath string

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&answersPath, "answers", "", "exemption answer file (YAML)")
	_ = checkCmd.MarkFlagRequired("answers")

	checkCmd.Flags().StringVar(&checkSubject, "subject", "", "report subject (defaults to the answer file name)")
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable plain-English summary generation")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	answers, err := pipeline.LoadAnswers(answersPath)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s (%d answers)\n\n", answersPath, len(answers))
	}

	// Replay through the wizard so the file passes the same validation
	// an interactive user would.
	final, err := pipeline.ReplayAnswers(answers)
	if err != nil {
		return err
	}

	subject := checkSubject
	if subject == "" {
		base := filepath.Base(answersPath)
		subject = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	p := pipeline.NewPipeline(cfg)
	report := p.CheckAnswers(ctx, final, subject)

	reportProgress(report)

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
