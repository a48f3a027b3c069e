package cli

import (
	"fmt"

	"atscreen/internal/common"
	"atscreen/internal/extract"
	"atscreen/internal/scoring"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Score a resume against ATS criteria",
	Long: `Analyze a resume the way an applicant tracking system does and produce a
scored report. Plain text, PDF and DOCX resumes are supported.

The analysis includes:
- ATS formatting compatibility
- Keyword coverage for the detected or given job category
- Readability assessment
- Section structure completeness
- Contact information checks
- Actionable improvement recommendations`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig   common.CommandConfig
	analyzeCategory string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVarP(&analyzeCategory, "category", "c", "", "Job category (detected from the resume when omitted)")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := scoring.NewEngine(cfg.Scoring.Weights, cfg.Scoring.Thresholds, cfg.Scoring.Screening)
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	doc, err := extract.FromFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	logger.Info("Starting resume analysis",
		"file", args[0],
		"resume_chars", len(doc.RawText),
		"category", analyzeCategory,
		"output_format", analyzeConfig.OutputFormat)

	report := engine.Analyze(doc, analyzeCategory)

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(report, analyzeConfig); err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	logger.Info("Resume analysis completed successfully",
		"overall_score", report.OverallScore,
		"rating", report.Rating,
		"category", report.JobCategory)
	return nil
}
