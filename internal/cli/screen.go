package cli

import (
	"fmt"

	"atscreen/internal/common"
	"atscreen/internal/extract"
	"atscreen/internal/journal"
	"atscreen/internal/notify"
	"atscreen/internal/scoring"
	"atscreen/internal/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [resume-file]",
	Short: "Screen a candidate against company hiring criteria",
	Long: `Screen a candidate submission: score the resume against ATS criteria,
evaluate it against the company screening policy and report a pass or fail
verdict. When notifications are configured the candidate is emailed the
decision, and the submission is recorded in the journal.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScreen,
}

var (
	screenConfig   common.CommandConfig
	screenCategory string
	screenName     string
	screenEmail    string
)

func init() {
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	screenCmd.Flags().StringVar(&screenConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	screenCmd.Flags().StringVarP(&screenCategory, "category", "c", "", "Job category (detected from the resume when omitted)")
	screenCmd.Flags().StringVar(&screenName, "name", "", "Candidate name for the decision notification")
	screenCmd.Flags().StringVar(&screenEmail, "email", "", "Candidate email (extracted from the resume when omitted)")

	// Add completion for format flag
	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
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

	logger.Info("Starting candidate screening",
		"file", args[0],
		"resume_chars", len(doc.RawText),
		"category", screenCategory,
		"output_format", screenConfig.OutputFormat)

	analysis := engine.Analyze(doc, screenCategory)
	evaluation := engine.Screen(analysis.OverallScore, analysis.Keywords.FoundKeywords,
		doc.RawText, analysis.JobCategory)

	report := &types.ScreeningReport{
		SubmissionID:   uuid.NewString(),
		Category:       analysis.JobCategory,
		Analysis:       analysis,
		Evaluation:     evaluation,
		CandidateEmail: screenEmail,
	}
	if report.CandidateEmail == "" {
		report.CandidateEmail = doc.Email
	}

	// Notification delivery is best effort; the screening verdict stands
	// regardless of mail outcome.
	notifier, err := notify.NewSender(&cfg.Notify, cfg.Scoring.Screening.MinFinalScore, logger)
	if err != nil {
		return fmt.Errorf("failed to create notification sender: %w", err)
	}
	if notifier != nil && report.CandidateEmail != "" {
		if err := notifier.SendDecision(cmd.Context(), screenName, report.CandidateEmail, report); err == nil {
			report.NotificationSent = true
		}
	}

	jrnl := journal.New(&cfg.Journal, logger)
	jrnl.RecordSubmission(journal.SubmissionRecord{
		SubmissionID:   report.SubmissionID,
		CandidateName:  screenName,
		CandidateEmail: report.CandidateEmail,
		JobCategory:    report.Category,
		ATSScore:       analysis.OverallScore,
		FinalScore:     evaluation.FinalScore,
		Passed:         evaluation.PassesCriteria,
		EmailSent:      report.NotificationSent,
	})

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(report, screenConfig); err != nil {
		return fmt.Errorf("failed to screen candidate: %w", err)
	}

	logger.Info("Candidate screening completed successfully",
		"submission_id", report.SubmissionID,
		"passed", evaluation.PassesCriteria,
		"final_score", evaluation.FinalScore)
	return nil
}
