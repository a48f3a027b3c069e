package cli

import (
	"context"
	"fmt"

	"atscreen/internal/common"
	"atscreen/internal/scoring"
	"atscreen/internal/types"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [resume-file]",
	Short: "Detect the most likely job category for a resume",
	Long: `Detect which job category a resume targets by counting taxonomy keyword
occurrences per category. Ties are broken by taxonomy declaration order and
resumes matching no category fall back to the general category.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if detectConfig.OutputFormat == "" {
			detectConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(detectConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runDetect,
}

var detectConfig common.CommandConfig

func init() {
	detectCmd.Flags().StringVarP(&detectConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	detectCmd.Flags().StringVar(&detectConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = detectCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting category detection",
			"text_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	detectOperation := func(ctx context.Context, input string) (types.CategoryDetection, error) {
		category, scores := scoring.DetectCategory(input)
		return types.CategoryDetection{Category: category, Scores: scores}, nil
	}

	err := common.RunScoringCommand(
		cmd.Context(),
		logger,
		detectConfig,
		args,
		createInput,
		detectOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to detect job category: %w", err)
	}
	logger.Info("Category detection completed successfully")
	return nil
}
