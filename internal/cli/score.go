package cli

import (
	"fmt"

	"atscreen/internal/common"
	"atscreen/internal/scoring"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Print a quick overall ATS score for a resume",
	Long: `Compute a quick 0-100 ATS score from keyword coverage and formatting
penalties, without the full per-criterion analysis. Useful for shell
pipelines and batch scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := scoring.NewEngine(cfg.Scoring.Weights, cfg.Scoring.Thresholds, cfg.Scoring.Screening)
	if err != nil {
		return fmt.Errorf("failed to create scoring engine: %w", err)
	}

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args[0])
	if err != nil {
		return err
	}

	fmt.Println(engine.QuickScore(contents[0]))
	return nil
}
