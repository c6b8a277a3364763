package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/config"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/mapper"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/pipeline"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/render"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/runlog"
)

func newGenerateCommand() *cobra.Command {
	var output string
	var logDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate <workbook.xlsx>",
		Short: "Run the statement pipeline on an input workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], output, logDir, verbose)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "financial-statements.xlsx", "output workbook path")
	cmd.Flags().StringVar(&logDir, "log-dir", "logs", "directory for the run log")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runGenerate(cmd *cobra.Command, input, output, logDir string, verbose bool) error {
	// A local .env may hold the classifier secrets; its absence is fine.
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var classifier mapper.Classifier = mapper.Disabled{}
	if cfg.ClassifierEnabled() {
		classifier = mapper.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierTimeout)
	}

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}
	defer in.Close()

	runner := pipeline.NewRunner(classifier, logger)
	result, err := runner.Run(cmd.Context(), in)
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer out.Close()

	if err := render.Write(out, result.Tree, result.Taxonomy); err != nil {
		return fmt.Errorf("rendering %s: %w", output, err)
	}

	entry := runlog.Entry{
		RunID:     result.RunID,
		Timestamp: time.Now().UTC(),
		Input:     filepath.Base(input),
		Rows:      len(result.Frame),
		Warnings:  len(result.Warnings),
	}
	if err := runlog.Append(logDir, entry); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write run log: %v\n", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %d warnings)\n", output, len(result.Frame), len(result.Warnings))

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
