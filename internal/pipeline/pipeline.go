// Package pipeline orchestrates the four processing stages: intake, mapping
// enrichment, aggregation and validation. Stages run strictly in sequence and
// never mutate each other's artifacts; a run either fails at intake or
// succeeds with warnings attached.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/intake"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/mapper"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/validate"
)

// Result is the artifact bundle of one successful run.
type Result struct {
	RunID    string
	Frame    model.SourceFrame
	Taxonomy taxonomy.Taxonomy
	Tree     aggregate.Tree
	Warnings []validate.Warning
}

// Runner executes pipeline runs. Safe to reuse; each run builds its own
// artifacts.
type Runner struct {
	classifier mapper.Classifier
	logger     *zap.Logger
}

// NewRunner creates a Runner. A nil classifier disables enrichment; a nil
// logger keeps the pipeline silent.
func NewRunner(classifier mapper.Classifier, logger *zap.Logger) *Runner {
	if classifier == nil {
		classifier = mapper.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{classifier: classifier, logger: logger}
}

// Run processes one workbook stream. The only fatal outcome is an intake
// failure (wrapped intake.ErrNoTriplet or an unreadable workbook); validation
// findings are returned as warnings on the result.
func (r *Runner) Run(ctx context.Context, in io.Reader) (*Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID))

	frame, err := intake.Detect(in)
	if err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	logger.Info("intake complete", zap.Int("rows", len(frame)))

	enriched := mapper.Enrich(ctx, taxonomy.Canonical(), frame, r.classifier, logger)

	tree := aggregate.Run(frame, enriched, logger)

	warnings := validate.Check(tree)
	for _, w := range warnings {
		logger.Warn("validation warning", zap.String("period", w.Period), zap.String("message", w.String()))
	}
	logger.Info("run complete", zap.Int("warnings", len(warnings)))

	return &Result{
		RunID:    runID,
		Frame:    frame,
		Taxonomy: enriched,
		Tree:     tree,
		Warnings: warnings,
	}, nil
}
