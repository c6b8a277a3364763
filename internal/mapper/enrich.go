// Package mapper enriches the canonical taxonomy with keywords for source
// particulars it does not already cover, classified by an external service.
// Enrichment is best-effort and additive: it never creates categories, never
// removes keywords, and never fails the pipeline.
package mapper

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

// Enrich returns a deep copy of tax with classified unknown particulars
// appended to existing leaves. The input taxonomy is never mutated.
// Classifier failure of any kind degrades to an unmodified copy.
func Enrich(ctx context.Context, tax taxonomy.Taxonomy, frame model.SourceFrame, classifier Classifier, logger *zap.Logger) taxonomy.Taxonomy {
	enriched := tax.Clone()

	unmapped := unmappedTerms(tax, frame)
	if len(unmapped) == 0 {
		return enriched
	}

	mapping, err := classifier.MapTerms(ctx, unmapped, tax.Categories())
	if err != nil {
		logger.Warn("classifier unavailable, continuing without enrichment",
			zap.Int("unmapped_terms", len(unmapped)),
			zap.Error(err))
		return enriched
	}

	for term, category := range mapping {
		leaf := enriched.FindLeaf(category)
		if leaf == nil {
			logger.Warn("classifier proposed unknown category",
				zap.String("term", term),
				zap.String("category", category))
			continue
		}
		appendKeyword(leaf, term)
	}
	return enriched
}

// unmappedTerms returns the distinct lower-cased particulars not covered by
// any existing keyword, in first-seen order.
func unmappedTerms(tax taxonomy.Taxonomy, frame model.SourceFrame) []string {
	known := tax.Keywords()
	var out []string
	for _, p := range frame.Particulars() {
		if _, ok := known[p]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// appendKeyword adds term to the leaf unless an equal keyword (case-folded)
// is already present, which makes replayed enrichment a no-op.
func appendKeyword(leaf *taxonomy.Node, term string) {
	for _, kw := range leaf.Keywords {
		if strings.EqualFold(kw, term) {
			return
		}
	}
	leaf.Keywords = append(leaf.Keywords, term)
}
