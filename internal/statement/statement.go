// Package statement holds the two statutory statement templates and resolves
// their lines against aggregated note totals. Templates are static
// configuration embedded as YAML and loaded once.
package statement

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
)

// LineKind classifies a template line.
type LineKind string

const (
	KindHeader      LineKind = "header"
	KindSubHeader   LineKind = "sub_header"
	KindItem        LineKind = "item"
	KindItemNoAlpha LineKind = "item_no_alpha"
	KindTotal       LineKind = "total"
	KindSpacer      LineKind = "spacer"
)

// Line is one row of a statement template. Item lines reference exactly one
// note; total lines sum the listed notes and subtract any deduct notes.
type Line struct {
	Kind        LineKind `yaml:"kind"`
	Index       string   `yaml:"index"`
	Description string   `yaml:"desc"`
	Notes       []string `yaml:"notes"`
	Deduct      []string `yaml:"deduct"`
}

// Template is an ordered statement layout.
type Template struct {
	Title string `yaml:"title"`
	Lines []Line `yaml:"lines"`
}

//go:embed templates.yaml
var templatesYAML []byte

var (
	loadOnce sync.Once
	loaded   struct {
		BalanceSheet  Template `yaml:"balance_sheet"`
		ProfitAndLoss Template `yaml:"profit_and_loss"`
	}
)

func load() {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(templatesYAML, &loaded); err != nil {
			panic("statement: embedded templates are invalid: " + err.Error())
		}
	})
}

// BalanceSheet returns the balance sheet template.
func BalanceSheet() Template {
	load()
	return loaded.BalanceSheet
}

// ProfitAndLoss returns the profit and loss template.
func ProfitAndLoss() Template {
	load()
	return loaded.ProfitAndLoss
}

// ResolvedLine is a template line with its two-period value filled in.
// HasValue is false for headers, sub-headers and spacers.
type ResolvedLine struct {
	Line
	Value    model.Amounts
	HasValue bool
}

// Resolve fills a template's lines from aggregated note totals, in
// declaration order. A reference to a note id absent from the tree resolves
// to zero.
func Resolve(tpl Template, tree aggregate.Tree) []ResolvedLine {
	out := make([]ResolvedLine, 0, len(tpl.Lines))
	for _, line := range tpl.Lines {
		resolved := ResolvedLine{Line: line}
		switch line.Kind {
		case KindItem, KindItemNoAlpha, KindTotal:
			var v model.Amounts
			for _, id := range line.Notes {
				v = v.Add(tree.Total(id))
			}
			for _, id := range line.Deduct {
				v.CY = v.CY.Sub(tree.Total(id).CY)
				v.PY = v.PY.Sub(tree.Total(id).PY)
			}
			resolved.Value = v
			resolved.HasValue = true
		}
		out = append(out, resolved)
	}
	return out
}

// NoteRef renders an item line's note reference for display ("21" or "" for
// lines without one).
func (l Line) NoteRef() string {
	if len(l.Notes) == 1 {
		return l.Notes[0]
	}
	return ""
}

// Validate checks template shape: item lines reference exactly one note,
// totals at least one. Called from tests; parse errors in the embedded data
// are programmer errors.
func (t Template) Validate() error {
	for i, line := range t.Lines {
		switch line.Kind {
		case KindItem, KindItemNoAlpha:
			if len(line.Notes) != 1 {
				return fmt.Errorf("line %d (%s): item must reference exactly one note", i, line.Description)
			}
		case KindTotal:
			if len(line.Notes) == 0 {
				return fmt.Errorf("line %d (%s): total must reference at least one note", i, line.Description)
			}
		case KindHeader, KindSubHeader, KindSpacer:
		default:
			return fmt.Errorf("line %d (%s): unknown kind %q", i, line.Description, line.Kind)
		}
	}
	return nil
}
