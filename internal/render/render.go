// Package render writes the aggregated statement package to a styled
// workbook. It is a pure sink: it consumes resolved statement lines and the
// aggregated tree and never feeds anything back into the pipeline.
package render

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/aggregate"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/statement"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

const numberFormat = "#,##0.00"

// Write produces the full statement workbook: one sheet per statement and
// one sheet per note, every note present even when zero.
func Write(w io.Writer, tree aggregate.Tree, tax taxonomy.Taxonomy) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeStatement(f, styles, "Balance Sheet", statement.Resolve(statement.BalanceSheet(), tree)); err != nil {
		return err
	}
	if err := writeStatement(f, styles, "Profit and Loss", statement.Resolve(statement.ProfitAndLoss(), tree)); err != nil {
		return err
	}

	for _, id := range tax.NoteIDs() {
		if err := writeNote(f, styles, id, tree[id]); err != nil {
			return err
		}
	}

	// The default sheet excelize creates is not part of the package.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type styleSet struct {
	header int
	total  int
	amount int
}

func newStyles(f *excelize.File) (styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styleSet{}, fmt.Errorf("creating header style: %w", err)
	}
	total, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: strPtr(numberFormat),
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("creating total style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(numberFormat)})
	if err != nil {
		return styleSet{}, fmt.Errorf("creating amount style: %w", err)
	}
	return styleSet{header: header, total: total, amount: amount}, nil
}

func strPtr(s string) *string { return &s }

func writeStatement(f *excelize.File, styles styleSet, sheet string, lines []statement.ResolvedLine) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 48); err != nil {
		return fmt.Errorf("sizing sheet %s: %w", sheet, err)
	}

	setCell(f, sheet, "B", 1, "Particulars", styles.header)
	setCell(f, sheet, "C", 1, "Note", styles.header)
	setCell(f, sheet, "D", 1, model.PeriodCY, styles.header)
	setCell(f, sheet, "E", 1, model.PeriodPY, styles.header)

	row := 2
	for _, line := range lines {
		switch line.Kind {
		case statement.KindSpacer:
		case statement.KindHeader:
			setCell(f, sheet, "B", row, line.Description, styles.header)
		case statement.KindSubHeader:
			label := line.Description
			if line.Index != "" {
				label = line.Index + ". " + label
			}
			setCell(f, sheet, "B", row, label, styles.header)
		case statement.KindTotal:
			setCell(f, sheet, "B", row, line.Description, styles.header)
			setAmount(f, sheet, "D", row, line.Value.CY, styles.total)
			setAmount(f, sheet, "E", row, line.Value.PY, styles.total)
		default:
			label := line.Description
			if line.Index != "" {
				label = line.Index + " " + label
			}
			setCell(f, sheet, "B", row, label, 0)
			setCell(f, sheet, "C", row, line.NoteRef(), 0)
			setAmount(f, sheet, "D", row, line.Value.CY, styles.amount)
			setAmount(f, sheet, "E", row, line.Value.PY, styles.amount)
		}
		row++
	}
	return nil
}

func writeNote(f *excelize.File, styles styleSet, id string, note *aggregate.NoteTotal) error {
	sheet := "Note " + id
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 52); err != nil {
		return fmt.Errorf("sizing sheet %s: %w", sheet, err)
	}

	setCell(f, sheet, "A", 1, fmt.Sprintf("Note %s: %s", id, note.Title), styles.header)
	setCell(f, sheet, "B", 1, model.PeriodCY, styles.header)
	setCell(f, sheet, "C", 1, model.PeriodPY, styles.header)

	row := 2
	row = writeNoteItems(f, styles, sheet, note.Items, 0, row)

	setCell(f, sheet, "A", row, "Total", styles.header)
	setAmount(f, sheet, "B", row, note.Total.CY, styles.total)
	setAmount(f, sheet, "C", row, note.Total.PY, styles.total)
	return nil
}

// writeNoteItems emits one row per sub-item, indenting by depth, with
// interior subtotals after their children. Returns the next free row.
func writeNoteItems(f *excelize.File, styles styleSet, sheet string, n *aggregate.Node, depth, row int) int {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "    "
	}
	for _, label := range n.Order {
		child := n.Children[label]
		if child.IsLeaf() {
			setCell(f, sheet, "A", row, indent+label, 0)
			setAmount(f, sheet, "B", row, child.Amounts.CY, styles.amount)
			setAmount(f, sheet, "C", row, child.Amounts.PY, styles.amount)
			row++
			continue
		}
		setCell(f, sheet, "A", row, indent+label, styles.header)
		row++
		row = writeNoteItems(f, styles, sheet, child, depth+1, row)
		setCell(f, sheet, "A", row, indent+"Total "+label, 0)
		setAmount(f, sheet, "B", row, child.Amounts.CY, styles.amount)
		setAmount(f, sheet, "C", row, child.Amounts.PY, styles.amount)
		row++
	}
	return row
}

func setCell(f *excelize.File, sheet, col string, row int, value string, style int) {
	cell := fmt.Sprintf("%s%d", col, row)
	_ = f.SetCellValue(sheet, cell, value)
	if style != 0 {
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
}

func setAmount(f *excelize.File, sheet, col string, row int, value decimal.Decimal, style int) {
	cell := fmt.Sprintf("%s%d", col, row)
	v, _ := value.Float64()
	_ = f.SetCellValue(sheet, cell, v)
	if style != 0 {
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
}
