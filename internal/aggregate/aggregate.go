// Package aggregate rolls source rows up through the notes taxonomy. Leaves
// accrue every row whose particulars contains one of their keywords; interior
// nodes carry the recursive sum of their children. The result mirrors the
// taxonomy shape exactly, zero-filled, so every note id is always present.
package aggregate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/model"
	"github.com/Banoth-Rajesham/ai-financial-report-sub000/internal/taxonomy"
)

// Node mirrors a taxonomy node with its aggregated amounts. For an interior
// node the amounts equal the sum of its children's amounts.
type Node struct {
	Amounts  model.Amounts
	Order    []string
	Children map[string]*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.Children == nil }

// NoteTotal is the complete roll-up of one note.
type NoteTotal struct {
	Title string
	Total model.Amounts
	Items *Node
}

// Tree maps note id to its roll-up. Every taxonomy note id is present even
// when nothing matched.
type Tree map[string]*NoteTotal

// Total returns a note's total, or zero amounts for an unknown id.
func (t Tree) Total(noteID string) model.Amounts {
	if n, ok := t[noteID]; ok {
		return n.Total
	}
	return model.Amounts{}
}

// Run aggregates the frame against the taxonomy. Matching is case-insensitive
// substring per keyword: a row matching several keywords of one leaf accrues
// once per matching keyword. Keyword collisions across leaves are logged and
// preserved.
func Run(frame model.SourceFrame, tax taxonomy.Taxonomy, logger *zap.Logger) Tree {
	rows := loweredRows(frame)
	reportCollisions(rows, tax, logger)

	tree := make(Tree, len(tax))
	for _, id := range tax.NoteIDs() {
		note := tax[id]
		items := aggregateNode(note.Items, rows)
		tree[id] = &NoteTotal{
			Title: note.Title,
			Total: items.Amounts,
			Items: items,
		}
	}
	return tree
}

type loweredRow struct {
	particulars string
	amounts     model.Amounts
}

func loweredRows(frame model.SourceFrame) []loweredRow {
	rows := make([]loweredRow, len(frame))
	for i, r := range frame {
		rows[i] = loweredRow{
			particulars: strings.ToLower(r.Particulars),
			amounts:     model.Amounts{CY: r.CY, PY: r.PY},
		}
	}
	return rows
}

func aggregateNode(n *taxonomy.Node, rows []loweredRow) *Node {
	if n.IsLeaf() {
		return &Node{Amounts: sumLeaf(n.Keywords, rows)}
	}

	out := &Node{
		Order:    append([]string(nil), n.Order...),
		Children: make(map[string]*Node, len(n.Children)),
	}
	for _, label := range n.Order {
		child := aggregateNode(n.Children[label], rows)
		out.Children[label] = child
		out.Amounts = out.Amounts.Add(child.Amounts)
	}
	return out
}

func sumLeaf(keywords []string, rows []loweredRow) model.Amounts {
	var total model.Amounts
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		for _, row := range rows {
			if strings.Contains(row.particulars, kw) {
				total = total.Add(row.amounts)
			}
		}
	}
	return total
}

// reportCollisions logs rows that accrue to more than one leaf, a known
// consequence of substring keywords (e.g. "rent" inside "current maturities").
func reportCollisions(rows []loweredRow, tax taxonomy.Taxonomy, logger *zap.Logger) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, row := range rows {
		var hits []string
		for _, id := range tax.NoteIDs() {
			collectHits(tax[id].Items, id, row.particulars, &hits)
		}
		if len(hits) > 1 {
			logger.Debug("particulars matched multiple leaves",
				zap.String("particulars", row.particulars),
				zap.Strings("leaves", hits))
		}
	}
}

func collectHits(n *taxonomy.Node, path, particulars string, hits *[]string) {
	if n.IsLeaf() {
		for _, kw := range n.Keywords {
			if kw != "" && strings.Contains(particulars, strings.ToLower(kw)) {
				*hits = append(*hits, path)
				return
			}
		}
		return
	}
	for _, label := range n.Order {
		collectHits(n.Children[label], path+"/"+label, particulars, hits)
	}
}
