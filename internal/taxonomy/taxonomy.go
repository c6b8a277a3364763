// Package taxonomy defines the canonical notes tree that drives mapping and
// aggregation: 26 numbered notes, each a nested map of category labels ending
// in keyword lists. The table itself is static configuration embedded as YAML;
// this package exposes read-only accessors and explicit deep copies.
package taxonomy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one vertex of a note's sub-item tree. A node is either interior
// (Children non-nil) or a leaf (keyword list). Order preserves the declaration
// order of child labels so traversal and rendering stay deterministic.
type Node struct {
	Order    []string
	Children map[string]*Node
	Keywords []string
}

// IsLeaf reports whether the node carries keywords rather than children.
func (n *Node) IsLeaf() bool { return n.Children == nil }

// UnmarshalYAML accepts either a nested mapping (interior node) or a sequence
// of keyword strings (leaf).
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&n.Keywords)
	case yaml.MappingNode:
		n.Children = make(map[string]*Node, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			label := value.Content[i].Value
			child := &Node{}
			if err := value.Content[i+1].Decode(child); err != nil {
				return fmt.Errorf("decoding sub-item %q: %w", label, err)
			}
			n.Order = append(n.Order, label)
			n.Children[label] = child
		}
		return nil
	default:
		return fmt.Errorf("sub-item must be a mapping or a keyword list (line %d)", value.Line)
	}
}

// Clone returns a structurally independent deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{}
	if n.IsLeaf() {
		out.Keywords = append([]string(nil), n.Keywords...)
		return out
	}
	out.Order = append([]string(nil), n.Order...)
	out.Children = make(map[string]*Node, len(n.Children))
	for label, child := range n.Children {
		out.Children[label] = child.Clone()
	}
	return out
}

// Note is one numbered section of the statements.
type Note struct {
	Title string `yaml:"title"`
	Items *Node  `yaml:"sub_items"`
}

// Clone returns a structurally independent deep copy.
func (n *Note) Clone() *Note {
	return &Note{Title: n.Title, Items: n.Items.Clone()}
}

// Taxonomy maps note id ("1".."26") to its note entry.
type Taxonomy map[string]*Note

// Parse decodes a taxonomy table from YAML.
func Parse(data []byte) (Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	for id, note := range t {
		if note == nil || note.Items == nil {
			return nil, fmt.Errorf("note %s has no sub_items", id)
		}
		if note.Items.IsLeaf() {
			return nil, fmt.Errorf("note %s sub_items must be a mapping", id)
		}
	}
	return t, nil
}

// Clone returns a structurally independent deep copy of the whole table.
func (t Taxonomy) Clone() Taxonomy {
	out := make(Taxonomy, len(t))
	for id, note := range t {
		out[id] = note.Clone()
	}
	return out
}

// NoteIDs returns all note ids in numeric order.
func (t Taxonomy) NoteIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

// Categories returns the labels that unknown terms may be classified into:
// the direct children of every note's sub_items, in note order then
// declaration order. Duplicate labels across notes appear once.
func (t Taxonomy) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range t.NoteIDs() {
		for _, label := range t[id].Items.Order {
			if seen[label] {
				continue
			}
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}

// Keywords returns every keyword in the table, case-folded, as a set.
func (t Taxonomy) Keywords() map[string]struct{} {
	set := make(map[string]struct{})
	for _, note := range t {
		collectKeywords(note.Items, set)
	}
	return set
}

func collectKeywords(n *Node, set map[string]struct{}) {
	if n.IsLeaf() {
		for _, kw := range n.Keywords {
			set[strings.ToLower(kw)] = struct{}{}
		}
		return
	}
	for _, label := range n.Order {
		collectKeywords(n.Children[label], set)
	}
}

// FindLeaf locates the first leaf stored under the given category label,
// searching notes in id order and sub-items depth-first in declaration order.
// A label naming an interior node resolves to that subtree's first leaf.
func (t Taxonomy) FindLeaf(category string) *Node {
	for _, id := range t.NoteIDs() {
		if leaf := findLeafUnder(t[id].Items, category); leaf != nil {
			return leaf
		}
	}
	return nil
}

func findLeafUnder(n *Node, category string) *Node {
	if n.IsLeaf() {
		return nil
	}
	for _, label := range n.Order {
		child := n.Children[label]
		if label == category {
			if leaf := firstLeaf(child); leaf != nil {
				return leaf
			}
		}
		if leaf := findLeafUnder(child, category); leaf != nil {
			return leaf
		}
	}
	return nil
}

func firstLeaf(n *Node) *Node {
	if n.IsLeaf() {
		return n
	}
	for _, label := range n.Order {
		if leaf := firstLeaf(n.Children[label]); leaf != nil {
			return leaf
		}
	}
	return nil
}

// LeafAt resolves a path of labels under a note to its keyword list.
func (t Taxonomy) LeafAt(noteID string, path ...string) ([]string, bool) {
	note, ok := t[noteID]
	if !ok {
		return nil, false
	}
	n := note.Items
	for _, label := range path {
		if n.IsLeaf() {
			return nil, false
		}
		n, ok = n.Children[label]
		if !ok {
			return nil, false
		}
	}
	if !n.IsLeaf() {
		return nil, false
	}
	return n.Keywords, true
}
