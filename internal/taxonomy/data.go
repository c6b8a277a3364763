package taxonomy

import (
	_ "embed"
	"sync"
)

//go:embed notes.yaml
var notesYAML []byte

var (
	loadOnce  sync.Once
	canonical Taxonomy
)

// Canonical returns the process-wide canonical taxonomy. The table is parsed
// once and shared by reference; callers must not mutate it. Mutating stages
// work on a Clone.
func Canonical() Taxonomy {
	loadOnce.Do(func() {
		t, err := Parse(notesYAML)
		if err != nil {
			panic("taxonomy: embedded notes table is invalid: " + err.Error())
		}
		canonical = t
	})
	return canonical
}
