package storage

import (
	"path/filepath"
	"sort"
)

// CompletionRepo persists the done.json map of ISO date -> completed slot indices.
type CompletionRepo struct {
	path string
}

func NewCompletionRepo(dir string) *CompletionRepo {
	return &CompletionRepo{path: filepath.Join(dir, DoneFile)}
}

type doneDoc struct {
	Done map[string][]int `json:"done"`
}

// Load returns the completion sets keyed by ISO date.
func (r *CompletionRepo) Load() (map[string]map[int]bool, error) {
	var doc doneDoc
	if _, err := readJSON(r.path, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]map[int]bool, len(doc.Done))
	for date, indices := range doc.Done {
		set := make(map[int]bool, len(indices))
		for _, idx := range indices {
			set[idx] = true
		}
		out[date] = set
	}
	return out, nil
}

// Save writes the sets; dates with no completed slot are dropped.
func (r *CompletionRepo) Save(done map[string]map[int]bool) error {
	doc := doneDoc{Done: make(map[string][]int, len(done))}
	for date, set := range done {
		var indices []int
		for idx, ok := range set {
			if ok {
				indices = append(indices, idx)
			}
		}
		if len(indices) == 0 {
			continue
		}
		sort.Ints(indices)
		doc.Done[date] = indices
	}
	return writeJSON(r.path, doc)
}
