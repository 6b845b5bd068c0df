package storage

import "path/filepath"

// DefaultLevel applies to subjects without a diagnostics entry.
const DefaultLevel = "B"

// LevelRepo reads the per-subject proficiency levels in diagnostics.json.
type LevelRepo struct {
	path string
}

func NewLevelRepo(dir string) *LevelRepo {
	return &LevelRepo{path: filepath.Join(dir, DiagnosticsFile)}
}

type diagnosticsDoc struct {
	Levels map[string]string `json:"levels"`
}

func (r *LevelRepo) Get() (map[string]string, error) {
	var doc diagnosticsDoc
	if _, err := readJSON(r.path, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(doc.Levels))
	for subject, level := range doc.Levels {
		if level == "" {
			level = DefaultLevel
		}
		out[subject] = level
	}
	return out, nil
}

func (r *LevelRepo) Save(levels map[string]string) error {
	if levels == nil {
		levels = map[string]string{}
	}
	return writeJSON(r.path, diagnosticsDoc{Levels: levels})
}
