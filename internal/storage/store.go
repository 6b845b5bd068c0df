package storage

import (
	"fmt"
	"path/filepath"

	"studyplan/internal/config"
)

// Store groups the JSON repositories of one data directory.
type Store struct {
	Dir      string
	Subjects *SubjectRepo
	Levels   *LevelRepo
	Exams    *ExamRepo
	Done     *CompletionRepo
	Reviews  *ReviewRepo
}

func NewStore(dir string) *Store {
	return &Store{
		Dir:      dir,
		Subjects: NewSubjectRepo(dir),
		Levels:   NewLevelRepo(dir),
		Exams:    NewExamRepo(dir),
		Done:     NewCompletionRepo(dir),
		Reviews:  NewReviewRepo(dir),
	}
}

// ConfigPath is the location of config.json in the data directory.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.Dir, ConfigFile)
}

// EventsPath is the location of the events database.
func (s *Store) EventsPath() string {
	return filepath.Join(s.Dir, EventsDBName)
}

// EnsureSeed creates every missing data file with its default content.
// Existing files are never touched. It returns the names it created.
func (s *Store) EnsureSeed() ([]string, error) {
	seeds := []struct {
		name  string
		write func() error
	}{
		{SubjectsFile, func() error { return s.Subjects.Save(DefaultSubjects()) }},
		{DiagnosticsFile, func() error { return s.Levels.Save(nil) }},
		{ConfigFile, func() error { return writeJSON(s.ConfigPath(), config.DefaultFile()) }},
		{ExamsFile, func() error { return s.Exams.Save(nil) }},
		{DoneFile, func() error { return s.Done.Save(nil) }},
		{ReviewsFile, func() error { return s.Reviews.Save(nil) }},
	}

	var created []string
	for _, seed := range seeds {
		if fileExists(filepath.Join(s.Dir, seed.name)) {
			continue
		}
		if err := seed.write(); err != nil {
			return created, fmt.Errorf("seed %s: %w", seed.name, err)
		}
		created = append(created, seed.name)
	}
	return created, nil
}

// DefaultSubjects is the starter catalog written on first run.
func DefaultSubjects() []SubjectRecord {
	w := func(v float64) *float64 { return &v }
	return []SubjectRecord{
		{ID: "ma", Name: "Mathematics", Weight: w(1.3), Color: "#3B82F6"},
		{ID: "de", Name: "German", Weight: w(1.2), Color: "#EF4444"},
		{ID: "en", Name: "English", Weight: w(1.2), Color: "#10B981"},
		{ID: "ph", Name: "Physics", Weight: w(1.0), Color: "#8B5CF6"},
		{ID: "ch", Name: "Chemistry", Weight: w(1.0), Color: "#F59E0B"},
		{ID: "bio", Name: "Biology", Weight: w(1.0), Color: "#22C55E"},
		{ID: "ges", Name: "History", Weight: w(0.9), Color: "#A16207"},
		{ID: "geo", Name: "Geography", Weight: w(0.9), Color: "#0EA5E9"},
		{ID: "gk", Name: "Civics", Weight: w(0.8), Color: "#64748B"},
		{ID: "wpf", Name: "Technology Elective", Weight: w(0.8), Color: "#14B8A6"},
		{ID: "wbs", Name: "Economics & Careers", Weight: w(0.7), Color: "#D946EF"},
		{ID: "eth", Name: "Ethics", Weight: w(0.6), Color: "#F472B6"},
		{ID: "bk", Name: "Art", Weight: w(0.5), Color: "#FB923C"},
		{ID: "mu", Name: "Music", Weight: w(0.5), Color: "#A78BFA"},
		{ID: "sp", Name: "Physical Education", Weight: w(0.4), Color: "#84CC16"},
	}
}
