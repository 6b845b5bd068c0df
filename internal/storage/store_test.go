package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/internal/config"
)

func TestEnsureSeedCreatesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	created, err := s.EnsureSeed()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{SubjectsFile, DiagnosticsFile, ConfigFile, ExamsFile, DoneFile, ReviewsFile}, created)

	subjects, err := s.Subjects.List()
	require.NoError(t, err)
	assert.Len(t, subjects, len(DefaultSubjects()))

	cfg, err := config.Load(s.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCapacity, cfg.Planner.Capacity)

	raw, err := os.ReadFile(filepath.Join(dir, ExamsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exams": []}`, string(raw))

	created, err = s.EnsureSeed()
	require.NoError(t, err)
	assert.Empty(t, created, "second run leaves files alone")
}

func TestEnsureSeedKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SubjectsFile), []byte(`{"subjects":[{"id":"x","name":"X"}]}`), 0o600))

	s := NewStore(dir)
	_, err := s.EnsureSeed()
	require.NoError(t, err)

	subjects, err := s.Subjects.List()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "x", subjects[0].ID)
	assert.Nil(t, subjects[0].Weight)
}

func TestMissingFilesReadAsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())

	subjects, err := s.Subjects.List()
	require.NoError(t, err)
	assert.Empty(t, subjects)

	levels, err := s.Levels.Get()
	require.NoError(t, err)
	assert.Empty(t, levels)

	done, err := s.Done.Load()
	require.NoError(t, err)
	assert.Empty(t, done)

	reviews, err := s.Reviews.List()
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCorruptFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExamsFile), []byte(`{"exams": [`), 0o600))

	_, err := NewExamRepo(dir).List()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ExamsFile)
}

func TestExamRoundTrip(t *testing.T) {
	repo := NewExamRepo(t.TempDir())
	boost := 1.5
	in := []ExamRecord{
		{ID: "ma_2025-03-10", Subject: "ma", Date: "2025-03-10", Topics: []string{"fractions"}, WeightBoost: &boost},
		{ID: "de_2025-03-12", Subject: "de", Date: "2025-03-12"},
	}
	require.NoError(t, repo.Save(in))

	out, err := repo.List()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ma", out[0].Subject)
	assert.InDelta(t, 1.5, *out[0].WeightBoost, 1e-9)
	assert.Equal(t, []string{}, out[1].Topics)
}

func TestCompletionSavePrunesEmptyDates(t *testing.T) {
	dir := t.TempDir()
	repo := NewCompletionRepo(dir)
	require.NoError(t, repo.Save(map[string]map[int]bool{
		"2025-01-06": {2: true, 0: true},
		"2025-01-07": {1: false},
		"2025-01-08": {},
	}))

	raw, err := os.ReadFile(filepath.Join(dir, DoneFile))
	require.NoError(t, err)
	var doc struct {
		Done map[string][]int `json:"done"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, map[string][]int{"2025-01-06": {0, 2}}, doc.Done)

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, loaded["2025-01-06"][2])
	assert.False(t, loaded["2025-01-06"][1])
}

func TestReviewRoundTripUsesCamelCaseKeys(t *testing.T) {
	dir := t.TempDir()
	repo := NewReviewRepo(dir)
	require.NoError(t, repo.Save([]ReviewRecord{{
		ID: "ma_algebra", SubjectID: "ma", Topic: "algebra",
		LastReviewDate: "2025-01-01", NextReviewDate: "2025-01-02",
		EaseFactor: 2.5, IntervalDays: 1,
	}}))

	raw, err := os.ReadFile(filepath.Join(dir, ReviewsFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"nextReviewDate": "2025-01-02"`)
	assert.Contains(t, string(raw), `"subjectId": "ma"`)

	out, err := repo.List()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "algebra", out[0].Topic)
}

func TestLevelsDefaultBlankToB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DiagnosticsFile), []byte(`{"levels":{"ma":"C","de":""}}`), 0o600))

	levels, err := NewLevelRepo(dir).Get()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ma": "C", "de": DefaultLevel}, levels)
}

func TestWriteJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewSubjectRepo(dir).Save(DefaultSubjects()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SubjectsFile, entries[0].Name())
}
