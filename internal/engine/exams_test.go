package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/internal/storage"
)

func TestAddOrUpdateExamDefaults(t *testing.T) {
	svc, dir := newTestService(t, nil)

	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "a", Date: friday, Topics: []string{"limits"}}))
	exams := svc.Exams()
	require.Len(t, exams, 1)
	assert.Equal(t, "a_2025-01-10", exams[0].ID)
	assert.InDelta(t, DefaultExamBoost, exams[0].WeightBoost, 1e-9)

	raw, err := os.ReadFile(filepath.Join(dir, storage.ExamsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exams":[{"id":"a_2025-01-10","subject":"a","date":"2025-01-10","topics":["limits"],"weight_boost":1.3}]}`, string(raw))
}

func TestAddOrUpdateExamUpserts(t *testing.T) {
	svc, _ := newTestService(t, nil)

	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "a", Date: friday}))
	require.True(t, svc.AddOrUpdateExam(Exam{ID: "a_2025-01-10", SubjectID: "a", Date: friday, WeightBoost: 2}))
	exams := svc.Exams()
	require.Len(t, exams, 1)
	assert.InDelta(t, 2.0, exams[0].WeightBoost, 1e-9)

	require.True(t, svc.AddOrUpdateExam(Exam{ID: "custom", SubjectID: "b", Date: saturday}))
	assert.Len(t, svc.Exams(), 2)
}

func TestAddOrUpdateExamRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t, nil)

	assert.False(t, svc.AddOrUpdateExam(Exam{SubjectID: " ", Date: friday}))
	assert.False(t, svc.AddOrUpdateExam(Exam{SubjectID: "a"}))
	assert.Empty(t, svc.Exams())
}

func TestRemoveExam(t *testing.T) {
	svc, dir := newTestService(t, nil)
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "a", Date: friday}))
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "b", Date: saturday}))

	assert.True(t, svc.RemoveExam("a_2025-01-10"))
	assert.False(t, svc.RemoveExam("a_2025-01-10"), "already gone")
	assert.False(t, svc.RemoveExam("nope"))

	exams := svc.Exams()
	require.Len(t, exams, 1)
	assert.Equal(t, "b", exams[0].SubjectID)

	reloaded := NewService(storage.NewStore(dir), nil)
	assert.Len(t, reloaded.Exams(), 1)
}

func TestExamsReturnsCopies(t *testing.T) {
	svc, _ := newTestService(t, nil)
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "a", Date: friday, Topics: []string{"x"}}))

	exams := svc.Exams()
	exams[0].Topics[0] = "mutated"
	assert.Equal(t, "x", svc.Exams()[0].Topics[0])
}

func TestUpcomingExams(t *testing.T) {
	svc, _ := newTestService(t, nil)
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "b", Date: friday}))
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "a", Date: tuesday}))
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "c", Date: monday}))
	require.True(t, svc.AddOrUpdateExam(Exam{SubjectID: "zz", Date: date(2025, 1, 1)}))

	views := svc.UpcomingExams(monday)
	require.Len(t, views, 3)

	assert.Equal(t, "c", views[0].SubjectID)
	assert.Equal(t, "Gamma", views[0].SubjectName)
	assert.Equal(t, 0, views[0].DaysLeft)
	assert.Equal(t, PriorityHigh, views[0].Priority)

	assert.Equal(t, "a", views[1].SubjectID)
	assert.Equal(t, PriorityMedium, views[1].Priority)

	assert.Equal(t, "b", views[2].SubjectID)
	assert.Equal(t, 4, views[2].DaysLeft)
	assert.Equal(t, PriorityLow, views[2].Priority)
}

func TestLoadSkipsExamsWithInvalidDates(t *testing.T) {
	dir := t.TempDir()
	writeJSONFile(t, dir, storage.ExamsFile, map[string]any{"exams": []map[string]any{
		{"id": "bad", "subject": "a", "date": "not-a-date"},
		{"subject": "a", "date": "2025-02-01"},
	}})
	svc := NewService(storage.NewStore(dir), nil)

	exams := svc.Exams()
	require.Len(t, exams, 1)
	assert.Equal(t, "a_2025-02-01", exams[0].ID)
	assert.InDelta(t, DefaultExamBoost, exams[0].WeightBoost, 1e-9)
}
