package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"studyplan/internal/config"
	"studyplan/internal/storage"
)

func newTestReviews(t *testing.T, now time.Time) (*ReviewService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default().Review
	return NewReviewService(storage.NewReviewRepo(dir), cfg, WithClock(fixedClock(now))), dir
}

func TestAddReview(t *testing.T) {
	rs, _ := newTestReviews(t, monday)

	id := rs.AddReview("ma", "linear equations")
	assert.Equal(t, "ma_linear_equations", id)
	assert.Equal(t, "ma_linear_equations_1", rs.AddReview("ma", "linear equations"))
	assert.Equal(t, "ma_linear_equations_2", rs.AddReview("ma", "linear equations"))

	r, ok := rs.Review(id)
	require.True(t, ok)
	assert.Equal(t, 0, r.RepetitionNumber)
	assert.InDelta(t, 2.5, r.EaseFactor, 1e-9)
	assert.Equal(t, 1, r.IntervalDays)
	assert.Equal(t, monday, r.LastReviewDate)
	assert.Equal(t, monday, r.NextReviewDate, "initial interval 1 schedules today")
}

func TestAddReviewRejectsEmptyInput(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	assert.Equal(t, "", rs.AddReview("", "topic"))
	assert.Equal(t, "", rs.AddReview("ma", "  "))
	assert.Empty(t, rs.Reviews())
}

func TestAddReviewWithLongerInitialInterval(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	rs.SetInitialInterval(5)

	r, _ := rs.Review(rs.AddReview("de", "commas"))
	assert.Equal(t, 5, r.IntervalDays)
	assert.Equal(t, date(2025, 1, 11), r.NextReviewDate)
}

func TestSettersClamp(t *testing.T) {
	rs, _ := newTestReviews(t, monday)

	rs.SetInitialInterval(0)
	assert.Equal(t, 1, rs.InitialInterval())
	rs.SetInitialInterval(-4)
	assert.Equal(t, 1, rs.InitialInterval())

	rs.SetEaseModifier(0)
	assert.InDelta(t, 0.1, rs.EaseModifier(), 1e-9)
	rs.SetEaseModifier(1.5)
	assert.InDelta(t, 1.5, rs.EaseModifier(), 1e-9)
}

func TestRecordReviewPerfectSequence(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	id := rs.AddReview("ma", "algebra")

	require.True(t, rs.RecordReview(id, 5))
	r, _ := rs.Review(id)
	assert.Equal(t, 1, r.RepetitionNumber)
	assert.Equal(t, 1, r.IntervalDays)
	assert.InDelta(t, 2.6, r.EaseFactor, 1e-9)
	assert.Equal(t, 5, r.Quality)
	assert.Equal(t, monday, r.LastReviewDate)
	assert.Equal(t, tuesday, r.NextReviewDate)

	require.True(t, rs.RecordReview(id, 5))
	r, _ = rs.Review(id)
	assert.Equal(t, 6, r.IntervalDays)
	assert.Equal(t, date(2025, 1, 12), r.NextReviewDate)

	prev := r.IntervalDays
	for i := 0; i < 5; i++ {
		require.True(t, rs.RecordReview(id, 5))
		r, _ = rs.Review(id)
		assert.Greater(t, r.IntervalDays, prev)
		assert.GreaterOrEqual(t, r.EaseFactor, 1.3)
		prev = r.IntervalDays
	}
}

func TestRecordReviewFailureResets(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	id := rs.AddReview("ma", "algebra")
	for i := 0; i < 3; i++ {
		require.True(t, rs.RecordReview(id, 5))
	}
	before, _ := rs.Review(id)

	require.True(t, rs.RecordReview(id, 2))
	r, _ := rs.Review(id)
	assert.Equal(t, 0, r.RepetitionNumber)
	assert.Equal(t, 1, r.IntervalDays)
	assert.Equal(t, tuesday, r.NextReviewDate)
	assert.Equal(t, 2, r.Quality)
	assert.InDelta(t, before.EaseFactor, r.EaseFactor, 1e-9)
}

func TestRecordReviewRejectsInvalidQuality(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	id := rs.AddReview("ma", "algebra")
	require.True(t, rs.RecordReview(id, 4))
	snapshot := rs.Reviews()

	assert.False(t, rs.RecordReview(id, -1))
	assert.False(t, rs.RecordReview(id, 6))
	assert.False(t, rs.RecordReview("unknown", 3))
	assert.Equal(t, snapshot, rs.Reviews())
}

func TestRemoveReview(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	a := rs.AddReview("ma", "a")
	b := rs.AddReview("ma", "b")

	assert.True(t, rs.RemoveReview(a))
	assert.False(t, rs.RemoveReview(a))
	reviews := rs.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, b, reviews[0].ID)
}

func TestReviewQueries(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	a := rs.AddReview("ma", "a")
	b := rs.AddReview("de", "b")
	rs.AddReview("ma", "c")
	require.True(t, rs.RecordReview(a, 5)) // next = tuesday
	require.True(t, rs.RecordReview(b, 5))
	require.True(t, rs.RecordReview(b, 5)) // next = monday + 6

	assert.Len(t, rs.DueReviews(monday), 1)
	assert.Len(t, rs.DueReviews(tuesday), 2)
	assert.Len(t, rs.DueReviews(date(2025, 1, 31)), 3)

	on := rs.ReviewsOnDate(tuesday)
	require.Len(t, on, 1)
	assert.Equal(t, a, on[0].ID)
	assert.Empty(t, rs.ReviewsOnDate(wednesday))

	assert.Len(t, rs.ReviewsForSubject("ma"), 2)
	assert.Empty(t, rs.ReviewsForSubject("en"))
}

func TestReviewsPersistAcrossReload(t *testing.T) {
	rs, dir := newTestReviews(t, monday)
	id := rs.AddReview("ma", "algebra")
	require.True(t, rs.RecordReview(id, 4))
	want, _ := rs.Review(id)

	reloaded := NewReviewService(storage.NewReviewRepo(dir), config.Default().Review)
	got, ok := reloaded.Review(id)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestReviewServiceUsesConfig(t *testing.T) {
	dir := t.TempDir()
	rs := NewReviewService(storage.NewReviewRepo(dir), config.ReviewConfig{InitialInterval: 3, EaseModifier: 0.01})
	assert.Equal(t, 3, rs.InitialInterval())
	assert.InDelta(t, 0.1, rs.EaseModifier(), 1e-9)
}

func TestReviewLoadRepairsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.NewReviewRepo(dir).Save([]storage.ReviewRecord{
		{ID: "x", SubjectID: "ma", Topic: "x", NextReviewDate: "2025-01-06"},
	}))
	rs := NewReviewService(storage.NewReviewRepo(dir), config.Default().Review)

	r, ok := rs.Review("x")
	require.True(t, ok)
	assert.InDelta(t, 2.5, r.EaseFactor, 1e-9)
	assert.Equal(t, 1, r.IntervalDays)
	assert.True(t, r.LastReviewDate.IsZero())
}

func TestReviewLoadRepairsInvalidNextDate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.NewReviewRepo(dir).Save([]storage.ReviewRecord{
		{ID: "typo", SubjectID: "ma", Topic: "Limits", NextReviewDate: "2025-02-30", EaseFactor: 2.5, IntervalDays: 6, RepetitionNumber: 2},
		{ID: "blank", SubjectID: "de", Topic: "Cases", EaseFactor: 2.5, IntervalDays: 1},
		{ID: "fine", SubjectID: "en", Topic: "Idioms", NextReviewDate: "2025-01-20", EaseFactor: 2.5, IntervalDays: 14},
	}))
	core, logs := observer.New(zap.WarnLevel)
	rs := NewReviewService(storage.NewReviewRepo(dir), config.Default().Review,
		WithClock(fixedClock(wednesday)), WithLogger(zap.New(core)))

	require.Len(t, rs.Reviews(), 3, "nothing is dropped")
	typo, _ := rs.Review("typo")
	assert.Equal(t, wednesday, typo.NextReviewDate)
	assert.Equal(t, 6, typo.IntervalDays)
	blank, _ := rs.Review("blank")
	assert.Equal(t, wednesday, blank.NextReviewDate)
	assert.Equal(t, 2, logs.FilterMessage("review has invalid next date, due today").Len())

	assert.Empty(t, rs.DueReviews(tuesday), "repaired dates are not overdue")
	assert.Len(t, rs.DueReviews(wednesday), 2)
}

func TestReviewApplyConfig(t *testing.T) {
	rs, _ := newTestReviews(t, monday)
	rs.ApplyConfig(config.ReviewConfig{InitialInterval: 4, EaseModifier: 0})
	assert.Equal(t, 4, rs.InitialInterval())
	assert.InDelta(t, config.MinEaseModifier, rs.EaseModifier(), 1e-9)
}
