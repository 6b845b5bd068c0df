package engine

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"studyplan/internal/algorithm"
	"studyplan/internal/config"
	"studyplan/internal/day"
	"studyplan/internal/storage"
)

// ReviewService schedules topic reviews with SM-2 over reviews.json.
type ReviewService struct {
	repo   *storage.ReviewRepo
	params algorithm.Params
	log    *zap.Logger
	now    func() time.Time

	reviews []Review
}

func NewReviewService(repo *storage.ReviewRepo, cfg config.ReviewConfig, opts ...Option) *ReviewService {
	if repo == nil {
		panic("engine: NewReviewService requires a repo")
	}
	o := buildOptions(opts)
	rs := &ReviewService{
		repo: repo,
		log:  o.logger,
		now:  o.now,
	}
	rs.ApplyConfig(cfg)
	rs.Reload()
	return rs
}

// SetInitialInterval sets the first interval in days, at least 1.
func (rs *ReviewService) SetInitialInterval(days int) {
	if days < 1 {
		days = 1
	}
	rs.params.InitialInterval = days
}

// SetEaseModifier scales ease-factor changes, at least 0.1.
func (rs *ReviewService) SetEaseModifier(m float64) {
	if m < config.MinEaseModifier {
		m = config.MinEaseModifier
	}
	rs.params.EaseModifier = m
}

// ApplyConfig takes over the review section of a reloaded configuration.
func (rs *ReviewService) ApplyConfig(cfg config.ReviewConfig) {
	rs.SetInitialInterval(cfg.InitialInterval)
	rs.SetEaseModifier(cfg.EaseModifier)
}

func (rs *ReviewService) InitialInterval() int  { return rs.params.InitialInterval }
func (rs *ReviewService) EaseModifier() float64 { return rs.params.EaseModifier }

// Reload re-reads reviews.json. An unreadable file leaves the list empty.
func (rs *ReviewService) Reload() {
	records, err := rs.repo.List()
	if err != nil {
		rs.log.Warn("store read failed", zap.String("file", storage.ReviewsFile), zap.Error(err))
	}
	today := day.Today(rs.now)
	rs.reviews = make([]Review, 0, len(records))
	for _, r := range records {
		rev, ok := reviewFromRecord(r, today)
		if !ok {
			rs.log.Warn("review has invalid next date, due today",
				zap.String("id", r.ID), zap.String("next_review_date", r.NextReviewDate))
		}
		rs.reviews = append(rs.reviews, rev)
	}
}

// AddReview schedules a new topic and returns its id, or "" when subject
// or topic is empty.
func (rs *ReviewService) AddReview(subjectID, topic string) string {
	subjectID, topic = strings.TrimSpace(subjectID), strings.TrimSpace(topic)
	if subjectID == "" || topic == "" {
		return ""
	}

	today := day.Today(rs.now)
	state := algorithm.Initial(rs.params)
	next := today
	if rs.params.InitialInterval > 1 {
		next = day.Add(today, rs.params.InitialInterval)
	}

	r := Review{
		ID:               rs.uniqueID(subjectID, topic),
		SubjectID:        subjectID,
		Topic:            topic,
		LastReviewDate:   today,
		NextReviewDate:   next,
		RepetitionNumber: state.Repetition,
		EaseFactor:       state.EaseFactor,
		IntervalDays:     state.IntervalDays,
	}
	rs.reviews = append(rs.reviews, r)
	rs.save()
	return r.ID
}

// RecordReview applies a graded recall. It returns false, leaving the item
// untouched, for an unknown id or a quality outside 0-5.
func (rs *ReviewService) RecordReview(id string, quality int) bool {
	if !algorithm.ValidQuality(quality) {
		return false
	}
	i := rs.indexOf(id)
	if i < 0 {
		return false
	}

	r := &rs.reviews[i]
	next := algorithm.Next(algorithm.State{
		Repetition:   r.RepetitionNumber,
		EaseFactor:   r.EaseFactor,
		IntervalDays: r.IntervalDays,
	}, quality, rs.params)

	today := day.Today(rs.now)
	r.RepetitionNumber = next.Repetition
	r.EaseFactor = next.EaseFactor
	r.IntervalDays = next.IntervalDays
	r.Quality = quality
	r.LastReviewDate = today
	r.NextReviewDate = day.Add(today, next.IntervalDays)

	rs.save()
	return true
}

// RemoveReview deletes id. It returns false if no review matched.
func (rs *ReviewService) RemoveReview(id string) bool {
	i := rs.indexOf(id)
	if i < 0 {
		return false
	}
	rs.reviews = append(rs.reviews[:i], rs.reviews[i+1:]...)
	rs.save()
	return true
}

// Review returns a copy of one review.
func (rs *ReviewService) Review(id string) (Review, bool) {
	if i := rs.indexOf(id); i >= 0 {
		return rs.reviews[i], true
	}
	return Review{}, false
}

// Reviews returns every review in insertion order.
func (rs *ReviewService) Reviews() []Review {
	return rs.filter(func(Review) bool { return true })
}

// DueReviews returns reviews scheduled on or before asOf.
func (rs *ReviewService) DueReviews(asOf time.Time) []Review {
	asOf = day.Of(asOf)
	return rs.filter(func(r Review) bool { return !r.NextReviewDate.After(asOf) })
}

// ReviewsOnDate returns reviews scheduled exactly on date.
func (rs *ReviewService) ReviewsOnDate(date time.Time) []Review {
	date = day.Of(date)
	return rs.filter(func(r Review) bool { return r.NextReviewDate.Equal(date) })
}

func (rs *ReviewService) ReviewsForSubject(subjectID string) []Review {
	return rs.filter(func(r Review) bool { return r.SubjectID == subjectID })
}

func (rs *ReviewService) filter(keep func(Review) bool) []Review {
	var out []Review
	for _, r := range rs.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (rs *ReviewService) indexOf(id string) int {
	for i, r := range rs.reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID builds subject_topic with spaces as underscores, suffixed
// _1, _2, ... until unused.
func (rs *ReviewService) uniqueID(subjectID, topic string) string {
	base := strings.ReplaceAll(subjectID+"_"+topic, " ", "_")
	id := base
	for n := 1; rs.indexOf(id) >= 0; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

func (rs *ReviewService) save() {
	records := make([]storage.ReviewRecord, 0, len(rs.reviews))
	for _, r := range rs.reviews {
		records = append(records, storage.ReviewRecord{
			ID:               r.ID,
			SubjectID:        r.SubjectID,
			Topic:            r.Topic,
			LastReviewDate:   day.Format(r.LastReviewDate),
			NextReviewDate:   day.Format(r.NextReviewDate),
			RepetitionNumber: r.RepetitionNumber,
			EaseFactor:       r.EaseFactor,
			IntervalDays:     r.IntervalDays,
			Quality:          r.Quality,
		})
	}
	if err := rs.repo.Save(records); err != nil {
		rs.log.Warn("store write failed", zap.String("file", storage.ReviewsFile), zap.Error(err))
	}
}

// reviewFromRecord repairs out-of-range SM-2 values. An unparseable next
// date becomes today and is reported through ok.
func reviewFromRecord(r storage.ReviewRecord, today time.Time) (Review, bool) {
	last, _ := day.Parse(r.LastReviewDate)
	next, ok := day.Parse(r.NextReviewDate)
	if !ok {
		next = today
	}
	out := Review{
		ID:               r.ID,
		SubjectID:        r.SubjectID,
		Topic:            r.Topic,
		LastReviewDate:   last,
		NextReviewDate:   next,
		RepetitionNumber: r.RepetitionNumber,
		EaseFactor:       r.EaseFactor,
		IntervalDays:     r.IntervalDays,
		Quality:          r.Quality,
	}
	if out.EaseFactor == 0 {
		out.EaseFactor = algorithm.InitialEaseFactor
	}
	if out.EaseFactor < algorithm.MinEaseFactor {
		out.EaseFactor = algorithm.MinEaseFactor
	}
	if out.IntervalDays < 1 {
		out.IntervalDays = 1
	}
	if out.RepetitionNumber < 0 {
		out.RepetitionNumber = 0
	}
	return out, ok
}
