package engine

import (
	"sort"
	"strings"
	"time"

	"studyplan/internal/day"
	"studyplan/internal/storage"
)

// AddOrUpdateExam upserts by id. An empty id becomes subject_ISODATE.
// It returns false when the subject is empty or the date invalid.
func (s *Service) AddOrUpdateExam(e Exam) bool {
	e.SubjectID = strings.TrimSpace(e.SubjectID)
	if e.SubjectID == "" || !day.Valid(e.Date) {
		return false
	}
	e.Date = day.Of(e.Date)
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		e.ID = examID(e.SubjectID, e.Date)
	}
	if e.WeightBoost <= 0 {
		e.WeightBoost = DefaultExamBoost
	}
	e.Topics = append([]string(nil), e.Topics...)

	replaced := false
	for i := range s.exams {
		if s.exams[i].ID == e.ID {
			s.exams[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		s.exams = append(s.exams, e)
	}
	s.saveExams()
	return true
}

// RemoveExam deletes the exam with id. It returns false if none matched.
func (s *Service) RemoveExam(id string) bool {
	kept := s.exams[:0]
	removed := false
	for _, e := range s.exams {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.exams = kept
	if !removed {
		return false
	}
	s.saveExams()
	return true
}

// Exams returns every stored exam in insertion order.
func (s *Service) Exams() []Exam {
	out := make([]Exam, len(s.exams))
	for i, e := range s.exams {
		out[i] = e
		out[i].Topics = append([]string(nil), e.Topics...)
	}
	return out
}

// UpcomingExams lists exams on or after today, soonest first, classified
// with the simple rule.
func (s *Service) UpcomingExams(today time.Time) []ExamView {
	today = day.Of(today)
	var out []ExamView
	for _, e := range s.Exams() {
		if e.Date.Before(today) {
			continue
		}
		date := e.Date
		v := ExamView{
			Exam:        e,
			SubjectName: e.SubjectID,
			DaysLeft:    day.DaysTo(today, date),
			Priority:    Classify(&date, false, today, PriorityLow),
		}
		if sub, ok := s.Subject(e.SubjectID); ok {
			v.SubjectName = sub.Name
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (s *Service) saveExams() {
	records := make([]storage.ExamRecord, 0, len(s.exams))
	for _, e := range s.exams {
		boost := e.WeightBoost
		records = append(records, storage.ExamRecord{
			ID:          e.ID,
			Subject:     e.SubjectID,
			Date:        day.Format(e.Date),
			Topics:      append([]string(nil), e.Topics...),
			WeightBoost: &boost,
		})
	}
	s.persisted(storage.ExamsFile, s.store.Exams.Save(records))
}

func examID(subjectID string, date time.Time) string {
	return subjectID + "_" + day.Format(date)
}
