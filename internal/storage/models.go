package storage

import "time"

// SubjectRecord is one entry of subjects.json.
type SubjectRecord struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Weight *float64 `json:"weight,omitempty"`
	Color  string   `json:"color,omitempty"`
	Goals  []string `json:"goals,omitempty"`
}

// ExamRecord is one entry of exams.json.
type ExamRecord struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Date        string   `json:"date"`
	Topics      []string `json:"topics"`
	WeightBoost *float64 `json:"weight_boost,omitempty"`
}

// ReviewRecord is one entry of reviews.json.
type ReviewRecord struct {
	ID               string  `json:"id"`
	SubjectID        string  `json:"subjectId"`
	Topic            string  `json:"topic"`
	LastReviewDate   string  `json:"lastReviewDate"`
	NextReviewDate   string  `json:"nextReviewDate"`
	RepetitionNumber int     `json:"repetitionNumber"`
	EaseFactor       float64 `json:"easeFactor"`
	IntervalDays     int     `json:"intervalDays"`
	Quality          int     `json:"quality"`
}

// Event is one row of the events table.
type Event struct {
	ID        string
	Title     string
	Start     time.Time
	End       *time.Time
	AllDay    bool
	Location  string
	Notes     string
	Tags      []string
	IsExam    bool
	IsDone    bool
	Due       *time.Time
	SubjectID string
	ColorHint string
	CreatedAt time.Time
	UpdatedAt time.Time
}
