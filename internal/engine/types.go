package engine

import "time"

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

const (
	// DefaultSubjectWeight applies when subjects.json omits a weight.
	DefaultSubjectWeight = 1.0
	// DefaultExamBoost applies when an exam omits weight_boost.
	DefaultExamBoost = 1.3
	// DefaultSubjectColor is used for subjects without a color.
	DefaultSubjectColor = "#999999"
	// UnknownSubjectColor tints events whose subject id is not registered.
	UnknownSubjectColor = "#606060"
)

type Subject struct {
	ID     string
	Name   string
	Weight float64
	Color  string
	Goals  []string
}

type Exam struct {
	ID          string
	SubjectID   string
	Date        time.Time
	Topics      []string
	WeightBoost float64
}

// ExamView is an exam as listed in the upcoming-exams sidebar.
type ExamView struct {
	Exam
	SubjectName string
	DaysLeft    int
	Priority    Priority
}

// Task is one generated study slot. Tasks are never stored.
type Task struct {
	ID              string
	SubjectID       string
	Title           string
	Goal            string
	DurationMinutes int
	Date            time.Time
	Done            bool
	IsExam          bool
	Color           string
	PlanIndex       int
	Priority        Priority
}

type Review struct {
	ID               string
	SubjectID        string
	Topic            string
	LastReviewDate   time.Time
	NextReviewDate   time.Time
	RepetitionNumber int
	EaseFactor       float64
	IntervalDays     int
	Quality          int
}

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
	Done      bool
	Due       *time.Time
	SubjectID string
	ColorHint string
	CreatedAt time.Time
	UpdatedAt time.Time
	// Priority is derived on every read and never stored.
	Priority Priority
}
