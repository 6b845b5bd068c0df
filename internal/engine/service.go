// Package engine generates daily study plans and schedules spaced reviews.
//
// Services own their collections, load everything at construction and
// write JSON through after every mutation. They are not safe for
// concurrent use; callers serialize access.
package engine

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"studyplan/internal/config"
	"studyplan/internal/day"
	"studyplan/internal/storage"
)

type options struct {
	logger *zap.Logger
	now    func() time.Time
	events storage.EventStore
}

// Option configures a Service or ReviewService.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now, which decides "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithEvents attaches an event store, SQLite or the events.json fallback.
// Without it every event operation returns ErrEventsUnavailable.
func WithEvents(repo storage.EventStore) Option {
	return func(o *options) {
		o.events = repo
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Service struct {
	store  *storage.Store
	cfg    *config.Config
	scorer Scorer
	log    *zap.Logger
	now    func() time.Time
	events storage.EventStore

	subjects []Subject
	levels   map[string]string
	exams    []Exam
	done     map[string]map[int]bool
}

// NewService seeds missing data files in the store's directory and loads
// them. A nil cfg means the built-in defaults.
func NewService(store *storage.Store, cfg *config.Config, opts ...Option) *Service {
	if store == nil {
		panic("engine: NewService requires a store")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	o := buildOptions(opts)

	s := &Service{
		store:  store,
		cfg:    cfg,
		scorer: NewScorer(cfg.Priority),
		log:    o.logger,
		now:    o.now,
		events: o.events,
	}
	if o.events != nil {
		o.events.SetClock(o.now)
	}

	created, err := store.EnsureSeed()
	if err != nil {
		s.log.Warn("seeding data dir failed", zap.String("dir", store.Dir), zap.Error(err))
	}
	if len(created) > 0 {
		s.log.Info("seeded data files", zap.Strings("files", created))
	}

	s.Reload()
	return s
}

// Reload re-reads every JSON data file. Unreadable files degrade to empty
// collections and are logged.
func (s *Service) Reload() {
	s.loadSubjects()
	s.loadLevels()
	s.loadExams()
	s.loadDone()
}

// SetConfig swaps the planner configuration, e.g. after config.json changed.
func (s *Service) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
	s.scorer = NewScorer(cfg.Priority)
}

// ReloadConfig re-reads config.json from the store's directory. A rejected
// file is logged and returned while the current configuration stays.
func (s *Service) ReloadConfig() error {
	path := s.store.ConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		s.log.Warn("config rejected, keeping current", zap.String("path", path), zap.Error(err))
		return err
	}
	s.SetConfig(cfg)
	return nil
}

func (s *Service) Config() *config.Config { return s.cfg }
func (s *Service) Store() *storage.Store   { return s.store }

// Today is the current date according to the service clock.
func (s *Service) Today() time.Time {
	return day.Today(s.now)
}

// Subjects returns the registry in file order.
func (s *Service) Subjects() []Subject {
	out := make([]Subject, len(s.subjects))
	for i, sub := range s.subjects {
		out[i] = sub
		out[i].Goals = append([]string(nil), sub.Goals...)
	}
	return out
}

// Subject looks a subject up by id.
func (s *Service) Subject(id string) (Subject, bool) {
	for _, sub := range s.subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subject{}, false
}

// Level returns the proficiency level of a subject, "B" when unknown.
func (s *Service) Level(subjectID string) string {
	if lvl, ok := s.levels[subjectID]; ok {
		return lvl
	}
	return storage.DefaultLevel
}

// LevelFactor is the multiplier the subject's level applies to its weight.
func (s *Service) LevelFactor(subjectID string) float64 {
	return s.cfg.Planner.Factor(s.Level(subjectID))
}

func (s *Service) loadSubjects() {
	records, err := s.store.Subjects.List()
	if err != nil {
		s.log.Warn("store read failed", zap.String("file", storage.SubjectsFile), zap.Error(err))
	}
	s.subjects = s.subjects[:0]
	for _, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			s.log.Warn("skipping subject without id", zap.String("name", r.Name))
			continue
		}
		sub := Subject{
			ID:     id,
			Name:   r.Name,
			Weight: DefaultSubjectWeight,
			Color:  r.Color,
			Goals:  append([]string(nil), r.Goals...),
		}
		if sub.Name == "" {
			sub.Name = id
		}
		if r.Weight != nil {
			sub.Weight = *r.Weight
		}
		if sub.Weight < 0 {
			s.log.Warn("negative subject weight clamped to 0", zap.String("subject", id))
			sub.Weight = 0
		}
		if sub.Color == "" {
			sub.Color = DefaultSubjectColor
		}
		s.subjects = append(s.subjects, sub)
	}
}

func (s *Service) loadLevels() {
	levels, err := s.store.Levels.Get()
	if err != nil {
		s.log.Warn("store read failed", zap.String("file", storage.DiagnosticsFile), zap.Error(err))
		levels = map[string]string{}
	}
	s.levels = levels
}

func (s *Service) loadExams() {
	records, err := s.store.Exams.List()
	if err != nil {
		s.log.Warn("store read failed", zap.String("file", storage.ExamsFile), zap.Error(err))
	}
	s.exams = s.exams[:0]
	for _, r := range records {
		date, ok := day.Parse(r.Date)
		if !ok {
			s.log.Warn("skipping exam with invalid date", zap.String("id", r.ID), zap.String("date", r.Date))
			continue
		}
		e := Exam{
			ID:          r.ID,
			SubjectID:   r.Subject,
			Date:        date,
			Topics:      append([]string(nil), r.Topics...),
			WeightBoost: DefaultExamBoost,
		}
		if r.WeightBoost != nil {
			e.WeightBoost = *r.WeightBoost
		}
		if e.ID == "" {
			e.ID = examID(e.SubjectID, date)
		}
		s.exams = append(s.exams, e)
	}
}

func (s *Service) loadDone() {
	done, err := s.store.Done.Load()
	if err != nil {
		s.log.Warn("store read failed", zap.String("file", storage.DoneFile), zap.Error(err))
		done = map[string]map[int]bool{}
	}
	s.done = done
}

// persisted logs a failed write-through. The in-memory state is kept.
func (s *Service) persisted(file string, err error) {
	if err != nil {
		s.log.Warn("store write failed", zap.String("file", file), zap.Error(err))
	}
}
