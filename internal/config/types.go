package config

import "studyplan/internal/day"

// File mirrors config.json. Pointer fields distinguish "absent" from an
// explicit zero.
type File struct {
	DailyCapacityMin map[string]int     `koanf:"daily_capacity_min" json:"daily_capacity_min"`
	Breaks           []string           `koanf:"breaks" json:"breaks"`
	LevelFactor      map[string]float64 `koanf:"level_factor" json:"level_factor"`
	ExamBoostDays    []int              `koanf:"exam_boost_days" json:"exam_boost_days"`
	ExamBoostFactors []float64          `koanf:"exam_boost_factors" json:"exam_boost_factors"`
	MaxSlots         int                `koanf:"max_slots" json:"max_slots"`
	SlotMin          int                `koanf:"slot_min" json:"slot_min"`
	SlotMax          int                `koanf:"slot_max" json:"slot_max"`
	MinWeight        *float64           `koanf:"min_weight" json:"min_weight"`
	PriorityWeights  PriorityFile       `koanf:"priority_weights" json:"priority_weights"`
	Review           ReviewFile         `koanf:"review" json:"review"`
	Log              LogConfig          `koanf:"log" json:"log"`
}

// PriorityFile holds the weighted-scorer knobs as they appear on disk.
type PriorityFile struct {
	DueSoon         *float64 `koanf:"due_soon" json:"due_soon"`
	Estimate        *float64 `koanf:"estimate" json:"estimate"`
	DueSoonHours    int      `koanf:"due_soon_hours" json:"due_soon_hours"`
	HighThreshold   *float64 `koanf:"high_threshold" json:"high_threshold"`
	MediumThreshold *float64 `koanf:"medium_threshold" json:"medium_threshold"`
}

// ReviewFile holds the SM-2 tunables as they appear on disk.
type ReviewFile struct {
	InitialInterval int      `koanf:"initial_interval" json:"initial_interval"`
	EaseModifier    *float64 `koanf:"ease_modifier" json:"ease_modifier"`
}

// LogConfig controls the zap logger built by internal/logging.
type LogConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
}

// Config is the validated, fully defaulted configuration.
type Config struct {
	Planner  PlannerConfig
	Priority PriorityConfig
	Review   ReviewConfig
	Log      LogConfig
}

// PlannerConfig drives day plan generation.
type PlannerConfig struct {
	// Capacity is indexed Monday=0 .. Sunday=6, in minutes.
	Capacity    [7]int
	Breaks      []day.Range
	LevelFactor map[string]float64
	ExamBoosts  []ExamBoost
	MaxSlots    int
	SlotMin     int
	SlotMax     int
	MinWeight   float64
}

// ExamBoost multiplies a subject's weight when an exam is exactly
// DaysBefore days away.
type ExamBoost struct {
	DaysBefore int
	Factor     float64
}

// PriorityConfig drives the weighted priority scorer.
type PriorityConfig struct {
	DueSoonWeight   float64
	EstimateWeight  float64
	DueSoonHours    int
	HighThreshold   float64
	MediumThreshold float64
}

// ReviewConfig holds SM-2 tunables.
type ReviewConfig struct {
	InitialInterval int
	EaseModifier    float64
}

const (
	DefaultMaxSlots        = 3
	DefaultSlotMin         = 20
	DefaultSlotMax         = 40
	DefaultMinWeight       = 0.5
	DefaultBoostFactor     = 1.15
	DefaultDueSoonWeight   = 2.0
	DefaultEstimateWeight  = 1.0
	DefaultDueSoonHours    = 48
	DefaultHighThreshold   = 1.5
	DefaultMediumThreshold = 0.5
	DefaultInitialInterval = 1
	DefaultEaseModifier    = 1.0
	MinEaseModifier        = 0.1
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "console"
)

// DefaultCapacity is used when the capacity table is absent altogether.
var DefaultCapacity = [7]int{90, 90, 90, 90, 60, 120, 0}

// DefaultExamBoostDays are the offsets that receive a boost by default.
var DefaultExamBoostDays = []int{1, 3, 7}
