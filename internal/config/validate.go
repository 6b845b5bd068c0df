package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"

	"studyplan/internal/day"
)

// ValidationError reports one rejected configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

var weekdayNames = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// Resolve applies defaults to f and validates it into a Config.
// All problems are reported together.
func (f File) Resolve() (*Config, error) {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	cfg := &Config{}
	p := &cfg.Planner

	if f.DailyCapacityMin == nil {
		p.Capacity = DefaultCapacity
	} else {
		keys := make([]string, 0, len(f.DailyCapacityMin))
		for k := range f.DailyCapacityMin {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			idx, ok := weekdayIndex(k)
			if !ok {
				fail("daily_capacity_min", "unknown weekday key %q", k)
				continue
			}
			minutes := f.DailyCapacityMin[k]
			if minutes < 0 {
				fail("daily_capacity_min", "negative capacity %d for %q", minutes, k)
				continue
			}
			p.Capacity[idx] = minutes
		}
	}

	for _, raw := range f.Breaks {
		r, ok := day.ParseRange(raw)
		if !ok {
			fail("breaks", "invalid range %q (want YYYY-MM-DD..YYYY-MM-DD)", raw)
			continue
		}
		p.Breaks = append(p.Breaks, r)
	}

	p.LevelFactor = make(map[string]float64, len(f.LevelFactor))
	for level, factor := range f.LevelFactor {
		if factor < 0 {
			fail("level_factor", "negative factor for level %q", level)
			continue
		}
		p.LevelFactor[level] = factor
	}

	boostDays := f.ExamBoostDays
	if boostDays == nil {
		boostDays = DefaultExamBoostDays
	}
	if len(f.ExamBoostFactors) > len(boostDays) {
		fail("exam_boost_factors", "%d factors for %d boost days", len(f.ExamBoostFactors), len(boostDays))
	}
	for i, daysBefore := range boostDays {
		if daysBefore < 0 {
			fail("exam_boost_days", "negative offset %d", daysBefore)
			continue
		}
		factor := DefaultBoostFactor
		if i < len(f.ExamBoostFactors) {
			factor = f.ExamBoostFactors[i]
		}
		if factor <= 0 {
			fail("exam_boost_factors", "factor %v must be positive", factor)
			continue
		}
		p.ExamBoosts = append(p.ExamBoosts, ExamBoost{DaysBefore: daysBefore, Factor: factor})
	}

	p.MaxSlots = orDefault(f.MaxSlots, DefaultMaxSlots)
	p.SlotMin = orDefault(f.SlotMin, DefaultSlotMin)
	p.SlotMax = orDefault(f.SlotMax, DefaultSlotMax)
	if p.MaxSlots < 1 {
		fail("max_slots", "must be at least 1")
	}
	if p.SlotMin < 10 || p.SlotMin%10 != 0 {
		fail("slot_min", "must be a positive multiple of 10, got %d", p.SlotMin)
	}
	if p.SlotMax < p.SlotMin || p.SlotMax%10 != 0 {
		fail("slot_max", "must be a multiple of 10 and >= slot_min, got %d", p.SlotMax)
	}
	p.MinWeight = floatOr(f.MinWeight, DefaultMinWeight)
	if p.MinWeight < 0 {
		fail("min_weight", "must not be negative")
	}

	pw := f.PriorityWeights
	cfg.Priority = PriorityConfig{
		DueSoonWeight:   floatOr(pw.DueSoon, DefaultDueSoonWeight),
		EstimateWeight:  floatOr(pw.Estimate, DefaultEstimateWeight),
		DueSoonHours:    orDefault(pw.DueSoonHours, DefaultDueSoonHours),
		HighThreshold:   floatOr(pw.HighThreshold, DefaultHighThreshold),
		MediumThreshold: floatOr(pw.MediumThreshold, DefaultMediumThreshold),
	}
	if cfg.Priority.DueSoonHours <= 0 {
		fail("priority_weights.due_soon_hours", "must be positive")
	}
	if cfg.Priority.MediumThreshold > cfg.Priority.HighThreshold {
		fail("priority_weights.medium_threshold", "%v exceeds high_threshold %v", cfg.Priority.MediumThreshold, cfg.Priority.HighThreshold)
	}

	cfg.Review = ReviewConfig{
		InitialInterval: orDefault(f.Review.InitialInterval, DefaultInitialInterval),
		EaseModifier:    floatOr(f.Review.EaseModifier, DefaultEaseModifier),
	}
	if cfg.Review.InitialInterval < 1 {
		fail("review.initial_interval", "must be at least 1")
	}
	if cfg.Review.EaseModifier < MinEaseModifier {
		fail("review.ease_modifier", "must be at least %v", MinEaseModifier)
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(strOr(f.Log.Level, DefaultLogLevel)),
		Format: strings.ToLower(strOr(f.Log.Format, DefaultLogFormat)),
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		fail("log.level", "%v", err)
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		fail("log.format", "must be console or json, got %q", cfg.Log.Format)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// CapacityFor returns the capacity in minutes for the weekday index
// (Monday=0).
func (p PlannerConfig) CapacityFor(weekday int) int {
	if weekday < 0 || weekday >= len(p.Capacity) {
		return 0
	}
	return p.Capacity[weekday]
}

// Factor returns the level factor, 1.0 when the level is unknown.
func (p PlannerConfig) Factor(level string) float64 {
	if f, ok := p.LevelFactor[level]; ok {
		return f
	}
	return 1.0
}

func weekdayIndex(key string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if n, err := strconv.Atoi(k); err == nil {
		return n, n >= 0 && n <= 6
	}
	n, ok := weekdayNames[k]
	return n, ok
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func strOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
