// Package config loads and validates the planner configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix marks environment overrides. A double underscore nests:
	// STUDYPLAN_PRIORITY_WEIGHTS__HIGH_THRESHOLD -> priority_weights.high_threshold
	EnvPrefix = "STUDYPLAN_"
)

// Load reads the config file at path, applies STUDYPLAN_* environment
// overrides, fills defaults and validates the result.
//
// A missing file is not an error: defaults plus environment are used.
// Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readLimited(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), parserFor(path)); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return f.Resolve()
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := File{}.Resolve()
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults invalid: %v", err))
	}
	return cfg
}

// DefaultFile returns the defaults in on-disk shape, used to seed config.json.
func DefaultFile() File {
	capacity := make(map[string]int, len(DefaultCapacity))
	for i, minutes := range DefaultCapacity {
		capacity[fmt.Sprint(i)] = minutes
	}
	factors := make([]float64, len(DefaultExamBoostDays))
	for i := range factors {
		factors[i] = DefaultBoostFactor
	}
	return File{
		DailyCapacityMin: capacity,
		Breaks:           []string{},
		LevelFactor:      map[string]float64{"A": 0.8, "B": 1.0, "C": 1.3},
		ExamBoostDays:    append([]int(nil), DefaultExamBoostDays...),
		ExamBoostFactors: factors,
		MaxSlots:         DefaultMaxSlots,
		SlotMin:          DefaultSlotMin,
		SlotMax:          DefaultSlotMax,
		MinWeight:        float(DefaultMinWeight),
		PriorityWeights: PriorityFile{
			DueSoon:         float(DefaultDueSoonWeight),
			Estimate:        float(DefaultEstimateWeight),
			DueSoonHours:    DefaultDueSoonHours,
			HighThreshold:   float(DefaultHighThreshold),
			MediumThreshold: float(DefaultMediumThreshold),
		},
		Review: ReviewFile{
			InitialInterval: DefaultInitialInterval,
			EaseModifier:    float(DefaultEaseModifier),
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func float(v float64) *float64 { return &v }
