package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyplan/internal/engine"
)

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(engine.PriorityHigh), "HIGH")
	assert.Contains(t, PriorityBadge(engine.PriorityMedium), "MED")
	assert.Contains(t, PriorityBadge(engine.PriorityLow), "LOW")
}

func TestDaysLeft(t *testing.T) {
	assert.Contains(t, DaysLeft(0), "today")
	assert.Contains(t, DaysLeft(1), "tomorrow")
	assert.Contains(t, DaysLeft(5), "in 5d")
	assert.Contains(t, DaysLeft(-2), "2d ago")
}

func TestHeadingAndLabel(t *testing.T) {
	assert.Contains(t, Heading(IconPlan, "Plan"), "Plan")
	assert.Contains(t, LabelValue("Capacity", 90), "90")
	assert.Contains(t, Swatch(""), "■")
	assert.Equal(t, IconDone, Check(true))
}
