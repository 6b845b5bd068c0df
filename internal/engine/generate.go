package engine

import (
	"fmt"
	"sort"
	"time"

	"studyplan/internal/config"
	"studyplan/internal/day"
)

type rankedSubject struct {
	subject Subject
	weight  float64
}

// GenerateDay builds the study plan for date. The result is empty for an
// invalid date, a break day, a day without capacity, or when no subject
// reaches the minimum weight.
func (s *Service) GenerateDay(date time.Time) []Task {
	if !day.Valid(date) {
		return nil
	}
	date = day.Of(date)
	p := s.cfg.Planner

	capacity := p.CapacityFor(day.WeekdayIndex(date))
	if capacity <= 0 {
		return nil
	}
	for _, br := range p.Breaks {
		if br.Contains(date) {
			return nil
		}
	}

	ranked := s.rank(date)
	today := s.Today()
	seed := day.JulianDay(date)

	var tasks []Task
	remaining := capacity
	placed := 0
	for _, r := range ranked {
		if remaining < p.SlotMin || placed >= p.MaxSlots {
			break
		}
		if r.weight < p.MinWeight {
			continue
		}

		t := Task{
			ID:              taskID(date, r.subject.ID, placed),
			SubjectID:       r.subject.ID,
			Title:           r.subject.Name,
			Goal:            goalFor(r.subject, seed+placed),
			DurationMinutes: slotSize(remaining, p.MaxSlots-placed, p),
			Date:            date,
			Done:            s.IsDone(date, placed),
			Color:           r.subject.Color,
			PlanIndex:       placed,
		}
		t.Priority = s.scorer.TaskPriority(t, today)

		tasks = append(tasks, t)
		remaining -= t.DurationMinutes
		placed++
	}
	return tasks
}

// GenerateRange returns one plan per day from start to end inclusive.
func (s *Service) GenerateRange(start, end time.Time) [][]Task {
	if !day.Valid(start) || !day.Valid(end) {
		return nil
	}
	start, end = day.Of(start), day.Of(end)
	if end.Before(start) {
		return nil
	}
	out := make([][]Task, 0, day.DaysTo(start, end)+1)
	for d := start; !d.After(end); d = day.Add(d, 1) {
		out = append(out, s.GenerateDay(d))
	}
	return out
}

// rank returns subjects by effective weight, heaviest first. Ties keep
// registry order.
func (s *Service) rank(date time.Time) []rankedSubject {
	ranked := make([]rankedSubject, 0, len(s.subjects))
	index := make(map[string]int, len(s.subjects))
	for _, sub := range s.subjects {
		index[sub.ID] = len(ranked)
		ranked = append(ranked, rankedSubject{
			subject: sub,
			weight:  sub.Weight * s.LevelFactor(sub.ID),
		})
	}

	for _, exam := range s.exams {
		i, ok := index[exam.SubjectID]
		if !ok {
			continue
		}
		diff := day.DaysTo(date, exam.Date)
		for _, boost := range s.cfg.Planner.ExamBoosts {
			if diff == boost.DaysBefore {
				ranked[i].weight *= boost.Factor
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].weight > ranked[j].weight
	})
	return ranked
}

// slotSize splits the remaining minutes evenly over the slots left,
// rounded to 10 and clamped to [SlotMin, SlotMax]. It never exceeds the
// remaining capacity.
func slotSize(remaining, slotsLeft int, p config.PlannerConfig) int {
	size := ((remaining/slotsLeft + 5) / 10) * 10
	if size < p.SlotMin {
		size = p.SlotMin
	}
	if size > p.SlotMax {
		size = p.SlotMax
	}
	if limit := (remaining / 10) * 10; size > limit {
		size = limit
	}
	return size
}

func taskID(date time.Time, subjectID string, index int) string {
	return fmt.Sprintf("%s:%s:%d", day.Format(date), subjectID, index)
}
