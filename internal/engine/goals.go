package engine

// FallbackGoal is used for subjects without any goal list.
const FallbackGoal = "Practice 20–30m"

var curatedGoals = map[string][]string{
	"en":  {"Reading 250w + 4Q", "Passive voice drill 12x", "100-word email (clean)", "Listening 10m + notes"},
	"de":  {"Summary 120w", "Essay building blocks", "Comma rules drill", "Interpret a short story"},
	"ma":  {"Percentages drill 10x", "Linear functions 6x", "Mixed problems 15m", "Statistics: mean/median"},
	"wpf": {"Material properties", "Sketch a circuit diagram", "Project planning 20m", "Technical drawing basics"},
	"bio": {"Cell + labels", "DNA, gene, chromosome", "Mendel worked example", "Food web with 6 arrows"},
	"ch":  {"Particle model", "Balance equations 5x", "Acids/bases and pH", "Everyday chemistry analysis"},
	"ph":  {"Ohm's law 8x", "Density/pressure 8x", "Work/power 8x", "Optics key terms"},
	"gk":  {"Basic rights + examples", "Separation of powers", "Elections in brief", "EU institutions"},
	"geo": {"Map scale conversions", "Economic sectors + examples", "Read a climate chart", "Map reading practice"},
	"ges": {"Timeline 1850–1950", "Weimar to dictatorship in 12 steps", "Explain key terms", "Types of sources"},
	"bk":  {"One-point perspective", "Two-point perspective", "Color contrasts", "Short artwork analysis"},
	"mu":  {"Listen & name", "Count rhythms", "Interval basics", "Musical form in brief"},
	"wbs": {"Budget & contracts", "Social insurance", "Application essentials", "Circular flow of income"},
	"eth": {"Dilemma & reasoning", "Compare theories", "Build an argument chain", "Short case analysis"},
	"sp":  {"Rules of the game", "Training principles", "Nutrition & recovery", "Heart rate zones"},
}

// goalFor picks the goal for a slot. A subject's own goals win over the
// curated list; the pick rotates with seed.
func goalFor(sub Subject, seed int) string {
	goals := sub.Goals
	if len(goals) == 0 {
		goals = curatedGoals[sub.ID]
	}
	if len(goals) == 0 {
		return FallbackGoal
	}
	i := seed % len(goals)
	if i < 0 {
		i += len(goals)
	}
	return goals[i]
}
