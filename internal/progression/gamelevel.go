package progression

import "time"

// GameLevel is the world-wide progression target players are measured
// against. It rises on a fixed cadence regardless of player activity.
type GameLevel struct {
	Level        int
	LastIncrease time.Time
	NextIncrease time.Time
}

// Schedule describes how the game level advances over time.
type Schedule struct {
	// InitialLevel is the level the world starts at.
	InitialLevel int
	// Step is how much the level rises per interval.
	Step int
	// Interval is the time between increases.
	Interval time.Duration
}

// DefaultSchedule starts the world at level 10 and raises it by 10 every two
// weeks.
var DefaultSchedule = Schedule{
	InitialLevel: 10,
	Step:         10,
	Interval:     14 * 24 * time.Hour,
}

// Initial returns the game level state for a world created at now.
func (s Schedule) Initial(now time.Time) GameLevel {
	now = now.UTC()
	return GameLevel{
		Level:        s.InitialLevel,
		LastIncrease: now,
		NextIncrease: now.Add(s.Interval),
	}
}

// Advance applies every increase due by now. State is created lazily, so a
// long-idle world catches up across multiple intervals in one call. Returns
// the input unchanged when no increase is due.
func (s Schedule) Advance(g GameLevel, now time.Time) GameLevel {
	now = now.UTC()
	for !now.Before(g.NextIncrease) {
		g.Level += s.Step
		g.LastIncrease = g.NextIncrease
		g.NextIncrease = g.NextIncrease.Add(s.Interval)
	}
	return g
}
