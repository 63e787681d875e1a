// Package progression implements the experience curve, level derivation,
// and the catch-up/prestige multiplier.
//
// Levels are never stored: a player's level is always derived from total XP
// via LevelFromXP, so every consumer observes the same progression state.
package progression

import "math"

const (
	baseLevelCost  = 100
	levelCostCurve = 1.15

	// MinMultiplier is the prestige floor applied to players ahead of the game level.
	MinMultiplier = 0.5
	// MaxMultiplier is the catch-up cap applied to players behind the game level.
	MaxMultiplier = 3.0

	catchUpBonusPerLevel    = 0.10
	prestigePenaltyPerLevel = 0.05
)

// XPRequiredForLevel returns the XP needed to advance from level-1 to level.
// Level 1 is free; the cost grows exponentially from there.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(baseLevelCost * math.Pow(levelCostCurve, float64(level-2))))
}

// TotalXPForLevel returns the cumulative XP required to reach level.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 2; i <= level; i++ {
		total += XPRequiredForLevel(i)
	}
	return total
}

// LevelFromXP returns the highest level whose cumulative requirement does
// not exceed totalXP. It is the exact inverse of TotalXPForLevel at integer
// boundaries.
func LevelFromXP(totalXP int) int {
	level := 1
	cumulative := 0
	for {
		needed := XPRequiredForLevel(level + 1)
		if cumulative+needed > totalXP {
			return level
		}
		cumulative += needed
		level++
	}
}

// Multiplier returns the XP multiplier for a player at playerLevel while the
// world sits at gameLevel.
//
// Players behind the game level earn a catch-up bonus of 10% per level
// behind, capped at MaxMultiplier. Players ahead pay a prestige penalty of 5%
// per level ahead, floored at MinMultiplier. At parity the multiplier is 1.
func Multiplier(playerLevel, gameLevel int) float64 {
	switch {
	case playerLevel < gameLevel:
		bonus := 1.0 + float64(gameLevel-playerLevel)*catchUpBonusPerLevel
		return math.Min(MaxMultiplier, bonus)
	case playerLevel > gameLevel:
		penalty := 1.0 - float64(playerLevel-gameLevel)*prestigePenaltyPerLevel
		return math.Max(MinMultiplier, penalty)
	default:
		return 1.0
	}
}

// AwardReport describes the outcome of applying an XP award.
type AwardReport struct {
	// XPAwarded is the actual amount credited after the multiplier.
	XPAwarded int
	// Multiplier is the catch-up/prestige multiplier that was applied.
	Multiplier float64
	// NewTotalXP is the player's total XP after the award.
	NewTotalXP int
	// NewLevel is the level derived from NewTotalXP.
	NewLevel int
	// LevelUp reports whether the award crossed a level boundary.
	LevelUp bool
}

// ApplyAward computes the effect of awarding rawAmount XP to a player whose
// current total is currentXP while the world sits at gameLevel. It is the
// single place multiplier math happens; all award paths funnel through it.
func ApplyAward(currentXP, rawAmount, gameLevel int) AwardReport {
	oldLevel := LevelFromXP(currentXP)
	multiplier := Multiplier(oldLevel, gameLevel)
	actual := int(math.Floor(float64(rawAmount) * multiplier))
	newTotal := currentXP + actual
	newLevel := LevelFromXP(newTotal)
	return AwardReport{
		XPAwarded:  actual,
		Multiplier: multiplier,
		NewTotalXP: newTotal,
		NewLevel:   newLevel,
		LevelUp:    newLevel > oldLevel,
	}
}
