// Package player defines the player record: identity, lifetime XP, earned
// titles, and equipped gear.
package player

import (
	"time"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/progression"
)

// Player is the persistent record for one user. Level is never stored; it
// is always derived from XP.
type Player struct {
	UserID      string
	DisplayName string
	XP          int
	Titles      []string
	Equipped    inventory.EquippedGear
	CreatedAt   time.Time
	LastActive  time.Time
}

// New returns a fresh player record created at now.
func New(userID, displayName string, now time.Time) Player {
	return Player{
		UserID:      userID,
		DisplayName: displayName,
		Titles:      []string{},
		Equipped:    inventory.EquippedGear{},
		CreatedAt:   now.UTC(),
		LastActive:  now.UTC(),
	}
}

// Level derives the player's level from lifetime XP.
func (p Player) Level() int {
	return progression.LevelFromXP(p.XP)
}

// HasTitle reports whether the player already holds the title.
func (p Player) HasTitle(title string) bool {
	for _, t := range p.Titles {
		if t == title {
			return true
		}
	}
	return false
}

// AwardTitle appends the title if not already held. It returns true only on
// first award, so callers can decide whether a reward entry is warranted.
func (p *Player) AwardTitle(title string) bool {
	if p.HasTitle(title) {
		return false
	}
	p.Titles = append(p.Titles, title)
	return true
}
