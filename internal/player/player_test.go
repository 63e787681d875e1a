package player

import (
	"testing"
	"time"

	"github.com/thornvale/emberwood/internal/progression"
)

func TestNew(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := New("user-1", "Rowan", now)

	if p.UserID != "user-1" || p.DisplayName != "Rowan" {
		t.Errorf("identity = (%s, %s)", p.UserID, p.DisplayName)
	}
	if p.XP != 0 || p.Level() != 1 {
		t.Errorf("fresh player xp/level = %d/%d, want 0/1", p.XP, p.Level())
	}
	if len(p.Titles) != 0 || len(p.Equipped) != 0 {
		t.Error("fresh player should carry no titles or gear")
	}
	if !p.CreatedAt.Equal(now) || !p.LastActive.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", p.CreatedAt, p.LastActive, now)
	}
}

func TestLevelDerivedFromXP(t *testing.T) {
	p := New("user-1", "Rowan", time.Now())
	p.XP = progression.TotalXPForLevel(7)
	if got := p.Level(); got != 7 {
		t.Errorf("Level() = %d, want 7", got)
	}
}

func TestAwardTitle(t *testing.T) {
	p := New("user-1", "Rowan", time.Now())

	if !p.AwardTitle("Jokester") {
		t.Error("first award should return true")
	}
	if p.AwardTitle("Jokester") {
		t.Error("repeat award should return false")
	}
	if !p.AwardTitle("Riddle Solver") {
		t.Error("distinct title should return true")
	}
	if len(p.Titles) != 2 {
		t.Errorf("titles = %v, want exactly two entries", p.Titles)
	}
	if !p.HasTitle("Jokester") || p.HasTitle("Gossip") {
		t.Error("HasTitle mismatch")
	}
}
