package app

import (
	"context"
	stderrors "errors"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/platform/errors"
	"github.com/thornvale/emberwood/internal/player"
	"github.com/thornvale/emberwood/internal/progression"
	"github.com/thornvale/emberwood/internal/storage"
)

// EnsurePlayer returns the player record for userID, creating it on first
// contact. Existing players get their display name refreshed and last-active
// timestamp touched. Idempotent.
func (s *Service) EnsurePlayer(ctx context.Context, userID, displayName string) (player.Player, error) {
	ctx, span := s.tracer.Start(ctx, "app.EnsurePlayer")
	defer span.End()

	if userID == "" {
		return player.Player{}, errors.New(errors.CodePlayerEmptyUserID, "user id must not be empty")
	}

	unlock := s.lockPlayer(userID)
	defer unlock()

	now := s.clock().UTC()
	p, err := s.store.GetPlayer(ctx, userID)
	if stderrors.Is(err, storage.ErrNotFound) {
		p = player.New(userID, displayName, now)
		if err := s.store.PutPlayer(ctx, p); err != nil {
			return player.Player{}, err
		}
		return p, nil
	}
	if err != nil {
		return player.Player{}, err
	}

	if displayName != "" {
		p.DisplayName = displayName
	}
	p.LastActive = now
	if err := s.store.PutPlayer(ctx, p); err != nil {
		return player.Player{}, err
	}
	return p, nil
}

// GetPlayer loads the player record for userID.
func (s *Service) GetPlayer(ctx context.Context, userID string) (player.Player, error) {
	p, err := s.store.GetPlayer(ctx, userID)
	if stderrors.Is(err, storage.ErrNotFound) {
		return player.Player{}, errors.WithMetadata(errors.CodePlayerNotFound,
			"player not found",
			map[string]string{"UserID": userID})
	}
	return p, err
}

// AwardXP credits amount XP to the player after applying the catch-up or
// prestige multiplier for the current game level. Every XP grant in the
// system goes through here.
func (s *Service) AwardXP(ctx context.Context, userID string, amount int) (progression.AwardReport, error) {
	ctx, span := s.tracer.Start(ctx, "app.AwardXP")
	defer span.End()

	if amount <= 0 {
		return progression.AwardReport{}, errors.New(errors.CodeXPAmountInvalid,
			"xp amount must be positive")
	}

	unlock := s.lockPlayer(userID)
	defer unlock()

	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return progression.AwardReport{}, err
	}
	gameLevel, err := s.GameLevel(ctx)
	if err != nil {
		return progression.AwardReport{}, err
	}

	report := progression.ApplyAward(p.XP, amount, gameLevel)
	p.XP = report.NewTotalXP
	p.LastActive = s.clock().UTC()
	if err := s.store.PutPlayer(ctx, p); err != nil {
		return progression.AwardReport{}, err
	}
	return report, nil
}

// AwardTitle grants the title to the player. Returns true only on first
// award; repeats are a silent no-op so encounters can be replayed.
func (s *Service) AwardTitle(ctx context.Context, userID, title string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "app.AwardTitle")
	defer span.End()

	if title == "" {
		return false, errors.New(errors.CodePlayerTitleEmpty, "title must not be empty")
	}

	unlock := s.lockPlayer(userID)
	defer unlock()

	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return false, err
	}
	if !p.AwardTitle(title) {
		return false, nil
	}
	p.LastActive = s.clock().UTC()
	if err := s.store.PutPlayer(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// Profile is the read-side projection of a player: derived level, progress
// into the current level, multiplier, and combat stats.
type Profile struct {
	UserID       string
	DisplayName  string
	Level        int
	XP           int
	XPIntoLevel  int
	XPForNext    int
	GameLevel    int
	Multiplier   float64
	CombatRating int
	Titles       []string
	Equipped     inventory.EquippedGear
	Stats        map[inventory.Stat]int
}

// GetProfile assembles the profile projection for userID.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetProfile")
	defer span.End()

	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	gameLevel, err := s.GameLevel(ctx)
	if err != nil {
		return Profile{}, err
	}

	level := p.Level()
	return Profile{
		UserID:       p.UserID,
		DisplayName:  p.DisplayName,
		Level:        level,
		XP:           p.XP,
		XPIntoLevel:  p.XP - progression.TotalXPForLevel(level),
		XPForNext:    progression.XPRequiredForLevel(level + 1),
		GameLevel:    gameLevel,
		Multiplier:   progression.Multiplier(level, gameLevel),
		CombatRating: p.Equipped.CombatRating(gameLevel),
		Titles:       p.Titles,
		Equipped:     p.Equipped,
		Stats:        p.Equipped.TotalStats(),
	}, nil
}
