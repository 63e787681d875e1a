package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/player"
	"github.com/thornvale/emberwood/internal/storage"
)

// GetPlayer loads the player record for userID.
func (s *Store) GetPlayer(ctx context.Context, userID string) (player.Player, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT user_id, display_name, xp, titles, equipped_gear, created_at, last_active
		FROM players WHERE user_id = ?`, userID)

	var (
		p          player.Player
		titlesJSON string
		gearJSON   string
		createdAt  int64
		lastActive int64
	)
	err := row.Scan(&p.UserID, &p.DisplayName, &p.XP, &titlesJSON, &gearJSON, &createdAt, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return player.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return player.Player{}, fmt.Errorf("scan player: %w", err)
	}

	if err := json.Unmarshal([]byte(titlesJSON), &p.Titles); err != nil {
		return player.Player{}, fmt.Errorf("decode titles: %w", err)
	}
	if err := json.Unmarshal([]byte(gearJSON), &p.Equipped); err != nil {
		return player.Player{}, fmt.Errorf("decode equipped gear: %w", err)
	}
	if p.Equipped == nil {
		p.Equipped = inventory.EquippedGear{}
	}
	p.CreatedAt = fromMillis(createdAt)
	p.LastActive = fromMillis(lastActive)
	return p, nil
}

// PutPlayer inserts or replaces the player record.
func (s *Store) PutPlayer(ctx context.Context, p player.Player) error {
	if p.UserID == "" {
		return fmt.Errorf("player user id is required")
	}
	titles := p.Titles
	if titles == nil {
		titles = []string{}
	}
	titlesJSON, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("encode titles: %w", err)
	}
	equipped := p.Equipped
	if equipped == nil {
		equipped = inventory.EquippedGear{}
	}
	gearJSON, err := json.Marshal(equipped)
	if err != nil {
		return fmt.Errorf("encode equipped gear: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO players (user_id, display_name, xp, titles, equipped_gear, created_at, last_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			xp = excluded.xp,
			titles = excluded.titles,
			equipped_gear = excluded.equipped_gear,
			last_active = excluded.last_active`,
		p.UserID, p.DisplayName, p.XP, string(titlesJSON), string(gearJSON),
		toMillis(p.CreatedAt), toMillis(p.LastActive))
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}
