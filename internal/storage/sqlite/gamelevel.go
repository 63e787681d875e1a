package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thornvale/emberwood/internal/progression"
	"github.com/thornvale/emberwood/internal/storage"
)

// GetGameLevel loads the singleton game level row.
func (s *Store) GetGameLevel(ctx context.Context) (progression.GameLevel, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT level, last_increase, next_increase FROM game_level WHERE id = 1`)

	var (
		g            progression.GameLevel
		lastIncrease int64
		nextIncrease int64
	)
	err := row.Scan(&g.Level, &lastIncrease, &nextIncrease)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.GameLevel{}, storage.ErrNotFound
	}
	if err != nil {
		return progression.GameLevel{}, fmt.Errorf("scan game level: %w", err)
	}
	g.LastIncrease = fromMillis(lastIncrease)
	g.NextIncrease = fromMillis(nextIncrease)
	return g, nil
}

// PutGameLevel inserts or replaces the singleton game level row.
func (s *Store) PutGameLevel(ctx context.Context, g progression.GameLevel) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO game_level (id, level, last_increase, next_increase)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			level = excluded.level,
			last_increase = excluded.last_increase,
			next_increase = excluded.next_increase`,
		g.Level, toMillis(g.LastIncrease), toMillis(g.NextIncrease))
	if err != nil {
		return fmt.Errorf("upsert game level: %w", err)
	}
	return nil
}
