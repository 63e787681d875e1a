// Package storage defines the persistence boundary. Implementations satisfy
// these interfaces; callers keep a whole-record read/modify/write discipline
// so a single Put captures every field change.
package storage

import (
	"context"
	"errors"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/player"
	"github.com/thornvale/emberwood/internal/progression"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// PlayerStore persists player records keyed by user id.
type PlayerStore interface {
	GetPlayer(ctx context.Context, userID string) (player.Player, error)
	PutPlayer(ctx context.Context, p player.Player) error
}

// InventoryStore persists inventories keyed by user id.
type InventoryStore interface {
	GetInventory(ctx context.Context, userID string) (inventory.Inventory, error)
	PutInventory(ctx context.Context, inv inventory.Inventory) error
}

// GameLevelStore persists the single world-wide game level record.
type GameLevelStore interface {
	GetGameLevel(ctx context.Context) (progression.GameLevel, error)
	PutGameLevel(ctx context.Context, g progression.GameLevel) error
}

// Store bundles all persistence interfaces behind one handle.
type Store interface {
	PlayerStore
	InventoryStore
	GameLevelStore
	Close() error
}
