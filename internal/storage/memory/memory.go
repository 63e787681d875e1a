// Package memory provides an in-memory storage implementation for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/player"
	"github.com/thornvale/emberwood/internal/progression"
	"github.com/thornvale/emberwood/internal/storage"
)

// Store keeps every record in process memory. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	players     map[string]player.Player
	inventories map[string]inventory.Inventory
	gameLevel   *progression.GameLevel
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		players:     make(map[string]player.Player),
		inventories: make(map[string]inventory.Inventory),
	}
}

func (s *Store) GetPlayer(ctx context.Context, userID string) (player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[userID]
	if !ok {
		return player.Player{}, storage.ErrNotFound
	}
	return clonePlayer(p), nil
}

func (s *Store) PutPlayer(ctx context.Context, p player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.UserID] = clonePlayer(p)
	return nil
}

func (s *Store) GetInventory(ctx context.Context, userID string) (inventory.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.inventories[userID]
	if !ok {
		return inventory.Inventory{}, storage.ErrNotFound
	}
	return cloneInventory(inv), nil
}

func (s *Store) PutInventory(ctx context.Context, inv inventory.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventories[inv.UserID] = cloneInventory(inv)
	return nil
}

func (s *Store) GetGameLevel(ctx context.Context) (progression.GameLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gameLevel == nil {
		return progression.GameLevel{}, storage.ErrNotFound
	}
	return *s.gameLevel, nil
}

func (s *Store) PutGameLevel(ctx context.Context, g progression.GameLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameLevel = &g
	return nil
}

func (s *Store) Close() error { return nil }

// clonePlayer deep-copies mutable fields so callers cannot alias stored
// state.
func clonePlayer(p player.Player) player.Player {
	out := p
	out.Titles = append([]string(nil), p.Titles...)
	out.Equipped = make(inventory.EquippedGear, len(p.Equipped))
	for slot, g := range p.Equipped {
		out.Equipped[slot] = cloneGear(g)
	}
	return out
}

func cloneInventory(inv inventory.Inventory) inventory.Inventory {
	out := inv
	out.Gear = make([]inventory.Gear, len(inv.Gear))
	for i, g := range inv.Gear {
		out.Gear[i] = cloneGear(g)
	}
	out.Materials = append([]inventory.Material(nil), inv.Materials...)
	out.Items = append([]inventory.Item(nil), inv.Items...)
	return out
}

func cloneGear(g inventory.Gear) inventory.Gear {
	out := g
	out.Stats = make(map[inventory.Stat]int, len(g.Stats))
	for stat, v := range g.Stats {
		out.Stats[stat] = v
	}
	return out
}
