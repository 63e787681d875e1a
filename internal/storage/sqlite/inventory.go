package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/storage"
)

// GetInventory loads the inventory for userID.
func (s *Store) GetInventory(ctx context.Context, userID string) (inventory.Inventory, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT user_id, gear, materials, items, created_at, last_modified
		FROM inventories WHERE user_id = ?`, userID)

	var (
		inv           inventory.Inventory
		gearJSON      string
		materialsJSON string
		itemsJSON     string
		createdAt     int64
		lastModified  int64
	)
	err := row.Scan(&inv.UserID, &gearJSON, &materialsJSON, &itemsJSON, &createdAt, &lastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.Inventory{}, storage.ErrNotFound
	}
	if err != nil {
		return inventory.Inventory{}, fmt.Errorf("scan inventory: %w", err)
	}

	if err := json.Unmarshal([]byte(gearJSON), &inv.Gear); err != nil {
		return inventory.Inventory{}, fmt.Errorf("decode gear: %w", err)
	}
	if err := json.Unmarshal([]byte(materialsJSON), &inv.Materials); err != nil {
		return inventory.Inventory{}, fmt.Errorf("decode materials: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &inv.Items); err != nil {
		return inventory.Inventory{}, fmt.Errorf("decode items: %w", err)
	}
	inv.CreatedAt = fromMillis(createdAt)
	inv.LastModified = fromMillis(lastModified)
	return inv, nil
}

// PutInventory inserts or replaces the inventory record.
func (s *Store) PutInventory(ctx context.Context, inv inventory.Inventory) error {
	if inv.UserID == "" {
		return fmt.Errorf("inventory user id is required")
	}
	gearJSON, err := json.Marshal(emptySlice(inv.Gear))
	if err != nil {
		return fmt.Errorf("encode gear: %w", err)
	}
	materialsJSON, err := json.Marshal(emptySlice(inv.Materials))
	if err != nil {
		return fmt.Errorf("encode materials: %w", err)
	}
	itemsJSON, err := json.Marshal(emptySlice(inv.Items))
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO inventories (user_id, gear, materials, items, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			gear = excluded.gear,
			materials = excluded.materials,
			items = excluded.items,
			last_modified = excluded.last_modified`,
		inv.UserID, string(gearJSON), string(materialsJSON), string(itemsJSON),
		toMillis(inv.CreatedAt), toMillis(inv.LastModified))
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// emptySlice keeps nil slices encoding as [] instead of null.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
