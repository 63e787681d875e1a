package app

import (
	"context"
	stderrors "errors"
	"math/rand"

	"github.com/thornvale/emberwood/internal/id"
	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/platform/errors"
	"github.com/thornvale/emberwood/internal/reward"
	"github.com/thornvale/emberwood/internal/storage"
)

// EnsureInventory returns the inventory for userID, creating an empty one on
// first contact.
func (s *Service) EnsureInventory(ctx context.Context, userID string) (inventory.Inventory, error) {
	inv, err := s.store.GetInventory(ctx, userID)
	if stderrors.Is(err, storage.ErrNotFound) {
		now := s.clock().UTC()
		inv = inventory.Inventory{UserID: userID, CreatedAt: now, LastModified: now}
		if err := s.store.PutInventory(ctx, inv); err != nil {
			return inventory.Inventory{}, err
		}
		return inv, nil
	}
	return inv, err
}

// GetInventory loads the inventory for userID.
func (s *Service) GetInventory(ctx context.Context, userID string) (inventory.Inventory, error) {
	inv, err := s.store.GetInventory(ctx, userID)
	if stderrors.Is(err, storage.ErrNotFound) {
		return inventory.Inventory{}, errors.WithMetadata(errors.CodeNoInventory,
			"player has no inventory",
			map[string]string{"UserID": userID})
	}
	return inv, err
}

// AwardGear stores a generated gear piece in the player's bag and returns
// the matching reward entry.
func (s *Service) AwardGear(ctx context.Context, userID string, g inventory.Gear) (reward.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "app.AwardGear")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	inv, err := s.EnsureInventory(ctx, userID)
	if err != nil {
		return reward.Entry{}, err
	}
	gearID, err := id.NewID()
	if err != nil {
		return reward.Entry{}, err
	}
	g.ID = gearID
	inv.AddGear(g)
	inv.LastModified = s.clock().UTC()
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return reward.Entry{}, err
	}
	return reward.NewEntry(reward.Kind{Icon: g.Icon, Name: g.Name}, 1, g.Name)
}

// AwardMaterial stores a material stack and returns the reward entry.
func (s *Service) AwardMaterial(ctx context.Context, userID string, m inventory.Material) (reward.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "app.AwardMaterial")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	inv, err := s.EnsureInventory(ctx, userID)
	if err != nil {
		return reward.Entry{}, err
	}
	materialID, err := id.NewID()
	if err != nil {
		return reward.Entry{}, err
	}
	m.ID = materialID
	inv.AddMaterial(m)
	inv.LastModified = s.clock().UTC()
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return reward.Entry{}, err
	}
	return reward.NewEntry(reward.Kind{Icon: m.Icon, Name: m.Name}, m.Quantity, m.Name)
}

// AwardItem stores an item stack and returns the reward entry.
func (s *Service) AwardItem(ctx context.Context, userID string, it inventory.Item) (reward.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "app.AwardItem")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	inv, err := s.EnsureInventory(ctx, userID)
	if err != nil {
		return reward.Entry{}, err
	}
	itemID, err := id.NewID()
	if err != nil {
		return reward.Entry{}, err
	}
	it.ID = itemID
	inv.AddItem(it)
	inv.LastModified = s.clock().UTC()
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return reward.Entry{}, err
	}
	return reward.NewEntry(reward.Kind{Icon: it.Icon, Name: it.Name}, it.Quantity, it.Name)
}

// EquipResult reports an equip operation: the piece now worn and the piece
// it displaced, if any.
type EquipResult struct {
	Equipped inventory.Gear
	Previous *inventory.Gear
}

// Equip moves the identified gear from the bag to its slot, swapping any
// currently worn piece back into the bag.
func (s *Service) Equip(ctx context.Context, userID, gearID string) (EquipResult, error) {
	ctx, span := s.tracer.Start(ctx, "app.Equip")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return EquipResult{}, err
	}
	inv, err := s.GetInventory(ctx, userID)
	if err != nil {
		return EquipResult{}, err
	}

	g, ok := inv.RemoveGear(gearID)
	if !ok {
		return EquipResult{}, errors.WithMetadata(errors.CodeGearNotFound,
			"gear not found in inventory",
			map[string]string{"UserID": userID, "GearID": gearID})
	}

	result := EquipResult{Equipped: g}
	if previous, worn := p.Equipped[g.Slot]; worn {
		inv.AddGear(previous)
		result.Previous = &previous
	}
	p.Equipped[g.Slot] = g

	now := s.clock().UTC()
	inv.LastModified = now
	p.LastActive = now
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return EquipResult{}, err
	}
	if err := s.store.PutPlayer(ctx, p); err != nil {
		return EquipResult{}, err
	}
	return result, nil
}

// Unequip moves the gear in the named slot back to the bag.
func (s *Service) Unequip(ctx context.Context, userID string, slot inventory.Slot) (inventory.Gear, error) {
	ctx, span := s.tracer.Start(ctx, "app.Unequip")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return inventory.Gear{}, err
	}
	g, ok := p.Equipped[slot]
	if !ok {
		return inventory.Gear{}, errors.WithMetadata(errors.CodeNoGearEquipped,
			"no gear equipped in slot",
			map[string]string{"UserID": userID, "Slot": string(slot)})
	}

	inv, err := s.EnsureInventory(ctx, userID)
	if err != nil {
		return inventory.Gear{}, err
	}
	delete(p.Equipped, slot)
	inv.AddGear(g)

	now := s.clock().UTC()
	inv.LastModified = now
	p.LastActive = now
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return inventory.Gear{}, err
	}
	if err := s.store.PutPlayer(ctx, p); err != nil {
		return inventory.Gear{}, err
	}
	return g, nil
}

// SalvageAll destroys every unequipped gear piece and returns how many were
// destroyed. Worn gear is untouched.
func (s *Service) SalvageAll(ctx context.Context, userID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "app.SalvageAll")
	defer span.End()

	unlock := s.lockPlayer(userID)
	defer unlock()

	inv, err := s.GetInventory(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := inv.SalvageAllGear()
	if n == 0 {
		return 0, nil
	}
	inv.LastModified = s.clock().UTC()
	if err := s.store.PutInventory(ctx, inv); err != nil {
		return 0, err
	}
	return n, nil
}

// GenerateGearFor rolls a gear piece scaled to the player's current level.
func (s *Service) GenerateGearFor(ctx context.Context, userID string, slot inventory.Slot) (inventory.Gear, error) {
	p, err := s.GetPlayer(ctx, userID)
	if err != nil {
		return inventory.Gear{}, err
	}
	var g inventory.Gear
	s.withRNG(func(rng *rand.Rand) {
		g = inventory.GenerateGear(rng, p.Level(), slot)
	})
	return g, nil
}

// RollGearSlot picks a random equipment slot.
func (s *Service) RollGearSlot() inventory.Slot {
	var slot inventory.Slot
	s.withRNG(func(rng *rand.Rand) {
		slot = inventory.RandomSlot(rng)
	})
	return slot
}

// RollMaterial rolls a random crafting material stack.
func (s *Service) RollMaterial() inventory.Material {
	var m inventory.Material
	s.withRNG(func(rng *rand.Rand) {
		m = inventory.GenerateMaterial(rng)
	})
	return m
}

// RollItem rolls a random quest item or consumable.
func (s *Service) RollItem() inventory.Item {
	var it inventory.Item
	s.withRNG(func(rng *rand.Rand) {
		it = inventory.GenerateItem(rng)
	})
	return it
}
