// Package inventory holds gear, materials, and quest items, plus the
// six-slot equipment model and combat rating math.
package inventory

import (
	"time"

	"github.com/thornvale/emberwood/internal/platform/errors"
)

// Slot names one of the six equipment positions.
type Slot string

const (
	SlotHelm     Slot = "helm"
	SlotChest    Slot = "chest"
	SlotGloves   Slot = "gloves"
	SlotLegs     Slot = "legs"
	SlotMainHand Slot = "mainHand"
	SlotOffhand  Slot = "offhand"
)

// Slots returns every equipment slot in display order.
func Slots() []Slot {
	return []Slot{SlotHelm, SlotChest, SlotGloves, SlotLegs, SlotMainHand, SlotOffhand}
}

// ParseSlot validates a slot name from external input.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots() {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", errors.WithMetadata(errors.CodeGearSlotInvalid,
		"unknown equipment slot",
		map[string]string{"Slot": s})
}

// Rarity grades gear quality.
type Rarity string

const (
	RarityCommon Rarity = "Common"
	RarityMagic  Rarity = "Magic"
	RarityRare   Rarity = "Rare"
)

// Stat names a gear attribute.
type Stat string

const (
	StatMight   Stat = "Might"
	StatFocus   Stat = "Focus"
	StatSage    Stat = "Sage"
	StatArmor   Stat = "Armor"
	StatEvasion Stat = "Evasion"
	StatAegis   Stat = "Aegis"
)

// Stats returns every gear stat in display order.
func Stats() []Stat {
	return []Stat{StatMight, StatFocus, StatSage, StatArmor, StatEvasion, StatAegis}
}

// Gear is a single piece of equipment. CombatRating is fixed at generation
// time and contributes to the player's overall rating while equipped.
type Gear struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Icon         string       `json:"icon"`
	Slot         Slot         `json:"slot"`
	ItemLevel    int          `json:"itemLevel"`
	CombatRating int          `json:"combatRating"`
	Rarity       Rarity       `json:"rarity"`
	Stats        map[Stat]int `json:"stats"`
}

// Material is a stackable crafting resource.
type Material struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Item is a stackable consumable or quest object.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// EquippedGear maps slots to worn gear. Missing slots are empty.
type EquippedGear map[Slot]Gear

// TotalStats sums each stat across every equipped piece.
func (e EquippedGear) TotalStats() map[Stat]int {
	totals := make(map[Stat]int)
	for _, g := range e {
		for stat, value := range g.Stats {
			totals[stat] += value
		}
	}
	return totals
}

// CombatRating averages the equipped gear ratings across all six slots,
// substituting the current game level for each empty slot so an unequipped
// player still has a meaningful rating.
func (e EquippedGear) CombatRating(gameLevel int) int {
	total := 0
	for _, slot := range Slots() {
		if g, ok := e[slot]; ok {
			total += g.CombatRating
		} else {
			total += gameLevel
		}
	}
	return total / len(Slots())
}

// Inventory is a player's bag: unequipped gear plus stackable materials and
// items.
type Inventory struct {
	UserID       string
	Gear         []Gear
	Materials    []Material
	Items        []Item
	CreatedAt    time.Time
	LastModified time.Time
}

// AddGear appends a gear piece. Gear never stacks.
func (inv *Inventory) AddGear(g Gear) {
	inv.Gear = append(inv.Gear, g)
}

// RemoveGear removes and returns the gear with the given id.
func (inv *Inventory) RemoveGear(id string) (Gear, bool) {
	for i, g := range inv.Gear {
		if g.ID == id {
			inv.Gear = append(inv.Gear[:i], inv.Gear[i+1:]...)
			return g, true
		}
	}
	return Gear{}, false
}

// FindGear returns the gear with the given id without removing it.
func (inv *Inventory) FindGear(id string) (Gear, bool) {
	for _, g := range inv.Gear {
		if g.ID == id {
			return g, true
		}
	}
	return Gear{}, false
}

// AddMaterial merges the material into an existing stack matching on name
// and type, or appends a new stack.
func (inv *Inventory) AddMaterial(m Material) {
	for i := range inv.Materials {
		if inv.Materials[i].Name == m.Name && inv.Materials[i].Type == m.Type {
			inv.Materials[i].Quantity += m.Quantity
			return
		}
	}
	inv.Materials = append(inv.Materials, m)
}

// AddItem merges the item into an existing stack matching on name and
// category, or appends a new stack.
func (inv *Inventory) AddItem(it Item) {
	for i := range inv.Items {
		if inv.Items[i].Name == it.Name && inv.Items[i].Category == it.Category {
			inv.Items[i].Quantity += it.Quantity
			return
		}
	}
	inv.Items = append(inv.Items, it)
}

// SalvageAllGear clears every unequipped gear piece and returns how many
// were destroyed. Equipped gear is untouched; it lives on the player, not
// in the bag.
func (inv *Inventory) SalvageAllGear() int {
	n := len(inv.Gear)
	inv.Gear = nil
	return n
}
