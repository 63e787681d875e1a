package inventory

import "math/rand"

var gearNames = map[Slot][]string{
	SlotHelm:     {"Iron Helm", "Steel Helmet", "Warrior's Crown"},
	SlotChest:    {"Leather Armor", "Chain Mail", "Plate Chestpiece"},
	SlotGloves:   {"Leather Gloves", "Iron Gauntlets", "Mystic Handwraps"},
	SlotLegs:     {"Cloth Pants", "Chain Leggings", "Battle Greaves"},
	SlotMainHand: {"Iron Sword", "Steel Blade", "Mystic Staff"},
	SlotOffhand:  {"Wooden Shield", "Iron Shield", "Spell Focus"},
}

var gearIcons = map[Slot]string{
	SlotHelm:     "⛑️",
	SlotChest:    "🦺",
	SlotGloves:   "🧤",
	SlotLegs:     "👖",
	SlotMainHand: "⚔️",
	SlotOffhand:  "🛡️",
}

// statCount returns how many stats a rarity grade rolls.
func statCount(r Rarity) int {
	switch r {
	case RarityMagic:
		return 2
	case RarityRare:
		return 3
	default:
		return 1
	}
}

// GenerateGear rolls a level-scaled gear piece for the slot. Item level and
// combat rating both equal playerLevel; stats scale from half the level with
// a ±25% variation. The caller assigns the ID when the piece is stored.
func GenerateGear(rng *rand.Rand, playerLevel int, slot Slot) Gear {
	rarities := []Rarity{RarityCommon, RarityMagic, RarityRare}
	rarity := rarities[rng.Intn(len(rarities))]

	base := playerLevel / 2
	variation := base / 4

	stats := make(map[Stat]int)
	pool := Stats()
	for i := 0; i < statCount(rarity); i++ {
		pick := rng.Intn(len(pool))
		stat := pool[pick]
		pool = append(pool[:pick], pool[pick+1:]...)
		value := base
		if variation > 0 {
			value += rng.Intn(variation*2) - variation
		}
		if value < 1 {
			value = 1
		}
		stats[stat] = value
	}

	names := gearNames[slot]
	return Gear{
		Name:         names[rng.Intn(len(names))],
		Icon:         gearIcons[slot],
		Slot:         slot,
		ItemLevel:    playerLevel,
		CombatRating: playerLevel,
		Rarity:       rarity,
		Stats:        stats,
	}
}

// RandomSlot picks one of the six equipment slots.
func RandomSlot(rng *rand.Rand) Slot {
	slots := Slots()
	return slots[rng.Intn(len(slots))]
}

// GenerateMaterial rolls a random crafting material with a small quantity.
func GenerateMaterial(rng *rand.Rand) Material {
	materials := []Material{
		{Name: "Iron Ore", Icon: "⛏️", Type: "ore", Quantity: rng.Intn(5) + 1},
		{Name: "Magic Essence", Icon: "✨", Type: "essence", Quantity: rng.Intn(3) + 1},
		{Name: "Clockwork Gears", Icon: "⚙️", Type: "component", Quantity: rng.Intn(2) + 1},
		{Name: "Alchemical Reagent", Icon: "🧪", Type: "reagent", Quantity: rng.Intn(4) + 1},
	}
	return materials[rng.Intn(len(materials))]
}

// GenerateItem rolls a random quest item or consumable.
func GenerateItem(rng *rand.Rand) Item {
	items := []Item{
		{Name: "Ancient Key", Icon: "🗝️", Category: "key", Quantity: 1},
		{Name: "Health Potion", Icon: "🧪", Category: "consumable", Quantity: rng.Intn(3) + 1},
		{Name: "Temple Token", Icon: "🪙", Category: "currency", Quantity: rng.Intn(10) + 1},
		{Name: "Victory Medal", Icon: "🏅", Category: "trophy", Quantity: 1},
		{Name: "Ancient Scroll", Icon: "📜", Category: "lore", Description: "A scroll containing ancient wisdom", Quantity: 1},
	}
	return items[rng.Intn(len(items))]
}
