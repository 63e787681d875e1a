package inventory

import (
	"math/rand"
	"testing"

	"github.com/thornvale/emberwood/internal/platform/errors"
)

func TestParseSlot(t *testing.T) {
	for _, slot := range Slots() {
		got, err := ParseSlot(string(slot))
		if err != nil {
			t.Errorf("ParseSlot(%q): %v", slot, err)
		}
		if got != slot {
			t.Errorf("ParseSlot(%q) = %q", slot, got)
		}
	}

	_, err := ParseSlot("ring")
	if !errors.IsCode(err, errors.CodeGearSlotInvalid) {
		t.Errorf("ParseSlot(ring) error = %v, want %s", err, errors.CodeGearSlotInvalid)
	}
}

func TestMaterialStacking(t *testing.T) {
	inv := Inventory{UserID: "user-1"}
	inv.AddMaterial(Material{ID: "m1", Name: "Iron Ore", Type: "ore", Quantity: 3})
	inv.AddMaterial(Material{ID: "m2", Name: "Iron Ore", Type: "ore", Quantity: 2})
	inv.AddMaterial(Material{ID: "m3", Name: "Iron Ore", Type: "essence", Quantity: 1})

	if len(inv.Materials) != 2 {
		t.Fatalf("len(materials) = %d, want 2 stacks", len(inv.Materials))
	}
	if inv.Materials[0].Quantity != 5 {
		t.Errorf("stacked quantity = %d, want 5", inv.Materials[0].Quantity)
	}
	// Same name but different type must not merge.
	if inv.Materials[1].Quantity != 1 {
		t.Errorf("separate stack quantity = %d, want 1", inv.Materials[1].Quantity)
	}
}

func TestItemStacking(t *testing.T) {
	inv := Inventory{UserID: "user-1"}
	inv.AddItem(Item{ID: "i1", Name: "Health Potion", Category: "consumable", Quantity: 2})
	inv.AddItem(Item{ID: "i2", Name: "Health Potion", Category: "consumable", Quantity: 1})
	inv.AddItem(Item{ID: "i3", Name: "Ancient Key", Category: "key", Quantity: 1})

	if len(inv.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2 stacks", len(inv.Items))
	}
	if inv.Items[0].Quantity != 3 {
		t.Errorf("stacked quantity = %d, want 3", inv.Items[0].Quantity)
	}
}

func TestGearNeverStacks(t *testing.T) {
	inv := Inventory{UserID: "user-1"}
	inv.AddGear(Gear{ID: "g1", Name: "Iron Sword", Slot: SlotMainHand})
	inv.AddGear(Gear{ID: "g2", Name: "Iron Sword", Slot: SlotMainHand})

	if len(inv.Gear) != 2 {
		t.Errorf("len(gear) = %d, want 2 separate pieces", len(inv.Gear))
	}
}

func TestRemoveGear(t *testing.T) {
	inv := Inventory{UserID: "user-1"}
	inv.AddGear(Gear{ID: "g1", Name: "Iron Helm", Slot: SlotHelm})
	inv.AddGear(Gear{ID: "g2", Name: "Iron Sword", Slot: SlotMainHand})

	g, ok := inv.RemoveGear("g1")
	if !ok || g.Name != "Iron Helm" {
		t.Fatalf("RemoveGear(g1) = %+v, %v", g, ok)
	}
	if len(inv.Gear) != 1 || inv.Gear[0].ID != "g2" {
		t.Errorf("remaining gear = %+v, want only g2", inv.Gear)
	}
	if _, ok := inv.RemoveGear("g1"); ok {
		t.Error("second RemoveGear(g1) should miss")
	}
}

func TestSalvageAllGear(t *testing.T) {
	inv := Inventory{UserID: "user-1"}
	inv.AddGear(Gear{ID: "g1", Slot: SlotHelm})
	inv.AddGear(Gear{ID: "g2", Slot: SlotLegs})
	inv.AddMaterial(Material{ID: "m1", Name: "Iron Ore", Type: "ore", Quantity: 1})

	if n := inv.SalvageAllGear(); n != 2 {
		t.Errorf("SalvageAllGear() = %d, want 2", n)
	}
	if len(inv.Gear) != 0 {
		t.Errorf("gear after salvage = %d pieces, want 0", len(inv.Gear))
	}
	if len(inv.Materials) != 1 {
		t.Error("salvage must not touch materials")
	}
	if n := inv.SalvageAllGear(); n != 0 {
		t.Errorf("salvage of empty bag = %d, want 0", n)
	}
}

func TestCombatRating(t *testing.T) {
	tests := []struct {
		name      string
		equipped  EquippedGear
		gameLevel int
		want      int
	}{
		{
			name:      "naked player matches game level",
			equipped:  EquippedGear{},
			gameLevel: 10,
			want:      10,
		},
		{
			name: "fully equipped averages gear ratings",
			equipped: EquippedGear{
				SlotHelm:     {ID: "a", CombatRating: 12},
				SlotChest:    {ID: "b", CombatRating: 12},
				SlotGloves:   {ID: "c", CombatRating: 12},
				SlotLegs:     {ID: "d", CombatRating: 18},
				SlotMainHand: {ID: "e", CombatRating: 18},
				SlotOffhand:  {ID: "f", CombatRating: 18},
			},
			gameLevel: 10,
			want:      15,
		},
		{
			name: "partial equipment blends with game level",
			equipped: EquippedGear{
				SlotMainHand: {ID: "e", CombatRating: 40},
			},
			gameLevel: 10,
			// (40 + 5*10) / 6 = 15
			want: 15,
		},
		{
			name: "average floors",
			equipped: EquippedGear{
				SlotHelm: {ID: "a", CombatRating: 13},
			},
			gameLevel: 10,
			// (13 + 50) / 6 = 10.5 -> 10
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.equipped.CombatRating(tt.gameLevel); got != tt.want {
				t.Errorf("CombatRating(%d) = %d, want %d", tt.gameLevel, got, tt.want)
			}
		})
	}
}

func TestTotalStats(t *testing.T) {
	equipped := EquippedGear{
		SlotHelm:     {ID: "a", Stats: map[Stat]int{StatMight: 3, StatArmor: 2}},
		SlotMainHand: {ID: "b", Stats: map[Stat]int{StatMight: 5}},
	}
	totals := equipped.TotalStats()
	if totals[StatMight] != 8 {
		t.Errorf("Might = %d, want 8", totals[StatMight])
	}
	if totals[StatArmor] != 2 {
		t.Errorf("Armor = %d, want 2", totals[StatArmor])
	}
	if _, ok := totals[StatEvasion]; ok {
		t.Error("absent stats should not appear in totals")
	}
}

func TestGenerateGear(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		slot := RandomSlot(rng)
		g := GenerateGear(rng, 20, slot)

		if g.Slot != slot {
			t.Fatalf("slot = %s, want %s", g.Slot, slot)
		}
		if g.ItemLevel != 20 || g.CombatRating != 20 {
			t.Fatalf("level scaling = (%d, %d), want (20, 20)", g.ItemLevel, g.CombatRating)
		}
		want := statCount(g.Rarity)
		if len(g.Stats) != want {
			t.Fatalf("%s gear has %d stats, want %d", g.Rarity, len(g.Stats), want)
		}
		for stat, value := range g.Stats {
			if value < 1 {
				t.Fatalf("stat %s = %d, want >= 1", stat, value)
			}
		}
		if g.Name == "" || g.Icon == "" {
			t.Fatal("generated gear missing name or icon")
		}
	}
}

func TestGenerateMaterialAndItem(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		m := GenerateMaterial(rng)
		if m.Quantity < 1 || m.Name == "" || m.Type == "" {
			t.Fatalf("bad material: %+v", m)
		}
		it := GenerateItem(rng)
		if it.Quantity < 1 || it.Name == "" || it.Category == "" {
			t.Fatalf("bad item: %+v", it)
		}
	}
}
