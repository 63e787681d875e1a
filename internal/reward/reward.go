// Package reward collects the payouts of an encounter action into a bundle
// that renders the same way everywhere.
package reward

import (
	"fmt"
	"strings"

	"github.com/thornvale/emberwood/internal/platform/errors"
)

// Kind pairs the icon and default display name of a reward category.
type Kind struct {
	Icon string
	Name string
}

var (
	KindXP       = Kind{Icon: "✨", Name: "XP"}
	KindGold     = Kind{Icon: "🪙", Name: "Gold"}
	KindTitle    = Kind{Icon: "🏆", Name: "Title"}
	KindItem     = Kind{Icon: "📦", Name: "Item"}
	KindGear     = Kind{Icon: "⚔️", Name: "Gear"}
	KindMaterial = Kind{Icon: "⛏️", Name: "Material"}
)

// Entry is a single reward line: an icon, a positive amount, and a name.
type Entry struct {
	Icon   string
	Amount int
	Name   string
}

// NewEntry builds an entry of the given kind. An empty name falls back to
// the kind's default. Amounts must be positive.
func NewEntry(kind Kind, amount int, name string) (Entry, error) {
	if amount <= 0 {
		return Entry{}, errors.WithMetadata(errors.CodeRewardAmountInvalid,
			"reward amount must be positive",
			map[string]string{"Amount": fmt.Sprintf("%d", amount)})
	}
	if name == "" {
		name = kind.Name
	}
	return Entry{Icon: kind.Icon, Amount: amount, Name: name}, nil
}

// Bundle is an ordered collection of reward entries. The zero value is an
// empty bundle ready for use.
type Bundle struct {
	entries []Entry
}

// Add appends an entry, preserving insertion order.
func (b *Bundle) Add(e Entry) {
	b.entries = append(b.entries, e)
}

// Entries returns the entries in insertion order.
func (b *Bundle) Entries() []Entry {
	return b.entries
}

// Empty reports whether the bundle has no entries.
func (b *Bundle) Empty() bool {
	return len(b.entries) == 0
}

// Format renders one line per entry as "{icon} +{amount} {name}", joined by
// newlines. An empty bundle renders as the empty string.
func (b *Bundle) Format() string {
	if len(b.entries) == 0 {
		return ""
	}
	lines := make([]string, len(b.entries))
	for i, e := range b.entries {
		lines[i] = fmt.Sprintf("%s +%d %s", e.Icon, e.Amount, e.Name)
	}
	return strings.Join(lines, "\n")
}
