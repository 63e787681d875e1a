package emberwood

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/features"
	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/platform/errors"
)

const helpText = `commands:
  explore          wander into a random encounter
  chest            approach the mysterious chest
  profile          show your character sheet
  inventory        list gear, materials, and items
  equip <gear-id>  equip a piece of gear from your bag
  unequip <slot>   return a worn piece to your bag
  salvage          break down all unequipped gear
  help             show this help
  quit             leave the game`

// loop drives one player's session: idle commands between encounters, and
// action selection while one is open.
type loop struct {
	svc     *app.Service
	userID  string
	out     io.Writer
	extra   []engine.TemplateID // scripted starts that join the explore pool
	current *engine.View
}

func runLoop(ctx context.Context, svc *app.Service, userID string, extra []engine.TemplateID, in io.Reader, out io.Writer) error {
	l := &loop{svc: svc, userID: userID, out: out, extra: extra}
	fmt.Fprintln(out, "Welcome to Emberwood. Type \"help\" for commands.")

	scanner := bufio.NewScanner(in)
	l.prompt()
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			l.prompt()
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Fprintln(out, "Farewell.")
			return nil
		}
		if l.current != nil {
			l.handleAction(ctx, line)
		} else {
			l.handleCommand(ctx, line)
		}
		l.prompt()
	}
	return scanner.Err()
}

func (l *loop) prompt() {
	if l.current != nil {
		fmt.Fprint(l.out, "choose> ")
		return
	}
	fmt.Fprint(l.out, "> ")
}

func (l *loop) handleCommand(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(l.out, helpText)
	case "explore":
		view, err := features.StartRandomEncounter(ctx, l.svc, l.userID, l.extra...)
		l.showEncounter(view, err)
	case "chest":
		view, err := l.svc.ExecuteTemplate(ctx, features.TemplateMysteriousChest, l.userID)
		l.showEncounter(view, err)
	case "profile":
		p, err := l.svc.GetProfile(ctx, l.userID)
		if err != nil {
			l.fail(err)
			return
		}
		l.showProfile(p)
	case "inventory":
		inv, err := l.svc.GetInventory(ctx, l.userID)
		if err != nil {
			l.fail(err)
			return
		}
		l.showInventory(inv)
	case "equip":
		if len(args) != 1 {
			fmt.Fprintln(l.out, "usage: equip <gear-id>")
			return
		}
		res, err := l.svc.Equip(ctx, l.userID, args[0])
		if err != nil {
			l.fail(err)
			return
		}
		fmt.Fprintf(l.out, "Equipped %s %s (%s).\n", res.Equipped.Icon, res.Equipped.Name, res.Equipped.Slot)
		if res.Previous != nil {
			fmt.Fprintf(l.out, "%s %s returned to your bag.\n", res.Previous.Icon, res.Previous.Name)
		}
	case "unequip":
		if len(args) != 1 {
			fmt.Fprintln(l.out, "usage: unequip <slot>")
			return
		}
		slot, err := inventory.ParseSlot(args[0])
		if err != nil {
			l.fail(err)
			return
		}
		g, err := l.svc.Unequip(ctx, l.userID, slot)
		if err != nil {
			l.fail(err)
			return
		}
		fmt.Fprintf(l.out, "%s %s returned to your bag.\n", g.Icon, g.Name)
	case "salvage":
		n, err := l.svc.SalvageAll(ctx, l.userID)
		if err != nil {
			l.fail(err)
			return
		}
		fmt.Fprintf(l.out, "Salvaged %d piece(s) of gear.\n", n)
	default:
		fmt.Fprintf(l.out, "unknown command %q; type \"help\"\n", cmd)
	}
}

func (l *loop) handleAction(ctx context.Context, line string) {
	view := l.current
	actionID := engine.ActionID(line)
	var known bool
	for _, a := range view.Actions {
		if a.ID == actionID {
			known = true
		}
	}
	if !known {
		fmt.Fprintf(l.out, "pick one of: %s\n", actionList(view.Actions))
		return
	}

	result, err := l.svc.ExecuteAction(ctx, view.TemplateID, actionID, l.userID)
	if err != nil {
		l.current = nil
		l.fail(err)
		return
	}
	if result.Rewards != nil && !result.Rewards.Empty() {
		fmt.Fprintln(l.out, result.Rewards.Format())
	}
	if result.Complete {
		l.current = nil
		fmt.Fprintln(l.out, "The encounter ends.")
		return
	}
	next, err := l.svc.ExecuteTemplate(ctx, result.Next, l.userID)
	l.showEncounter(next, err)
}

// showEncounter renders a view and arms action selection. Terminal views
// display and end the encounter immediately.
func (l *loop) showEncounter(view engine.View, err error) {
	if err != nil {
		l.current = nil
		l.fail(err)
		return
	}
	l.showContent(view.Content)
	if view.Terminal {
		l.current = nil
		fmt.Fprintln(l.out, "The encounter ends.")
		return
	}
	l.current = &view
	for _, a := range view.Actions {
		fmt.Fprintf(l.out, "  [%s] %s\n", a.ID, a.Label)
	}
}

func (l *loop) showContent(content any) {
	switch c := content.(type) {
	case app.Profile:
		l.showProfile(c)
	case map[string]any:
		if title, ok := c["title"].(string); ok && title != "" {
			fmt.Fprintf(l.out, "== %s ==\n", title)
		}
		if desc, ok := c["description"].(string); ok && desc != "" {
			fmt.Fprintln(l.out, desc)
		}
	case string:
		fmt.Fprintln(l.out, c)
	case nil:
	default:
		fmt.Fprintf(l.out, "%+v\n", c)
	}
}

func (l *loop) showProfile(p app.Profile) {
	fmt.Fprintf(l.out, "== %s ==\n", p.DisplayName)
	fmt.Fprintf(l.out, "Level %d (%d/%d XP into level, %d total)\n", p.Level, p.XPIntoLevel, p.XPForNext, p.XP)
	fmt.Fprintf(l.out, "Game level %d, XP multiplier x%.2f\n", p.GameLevel, p.Multiplier)
	fmt.Fprintf(l.out, "Combat rating %d\n", p.CombatRating)
	for _, slot := range inventory.Slots() {
		if g, ok := p.Equipped[slot]; ok {
			fmt.Fprintf(l.out, "  %-8s %s %s (%s, iLvl %d)\n", slot, g.Icon, g.Name, g.Rarity, g.ItemLevel)
		} else {
			fmt.Fprintf(l.out, "  %-8s (empty)\n", slot)
		}
	}
	stats := make([]string, 0, len(p.Stats))
	for _, stat := range inventory.Stats() {
		if v := p.Stats[stat]; v > 0 {
			stats = append(stats, fmt.Sprintf("%s %d", stat, v))
		}
	}
	if len(stats) > 0 {
		fmt.Fprintf(l.out, "Stats: %s\n", strings.Join(stats, ", "))
	}
	if len(p.Titles) > 0 {
		titles := append([]string(nil), p.Titles...)
		sort.Strings(titles)
		fmt.Fprintf(l.out, "Titles: %s\n", strings.Join(titles, ", "))
	}
}

func (l *loop) showInventory(inv inventory.Inventory) {
	if len(inv.Gear) == 0 && len(inv.Materials) == 0 && len(inv.Items) == 0 {
		fmt.Fprintln(l.out, "Your bag is empty.")
		return
	}
	if len(inv.Gear) > 0 {
		fmt.Fprintln(l.out, "Gear:")
		for _, g := range inv.Gear {
			fmt.Fprintf(l.out, "  %s %s (%s %s, iLvl %d, CR %d) id=%s\n",
				g.Icon, g.Name, g.Rarity, g.Slot, g.ItemLevel, g.CombatRating, g.ID)
		}
	}
	if len(inv.Materials) > 0 {
		fmt.Fprintln(l.out, "Materials:")
		for _, m := range inv.Materials {
			fmt.Fprintf(l.out, "  %s %s x%d\n", m.Icon, m.Name, m.Quantity)
		}
	}
	if len(inv.Items) > 0 {
		fmt.Fprintln(l.out, "Items:")
		for _, it := range inv.Items {
			fmt.Fprintf(l.out, "  %s %s x%d\n", it.Icon, it.Name, it.Quantity)
		}
	}
}

// fail renders the player-facing message for an error; internal messages
// stay in logs and statuses, not on the screen.
func (l *loop) fail(err error) {
	fmt.Fprintf(l.out, "error: %s\n", errors.UserMessage(err, errors.DefaultLocale))
}

func actionList(actions []engine.ActionView) string {
	ids := make([]string, len(actions))
	for i, a := range actions {
		ids[i] = string(a.ID)
	}
	return strings.Join(ids, ", ")
}
