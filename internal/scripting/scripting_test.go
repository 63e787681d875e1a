package scripting

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/progression"
	"github.com/thornvale/emberwood/internal/reward"
	"github.com/thornvale/emberwood/internal/storage/memory"
)

const gateScript = `
local f = Feature.new("GATE", "GATE_ENCOUNTER")

f:template{
	id = "GATE_ENCOUNTER",
	content = {
		title = "A Rusted Gate",
		description = "An iron gate bars the path, its lock weeping rust.",
	},
	actions = {
		{ id = "inspect", label = "Inspect the lock", next = "GATE_INSPECTED" },
		{ id = "force", label = "Force it open", handler = function(ctx)
			ctx:award_xp(10)
			if ctx:roll() < 2.0 then
				ctx:award_title("Gatebreaker")
				return "GATE_OPEN"
			end
			return "GATE_INSPECTED"
		end },
		{ id = "leave", label = "Turn back" },
	},
}

f:template{
	id = "GATE_INSPECTED",
	content = { description = "The mechanism is seized solid." },
	actions = {
		{ id = "retreat", label = "Walk away" },
	},
}

f:template{
	id = "GATE_OPEN",
	content = { description = "The gate screeches open." },
}

return f
`

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// newService pins the world at level 1 so XP awards pass through with a 1.0
// multiplier and script assertions stay exact.
func newService(t *testing.T) *app.Service {
	t.Helper()
	return app.New(memory.NewStore(), app.WithSchedule(progression.Schedule{
		InitialLevel: 1,
		Step:         10,
		Interval:     14 * 24 * time.Hour,
	}))
}

func TestLoadFileRegistersFeature(t *testing.T) {
	svc := newService(t)
	loader := NewLoader(svc)

	if err := loader.LoadFile(writeScript(t, "gate.lua", gateScript)); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc.Freeze()

	keys := svc.TemplateKeys()
	want := []string{"GATE_ENCOUNTER", "GATE_INSPECTED", "GATE_OPEN"}
	for _, id := range want {
		found := false
		for _, k := range keys {
			if k == id {
				found = true
			}
		}
		if !found {
			t.Errorf("template %s not registered (have %v)", id, keys)
		}
	}

	handlers := svc.HandlerKeys()
	if len(handlers) != 1 || handlers[0] != "GATE_ENCOUNTER.force" {
		t.Errorf("handler keys = %v, want [GATE_ENCOUNTER.force]", handlers)
	}
}

func TestScriptedEncounterFlow(t *testing.T) {
	svc := newService(t)
	loader := NewLoader(svc)
	if err := loader.LoadFile(writeScript(t, "gate.lua", gateScript)); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc.Freeze()

	ctx := context.Background()
	if _, err := svc.EnsurePlayer(ctx, "user-1", "Rowan"); err != nil {
		t.Fatalf("ensure player: %v", err)
	}

	view, err := svc.ExecuteTemplate(ctx, "GATE_ENCOUNTER", "user-1")
	if err != nil {
		t.Fatalf("execute template: %v", err)
	}
	if len(view.Actions) != 3 {
		t.Fatalf("actions = %d, want 3", len(view.Actions))
	}
	content, ok := view.Content.(map[string]any)
	if !ok {
		t.Fatalf("content type = %T, want map", view.Content)
	}
	if content["title"] != "A Rusted Gate" {
		t.Errorf("title = %v", content["title"])
	}

	// Static routing stays in the templates.
	result, err := svc.ExecuteAction(ctx, "GATE_ENCOUNTER", "inspect", "user-1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if result.Next != "GATE_INSPECTED" {
		t.Errorf("next = %q, want GATE_INSPECTED", result.Next)
	}

	// The Lua handler awards XP and routes on its roll result. roll() is
	// always below 2.0, so the title branch is deterministic.
	result, err = svc.ExecuteAction(ctx, "GATE_ENCOUNTER", "force", "user-1")
	if err != nil {
		t.Fatalf("force: %v", err)
	}
	if result.Next != "GATE_OPEN" {
		t.Errorf("next = %q, want GATE_OPEN", result.Next)
	}
	if result.Rewards == nil {
		t.Fatal("rewards bundle missing")
	}
	entries := result.Rewards.Entries()
	if len(entries) != 2 {
		t.Fatalf("reward entries = %d, want 2", len(entries))
	}
	if entries[0].Icon != reward.KindXP.Icon || entries[0].Amount != 10 {
		t.Errorf("first entry = %+v, want 10 XP", entries[0])
	}
	if entries[1].Icon != reward.KindTitle.Icon || entries[1].Name != "Gatebreaker" {
		t.Errorf("second entry = %+v, want Gatebreaker title", entries[1])
	}

	p, err := svc.GetPlayer(ctx, "user-1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.XP != 10 {
		t.Errorf("player xp = %d, want 10", p.XP)
	}
	if len(p.Titles) != 1 || p.Titles[0] != "Gatebreaker" {
		t.Errorf("titles = %v", p.Titles)
	}

	// Actions with neither next nor handler complete the encounter.
	result, err = svc.ExecuteAction(ctx, "GATE_ENCOUNTER", "leave", "user-1")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if !result.Complete {
		t.Error("leave should complete the encounter")
	}
}

func TestScriptHandlerCompletesOnNil(t *testing.T) {
	const script = `
local f = Feature.new("CAIRN", "CAIRN_ENCOUNTER")
f:template{
	id = "CAIRN_ENCOUNTER",
	content = { description = "A stack of balanced stones." },
	actions = {
		{ id = "topple", label = "Topple it", handler = function(ctx)
			ctx:award_xp(5)
		end },
	},
}
return f
`
	svc := newService(t)
	loader := NewLoader(svc)
	if err := loader.LoadFile(writeScript(t, "cairn.lua", script)); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc.Freeze()

	ctx := context.Background()
	if _, err := svc.EnsurePlayer(ctx, "user-1", "Rowan"); err != nil {
		t.Fatalf("ensure player: %v", err)
	}
	result, err := svc.ExecuteAction(ctx, "CAIRN_ENCOUNTER", "topple", "user-1")
	if err != nil {
		t.Fatalf("topple: %v", err)
	}
	if !result.Complete || result.Next != "" {
		t.Errorf("result = %+v, want complete", result)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "no return value",
			script: `local f = Feature.new("X", "X_START")`,
			want:   "must return a Feature",
		},
		{
			name: "template without id",
			script: `
local f = Feature.new("X", "X_START")
f:template{ content = { description = "nameless" } }
return f
`,
			want: "template requires an id",
		},
		{
			name: "start missing from templates",
			script: `
local f = Feature.new("X", "X_START")
f:template{ id = "X_OTHER", content = { description = "stray" } }
return f
`,
			want: "start template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			loader := NewLoader(svc)
			err := loader.LoadFile(writeScript(t, "bad.lua", tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want contains %q", err, tt.want)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	scripts := map[string]string{
		"a_gate.lua": gateScript,
		"b_cairn.lua": `
local f = Feature.new("CAIRN", "CAIRN_ENCOUNTER")
f:template{ id = "CAIRN_ENCOUNTER", content = { description = "stones" } }
return f
`,
	}
	for name, body := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	svc := newService(t)
	loader := NewLoader(svc)
	if err := loader.LoadDir(dir); err != nil {
		t.Fatalf("load dir: %v", err)
	}
	svc.Freeze()

	starts := svc.TemplateKeys()
	var gate, cairn bool
	for _, k := range starts {
		if k == "GATE_ENCOUNTER" {
			gate = true
		}
		if k == "CAIRN_ENCOUNTER" {
			cairn = true
		}
	}
	if !gate || !cairn {
		t.Errorf("templates = %v, want both feature sets", starts)
	}
}
