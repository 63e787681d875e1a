package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/thornvale/emberwood/internal/platform/errors"
	"github.com/thornvale/emberwood/internal/reward"
)

// chestRegistries builds a miniature chest encounter: an examine loop, a
// dynamic open, and a terminal completion screen.
func chestRegistries(t *testing.T) (*Registry, *HandlerRegistry) {
	t.Helper()

	templates := NewRegistry()
	set := FeatureSet{
		Name:  "chest",
		Start: "MYSTERIOUS_CHEST",
		Templates: []Template{
			{
				ID:      "MYSTERIOUS_CHEST",
				Content: StaticContent(map[string]string{"title": "A Mysterious Chest"}),
				Actions: []Action{
					{ID: "EXAMINE", Label: "Examine the chest", Target: RouteTo("CHEST_EXAMINED")},
					{ID: "OPEN", Label: "Open the chest", Target: Dynamic()},
					{ID: "LEAVE", Label: "Walk away", Target: Complete()},
				},
			},
			{
				ID: "CHEST_EXAMINED",
				Content: DynamicContent(func(ctx context.Context, userID string) (any, error) {
					return fmt.Sprintf("examined by %s", userID), nil
				}),
				Actions: []Action{
					{ID: "STEP_BACK", Label: "Step back", Target: RouteTo("MYSTERIOUS_CHEST")},
					{ID: "OPEN", Label: "Open the chest", Target: Dynamic()},
				},
			},
			{
				ID:      "ENCOUNTER_COMPLETE",
				Content: StaticContent("The encounter is over."),
			},
		},
	}
	if err := templates.Register(set); err != nil {
		t.Fatalf("register templates: %v", err)
	}

	handlers := NewHandlerRegistry()
	open := func(ctx context.Context, userID string) (Result, error) {
		var bundle reward.Bundle
		xp, err := reward.NewEntry(reward.KindXP, 25, "")
		if err != nil {
			return Result{}, err
		}
		bundle.Add(xp)
		return Result{Next: "ENCOUNTER_COMPLETE", Rewards: &bundle}, nil
	}
	if err := handlers.Register("MYSTERIOUS_CHEST", "OPEN", open); err != nil {
		t.Fatalf("register handler: %v", err)
	}
	return templates, handlers
}

func TestExecuteTemplate(t *testing.T) {
	templates, handlers := chestRegistries(t)
	e := New(templates, handlers)
	ctx := context.Background()

	t.Run("static content", func(t *testing.T) {
		view, err := e.ExecuteTemplate(ctx, "MYSTERIOUS_CHEST", "user-1")
		if err != nil {
			t.Fatalf("ExecuteTemplate: %v", err)
		}
		if view.Terminal {
			t.Error("template with actions reported terminal")
		}
		if len(view.Actions) != 3 {
			t.Fatalf("len(actions) = %d, want 3", len(view.Actions))
		}
		if view.Actions[0].ID != "EXAMINE" || view.Actions[2].ID != "LEAVE" {
			t.Errorf("action order = %v, want declaration order", view.Actions)
		}
	})

	t.Run("dynamic content is per player", func(t *testing.T) {
		view, err := e.ExecuteTemplate(ctx, "CHEST_EXAMINED", "user-7")
		if err != nil {
			t.Fatalf("ExecuteTemplate: %v", err)
		}
		if view.Content != "examined by user-7" {
			t.Errorf("content = %v, want per-player string", view.Content)
		}
	})

	t.Run("terminal template", func(t *testing.T) {
		view, err := e.ExecuteTemplate(ctx, "ENCOUNTER_COMPLETE", "user-1")
		if err != nil {
			t.Fatalf("ExecuteTemplate: %v", err)
		}
		if !view.Terminal {
			t.Error("actionless template should be terminal")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := e.ExecuteTemplate(ctx, "NOWHERE", "user-1")
		if !errors.IsCode(err, errors.CodeTemplateNotFound) {
			t.Errorf("error = %v, want %s", err, errors.CodeTemplateNotFound)
		}
	})
}

func TestExecuteAction(t *testing.T) {
	templates, handlers := chestRegistries(t)
	e := New(templates, handlers)
	ctx := context.Background()

	t.Run("static route", func(t *testing.T) {
		res, err := e.ExecuteAction(ctx, "MYSTERIOUS_CHEST", "EXAMINE", "user-1")
		if err != nil {
			t.Fatalf("ExecuteAction: %v", err)
		}
		if res.Next != "CHEST_EXAMINED" || res.Complete {
			t.Errorf("result = %+v, want route to CHEST_EXAMINED", res)
		}
		if res.Rewards != nil {
			t.Error("static route should not carry rewards")
		}
	})

	t.Run("complete target", func(t *testing.T) {
		res, err := e.ExecuteAction(ctx, "MYSTERIOUS_CHEST", "LEAVE", "user-1")
		if err != nil {
			t.Fatalf("ExecuteAction: %v", err)
		}
		if !res.Complete || res.Next != "" {
			t.Errorf("result = %+v, want completion", res)
		}
	})

	t.Run("dynamic handler with rewards", func(t *testing.T) {
		res, err := e.ExecuteAction(ctx, "MYSTERIOUS_CHEST", "OPEN", "user-1")
		if err != nil {
			t.Fatalf("ExecuteAction: %v", err)
		}
		if res.Next != "ENCOUNTER_COMPLETE" {
			t.Errorf("next = %s, want ENCOUNTER_COMPLETE", res.Next)
		}
		if res.Rewards == nil || res.Rewards.Empty() {
			t.Fatal("expected a reward bundle")
		}
		if got := res.Rewards.Format(); !strings.Contains(got, "+25 XP") {
			t.Errorf("rewards = %q, want an XP entry", got)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := e.ExecuteAction(ctx, "MYSTERIOUS_CHEST", "SMASH", "user-1")
		if !errors.IsCode(err, errors.CodeActionNotFound) {
			t.Errorf("error = %v, want %s", err, errors.CodeActionNotFound)
		}
	})
}

func TestExecuteActionCycle(t *testing.T) {
	templates, handlers := chestRegistries(t)
	e := New(templates, handlers)
	ctx := context.Background()

	// Examine and step back repeatedly; the cycle must hold state-free.
	current := TemplateID("MYSTERIOUS_CHEST")
	for i := 0; i < 3; i++ {
		res, err := e.ExecuteAction(ctx, current, "EXAMINE", "user-1")
		if err != nil {
			t.Fatalf("EXAMINE round %d: %v", i, err)
		}
		if res.Next != "CHEST_EXAMINED" {
			t.Fatalf("EXAMINE round %d routed to %s", i, res.Next)
		}
		res, err = e.ExecuteAction(ctx, res.Next, "STEP_BACK", "user-1")
		if err != nil {
			t.Fatalf("STEP_BACK round %d: %v", i, err)
		}
		if res.Next != "MYSTERIOUS_CHEST" {
			t.Fatalf("STEP_BACK round %d routed to %s", i, res.Next)
		}
		current = res.Next
	}
}

func TestExecuteActionMissingHandler(t *testing.T) {
	templates, handlers := chestRegistries(t)
	ctx := context.Background()

	// CHEST_EXAMINED.OPEN is declared dynamic but never registered.
	t.Run("strict mode propagates", func(t *testing.T) {
		e := New(templates, handlers)
		_, err := e.ExecuteAction(ctx, "CHEST_EXAMINED", "OPEN", "user-1")
		if !errors.IsCode(err, errors.CodeActionHandlerNotFound) {
			t.Fatalf("error = %v, want %s", err, errors.CodeActionHandlerNotFound)
		}
		if got := errors.GetMetadata(err)["HandlerKey"]; got != "CHEST_EXAMINED.OPEN" {
			t.Errorf("metadata HandlerKey = %q, want CHEST_EXAMINED.OPEN", got)
		}
	})

	t.Run("fail-safe mode completes and logs", func(t *testing.T) {
		var logged []string
		e := New(templates, handlers, WithFailSafe(), WithLogf(func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}))
		res, err := e.ExecuteAction(ctx, "CHEST_EXAMINED", "OPEN", "user-1")
		if err != nil {
			t.Fatalf("fail-safe ExecuteAction: %v", err)
		}
		if !res.Complete {
			t.Errorf("result = %+v, want completion", res)
		}
		if len(logged) != 1 || !strings.Contains(logged[0], "CHEST_EXAMINED.OPEN") {
			t.Errorf("logged = %v, want one line naming the handler key", logged)
		}
	})
}

func TestExecuteActionHandlerError(t *testing.T) {
	templates := NewRegistry()
	err := templates.Register(FeatureSet{
		Name:  "broken",
		Start: "BROKEN",
		Templates: []Template{{
			ID:      "BROKEN",
			Actions: []Action{{ID: "ACT", Label: "Act", Target: Dynamic()}},
		}},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	handlers := NewHandlerRegistry()
	boom := fmt.Errorf("storage offline")
	if err := handlers.Register("BROKEN", "ACT", func(ctx context.Context, userID string) (Result, error) {
		return Result{}, boom
	}); err != nil {
		t.Fatalf("register handler: %v", err)
	}
	ctx := context.Background()

	t.Run("strict mode propagates", func(t *testing.T) {
		e := New(templates, handlers)
		if _, err := e.ExecuteAction(ctx, "BROKEN", "ACT", "user-1"); err == nil {
			t.Fatal("expected handler error to propagate")
		}
	})

	t.Run("fail-safe mode completes", func(t *testing.T) {
		e := New(templates, handlers, WithFailSafe(), WithLogf(func(string, ...any) {}))
		res, err := e.ExecuteAction(ctx, "BROKEN", "ACT", "user-1")
		if err != nil {
			t.Fatalf("fail-safe ExecuteAction: %v", err)
		}
		if !res.Complete {
			t.Errorf("result = %+v, want completion", res)
		}
	})
}

func TestDynamicResultEmptyNextCompletes(t *testing.T) {
	templates := NewRegistry()
	if err := templates.Register(FeatureSet{
		Name:  "oneshot",
		Start: "ONESHOT",
		Templates: []Template{{
			ID:      "ONESHOT",
			Actions: []Action{{ID: "FINISH", Label: "Finish", Target: Dynamic()}},
		}},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	handlers := NewHandlerRegistry()
	if err := handlers.Register("ONESHOT", "FINISH", func(ctx context.Context, userID string) (Result, error) {
		return Result{}, nil
	}); err != nil {
		t.Fatalf("register handler: %v", err)
	}

	res, err := New(templates, handlers).ExecuteAction(context.Background(), "ONESHOT", "FINISH", "user-1")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if !res.Complete {
		t.Errorf("result = %+v, want completion when handler returns no next template", res)
	}
}
