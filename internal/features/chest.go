package features

import (
	"context"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/inventory"
	"github.com/thornvale/emberwood/internal/reward"
)

// Chest encounter template ids.
const (
	TemplateMysteriousChest   engine.TemplateID = "MYSTERIOUS_CHEST"
	TemplateChestExamined     engine.TemplateID = "CHEST_EXAMINED"
	TemplateLootSelection     engine.TemplateID = "LOOT_SELECTION"
	TemplateEncounterComplete engine.TemplateID = "ENCOUNTER_COMPLETE"
)

// Chest action ids.
const (
	ActionExamine   engine.ActionID = "EXAMINE"
	ActionForceOpen engine.ActionID = "FORCE_OPEN"
	ActionDisarm    engine.ActionID = "DISARM"
	ActionTrigger   engine.ActionID = "TRIGGER"
	ActionStepBack  engine.ActionID = "STEP_BACK"
	ActionTakeItem  engine.ActionID = "TAKE_ITEM"
	ActionTakeCoins engine.ActionID = "TAKE_COINS"
	ActionTakeAll   engine.ActionID = "TAKE_ALL"
	ActionDone      engine.ActionID = "DONE"
	ActionLeave     engine.ActionID = "LEAVE"
)

// RegisterChest wires the trapped-chest encounter: examine, disarm or force
// the trap, then pick over the loot.
func RegisterChest(svc *app.Service) error {
	set := engine.FeatureSet{
		Name:  "chest",
		Start: TemplateMysteriousChest,
		Templates: []engine.Template{
			{
				ID: TemplateMysteriousChest,
				Content: engine.StaticContent(map[string]any{
					"title":         "A Mysterious Chest",
					"description":   "An ornate wooden chest sits before you, slightly ajar. Strange markings cover its surface.",
					"chestType":     "wooden",
					"isLocked":      false,
					"trapSuspected": true,
				}),
				Actions: []engine.Action{
					{ID: ActionExamine, Label: "Examine Closely", Target: engine.Dynamic()},
					{ID: ActionForceOpen, Label: "Force Open", Target: engine.Dynamic()},
					{ID: ActionLeave, Label: "Walk Away", Target: engine.Complete()},
				},
			},
			{
				ID:      TemplateChestExamined,
				Content: engine.DynamicContent(examineResults(svc)),
				Actions: []engine.Action{
					{ID: ActionDisarm, Label: "Disarm Trap", Target: engine.Dynamic()},
					{ID: ActionTrigger, Label: "Trigger Trap", Target: engine.Dynamic()},
					{ID: ActionStepBack, Label: "Step Back", Target: engine.RouteTo(TemplateMysteriousChest)},
				},
			},
			{
				ID:      TemplateLootSelection,
				Content: engine.DynamicContent(lootOptions(svc)),
				Actions: []engine.Action{
					{ID: ActionTakeItem, Label: "Take Item", Target: engine.Dynamic()},
					{ID: ActionTakeCoins, Label: "Take Coins", Target: engine.Dynamic()},
					{ID: ActionTakeAll, Label: "Take Everything", Target: engine.Dynamic()},
					{ID: ActionDone, Label: "Done", Target: engine.Complete()},
				},
			},
			{
				ID: TemplateEncounterComplete,
				Content: engine.StaticContent(map[string]any{
					"title":       "Encounter Complete",
					"description": "You continue on your journey, wiser from the experience...",
				}),
			},
		},
	}
	if err := svc.RegisterFeatureSet(set); err != nil {
		return err
	}

	handlers := []struct {
		template engine.TemplateID
		action   engine.ActionID
		fn       engine.HandlerFunc
	}{
		{TemplateMysteriousChest, ActionExamine, examineChest(svc)},
		{TemplateMysteriousChest, ActionForceOpen, forceOpenChest(svc)},
		{TemplateChestExamined, ActionDisarm, disarmTrap(svc)},
		{TemplateChestExamined, ActionTrigger, triggerTrap(svc)},
		{TemplateLootSelection, ActionTakeItem, takeItem(svc)},
		{TemplateLootSelection, ActionTakeCoins, takeCoins(svc)},
		{TemplateLootSelection, ActionTakeAll, takeAll(svc)},
	}
	for _, h := range handlers {
		if err := svc.RegisterHandler(h.template, h.action, h.fn); err != nil {
			return err
		}
	}
	return nil
}

// examineResults scales the trap description to the player's level.
func examineResults(svc *app.Service) engine.ContentResolver {
	return func(ctx context.Context, userID string) (any, error) {
		p, err := svc.GetPlayer(ctx, userID)
		if err != nil {
			return nil, err
		}
		level := p.Level()
		description := "Your keen eyes spot a pressure plate mechanism. It looks dangerous but manageable."
		if level > 3 {
			description = "Your keen eyes spot a pressure plate mechanism. Your experience tells you it's relatively simple to disarm."
		}
		difficulty := "medium"
		if level > 5 {
			difficulty = "easy"
		}
		return map[string]any{
			"title":            "Trap Detected!",
			"description":      description,
			"trapType":         "pressure plate",
			"trapDifficulty":   difficulty,
			"playerSkillLevel": level,
		}, nil
	}
}

// lootOptions rolls level-scaled coin amounts for the loot screen.
func lootOptions(svc *app.Service) engine.ContentResolver {
	return func(ctx context.Context, userID string) (any, error) {
		p, err := svc.GetPlayer(ctx, userID)
		if err != nil {
			return nil, err
		}
		coins := svc.RollIntn(50) + p.Level()*10
		return map[string]any{
			"title":          "Treasure Found!",
			"description":    "The chest opens to reveal valuable items glinting in the light.",
			"coinsAvailable": coins,
		}, nil
	}
}

func examineChest(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if err := awardXP(ctx, svc, userID, 10, &bundle); err != nil {
			return engine.Result{}, err
		}
		return engine.Result{Next: TemplateChestExamined, Rewards: &bundle}, nil
	}
}

// forceOpenChest succeeds 70% of the time. Failure springs the trap and
// sends the player back to the examined state with consolation XP.
func forceOpenChest(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if svc.Roll() > 0.3 {
			if err := awardXP(ctx, svc, userID, 25, &bundle); err != nil {
				return engine.Result{}, err
			}
			return engine.Result{Next: TemplateLootSelection, Rewards: &bundle}, nil
		}
		if err := awardXP(ctx, svc, userID, 5, &bundle); err != nil {
			return engine.Result{}, err
		}
		return engine.Result{Next: TemplateChestExamined, Rewards: &bundle}, nil
	}
}

// disarmTrap is the careful approach: 85% success and bonus XP.
func disarmTrap(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if svc.Roll() > 0.15 {
			if err := awardXP(ctx, svc, userID, 35, &bundle); err != nil {
				return engine.Result{}, err
			}
			return engine.Result{Next: TemplateLootSelection, Rewards: &bundle}, nil
		}
		if err := awardXP(ctx, svc, userID, 5, &bundle); err != nil {
			return engine.Result{}, err
		}
		return engine.Result{Next: TemplateChestExamined, Rewards: &bundle}, nil
	}
}

// triggerTrap always works, at a price paid in lower XP.
func triggerTrap(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if err := awardXP(ctx, svc, userID, 15, &bundle); err != nil {
			return engine.Result{}, err
		}
		return engine.Result{Next: TemplateLootSelection, Rewards: &bundle}, nil
	}
}

func takeItem(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if err := awardXP(ctx, svc, userID, 15, &bundle); err != nil {
			return engine.Result{}, err
		}
		entry, err := svc.AwardItem(ctx, userID, svc.RollItem())
		if err != nil {
			return engine.Result{}, err
		}
		bundle.Add(entry)
		// Roughly a third of chests hide a piece of gear under the loot.
		if svc.Roll() < 0.35 {
			if err := awardChestGear(ctx, svc, userID, &bundle); err != nil {
				return engine.Result{}, err
			}
		}
		return engine.Result{Rewards: &bundle}, nil
	}
}

func takeCoins(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if err := awardXP(ctx, svc, userID, 10, &bundle); err != nil {
			return engine.Result{}, err
		}
		if err := awardCoins(ctx, svc, userID, &bundle); err != nil {
			return engine.Result{}, err
		}
		return engine.Result{Rewards: &bundle}, nil
	}
}

func takeAll(svc *app.Service) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		var bundle reward.Bundle
		if err := awardXP(ctx, svc, userID, 30, &bundle); err != nil {
			return engine.Result{}, err
		}
		entry, err := svc.AwardItem(ctx, userID, svc.RollItem())
		if err != nil {
			return engine.Result{}, err
		}
		bundle.Add(entry)
		if err := awardCoins(ctx, svc, userID, &bundle); err != nil {
			return engine.Result{}, err
		}
		if err := awardChestGear(ctx, svc, userID, &bundle); err != nil {
			return engine.Result{}, err
		}
		material, err := svc.AwardMaterial(ctx, userID, svc.RollMaterial())
		if err != nil {
			return engine.Result{}, err
		}
		bundle.Add(material)
		return engine.Result{Rewards: &bundle}, nil
	}
}

// awardChestGear rolls a level-scaled gear piece for a random slot and
// stores it in the player's bag.
func awardChestGear(ctx context.Context, svc *app.Service, userID string, bundle *reward.Bundle) error {
	g, err := svc.GenerateGearFor(ctx, userID, svc.RollGearSlot())
	if err != nil {
		return err
	}
	entry, err := svc.AwardGear(ctx, userID, g)
	if err != nil {
		return err
	}
	bundle.Add(entry)
	return nil
}

func awardCoins(ctx context.Context, svc *app.Service, userID string, bundle *reward.Bundle) error {
	p, err := svc.GetPlayer(ctx, userID)
	if err != nil {
		return err
	}
	coins := svc.RollIntn(50) + p.Level()*10
	entry, err := svc.AwardItem(ctx, userID, inventory.Item{
		Name:     "Gold Coins",
		Icon:     "🪙",
		Category: "currency",
		Quantity: coins,
	})
	if err != nil {
		return err
	}
	bundle.Add(entry)
	return nil
}
