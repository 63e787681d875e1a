package features

import (
	"context"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
)

// EncounterPool lists every template the explore command may land on. The
// chest and profile features are reached through their own commands and are
// deliberately absent.
func EncounterPool() []engine.TemplateID {
	return []engine.TemplateID{
		TemplateJokester,
		TemplateRiddler,
		TemplateGossip,
		TemplateButterflyConference,
		TemplateUpsideDownPuddle,
		TemplateBookHouse,
		TemplatePickyMagicDoor,
		TemplateNumberStones,
		TemplateMirrorGuardian,
	}
}

// StartRandomEncounter resolves a random template from the encounter pool
// for userID. Extra start templates, such as those contributed by loaded
// scripts, join the draw alongside the built-in pool.
func StartRandomEncounter(ctx context.Context, svc *app.Service, userID string, extra ...engine.TemplateID) (engine.View, error) {
	return svc.StartRandomEncounter(ctx, userID, append(EncounterPool(), extra...))
}
