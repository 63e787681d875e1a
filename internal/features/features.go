// Package features defines the built-in encounter content: the chest,
// social, discovery, puzzle, and profile feature sets and their action
// handlers.
package features

import (
	"context"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/reward"
)

// RegisterAll wires every built-in feature set and handler into the
// service. Call once at startup, before Freeze.
func RegisterAll(svc *app.Service) error {
	registrations := []func(*app.Service) error{
		RegisterChest,
		RegisterSocial,
		RegisterDiscovery,
		RegisterPuzzle,
		RegisterProfile,
	}
	for _, register := range registrations {
		if err := register(svc); err != nil {
			return err
		}
	}
	return nil
}

// awardXP funnels an XP grant through the service and records the actual
// credited amount in the bundle.
func awardXP(ctx context.Context, svc *app.Service, userID string, amount int, bundle *reward.Bundle) error {
	report, err := svc.AwardXP(ctx, userID, amount)
	if err != nil {
		return err
	}
	if report.XPAwarded <= 0 {
		return nil
	}
	entry, err := reward.NewEntry(reward.KindXP, report.XPAwarded, "")
	if err != nil {
		return err
	}
	bundle.Add(entry)
	return nil
}

// awardTitle grants a title and records it in the bundle only when newly
// earned. Repeat awards stay silent.
func awardTitle(ctx context.Context, svc *app.Service, userID, title string, bundle *reward.Bundle) error {
	first, err := svc.AwardTitle(ctx, userID, title)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}
	entry, err := reward.NewEntry(reward.KindTitle, 1, title)
	if err != nil {
		return err
	}
	bundle.Add(entry)
	return nil
}
