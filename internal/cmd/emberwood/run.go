package emberwood

import (
	"context"
	"log"
	"os"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/features"
	entrypoint "github.com/thornvale/emberwood/internal/platform/cmd"
	"github.com/thornvale/emberwood/internal/scripting"
	"github.com/thornvale/emberwood/internal/storage/sqlite"
)

// Run opens the store, registers the built-in and scripted content, and
// hands control to the interactive loop until ctx is canceled or the player
// quits.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEngine, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		svc := app.New(store, app.WithFailSafeEngine())
		if err := features.RegisterAll(svc); err != nil {
			return err
		}
		var scripted []engine.TemplateID
		if cfg.ScriptsDir != "" {
			builtin := len(svc.FeatureStarts())
			loader := scripting.NewLoader(svc)
			if err := loader.LoadDir(cfg.ScriptsDir); err != nil {
				return err
			}
			// Scripted encounters join the explore pool alongside the
			// built-in ones.
			scripted = svc.FeatureStarts()[builtin:]
		}
		svc.Freeze()

		if _, err := svc.EnsurePlayer(ctx, cfg.UserID, cfg.DisplayName); err != nil {
			return err
		}
		return runLoop(ctx, svc, cfg.UserID, scripted, os.Stdin, os.Stdout)
	})
}
