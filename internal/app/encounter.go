package app

import (
	"context"

	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/platform/errors"
)

// ExecuteTemplate resolves a template view for userID. Read-only.
func (s *Service) ExecuteTemplate(ctx context.Context, templateID engine.TemplateID, userID string) (engine.View, error) {
	ctx, span := s.tracer.Start(ctx, "app.ExecuteTemplate")
	defer span.End()

	return s.engine.ExecuteTemplate(ctx, templateID, userID)
}

// ExecuteAction performs an encounter action for userID. Handlers acquire
// the player lock themselves per mutation, so a single action may commit
// several small writes rather than one large one.
func (s *Service) ExecuteAction(ctx context.Context, templateID engine.TemplateID, actionID engine.ActionID, userID string) (engine.Result, error) {
	ctx, span := s.tracer.Start(ctx, "app.ExecuteAction")
	defer span.End()

	return s.engine.ExecuteAction(ctx, templateID, actionID, userID)
}

// ResolveContent evaluates template content for userID outside of template
// execution.
func (s *Service) ResolveContent(ctx context.Context, c engine.Content, userID string) (any, error) {
	return s.engine.ResolveContent(ctx, c, userID)
}

// StartRandomEncounter picks uniformly from pool and resolves the chosen
// start template for userID. Callers supply the pool so features can keep
// command-only encounters out of the draw.
func (s *Service) StartRandomEncounter(ctx context.Context, userID string, pool []engine.TemplateID) (engine.View, error) {
	ctx, span := s.tracer.Start(ctx, "app.StartRandomEncounter")
	defer span.End()

	if len(pool) == 0 {
		return engine.View{}, errors.New(errors.CodeTemplateNotFound, "no encounters available")
	}
	start := pool[s.RollIntn(len(pool))]
	return s.engine.ExecuteTemplate(ctx, start, userID)
}
