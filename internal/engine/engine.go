package engine

import (
	"context"
	"log"
)

// Engine executes encounter templates and actions against a pair of frozen
// registries. It is stateless: the current template id is the only cursor,
// held by the caller between steps.
type Engine struct {
	templates *Registry
	handlers  *HandlerRegistry
	failSafe  bool
	logf      func(format string, args ...any)
}

// Option configures an Engine.
type Option func(*Engine)

// WithFailSafe makes dynamic action failures complete the encounter instead
// of propagating. A missing handler or a handler error is logged and the
// player sees a clean completion. Without this option such failures are
// returned to the caller.
func WithFailSafe() Option {
	return func(e *Engine) { e.failSafe = true }
}

// WithLogf overrides the logger used in fail-safe mode.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(e *Engine) { e.logf = logf }
}

// New builds an engine over the given registries.
func New(templates *Registry, handlers *HandlerRegistry, opts ...Option) *Engine {
	e := &Engine{
		templates: templates,
		handlers:  handlers,
		logf:      log.Printf,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ActionView is the presentation-ready shape of an action: id and label
// only, with the routing target kept internal.
type ActionView struct {
	ID    ActionID
	Label string
}

// View is a resolved template ready for display: per-player content plus
// the ordered actions the player may take.
type View struct {
	TemplateID TemplateID
	Content    any
	Actions    []ActionView
	Terminal   bool
}

// ExecuteTemplate resolves a template for display to userID. It performs no
// side effects; dynamic content resolvers are expected to be read-only.
func (e *Engine) ExecuteTemplate(ctx context.Context, templateID TemplateID, userID string) (View, error) {
	tpl, err := e.templates.Lookup(templateID)
	if err != nil {
		return View{}, err
	}
	content, err := tpl.Content.Resolve(ctx, userID)
	if err != nil {
		return View{}, err
	}
	actions := make([]ActionView, len(tpl.Actions))
	for i, a := range tpl.Actions {
		actions[i] = ActionView{ID: a.ID, Label: a.Label}
	}
	return View{
		TemplateID: tpl.ID,
		Content:    content,
		Actions:    actions,
		Terminal:   tpl.Terminal(),
	}, nil
}

// ExecuteAction performs the named action for userID and returns the
// resulting transition. Static targets route without side effects; dynamic
// targets invoke the registered handler, which may award rewards.
func (e *Engine) ExecuteAction(ctx context.Context, templateID TemplateID, actionID ActionID, userID string) (Result, error) {
	action, err := e.templates.LookupAction(templateID, actionID)
	if err != nil {
		return Result{}, err
	}

	switch action.Target.Kind() {
	case TargetStatic:
		next := action.Target.TemplateID()
		if _, err := e.templates.Lookup(next); err != nil {
			return Result{}, err
		}
		return Result{Next: next}, nil

	case TargetComplete:
		return Result{Complete: true}, nil

	default:
		return e.executeDynamic(ctx, templateID, actionID, userID)
	}
}

func (e *Engine) executeDynamic(ctx context.Context, templateID TemplateID, actionID ActionID, userID string) (Result, error) {
	fn, err := e.handlers.Get(templateID, actionID)
	if err != nil {
		return e.recover(templateID, actionID, err)
	}
	res, err := fn(ctx, userID)
	if err != nil {
		return e.recover(templateID, actionID, err)
	}
	if res.Next == "" {
		res.Complete = true
	} else if _, err := e.templates.Lookup(res.Next); err != nil {
		return e.recover(templateID, actionID, err)
	}
	return res, nil
}

// recover applies the fail-safe policy to a dynamic action failure.
func (e *Engine) recover(templateID TemplateID, actionID ActionID, err error) (Result, error) {
	if !e.failSafe {
		return Result{}, err
	}
	e.logf("engine: action %s failed, completing encounter: %v",
		HandlerKey(templateID, actionID), err)
	return Result{Complete: true}, nil
}

// ResolveContent evaluates content for userID outside of template
// execution. Both execution paths and external callers share this logic so
// static and dynamic content behave identically everywhere.
func (e *Engine) ResolveContent(ctx context.Context, c Content, userID string) (any, error) {
	return c.Resolve(ctx, userID)
}
