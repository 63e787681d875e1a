package engine

import (
	"context"
	"sync"

	"github.com/thornvale/emberwood/internal/platform/errors"
	"github.com/thornvale/emberwood/internal/reward"
)

// Result is what a dynamic handler decides: where the encounter goes next
// and what the action paid out. An empty Next with Complete set ends the
// encounter.
type Result struct {
	Next     TemplateID
	Complete bool
	Rewards  *reward.Bundle
}

// HandlerFunc performs an action's side effects and picks the next template.
type HandlerFunc func(ctx context.Context, userID string) (Result, error)

// HandlerKey builds the composite "templateId.actionId" key dynamic handlers
// are registered under.
func HandlerKey(templateID TemplateID, actionID ActionID) string {
	return string(templateID) + "." + string(actionID)
}

// HandlerRegistry maps composite keys to dynamic action handlers. Like the
// template registry it is fail-fast on duplicates and frozen before serving.
type HandlerRegistry struct {
	mu       sync.Mutex
	frozen   bool
	handlers map[string]HandlerFunc
	order    []string
}

// NewHandlerRegistry returns an empty handler registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]HandlerFunc)}
}

// Register binds fn to the action identified by templateID and actionID.
func (r *HandlerRegistry) Register(templateID TemplateID, actionID ActionID, fn HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := HandlerKey(templateID, actionID)
	if r.frozen {
		return errors.WithMetadata(errors.CodeRegistryFrozen,
			"cannot register handler after freeze",
			map[string]string{"HandlerKey": key})
	}
	if fn == nil {
		return errors.WithMetadata(errors.CodeFeatureSetInvalid,
			"handler must not be nil",
			map[string]string{"HandlerKey": key})
	}
	if _, exists := r.handlers[key]; exists {
		return errors.WithMetadata(errors.CodeTemplateIDConflict,
			"handler already registered for action",
			map[string]string{"HandlerKey": key})
	}
	r.handlers[key] = fn
	r.order = append(r.order, key)
	return nil
}

// Freeze seals the registry against further registration.
func (r *HandlerRegistry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Get returns the handler for the action, or an error carrying the missing
// key when none is registered.
func (r *HandlerRegistry) Get(templateID TemplateID, actionID ActionID) (HandlerFunc, error) {
	key := HandlerKey(templateID, actionID)
	fn, ok := r.handlers[key]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeActionHandlerNotFound,
			"no handler registered for action",
			map[string]string{"HandlerKey": key})
	}
	return fn, nil
}

// Has reports whether a handler is registered for the action.
func (r *HandlerRegistry) Has(templateID TemplateID, actionID ActionID) bool {
	_, ok := r.handlers[HandlerKey(templateID, actionID)]
	return ok
}

// Keys returns every registered handler key in registration order.
func (r *HandlerRegistry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}
