package engine

import (
	"sync"

	"github.com/thornvale/emberwood/internal/platform/errors"
)

// Registry holds every registered template, keyed by id. Registration is
// fail-fast: a duplicate template id anywhere across feature sets is a
// startup error, never a silent overwrite.
//
// Registries are mutable during startup and frozen before serving. A frozen
// registry rejects further registration, which makes concurrent reads safe
// without locking on the hot path.
type Registry struct {
	mu        sync.Mutex
	frozen    bool
	templates map[TemplateID]Template
	order     []TemplateID
	starts    []TemplateID
}

// NewRegistry returns an empty template registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[TemplateID]Template)}
}

// Register adds every template from the feature set. It fails on the first
// duplicate id, leaving earlier templates from the same set registered; a
// conflict is a programming error that aborts startup, so partial state is
// never observed by a running engine.
func (r *Registry) Register(set FeatureSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.WithMetadata(errors.CodeRegistryFrozen,
			"cannot register feature set after freeze",
			map[string]string{"FeatureSet": set.Name})
	}
	if set.Name == "" {
		return errors.New(errors.CodeFeatureSetInvalid, "feature set name must not be empty")
	}
	if len(set.Templates) == 0 {
		return errors.WithMetadata(errors.CodeFeatureSetInvalid,
			"feature set has no templates",
			map[string]string{"FeatureSet": set.Name})
	}

	for _, tpl := range set.Templates {
		if tpl.ID == "" {
			return errors.WithMetadata(errors.CodeFeatureSetInvalid,
				"template id must not be empty",
				map[string]string{"FeatureSet": set.Name})
		}
		if _, exists := r.templates[tpl.ID]; exists {
			return errors.WithMetadata(errors.CodeTemplateIDConflict,
				"template id already registered",
				map[string]string{"FeatureSet": set.Name, "TemplateID": string(tpl.ID)})
		}
		r.templates[tpl.ID] = tpl
		r.order = append(r.order, tpl.ID)
	}
	if set.Start != "" {
		if _, ok := r.templates[set.Start]; !ok {
			return errors.WithMetadata(errors.CodeFeatureSetInvalid,
				"start template is not part of the feature set",
				map[string]string{"FeatureSet": set.Name, "TemplateID": string(set.Start)})
		}
		r.starts = append(r.starts, set.Start)
	}
	return nil
}

// Freeze seals the registry against further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup returns the template with the given id.
func (r *Registry) Lookup(id TemplateID) (Template, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, errors.WithMetadata(errors.CodeTemplateNotFound,
			"template not found",
			map[string]string{"TemplateID": string(id)})
	}
	return tpl, nil
}

// LookupAction returns the named action on the named template.
func (r *Registry) LookupAction(templateID TemplateID, actionID ActionID) (Action, error) {
	tpl, err := r.Lookup(templateID)
	if err != nil {
		return Action{}, err
	}
	action, ok := tpl.Action(actionID)
	if !ok {
		return Action{}, errors.WithMetadata(errors.CodeActionNotFound,
			"action not found on template",
			map[string]string{"TemplateID": string(templateID), "ActionID": string(actionID)})
	}
	return action, nil
}

// Keys returns every registered template id in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	for i, id := range r.order {
		keys[i] = string(id)
	}
	return keys
}

// Starts returns the start template of every feature set that declared one,
// in registration order.
func (r *Registry) Starts() []TemplateID {
	starts := make([]TemplateID, len(r.starts))
	copy(starts, r.starts)
	return starts
}
