// Package engine runs branching encounters: templates describe what a player
// sees, actions describe what they can do, and action targets decide where
// the encounter goes next.
package engine

import "context"

// TemplateID identifies an encounter template. IDs are unique across all
// registered feature sets.
type TemplateID string

// ActionID identifies an action within a template.
type ActionID string

// ContentResolver produces template content for a specific player at view
// time.
type ContentResolver func(ctx context.Context, userID string) (any, error)

// Content is either a static value fixed at registration time or a resolver
// evaluated per player. The zero value resolves to nil.
type Content struct {
	value    any
	resolver ContentResolver
}

// StaticContent returns content that resolves to v for every player.
func StaticContent(v any) Content {
	return Content{value: v}
}

// DynamicContent returns content computed by r at view time.
func DynamicContent(r ContentResolver) Content {
	return Content{resolver: r}
}

// Dynamic reports whether the content is resolved per player.
func (c Content) Dynamic() bool {
	return c.resolver != nil
}

// Resolve evaluates the content for userID. Static content never fails.
func (c Content) Resolve(ctx context.Context, userID string) (any, error) {
	if c.resolver != nil {
		return c.resolver(ctx, userID)
	}
	return c.value, nil
}

// TargetKind discriminates the three ways an action can resolve.
type TargetKind int

const (
	// TargetStatic routes directly to a named template.
	TargetStatic TargetKind = iota
	// TargetComplete ends the encounter with no further routing.
	TargetComplete
	// TargetDynamic defers routing to a registered handler.
	TargetDynamic
)

// Target is a tagged union over the three action outcomes. Use RouteTo,
// Complete, or Dynamic to construct one.
type Target struct {
	kind       TargetKind
	templateID TemplateID
}

// RouteTo returns a target that transitions straight to id.
func RouteTo(id TemplateID) Target {
	return Target{kind: TargetStatic, templateID: id}
}

// Complete returns a target that ends the encounter.
func Complete() Target {
	return Target{kind: TargetComplete}
}

// Dynamic returns a target resolved by the handler registered for the
// owning template and action.
func Dynamic() Target {
	return Target{kind: TargetDynamic}
}

// Kind returns the target's discriminant.
func (t Target) Kind() TargetKind { return t.kind }

// TemplateID returns the destination for static targets; empty otherwise.
func (t Target) TemplateID() TemplateID { return t.templateID }

// Action is one choice presented on a template.
type Action struct {
	ID     ActionID
	Label  string
	Target Target
}

// Template is a single encounter screen: content plus an ordered list of
// actions. A template with no actions is terminal.
type Template struct {
	ID      TemplateID
	Content Content
	Actions []Action
}

// Terminal reports whether the template offers no actions, ending the
// encounter as soon as it is displayed.
func (t Template) Terminal() bool {
	return len(t.Actions) == 0
}

// Action returns the action with the given id, preserving declaration order
// for display purposes elsewhere.
func (t Template) Action(id ActionID) (Action, bool) {
	for _, a := range t.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// FeatureSet is a named group of templates registered together. Start names
// the template an encounter from this set begins on; sets that only supply
// shared screens may leave it empty.
type FeatureSet struct {
	Name      string
	Start     TemplateID
	Templates []Template
}
