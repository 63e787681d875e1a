// Package scripting loads encounter feature sets written in Lua. A script
// builds one feature with Feature.new, fills it with template declarations,
// and returns it; action handlers declared as Lua functions run through the
// same dynamic-handler path as Go handlers, with award_xp, award_title and
// roll bound on the context they receive.
package scripting

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/thornvale/emberwood/internal/app"
	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/reward"
)

const (
	featureTypeName = "feature"
	contextTypeName = "encounter_context"

	handlerKeyPrefix = "emberwood.handler."
)

// Loader owns a single Lua state and registers everything it loads onto one
// service. The state is not safe for concurrent use, so both loading and
// handler invocation serialize on the loader mutex.
type Loader struct {
	mu    sync.Mutex
	state *lua.State
	svc   *app.Service
}

type featureBuilder struct {
	name      string
	start     engine.TemplateID
	templates []engine.Template
	handlers  []scriptHandler
}

type scriptHandler struct {
	templateID engine.TemplateID
	actionID   engine.ActionID
	key        string
}

type encounterContext struct {
	ctx     context.Context
	svc     *app.Service
	userID  string
	rewards *reward.Bundle
}

// NewLoader builds a loader bound to the given service.
func NewLoader(svc *app.Service) *Loader {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerFeatureType(state)
	registerContextType(state)
	registerFeatureConstructor(state)

	return &Loader{state: state, svc: svc}
}

// LoadFile runs a script and registers the feature set it returns. The
// script must end with `return f` where f came from Feature.new; the file
// name (without extension) backfills an empty feature name.
func (l *Loader) LoadFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	state := l.state
	base := state.Top()
	defer state.SetTop(base)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return fmt.Errorf("script %s must return a Feature", filepath.Base(path))
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	fb, ok := ud.(*featureBuilder)
	if !ok || fb == nil {
		return fmt.Errorf("script %s returned an invalid Feature", filepath.Base(path))
	}
	if strings.TrimSpace(fb.name) == "" {
		fb.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	set := engine.FeatureSet{
		Name:      fb.name,
		Start:     fb.start,
		Templates: fb.templates,
	}
	if err := l.svc.RegisterFeatureSet(set); err != nil {
		return fmt.Errorf("register feature %s: %w", fb.name, err)
	}
	for _, h := range fb.handlers {
		if err := l.svc.RegisterHandler(h.templateID, h.actionID, l.invoke(h.key)); err != nil {
			return fmt.Errorf("register handler %s: %w", h.key, err)
		}
	}
	return nil
}

// LoadDir loads every *.lua file in dir in lexical order.
func (l *Loader) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("scan scripts: %w", err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := l.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// invoke wraps a Lua handler stored in the registry table as an engine
// handler. The handler receives an encounter context and returns the next
// template id as a string, or nil to complete the encounter.
func (l *Loader) invoke(key string) engine.HandlerFunc {
	return func(ctx context.Context, userID string) (engine.Result, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		state := l.state
		base := state.Top()
		defer state.SetTop(base)

		state.Field(lua.RegistryIndex, key)
		if state.TypeOf(-1) != lua.TypeFunction {
			state.Pop(1)
			return engine.Result{}, fmt.Errorf("script handler %s is missing", strings.TrimPrefix(key, handlerKeyPrefix))
		}

		ec := &encounterContext{ctx: ctx, svc: l.svc, userID: userID, rewards: &reward.Bundle{}}
		state.PushUserData(ec)
		lua.SetMetaTableNamed(state, contextTypeName)

		if err := state.ProtectedCall(1, 1, 0); err != nil {
			return engine.Result{}, fmt.Errorf("script handler %s: %w", strings.TrimPrefix(key, handlerKeyPrefix), err)
		}

		result := engine.Result{}
		switch state.TypeOf(-1) {
		case lua.TypeString:
			next, _ := state.ToString(-1)
			result.Next = engine.TemplateID(next)
		case lua.TypeNil, lua.TypeNone:
			result.Complete = true
		default:
			state.Pop(1)
			return engine.Result{}, fmt.Errorf("script handler %s must return a template id or nil", strings.TrimPrefix(key, handlerKeyPrefix))
		}
		state.Pop(1)

		if !ec.rewards.Empty() {
			result.Rewards = ec.rewards
		}
		return result, nil
	}
}

func registerFeatureType(state *lua.State) {
	lua.NewMetaTable(state, featureTypeName)
	state.NewTable()
	lua.SetFunctions(state, featureMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerContextType(state *lua.State) {
	lua.NewMetaTable(state, contextTypeName)
	state.NewTable()
	lua.SetFunctions(state, contextMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerFeatureConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, featureConstructor, 0)
	state.SetGlobal("Feature")
}

var featureConstructor = []lua.RegistryFunction{
	{Name: "new", Function: featureNew},
}

var featureMethods = []lua.RegistryFunction{
	{Name: "template", Function: featureTemplate},
}

var contextMethods = []lua.RegistryFunction{
	{Name: "award_xp", Function: contextAwardXP},
	{Name: "award_title", Function: contextAwardTitle},
	{Name: "roll", Function: contextRoll},
}

func featureNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	start := lua.OptString(state, 2, "")
	fb := &featureBuilder{name: name, start: engine.TemplateID(start)}
	state.PushUserData(fb)
	lua.SetMetaTableNamed(state, featureTypeName)
	return 1
}

// featureTemplate parses a template declaration table:
//
//	f:template{
//	  id = "GATE_ENCOUNTER",
//	  content = { title = "...", description = "..." },
//	  actions = {
//	    { id = "push", label = "Push through", next = "GATE_OPEN" },
//	    { id = "force", label = "Force it", handler = function(ctx) ... end },
//	    { id = "leave", label = "Turn back" },
//	  },
//	}
//
// An action with a handler function routes dynamically; one with a next id
// routes statically; one with neither completes the encounter. Templates
// without actions are terminal.
func featureTemplate(state *lua.State) int {
	fb := checkFeature(state)
	lua.CheckType(state, 2, lua.TypeTable)

	id := stringField(state, 2, "id")
	if id == "" {
		lua.Errorf(state, "template requires an id")
		return 0
	}
	tid := engine.TemplateID(id)

	state.Field(2, "content")
	content := luaToGo(state, -1)
	state.Pop(1)

	tpl := engine.Template{ID: tid, Content: engine.StaticContent(content)}

	state.Field(2, "actions")
	if state.TypeOf(-1) == lua.TypeTable {
		actionsIdx := state.AbsIndex(-1)
		for i := 1; ; i++ {
			state.RawGetInt(actionsIdx, i)
			if state.TypeOf(-1) != lua.TypeTable {
				state.Pop(1)
				break
			}
			action, err := parseAction(state, fb, tid)
			state.Pop(1)
			if err != nil {
				lua.Errorf(state, "template %s: %s", id, err.Error())
				return 0
			}
			tpl.Actions = append(tpl.Actions, action)
		}
	}
	state.Pop(1)

	fb.templates = append(fb.templates, tpl)
	return 0
}

// parseAction reads one action table sitting on top of the stack. Handler
// functions are moved into the Lua registry so they survive past the
// declaration call.
func parseAction(state *lua.State, fb *featureBuilder, tid engine.TemplateID) (engine.Action, error) {
	idx := state.AbsIndex(-1)

	id := stringField(state, idx, "id")
	if id == "" {
		return engine.Action{}, fmt.Errorf("action requires an id")
	}
	aid := engine.ActionID(id)
	label := stringField(state, idx, "label")

	state.Field(idx, "handler")
	if state.TypeOf(-1) == lua.TypeFunction {
		key := handlerKeyPrefix + engine.HandlerKey(tid, aid)
		state.SetField(lua.RegistryIndex, key)
		fb.handlers = append(fb.handlers, scriptHandler{templateID: tid, actionID: aid, key: key})
		return engine.Action{ID: aid, Label: label, Target: engine.Dynamic()}, nil
	}
	state.Pop(1)

	if next := stringField(state, idx, "next"); next != "" {
		return engine.Action{ID: aid, Label: label, Target: engine.RouteTo(engine.TemplateID(next))}, nil
	}
	return engine.Action{ID: aid, Label: label, Target: engine.Complete()}, nil
}

func contextAwardXP(state *lua.State) int {
	ec := checkContext(state)
	amount := lua.CheckInteger(state, 2)

	report, err := ec.svc.AwardXP(ec.ctx, ec.userID, amount)
	if err != nil {
		lua.Errorf(state, "award_xp: %s", err.Error())
		return 0
	}
	if report.XPAwarded > 0 {
		entry, err := reward.NewEntry(reward.KindXP, report.XPAwarded, "")
		if err != nil {
			lua.Errorf(state, "award_xp: %s", err.Error())
			return 0
		}
		ec.rewards.Add(entry)
	}
	state.PushInteger(report.XPAwarded)
	return 1
}

func contextAwardTitle(state *lua.State) int {
	ec := checkContext(state)
	title := lua.CheckString(state, 2)

	first, err := ec.svc.AwardTitle(ec.ctx, ec.userID, title)
	if err != nil {
		lua.Errorf(state, "award_title: %s", err.Error())
		return 0
	}
	if first {
		entry, err := reward.NewEntry(reward.KindTitle, 1, title)
		if err != nil {
			lua.Errorf(state, "award_title: %s", err.Error())
			return 0
		}
		ec.rewards.Add(entry)
	}
	state.PushBoolean(first)
	return 1
}

func contextRoll(state *lua.State) int {
	ec := checkContext(state)
	state.PushNumber(ec.svc.Roll())
	return 1
}

func checkFeature(state *lua.State) *featureBuilder {
	ud := lua.CheckUserData(state, 1, featureTypeName)
	if fb, ok := ud.(*featureBuilder); ok && fb != nil {
		return fb
	}
	lua.ArgumentError(state, 1, "feature expected")
	return nil
}

func checkContext(state *lua.State) *encounterContext {
	ud := lua.CheckUserData(state, 1, contextTypeName)
	if ec, ok := ud.(*encounterContext); ok && ec != nil {
		return ec
	}
	lua.ArgumentError(state, 1, "encounter context expected")
	return nil
}

func stringField(state *lua.State, index int, name string) string {
	state.Field(index, name)
	defer state.Pop(1)
	if state.TypeOf(-1) != lua.TypeString {
		return ""
	}
	value, _ := state.ToString(-1)
	return value
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	output := map[string]any{}
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func normalizeNumber(value float64) any {
	if value == float64(int(value)) {
		return int(value)
	}
	return value
}
