// Package app wires the encounter engine, progression, and inventory onto
// the storage layer. Service is the single entry point callers use;
// transports and CLIs stay thin over it.
package app

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/thornvale/emberwood/internal/engine"
	"github.com/thornvale/emberwood/internal/progression"
	"github.com/thornvale/emberwood/internal/random"
	"github.com/thornvale/emberwood/internal/storage"
)

// Service coordinates every game operation over one storage handle. Write
// paths for a given player are serialized with a per-player lock so
// read-modify-write cycles never interleave.
type Service struct {
	store     storage.Store
	templates *engine.Registry
	handlers  *engine.HandlerRegistry
	engine    *engine.Engine
	schedule  progression.Schedule
	clock     func() time.Time
	tracer    trace.Tracer
	logf      func(format string, args ...any)

	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	engineOpts []engine.Option
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Tests inject fixed clocks.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithSchedule overrides the game level schedule.
func WithSchedule(schedule progression.Schedule) Option {
	return func(s *Service) { s.schedule = schedule }
}

// WithRand overrides the random source used for loot rolls and encounter
// picks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithFailSafeEngine makes dynamic action failures complete the encounter
// instead of surfacing to the caller.
func WithFailSafeEngine() Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, engine.WithFailSafe())
	}
}

// WithLogf overrides the logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Service) {
		s.logf = logf
		s.engineOpts = append(s.engineOpts, engine.WithLogf(logf))
	}
}

// New builds a Service over the given store. Feature sets and handlers are
// registered afterwards via RegisterFeatureSet and RegisterHandler, then
// sealed with Freeze before serving.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		templates: engine.NewRegistry(),
		handlers:  engine.NewHandlerRegistry(),
		schedule:  progression.DefaultSchedule,
		clock:     time.Now,
		tracer:    otel.Tracer("emberwood/app"),
		logf:      log.Printf,
		locks:     make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = s.clock().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	s.engine = engine.New(s.templates, s.handlers, s.engineOpts...)
	return s
}

// RegisterFeatureSet adds a feature set's templates to the engine.
func (s *Service) RegisterFeatureSet(set engine.FeatureSet) error {
	return s.templates.Register(set)
}

// RegisterHandler binds a dynamic action handler.
func (s *Service) RegisterHandler(templateID engine.TemplateID, actionID engine.ActionID, fn engine.HandlerFunc) error {
	return s.handlers.Register(templateID, actionID, fn)
}

// Freeze seals both registries. Call once after all registration.
func (s *Service) Freeze() {
	s.templates.Freeze()
	s.handlers.Freeze()
}

// TemplateKeys lists every registered template id in registration order.
func (s *Service) TemplateKeys() []string {
	return s.templates.Keys()
}

// HandlerKeys lists every registered handler key in registration order.
func (s *Service) HandlerKeys() []string {
	return s.handlers.Keys()
}

// FeatureStarts lists the start template of every feature set that declared
// one, in registration order. Callers diff snapshots of this list to learn
// which starts a later registration phase contributed.
func (s *Service) FeatureStarts() []engine.TemplateID {
	return s.templates.Starts()
}

// lockPlayer serializes writes for one player. The returned func releases
// the lock.
func (s *Service) lockPlayer(userID string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// Roll returns a float in [0, 1). Feature handlers use it for chance
// checks so tests can seed outcomes through WithRand.
func (s *Service) Roll() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

// RollIntn returns an int in [0, n).
func (s *Service) RollIntn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// withRNG runs fn with the shared random source held.
func (s *Service) withRNG(fn func(rng *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}

// GameLevel returns the current world level, creating or advancing the
// persisted state lazily.
func (s *Service) GameLevel(ctx context.Context) (int, error) {
	g, err := s.gameLevelState(ctx)
	if err != nil {
		return 0, err
	}
	return g.Level, nil
}

func (s *Service) gameLevelState(ctx context.Context) (progression.GameLevel, error) {
	now := s.clock()
	g, err := s.store.GetGameLevel(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		g = s.schedule.Initial(now)
		if putErr := s.store.PutGameLevel(ctx, g); putErr != nil {
			return progression.GameLevel{}, putErr
		}
		return g, nil
	}
	if err != nil {
		return progression.GameLevel{}, err
	}
	advanced := s.schedule.Advance(g, now)
	if advanced != g {
		if err := s.store.PutGameLevel(ctx, advanced); err != nil {
			return progression.GameLevel{}, err
		}
	}
	return advanced, nil
}
