package event

import (
	"log/slog"
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// Registry holds the registered event modules, decides which activate
// for a game, and fans runtime hooks out to them. It implements
// game.EventHooks so the state can notify events of deaths without
// knowing any concrete event type.
type Registry struct {
	registered []Event
	active     []Event
	rng        *rand.Rand
	logger     *slog.Logger
}

// NewRegistry creates a registry with the full event set registered in
// the canonical setup order. The order is load-bearing: event setups
// claim players from a shared pool, so changing it changes who each
// event can pick under a fixed seed.
func NewRegistry(rng *rand.Rand, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{rng: rng, logger: logger}
	r.registered = []Event{
		NewZombieEvent(rng),
		NewGhostEvent(rng),
		NewSleepwalkerEvent(),
		NewInsomniacEvent(rng),
		NewGunNutEvent(rng),
		NewSuicidalEvent(rng),
		NewDrunkEvent(rng),
		NewJesterEvent(),
		NewPriestEvent(),
		NewLoversEvent(rng),
		NewBodyguardEvent(),
	}
	return r
}

// Names returns every registered event name in setup order
func (r *Registry) Names() []string {
	names := make([]string, len(r.registered))
	for i, ev := range r.registered {
		names[i] = ev.Name()
	}
	return names
}

// Activate decides which events run this game and runs their setups in
// registration order against a single shared eligibility pool. Forced
// events always activate; the rest roll their own probability.
func (r *Registry) Activate(st *game.State, forced map[string]bool) error {
	pool := NewEligibility(r.rng)
	for _, ev := range r.registered {
		on := forced[ev.Name()]
		if !on {
			on = r.rng.Float64() < ev.Probability()
		}
		if !on {
			continue
		}
		if err := ev.Setup(st, pool); err != nil {
			return err
		}
		r.active = append(r.active, ev)
		r.logger.Info("event active", "event", ev.Name())
	}
	return nil
}

// Active returns the active events in setup order
func (r *Registry) Active() []Event {
	return r.active
}

// ActiveNames returns the names of the active events
func (r *Registry) ActiveNames() []string {
	names := make([]string, len(r.active))
	for i, ev := range r.active {
		names[i] = ev.Name()
	}
	return names
}

// OnDeath implements game.EventHooks: every event gets to react to
// every elimination. Runtime hooks consult all registered events, not
// just the activated ones, because their behavior keys off player
// modifiers; the mad scientist can attach an event's modifier in games
// where the event itself never came up.
func (r *Registry) OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect {
	var effects []domain.Effect
	for _, ev := range r.registered {
		if reactor, ok := ev.(DeathReactor); ok {
			effects = append(effects, reactor.OnDeath(st, p, cause)...)
		}
	}
	return effects
}

// OnNightStart notifies events that night has begun
func (r *Registry) OnNightStart(st *game.State) []domain.Effect {
	var effects []domain.Effect
	for _, ev := range r.registered {
		if starter, ok := ev.(NightStarter); ok {
			effects = append(effects, starter.OnNightStart(st)...)
		}
	}
	return effects
}

// OnNightEnd notifies events that night resolution is done
func (r *Registry) OnNightEnd(st *game.State) []domain.Effect {
	var effects []domain.Effect
	for _, ev := range r.registered {
		if ender, ok := ev.(NightEnder); ok {
			effects = append(effects, ender.OnNightEnd(st)...)
		}
	}
	return effects
}

// CheckCounterAttack asks events whether an attack on the target is
// countered.
func (r *Registry) CheckCounterAttack(st *game.State, target *domain.Player) bool {
	for _, ev := range r.registered {
		if c, ok := ev.(CounterAttacker); ok && c.CheckCounterAttack(st, target) {
			return true
		}
	}
	return false
}

// InterceptKill asks events whether something dies in the target's
// place. The first interception wins.
func (r *Registry) InterceptKill(st *game.State, target *domain.Player) ([]domain.Effect, bool) {
	for _, ev := range r.registered {
		if i, ok := ev.(KillInterceptor); ok {
			if effects, intercepted := i.InterceptKill(st, target); intercepted {
				return effects, true
			}
		}
	}
	return nil, false
}

// RedirectVote gives events a chance to rewrite a vote. The first
// redirect wins.
func (r *Registry) RedirectVote(st *game.State, voter *domain.Player, intended string) (string, bool) {
	for _, ev := range r.registered {
		if red, ok := ev.(VoteRedirector); ok {
			if target, redirected := red.RedirectVote(st, voter, intended); redirected {
				return target, true
			}
		}
	}
	return intended, false
}
