package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// Event is an optional rule module layered onto the base game. Setup
// runs once at game start, after activation, drawing from the shared
// eligibility pool so no two events claim the same player.
type Event interface {
	Name() string
	Probability() float64
	Setup(st *game.State, pool *Eligibility) error
}

// DeathReactor is implemented by events that react to any elimination
type DeathReactor interface {
	OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect
}

// NightStarter is implemented by events that act when night begins,
// before role actions.
type NightStarter interface {
	OnNightStart(st *game.State) []domain.Effect
}

// NightEnder is implemented by events that act when night ends, after
// role-action resolution.
type NightEnder interface {
	OnNightEnd(st *game.State) []domain.Effect
}

// CounterAttacker is implemented by events that can preempt an attack
// on a target. A true result means the target survives and the caller
// must resolve the attacker's fate.
type CounterAttacker interface {
	CheckCounterAttack(st *game.State, target *domain.Player) bool
}

// KillInterceptor is implemented by events that can take a death in a
// target's place during night resolution. Returned effects replace the
// original kill.
type KillInterceptor interface {
	InterceptKill(st *game.State, target *domain.Player) ([]domain.Effect, bool)
}

// VoteRedirector is implemented by events that can rewrite a vote
// before it is tallied.
type VoteRedirector interface {
	RedirectVote(st *game.State, voter *domain.Player, intended string) (string, bool)
}

// Eligibility is the shared claimed-player set used during event
// setup. Events run their setups in a fixed order and each claim
// removes the player from every later event's pool.
type Eligibility struct {
	claimed map[string]bool
	rng     *rand.Rand
}

// NewEligibility creates an empty eligibility pool
func NewEligibility(rng *rand.Rand) *Eligibility {
	return &Eligibility{claimed: make(map[string]bool), rng: rng}
}

// Claimed reports whether a player has already been claimed
func (e *Eligibility) Claimed(name string) bool {
	return e.claimed[name]
}

// Claim marks a player as taken
func (e *Eligibility) Claim(name string) {
	e.claimed[name] = true
}

// ClaimRandom picks and claims a uniformly random unclaimed player
// from the candidates. Returns false if every candidate is claimed.
func (e *Eligibility) ClaimRandom(candidates []*domain.Player) (*domain.Player, bool) {
	var open []*domain.Player
	for _, p := range candidates {
		if !e.claimed[p.Name] {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return nil, false
	}
	pick := open[e.rng.Intn(len(open))]
	e.claimed[pick.Name] = true
	return pick, true
}

// plainVillagers returns living village-team players whose role has no
// night action of its own. These are the candidates most events draw
// from so special roles keep their hands free.
func plainVillagers(st *game.State) []*domain.Player {
	var out []*domain.Player
	for _, p := range st.AlivePlayers() {
		info, ok := domain.GetRoleInfo(p.Role)
		if !ok {
			continue
		}
		if info.Team == domain.TeamVillage && !info.NightAction {
			out = append(out, p)
		}
	}
	return out
}
