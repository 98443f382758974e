package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// CounterAttackChance is the per-attack chance the gun nut fires back
const CounterAttackChance = 0.50

// GunNutEvent arms one villager. Whenever they are targeted by an
// attack, an independent 50% roll decides whether the attack is turned
// around: the gun nut survives unharmed and an attacker dies instead.
type GunNutEvent struct {
	rng *rand.Rand
}

// NewGunNutEvent creates the gun nut event
func NewGunNutEvent(rng *rand.Rand) *GunNutEvent {
	return &GunNutEvent{rng: rng}
}

// Name returns the event name
func (e *GunNutEvent) Name() string { return "gun_nut" }

// Probability returns the default activation chance
func (e *GunNutEvent) Probability() float64 { return 0.20 }

// Setup arms one eligible villager and tells them
func (e *GunNutEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModGunNut, "event:gun_nut").
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(p.Name,
		"You are secretly a Gun Nut. You sleep with a loaded shotgun. If anyone attacks you at night, you have a good chance of shooting them dead instead.",
		domain.InfoTeamInfo, st.Day)
	return nil
}

// CheckCounterAttack rolls the counter for an attack on the target
func (e *GunNutEvent) CheckCounterAttack(st *game.State, target *domain.Player) bool {
	if !target.HasModifier(domain.ModGunNut, st.Day) {
		return false
	}
	return e.rng.Float64() < CounterAttackChance
}
