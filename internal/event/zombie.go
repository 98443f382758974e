package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// ZombieEvent seeds one villager with a latent infection. An infected
// player who dies is queued to rise, and rises at the next night-start
// as an active zombie that hunts during night resolution, infecting
// its victims and chaining the outbreak.
type ZombieEvent struct {
	rng *rand.Rand
}

// NewZombieEvent creates the zombie event
func NewZombieEvent(rng *rand.Rand) *ZombieEvent {
	return &ZombieEvent{rng: rng}
}

// Name returns the event name
func (e *ZombieEvent) Name() string { return "zombie" }

// Probability returns the default activation chance
func (e *ZombieEvent) Probability() float64 { return 0.15 }

// Setup infects one eligible villager. The patient zero is not told;
// they play as a normal villager until they die.
func (e *ZombieEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModInfected, "event:zombie").
			WithAppliedOn(st.Day),
	)
	st.Log.Debug("patient zero infected", "player", p.Name)
	return nil
}

// OnDeath queues an infected player to rise. The pending flag is what
// guarantees the rise happens exactly once: rising consumes it.
func (e *ZombieEvent) OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect {
	if !p.HasModifier(domain.ModInfected, st.Day) {
		return nil
	}
	if p.HasModifier(domain.ModZombie, st.Day) || p.HasModifier(domain.ModPendingRise, st.Day) {
		return nil
	}
	return []domain.Effect{
		domain.AddModifierEffect(p.Name,
			domain.NewModifier(domain.ModPendingRise, "event:zombie").
				WithAppliedOn(st.Day),
			"event:zombie"),
	}
}

// OnNightStart finalizes pending rises into active zombies
func (e *ZombieEvent) OnNightStart(st *game.State) []domain.Effect {
	var effects []domain.Effect
	for _, p := range st.DeadPlayers() {
		if !p.HasModifier(domain.ModPendingRise, st.Day) {
			continue
		}
		effects = append(effects,
			domain.RemoveModifierEffect(p.Name, domain.ModPendingRise, "event:zombie"),
			domain.AddModifierEffect(p.Name,
				domain.NewModifier(domain.ModZombie, "event:zombie").
					WithAppliedOn(st.Day),
				"event:zombie"),
		)
		st.Log.Info("zombie risen", "player", p.Name, "day", st.Day)
	}
	return effects
}

// ActiveZombies returns the players currently hunting. Zombies stay
// dead for every other purpose; only the zombie modifier marks them as
// active.
func ActiveZombies(st *game.State) []*domain.Player {
	var out []*domain.Player
	for _, p := range st.DeadPlayers() {
		if p.HasModifier(domain.ModZombie, st.Day) {
			out = append(out, p)
		}
	}
	return out
}

// ZombieVictims returns the players a zombie may hunt: alive and not
// themselves part of the outbreak.
func ZombieVictims(st *game.State) []*domain.Player {
	var out []*domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModZombie, st.Day) || p.HasModifier(domain.ModInfected, st.Day) {
			continue
		}
		out = append(out, p)
	}
	return out
}
