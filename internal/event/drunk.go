package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// DrunkEvent flags one villager whose votes go astray: their real
// choice is silently replaced with a uniformly random living target.
// The intended target is preserved on the vote for auditing but never
// shown to other players. The drunk is not told.
type DrunkEvent struct {
	rng *rand.Rand
}

// NewDrunkEvent creates the drunk event
func NewDrunkEvent(rng *rand.Rand) *DrunkEvent {
	return &DrunkEvent{rng: rng}
}

// Name returns the event name
func (e *DrunkEvent) Name() string { return "drunk" }

// Probability returns the default activation chance
func (e *DrunkEvent) Probability() float64 { return 0.25 }

// Setup flags one eligible villager
func (e *DrunkEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModDrunk, "event:drunk").
			WithAppliedOn(st.Day),
	)
	st.Log.Debug("drunk flagged", "player", p.Name)
	return nil
}

// RedirectVote replaces a drunk voter's choice with a random living
// target. The draw can land on the intended target; that still counts
// as a redirect for auditing.
func (e *DrunkEvent) RedirectVote(st *game.State, voter *domain.Player, intended string) (string, bool) {
	if !voter.HasModifier(domain.ModDrunk, st.Day) {
		return intended, false
	}
	var candidates []string
	for _, p := range st.AlivePlayers() {
		if p.Name != voter.Name {
			candidates = append(candidates, p.Name)
		}
	}
	if len(candidates) == 0 {
		return intended, false
	}
	return candidates[e.rng.Intn(len(candidates))], true
}
