package event

import (
	"assassins/internal/domain"
	"assassins/internal/game"
)

// JesterEvent gives one villager a secret win condition: get yourself
// lynched. A jester lynch ends the game immediately with the jester as
// sole winner; any other death is just a death.
type JesterEvent struct{}

// NewJesterEvent creates the jester event
func NewJesterEvent() *JesterEvent {
	return &JesterEvent{}
}

// Name returns the event name
func (e *JesterEvent) Name() string { return "jester" }

// Probability returns the default activation chance
func (e *JesterEvent) Probability() float64 { return 0.20 }

// Setup flags one eligible villager and tells them their goal
func (e *JesterEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModJester, "event:jester").
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(p.Name,
		"You are secretly the Jester. You win if the village votes to eliminate you. Getting killed at night does NOT count. Act suspicious, but not too suspicious.",
		domain.InfoTeamInfo, st.Day)
	return nil
}

// OnDeath triggers the jester victory on a lynch and nothing else
func (e *JesterEvent) OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect {
	if cause != game.ReasonLynched || !p.HasModifier(domain.ModJester, st.Day) {
		return nil
	}
	return []domain.Effect{{
		Type:   domain.EffectJesterVictory,
		Target: domain.GameTarget,
		Source: "event:jester",
		Data:   map[string]any{"player": p.Name},
	}}
}
