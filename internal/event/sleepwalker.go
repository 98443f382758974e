package event

import (
	"assassins/internal/domain"
	"assassins/internal/game"
)

// SleepwalkerEvent makes one villager wander at night. Purely
// cosmetic: the sleepwalker has no mechanical effect beyond appearing
// in the insomniac's sighting pool and waking up confused.
type SleepwalkerEvent struct{}

// NewSleepwalkerEvent creates the sleepwalker event
func NewSleepwalkerEvent() *SleepwalkerEvent {
	return &SleepwalkerEvent{}
}

// Name returns the event name
func (e *SleepwalkerEvent) Name() string { return "sleepwalker" }

// Probability returns the default activation chance
func (e *SleepwalkerEvent) Probability() float64 { return 0.25 }

// Setup flags one eligible villager. They are not told; waking up in
// strange places is how they find out.
func (e *SleepwalkerEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModSleepwalker, "event:sleepwalker").
			WithAppliedOn(st.Day),
	)
	st.Log.Debug("sleepwalker flagged", "player", p.Name)
	return nil
}

// OnNightEnd tells the sleepwalker they wandered
func (e *SleepwalkerEvent) OnNightEnd(st *game.State) []domain.Effect {
	for _, p := range st.AlivePlayers() {
		if !p.HasModifier(domain.ModSleepwalker, st.Day) {
			continue
		}
		st.Info.RevealToPlayer(p.Name,
			"You woke up somewhere you didn't fall asleep, with mud on your feet. You have no memory of the night.",
			domain.InfoNightResult, st.Day)
	}
	return nil
}
