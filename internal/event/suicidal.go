package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// SuicideChance is the independent per-night chance of self-elimination
const SuicideChance = 0.20

// SuicidalEvent burdens one villager. Each night there is an
// independent 20% chance they take their own life; the village only
// ever learns that they were found dead.
type SuicidalEvent struct {
	rng *rand.Rand
}

// NewSuicidalEvent creates the suicidal event
func NewSuicidalEvent(rng *rand.Rand) *SuicidalEvent {
	return &SuicidalEvent{rng: rng}
}

// Name returns the event name
func (e *SuicidalEvent) Name() string { return "suicidal" }

// Probability returns the default activation chance
func (e *SuicidalEvent) Probability() float64 { return 0.10 }

// Setup flags one eligible villager
func (e *SuicidalEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModSuicidal, "event:suicidal").
			WithAppliedOn(st.Day),
	)
	st.Log.Debug("suicidal flagged", "player", p.Name)
	return nil
}

// OnNightEnd rolls each flagged player's chance
func (e *SuicidalEvent) OnNightEnd(st *game.State) []domain.Effect {
	var effects []domain.Effect
	for _, p := range st.AlivePlayers() {
		if !p.HasModifier(domain.ModSuicidal, st.Day) {
			continue
		}
		if e.rng.Float64() >= SuicideChance {
			continue
		}
		effects = append(effects, domain.Effect{
			Type:   domain.EffectSuicideDeath,
			Target: domain.GameTarget,
			Source: "event:suicidal",
			Data:   map[string]any{"player": p.Name},
		})
	}
	return effects
}
