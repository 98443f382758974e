package event

import (
	"assassins/internal/domain"
	"assassins/internal/game"
)

// PriestEvent grants one villager a single resurrection: once per
// game, during a day phase, they may bring one dead player back. The
// charge is spent on first use.
type PriestEvent struct{}

// NewPriestEvent creates the priest event
func NewPriestEvent() *PriestEvent {
	return &PriestEvent{}
}

// Name returns the event name
func (e *PriestEvent) Name() string { return "priest" }

// Probability returns the default activation chance
func (e *PriestEvent) Probability() float64 { return 0.15 }

// Setup blesses one eligible villager with a resurrection charge
func (e *PriestEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModPriest, "event:priest").
			WithData("charges", 1).
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(p.Name,
		"You are secretly a Priest. ONCE per game, during the day, you may resurrect one dead player. Choose the moment carefully; there is no second miracle.",
		domain.InfoTeamInfo, st.Day)
	return nil
}

// PriestWithCharge returns the living priest who still holds a charge
func PriestWithCharge(st *game.State) (*domain.Player, bool) {
	for _, p := range st.AlivePlayers() {
		if m, ok := p.GetModifier(domain.ModPriest); ok && m.DataInt("charges") > 0 {
			return p, true
		}
	}
	return nil, false
}

// SpendCharge consumes the priest's resurrection charge
func SpendCharge(priest *domain.Player) {
	if m, ok := priest.GetModifier(domain.ModPriest); ok {
		m.Data["charges"] = 0
	}
}
