package event

import (
	"assassins/internal/domain"
	"assassins/internal/game"
)

// BodyguardEvent gives one villager the power to guard a chosen player
// each night. If the guarded player would be attacked, the bodyguard
// dies in their place and the ability is spent permanently.
type BodyguardEvent struct{}

// NewBodyguardEvent creates the bodyguard event
func NewBodyguardEvent() *BodyguardEvent {
	return &BodyguardEvent{}
}

// Name returns the event name
func (e *BodyguardEvent) Name() string { return "bodyguard" }

// Probability returns the default activation chance
func (e *BodyguardEvent) Probability() float64 { return 0.15 }

// Setup flags one eligible villager and tells them about the gift
func (e *BodyguardEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModBodyguard, "event:bodyguard").
			WithData("active", true).
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(p.Name,
		"You are secretly a Bodyguard. Each night you may choose one player to protect. If they are attacked, you will die in their place. This sacrifice can happen only once.",
		domain.InfoTeamInfo, st.Day)
	return nil
}

// ActiveBodyguard returns the living bodyguard whose ability is unspent
func ActiveBodyguard(st *game.State) (*domain.Player, bool) {
	for _, p := range st.AlivePlayers() {
		if m, ok := p.GetModifier(domain.ModBodyguard); ok && m.DataBool("active") {
			return p, true
		}
	}
	return nil, false
}

// SetGuardTarget records tonight's protection target
func SetGuardTarget(bodyguard *domain.Player, target string) {
	if m, ok := bodyguard.GetModifier(domain.ModBodyguard); ok {
		m.Data["guarding"] = target
	}
}

// InterceptKill takes the death in the guarded target's place. The
// returned effects retire the ability and eliminate the bodyguard.
func (e *BodyguardEvent) InterceptKill(st *game.State, target *domain.Player) ([]domain.Effect, bool) {
	bodyguard, ok := ActiveBodyguard(st)
	if !ok || bodyguard.Name == target.Name {
		return nil, false
	}
	m, _ := bodyguard.GetModifier(domain.ModBodyguard)
	if m.DataString("guarding") != target.Name {
		return nil, false
	}
	return []domain.Effect{
		domain.RemoveModifierEffect(bodyguard.Name, domain.ModBodyguard, "event:bodyguard"),
		{
			Type:   domain.EffectBodyguardSacrifice,
			Target: domain.GameTarget,
			Source: "event:bodyguard",
			Data:   map[string]any{"player": bodyguard.Name, "protected": target.Name},
		},
	}, true
}
