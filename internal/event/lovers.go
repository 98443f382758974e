package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// LoversEvent links two players across any roles. When one dies, the
// other dies of heartbreak on the following night, one full night
// after the trigger, as a normal elimination with its own public
// cause.
type LoversEvent struct {
	rng *rand.Rand
}

// NewLoversEvent creates the lovers event
func NewLoversEvent(rng *rand.Rand) *LoversEvent {
	return &LoversEvent{rng: rng}
}

// Name returns the event name
func (e *LoversEvent) Name() string { return "lovers" }

// Probability returns the default activation chance
func (e *LoversEvent) Probability() float64 { return 0.20 }

// Setup links two unclaimed players, role regardless, and tells each
// about the other.
func (e *LoversEvent) Setup(st *game.State, pool *Eligibility) error {
	first, ok := pool.ClaimRandom(st.AlivePlayers())
	if !ok {
		return nil
	}
	second, ok := pool.ClaimRandom(st.AlivePlayers())
	if !ok {
		return nil
	}

	first.AddModifier(
		domain.NewModifier(domain.ModLover, "event:lovers").
			WithData("partner", second.Name).
			WithAppliedOn(st.Day),
	)
	second.AddModifier(
		domain.NewModifier(domain.ModLover, "event:lovers").
			WithData("partner", first.Name).
			WithAppliedOn(st.Day),
	)

	st.Info.RevealToPlayer(first.Name,
		"You are secretly in love with "+second.Name+". If they die, you will die of heartbreak soon after. Keep them alive.",
		domain.InfoTeamInfo, st.Day)
	st.Info.RevealToPlayer(second.Name,
		"You are secretly in love with "+first.Name+". If they die, you will die of heartbreak soon after. Keep them alive.",
		domain.InfoTeamInfo, st.Day)
	st.Log.Debug("lovers linked", "first", first.Name, "second", second.Name)
	return nil
}

// OnDeath schedules heartbreak for everyone who loved the dead player.
// Love need not be mutual: a serum-induced crush breaks the same way.
// The pending flag alone does not kill: the next night-start arms it
// and that night's end resolves it, so the survivor always dies on the
// following night whether the loss came at night or on the gallows.
func (e *LoversEvent) OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect {
	for _, mourner := range st.AlivePlayers() {
		m, ok := mourner.GetModifier(domain.ModLover)
		if !ok || m.DataString("partner") != p.Name || m.DataBool("heartbreak_pending") {
			continue
		}
		m.Data["heartbreak_pending"] = true
		st.Log.Debug("heartbreak scheduled", "player", mourner.Name, "lost", p.Name)
	}
	return nil
}

// OnNightStart arms heartbreaks scheduled since the last night. A
// death during this same night comes after this pass, so it stays
// unarmed until the night that follows it.
func (e *LoversEvent) OnNightStart(st *game.State) []domain.Effect {
	for _, p := range st.AlivePlayers() {
		m, ok := p.GetModifier(domain.ModLover)
		if !ok || !m.DataBool("heartbreak_pending") {
			continue
		}
		m.Data["heartbreak_ready"] = true
	}
	return nil
}

// OnNightEnd resolves armed heartbreaks
func (e *LoversEvent) OnNightEnd(st *game.State) []domain.Effect {
	var effects []domain.Effect
	for _, p := range st.AlivePlayers() {
		m, ok := p.GetModifier(domain.ModLover)
		if !ok || !m.DataBool("heartbreak_pending") || !m.DataBool("heartbreak_ready") {
			continue
		}
		effects = append(effects, domain.Effect{
			Type:   domain.EffectHeartbreakDeath,
			Target: domain.GameTarget,
			Source: "event:lovers",
			Data:   map[string]any{"player": p.Name},
		})
	}
	return effects
}
