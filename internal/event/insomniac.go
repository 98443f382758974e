package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// InsomniacEvent keeps one villager awake. Each night they glimpse one
// randomly chosen night mover. The pool deliberately includes dead
// zombies, so the insomniac can report seeing someone the village
// already buried.
type InsomniacEvent struct {
	rng *rand.Rand
}

// NewInsomniacEvent creates the insomniac event
func NewInsomniacEvent(rng *rand.Rand) *InsomniacEvent {
	return &InsomniacEvent{rng: rng}
}

// Name returns the event name
func (e *InsomniacEvent) Name() string { return "insomniac" }

// Probability returns the default activation chance
func (e *InsomniacEvent) Probability() float64 { return 0.25 }

// Setup flags one eligible villager and tells them
func (e *InsomniacEvent) Setup(st *game.State, pool *Eligibility) error {
	p, ok := pool.ClaimRandom(plainVillagers(st))
	if !ok {
		return nil
	}
	p.AddModifier(
		domain.NewModifier(domain.ModInsomniac, "event:insomniac").
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(p.Name,
		"You are secretly an Insomniac. You can't sleep, so each night you catch a glimpse of someone moving around. You never learn what they were doing.",
		domain.InfoTeamInfo, st.Day)
	return nil
}

// movers returns everyone who is up and about at night: living
// assassins, doctor, detective, sleepwalkers, and every zombie dead or
// otherwise. A corpse queued to rise tonight still carries pending_rise
// when the sighting is picked, so first-night zombies count too.
func (e *InsomniacEvent) movers(st *game.State) []*domain.Player {
	var out []*domain.Player
	for _, p := range st.AlivePlayers() {
		switch {
		case p.Role == domain.RoleAssassin,
			p.Role == domain.RoleDoctor,
			p.Role == domain.RoleDetective,
			p.HasModifier(domain.ModSleepwalker, st.Day):
			out = append(out, p)
		}
	}
	for _, name := range st.Order {
		p := st.Players[name]
		if p.HasModifier(domain.ModZombie, st.Day) ||
			p.HasModifier(domain.ModPendingRise, st.Day) {
			out = append(out, p)
		}
	}
	return out
}

// OnNightStart picks tonight's sighting and stashes it for the reveal
func (e *InsomniacEvent) OnNightStart(st *game.State) []domain.Effect {
	for _, p := range st.AlivePlayers() {
		m, ok := p.GetModifier(domain.ModInsomniac)
		if !ok {
			continue
		}
		pool := e.movers(st)
		// The insomniac never sights themselves.
		filtered := pool[:0]
		for _, mover := range pool {
			if mover.Name != p.Name {
				filtered = append(filtered, mover)
			}
		}
		if len(filtered) == 0 {
			delete(m.Data, "sighting")
			continue
		}
		m.Data["sighting"] = filtered[e.rng.Intn(len(filtered))].Name
	}
	return nil
}

// OnNightEnd reveals the stashed sighting to the insomniac
func (e *InsomniacEvent) OnNightEnd(st *game.State) []domain.Effect {
	for _, p := range st.AlivePlayers() {
		m, ok := p.GetModifier(domain.ModInsomniac)
		if !ok {
			continue
		}
		sighting := m.DataString("sighting")
		if sighting == "" {
			continue
		}
		st.Info.RevealToPlayer(p.Name,
			"Unable to sleep, you saw "+sighting+" moving around in the dark last night.",
			domain.InfoNightResult, st.Day)
		delete(m.Data, "sighting")
	}
	return nil
}
