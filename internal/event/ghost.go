package event

import (
	"math/rand"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// GhostChance is the independent per-death chance of becoming a ghost
const GhostChance = 0.10

// GhostEvent lets the dead linger. Every elimination rolls an
// independent 10% chance for the dead player to become a ghost who
// haunts one living player; the haunted player's public statements
// draw eerie asides everyone can hear.
type GhostEvent struct {
	rng    *rand.Rand
	active bool
}

// NewGhostEvent creates the ghost event
func NewGhostEvent(rng *rand.Rand) *GhostEvent {
	return &GhostEvent{rng: rng}
}

// Name returns the event name
func (e *GhostEvent) Name() string { return "ghost" }

// Probability returns the default activation chance
func (e *GhostEvent) Probability() float64 { return 0.20 }

// Setup claims nobody; ghosts are made by dying. Unlike the
// modifier-gated events, the death roll only happens in games where
// this event came up, so setup records that it did.
func (e *GhostEvent) Setup(st *game.State, pool *Eligibility) error {
	e.active = true
	return nil
}

// OnDeath rolls the ghost chance. The haunt target is left empty: the
// orchestrator asks the dead player to choose before the next day.
func (e *GhostEvent) OnDeath(st *game.State, p *domain.Player, cause string) []domain.Effect {
	if !e.active || e.rng.Float64() >= GhostChance {
		return nil
	}
	return []domain.Effect{{
		Type:   domain.EffectBecomeGhost,
		Target: domain.GameTarget,
		Source: "event:ghost",
		Data:   map[string]any{"player": p.Name},
	}}
}

// HauntedBy returns the ghost haunting the given player, if any
func HauntedBy(st *game.State, name string) (*domain.Player, bool) {
	for _, p := range st.DeadPlayers() {
		if m, ok := p.GetModifier(domain.ModGhost); ok && m.DataString("target") == name {
			return p, true
		}
	}
	return nil, false
}

// PendingGhosts returns ghosts that have not chosen a haunt target yet
func PendingGhosts(st *game.State) []*domain.Player {
	var out []*domain.Player
	for _, p := range st.DeadPlayers() {
		if m, ok := p.GetModifier(domain.ModGhost); ok && m.DataString("target") == "" {
			out = append(out, p)
		}
	}
	return out
}
