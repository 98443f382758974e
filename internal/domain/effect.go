package domain

import "fmt"

// EffectType identifies a kind of declarative effect
type EffectType string

// Player-level effects are applied by the effect engine; game-level
// effects are interpreted by the orchestrator.
const (
	EffectAddModifier    EffectType = "add_modifier"
	EffectRemoveModifier EffectType = "remove_modifier"
	EffectKillPlayer     EffectType = "kill_player"
	EffectRevivePlayer   EffectType = "revive_player"
	EffectChangeRole     EffectType = "change_role"
	EffectChangeTeam     EffectType = "change_team"

	EffectJesterVictory      EffectType = "jester_victory"
	EffectHeartbreakDeath    EffectType = "heartbreak_death"
	EffectSuicideDeath       EffectType = "suicide_death"
	EffectBodyguardSacrifice EffectType = "bodyguard_sacrifice"
	EffectBecomeGhost        EffectType = "become_ghost"
)

// GameTarget is the target value for effects aimed at the game itself
const GameTarget = "game"

// Effect is a declarative instruction produced by an event module and
// consumed exactly once by the orchestrator.
type Effect struct {
	Type   EffectType     `json:"type"`
	Target string         `json:"target"`
	Data   map[string]any `json:"data,omitempty"`
	Source string         `json:"source"`
}

// IsGameLevel reports whether the effect must be interpreted by the
// orchestrator rather than the effect engine.
func (e Effect) IsGameLevel() bool {
	switch e.Type {
	case EffectJesterVictory, EffectHeartbreakDeath, EffectSuicideDeath,
		EffectBodyguardSacrifice, EffectBecomeGhost:
		return true
	}
	return e.Target == GameTarget
}

// DataString returns a string value from the effect's data payload
func (e Effect) DataString(key string) string {
	if e.Data == nil {
		return ""
	}
	s, _ := e.Data[key].(string)
	return s
}

// String returns a short description of the effect
func (e Effect) String() string {
	return fmt.Sprintf("Effect(%s on %s from %s)", e.Type, e.Target, e.Source)
}

// AddModifierEffect builds an effect that attaches a modifier
func AddModifierEffect(target string, mod *Modifier, source string) Effect {
	return Effect{
		Type:   EffectAddModifier,
		Target: target,
		Source: source,
		Data: map[string]any{
			"modifier_type": string(mod.Type),
			"modifier_data": mod.Data,
			"expires_on":    mod.ExpiresOn,
			"applied_on":    mod.AppliedOn,
		},
	}
}

// RemoveModifierEffect builds an effect that deactivates a modifier type
func RemoveModifierEffect(target string, t ModifierType, source string) Effect {
	return Effect{
		Type:   EffectRemoveModifier,
		Target: target,
		Source: source,
		Data:   map[string]any{"modifier_type": string(t)},
	}
}

// KillEffect builds an effect that eliminates a player
func KillEffect(target, cause, source string, day int) Effect {
	return Effect{
		Type:   EffectKillPlayer,
		Target: target,
		Source: source,
		Data:   map[string]any{"cause": cause, "day": day},
	}
}

// ReviveEffect builds an effect that brings a player back
func ReviveEffect(target, source string) Effect {
	return Effect{Type: EffectRevivePlayer, Target: target, Source: source}
}
