package service

import (
	"fmt"
	"log/slog"

	"assassins/internal/domain"
)

// EffectService applies player-level effects to player state. Apply is
// copy-on-write: callers get a new state map and the input is never
// mutated, which keeps effect application trivially testable and lets
// the orchestrator discard a batch on error.
type EffectService struct {
	logger *slog.Logger
}

// NewEffectService creates an effect service
func NewEffectService(logger *slog.Logger) *EffectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EffectService{logger: logger}
}

// Apply applies a single player-level effect and returns the resulting
// state. Game-level effects must not reach this method; the
// orchestrator interprets those itself.
func (s *EffectService) Apply(effect domain.Effect, players map[string]*domain.Player) (map[string]*domain.Player, error) {
	if effect.IsGameLevel() {
		return nil, fmt.Errorf("effect %q targets the game: %w", effect.Type, domain.ErrUnknownEffectType)
	}

	next := make(map[string]*domain.Player, len(players))
	for name, p := range players {
		next[name] = p.Clone()
	}

	target, ok := next[effect.Target]
	if !ok {
		return nil, fmt.Errorf("effect %s: %q: %w", effect.Type, effect.Target, domain.ErrPlayerNotFound)
	}

	switch effect.Type {
	case domain.EffectAddModifier:
		mod, err := modifierFromEffect(effect)
		if err != nil {
			return nil, err
		}
		target.AddModifier(mod)

	case domain.EffectRemoveModifier:
		t := domain.ModifierType(effect.DataString("modifier_type"))
		if t == "" {
			return nil, fmt.Errorf("remove_modifier on %q: missing modifier_type", effect.Target)
		}
		target.RemoveModifier(t)

	case domain.EffectKillPlayer:
		if !target.Alive {
			return nil, fmt.Errorf("kill %q: %w", effect.Target, domain.ErrAlreadyDead)
		}
		target.Alive = false
		cause := effect.DataString("cause")
		day, _ := effect.Data["day"].(int)
		target.AddModifier(
			domain.NewModifier(domain.ModDead, effect.Source).
				WithData("cause", cause).
				WithAppliedOn(day),
		)

	case domain.EffectRevivePlayer:
		if target.Alive {
			return nil, fmt.Errorf("revive %q: %w", effect.Target, domain.ErrNotDead)
		}
		target.Alive = true
		target.RemoveModifier(domain.ModDead)

	case domain.EffectChangeRole:
		role, ok := domain.ParseRole(effect.DataString("role"))
		if !ok {
			return nil, fmt.Errorf("change_role on %q: %q: %w", effect.Target, effect.DataString("role"), domain.ErrUnknownRole)
		}
		target.Role = role
		target.Team = domain.RoleTeam(role)

	case domain.EffectChangeTeam:
		switch effect.DataString("team") {
		case domain.TeamAssassins.String():
			target.Team = domain.TeamAssassins
		case domain.TeamVillage.String():
			target.Team = domain.TeamVillage
		default:
			return nil, fmt.Errorf("change_team on %q: unknown team %q", effect.Target, effect.DataString("team"))
		}

	default:
		return nil, fmt.Errorf("%q: %w", effect.Type, domain.ErrUnknownEffectType)
	}

	s.logger.Debug("effect applied",
		"type", effect.Type,
		"target", effect.Target,
		"source", effect.Source,
	)
	return next, nil
}

// ApplyAll applies effects in order, stopping at the first failure.
// The returned map reflects every effect applied before the failure.
func (s *EffectService) ApplyAll(effects []domain.Effect, players map[string]*domain.Player) (map[string]*domain.Player, error) {
	state := players
	for _, e := range effects {
		next, err := s.Apply(e, state)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

func modifierFromEffect(effect domain.Effect) (*domain.Modifier, error) {
	t := domain.ModifierType(effect.DataString("modifier_type"))
	if t == "" {
		return nil, fmt.Errorf("add_modifier on %q: missing modifier_type", effect.Target)
	}
	mod := domain.NewModifier(t, effect.Source)
	if data, ok := effect.Data["modifier_data"].(map[string]any); ok {
		for k, v := range data {
			mod.WithData(k, v)
		}
	}
	if exp, ok := effect.Data["expires_on"].(int); ok {
		mod.WithExpiry(exp)
	}
	if applied, ok := effect.Data["applied_on"].(int); ok {
		mod.WithAppliedOn(applied)
	}
	return mod, nil
}
