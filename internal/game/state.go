package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"assassins/internal/domain"
	"assassins/internal/service"
)

// Winner values
const (
	WinnerVillage   = "village"
	WinnerAssassins = "assassins"
	WinnerJester    = "jester"
)

// Elimination causes
const (
	ReasonLynched      = "lynched"
	ReasonAssassinated = "assassinated"
	ReasonShot         = "shot"
	ReasonHeartbreak   = "heartbreak"
	ReasonFoundDead    = "found_dead" // public cause for a suicide, which is never revealed as one
	ReasonSacrifice    = "sacrifice"
	ReasonZombie       = "zombie"
	ReasonCounter      = "counter_attack"
)

// EventHooks is how the state notifies events of deaths. The
// event registry implements it; effects it returns are applied before
// the elimination call returns, so chained deaths resolve depth-first.
type EventHooks interface {
	OnDeath(st *State, p *domain.Player, cause string) []domain.Effect
}

// State is the complete mutable state of one game. It owns the player
// map: any code holding a player pointer across an effect application
// must re-fetch it by name, because effect application replaces the
// map with fresh copies.
type State struct {
	Players map[string]*domain.Player
	Order   []string // seating order, fixed at creation
	Day     int
	Phase   domain.Phase

	GameOver   bool
	Winner     string
	WinnerName string // set for a jester win

	Info    *service.InformationService
	Votes   *service.VoteService
	Convo   *service.ConversationService
	Effects *service.EffectService

	Hooks EventHooks
	Rand  *rand.Rand
	Log   *slog.Logger
}

// NewState creates game state for the given players, starting on night
// of day 1.
func NewState(players []*domain.Player, rng *rand.Rand, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	st := &State{
		Players: make(map[string]*domain.Player, len(players)),
		Day:     1,
		Phase:   domain.PhaseNight,
		Info:    service.NewInformationService(logger),
		Votes:   service.NewVoteService(logger),
		Convo:   service.NewConversationService(rng, logger),
		Effects: service.NewEffectService(logger),
		Rand:    rng,
		Log:     logger,
	}
	for _, p := range players {
		st.Players[p.Name] = p
		st.Order = append(st.Order, p.Name)
		st.Info.RegisterPlayer(p.Name)
	}
	return st
}

// PlayerByName finds a player, matching case-insensitively so agent
// output like "ALICE" still resolves.
func (s *State) PlayerByName(name string) (*domain.Player, bool) {
	if p, ok := s.Players[name]; ok {
		return p, true
	}
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// AlivePlayers returns living players in seating order
func (s *State) AlivePlayers() []*domain.Player {
	var alive []*domain.Player
	for _, name := range s.Order {
		if p := s.Players[name]; p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveByTeam returns living players on a team, in seating order
func (s *State) AliveByTeam(team domain.Team) []*domain.Player {
	var out []*domain.Player
	for _, p := range s.AlivePlayers() {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// AliveByRole returns living players with a role, in seating order
func (s *State) AliveByRole(role domain.Role) []*domain.Player {
	var out []*domain.Player
	for _, p := range s.AlivePlayers() {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// DeadPlayers returns dead players in seating order
func (s *State) DeadPlayers() []*domain.Player {
	var dead []*domain.Player
	for _, name := range s.Order {
		if p := s.Players[name]; !p.Alive {
			dead = append(dead, p)
		}
	}
	return dead
}

// AliveNames returns the names of living players in seating order
func (s *State) AliveNames() []string {
	alive := s.AlivePlayers()
	names := make([]string, len(alive))
	for i, p := range alive {
		names[i] = p.Name
	}
	return names
}

// EliminatePlayer kills a player, reveals their role publicly and lets
// events react. Eliminating an already-dead player returns
// ErrAlreadyDead and has no further effect, which makes multi-source
// kills in the same night safe.
func (s *State) EliminatePlayer(name, cause string) error {
	p, ok := s.PlayerByName(name)
	if !ok {
		return fmt.Errorf("eliminate %q: %w", name, domain.ErrPlayerNotFound)
	}
	if !p.Alive {
		return fmt.Errorf("eliminate %q: %w", name, domain.ErrAlreadyDead)
	}

	p.Alive = false
	p.AddModifier(
		domain.NewModifier(domain.ModDead, cause).
			WithData("cause", cause).
			WithAppliedOn(s.Day),
	)
	s.Log.Info("player eliminated", "player", p.Name, "cause", cause, "day", s.Day)

	s.Info.RevealDeath(p.Name, p.DisplayRole(s.Day), cause, s.Day)

	if s.Hooks != nil {
		if effects := s.Hooks.OnDeath(s, p, cause); len(effects) > 0 {
			if err := s.ApplyEffects(effects); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyEffects routes a batch of effects: kills go through
// EliminatePlayer so death processing stays uniform, game-level
// effects are interpreted here, and everything else goes through the
// effect engine.
func (s *State) ApplyEffects(effects []domain.Effect) error {
	for _, e := range effects {
		switch {
		case e.Type == domain.EffectKillPlayer:
			cause := e.DataString("cause")
			if cause == "" {
				cause = e.Source
			}
			if err := s.EliminatePlayer(e.Target, cause); err != nil {
				// A target already dead from an earlier effect in the
				// batch is not an error for the batch.
				if !errors.Is(err, domain.ErrAlreadyDead) {
					return err
				}
			}

		case e.IsGameLevel():
			if err := s.applyGameEffect(e); err != nil {
				return err
			}

		default:
			next, err := s.Effects.Apply(e, s.Players)
			if err != nil {
				return err
			}
			s.Players = next
		}
	}
	return nil
}

func (s *State) applyGameEffect(e domain.Effect) error {
	switch e.Type {
	case domain.EffectJesterVictory:
		s.GameOver = true
		s.Winner = WinnerJester
		s.WinnerName = e.DataString("player")
		s.Log.Info("jester victory", "player", s.WinnerName)

	case domain.EffectHeartbreakDeath:
		return s.eliminateFromEffect(e, ReasonHeartbreak)

	case domain.EffectSuicideDeath:
		return s.eliminateFromEffect(e, ReasonFoundDead)

	case domain.EffectBodyguardSacrifice:
		return s.eliminateFromEffect(e, ReasonSacrifice)

	case domain.EffectBecomeGhost:
		p, ok := s.PlayerByName(e.DataString("player"))
		if !ok {
			return fmt.Errorf("become_ghost: %w", domain.ErrPlayerNotFound)
		}
		target := e.DataString("target")
		p.AddModifier(
			domain.NewModifier(domain.ModGhost, e.Source).
				WithData("target", target).
				WithAppliedOn(s.Day),
		)
		s.Log.Info("ghost risen", "player", p.Name, "haunting", target)

	default:
		return fmt.Errorf("%q: %w", e.Type, domain.ErrUnknownEffectType)
	}
	return nil
}

func (s *State) eliminateFromEffect(e domain.Effect, cause string) error {
	name := e.DataString("player")
	if name == "" {
		name = e.Target
	}
	err := s.EliminatePlayer(name, cause)
	if err != nil && errors.Is(err, domain.ErrAlreadyDead) {
		return nil
	}
	return err
}

// CheckWinCondition evaluates the standing win conditions and ends the
// game if one is met. A jester victory already recorded is never
// overridden. Returns true if the game is over.
func (s *State) CheckWinCondition() bool {
	if s.GameOver {
		return true
	}

	assassins := len(s.AliveByTeam(domain.TeamAssassins))
	village := len(s.AliveByTeam(domain.TeamVillage))

	switch {
	case assassins == 0:
		s.GameOver = true
		s.Winner = WinnerVillage
	case assassins >= village:
		s.GameOver = true
		s.Winner = WinnerAssassins
	}

	if s.GameOver {
		s.Log.Info("game over", "winner", s.Winner,
			"assassins", assassins, "village", village)
	}
	return s.GameOver
}

// AdvancePhase moves night to day, or day to the next night. The day
// counter increments when a new night begins. Expired modifiers are
// swept on every transition.
func (s *State) AdvancePhase() error {
	if s.GameOver {
		return domain.ErrGameOver
	}
	next := s.Phase.Next()
	if !s.Phase.CanTransitionTo(next) {
		return fmt.Errorf("%s to %s: %w", s.Phase, next, domain.ErrInvalidTransition)
	}
	s.Phase = next
	if s.Phase == domain.PhaseNight {
		s.Day++
	}
	for _, p := range s.Players {
		p.UpdateModifiers(s.Day)
	}
	s.Log.Info("phase advanced", "phase", s.Phase, "day", s.Day)
	return nil
}

// Roster returns a public roster line: living players by name, dead
// players by name and revealed role.
func (s *State) Roster() string {
	var alive, dead []string
	for _, name := range s.Order {
		p := s.Players[name]
		if p.Alive {
			alive = append(alive, p.Name)
		} else {
			dead = append(dead, fmt.Sprintf("%s (%s)", p.Name, p.DisplayRole(s.Day)))
		}
	}
	sort.Strings(dead)
	line := "Alive: " + strings.Join(alive, ", ")
	if len(dead) > 0 {
		line += "\nDead: " + strings.Join(dead, ", ")
	}
	return line
}
