package app

import (
	"log/slog"
	"time"

	"assassins/internal/agent"
	"assassins/internal/event"
	"assassins/internal/game"
	"assassins/internal/service"
)

// Observer receives a feed of public game moments. The spectator
// WebSocket hub implements it; a nil observer is a no-op.
type Observer interface {
	Publish(kind string, payload any)
}

// Game wires the state, the event registry and one agent per player
// into a runnable match.
type Game struct {
	State    *game.State
	Registry *event.Registry
	Agents   map[string]agent.Agent

	// Delay is inserted between phases so a human can follow along.
	Delay time.Duration

	Observer Observer
	Logger   *slog.Logger

	lastNightDeaths []string
}

// New assembles a game from dealt state, an activated registry and the
// per-player agents. The registry is installed as the state's death
// hook here so event reactions are live from the first elimination.
func New(st *game.State, registry *event.Registry, agents map[string]agent.Agent, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	st.Hooks = registry
	return &Game{
		State:    st,
		Registry: registry,
		Agents:   agents,
		Logger:   logger,
	}
}

// SetRecorder attaches a transcript recorder to every service
func (g *Game) SetRecorder(r service.Recorder) {
	g.State.Info.SetRecorder(r)
	g.State.Votes.SetRecorder(r)
	g.State.Convo.SetRecorder(r)
}

func (g *Game) publish(kind string, payload any) {
	if g.Observer != nil {
		g.Observer.Publish(kind, payload)
	}
}

func (g *Game) pause() {
	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}
}

func (g *Game) agentFor(name string) (agent.Agent, bool) {
	a, ok := g.Agents[name]
	return a, ok
}
