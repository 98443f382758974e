package app

import (
	"context"
	"fmt"
	"strings"

	"assassins/internal/domain"
	"assassins/internal/game"
)

// MaxDays caps runaway games; a healthy game ends well before this
const MaxDays = 30

// Run plays the game to completion: alternating night and day phases
// until a win condition fires, then the postgame wrap-up. A canceled
// context stops cleanly between steps.
func (g *Game) Run(ctx context.Context) error {
	st := g.State
	g.Logger.Info("game starting",
		"players", len(st.Players),
		"events", g.Registry.ActiveNames(),
	)
	g.publish("game_start", map[string]any{
		"players": st.Order,
		"events":  g.Registry.ActiveNames(),
	})

	for !st.GameOver {
		if err := ctx.Err(); err != nil {
			return err
		}
		if st.Day > MaxDays {
			return fmt.Errorf("game exceeded %d days without a winner", MaxDays)
		}

		switch st.Phase {
		case domain.PhaseNight:
			if err := g.RunNight(ctx); err != nil {
				return err
			}
		case domain.PhaseDay:
			if err := g.RunDay(ctx); err != nil {
				return err
			}
		}
		if st.GameOver {
			break
		}
		if err := st.AdvancePhase(); err != nil {
			return err
		}
		g.pause()
	}

	g.endGame(ctx)
	return nil
}

// endGame announces the winner, reveals every role and runs the
// postgame table talk.
func (g *Game) endGame(ctx context.Context) {
	st := g.State

	var banner string
	switch st.Winner {
	case game.WinnerVillage:
		banner = "The village has rooted out every Assassin. The village wins!"
	case game.WinnerAssassins:
		banner = "The Assassins now outnumber the village. The Assassins win!"
	case game.WinnerJester:
		banner = st.WinnerName + " wanted to be lynched all along. The Jester wins alone!"
	default:
		banner = "The game is over."
	}
	st.Info.RevealToAll(banner, "game", domain.InfoGameState, st.Day)
	g.Logger.Info("game finished", "winner", st.Winner, "days", st.Day)
	g.publish("game_over", map[string]any{
		"winner":     st.Winner,
		"winnerName": st.WinnerName,
		"days":       st.Day,
	})

	var reveals []string
	for _, name := range st.Order {
		p := st.Players[name]
		reveals = append(reveals, p.Name+" was "+p.DisplayRole(st.Day))
	}
	st.Info.RevealToAll("Final roles: "+strings.Join(reveals, "; ")+".",
		"game", domain.InfoRoleReveal, st.Day)

	g.postgameDiscussion(ctx)
}

// postgameDiscussion lets everyone, living and dead, talk through the
// game once the masks are off.
func (g *Game) postgameDiscussion(ctx context.Context) {
	st := g.State
	var everyone []*domain.Player
	for _, name := range st.Order {
		everyone = append(everyone, st.Players[name])
	}

	cr := st.Convo.ConductRound(ctx, st.Day, 1, domain.PhasePostgame,
		everyone, domain.Public(),
		func(ctx context.Context, speaker *domain.Player, roundContext string) (string, string, error) {
			a, ok := g.agentFor(speaker.Name)
			if !ok {
				return "", "", fmt.Errorf("no agent for %s", speaker.Name)
			}
			return a.Statement(ctx, g.discussionPrompt(speaker, roundContext,
				"The game is over and all roles are revealed. Say a few words about how it went: what you got right, who fooled you, what you'd do differently."))
		},
		func(stmt *domain.Statement) {
			g.publish("postgame", stmt)
		})

	for _, stmt := range cr.Statements {
		g.Logger.Info("postgame", "speaker", stmt.Speaker, "said", stmt.Content)
	}
}
