package app

import (
	"context"
	"fmt"
	"strings"

	"assassins/internal/agent"
	"assassins/internal/domain"
	"assassins/internal/event"
	"assassins/internal/game"
)

// DiscussionRounds is how many day discussion rounds run before the vote
const DiscussionRounds = 2

// RunDay executes one full day: morning reveals, discussion, the
// lynch vote and its resolution.
func (g *Game) RunDay(ctx context.Context) error {
	st := g.State
	g.Logger.Info("day begins", "day", st.Day)
	g.publish("day_start", map[string]any{"day": st.Day})

	g.morningReport()
	g.truthSerumReveals()
	g.priestResurrection(ctx)

	for round := 1; round <= DiscussionRounds; round++ {
		g.discussionRound(ctx, round)
	}

	if err := g.lynchVote(ctx); err != nil {
		return err
	}

	st.CheckWinCondition()
	return nil
}

// morningReport narrates the night's deaths, or the lack of them
func (g *Game) morningReport() {
	st := g.State
	if len(g.lastNightDeaths) == 0 {
		st.Info.RevealToAll(
			"The village wakes to a quiet morning. Everyone is accounted for.",
			"game", domain.InfoGameState, st.Day)
		return
	}
	st.Info.RevealToAll(
		"The village wakes to grim news: "+strings.Join(g.lastNightDeaths, ", ")+" did not survive the night.",
		"game", domain.InfoGameState, st.Day)
	g.publish("deaths", map[string]any{"day": st.Day, "players": g.lastNightDeaths})
}

// truthSerumReveals forces serum-dosed players to reveal their role
func (g *Game) truthSerumReveals() {
	st := g.State
	for _, p := range st.AlivePlayers() {
		if !p.HasModifier(domain.ModTruthSerum, st.Day) {
			continue
		}
		st.Info.RevealToAll(
			p.Name+" suddenly blurts out the truth: they are "+p.Role.DisplayName()+"!",
			"game", domain.InfoRoleReveal, st.Day)
		p.RemoveModifier(domain.ModTruthSerum)
	}
}

// priestResurrection offers the priest their one miracle
func (g *Game) priestResurrection(ctx context.Context) {
	st := g.State
	priest, ok := event.PriestWithCharge(st)
	if !ok {
		return
	}
	dead := st.DeadPlayers()
	if len(dead) == 0 {
		return
	}
	a, ok := g.agentFor(priest.Name)
	if !ok {
		return
	}

	candidates := append(names(dead), agent.SkipChoice)
	choice, err := a.Choose(ctx,
		g.choicePrompt(priest, "You may perform your ONE resurrection now, or hold it. Choose a dead player to revive, or SKIP."),
		candidates)
	if err != nil || choice == agent.SkipChoice {
		return
	}

	event.SpendCharge(priest)
	if err := st.ApplyEffects([]domain.Effect{
		domain.ReviveEffect(choice, "event:priest"),
	}); err != nil {
		g.Logger.Warn("resurrection failed", "target", choice, "error", err)
		return
	}
	st.Info.RevealToAll(
		"A miracle: "+choice+" walks among the living again.",
		"game", domain.InfoGameState, st.Day)
	g.publish("resurrection", map[string]any{"day": st.Day, "player": choice})
}

// discussionRound runs one public discussion round, with ghost asides
// interleaved after a haunted speaker's turn.
func (g *Game) discussionRound(ctx context.Context, round int) {
	st := g.State
	alive := st.AlivePlayers()
	if len(alive) == 0 {
		return
	}

	cr := st.Convo.ConductRound(ctx, st.Day, round, domain.PhaseDayDiscussion,
		alive, domain.Public(),
		func(ctx context.Context, speaker *domain.Player, roundContext string) (string, string, error) {
			a, ok := g.agentFor(speaker.Name)
			if !ok {
				return "", "", fmt.Errorf("no agent for %s", speaker.Name)
			}
			return a.Statement(ctx, g.discussionPrompt(speaker, roundContext,
				"Speak to the village. Share suspicions, defend yourself, or steer the conversation."))
		},
		func(stmt *domain.Statement) {
			g.publish("statement", stmt)
			g.ghostAside(ctx, stmt)
		})

	for _, stmt := range cr.Statements {
		st.Info.RevealToAll(stmt.Speaker+" said: \""+stmt.Content+"\"",
			stmt.Speaker, domain.InfoStatement, st.Day)
	}
}

// ghostAside speaks for a ghost right after its haunted target does
func (g *Game) ghostAside(ctx context.Context, stmt *domain.Statement) {
	st := g.State
	ghost, ok := event.HauntedBy(st, stmt.Speaker)
	if !ok {
		return
	}
	a, ok := g.agentFor(ghost.Name)
	if !ok {
		return
	}
	aside, _, err := a.Statement(ctx, g.choicePrompt(ghost,
		"You haunt "+stmt.Speaker+", who just said: \""+stmt.Content+"\". Whisper one short, eerie aside that everyone present can somehow hear. Do not reveal who you are."))
	if err != nil || aside == "" {
		return
	}
	st.Info.RevealToAll(
		"A cold whisper follows "+stmt.Speaker+"'s words: \""+aside+"\"",
		"ghost", domain.InfoStatement, st.Day)
	g.publish("ghost_aside", map[string]any{"day": st.Day, "haunted": stmt.Speaker, "aside": aside})
}

// lynchVote runs the day's vote and resolves its outcome
func (g *Game) lynchVote(ctx context.Context) error {
	st := g.State
	alive := st.AlivePlayers()
	if len(alive) == 0 {
		return nil
	}

	result := st.Votes.ConductVote(ctx, st.Day, 1, alive, names(alive),
		func(ctx context.Context, voter *domain.Player, candidates []string) (string, string, error) {
			a, ok := g.agentFor(voter.Name)
			if !ok {
				return domain.AbstainTarget, "", nil
			}
			return a.ChooseWithReasoning(ctx,
				g.choicePrompt(voter, "Vote for who the village should eliminate today, or ABSTAIN."),
				candidates)
		},
		func(voter *domain.Player, intended string) (string, bool) {
			return g.Registry.RedirectVote(st, voter, intended)
		})

	g.publish("vote_result", result)

	switch {
	case result.Tied:
		st.Info.RevealToAll(
			"The vote is tied between "+strings.Join(result.TiedPlayers, " and ")+". No one is eliminated today.",
			"game", domain.InfoVote, st.Day)
	case result.Eliminated == "":
		st.Info.RevealToAll(
			"No votes were cast. No one is eliminated today.",
			"game", domain.InfoVote, st.Day)
	default:
		st.Info.RevealToAll(
			"The village has voted to eliminate "+result.Eliminated+".",
			"game", domain.InfoVote, st.Day)
		if err := st.EliminatePlayer(result.Eliminated, game.ReasonLynched); err != nil {
			return err
		}
		g.resolvePendingGhosts(ctx)
	}
	return nil
}
