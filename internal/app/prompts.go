package app

import (
	"fmt"
	"strings"

	"assassins/internal/domain"
	"assassins/internal/service"
)

// SystemPrompt builds the fixed per-player system prompt: who they
// are, what they can do, how they tend to behave, and the house rules.
func SystemPrompt(p *domain.Player, allNames []string) string {
	info, _ := domain.GetRoleInfo(p.Role)
	var b strings.Builder
	b.WriteString("You are " + p.Name + ", a player in a social-deduction game of Assassins, played in a small village.\n\n")
	b.WriteString(info.Description + "\n\n")
	if p.Personality != "" {
		b.WriteString("Your personality: " + p.Personality + "\n\n")
	}
	b.WriteString("The players are: " + strings.Join(allNames, ", ") + ".\n")
	b.WriteString("Stay in character. Never reveal private information unless it helps you win. Speak naturally and briefly.")
	return b.String()
}

// situationPrompt assembles what a player currently knows plus the
// public roster, ready to prefix any decision ask.
func (g *Game) situationPrompt(p *domain.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "It is %s of day %d.\n\n", g.State.Phase, g.State.Day)
	b.WriteString(g.State.Roster() + "\n")

	known := g.State.Info.BuildContextFor(p.Name, service.ContextFilter{})
	if known != "" {
		b.WriteString("\nWhat you know:\n" + known + "\n")
	}
	return b.String()
}

// discussionPrompt adds this round's conversation so far
func (g *Game) discussionPrompt(p *domain.Player, roundContext, instruction string) string {
	var b strings.Builder
	b.WriteString(g.situationPrompt(p))
	if roundContext != "" {
		b.WriteString("\nSaid so far this round:\n" + roundContext + "\n")
	}
	b.WriteString("\n" + instruction)
	return b.String()
}

// choicePrompt frames a targeted decision
func (g *Game) choicePrompt(p *domain.Player, instruction string) string {
	return g.situationPrompt(p) + "\n" + instruction
}

// investigationResult phrases the detective's binary finding
func investigationResult(target *domain.Player) string {
	if target.Team == domain.TeamAssassins {
		return target.Name + " IS an Assassin."
	}
	return target.Name + " is NOT an Assassin."
}

// names extracts player names in order
func names(players []*domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

// exclude filters a name out of a name list
func exclude(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
