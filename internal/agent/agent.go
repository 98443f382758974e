package agent

import (
	"context"
	"strings"
)

// Agent is the narrative collaborator behind one player. Every call
// may fail or time out; callers always have a deterministic fallback
// so the game never stalls on a stuck agent.
type Agent interface {
	// Choose picks one of the given choices.
	Choose(ctx context.Context, prompt string, choices []string) (string, error)
	// ChooseWithReasoning picks a choice and explains it. The
	// reasoning is private to the choosing player.
	ChooseWithReasoning(ctx context.Context, prompt string, choices []string) (choice, reasoning string, err error)
	// Statement produces an utterance plus private thinking.
	Statement(ctx context.Context, prompt string) (content, thinking string, err error)
}

// skip words an agent may answer with when it wants to do nothing
var skipWords = map[string]bool{
	"skip": true, "pass": true, "none": true, "wait": true, "no one": true, "nobody": true,
}

// SkipChoice is the normalized result for a deliberate non-action
const SkipChoice = "SKIP"

// NormalizeChoice maps a raw agent answer onto the choice list:
// exact match first, then case-insensitive, then substring, then skip
// keywords, and finally the first choice so a malformed answer can
// never stall the game.
func NormalizeChoice(raw string, choices []string) string {
	answer := strings.TrimSpace(raw)
	for _, c := range choices {
		if answer == c {
			return c
		}
	}
	for _, c := range choices {
		if strings.EqualFold(answer, c) {
			return c
		}
	}
	lower := strings.ToLower(answer)
	for _, c := range choices {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	if skipWords[lower] {
		return SkipChoice
	}
	if len(choices) == 0 {
		return SkipChoice
	}
	return choices[0]
}
