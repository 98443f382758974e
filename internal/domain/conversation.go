package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conversation phases
const (
	PhaseDayDiscussion      = "day_discussion"
	PhaseAssassinDiscussion = "assassin_discussion"
	PhaseBlackboard         = "blackboard"
	PhasePostgame           = "postgame"
)

// Statement is a single utterance by a player. Thinking is the
// player's private deliberation and is never shown to other players.
type Statement struct {
	ID         string     `json:"id"`
	Speaker    string     `json:"speaker"`
	Content    string     `json:"content"`
	Thinking   string     `json:"thinking,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Round      int        `json:"round"`
	Phase      string     `json:"phase"`
	Visibility Visibility `json:"visibility"`
}

// NewStatement constructs a statement with a fresh ID
func NewStatement(speaker, content, thinking string, round int, phase string, visibility Visibility) *Statement {
	return &Statement{
		ID:         uuid.NewString(),
		Speaker:    speaker,
		Content:    content,
		Thinking:   thinking,
		Timestamp:  time.Now(),
		Round:      round,
		Phase:      phase,
		Visibility: visibility,
	}
}

// ConversationRound is one round of statements in a phase, driven by a
// fixed speaking order.
type ConversationRound struct {
	Round         int          `json:"round"`
	Phase         string       `json:"phase"`
	Day           int          `json:"day"`
	SpeakingOrder []string     `json:"speakingOrder"`
	Statements    []*Statement `json:"statements"`
}

// AddStatement appends a statement to this round
func (r *ConversationRound) AddStatement(s *Statement) {
	r.Statements = append(r.Statements, s)
}

// ContextFor returns what other players have said in this round so
// far, formatted for prompting. Statements are scoped to this round
// only; prior rounds are provided through the information model.
func (r *ConversationRound) ContextFor(playerName string) string {
	var lines []string
	for _, s := range r.Statements {
		if s.Speaker == playerName {
			continue
		}
		lines = append(lines, s.Speaker+" said: "+s.Content)
	}
	return strings.Join(lines, "\n")
}

// StatementsBy returns this round's statements by a specific player
func (r *ConversationRound) StatementsBy(playerName string) []*Statement {
	var out []*Statement
	for _, s := range r.Statements {
		if s.Speaker == playerName {
			out = append(out, s)
		}
	}
	return out
}

// ConversationHistory holds all conversation rounds across the game
type ConversationHistory struct {
	Rounds  []*ConversationRound
	byPhase map[string][]*ConversationRound
	byDay   map[int][]*ConversationRound
}

// NewConversationHistory creates an empty history
func NewConversationHistory() *ConversationHistory {
	return &ConversationHistory{
		byPhase: make(map[string][]*ConversationRound),
		byDay:   make(map[int][]*ConversationRound),
	}
}

// Add records a conversation round
func (h *ConversationHistory) Add(round *ConversationRound) {
	h.Rounds = append(h.Rounds, round)
	h.byPhase[round.Phase] = append(h.byPhase[round.Phase], round)
	h.byDay[round.Day] = append(h.byDay[round.Day], round)
}

// RoundsByPhase returns all rounds for a conversation phase
func (h *ConversationHistory) RoundsByPhase(phase string) []*ConversationRound {
	return h.byPhase[phase]
}

// RoundsByDay returns all rounds from a specific day
func (h *ConversationHistory) RoundsByDay(day int) []*ConversationRound {
	return h.byDay[day]
}

// StatementsBy returns all statements by a player, ordered by time
func (h *ConversationHistory) StatementsBy(player string) []*Statement {
	var out []*Statement
	for _, r := range h.Rounds {
		out = append(out, r.StatementsBy(player)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// StatementsInPhase returns all statements in a conversation phase,
// ordered by time.
func (h *ConversationHistory) StatementsInPhase(phase string) []*Statement {
	var out []*Statement
	for _, r := range h.byPhase[phase] {
		out = append(out, r.Statements...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
