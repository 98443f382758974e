package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"assassins/internal/domain"
)

// StatementFunc asks a player to speak given what has already been said
// this round.
type StatementFunc func(ctx context.Context, speaker *domain.Player, roundContext string) (content, thinking string, err error)

// ConversationService runs discussion rounds and keeps the history
type ConversationService struct {
	History  *domain.ConversationHistory
	rng      *rand.Rand
	recorder Recorder
	logger   *slog.Logger
}

// NewConversationService creates a conversation service. The random
// source drives speaking order and must be the game's shared one so a
// fixed seed reproduces the whole game.
func NewConversationService(rng *rand.Rand, logger *slog.Logger) *ConversationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationService{
		History: domain.NewConversationHistory(),
		rng:     rng,
		logger:  logger,
	}
}

// SetRecorder attaches an optional transcript recorder
func (s *ConversationService) SetRecorder(r Recorder) {
	s.recorder = r
}

// Personality keywords that bias speaking order. Assertive players
// tend to speak early, reserved players late.
var (
	assertiveWords = []string{"aggressive", "assertive", "bold", "confident", "loud", "outspoken", "dominant", "charismatic"}
	reservedWords  = []string{"shy", "quiet", "reserved", "cautious", "timid", "anxious", "nervous", "suspicious of everyone"}
)

func personalityBias(personality string) float64 {
	lower := strings.ToLower(personality)
	for _, w := range assertiveWords {
		if strings.Contains(lower, w) {
			return -0.3
		}
	}
	for _, w := range reservedWords {
		if strings.Contains(lower, w) {
			return 0.3
		}
	}
	return 0
}

// SpeakingOrder shuffles players into a speaking order weighted by
// personality: each player draws a uniform score and assertive or
// reserved personalities shift it by 0.3 either way.
func (s *ConversationService) SpeakingOrder(players []*domain.Player) []string {
	type scored struct {
		name  string
		score float64
	}
	scores := make([]scored, 0, len(players))
	for _, p := range players {
		scores = append(scores, scored{
			name:  p.Name,
			score: s.rng.Float64() + personalityBias(p.Personality),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score < scores[j].score
	})
	order := make([]string, len(scores))
	for i, sc := range scores {
		order[i] = sc.name
	}
	return order
}

// ConductRound runs a single discussion round in the given phase. Each
// speaker sees the statements already made this round. A speaker error
// skips that speaker rather than aborting the round. The visibility
// applies to every statement in the round. onStatement, if set, runs
// after each recorded statement; it is how haunting asides interleave
// into the discussion.
func (s *ConversationService) ConductRound(
	ctx context.Context,
	day, round int,
	phase string,
	speakers []*domain.Player,
	visibility domain.Visibility,
	speak StatementFunc,
	onStatement func(*domain.Statement),
) *domain.ConversationRound {
	byName := make(map[string]*domain.Player, len(speakers))
	for _, p := range speakers {
		byName[p.Name] = p
	}

	cr := &domain.ConversationRound{
		Round:         round,
		Phase:         phase,
		Day:           day,
		SpeakingOrder: s.SpeakingOrder(speakers),
	}

	for _, name := range cr.SpeakingOrder {
		speaker := byName[name]
		content, thinking, err := speak(ctx, speaker, cr.ContextFor(name))
		if err != nil {
			s.logger.Warn("statement failed, skipping speaker",
				"speaker", name, "phase", phase, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		st := domain.NewStatement(name, content, thinking, round, phase, visibility)
		cr.AddStatement(st)
		if s.recorder != nil {
			if err := s.recorder.RecordStatement(st); err != nil {
				s.logger.Warn("transcript record failed", "error", err)
			}
		}
		if onStatement != nil {
			onStatement(st)
		}
	}

	s.History.Add(cr)
	return cr
}

// VisibleStatementsInPhase returns the phase's statements the player is
// allowed to see, in order. Private thinking is stripped unless the
// statement is the player's own.
func (s *ConversationService) VisibleStatementsInPhase(phase string, playerName string, team domain.Team, role domain.Role) []*domain.Statement {
	var out []*domain.Statement
	for _, st := range s.History.StatementsInPhase(phase) {
		if !st.Visibility.IsVisibleTo(playerName, team, role) {
			continue
		}
		if st.Speaker != playerName && st.Thinking != "" {
			clean := *st
			clean.Thinking = ""
			out = append(out, &clean)
			continue
		}
		out = append(out, st)
	}
	return out
}
