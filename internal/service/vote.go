package service

import (
	"context"
	"log/slog"

	"assassins/internal/domain"
)

// VoteFunc asks a voter to pick a target from the candidate list.
// Candidates always include the abstain sentinel.
type VoteFunc func(ctx context.Context, voter *domain.Player, candidates []string) (target, reasoning string, err error)

// RedirectFunc gives active events a chance to redirect a vote before
// it is tallied. It returns the final target and whether a redirect
// happened.
type RedirectFunc func(voter *domain.Player, intended string) (string, bool)

// VoteService runs voting rounds and keeps the voting history
type VoteService struct {
	History  *domain.VotingHistory
	recorder Recorder
	logger   *slog.Logger
}

// NewVoteService creates a vote service with empty history
func NewVoteService(logger *slog.Logger) *VoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VoteService{
		History: domain.NewVotingHistory(),
		logger:  logger,
	}
}

// SetRecorder attaches an optional transcript recorder
func (s *VoteService) SetRecorder(r Recorder) {
	s.recorder = r
}

// ConductVote collects one vote from every voter, applies redirects,
// tallies and stores the result. A voter error does not abort the
// round; that voter is treated as abstaining so one stuck agent cannot
// hang the game.
func (s *VoteService) ConductVote(
	ctx context.Context,
	day, round int,
	voters []*domain.Player,
	candidates []string,
	getVote VoteFunc,
	redirect RedirectFunc,
) *domain.VoteResult {
	withAbstain := make([]string, 0, len(candidates)+1)
	withAbstain = append(withAbstain, candidates...)
	withAbstain = append(withAbstain, domain.AbstainTarget)

	var votes []domain.Vote
	for _, voter := range voters {
		target, reasoning, err := getVote(ctx, voter, withAbstain)
		if err != nil {
			s.logger.Warn("vote failed, treating as abstain",
				"voter", voter.Name, "error", err)
			target = domain.AbstainTarget
		}

		v := domain.Vote{
			Voter:     voter.Name,
			Target:    target,
			Round:     round,
			Day:       day,
			Reasoning: reasoning,
		}
		if redirect != nil && !v.IsAbstain() {
			if final, ok := redirect(voter, target); ok && final != target {
				v.OriginalTarget = target
				v.Target = final
			}
		}
		votes = append(votes, v)

		if s.recorder != nil {
			if err := s.recorder.RecordVote(v); err != nil {
				s.logger.Warn("transcript record failed", "error", err)
			}
		}
	}

	result := domain.NewVoteResult(day, round, votes)
	s.History.Add(result)
	s.logger.Info("vote complete",
		"day", day,
		"round", round,
		"eliminated", result.Eliminated,
		"tied", result.Tied,
	)
	return result
}
