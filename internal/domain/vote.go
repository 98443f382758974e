package domain

import "sort"

// AbstainTarget is the sentinel target for an abstain vote
const AbstainTarget = "ABSTAIN"

// Vote represents a single vote cast by a player. OriginalTarget is
// set only when the vote was redirected (drunk modifier) so the
// redirection stays auditable.
type Vote struct {
	Voter          string `json:"voter"`
	Target         string `json:"target"`
	Round          int    `json:"round"`
	Day            int    `json:"day"`
	OriginalTarget string `json:"originalTarget,omitempty"`
	Reasoning      string `json:"reasoning,omitempty"`
}

// IsAbstain reports whether this is an abstain vote
func (v Vote) IsAbstain() bool {
	return v.Target == AbstainTarget
}

// WasRedirected reports whether this vote was redirected away from the
// voter's intended target.
func (v Vote) WasRedirected() bool {
	return v.OriginalTarget != "" && v.OriginalTarget != v.Target
}

// VoteResult aggregates the votes of a single round. Eliminated is
// empty when the round produced a tie or everyone abstained.
type VoteResult struct {
	Day         int            `json:"day"`
	Round       int            `json:"round"`
	Votes       []Vote         `json:"votes"`
	Eliminated  string         `json:"eliminated,omitempty"`
	Tied        bool           `json:"tied"`
	TiedPlayers []string       `json:"tiedPlayers,omitempty"`
	VoteCounts  map[string]int `json:"voteCounts"`
}

// NewVoteResult tallies the given votes. A single strict-maximum target
// is eliminated; two or more targets sharing the maximum is a tie and
// nobody is eliminated; all-abstain eliminates nobody without being a
// tie.
func NewVoteResult(day, round int, votes []Vote) *VoteResult {
	r := &VoteResult{
		Day:        day,
		Round:      round,
		Votes:      votes,
		VoteCounts: make(map[string]int),
	}

	for _, v := range votes {
		if !v.IsAbstain() {
			r.VoteCounts[v.Target]++
		}
	}
	if len(r.VoteCounts) == 0 {
		return r
	}

	maxVotes := 0
	for _, c := range r.VoteCounts {
		if c > maxVotes {
			maxVotes = c
		}
	}
	var leaders []string
	for name, c := range r.VoteCounts {
		if c == maxVotes {
			leaders = append(leaders, name)
		}
	}
	sort.Strings(leaders)

	if len(leaders) > 1 {
		r.Tied = true
		r.TiedPlayers = leaders
	} else {
		r.Eliminated = leaders[0]
	}
	return r
}

// VotesBy returns all votes cast by a player
func (r *VoteResult) VotesBy(player string) []Vote {
	var out []Vote
	for _, v := range r.Votes {
		if v.Voter == player {
			out = append(out, v)
		}
	}
	return out
}

// VotersFor returns the names of players who voted for a target
func (r *VoteResult) VotersFor(target string) []string {
	var out []string
	for _, v := range r.Votes {
		if v.Target == target {
			out = append(out, v.Voter)
		}
	}
	return out
}

// Abstainers returns the names of players who abstained
func (r *VoteResult) Abstainers() []string {
	var out []string
	for _, v := range r.Votes {
		if v.IsAbstain() {
			out = append(out, v.Voter)
		}
	}
	return out
}

// RedirectedVotes returns votes that were redirected
func (r *VoteResult) RedirectedVotes() []Vote {
	var out []Vote
	for _, v := range r.Votes {
		if v.WasRedirected() {
			out = append(out, v)
		}
	}
	return out
}

// VotingHistory tracks vote results across all days
type VotingHistory struct {
	Results []*VoteResult
	byDay   map[int][]*VoteResult
}

// NewVotingHistory creates an empty voting history
func NewVotingHistory() *VotingHistory {
	return &VotingHistory{byDay: make(map[int][]*VoteResult)}
}

// Add records a vote result
func (h *VotingHistory) Add(result *VoteResult) {
	h.Results = append(h.Results, result)
	h.byDay[result.Day] = append(h.byDay[result.Day], result)
}

// ByDay returns all vote results from a specific day
func (h *VotingHistory) ByDay(day int) []*VoteResult {
	return h.byDay[day]
}

// VotingPattern returns who a player voted for across all rounds
func (h *VotingHistory) VotingPattern(voter string) []string {
	var pattern []string
	for _, r := range h.Results {
		for _, v := range r.VotesBy(voter) {
			pattern = append(pattern, v.Target)
		}
	}
	return pattern
}

// TargetingPattern returns who voted for a player across all rounds
func (h *VotingHistory) TargetingPattern(target string) []string {
	var pattern []string
	for _, r := range h.Results {
		pattern = append(pattern, r.VotersFor(target)...)
	}
	return pattern
}
