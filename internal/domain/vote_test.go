package domain

import (
	"reflect"
	"testing"
)

func TestNewVoteResult(t *testing.T) {
	tests := []struct {
		name           string
		votes          []Vote
		wantEliminated string
		wantTied       bool
		wantTiedWith   []string
	}{
		{
			name: "clear plurality",
			votes: []Vote{
				{Voter: "Alice", Target: "Dora"},
				{Voter: "Bob", Target: "Dora"},
				{Voter: "Clara", Target: "Alice"},
			},
			wantEliminated: "Dora",
		},
		{
			name: "two-way tie protects",
			votes: []Vote{
				{Voter: "Alice", Target: "Bob"},
				{Voter: "Bob", Target: "Alice"},
			},
			wantTied:     true,
			wantTiedWith: []string{"Alice", "Bob"},
		},
		{
			name: "all abstain is not a tie",
			votes: []Vote{
				{Voter: "Alice", Target: AbstainTarget},
				{Voter: "Bob", Target: AbstainTarget},
			},
		},
		{
			name: "abstains do not count toward the tally",
			votes: []Vote{
				{Voter: "Alice", Target: "Bob"},
				{Voter: "Bob", Target: AbstainTarget},
				{Voter: "Clara", Target: AbstainTarget},
			},
			wantEliminated: "Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewVoteResult(1, 1, tt.votes)
			if r.Eliminated != tt.wantEliminated {
				t.Errorf("Eliminated = %q, want %q", r.Eliminated, tt.wantEliminated)
			}
			if r.Tied != tt.wantTied {
				t.Errorf("Tied = %v, want %v", r.Tied, tt.wantTied)
			}
			if tt.wantTiedWith != nil && !reflect.DeepEqual(r.TiedPlayers, tt.wantTiedWith) {
				t.Errorf("TiedPlayers = %v, want %v", r.TiedPlayers, tt.wantTiedWith)
			}
		})
	}
}

func TestVote_WasRedirected(t *testing.T) {
	plain := Vote{Voter: "Alice", Target: "Bob"}
	if plain.WasRedirected() {
		t.Error("vote without original target should not count as redirected")
	}

	redirected := Vote{Voter: "Alice", Target: "Clara", OriginalTarget: "Bob"}
	if !redirected.WasRedirected() {
		t.Error("vote with differing original target should count as redirected")
	}
}

func TestVotingHistory_Patterns(t *testing.T) {
	h := NewVotingHistory()
	h.Add(NewVoteResult(1, 1, []Vote{
		{Voter: "Alice", Target: "Bob", Day: 1},
		{Voter: "Clara", Target: "Bob", Day: 1},
	}))
	h.Add(NewVoteResult(2, 1, []Vote{
		{Voter: "Alice", Target: "Clara", Day: 2},
	}))

	if got := h.VotingPattern("Alice"); !reflect.DeepEqual(got, []string{"Bob", "Clara"}) {
		t.Errorf("VotingPattern(Alice) = %v", got)
	}
	if got := h.TargetingPattern("Bob"); !reflect.DeepEqual(got, []string{"Alice", "Clara"}) {
		t.Errorf("TargetingPattern(Bob) = %v", got)
	}
	if got := len(h.ByDay(1)); got != 1 {
		t.Errorf("ByDay(1) returned %d results, want 1", got)
	}
}
