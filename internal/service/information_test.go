package service

import (
	"strings"
	"testing"

	"assassins/internal/domain"
)

func TestInformationService_PrivateReveal(t *testing.T) {
	svc := NewInformationService(testLogger())
	svc.RegisterPlayer("Alice")
	svc.RegisterPlayer("Bob")

	id := svc.RevealToPlayer("Alice", "Bob IS an Assassin.", domain.InfoNightResult, 1)

	alice, _ := svc.Knowledge("Alice")
	bob, _ := svc.Knowledge("Bob")
	if !alice.KnowsAbout(id) {
		t.Error("recipient should know the revealed record")
	}
	if bob.KnowsAbout(id) {
		t.Error("a private reveal must not leak to other players")
	}

	ctx := svc.BuildContextFor("Alice", ContextFilter{})
	if !strings.Contains(ctx, "Bob IS an Assassin.") {
		t.Errorf("context for Alice missing the reveal: %q", ctx)
	}
	if got := svc.BuildContextFor("Bob", ContextFilter{}); got != "" {
		t.Errorf("context for Bob = %q, want empty", got)
	}
}

func TestInformationService_DeathIsPublic(t *testing.T) {
	svc := NewInformationService(testLogger())
	for _, n := range []string{"Alice", "Bob", "Clara"} {
		svc.RegisterPlayer(n)
	}

	id := svc.RevealDeath("Clara", "Doctor", "assassinated", 2)

	for _, n := range []string{"Alice", "Bob", "Clara"} {
		k, _ := svc.Knowledge(n)
		if !k.KnowsAbout(id) {
			t.Errorf("%s missing the public death record", n)
		}
	}

	public := svc.PublicInfo(2, true)
	if len(public) != 1 {
		t.Fatalf("got %d public records for day 2, want 1", len(public))
	}
	if cause := public[0].Metadata["cause"]; cause != "assassinated" {
		t.Errorf("cause = %q, want assassinated", cause)
	}
}

func TestInformationService_LateRegistrationKnowsNothing(t *testing.T) {
	svc := NewInformationService(testLogger())
	svc.RegisterPlayer("Alice")

	svc.RevealToAll("The game has begun.", "", domain.InfoGameState, 1)
	svc.RegisterPlayer("Latecomer")

	k, _ := svc.Knowledge("Latecomer")
	if k.Count() != 0 {
		t.Errorf("late registrant knows %d records, want 0; access is granted at reveal time only", k.Count())
	}
}

func TestInformationService_ContextFilterByDay(t *testing.T) {
	svc := NewInformationService(testLogger())
	svc.RegisterPlayer("Alice")

	svc.RevealToPlayer("Alice", "day one news", domain.InfoGameState, 1)
	svc.RevealToPlayer("Alice", "day two news", domain.InfoGameState, 2)

	got := svc.BuildContextFor("Alice", ContextFilter{Day: 2, HasDay: true})
	if got != "day two news" {
		t.Errorf("filtered context = %q, want only the day-two record", got)
	}
}
