package transcript

import (
	"path/filepath"
	"testing"

	"assassins/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func count(t *testing.T, store *Store, table string) int {
	t.Helper()
	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestStore_RecordsFullGameArtifacts(t *testing.T) {
	store := openTestStore(t)

	info := domain.NewInformation("Clara died. They were Doctor.", "game", domain.InfoDeath, domain.Public(), 2)
	if err := store.RecordInformation(info); err != nil {
		t.Fatalf("RecordInformation: %v", err)
	}

	stmt := domain.NewStatement("Alice", "I suspect Bob.", "he was quiet", 1, domain.PhaseDayDiscussion, domain.Public())
	if err := store.RecordStatement(stmt); err != nil {
		t.Fatalf("RecordStatement: %v", err)
	}

	vote := domain.Vote{Voter: "Alice", Target: "Bob", OriginalTarget: "Clara", Day: 2, Round: 1}
	if err := store.RecordVote(vote); err != nil {
		t.Fatalf("RecordVote: %v", err)
	}

	if err := store.RecordElimination("Clara", "Doctor", "assassinated", 2); err != nil {
		t.Fatalf("RecordElimination: %v", err)
	}

	for _, table := range []string{"information", "statements", "votes", "eliminations"} {
		if got := count(t, store, table); got != 1 {
			t.Errorf("%s has %d rows, want 1", table, got)
		}
	}

	var original string
	if err := store.db.QueryRow("SELECT original_target FROM votes WHERE voter = ?", "Alice").Scan(&original); err != nil {
		t.Fatalf("query vote: %v", err)
	}
	if original != "Clara" {
		t.Errorf("original_target = %q, want Clara", original)
	}
}

func TestStore_DuplicateInformationIDRejected(t *testing.T) {
	store := openTestStore(t)

	info := domain.NewInformation("once", "game", domain.InfoGameState, domain.Public(), 1)
	if err := store.RecordInformation(info); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := store.RecordInformation(info); err == nil {
		t.Error("re-recording the same information ID should fail")
	}
}
