package game

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"assassins/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testState(t *testing.T, roles ...domain.Role) *State {
	t.Helper()
	names := []string{"Alice", "Bob", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo", "Iris"}
	players := make([]*domain.Player, len(roles))
	for i, r := range roles {
		players[i] = domain.NewPlayer(names[i], r, "")
	}
	return NewState(players, NewRand(7), testLogger())
}

func TestState_CheckWinCondition(t *testing.T) {
	tests := []struct {
		name       string
		roles      []domain.Role
		kill       []string
		wantOver   bool
		wantWinner string
	}{
		{
			name:  "game continues",
			roles: []domain.Role{domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager},
		},
		{
			name:       "village wins with zero assassins",
			roles:      []domain.Role{domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager},
			kill:       []string{"Alice"},
			wantOver:   true,
			wantWinner: WinnerVillage,
		},
		{
			name:       "assassins win at parity",
			roles:      []domain.Role{domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager},
			kill:       []string{"Bob"},
			wantOver:   true,
			wantWinner: WinnerAssassins,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState(t, tt.roles...)
			for _, name := range tt.kill {
				p, _ := st.PlayerByName(name)
				p.Alive = false
			}
			if got := st.CheckWinCondition(); got != tt.wantOver {
				t.Errorf("CheckWinCondition() = %v, want %v", got, tt.wantOver)
			}
			if st.Winner != tt.wantWinner {
				t.Errorf("Winner = %q, want %q", st.Winner, tt.wantWinner)
			}
		})
	}
}

func TestState_JesterWinIsNeverOverridden(t *testing.T) {
	st := testState(t, domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager)
	st.GameOver = true
	st.Winner = WinnerJester
	st.WinnerName = "Clara"

	if !st.CheckWinCondition() {
		t.Fatal("finished game should stay finished")
	}
	if st.Winner != WinnerJester {
		t.Errorf("Winner = %q, want jester win preserved", st.Winner)
	}
}

func TestState_EliminatePlayer(t *testing.T) {
	st := testState(t, domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager)

	if err := st.EliminatePlayer("Bob", ReasonLynched); err != nil {
		t.Fatalf("EliminatePlayer() error: %v", err)
	}
	p, _ := st.PlayerByName("Bob")
	if p.Alive {
		t.Error("eliminated player should be dead")
	}
	if !p.HasModifier(domain.ModDead, st.Day) {
		t.Error("dead modifier missing")
	}

	// Elimination is terminal: a second death is an error, not a repeat.
	if err := st.EliminatePlayer("Bob", ReasonAssassinated); !errors.Is(err, domain.ErrAlreadyDead) {
		t.Errorf("second elimination error = %v, want ErrAlreadyDead", err)
	}

	deaths := st.Info.Store.ByCategory(domain.InfoDeath)
	if len(deaths) != 1 {
		t.Errorf("got %d death reveals, want exactly 1", len(deaths))
	}
}

func TestState_EliminateUnknownPlayer(t *testing.T) {
	st := testState(t, domain.RoleAssassin, domain.RoleVillager)
	if err := st.EliminatePlayer("Nobody", ReasonLynched); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("error = %v, want ErrPlayerNotFound", err)
	}
}

func TestState_PlayerByName_CaseInsensitive(t *testing.T) {
	st := testState(t, domain.RoleVillager, domain.RoleVillager)
	if _, ok := st.PlayerByName("ALICE"); !ok {
		t.Error("lookup should match case-insensitively")
	}
}

func TestState_AdvancePhase(t *testing.T) {
	st := testState(t, domain.RoleAssassin, domain.RoleVillager, domain.RoleVillager)
	if st.Phase != domain.PhaseNight || st.Day != 1 {
		t.Fatalf("fresh game should start on night 1, got %s %d", st.Phase, st.Day)
	}

	if err := st.AdvancePhase(); err != nil {
		t.Fatalf("night to day: %v", err)
	}
	if st.Phase != domain.PhaseDay || st.Day != 1 {
		t.Errorf("after first advance: %s day %d, want day phase of day 1", st.Phase, st.Day)
	}

	if err := st.AdvancePhase(); err != nil {
		t.Fatalf("day to night: %v", err)
	}
	if st.Phase != domain.PhaseNight || st.Day != 2 {
		t.Errorf("after second advance: %s day %d, want night of day 2", st.Phase, st.Day)
	}

	st.GameOver = true
	if err := st.AdvancePhase(); !errors.Is(err, domain.ErrGameOver) {
		t.Errorf("advancing a finished game: %v, want ErrGameOver", err)
	}
}

func TestState_ApplyEffects_UnknownGameEffect(t *testing.T) {
	st := testState(t, domain.RoleAssassin, domain.RoleVillager)
	err := st.ApplyEffects([]domain.Effect{
		{Type: "weather", Target: domain.GameTarget},
	})
	if !errors.Is(err, domain.ErrUnknownEffectType) {
		t.Errorf("error = %v, want ErrUnknownEffectType", err)
	}
}

func TestCreateGame(t *testing.T) {
	cast := make([]PlayerConfig, 9)
	for i, n := range []string{"Alice", "Bob", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo", "Iris"} {
		cast[i] = PlayerConfig{Name: n}
	}

	st, err := CreateGame(cast, NewRand(42), testLogger())
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}

	counts := make(map[domain.Role]int)
	for _, p := range st.Players {
		counts[p.Role]++
	}
	if counts[domain.RoleAssassin] != 2 {
		t.Errorf("got %d assassins, want 2", counts[domain.RoleAssassin])
	}
	if counts[domain.RoleDoctor] != 1 || counts[domain.RoleDetective] != 1 {
		t.Error("expected exactly one doctor and one detective")
	}
	if counts[domain.RoleVigilante] != 1 || counts[domain.RoleMadScientist] != 1 {
		t.Error("nine players should include a vigilante and a mad scientist")
	}
}

func TestCreateGame_Validation(t *testing.T) {
	small := []PlayerConfig{{Name: "A"}, {Name: "B"}}
	if _, err := CreateGame(small, NewRand(1), testLogger()); !errors.Is(err, domain.ErrNotEnoughPlayers) {
		t.Errorf("too few players: %v, want ErrNotEnoughPlayers", err)
	}

	dup := []PlayerConfig{
		{Name: "Alice"}, {Name: "alice"}, {Name: "Bob"}, {Name: "Clara"}, {Name: "Diego"},
	}
	if _, err := CreateGame(dup, NewRand(1), testLogger()); !errors.Is(err, domain.ErrDuplicateName) {
		t.Errorf("duplicate names: %v, want ErrDuplicateName", err)
	}
}

func TestCreateGame_PresetRoles(t *testing.T) {
	cast := []PlayerConfig{
		{Name: "Alice", Role: domain.RoleAssassin},
		{Name: "Bob", Role: domain.RoleAssassin},
		{Name: "Clara"}, {Name: "Diego"}, {Name: "Elena"},
	}
	st, err := CreateGame(cast, NewRand(1), testLogger())
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}

	a, _ := st.PlayerByName("Alice")
	b, _ := st.PlayerByName("Bob")
	if a.Role != domain.RoleAssassin || b.Role != domain.RoleAssassin {
		t.Error("preset roles were not honored")
	}
	total := 0
	for _, p := range st.Players {
		if p.Role == domain.RoleAssassin {
			total++
		}
	}
	if total != 2 {
		t.Errorf("got %d assassins, want exactly the 2 preset ones", total)
	}
}

func TestState_SameSeedSameDeal(t *testing.T) {
	cast := make([]PlayerConfig, 9)
	for i, n := range []string{"Alice", "Bob", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo", "Iris"} {
		cast[i] = PlayerConfig{Name: n}
	}

	first, err := CreateGame(cast, NewRand(99), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	second, err := CreateGame(cast, NewRand(99), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	for name, p := range first.Players {
		if second.Players[name].Role != p.Role {
			t.Fatalf("seeded deal differs for %s: %s vs %s", name, p.Role, second.Players[name].Role)
		}
	}
}
