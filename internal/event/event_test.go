package event

import (
	"io"
	"log/slog"
	"testing"

	"assassins/internal/domain"
	"assassins/internal/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testState(t *testing.T, roles ...domain.Role) *game.State {
	t.Helper()
	names := []string{"Alice", "Bob", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo", "Iris"}
	players := make([]*domain.Player, len(roles))
	for i, r := range roles {
		players[i] = domain.NewPlayer(names[i], r, "")
	}
	return game.NewState(players, game.NewRand(3), testLogger())
}

func villageState(t *testing.T) *game.State {
	return testState(t,
		domain.RoleAssassin, domain.RoleDoctor, domain.RoleDetective,
		domain.RoleVillager, domain.RoleVillager, domain.RoleVillager,
		domain.RoleVillager, domain.RoleVillager, domain.RoleVillager,
	)
}

func TestEligibility_SharedClaims(t *testing.T) {
	st := villageState(t)
	pool := NewEligibility(st.Rand)

	claimed := make(map[string]bool)
	candidates := plainVillagers(st)
	for i := 0; i < len(candidates); i++ {
		p, ok := pool.ClaimRandom(candidates)
		if !ok {
			t.Fatalf("claim %d failed with candidates remaining", i)
		}
		if claimed[p.Name] {
			t.Fatalf("%s claimed twice", p.Name)
		}
		claimed[p.Name] = true
	}
	if _, ok := pool.ClaimRandom(candidates); ok {
		t.Error("exhausted pool should refuse further claims")
	}
}

func TestEligibility_ExcludesSpecialRoles(t *testing.T) {
	st := villageState(t)
	for _, p := range plainVillagers(st) {
		if info, _ := domain.GetRoleInfo(p.Role); info.NightAction || info.Team != domain.TeamVillage {
			t.Errorf("%s (%s) should not be in the plain-villager pool", p.Name, p.Role)
		}
	}
}

func TestRegistry_ActivateForced(t *testing.T) {
	st := villageState(t)
	r := NewRegistry(st.Rand, testLogger())

	forced := make(map[string]bool)
	for _, name := range r.Names() {
		forced[name] = true
	}
	if err := r.Activate(st, forced); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if got := len(r.Active()); got != len(r.Names()) {
		t.Errorf("%d events active, want all %d", got, len(r.Names()))
	}
}

func TestZombie_RisesExactlyOnce(t *testing.T) {
	st := villageState(t)
	ev := NewZombieEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	var infected *domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModInfected, st.Day) {
			infected = p
		}
	}
	if infected == nil {
		t.Fatal("setup infected nobody")
	}

	// Death queues the rise.
	infected.Alive = false
	if effects := ev.OnDeath(st, infected, game.ReasonAssassinated); len(effects) > 0 {
		if err := st.ApplyEffects(effects); err != nil {
			t.Fatal(err)
		}
	}
	infected, _ = st.PlayerByName(infected.Name)
	if !infected.HasModifier(domain.ModPendingRise, st.Day) {
		t.Fatal("dead infected player should be pending rise")
	}

	// First night-start finalizes the rise.
	if err := st.ApplyEffects(ev.OnNightStart(st)); err != nil {
		t.Fatal(err)
	}
	infected, _ = st.PlayerByName(infected.Name)
	if !infected.HasModifier(domain.ModZombie, st.Day) {
		t.Fatal("pending player should have risen")
	}
	if infected.HasModifier(domain.ModPendingRise, st.Day) {
		t.Fatal("rise should consume the pending flag")
	}

	// A second night-start must not touch them again.
	if effects := ev.OnNightStart(st); len(effects) != 0 {
		t.Errorf("second night-start produced %d effects, want 0", len(effects))
	}

	// Dying again (it cannot) or re-reporting the death must not re-queue.
	if effects := ev.OnDeath(st, infected, game.ReasonAssassinated); len(effects) != 0 {
		t.Errorf("risen zombie re-queued for rise: %d effects", len(effects))
	}
}

func TestGunNut_CounterRate(t *testing.T) {
	st := villageState(t)
	ev := NewGunNutEvent(st.Rand)

	target := domain.NewPlayer("Target", domain.RoleVillager, "")
	target.AddModifier(domain.NewModifier(domain.ModGunNut, "event:gun_nut"))

	hits := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		if ev.CheckCounterAttack(st, target) {
			hits++
		}
	}
	rate := float64(hits) / trials
	if rate < 0.35 || rate > 0.65 {
		t.Errorf("counter rate = %.2f over %d trials, want within [0.35, 0.65]", rate, trials)
	}

	unarmed := domain.NewPlayer("Unarmed", domain.RoleVillager, "")
	for i := 0; i < 50; i++ {
		if ev.CheckCounterAttack(st, unarmed) {
			t.Fatal("player without the modifier countered an attack")
		}
	}
}

func TestGhost_EliminationChance(t *testing.T) {
	st := villageState(t)
	ev := NewGhostEvent(st.Rand)
	if err := ev.Setup(st, NewEligibility(st.Rand)); err != nil {
		t.Fatal(err)
	}
	victim := domain.NewPlayer("Victim", domain.RoleVillager, "")

	ghosts := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		if len(ev.OnDeath(st, victim, game.ReasonAssassinated)) > 0 {
			ghosts++
		}
	}
	rate := float64(ghosts) / trials
	if rate < 0.03 || rate > 0.20 {
		t.Errorf("ghost rate = %.2f over %d trials, want within [0.03, 0.20]", rate, trials)
	}
}

func TestJester_WinsOnlyByLynch(t *testing.T) {
	st := villageState(t)
	ev := NewJesterEvent()
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	var jester *domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModJester, st.Day) {
			jester = p
		}
	}
	if jester == nil {
		t.Fatal("setup flagged nobody")
	}

	if effects := ev.OnDeath(st, jester, game.ReasonAssassinated); len(effects) != 0 {
		t.Error("night kill must not trigger the jester win")
	}
	effects := ev.OnDeath(st, jester, game.ReasonLynched)
	if len(effects) != 1 || effects[0].Type != domain.EffectJesterVictory {
		t.Fatalf("lynch produced %v, want a single jester_victory", effects)
	}

	if err := st.ApplyEffects(effects); err != nil {
		t.Fatal(err)
	}
	if !st.GameOver || st.Winner != game.WinnerJester || st.WinnerName != jester.Name {
		t.Errorf("game over = %v winner = %q (%q), want jester win for %s",
			st.GameOver, st.Winner, st.WinnerName, jester.Name)
	}
}

func TestDrunk_RedirectsVotes(t *testing.T) {
	st := villageState(t)
	ev := NewDrunkEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	var drunk *domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModDrunk, st.Day) {
			drunk = p
		}
	}
	if drunk == nil {
		t.Fatal("setup flagged nobody")
	}

	target, redirected := ev.RedirectVote(st, drunk, "Alice")
	if !redirected {
		t.Error("drunk vote should be redirected")
	}
	if target == drunk.Name {
		t.Error("redirect landed on the voter themselves")
	}

	sober, _ := st.PlayerByName("Alice")
	if _, redirected := ev.RedirectVote(st, sober, "Bob"); redirected {
		t.Error("sober vote must pass through untouched")
	}
}

func TestLovers_HeartbreakDelay(t *testing.T) {
	st := villageState(t)
	ev := NewLoversEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	var lovers []*domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModLover, st.Day) {
			lovers = append(lovers, p)
		}
	}
	if len(lovers) != 2 {
		t.Fatalf("got %d lovers, want 2", len(lovers))
	}
	first, second := lovers[0], lovers[1]

	// The kill lands mid-night, after the arming pass already ran, so
	// the same night's end produces nothing.
	ev.OnNightStart(st)
	first.Alive = false
	ev.OnDeath(st, first, game.ReasonAssassinated)
	if effects := ev.OnNightEnd(st); len(effects) != 0 {
		t.Fatalf("heartbreak fired on the same night: %v", effects)
	}
	if !second.Alive {
		t.Fatal("survivor died too early")
	}

	// The following night it arms and resolves.
	ev.OnNightStart(st)
	effects := ev.OnNightEnd(st)
	if len(effects) != 1 || effects[0].Type != domain.EffectHeartbreakDeath {
		t.Fatalf("second night-end produced %v, want one heartbreak_death", effects)
	}
	if got := effects[0].DataString("player"); got != second.Name {
		t.Errorf("heartbreak targets %q, want %q", got, second.Name)
	}
}

// TestLovers_LynchHeartbreakNextNight pins the gallows timing: a lover
// lynched during the day breaks the survivor's heart on the very next
// night, not a night later.
func TestLovers_LynchHeartbreakNextNight(t *testing.T) {
	st := villageState(t)
	ev := NewLoversEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	var lovers []*domain.Player
	for _, p := range st.AlivePlayers() {
		if p.HasModifier(domain.ModLover, st.Day) {
			lovers = append(lovers, p)
		}
	}
	if len(lovers) != 2 {
		t.Fatalf("got %d lovers, want 2", len(lovers))
	}
	first, second := lovers[0], lovers[1]

	// Day lynch: no night hook runs between the death and nightfall.
	first.Alive = false
	ev.OnDeath(st, first, game.ReasonLynched)

	ev.OnNightStart(st)
	effects := ev.OnNightEnd(st)
	if len(effects) != 1 || effects[0].Type != domain.EffectHeartbreakDeath {
		t.Fatalf("night after the lynch produced %v, want one heartbreak_death", effects)
	}
	if got := effects[0].DataString("player"); got != second.Name {
		t.Errorf("heartbreak targets %q, want %q", got, second.Name)
	}
}

func TestBodyguard_SacrificeOnce(t *testing.T) {
	st := villageState(t)
	ev := NewBodyguardEvent()
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	bodyguard, ok := ActiveBodyguard(st)
	if !ok {
		t.Fatal("setup flagged nobody")
	}
	ward, _ := st.PlayerByName("Alice")
	SetGuardTarget(bodyguard, ward.Name)

	effects, intercepted := ev.InterceptKill(st, ward)
	if !intercepted {
		t.Fatal("guarded target should be intercepted")
	}
	if err := st.ApplyEffects(effects); err != nil {
		t.Fatal(err)
	}

	bodyguard, _ = st.PlayerByName(bodyguard.Name)
	if bodyguard.Alive {
		t.Error("bodyguard should die in the ward's place")
	}
	if ward.Alive != true {
		t.Error("ward should survive")
	}
	if _, ok := ActiveBodyguard(st); ok {
		t.Error("ability should be permanently spent after the sacrifice")
	}
	if _, again := ev.InterceptKill(st, ward); again {
		t.Error("spent bodyguard intercepted a second kill")
	}
}

func TestSuicidal_RollRate(t *testing.T) {
	st := villageState(t)
	ev := NewSuicidalEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	deaths := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		deaths += len(ev.OnNightEnd(st))
	}
	rate := float64(deaths) / trials
	if rate < 0.10 || rate > 0.32 {
		t.Errorf("suicide rate = %.2f over %d trials, want near 0.20", rate, trials)
	}
}

func TestInsomniac_SightingPoolIncludesDeadZombies(t *testing.T) {
	st := villageState(t)
	ev := NewInsomniacEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	// Kill a player and raise them as a zombie.
	zed, _ := st.PlayerByName("Iris")
	zed.Alive = false
	zed.AddModifier(domain.NewModifier(domain.ModZombie, "event:zombie"))

	seen := false
	for _, p := range ev.movers(st) {
		if p.Name == zed.Name {
			seen = true
		}
	}
	if !seen {
		t.Error("dead zombie missing from the sighting pool")
	}
}

// TestInsomniac_SightingPoolIncludesRisingZombies covers the first
// night of an outbreak: a corpse queued to rise has pending_rise but
// not yet the zombie modifier when sightings are picked, and it must
// still be on the prowl.
func TestInsomniac_SightingPoolIncludesRisingZombies(t *testing.T) {
	st := villageState(t)
	ev := NewInsomniacEvent(st.Rand)
	pool := NewEligibility(st.Rand)
	if err := ev.Setup(st, pool); err != nil {
		t.Fatal(err)
	}

	riser, _ := st.PlayerByName("Iris")
	riser.Alive = false
	riser.AddModifier(domain.NewModifier(domain.ModPendingRise, "event:zombie"))

	seen := false
	for _, p := range ev.movers(st) {
		if p.Name == riser.Name {
			seen = true
		}
	}
	if !seen {
		t.Error("rising zombie missing from the sighting pool")
	}
}

func TestGhost_InactiveEventNeverRolls(t *testing.T) {
	st := villageState(t)
	ev := NewGhostEvent(st.Rand)
	victim := domain.NewPlayer("Victim", domain.RoleVillager, "")

	for i := 0; i < 100; i++ {
		if len(ev.OnDeath(st, victim, game.ReasonAssassinated)) != 0 {
			t.Fatal("ghosts appeared in a game without the ghost event")
		}
	}
}

func TestLovers_UnreciprocatedHeartbreak(t *testing.T) {
	st := villageState(t)
	ev := NewLoversEvent(st.Rand)

	// A serum-induced crush: Bob loves Alice, Alice has no modifier.
	bob, _ := st.PlayerByName("Bob")
	bob.AddModifier(
		domain.NewModifier(domain.ModLover, "role:mad_scientist").
			WithData("partner", "Alice"),
	)

	alice, _ := st.PlayerByName("Alice")
	alice.Alive = false
	ev.OnDeath(st, alice, game.ReasonLynched)

	// Arms at the next night-start, fires at that night's end.
	ev.OnNightStart(st)
	effects := ev.OnNightEnd(st)
	if len(effects) != 1 || effects[0].DataString("player") != "Bob" {
		t.Fatalf("night after the lynch produced %v, want Bob's heartbreak", effects)
	}
}

func TestRegistry_ModifierHooksRunWithoutActivation(t *testing.T) {
	st := villageState(t)
	r := NewRegistry(st.Rand, testLogger())

	// No Activate call, but an injected drunk modifier still redirects.
	drunk, _ := st.PlayerByName("Elena")
	drunk.AddModifier(domain.NewModifier(domain.ModDrunk, "role:mad_scientist"))

	if _, redirected := r.RedirectVote(st, drunk, "Alice"); !redirected {
		t.Error("injected drunk modifier should redirect even when the drunk event is inactive")
	}

	sober, _ := st.PlayerByName("Felix")
	if _, redirected := r.RedirectVote(st, sober, "Alice"); redirected {
		t.Error("sober vote redirected")
	}
}
