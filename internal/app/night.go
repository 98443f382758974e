package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"assassins/internal/agent"
	"assassins/internal/domain"
	"assassins/internal/event"
	"assassins/internal/game"
)

// TruthSerumChance is the Mad Scientist's chance of brewing the real thing
const TruthSerumChance = 0.15

// RunNight executes one full night: event hooks, the hidden role
// actions, attack resolution and the night-end bookkeeping. Deaths are
// collected so the day phase can narrate them.
func (g *Game) RunNight(ctx context.Context) error {
	st := g.State
	g.Logger.Info("night begins", "day", st.Day)
	g.publish("night_start", map[string]any{"day": st.Day})
	g.lastNightDeaths = nil

	aliveBefore := make(map[string]bool)
	for _, p := range st.AlivePlayers() {
		aliveBefore[p.Name] = true
	}

	if err := st.ApplyEffects(g.Registry.OnNightStart(st)); err != nil {
		return fmt.Errorf("night start: %w", err)
	}

	if err := g.zombieAttacks(ctx); err != nil {
		return err
	}
	if st.CheckWinCondition() {
		return nil
	}

	g.blackboardNote(ctx)

	assassinTarget, err := g.assassinTarget(ctx)
	if err != nil {
		return err
	}
	g.doctorProtection(ctx)
	g.detectiveInvestigation(ctx)
	vigilanteTarget := g.vigilanteTarget(ctx)
	g.bodyguardChoice(ctx)
	g.madScientistInjection(ctx)

	if assassinTarget != "" {
		attackers := names(st.AliveByTeam(domain.TeamAssassins))
		if err := g.resolveAttack(assassinTarget, attackers, game.ReasonAssassinated); err != nil {
			return err
		}
	}
	if vigilanteTarget != "" {
		if err := g.resolveAttack(vigilanteTarget, names(st.AliveByRole(domain.RoleVigilante)), game.ReasonShot); err != nil {
			return err
		}
	}

	if err := st.ApplyEffects(g.Registry.OnNightEnd(st)); err != nil {
		return fmt.Errorf("night end: %w", err)
	}

	g.resolvePendingGhosts(ctx)

	for _, p := range st.DeadPlayers() {
		if aliveBefore[p.Name] {
			g.lastNightDeaths = append(g.lastNightDeaths, p.Name)
		}
	}

	st.CheckWinCondition()
	return nil
}

// zombieAttacks resolves every active zombie's hunt. A gun nut counter
// removes the zombie from the outbreak instead of killing the victim.
// Each kill's death hook applies effects, which replaces the player
// map with clones, so hunters are tracked by name and re-fetched every
// pass; the counter removal goes through the effect engine for the
// same reason.
func (g *Game) zombieAttacks(ctx context.Context) error {
	st := g.State
	for _, name := range names(event.ActiveZombies(st)) {
		zombie, ok := st.PlayerByName(name)
		if !ok || !zombie.HasModifier(domain.ModZombie, st.Day) {
			continue
		}
		victims := event.ZombieVictims(st)
		if len(victims) == 0 {
			return nil
		}
		victim := victims[st.Rand.Intn(len(victims))]

		if g.Registry.CheckCounterAttack(st, victim) {
			if err := st.ApplyEffects([]domain.Effect{
				domain.RemoveModifierEffect(zombie.Name, domain.ModZombie, "event:gun_nut"),
			}); err != nil {
				return err
			}
			st.Info.RevealToAll(
				"Gunshots rang out in the night. Something that should not have been walking is not walking anymore.",
				"game", domain.InfoNightResult, st.Day)
			g.Logger.Info("zombie shot down", "zombie", name, "by", victim.Name)
			continue
		}

		victim.AddModifier(
			domain.NewModifier(domain.ModInfected, "event:zombie").
				WithAppliedOn(st.Day),
		)
		if err := st.EliminatePlayer(victim.Name, game.ReasonZombie); err != nil &&
			!errors.Is(err, domain.ErrAlreadyDead) {
			return err
		}
	}
	return nil
}

// blackboardNote gives one random living player the chance to pin an
// anonymous note to the village blackboard, revealed to everyone.
func (g *Game) blackboardNote(ctx context.Context) {
	st := g.State
	alive := st.AlivePlayers()
	if len(alive) == 0 {
		return
	}
	author := alive[st.Rand.Intn(len(alive))]
	a, ok := g.agentFor(author.Name)
	if !ok {
		return
	}
	prompt := g.choicePrompt(author,
		"Under cover of darkness you can pin ONE short anonymous note to the village blackboard. Everyone will read it tomorrow; no one will know it was you. Write the note (one sentence), or write SKIP to leave the board alone.")
	content, _, err := a.Statement(ctx, prompt)
	if err != nil || content == "" || strings.EqualFold(strings.TrimSpace(content), agent.SkipChoice) {
		return
	}
	st.Info.RevealToAll("The village blackboard reads: \""+content+"\"", "blackboard", domain.InfoStatement, st.Day)
	g.publish("blackboard", map[string]any{"day": st.Day, "note": content})

	// The note is anonymous to everyone except the sleepless.
	for _, p := range st.AlivePlayers() {
		if p.Name != author.Name && p.HasModifier(domain.ModInsomniac, st.Day) {
			st.Info.RevealToPlayer(p.Name,
				"You watched "+author.Name+" creep to the blackboard and write tonight's note.",
				domain.InfoNightResult, st.Day)
		}
	}
}

// assassinTarget runs the assassins' secret discussion and team vote.
// Plurality decides; ties break uniformly at random.
func (g *Game) assassinTarget(ctx context.Context) (string, error) {
	st := g.State
	assassins := st.AliveByTeam(domain.TeamAssassins)
	if len(assassins) == 0 {
		return "", nil
	}

	candidates := names(st.AlivePlayers())
	for _, a := range assassins {
		candidates = exclude(candidates, a.Name)
	}
	if len(candidates) == 0 {
		return "", nil
	}

	if len(assassins) > 1 {
		st.Convo.ConductRound(ctx, st.Day, 1, domain.PhaseAssassinDiscussion,
			assassins, domain.TeamScoped(domain.TeamAssassins),
			func(ctx context.Context, speaker *domain.Player, roundContext string) (string, string, error) {
				a, ok := g.agentFor(speaker.Name)
				if !ok {
					return "", "", fmt.Errorf("no agent for %s", speaker.Name)
				}
				return a.Statement(ctx, g.discussionPrompt(speaker, roundContext,
					"Confer secretly with your fellow Assassins about who to eliminate tonight."))
			}, nil)
	}

	counts := make(map[string]int)
	for _, assassin := range assassins {
		a, ok := g.agentFor(assassin.Name)
		if !ok {
			continue
		}
		choice, err := a.Choose(ctx,
			g.choicePrompt(assassin, "Choose tonight's target."), candidates)
		if err != nil {
			g.Logger.Warn("assassin choice failed", "player", assassin.Name, "error", err)
			continue
		}
		counts[choice]++
	}
	if len(counts) == 0 {
		return "", nil
	}

	maxVotes := 0
	for _, c := range counts {
		if c > maxVotes {
			maxVotes = c
		}
	}
	var leaders []string
	for name, c := range counts {
		if c == maxVotes {
			leaders = append(leaders, name)
		}
	}
	target := leaders[st.Rand.Intn(len(leaders))]

	for _, a := range assassins {
		st.Info.RevealToPlayer(a.Name,
			"The Assassins have chosen to eliminate "+target+" tonight.",
			domain.InfoTeamInfo, st.Day)
	}
	return target, nil
}

// doctorProtection asks the doctor who to protect. The doctor may not
// repeat their immediately preceding choice.
func (g *Game) doctorProtection(ctx context.Context) {
	st := g.State
	doctors := st.AliveByRole(domain.RoleDoctor)
	if len(doctors) == 0 {
		return
	}
	doctor := doctors[0]
	a, ok := g.agentFor(doctor.Name)
	if !ok {
		return
	}

	candidates := names(st.AlivePlayers())
	if m, ok := doctor.GetModifier(domain.ModLastProtected); ok {
		candidates = exclude(candidates, m.DataString("target"))
	}
	if len(candidates) == 0 {
		return
	}

	choice, err := a.Choose(ctx,
		g.choicePrompt(doctor, "Choose one person to protect from attack tonight. You cannot protect the same person two nights in a row."),
		candidates)
	if err != nil {
		g.Logger.Warn("doctor choice failed", "error", err)
		return
	}

	target, ok := st.PlayerByName(choice)
	if !ok {
		return
	}
	target.AddModifier(
		domain.NewModifier(domain.ModProtected, "role:doctor").
			WithExpiry(st.Day).
			WithAppliedOn(st.Day),
	)
	doctor.AddModifier(
		domain.NewModifier(domain.ModLastProtected, "role:doctor").
			WithData("target", target.Name).
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(doctor.Name,
		"You protected "+target.Name+" tonight.", domain.InfoAction, st.Day)
}

// detectiveInvestigation asks the detective who to investigate and
// reports the binary result privately.
func (g *Game) detectiveInvestigation(ctx context.Context) {
	st := g.State
	detectives := st.AliveByRole(domain.RoleDetective)
	if len(detectives) == 0 {
		return
	}
	detective := detectives[0]
	a, ok := g.agentFor(detective.Name)
	if !ok {
		return
	}

	candidates := exclude(names(st.AlivePlayers()), detective.Name)
	if len(candidates) == 0 {
		return
	}
	choice, err := a.Choose(ctx,
		g.choicePrompt(detective, "Choose one person to investigate tonight. You will learn whether they are an Assassin."),
		candidates)
	if err != nil {
		g.Logger.Warn("detective choice failed", "error", err)
		return
	}
	target, ok := st.PlayerByName(choice)
	if !ok {
		return
	}
	st.Info.RevealToPlayer(detective.Name,
		"Your investigation: "+investigationResult(target),
		domain.InfoNightResult, st.Day)
}

// vigilanteTarget asks the vigilante whether to spend their single
// shot. Returns the target name or empty for a skip.
func (g *Game) vigilanteTarget(ctx context.Context) string {
	st := g.State
	vigilantes := st.AliveByRole(domain.RoleVigilante)
	if len(vigilantes) == 0 {
		return ""
	}
	vigilante := vigilantes[0]
	if vigilante.HasModifier(domain.ModVigilanteUsed, st.Day) {
		return ""
	}
	a, ok := g.agentFor(vigilante.Name)
	if !ok {
		return ""
	}

	candidates := exclude(names(st.AlivePlayers()), vigilante.Name)
	candidates = append(candidates, agent.SkipChoice)
	choice, err := a.Choose(ctx,
		g.choicePrompt(vigilante, "You may spend your ONE shot tonight, or hold it. Choose a target, or SKIP."),
		candidates)
	if err != nil || choice == agent.SkipChoice {
		return ""
	}

	vigilante.AddModifier(
		domain.NewModifier(domain.ModVigilanteUsed, "role:vigilante").
			WithAppliedOn(st.Day),
	)
	st.Info.RevealToPlayer(vigilante.Name,
		"You took your shot at "+choice+".", domain.InfoAction, st.Day)
	return choice
}

// bodyguardChoice asks the active bodyguard who to guard tonight
func (g *Game) bodyguardChoice(ctx context.Context) {
	st := g.State
	bodyguard, ok := event.ActiveBodyguard(st)
	if !ok {
		return
	}
	a, ok := g.agentFor(bodyguard.Name)
	if !ok {
		return
	}
	candidates := exclude(names(st.AlivePlayers()), bodyguard.Name)
	if len(candidates) == 0 {
		return
	}
	choice, err := a.Choose(ctx,
		g.choicePrompt(bodyguard, "Choose one person to guard tonight. If they are attacked, you will die in their place."),
		candidates)
	if err != nil {
		g.Logger.Warn("bodyguard choice failed", "error", err)
		return
	}
	event.SetGuardTarget(bodyguard, choice)
}

// madScientistInjection runs the nightly experiment: a 15% chance of a
// genuine truth serum, otherwise a random chaotic concoction.
func (g *Game) madScientistInjection(ctx context.Context) {
	st := g.State
	scientists := st.AliveByRole(domain.RoleMadScientist)
	if len(scientists) == 0 {
		return
	}
	scientist := scientists[0]
	a, ok := g.agentFor(scientist.Name)
	if !ok {
		return
	}

	candidates := exclude(names(st.AlivePlayers()), scientist.Name)
	if len(candidates) == 0 {
		return
	}
	choice, err := a.Choose(ctx,
		g.choicePrompt(scientist, "Choose tonight's test subject for your experimental serum."),
		candidates)
	if err != nil {
		g.Logger.Warn("mad scientist choice failed", "error", err)
		return
	}
	target, ok := st.PlayerByName(choice)
	if !ok {
		return
	}

	if st.Rand.Float64() < TruthSerumChance {
		target.AddModifier(
			domain.NewModifier(domain.ModTruthSerum, "role:mad_scientist").
				WithExpiry(st.Day + 1).
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"Eureka! The batch was a TRUE truth serum. "+target.Name+" will be compelled to reveal their role tomorrow.",
			domain.InfoNightResult, st.Day)
		return
	}

	// A failed batch attaches a random affliction instead. The target
	// is never told what was done to them.
	switch st.Rand.Intn(6) {
	case 0:
		target.AddModifier(
			domain.NewModifier(domain.ModInfected, "role:mad_scientist").
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"The culture was... alive. "+target.Name+" is now infected with something you'd rather not name.",
			domain.InfoNightResult, st.Day)
	case 1:
		others := exclude(names(st.AlivePlayers()), target.Name)
		if len(others) == 0 {
			break
		}
		crush := others[st.Rand.Intn(len(others))]
		target.AddModifier(
			domain.NewModifier(domain.ModLover, "role:mad_scientist").
				WithData("partner", crush).
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"The batch was a love potion. "+target.Name+" is now hopelessly devoted to "+crush+", who has no idea.",
			domain.InfoNightResult, st.Day)
	case 2:
		target.AddModifier(
			domain.NewModifier(domain.ModDrunk, "role:mad_scientist").
				WithExpiry(st.Day + 1).
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"The serum fermented. "+target.Name+" will be uselessly drunk tomorrow.",
			domain.InfoNightResult, st.Day)
	case 3:
		target.AddModifier(
			domain.NewModifier(domain.ModInsomniac, "role:mad_scientist").
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"A pure stimulant. "+target.Name+" will never sleep properly again.",
			domain.InfoNightResult, st.Day)
	case 4:
		target.AddModifier(
			domain.NewModifier(domain.ModSleepwalker, "role:mad_scientist").
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"The sedative misfired. "+target.Name+" will wander the village in their sleep.",
			domain.InfoNightResult, st.Day)
	default:
		target.AddModifier(
			domain.NewModifier(domain.ModSuicidal, "role:mad_scientist").
				WithAppliedOn(st.Day),
		)
		st.Info.RevealToPlayer(scientist.Name,
			"The batch curdled into something bleak. "+target.Name+" will not be the same.",
			domain.InfoNightResult, st.Day)
	}
}

// resolveAttack resolves one attack with the fixed precedence:
// counter-attack first, then a bodyguard interception, then the
// doctor's save, and only then the kill.
func (g *Game) resolveAttack(targetName string, attackers []string, cause string) error {
	st := g.State
	target, ok := st.PlayerByName(targetName)
	if !ok || !target.Alive {
		return nil
	}

	if g.Registry.CheckCounterAttack(st, target) {
		live := make([]string, 0, len(attackers))
		for _, name := range attackers {
			if p, ok := st.PlayerByName(name); ok && p.Alive {
				live = append(live, p.Name)
			}
		}
		if len(live) > 0 {
			shot := live[st.Rand.Intn(len(live))]
			if err := st.EliminatePlayer(shot, game.ReasonCounter); err != nil &&
				!errors.Is(err, domain.ErrAlreadyDead) {
				return err
			}
		}
		st.Info.RevealToPlayer(target.Name,
			"Someone came for you in the night. They regretted it.",
			domain.InfoNightResult, st.Day)
		return nil
	}

	if effects, intercepted := g.Registry.InterceptKill(st, target); intercepted {
		if err := st.ApplyEffects(effects); err != nil {
			return err
		}
		st.Info.RevealToAll(
			target.Name+" was attacked in the night, but someone else took the blow.",
			"game", domain.InfoNightResult, st.Day)
		return nil
	}

	if target.HasModifier(domain.ModProtected, st.Day) {
		st.Info.RevealToAll(
			"Someone was attacked in the night, but was saved.",
			"game", domain.InfoNightResult, st.Day)
		return nil
	}

	err := st.EliminatePlayer(target.Name, cause)
	if err != nil && !errors.Is(err, domain.ErrAlreadyDead) {
		return err
	}
	return nil
}

// resolvePendingGhosts lets freshly made ghosts pick who to haunt
func (g *Game) resolvePendingGhosts(ctx context.Context) {
	st := g.State
	for _, ghost := range event.PendingGhosts(st) {
		a, ok := g.agentFor(ghost.Name)
		if !ok {
			continue
		}
		candidates := names(st.AlivePlayers())
		if len(candidates) == 0 {
			return
		}
		choice, err := a.Choose(ctx,
			g.choicePrompt(ghost, "You have died, but you linger. Choose one living player to silently haunt."),
			candidates)
		if err != nil {
			choice = candidates[0]
		}
		if m, ok := ghost.GetModifier(domain.ModGhost); ok {
			m.Data["target"] = choice
		}
		st.Info.RevealToPlayer(ghost.Name,
			"You now haunt "+choice+". Their words will carry your echo.",
			domain.InfoTeamInfo, st.Day)
		g.Logger.Info("haunt chosen", "ghost", ghost.Name, "target", choice)
	}
}
