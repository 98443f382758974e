package domain

import "fmt"

// Player represents a player in the game. All soft state (drunk,
// infected, protected, ...) lives in the modifier list; the struct
// itself carries only the player's persistent identity.
type Player struct {
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Team        Team        `json:"team"`
	Personality string      `json:"personality"`
	Alive       bool        `json:"alive"`
	Modifiers   []*Modifier `json:"modifiers,omitempty"`
}

// NewPlayer creates a living player with the given role
func NewPlayer(name string, role Role, personality string) *Player {
	p := &Player{
		Name:        name,
		Role:        role,
		Team:        RoleTeam(role),
		Personality: personality,
		Alive:       true,
	}
	// The Zombie role starts secretly infected.
	if role == RoleZombie {
		p.AddModifier(NewModifier(ModInfected, "role:zombie"))
	}
	return p
}

// Clone returns a deep copy of the player, including modifiers
func (p *Player) Clone() *Player {
	c := *p
	c.Modifiers = make([]*Modifier, len(p.Modifiers))
	for i, m := range p.Modifiers {
		c.Modifiers[i] = m.Clone()
	}
	return &c
}

// IsAssassin returns true if the player is on the assassins team
func (p *Player) IsAssassin() bool {
	return p.Team == TeamAssassins
}

// HasModifier reports whether the player carries an active, unexpired
// modifier of the given type relative to the current day.
func (p *Player) HasModifier(t ModifierType, currentDay int) bool {
	for _, m := range p.Modifiers {
		if m.Type == t && m.Active && !m.IsExpired(currentDay) {
			return true
		}
	}
	return false
}

// GetModifier returns the active modifier of the given type, if any
func (p *Player) GetModifier(t ModifierType) (*Modifier, bool) {
	for _, m := range p.Modifiers {
		if m.Type == t && m.Active {
			return m, true
		}
	}
	return nil, false
}

// AddModifier attaches a modifier. A new modifier replaces any
// existing one of the same type so a player never carries
// conflicting duplicates.
func (p *Player) AddModifier(mod *Modifier) {
	kept := p.Modifiers[:0]
	for _, m := range p.Modifiers {
		if m.Type != mod.Type {
			kept = append(kept, m)
		}
	}
	p.Modifiers = append(kept, mod)
}

// RemoveModifier deactivates all active modifiers of the given type
// and reports whether anything changed.
func (p *Player) RemoveModifier(t ModifierType) bool {
	removed := false
	for _, m := range p.Modifiers {
		if m.Type == t && m.Active {
			m.Deactivate()
			removed = true
		}
	}
	return removed
}

// UpdateModifiers deactivates modifiers that have expired relative to
// the current day.
func (p *Player) UpdateModifiers(currentDay int) {
	for _, m := range p.Modifiers {
		if m.Active && m.IsExpired(currentDay) {
			m.Deactivate()
		}
	}
}

// ActiveModifiers returns all currently active modifiers
func (p *Player) ActiveModifiers() []*Modifier {
	active := make([]*Modifier, 0, len(p.Modifiers))
	for _, m := range p.Modifiers {
		if m.Active {
			active = append(active, m)
		}
	}
	return active
}

// DisplayRole returns the role as it should be shown, accounting for
// infection: an infected player looks like a Villager while alive and
// a Zombie once dead or risen.
func (p *Player) DisplayRole(currentDay int) string {
	switch {
	case p.HasModifier(ModInfected, currentDay) && p.Alive:
		return "Villager (Infected)"
	case p.HasModifier(ModZombie, currentDay),
		p.HasModifier(ModInfected, currentDay) && !p.Alive:
		return "Zombie"
	}
	return p.Role.String()
}

// String returns a short human-readable description of the player
func (p *Player) String() string {
	status := "alive"
	if !p.Alive {
		status = "dead"
	}
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Role, status)
}
