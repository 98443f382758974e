package domain

import "testing"

func TestPlayer_HasModifier_Expiry(t *testing.T) {
	p := NewPlayer("Alice", RoleVillager, "")
	p.AddModifier(NewModifier(ModProtected, "role:doctor").WithExpiry(2))

	if !p.HasModifier(ModProtected, 2) {
		t.Error("modifier expiring on day 2 should still count on day 2")
	}
	if p.HasModifier(ModProtected, 3) {
		t.Error("modifier expiring on day 2 should not count on day 3")
	}
}

func TestPlayer_AddModifier_ReplacesSameType(t *testing.T) {
	p := NewPlayer("Alice", RoleDoctor, "")
	p.AddModifier(NewModifier(ModLastProtected, "role:doctor").WithData("target", "Bob"))
	p.AddModifier(NewModifier(ModLastProtected, "role:doctor").WithData("target", "Clara"))

	count := 0
	for _, m := range p.Modifiers {
		if m.Type == ModLastProtected {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d last_protected modifiers, want 1", count)
	}
	m, _ := p.GetModifier(ModLastProtected)
	if got := m.DataString("target"); got != "Clara" {
		t.Errorf("target = %q, want %q", got, "Clara")
	}
}

func TestPlayer_DisplayRole(t *testing.T) {
	tests := []struct {
		name     string
		infected bool
		zombie   bool
		alive    bool
		want     string
	}{
		{"healthy villager", false, false, true, "Villager"},
		{"infected alive", true, false, true, "Villager (Infected)"},
		{"infected dead", true, false, false, "Zombie"},
		{"risen zombie", true, true, false, "Zombie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alice", RoleVillager, "")
			if tt.infected {
				p.AddModifier(NewModifier(ModInfected, "event:zombie"))
			}
			if tt.zombie {
				p.AddModifier(NewModifier(ModZombie, "event:zombie"))
			}
			p.Alive = tt.alive
			if got := p.DisplayRole(1); got != tt.want {
				t.Errorf("DisplayRole() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlayer_UpdateModifiers(t *testing.T) {
	p := NewPlayer("Alice", RoleVillager, "")
	p.AddModifier(NewModifier(ModProtected, "role:doctor").WithExpiry(1))
	p.AddModifier(NewModifier(ModJester, "event:jester"))

	p.UpdateModifiers(2)

	if p.HasModifier(ModProtected, 2) {
		t.Error("expired protection should be deactivated")
	}
	if !p.HasModifier(ModJester, 2) {
		t.Error("permanent modifier should survive the sweep")
	}
}

func TestNewPlayer_ZombieStartsInfected(t *testing.T) {
	p := NewPlayer("Zed", RoleZombie, "")
	if !p.HasModifier(ModInfected, 1) {
		t.Error("zombie role should start with the infected modifier")
	}
}
