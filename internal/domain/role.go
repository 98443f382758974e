package domain

import "strings"

// Team represents a player's alignment
type Team string

const (
	TeamAssassins Team = "assassins"
	TeamVillage   Team = "village"
)

// String returns the string representation of the team
func (t Team) String() string {
	return string(t)
}

// Role represents a player's role in the game
type Role string

const (
	RoleAssassin     Role = "Assassins"
	RoleDoctor       Role = "Doctor"
	RoleDetective    Role = "Detective"
	RoleVigilante    Role = "Vigilante"
	RoleMadScientist Role = "Mad Scientist"
	RoleZombie       Role = "Zombie"
	RoleVillager     Role = "Villager"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the singular display name with an article,
// e.g. "an Assassin" or "a Doctor".
func (r Role) DisplayName() string {
	if r == RoleAssassin {
		return "an Assassin"
	}
	return "a " + string(r)
}

// RoleInfo describes a role's static properties
type RoleInfo struct {
	Name        string
	Team        Team
	Description string
	NightAction bool
}

// roleTable maps each role to its static properties.
// The Zombie is a villager who starts infected without knowing it;
// it has no night action of its own.
var roleTable = map[Role]RoleInfo{
	RoleAssassin: {
		Name:        "Assassins",
		Team:        TeamAssassins,
		Description: "You are part of the Assassins. Work with your fellow Assassins to eliminate villagers at night. Win by outnumbering the villagers.",
		NightAction: true,
	},
	RoleDoctor: {
		Name:        "Doctor",
		Team:        TeamVillage,
		Description: "You are the Doctor. Each night, you can protect one person from being eliminated by the Assassins.",
		NightAction: true,
	},
	RoleDetective: {
		Name:        "Detective",
		Team:        TeamVillage,
		Description: "You are the Detective. Each night, you can investigate one person to learn if they are an Assassin or not.",
		NightAction: true,
	},
	RoleVigilante: {
		Name:        "Vigilante",
		Team:        TeamVillage,
		Description: "You are the Vigilante. ONCE per game, you can choose to eliminate one person at night. You only get ONE shot - use it wisely! Be careful - you could accidentally kill a villager.",
		NightAction: true,
	},
	RoleMadScientist: {
		Name:        "Mad Scientist",
		Team:        TeamVillage,
		Description: "You are the Mad Scientist. Each night you inject one person with your experimental serum, hoping to discover a truth serum that exposes Assassins. Most experiments go... differently.",
		NightAction: true,
	},
	RoleZombie: {
		Name:        "Zombie",
		Team:        TeamVillage,
		Description: "You are infected with a zombie virus, but you don't know it yet. You believe you're a normal Villager trying to survive and help the village win. You have no special powers. IMPORTANT: You want to SURVIVE like everyone else - you don't know what will happen if you die.",
		NightAction: false,
	},
	RoleVillager: {
		Name:        "Villager",
		Team:        TeamVillage,
		Description: "You are a Villager. You have no special powers, but use your voice during the day to help identify the Assassins.",
		NightAction: false,
	},
}

// GetRoleInfo returns the static properties of a role
func GetRoleInfo(r Role) (RoleInfo, bool) {
	info, ok := roleTable[r]
	return info, ok
}

// RoleTeam returns the team a role belongs to
func RoleTeam(r Role) Team {
	if info, ok := roleTable[r]; ok {
		return info.Team
	}
	return TeamVillage
}

// ParseRole converts a role name to a Role, matching
// case-insensitively so config files can spell roles in lowercase.
func ParseRole(name string) (Role, bool) {
	if _, ok := roleTable[Role(name)]; ok {
		return Role(name), true
	}
	for r := range roleTable {
		if strings.EqualFold(string(r), name) {
			return r, true
		}
	}
	return Role(name), false
}
