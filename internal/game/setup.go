package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"assassins/internal/domain"
)

// Player count limits
const (
	MinPlayers = 5
	MaxPlayers = 20
)

// PlayerConfig describes one player before the game starts. Role is
// normally empty and dealt at setup; a set role is honored as-is,
// which is how scripted games pin their casts.
type PlayerConfig struct {
	Name        string      `json:"name" yaml:"name"`
	Personality string      `json:"personality" yaml:"personality"`
	Role        domain.Role `json:"role,omitempty" yaml:"role,omitempty"`
}

// RoleDeck returns the roles dealt for a game of the given size:
// one assassin per four players (at least two), a doctor, a detective,
// a vigilante from seven players, a mad scientist from nine, and
// villagers for the rest.
func RoleDeck(count int) []domain.Role {
	assassins := count / 4
	if assassins < 2 {
		assassins = 2
	}

	var deck []domain.Role
	for i := 0; i < assassins; i++ {
		deck = append(deck, domain.RoleAssassin)
	}
	deck = append(deck, domain.RoleDoctor, domain.RoleDetective)
	if count >= 7 {
		deck = append(deck, domain.RoleVigilante)
	}
	if count >= 9 {
		deck = append(deck, domain.RoleMadScientist)
	}
	for len(deck) < count {
		deck = append(deck, domain.RoleVillager)
	}
	return deck[:count]
}

// CreateGame deals roles, builds the player set and returns fresh game
// state. Players with a preset role keep it; the rest draw from the
// shuffled remainder of the deck.
func CreateGame(configs []PlayerConfig, rng *rand.Rand, logger *slog.Logger) (*State, error) {
	if len(configs) < MinPlayers {
		return nil, fmt.Errorf("%d players: %w", len(configs), domain.ErrNotEnoughPlayers)
	}
	if len(configs) > MaxPlayers {
		return nil, fmt.Errorf("%d players exceeds the maximum of %d", len(configs), MaxPlayers)
	}

	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		key := strings.ToLower(c.Name)
		if key == "" {
			return nil, fmt.Errorf("player with empty name")
		}
		if seen[key] {
			return nil, fmt.Errorf("%q: %w", c.Name, domain.ErrDuplicateName)
		}
		seen[key] = true
	}

	deck := RoleDeck(len(configs))

	// Preset roles consume matching deck slots so the composition
	// stays balanced; extra presets beyond the deck are honored anyway.
	remaining := deck[:0]
	presets := make(map[domain.Role]int)
	for _, c := range configs {
		if c.Role != "" {
			if _, ok := domain.GetRoleInfo(c.Role); !ok {
				return nil, fmt.Errorf("%q for %s: %w", c.Role, c.Name, domain.ErrUnknownRole)
			}
			presets[c.Role]++
		}
	}
	for _, r := range deck {
		if presets[r] > 0 {
			presets[r]--
			continue
		}
		remaining = append(remaining, r)
	}

	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	players := make([]*domain.Player, 0, len(configs))
	next := 0
	for _, c := range configs {
		role := c.Role
		if role == "" {
			if next >= len(remaining) {
				role = domain.RoleVillager
			} else {
				role = remaining[next]
				next++
			}
		}
		players = append(players, domain.NewPlayer(c.Name, role, c.Personality))
	}

	st := NewState(players, rng, logger)
	for _, p := range players {
		logger.Debug("role dealt", "player", p.Name, "role", p.Role)
	}
	return st, nil
}
