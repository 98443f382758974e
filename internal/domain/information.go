package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// InfoCategory classifies a piece of information
type InfoCategory string

const (
	InfoDeath       InfoCategory = "death"
	InfoRoleReveal  InfoCategory = "role_reveal"
	InfoVote        InfoCategory = "vote"
	InfoStatement   InfoCategory = "statement"
	InfoAction      InfoCategory = "action"
	InfoNightResult InfoCategory = "night_result"
	InfoTeamInfo    InfoCategory = "team_info"
	InfoGameState   InfoCategory = "game_state"
)

// VisibilityScope defines how widely a piece of information is shared
type VisibilityScope string

const (
	ScopePublic  VisibilityScope = "public"
	ScopePrivate VisibilityScope = "private"
	ScopeTeam    VisibilityScope = "team"
	ScopeRole    VisibilityScope = "role"
)

// Visibility defines who can see a piece of information. Targets holds
// player names for private scope, team names for team scope and role
// names for role scope; it is unused for public scope.
type Visibility struct {
	Scope   VisibilityScope `json:"scope"`
	Targets []string        `json:"targets,omitempty"`
}

// Public returns a visibility everyone can see
func Public() Visibility {
	return Visibility{Scope: ScopePublic}
}

// PrivateTo returns a visibility restricted to the named players
func PrivateTo(names ...string) Visibility {
	return Visibility{Scope: ScopePrivate, Targets: names}
}

// TeamScoped returns a visibility restricted to a team
func TeamScoped(team Team) Visibility {
	return Visibility{Scope: ScopeTeam, Targets: []string{team.String()}}
}

// RoleScoped returns a visibility restricted to a role
func RoleScoped(role Role) Visibility {
	return Visibility{Scope: ScopeRole, Targets: []string{role.String()}}
}

// IsVisibleTo checks whether information with this visibility can be
// seen by the named player. This predicate is the single source of
// truth for who-can-see-what.
func (v Visibility) IsVisibleTo(playerName string, playerTeam Team, playerRole Role) bool {
	switch v.Scope {
	case ScopePublic:
		return true
	case ScopePrivate:
		for _, t := range v.Targets {
			if t == playerName {
				return true
			}
		}
		return false
	case ScopeTeam:
		if playerTeam == "" {
			return false
		}
		for _, t := range v.Targets {
			if t == playerTeam.String() {
				return true
			}
		}
		return false
	case ScopeRole:
		if playerRole == "" {
			return false
		}
		for _, t := range v.Targets {
			if t == playerRole.String() {
				return true
			}
		}
		return false
	}
	return false
}

// Information is an immutable fact in the game. Content and visibility
// never change after creation; only the revealed-to set grows.
type Information struct {
	ID         string          `json:"id"`
	Content    string          `json:"content"`
	Timestamp  time.Time       `json:"timestamp"`
	Source     string          `json:"source"`
	Visibility Visibility      `json:"visibility"`
	Category   InfoCategory    `json:"category"`
	Day        int             `json:"day"`
	RevealedTo map[string]bool `json:"revealedTo,omitempty"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// NewInformation constructs an information record with a fresh ID
func NewInformation(content, source string, category InfoCategory, visibility Visibility, day int) *Information {
	return &Information{
		ID:         uuid.NewString(),
		Content:    content,
		Timestamp:  time.Now(),
		Source:     source,
		Visibility: visibility,
		Category:   category,
		Day:        day,
		RevealedTo: make(map[string]bool),
		Metadata:   make(map[string]any),
	}
}

// InfoFilter holds the ANDed filters for an information query. Nil or
// zero fields are ignored.
type InfoFilter struct {
	Category  InfoCategory
	Day       int  // used when HasDay is true so day 0 stays queryable
	HasDay    bool
	Source    string
	After     time.Time
	Before    time.Time
	VisibleTo string // player name; Team/Role qualify the visibility check
	Team      Team
	Role      Role
}

// InformationStore is the central store of all information in the game
type InformationStore struct {
	records    map[string]*Information
	order      []string // insertion order for stable chronological reads
	byCategory map[InfoCategory][]string
	byDay      map[int][]string
}

// NewInformationStore creates an empty information store
func NewInformationStore() *InformationStore {
	return &InformationStore{
		records:    make(map[string]*Information),
		byCategory: make(map[InfoCategory][]string),
		byDay:      make(map[int][]string),
	}
}

// Add stores an information record and returns its ID
func (s *InformationStore) Add(info *Information) string {
	s.records[info.ID] = info
	s.order = append(s.order, info.ID)
	s.byCategory[info.Category] = append(s.byCategory[info.Category], info.ID)
	s.byDay[info.Day] = append(s.byDay[info.Day], info.ID)
	return info.ID
}

// Get returns an information record by ID
func (s *InformationStore) Get(id string) (*Information, bool) {
	info, ok := s.records[id]
	return info, ok
}

// Count returns the total number of stored records
func (s *InformationStore) Count() int {
	return len(s.records)
}

// Query returns records matching all set filters, ordered by time
func (s *InformationStore) Query(f InfoFilter) []*Information {
	var candidates []string
	switch {
	case f.Category != "":
		candidates = s.byCategory[f.Category]
	case f.HasDay:
		candidates = s.byDay[f.Day]
	default:
		candidates = s.order
	}

	var results []*Information
	for _, id := range candidates {
		info := s.records[id]
		if f.Category != "" && info.Category != f.Category {
			continue
		}
		if f.HasDay && info.Day != f.Day {
			continue
		}
		if f.Source != "" && info.Source != f.Source {
			continue
		}
		if !f.After.IsZero() && info.Timestamp.Before(f.After) {
			continue
		}
		if !f.Before.IsZero() && info.Timestamp.After(f.Before) {
			continue
		}
		if f.VisibleTo != "" && !info.Visibility.IsVisibleTo(f.VisibleTo, f.Team, f.Role) {
			continue
		}
		results = append(results, info)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	return results
}

// VisibleTo returns all records visible to a player, ordered by time
func (s *InformationStore) VisibleTo(playerName string, team Team, role Role) []*Information {
	return s.Query(InfoFilter{VisibleTo: playerName, Team: team, Role: role})
}

// ByCategory returns all records of a category in insertion order
func (s *InformationStore) ByCategory(category InfoCategory) []*Information {
	ids := s.byCategory[category]
	results := make([]*Information, 0, len(ids))
	for _, id := range ids {
		results = append(results, s.records[id])
	}
	return results
}

// ByDay returns all records from a specific day in insertion order
func (s *InformationStore) ByDay(day int) []*Information {
	ids := s.byDay[day]
	results := make([]*Information, 0, len(ids))
	for _, id := range ids {
		results = append(results, s.records[id])
	}
	return results
}
