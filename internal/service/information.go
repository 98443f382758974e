package service

import (
	"log/slog"
	"strings"
	"time"

	"assassins/internal/domain"
)

// InformationService manages information flow and revelation to
// players. Every reveal both creates an information record with the
// right visibility and explicitly grants the record to the knowledge
// state of every player who should currently have access.
type InformationService struct {
	Store     *domain.InformationStore
	knowledge map[string]*domain.KnowledgeState
	recorder  Recorder
	logger    *slog.Logger
}

// NewInformationService creates an information service backed by a
// fresh store.
func NewInformationService(logger *slog.Logger) *InformationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InformationService{
		Store:     domain.NewInformationStore(),
		knowledge: make(map[string]*domain.KnowledgeState),
		logger:    logger,
	}
}

// SetRecorder attaches an optional transcript recorder
func (s *InformationService) SetRecorder(r Recorder) {
	s.recorder = r
}

// RegisterPlayer starts tracking a player's knowledge
func (s *InformationService) RegisterPlayer(playerName string) {
	if _, ok := s.knowledge[playerName]; !ok {
		s.knowledge[playerName] = domain.NewKnowledgeState(playerName)
	}
}

// Knowledge returns a player's knowledge state, if registered
func (s *InformationService) Knowledge(playerName string) (*domain.KnowledgeState, bool) {
	k, ok := s.knowledge[playerName]
	return k, ok
}

func (s *InformationService) record(info *domain.Information) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordInformation(info); err != nil {
		s.logger.Warn("transcript record failed", "error", err)
	}
}

// RevealDeath creates a public death record and grants it to every
// registered player. role should already be the display role.
func (s *InformationService) RevealDeath(playerName, role, cause string, day int) string {
	info := domain.NewInformation(
		playerName+" died. They were "+role+".",
		"game", domain.InfoDeath, domain.Public(), day,
	)
	info.Metadata["cause"] = cause
	id := s.Store.Add(info)
	for name, k := range s.knowledge {
		k.Grant(id)
		info.RevealedTo[name] = true
	}
	s.record(info)
	if s.recorder != nil {
		if err := s.recorder.RecordElimination(playerName, role, cause, day); err != nil {
			s.logger.Warn("transcript record failed", "error", err)
		}
	}
	return id
}

// RevealRole reveals a player's role privately to the named players
func (s *InformationService) RevealRole(playerName, role string, toPlayers []string, day int) string {
	info := domain.NewInformation(
		playerName+" is "+role+".",
		"game", domain.InfoRoleReveal, domain.PrivateTo(toPlayers...), day,
	)
	id := s.Store.Add(info)
	for _, name := range toPlayers {
		if k, ok := s.knowledge[name]; ok {
			k.Grant(id)
			info.RevealedTo[name] = true
		}
	}
	s.record(info)
	return id
}

// RevealToPlayer reveals private information to a single player
func (s *InformationService) RevealToPlayer(playerName, content string, category domain.InfoCategory, day int) string {
	info := domain.NewInformation(content, "game", category, domain.PrivateTo(playerName), day)
	id := s.Store.Add(info)
	if k, ok := s.knowledge[playerName]; ok {
		k.Grant(id)
		info.RevealedTo[playerName] = true
	}
	s.record(info)
	return id
}

// RevealToTeam reveals information to every member of a team. The
// caller supplies the current roster since team membership can change.
func (s *InformationService) RevealToTeam(team domain.Team, content string, category domain.InfoCategory, day int, members []string) string {
	info := domain.NewInformation(content, "game", category, domain.TeamScoped(team), day)
	id := s.Store.Add(info)
	for _, name := range members {
		if k, ok := s.knowledge[name]; ok {
			k.Grant(id)
			info.RevealedTo[name] = true
		}
	}
	s.record(info)
	return id
}

// RevealToAll reveals public information to every registered player
func (s *InformationService) RevealToAll(content, source string, category domain.InfoCategory, day int) string {
	if source == "" {
		source = "game"
	}
	info := domain.NewInformation(content, source, category, domain.Public(), day)
	id := s.Store.Add(info)
	for name, k := range s.knowledge {
		k.Grant(id)
		info.RevealedTo[name] = true
	}
	s.record(info)
	return id
}

// ContextFilter narrows what BuildContextFor includes
type ContextFilter struct {
	Category domain.InfoCategory
	Day      int
	HasDay   bool
	Since    time.Time
}

// BuildContextFor concatenates the content of everything a player
// knows, in chronological order. This is the only sanctioned way for
// the narrative collaborator to learn what a player knows.
func (s *InformationService) BuildContextFor(playerName string, filter ContextFilter) string {
	k, ok := s.knowledge[playerName]
	if !ok {
		return ""
	}
	known := k.Known(s.Store, filter.Category, filter.Day, filter.HasDay)
	var lines []string
	for _, info := range known {
		if !filter.Since.IsZero() && info.Timestamp.Before(filter.Since) {
			continue
		}
		lines = append(lines, info.Content)
	}
	return strings.Join(lines, "\n")
}

// Summary returns a formatted knowledge summary for a player
func (s *InformationService) Summary(playerName string, category domain.InfoCategory) string {
	k, ok := s.knowledge[playerName]
	if !ok {
		return "No information available."
	}
	return k.Summary(s.Store, category)
}

// PublicInfo returns all public records, optionally for a single day
func (s *InformationService) PublicInfo(day int, hasDay bool) []*domain.Information {
	all := s.Store.Query(domain.InfoFilter{Day: day, HasDay: hasDay})
	public := make([]*domain.Information, 0, len(all))
	for _, info := range all {
		if info.Visibility.Scope == domain.ScopePublic {
			public = append(public, info)
		}
	}
	return public
}
