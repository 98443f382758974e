package domain

import (
	"sort"
	"strings"
)

// KnowledgeState tracks which information records a player has been
// granted access to. Access is granted by explicit reveal operations,
// never by implicit broadcast.
type KnowledgeState struct {
	PlayerName     string          `json:"playerName"`
	InformationIDs map[string]bool `json:"informationIds"`
}

// NewKnowledgeState creates an empty knowledge state for a player
func NewKnowledgeState(playerName string) *KnowledgeState {
	return &KnowledgeState{
		PlayerName:     playerName,
		InformationIDs: make(map[string]bool),
	}
}

// Grant gives the player access to an information record
func (k *KnowledgeState) Grant(infoID string) {
	k.InformationIDs[infoID] = true
}

// GrantAll gives the player access to multiple records
func (k *KnowledgeState) GrantAll(infoIDs []string) {
	for _, id := range infoIDs {
		k.InformationIDs[id] = true
	}
}

// KnowsAbout reports whether the player has access to a record
func (k *KnowledgeState) KnowsAbout(infoID string) bool {
	return k.InformationIDs[infoID]
}

// Count returns how many records the player has access to
func (k *KnowledgeState) Count() int {
	return len(k.InformationIDs)
}

// Known returns the player's accessible records from the store,
// filtered by category and day when set, ordered by time.
func (k *KnowledgeState) Known(store *InformationStore, category InfoCategory, day int, hasDay bool) []*Information {
	var known []*Information
	for id := range k.InformationIDs {
		info, ok := store.Get(id)
		if !ok {
			continue
		}
		if category != "" && info.Category != category {
			continue
		}
		if hasDay && info.Day != day {
			continue
		}
		known = append(known, info)
	}
	sort.SliceStable(known, func(i, j int) bool {
		return known[i].Timestamp.Before(known[j].Timestamp)
	})
	return known
}

// Summary returns a formatted description of what this player knows,
// grouped by category when no category filter is given.
func (k *KnowledgeState) Summary(store *InformationStore, category InfoCategory) string {
	known := k.Known(store, category, 0, false)
	if len(known) == 0 {
		return "No information available."
	}

	var b strings.Builder
	if category != "" {
		for _, info := range known {
			b.WriteString("  - ")
			b.WriteString(info.Content)
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	grouped := make(map[InfoCategory][]string)
	var catOrder []InfoCategory
	for _, info := range known {
		if _, seen := grouped[info.Category]; !seen {
			catOrder = append(catOrder, info.Category)
		}
		grouped[info.Category] = append(grouped[info.Category], info.Content)
	}
	for _, cat := range catOrder {
		b.WriteString("\n")
		b.WriteString(strings.ToUpper(string(cat)))
		b.WriteString(":\n")
		for _, content := range grouped[cat] {
			b.WriteString("  - ")
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
