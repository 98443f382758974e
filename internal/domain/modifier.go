package domain

// ModifierType identifies a kind of player modifier
type ModifierType string

// Modifier types attached by events, roles and the effect engine.
const (
	ModInfected      ModifierType = "infected"       // carries the zombie virus while alive
	ModZombie        ModifierType = "zombie"         // risen, actively hunting
	ModPendingRise   ModifierType = "pending_rise"   // dead and queued to rise next night
	ModGhost         ModifierType = "ghost"          // data: "target" = haunted player
	ModDrunk         ModifierType = "drunk"          // vote is redirected
	ModJester        ModifierType = "jester"         // wins if lynched
	ModPriest        ModifierType = "priest"         // data: "charges" = resurrections left
	ModLover         ModifierType = "lover"          // data: "partner" = other lover
	ModBodyguard     ModifierType = "bodyguard"      // data: "active" = sacrifice available
	ModGunNut        ModifierType = "gun_nut"        // may counter-attack
	ModInsomniac     ModifierType = "insomniac"      // sees a night mover
	ModSleepwalker   ModifierType = "sleepwalker"    // wanders at night
	ModSuicidal      ModifierType = "suicidal"       // 20% self-elimination per night
	ModProtected     ModifierType = "protected"      // doctor protection, expires next day
	ModDead          ModifierType = "dead"           // data: "cause"
	ModVigilanteUsed ModifierType = "vigilante_used" // one-shot ability spent
	ModLastProtected ModifierType = "last_protected" // data: "target" = doctor's previous save
	ModTruthSerum    ModifierType = "truth_serum"    // compelled to reveal role next day
)

// Modifier is a typed, possibly-expiring status attached to a player.
// A zero ExpiresOn means the modifier is permanent.
type Modifier struct {
	Type      ModifierType   `json:"type"`
	Source    string         `json:"source"`
	Active    bool           `json:"active"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresOn int            `json:"expiresOn,omitempty"`
	AppliedOn int            `json:"appliedOn"`
}

// NewModifier creates an active modifier of the given type
func NewModifier(t ModifierType, source string) *Modifier {
	return &Modifier{
		Type:   t,
		Source: source,
		Active: true,
		Data:   make(map[string]any),
	}
}

// WithData sets a data key on the modifier and returns it for chaining
func (m *Modifier) WithData(key string, value any) *Modifier {
	if m.Data == nil {
		m.Data = make(map[string]any)
	}
	m.Data[key] = value
	return m
}

// WithExpiry sets the day after which the modifier no longer applies
func (m *Modifier) WithExpiry(day int) *Modifier {
	m.ExpiresOn = day
	return m
}

// WithAppliedOn records the day the modifier was attached
func (m *Modifier) WithAppliedOn(day int) *Modifier {
	m.AppliedOn = day
	return m
}

// Clone returns a deep copy of the modifier
func (m *Modifier) Clone() *Modifier {
	c := *m
	if m.Data != nil {
		c.Data = make(map[string]any, len(m.Data))
		for k, v := range m.Data {
			c.Data[k] = v
		}
	}
	return &c
}

// IsExpired reports whether the modifier has expired relative to the
// current day. Expiry is strict: a modifier expiring on day 2 still
// counts on day 2 and stops counting on day 3.
func (m *Modifier) IsExpired(currentDay int) bool {
	if m.ExpiresOn == 0 {
		return false
	}
	return currentDay > m.ExpiresOn
}

// Deactivate marks the modifier as no longer in effect
func (m *Modifier) Deactivate() {
	m.Active = false
}

// DataString returns a string value from the modifier's data payload
func (m *Modifier) DataString(key string) string {
	if m.Data == nil {
		return ""
	}
	s, _ := m.Data[key].(string)
	return s
}

// DataInt returns an integer value from the modifier's data payload
func (m *Modifier) DataInt(key string) int {
	if m.Data == nil {
		return 0
	}
	switch v := m.Data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// DataBool returns a boolean value from the modifier's data payload
func (m *Modifier) DataBool(key string) bool {
	if m.Data == nil {
		return false
	}
	b, _ := m.Data[key].(bool)
	return b
}
