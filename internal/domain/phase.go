package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseNight:
		return target == PhaseDay
	case PhaseDay:
		return target == PhaseNight
	}
	return false
}

// Next returns the phase that follows this one
func (p Phase) Next() Phase {
	if p == PhaseNight {
		return PhaseDay
	}
	return PhaseNight
}
