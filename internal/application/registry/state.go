package registry

// State represents the lifecycle state of a registered scene
type State int

const (
	StateInactive State = iota
	StateLoading
	StateActive
	StatePaused
	StateTransitioning
	StateUnloading
)

// String returns the string representation of the scene state
func (s State) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateLoading:
		return "Loading"
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	case StateTransitioning:
		return "Transitioning"
	case StateUnloading:
		return "Unloading"
	default:
		return "Unknown"
	}
}
