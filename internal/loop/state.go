package loop

import "fmt"

// State is the loop's current phase.
type State int32

const (
	StateIdle State = iota
	StateChecking
	StateFetching
	StateAnalyzing
	StateRendering
	StateSleeping
	StateBackoff
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateFetching:
		return "fetching"
	case StateAnalyzing:
		return "analyzing"
	case StateRendering:
		return "rendering"
	case StateSleeping:
		return "sleeping"
	case StateBackoff:
		return "backoff"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
