package verification

// BadgeState is the collapsed state of the compact indicator
type BadgeState string

const (
	BadgeIdle    BadgeState = "idle"
	BadgeLoading BadgeState = "loading"
	BadgeSuccess BadgeState = "success"
	BadgeError   BadgeState = "error"
)

var badgeLabels = map[BadgeState]string{
	BadgeIdle:    "Verify request",
	BadgeLoading: "Verifying...",
	BadgeSuccess: "Security verified",
	BadgeError:   "Verification failed",
}

// ParseBadgeState maps a string to a badge state, falling back to idle
func ParseBadgeState(s string) BadgeState {
	state := BadgeState(s)
	if _, ok := badgeLabels[state]; ok {
		return state
	}
	return BadgeIdle
}

type BadgeStatus struct {
	State BadgeState `json:"state"`
	Label string     `json:"label"`
}

func badge(state BadgeState) BadgeStatus {
	return BadgeStatus{State: state, Label: badgeLabels[state]}
}

// ComputeBadgeStatus collapses a document into a badge state.
// Before the first document exists the fallback state is reported; idle is only reachable that way.
func ComputeBadgeStatus(doc *Document, fallback BadgeState) BadgeStatus {
	if doc == nil {
		return badge(ParseBadgeState(string(fallback)))
	}

	status := ComputeStatus(doc, false)
	switch {
	case status.AllSuccess:
		return badge(BadgeSuccess)
	case status.HasError:
		return badge(BadgeError)
	default:
		return badge(BadgeLoading)
	}
}
