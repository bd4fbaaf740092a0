package consult

// SessionState tracks where a streaming session is in its lifecycle.
type SessionState int

const (
	StateIdle       SessionState = iota // Before the session starts.
	StateConnecting                     // Credential acquired, opening the push connection.
	StateStreaming                      // Connection up, consuming envelopes.
	StateCompleting                     // Complete envelope received, validating.
	StateDone                           // Payload validated; terminal.
	StateFailed                         // Fatal outcome reported; terminal.
	StateCancelled                      // Caller cancelled; terminal.
)

// Terminal reports whether the state is a terminal resolution. A session
// reaches exactly one terminal state and never leaves it.
func (s SessionState) Terminal() bool {
	return s == StateDone || s == StateFailed || s == StateCancelled
}

// String returns the state name for logging.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateCompleting:
		return "completing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
