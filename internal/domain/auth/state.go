package auth

// Status is the resolution status of a session as seen by the UI.
type Status int

const (
	// StatusPending means the session has not been resolved yet.
	StatusPending Status = iota
	// StatusAbsent means nobody is signed in.
	StatusAbsent
	// StatusPresent means a valid session exists.
	StatusPresent
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	default:
		return "unknown"
	}
}

// SessionState is the tri-state session value observed by components.
// Session is non-nil only when Status is StatusPresent.
type SessionState struct {
	Status  Status
	Session *Session
}

// Pending returns the unresolved state.
func Pending() SessionState { return SessionState{Status: StatusPending} }

// Absent returns the signed-out state.
func Absent() SessionState { return SessionState{Status: StatusAbsent} }

// Present returns the signed-in state for sess.
func Present(sess Session) SessionState {
	return SessionState{Status: StatusPresent, Session: &sess}
}

func (s SessionState) IsPending() bool { return s.Status == StatusPending }
func (s SessionState) IsAbsent() bool  { return s.Status == StatusAbsent }
func (s SessionState) IsPresent() bool { return s.Status == StatusPresent && s.Session != nil }

// SessionID returns the ID of the present session, or "".
func (s SessionState) SessionID() string {
	if !s.IsPresent() {
		return ""
	}
	return s.Session.ID
}
