package prompt

import (
	"errors"
)

// Status is the lifecycle state of a prompt session.
type Status int

const (
	// StatusIdle accepts keystrokes.
	StatusIdle Status = iota
	// StatusValidating waits for the validator; keystrokes are dropped.
	StatusValidating
	// StatusAccepted is terminal: the buffer has been handed to the caller.
	StatusAccepted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// DefaultErrorMessage is shown when a validator rejects without a message.
const DefaultErrorMessage = "Invalid"

// ErrInvalid rejects a candidate with the default message.
var ErrInvalid = errors.New(DefaultErrorMessage)

// Session holds the state of one prompt invocation. It is not safe for
// concurrent use; the owning event loop serializes access.
type Session struct {
	status  Status
	buffer  string
	lastErr string
}

// NewSession returns an idle session with an empty buffer.
func NewSession() *Session {
	return &Session{}
}

func (s *Session) Status() Status { return s.status }
func (s *Session) Buffer() string { return s.buffer }
func (s *Session) Err() string    { return s.lastErr }

// Edit replaces the buffer with the full current line and clears any error.
// It reports false, and changes nothing, unless the session is idle.
func (s *Session) Edit(line string) bool {
	if s.status != StatusIdle {
		return false
	}
	s.buffer = line
	s.lastErr = ""
	return true
}

// Submit moves an idle session to validating and returns the candidate.
// An empty buffer is a valid candidate.
func (s *Session) Submit() (string, bool) {
	if s.status != StatusIdle {
		return "", false
	}
	s.status = StatusValidating
	return s.buffer, true
}

// Resolve applies the validator outcome for answer. A nil error accepts the
// session; anything else puts it back to idle with answer restored and the
// error message recorded. It reports whether the session was accepted.
func (s *Session) Resolve(answer string, err error) bool {
	if s.status != StatusValidating {
		return false
	}
	s.buffer = answer
	if err == nil {
		s.status = StatusAccepted
		s.lastErr = ""
		return true
	}
	s.status = StatusIdle
	s.lastErr = errorMessage(err)
	return false
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}
