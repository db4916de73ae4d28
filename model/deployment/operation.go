package deployment

import "fmt"

// Operation is one state-changing contract call issued by the sequencer.
type Operation struct {
	// Label is the human readable name used in console reports,
	// e.g. "Participant 1 registered".
	Label  string
	Method string
	Args   []any
}

// RegisterParticipant builds the registration call for the participant at
// the given 1-based position.
func RegisterParticipant(method string, position int, p Participant) Operation {
	return Operation{
		Label:  fmt.Sprintf("Participant %d registered", position),
		Method: method,
		Args:   []any{p.Address},
	}
}

// CreateSession builds the session creation call.
func CreateSession(method string, s Session) Operation {
	return Operation{
		Label:  "Session created",
		Method: method,
		Args:   []any{s.SecretCommitment, s.DurationArg()},
	}
}
