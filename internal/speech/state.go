package speech

import (
	"strings"

	"github.com/tahcohcat/voicegen/internal/persona"
)

// Phase is the request lifecycle position of a Controller.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the controller state handed to observers.
//
// Caption survives a failed submission and a dismissal; only a new valid
// submission clears it.
type Snapshot struct {
	Phase    Phase
	Keywords string
	Persona  persona.Persona
	Caption  string
	Error    string
}

func (s Snapshot) Loading() bool { return s.Phase == Loading }

// CanSubmit reports whether a UI trigger should be enabled.
func (s Snapshot) CanSubmit() bool {
	return s.Phase != Loading && strings.TrimSpace(s.Keywords) != ""
}
