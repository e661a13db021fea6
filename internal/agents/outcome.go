package agents

import "github.com/ajharbinger/ideascore/internal/models"

// State tags how an agent finished
type State string

const (
	StateOK          State = "ok"
	StateDegraded    State = "degraded"
	StateUnavailable State = "unavailable"
)

// Outcome is an agent result. Value is always usable: on Unavailable it holds
// the agent's documented neutral signal.
type Outcome[T any] struct {
	State  State
	Value  T
	Reason string
}

// OK wraps a signal computed from complete provider data
func OK[T any](value T) Outcome[T] {
	return Outcome[T]{State: StateOK, Value: value}
}

// Degraded wraps a signal computed from partial provider data
func Degraded[T any](value T, reason string) Outcome[T] {
	return Outcome[T]{State: StateDegraded, Value: value, Reason: reason}
}

// Unavailable wraps the neutral fallback signal
func Unavailable[T any](fallback T, reason string) Outcome[T] {
	return Outcome[T]{State: StateUnavailable, Value: fallback, Reason: reason}
}

// Status converts the outcome tag into its report form
func (o Outcome[T]) Status() models.AgentStatus {
	return models.AgentStatus{State: string(o.State), Reason: o.Reason}
}
