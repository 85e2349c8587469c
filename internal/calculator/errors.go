package calculator

import "fmt"

// ComputationError reports a degenerate numeric input, such as a zero
// denominator. Callers render it as "unavailable".
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
