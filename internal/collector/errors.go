package collector

import "fmt"

// NetworkError is returned when the transport fails or the endpoint answers
// with a non-success status. StatusCode is 0 for transport failures.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when the payload does not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode market data: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }
