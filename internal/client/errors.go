package client

import "fmt"

// NetworkError means the backend could not be reached at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Error returns the server's detail
// message verbatim when one was sent, so it can be shown to the user as-is.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// ValidationError is a local precondition failure; no request was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
