package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable matches any failure where no HTTP response arrived.
	ErrUnreachable = errors.New("api: server unreachable")
	// ErrMalformed matches successful responses that lack a required field.
	ErrMalformed = errors.New("api: malformed response")
)

// TransportError reports a request that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: server unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnreachable) match.
func (e *TransportError) Is(target error) bool { return target == ErrUnreachable }

// StatusError reports a non-2xx response.
type StatusError struct {
	Op   string
	Code int
	// Message is the server's {error} text when Structured is true.
	Message    string
	Structured bool
}

func (e *StatusError) Error() string {
	if e.Structured {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// MalformedError reports a 2xx response that is missing a required field or
// could not be decoded.
type MalformedError struct {
	Op    string
	Field string
	Err   error
}

func (e *MalformedError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: response missing %q", e.Op, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: undecodable response: %v", e.Op, e.Err)
	}
	return e.Op + ": malformed response"
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformed) match.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Describe renders err for a person: the server's own message when it sent
// one, a generic status message otherwise, and "server unreachable" for
// transport failures.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if errors.Is(err, ErrUnreachable) {
		return "server unreachable"
	}
	var me *MalformedError
	if errors.As(err, &me) {
		if me.Field != "" {
			return fmt.Sprintf("unexpected response from server (no %s)", me.Field)
		}
		return "unexpected response from server"
	}
	return err.Error()
}

// ServerMessage returns the structured {error} text, if the server sent one.
func ServerMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Structured {
		return se.Message, true
	}
	return "", false
}
