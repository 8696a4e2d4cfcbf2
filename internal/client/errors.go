package client

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when the API yielded no entries at all.
var ErrEmptyResult = errors.New("leaderboard returned no entries")

// ConnectivityError wraps a transport failure: DNS, timeout, reset or a
// cancelled context.
type ConnectivityError struct {
	Offset int
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach leaderboard (offset %d): %v", e.Offset, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// HTTPError is a response with a status outside 2xx.
type HTTPError struct {
	Offset int
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("leaderboard responded with HTTP %d (offset %d)", e.Status, e.Offset)
}

// DecodeError is a body that is not a JSON object with a "leaderboard" array
// of entry objects.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed leaderboard response (offset %d): %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError is returned when the first entry lacks a required field.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("leaderboard entries lack required field %q", e.Field)
}

var errMissingLeaderboard = errors.New(`missing "leaderboard" field`)

// errorKind labels an error for metrics and logs.
func errorKind(err error) string {
	var (
		connErr   *ConnectivityError
		httpErr   *HTTPError
		decErr    *DecodeError
		schemaErr *SchemaError
	)
	switch {
	case errors.As(err, &connErr):
		return "connectivity"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &decErr):
		return "decode"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.Is(err, ErrEmptyResult):
		return "empty"
	default:
		return "other"
	}
}
