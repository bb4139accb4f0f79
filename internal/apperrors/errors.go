// Package apperrors holds the error taxonomy shared by every app layer.
// Callers wrap these sentinels with context and match them with errors.Is;
// the gateway maps them to HTTP status codes.
package apperrors

import "errors"

var (
	// ErrNotFound means a referenced auction, team, player or state row is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState means the action is illegal given the current
	// phase, timer or roster state.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnauthorized means a missing or invalid admin credential.
	ErrUnauthorized = errors.New("unauthorized")
)
