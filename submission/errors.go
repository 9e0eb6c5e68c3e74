// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import "errors"

// ValidationError means the draft is incomplete. Nothing was sent anywhere.
type ValidationError struct {
	Reason string
	// Hint is the text shown to the user
	Hint string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrMissingImage = &ValidationError{
		Reason: "missing image",
		Hint:   "Please select an image",
	}
	ErrMissingContent = &ValidationError{
		Reason: "missing caption or voice note",
		Hint:   "Please add a caption or record a voice note",
	}
)

// AuthError means no signed-in customer could be resolved
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

var ErrNotAuthenticated = &AuthError{Reason: "Not authenticated"}

// RemoteOperationError wraps a failed upload or insert. Its message is the
// underlying client's message, unchanged.
type RemoteOperationError struct {
	Op  string
	Err error
}

func (e *RemoteOperationError) Error() string { return e.Err.Error() }

func (e *RemoteOperationError) Unwrap() error { return e.Err }

// UserMessage turns a Submit error into the status line shown to the user
func UserMessage(err error) string {
	var verr *ValidationError
	var aerr *AuthError
	var rerr *RemoteOperationError
	switch {
	case errors.As(err, &verr):
		return verr.Hint
	case errors.As(err, &aerr):
		return aerr.Reason
	case errors.As(err, &rerr):
		return rerr.Error()
	}
	return "Failed to submit post"
}
