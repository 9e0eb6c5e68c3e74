// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/capture"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/draft"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/submission"
)

// writeError maps domain errors onto status codes
func writeError(w http.ResponseWriter, err error) {
	var validationErr *submission.ValidationError
	var authErr *submission.AuthError
	var remoteErr *submission.RemoteOperationError

	switch {
	case errors.As(err, &validationErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, submission.UserMessage(err))
	case errors.As(err, &authErr):
		middleware.ErrorResponse(w, http.StatusUnauthorized, authErr.Reason)
	case errors.As(err, &remoteErr):
		slog.Error("remote operation failed", "op", remoteErr.Op, "error", remoteErr.Err)
		middleware.ErrorResponse(w, http.StatusBadGateway, remoteErr.Error())
	case errors.Is(err, draft.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Draft not found")
	case errors.Is(err, draft.ErrTooManyDrafts):
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many open drafts, submit or discard one first")
	case errors.Is(err, draft.ErrAudioTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Voice note too large")
	case errors.Is(err, draft.ErrSubmitting):
		middleware.ErrorResponse(w, http.StatusConflict, "Submission already in progress")
	case errors.Is(err, capture.ErrNotRecording):
		middleware.ErrorResponse(w, http.StatusConflict, "Not recording")
	case errors.Is(err, datastore.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// requireIdentity writes 401 and returns false when the request is anonymous
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, submission.ErrNotAuthenticated.Reason)
		return auth.Identity{}, false
	}
	return id, true
}
