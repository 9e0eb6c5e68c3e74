// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/capture"
	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/storage"
	"github.com/danielhkuo/easy-posting/submission"
)

type PostHandler struct {
	store    *datastore.Client
	workflow *submission.Workflow
	cfg      cliparse.Config
}

func NewPostHandler(db *sql.DB, cfg cliparse.Config, objects *storage.Store) *PostHandler {
	store := datastore.NewClient(db)
	return &PostHandler{
		store:    store,
		workflow: submission.NewWorkflow(auth.ContextResolver{}, objects, store),
		cfg:      cfg,
	}
}

// Submit handles POST /posts
// One-shot submission: multipart fields image, caption and voice
func (h *PostHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// Identity is checked by the workflow after validation, so an anonymous
	// request with an empty form still gets the validation error first.
	if err := parseMultipart(w, r, h.cfg.MaxImageBytes+h.cfg.MaxAudioBytes+maxMemory); err != nil {
		writeUploadError(w, err)
		return
	}

	image, err := formBlob(r, "image", h.cfg.MaxImageBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	voice, err := formBlob(r, "voice", h.cfg.MaxAudioBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	if voice != nil {
		voice.Filename = capture.AudioFilename
	}

	res, err := h.workflow.Submit(r.Context(), submission.Draft{
		Image:   image,
		Caption: r.FormValue("caption"),
		Audio:   voice,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitPostResponse{
		PostID:    res.PostID,
		ImagePath: res.ImagePath,
		VoicePath: res.VoicePath,
		Status:    models.StatusProcessing,
		Message:   &models.StatusMessage{Type: models.MessageSuccess, Text: submission.SuccessMessage},
	})
}

// Get handles GET /posts/{id}
// Customers only see their own posts
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	postID := r.PathValue("id")
	if postID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Post ID required")
		return
	}

	post, err := h.store.GetPost(r.Context(), postID)
	if errors.Is(err, datastore.ErrNotFound) || (err == nil && post.CustomerID != id.CustomerID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		slog.Error("failed to query post", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, post)
}
