// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/capture"
	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/draft"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/storage"
	"github.com/danielhkuo/easy-posting/submission"
)

// DraftHandler drives the step-by-step post form: pick an image, type a
// caption and/or record a voice note, then submit.
type DraftHandler struct {
	sessions *draft.Sessions
	workflow *submission.Workflow
	cfg      cliparse.Config
}

func NewDraftHandler(db *sql.DB, cfg cliparse.Config, objects *storage.Store, sessions *draft.Sessions) *DraftHandler {
	return &DraftHandler{
		sessions: sessions,
		workflow: submission.NewWorkflow(auth.ContextResolver{}, objects, datastore.NewClient(db)),
		cfg:      cfg,
	}
}

// session resolves the {id} path value to a draft owned by the caller
func (h *DraftHandler) session(w http.ResponseWriter, r *http.Request) (*draft.Session, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}

	draftID := r.PathValue("id")
	if draftID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Draft ID required")
		return nil, false
	}

	s, err := h.sessions.Get(draftID, id.CustomerID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

// Create handles POST /drafts
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.Create(id.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("draft created", "draft_id", s.ID, "customer_id", id.CustomerID, "open_drafts", h.sessions.Len())

	middleware.JSONResponse(w, http.StatusCreated, s.View())
}

// Get handles GET /drafts/{id}
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// Delete handles DELETE /drafts/{id}
// Discards the draft and releases the microphone if it is held
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(r.PathValue("id"), id.CustomerID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetImage handles PUT /drafts/{id}/image
// Multipart field "image" replaces the current image
func (h *DraftHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := parseMultipart(w, r, h.cfg.MaxImageBytes+maxMemory); err != nil {
		writeUploadError(w, err)
		return
	}
	image, err := formBlob(r, "image", h.cfg.MaxImageBytes)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	if image == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, submission.ErrMissingImage.Hint)
		return
	}

	st := s.SetImage(image)
	if len(st.Preview) == 0 {
		slog.Warn("no preview for image", "draft_id", s.ID, "content_type", image.ContentType)
	}
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// ClearImage handles DELETE /drafts/{id}/image
func (h *DraftHandler) ClearImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearImage()
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// Preview handles GET /drafts/{id}/image/preview
func (h *DraftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	preview := s.State().Preview
	if len(preview) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No preview available")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(preview)))
	w.WriteHeader(http.StatusOK)
	w.Write(preview)
}

// SetCaption handles PUT /drafts/{id}/caption
func (h *DraftHandler) SetCaption(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.UpdateCaptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.SetCaption(req.Caption)
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// ToggleRecording handles POST /drafts/{id}/recording
// Starts recording when idle and stops it otherwise. The browser reports in
// "granted" whether it obtained the microphone.
func (h *DraftHandler) ToggleRecording(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.ToggleRecordingRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	_, err := s.ToggleRecording(r.Context(), &capture.ClientStream{Granted: req.Granted})
	if errors.Is(err, capture.ErrPermissionDenied) {
		// Not fatal, the draft now carries the message for the user
		slog.Info("microphone unavailable", "draft_id", s.ID, "error", err)
	} else if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// WriteChunk handles POST /drafts/{id}/recording/chunks
// The body is raw audio appended to the running recording
func (h *DraftHandler) WriteChunk(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	tooLarge := "Voice note exceeds " + humanize.Bytes(uint64(h.cfg.MaxAudioBytes))

	chunk, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxAudioBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read audio")
		return
	}

	// The running total is checked under the draft's lock
	if err := s.WriteAudio(chunk, h.cfg.MaxAudioBytes); err != nil {
		if errors.Is(err, draft.ErrAudioTooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// ClearAudio handles DELETE /drafts/{id}/audio
func (h *DraftHandler) ClearAudio(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearAudio()
	middleware.JSONResponse(w, http.StatusOK, s.View())
}

// Submit handles POST /drafts/{id}/submit
// On success the draft is emptied and carries the success message; on
// failure it is kept as it was with the error message.
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	res, err := s.Submit(r.Context(), h.workflow)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitPostResponse{
		PostID:    res.PostID,
		ImagePath: res.ImagePath,
		VoicePath: res.VoicePath,
		Status:    models.StatusProcessing,
		Message:   s.View().Message,
	})
}
