// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/easy-posting/capture"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/submission"
)

var (
	ErrNotFound      = errors.New("draft not found")
	ErrSubmitting    = errors.New("submission already in progress")
	ErrTooManyDrafts = errors.New("too many open drafts")
	ErrAudioTooLarge = errors.New("voice note too large")
)

// MicrophoneMessage is shown when recording cannot start
const MicrophoneMessage = "Could not access microphone. Please allow microphone access."

// Submitter stores a draft as a post
type Submitter interface {
	Submit(ctx context.Context, d submission.Draft) (*submission.Result, error)
}

// Session is one draft being edited. All methods are safe for concurrent use.
type Session struct {
	ID    string
	Owner string

	mu       sync.Mutex
	state    State
	recorder *capture.Recorder

	// guarded by the owning Sessions' mu
	lastUsed time.Time
}

func newSession(id, owner string) *Session {
	return &Session{ID: id, Owner: owner, state: Empty()}
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View renders the state for clients
func (s *Session) View() models.DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := models.DraftView{
		ID:           s.ID,
		Image:        s.state.Image,
		HasPreview:   len(s.state.Preview) > 0,
		Caption:      s.state.Caption,
		Audio:        s.state.Audio,
		IsRecording:  s.state.IsRecording,
		IsSubmitting: s.state.IsSubmitting,
		Message:      s.state.Message,
	}
	if s.state.Image != nil {
		v.ImageSize = humanize.Bytes(uint64(s.state.Image.Size()))
	}
	if s.state.Audio != nil {
		v.AudioSize = humanize.Bytes(uint64(s.state.Audio.Size()))
	}
	return v
}

func (s *Session) update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// SetImage replaces the image and regenerates its preview. The preview is
// built before the session is locked.
func (s *Session) SetImage(img *models.Blob) State {
	preview := previewFor(img)
	return s.update(func(st State) State { return st.WithPreparedImage(img, preview) })
}

// ClearImage drops the image and preview
func (s *Session) ClearImage() State {
	return s.update(State.WithoutImage)
}

func (s *Session) SetCaption(caption string) State {
	return s.update(func(st State) State { return st.WithCaption(caption) })
}

// ClearAudio discards the recorded voice note
func (s *Session) ClearAudio() State {
	return s.update(State.WithoutAudio)
}

// StartRecording acquires device and starts buffering audio. Already
// recording is a no-op. A refused device leaves an error message in the
// state and returns capture.ErrPermissionDenied.
func (s *Session) StartRecording(ctx context.Context, device capture.Device) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder != nil && s.recorder.State() == capture.Recording {
		return s.state, nil
	}

	rec := capture.NewRecorder(device)
	if err := rec.Start(ctx); err != nil {
		s.state = s.state.WithMessage(models.MessageError, MicrophoneMessage)
		return s.state, err
	}
	s.recorder = rec
	s.state = s.state.WithRecording(true)
	return s.state, nil
}

// StopRecording finalizes the buffered audio into the draft's voice note.
// Not recording is a no-op.
func (s *Session) StopRecording() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder == nil {
		return s.state, nil
	}

	audio, err := s.recorder.Stop()
	s.recorder = nil
	s.state = s.state.WithRecording(false)
	if audio != nil {
		s.state = s.state.WithAudio(audio)
	}
	return s.state, err
}

// ToggleRecording stops when recording and starts otherwise
func (s *Session) ToggleRecording(ctx context.Context, device capture.Device) (State, error) {
	if s.State().IsRecording {
		return s.StopRecording()
	}
	return s.StartRecording(ctx, device)
}

// WriteAudio appends a chunk to the running recording. A chunk that would
// take the recording past limit bytes is refused with ErrAudioTooLarge and
// nothing is written.
func (s *Session) WriteAudio(chunk []byte, limit int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder == nil {
		return capture.ErrNotRecording
	}
	if int64(s.recorder.Buffered())+int64(len(chunk)) > limit {
		return fmt.Errorf("%w: limit is %s", ErrAudioTooLarge, humanize.Bytes(uint64(limit)))
	}
	return s.recorder.Write(chunk)
}

// RecordedBytes is the size of the running recording
func (s *Session) RecordedBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder == nil {
		return 0
	}
	return s.recorder.Buffered()
}

// Submit hands the draft to sub. Only one submission runs at a time; while
// it runs IsSubmitting is set. Success resets the draft, failure leaves it
// as it was and records the error message.
func (s *Session) Submit(ctx context.Context, sub Submitter) (*submission.Result, error) {
	s.mu.Lock()
	if s.state.IsSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitting
	}
	s.state = s.state.WithSubmitting(true).WithMessage("", "")
	d := s.state.Draft()
	s.mu.Unlock()

	res, err := sub.Submit(ctx, d)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = s.state.WithSubmitting(false).WithMessage(models.MessageError, submission.UserMessage(err))
		return nil, err
	}

	s.closeRecorderLocked()
	s.state = Empty().WithMessage(models.MessageSuccess, submission.SuccessMessage)
	return res, nil
}

// Close releases the microphone if a recording is running
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeRecorderLocked()
	s.state = s.state.WithRecording(false)
}

func (s *Session) closeRecorderLocked() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Close(); err != nil {
		slog.Warn("failed to release microphone", "draft_id", s.ID, "error", err)
	}
	s.recorder = nil
}

// Sessions holds the drafts of all users, keyed by draft id. Drafts idle
// for longer than the TTL are dropped on the next Create or Get, and each
// owner may hold at most maxPerOwner drafts. Zero disables either limit.
type Sessions struct {
	mu          sync.RWMutex
	byID        map[string]*Session
	ttl         time.Duration
	maxPerOwner int

	newID func() string
	now   func() time.Time
}

func NewSessions(ttl time.Duration, maxPerOwner int) *Sessions {
	return &Sessions{
		byID:        make(map[string]*Session),
		ttl:         ttl,
		maxPerOwner: maxPerOwner,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Create starts an empty draft owned by owner. It fails with
// ErrTooManyDrafts when the owner already holds the maximum.
func (r *Sessions) Create(owner string) (*Session, error) {
	s := newSession(r.newID(), owner)

	r.mu.Lock()
	now := r.now()
	expired := r.sweepLocked(now)

	if r.maxPerOwner > 0 && r.countLocked(owner) >= r.maxPerOwner {
		r.mu.Unlock()
		closeAll(expired)
		return nil, ErrTooManyDrafts
	}
	s.lastUsed = now
	r.byID[s.ID] = s
	r.mu.Unlock()

	closeAll(expired)
	return s, nil
}

// Get returns the draft if it exists and belongs to owner, and marks it used
func (r *Sessions) Get(id, owner string) (*Session, error) {
	r.mu.Lock()
	now := r.now()
	expired := r.sweepLocked(now)

	s, ok := r.byID[id]
	if ok && s.Owner == owner {
		s.lastUsed = now
	}
	r.mu.Unlock()

	closeAll(expired)
	if !ok || s.Owner != owner {
		return nil, ErrNotFound
	}
	return s, nil
}

// sweepLocked unlinks drafts idle past the TTL and returns them so the
// caller can close them after releasing r.mu. Drafts mid-submission stay.
func (r *Sessions) sweepLocked(now time.Time) []*Session {
	if r.ttl <= 0 {
		return nil
	}

	var expired []*Session
	for id, s := range r.byID {
		if now.Sub(s.lastUsed) <= r.ttl || s.State().IsSubmitting {
			continue
		}
		delete(r.byID, id)
		expired = append(expired, s)
	}
	return expired
}

func (r *Sessions) countLocked(owner string) int {
	n := 0
	for _, s := range r.byID {
		if s.Owner == owner {
			n++
		}
	}
	return n
}

func closeAll(sessions []*Session) {
	for _, s := range sessions {
		slog.Debug("dropping idle draft", "draft_id", s.ID, "owner", s.Owner)
		s.Close()
	}
}

// Delete removes the draft and releases its microphone
func (r *Sessions) Delete(id, owner string) error {
	r.mu.Lock()
	s, ok := r.byID[id]
	if !ok || s.Owner != owner {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	s.Close()
	return nil
}

// Len is the number of open drafts
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Close tears down every draft
func (r *Sessions) Close() {
	r.mu.Lock()
	all := r.byID
	r.byID = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
