// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draft

import (
	"log/slog"

	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/submission"
)

// State is one user's post in progress. Update methods return a new State
// and never modify the receiver.
type State struct {
	Image   *models.Blob
	Preview []byte
	Caption string
	Audio   *models.Blob

	IsRecording  bool
	IsSubmitting bool
	Message      *models.StatusMessage
}

// Empty is the initial state
func Empty() State {
	return State{}
}

// WithImage replaces the image and regenerates the preview.
// Images that cannot be decoded are kept without a preview.
func (s State) WithImage(img *models.Blob) State {
	return s.WithPreparedImage(img, previewFor(img))
}

// WithPreparedImage replaces the image with one whose preview was already
// built, so the decoding can happen outside any lock
func (s State) WithPreparedImage(img *models.Blob, preview []byte) State {
	s.Image = img
	s.Preview = nil
	if img != nil {
		s.Preview = preview
	}
	return s
}

// previewFor builds the preview of img, or nil when there is none
func previewFor(img *models.Blob) []byte {
	if img == nil {
		return nil
	}
	preview, err := MakePreview(img.Data)
	if err != nil {
		slog.Debug("no preview for image", "filename", img.Filename, "error", err)
		return nil
	}
	return preview
}

// WithoutImage drops the image and its preview
func (s State) WithoutImage() State {
	s.Image = nil
	s.Preview = nil
	return s
}

func (s State) WithCaption(caption string) State {
	s.Caption = caption
	return s
}

func (s State) WithAudio(audio *models.Blob) State {
	s.Audio = audio
	return s
}

// WithoutAudio discards the recorded voice note
func (s State) WithoutAudio() State {
	s.Audio = nil
	return s
}

func (s State) WithRecording(recording bool) State {
	s.IsRecording = recording
	return s
}

func (s State) WithSubmitting(submitting bool) State {
	s.IsSubmitting = submitting
	return s
}

// WithMessage sets the status line; an empty text clears it
func (s State) WithMessage(kind, text string) State {
	if text == "" {
		s.Message = nil
		return s
	}
	s.Message = &models.StatusMessage{Type: kind, Text: text}
	return s
}

// Draft returns the part of the state the submission workflow reads
func (s State) Draft() submission.Draft {
	return submission.Draft{
		Image:   s.Image,
		Caption: s.Caption,
		Audio:   s.Audio,
	}
}
