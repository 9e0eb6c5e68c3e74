// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/easy-posting/models"
)

var (
	ErrPermissionDenied = errors.New("could not access microphone")
	ErrNotRecording     = errors.New("not recording")
)

// Voice notes are always finalized as webm
const (
	AudioContentType = "audio/webm"
	AudioFilename    = "voice-note.webm"
)

// State of a Recorder
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Device is a microphone that can be held by one recorder at a time
type Device interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is an acquired device; Release hands it back
type Stream interface {
	Release() error
}

// Recorder buffers audio chunks between Start and Stop
type Recorder struct {
	mu     sync.Mutex
	device Device
	state  State
	stream Stream
	chunks [][]byte
}

func NewRecorder(device Device) *Recorder {
	return &Recorder{device: device}
}

// State returns the current state
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start acquires the device and begins buffering.
// Calling Start while recording does nothing.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Recording {
		return nil
	}

	stream, err := r.device.Acquire(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	r.stream = stream
	r.chunks = nil
	r.state = Recording
	return nil
}

// Write appends one chunk of audio
func (r *Recorder) Write(chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Recording {
		return ErrNotRecording
	}
	if len(chunk) == 0 {
		return nil
	}
	r.chunks = append(r.chunks, bytes.Clone(chunk))
	return nil
}

// Buffered returns the number of bytes recorded so far
func (r *Recorder) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.chunks {
		n += len(c)
	}
	return n
}

// Stop joins the chunks into one audio blob, releases the device and goes
// back to Idle. Stop while Idle returns nil, nil.
func (r *Recorder) Stop() (*models.Blob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Recording {
		return nil, nil
	}

	blob := &models.Blob{
		Filename:    AudioFilename,
		ContentType: AudioContentType,
		Data:        bytes.Join(r.chunks, nil),
	}
	err := r.releaseLocked()
	return blob, err
}

// Close drops anything buffered and releases the device if held
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Recording {
		return nil
	}
	return r.releaseLocked()
}

func (r *Recorder) releaseLocked() error {
	stream := r.stream
	r.stream = nil
	r.chunks = nil
	r.state = Idle

	if stream == nil {
		return nil
	}
	if err := stream.Release(); err != nil {
		return fmt.Errorf("release device: %w", err)
	}
	return nil
}
