// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDevice struct {
	acquired int
	released int
	err      error
}

func (d *countingDevice) Acquire(ctx context.Context) (Stream, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.acquired++
	return countingStream{d}, nil
}

type countingStream struct{ d *countingDevice }

func (s countingStream) Release() error {
	s.d.released++
	return nil
}

func TestRecorder_StartWriteStop(t *testing.T) {
	dev := &countingDevice{}
	r := NewRecorder(dev)
	ctx := context.Background()

	assert.Equal(t, Idle, r.State())
	require.NoError(t, r.Start(ctx))
	assert.Equal(t, Recording, r.State())

	require.NoError(t, r.Write([]byte("abc")))
	require.NoError(t, r.Write(nil))
	require.NoError(t, r.Write([]byte("def")))
	assert.Equal(t, 6, r.Buffered())

	blob, err := r.Stop()
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, "abcdef", string(blob.Data))
	assert.Equal(t, AudioContentType, blob.ContentType)
	assert.Equal(t, AudioFilename, blob.Filename)

	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, dev.acquired)
	assert.Equal(t, 1, dev.released)
}

func TestRecorder_StartWhileRecordingIsNoop(t *testing.T) {
	dev := &countingDevice{}
	r := NewRecorder(dev)
	ctx := context.Background()

	require.NoError(t, r.Start(ctx))
	require.NoError(t, r.Write([]byte("keep")))
	require.NoError(t, r.Start(ctx))

	assert.Equal(t, Recording, r.State())
	assert.Equal(t, 1, dev.acquired, "device must not be acquired twice")
	assert.Equal(t, 4, r.Buffered(), "buffer must survive a second Start")
}

func TestRecorder_StopWhileIdleIsNoop(t *testing.T) {
	dev := &countingDevice{}
	r := NewRecorder(dev)

	blob, err := r.Stop()
	assert.NoError(t, err)
	assert.Nil(t, blob)
	assert.Equal(t, 0, dev.released)
}

func TestRecorder_WriteWhileIdle(t *testing.T) {
	r := NewRecorder(&countingDevice{})
	assert.ErrorIs(t, r.Write([]byte("x")), ErrNotRecording)
}

func TestRecorder_PermissionDenied(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"denied", ErrPermissionDenied},
		{"no device", errors.New("no audio input found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(&countingDevice{err: tt.err})
			err := r.Start(context.Background())
			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Equal(t, Idle, r.State())
		})
	}
}

func TestRecorder_CloseReleasesDevice(t *testing.T) {
	dev := &countingDevice{}
	r := NewRecorder(dev)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Write([]byte("dropped")))
	require.NoError(t, r.Close())

	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, dev.released)
	assert.Equal(t, 0, r.Buffered())

	// Closing again is harmless
	require.NoError(t, r.Close())
	assert.Equal(t, 1, dev.released)
}

func TestClientStream(t *testing.T) {
	ctx := context.Background()

	denied := &ClientStream{Granted: false}
	_, err := denied.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	granted := &ClientStream{Granted: true}
	stream, err := granted.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, granted.Held())

	// Exclusive: a second holder is refused
	_, err = granted.Acquire(ctx)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, stream.Release())
	assert.False(t, granted.Held())
}
