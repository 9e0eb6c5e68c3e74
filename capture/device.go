// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"context"
	"sync"
)

// ClientStream is a microphone living in the user's browser. The browser asks
// for access itself and reports the outcome; audio then arrives as chunks.
type ClientStream struct {
	Granted bool

	mu   sync.Mutex
	held bool
}

func (c *ClientStream) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.Granted {
		return nil, ErrPermissionDenied
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held {
		return nil, ErrPermissionDenied
	}
	c.held = true
	return clientStreamHandle{c}, nil
}

// Held reports whether a recorder currently owns the stream
func (c *ClientStream) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

type clientStreamHandle struct {
	c *ClientStream
}

func (h clientStreamHandle) Release() error {
	h.c.mu.Lock()
	h.c.held = false
	h.c.mu.Unlock()
	return nil
}
