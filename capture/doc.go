// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package capture records voice notes.
//
// A Recorder moves between Idle and Recording. Start acquires the Device
// (ErrPermissionDenied when that fails), Write buffers chunks, Stop joins
// them into one audio/webm blob and releases the device. Start while
// Recording and Stop while Idle are no-ops. Close releases a held device
// without producing audio.
package capture
