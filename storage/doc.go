// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage provides named buckets for binary objects.

# Buckets

A Store keeps one directory per bucket under a root directory:

	store, err := storage.NewStore(cfg.StorageDir, models.BucketPostMedia, models.BucketVoiceNotes)

Uploads never overwrite. A second upload to the same path fails with
ErrObjectExists. Writes go to a temp file first and are renamed into place,
guarded by a per-path mutex.

Object paths are slash separated and relative ("<customer>/<millis>.jpg").
Absolute paths, backslashes and anything that escapes the bucket are rejected
with ErrInvalidPath.
*/
package storage
