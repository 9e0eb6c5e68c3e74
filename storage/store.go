// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/easy-posting/models"
)

var (
	ErrBucketNotFound = errors.New("bucket not found")
	ErrObjectExists   = errors.New("the resource already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidPath    = errors.New("invalid object path")
)

// Store keeps bucket objects as files under a root directory:
// <root>/<bucket>/<object path>
type Store struct {
	root    string
	buckets map[string]struct{}

	// uploads to one path serialize on locks[hash(path) % lockStripes]
	locks [lockStripes]sync.Mutex
}

const lockStripes = 64

// NewStore creates the root and one directory per bucket
func NewStore(root string, buckets ...string) (*Store, error) {
	s := &Store{root: root, buckets: make(map[string]struct{}, len(buckets))}
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(root, b), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", b, err)
		}
		s.buckets[b] = struct{}{}
	}
	return s, nil
}

// Root returns the storage directory
func (s *Store) Root() string {
	return s.root
}

func (s *Store) lockFor(fullPath string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fullPath))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *Store) resolve(bucket, objectPath string) (string, error) {
	if _, ok := s.buckets[bucket]; !ok {
		return "", fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	if objectPath == "" || strings.HasPrefix(objectPath, "/") || strings.Contains(objectPath, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	clean := path.Clean(objectPath)
	if clean != objectPath || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean)), nil
}

// Upload writes blob at objectPath inside bucket. Existing objects are never
// overwritten.
func (s *Store) Upload(ctx context.Context, bucket, objectPath string, blob models.Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	lock := s.lockFor(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(fullPath); err == nil {
		return ErrObjectExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat object: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial object
	tempPath := fullPath + ".tmp"
	if err := os.WriteFile(tempPath, blob.Data, 0o644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("commit object: %w", err)
	}

	slog.Debug("object stored",
		"bucket", bucket,
		"path", objectPath,
		"size", humanize.Bytes(uint64(len(blob.Data))),
	)
	return nil
}

// Download reads an object
func (s *Store) Download(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}
