// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/storage"
)

// serve runs handler behind the identity middleware, as the router does
func serve(cfg cliparse.Config, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.WithIdentity(cfg.TokenSalt, handler).ServeHTTP(w, req)
	return w
}

func setupTestStore(t *testing.T, cfg cliparse.Config) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(cfg.StorageDir, models.BucketPostMedia, models.BucketVoiceNotes)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

// bucketObjects lists the object names stored for a customer
func bucketObjects(t *testing.T, cfg cliparse.Config, bucket, customerID string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(cfg.StorageDir, bucket, customerID))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("Failed to list bucket %s: %v", bucket, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func countPosts(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		t.Fatalf("Failed to count posts: %v", err)
	}
	return n
}
