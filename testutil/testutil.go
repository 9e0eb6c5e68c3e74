// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir and the connection closes on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps SQLite writers from tripping over each other
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file:test.db",
		DatabaseType:  "sqlite",
		StorageDir:    t.TempDir(),
		TokenSalt:     "test-token-salt",
		MaxImageBytes: cliparse.DefaultMaxImageBytes,
		MaxAudioBytes: cliparse.DefaultMaxAudioBytes,
		DraftTTL:      cliparse.DefaultDraftTTL,
		MaxDrafts:     cliparse.DefaultMaxDrafts,
	}
}

// CreateTestCustomer inserts a customer_info row and returns its id and bearer token
func CreateTestCustomer(t *testing.T, conn *sql.DB, cfg cliparse.Config, fullname string) (customerID, token string) {
	t.Helper()

	customerID = uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO customer_info (customer_id, fullname, email, created_at)
		VALUES ($1, $2, $3, $4)
	`, customerID, fullname, customerID+"@example.com", time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}

	return customerID, auth.SignToken(customerID, cfg.TokenSalt)
}

// BearerHeader builds the Authorization header map for a token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// TestPNG returns a small encoded PNG
func TestPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// MultipartFile is one file part of a multipart request
type MultipartFile struct {
	Field    string
	Filename string
	Data     []byte
}

// MakeMultipartRequest creates a multipart/form-data test request
func MakeMultipartRequest(t *testing.T, method, path string, fields map[string]string, files []MultipartFile, headers map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(f.Data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
