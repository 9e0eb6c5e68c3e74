// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("AUTH_TOKEN_SALT", "test-salt")
	os.Setenv("MAX_IMAGE_BYTES", "5MB")
	os.Setenv("WEBHOOK_URL", "https://hooks.example.com/publish")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.StorageDir != DefaultStorageDir {
		t.Errorf("expected default storage dir, got %s", cfg.StorageDir)
	}
	if cfg.MaxImageBytes != 5000000 {
		t.Errorf("expected max image 5000000, got %d", cfg.MaxImageBytes)
	}
	if cfg.MaxAudioBytes != DefaultMaxAudioBytes {
		t.Errorf("expected default max audio, got %d", cfg.MaxAudioBytes)
	}
	if cfg.WebhookURL != "https://hooks.example.com/publish" {
		t.Errorf("unexpected webhook URL %q", cfg.WebhookURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-token-salt", "s1", "-storage", "/tmp/buckets", "-max-audio", "1MiB"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.StorageDir != "/tmp/buckets" {
		t.Errorf("expected storage dir /tmp/buckets, got %s", cfg.StorageDir)
	}
	if cfg.MaxAudioBytes != 1<<20 {
		t.Errorf("expected max audio 1MiB, got %d", cfg.MaxAudioBytes)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-token-salt", "s1"}},
		{"missing token salt", []string{"-d", "file:test.db"}},
		{"bad database type", []string{"-d", "file:test.db", "-token-salt", "s1", "-t", "mysql"}},
		{"bad size", []string{"-d", "file:test.db", "-token-salt", "s1", "-max-image", "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseFlags_DraftLimits(t *testing.T) {
	defer os.Clearenv()

	os.Clearenv()
	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-token-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DraftTTL != DefaultDraftTTL || cfg.MaxDrafts != DefaultMaxDrafts {
		t.Errorf("expected default draft limits, got %v / %d", cfg.DraftTTL, cfg.MaxDrafts)
	}

	os.Setenv("DRAFT_TTL", "10m")
	os.Setenv("MAX_DRAFTS", "2")
	cfg, err = ParseFlags([]string{"-d", "file:test.db", "-token-salt", "s1", "-max-drafts", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DraftTTL != 10*time.Minute {
		t.Errorf("expected draft ttl 10m, got %v", cfg.DraftTTL)
	}
	if cfg.MaxDrafts != 3 {
		t.Errorf("CLI should override env: expected 3 drafts, got %d", cfg.MaxDrafts)
	}

	os.Setenv("DRAFT_TTL", "soon")
	if _, err := ParseFlags([]string{"-d", "file:test.db", "-token-salt", "s1"}); err == nil {
		t.Error("expected error for invalid DRAFT_TTL")
	}
}
