// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - StorageDir: Root directory of the storage buckets (default: ./storage)
  - TokenSalt: Secret for bearer token HMAC (required)
  - MaxImageBytes: Image upload limit (default: 20 MB)
  - MaxAudioBytes: Voice note limit (default: 25 MB)
  - WebhookURL: Downstream publisher hook (optional, not called)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-storage      Storage directory
	-max-image    Image limit ("20MB", "512KiB", ...)
	-max-audio    Voice note limit
	-token-salt   Auth token salt
	-webhook      Webhook URL

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	STORAGE_DIR     → -storage
	MAX_IMAGE_BYTES → -max-image
	MAX_AUDIO_BYTES → -max-audio
	AUTH_TOKEN_SALT → -token-salt
	DRAFT_TTL       → -draft-ttl
	MAX_DRAFTS      → -max-drafts
	WEBHOOK_URL     → -webhook

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - AUTH_TOKEN_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - size limits must parse as byte sizes
*/
package cliparse
