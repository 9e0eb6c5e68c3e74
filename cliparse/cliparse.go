// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DefaultPort          = 3318
	DefaultStorageDir    = "./storage"
	DefaultMaxImageBytes = 20 * humanize.MByte
	DefaultMaxAudioBytes = 25 * humanize.MByte
	DefaultDraftTTL      = 30 * time.Minute
	DefaultMaxDrafts     = 5
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	StorageDir    string
	TokenSalt     string
	MaxImageBytes int64
	MaxAudioBytes int64
	// Idle drafts are dropped after DraftTTL
	DraftTTL time.Duration
	// Open drafts allowed per customer
	MaxDrafts int
	// Downstream publisher hook. Read but never called by this service.
	WebhookURL string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("easy-posting", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.StorageDir, "storage", "", "Directory holding storage buckets")

	// Upload limits, accept "20MB" style values
	var maxImage, maxAudio string
	fs.StringVar(&maxImage, "max-image", "", "Maximum image upload size")
	fs.StringVar(&maxAudio, "max-audio", "", "Maximum voice note size")

	// Draft limits
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", 0, "Idle time before a draft is discarded")
	fs.IntVar(&cfg.MaxDrafts, "max-drafts", 0, "Open drafts per customer")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSalt, "token-salt", "", "Auth token salt (prefer env)")
	fs.StringVar(&cfg.WebhookURL, "webhook", "", "Downstream publishing webhook URL")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.StorageDir == "" {
		cfg.StorageDir = os.Getenv("STORAGE_DIR")
		if cfg.StorageDir == "" {
			cfg.StorageDir = DefaultStorageDir
		}
	}

	var err error
	if cfg.MaxImageBytes, err = parseSize(maxImage, "MAX_IMAGE_BYTES", DefaultMaxImageBytes); err != nil {
		return Config{}, err
	}
	if cfg.MaxAudioBytes, err = parseSize(maxAudio, "MAX_AUDIO_BYTES", DefaultMaxAudioBytes); err != nil {
		return Config{}, err
	}

	if cfg.DraftTTL == 0 {
		if v := os.Getenv("DRAFT_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid DRAFT_TTL env variable")
			}
			cfg.DraftTTL = d
		} else {
			cfg.DraftTTL = DefaultDraftTTL
		}
	}
	if cfg.MaxDrafts == 0 {
		if v := os.Getenv("MAX_DRAFTS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid MAX_DRAFTS env variable")
			}
			cfg.MaxDrafts = n
		} else {
			cfg.MaxDrafts = DefaultMaxDrafts
		}
	}

	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	}

	// Secrets - MUST be provided
	if cfg.TokenSalt == "" {
		cfg.TokenSalt = os.Getenv("AUTH_TOKEN_SALT")
	}
	if cfg.TokenSalt == "" {
		return Config{}, errors.New("AUTH_TOKEN_SALT required")
	}

	return cfg, nil
}

func parseSize(flagValue, envKey string, def int64) (int64, error) {
	v := flagValue
	if v == "" {
		v = os.Getenv(envKey)
	}
	if v == "" {
		return def, nil
	}
	n, err := humanize.ParseBytes(v)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + envKey + " value")
	}
	return int64(n), nil
}
