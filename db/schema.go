// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names registered by the imported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DriverName maps a configured database type onto a database/sql driver
func DriverName(databaseType string) (string, error) {
	switch databaseType {
	case "postgres":
		return DriverPostgres, nil
	case "sqlite", "":
		return DriverSQLite, nil
	}
	return "", fmt.Errorf("unsupported database type %q", databaseType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements stay within the SQL shared by PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const Schema = `
-- Customers (written by the sign-up flow, read for display names)
CREATE TABLE IF NOT EXISTS customer_info (
    customer_id TEXT PRIMARY KEY,
    fullname TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Brand settings (one row per customer)
CREATE TABLE IF NOT EXISTS brand_settings (
    customer_id TEXT PRIMARY KEY,
    fullname TEXT NOT NULL DEFAULT '',
    business_name TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    service_area TEXT NOT NULL DEFAULT '',
    industry TEXT NOT NULL DEFAULT '',
    post_style TEXT NOT NULL DEFAULT '[]',
    brand_voice TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Submitted posts, consumed by the publishing automation
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    image_path TEXT NOT NULL,
    voice_path TEXT,
    user_prompt TEXT,
    status TEXT NOT NULL DEFAULT 'processing',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posts_customer_id ON posts(customer_id);
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
`
