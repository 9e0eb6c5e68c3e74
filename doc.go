// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Easy Posting API server.

Easy Posting lets a small business describe its brand once and then post
a photo with a caption or a recorded voice note. Each submission is stored
for the publishing automation, which writes and schedules the actual
social media post.

# Starting the Server

The server reads CLI flags, then environment variables (a local .env file
is loaded first if present):

	DATABASE_URL=easy.db AUTH_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - AUTH_TOKEN_SALT (-token-salt): Secret for bearer token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - STORAGE_DIR (-storage): Bucket directory (default: ./storage)
  - MAX_IMAGE_BYTES (-max-image): Image limit, e.g. "20MB"
  - MAX_AUDIO_BYTES (-max-audio): Voice note limit, e.g. "25MB"
  - DRAFT_TTL (-draft-ttl): Idle time before a draft is dropped (default: 30m)
  - MAX_DRAFTS (-max-drafts): Open drafts per customer (default: 5)
  - WEBHOOK_URL (-webhook): Publishing webhook, logged only

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (customers, brand settings, posts, drafts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, identity, logging, JSON helpers
  - submission: The validate → upload → insert pipeline
  - draft: In-memory post drafts and their sessions
  - capture: Voice note recorder
  - datastore: Table client over database/sql
  - storage: Filesystem buckets
  - models: Request/response types
  - auth: Bearer tokens and request identity
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
