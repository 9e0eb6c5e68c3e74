// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same schema runs on SQLite (modernc.org/sqlite) and PostgreSQL
(github.com/lib/pq); DriverName picks the driver for a DATABASE_TYPE.

# Tables

  - customer_info: fullname and email per customer
  - brand_settings: brand profile, one row per customer (customer_id is the upsert conflict target)
  - posts: submitted posts waiting for the publisher

post_style is stored as a JSON array in a TEXT column so both engines read
it the same way.

# Indexes

  - posts.customer_id
  - posts.status
*/
package db
