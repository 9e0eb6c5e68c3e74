// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package datastore is a small collection-style client over database/sql.

# Tables

Rows are maps of column name to value. Identifiers are checked against
[a-z_][a-z0-9_]* before they reach SQL; values always travel as $N
parameters, which both lib/pq and modernc.org/sqlite understand.

	client := datastore.NewClient(db)
	err := client.Insert(ctx, models.TablePosts, datastore.Row{"id": id, ...})

Upsert takes a conflict target and only updates the columns present in the
row, so two forms can share one record without clobbering each other:

	err := client.Upsert(ctx, models.TableBrandSettings, row, "customer_id")

Reads chain Select, Eq and Single:

	err := client.Table(models.TableCustomerInfo).
		Select("fullname", "email").
		Eq("customer_id", id).
		Single(ctx, &fullname, &email)

Single returns ErrNotFound when no row matches.

# Records

records.go wraps the queries the API needs for customer_info,
brand_settings and posts.
*/
package datastore
