// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNotFound          = errors.New("no rows found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrEmptyRow          = errors.New("row has no columns")
)

// Row maps column names to values
type Row map[string]any

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Client runs collection-style operations against a SQL database.
// Placeholders use $N, which lib/pq and modernc.org/sqlite both accept.
type Client struct {
	db *sql.DB
}

func NewClient(db *sql.DB) *Client {
	return &Client{db: db}
}

// DB returns the underlying connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Table returns a handle on the named collection
func (c *Client) Table(name string) *Table {
	return &Table{client: c, name: name}
}

// Insert adds one row to table
func (c *Client) Insert(ctx context.Context, table string, row Row) error {
	cols, args, err := splitRow(table, row)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders(len(cols)))

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// Upsert inserts row, or updates the columns it carries when a row with the
// same conflictTarget value already exists. Columns absent from row are left
// untouched on update.
func (c *Client) Upsert(ctx context.Context, table string, row Row, conflictTarget string) error {
	if !identRe.MatchString(conflictTarget) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, conflictTarget)
	}
	if _, ok := row[conflictTarget]; !ok {
		return fmt.Errorf("upsert into %s: row is missing conflict column %s", table, conflictTarget)
	}

	cols, args, err := splitRow(table, row)
	if err != nil {
		return err
	}

	var sets []string
	for _, col := range cols {
		if col == conflictTarget {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}

	action := "DO NOTHING"
	if len(sets) > 0 {
		action = "DO UPDATE SET " + strings.Join(sets, ", ")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		table, strings.Join(cols, ", "), placeholders(len(cols)), conflictTarget, action)

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert into %s: %w", table, err)
	}
	return nil
}

// Table is a named collection
type Table struct {
	client *Client
	name   string
}

func (t *Table) Insert(ctx context.Context, row Row) error {
	return t.client.Insert(ctx, t.name, row)
}

func (t *Table) Upsert(ctx context.Context, row Row, conflictTarget string) error {
	return t.client.Upsert(ctx, t.name, row, conflictTarget)
}

// Select starts a query returning the given columns
func (t *Table) Select(columns ...string) *Query {
	return &Query{table: t, columns: columns}
}

type filter struct {
	column string
	value  any
}

// Query is a select with equality filters
type Query struct {
	table   *Table
	columns []string
	filters []filter
}

// Eq adds a column = value filter
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column: column, value: value})
	return q
}

// Single scans exactly one row into dest, in column order.
// Returns ErrNotFound when nothing matches.
func (q *Query) Single(ctx context.Context, dest ...any) error {
	if len(q.columns) == 0 {
		return fmt.Errorf("select from %s: no columns", q.table.name)
	}
	if len(dest) != len(q.columns) {
		return fmt.Errorf("select from %s: %d columns but %d destinations", q.table.name, len(q.columns), len(dest))
	}
	if !identRe.MatchString(q.table.name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, q.table.name)
	}
	for _, col := range q.columns {
		if !identRe.MatchString(col) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
	}

	var where []string
	args := make([]any, 0, len(q.filters))
	for i, f := range q.filters {
		if !identRe.MatchString(f.column) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, f.column)
		}
		where = append(where, f.column+" = $"+strconv.Itoa(i+1))
		args = append(args, f.value)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.columns, ", "), q.table.name)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " LIMIT 1"

	err := q.table.client.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select from %s: %w", q.table.name, err)
	}
	return nil
}

// splitRow validates identifiers and returns columns in a stable order
func splitRow(table string, row Row) ([]string, []any, error) {
	if !identRe.MatchString(table) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}
	if len(row) == 0 {
		return nil, nil, ErrEmptyRow
	}

	cols := make([]string, 0, len(row))
	for col := range row {
		if !identRe.MatchString(col) {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = row[col]
	}
	return cols, args, nil
}

func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	return strings.Join(ph, ", ")
}
