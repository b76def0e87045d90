// Package sqlclient implements the adapter.Client boundary on top of
// database/sql with the go-sql-driver MySQL driver. It owns connection
// pooling, per-field wire metadata synthesis and row value decoding.
package sqlclient

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/sync/semaphore"

	"mysql-adapter/internal/adapter"
	"mysql-adapter/internal/wire"
)

// Conn is a pooled MySQL client. Safe for concurrent use; a weighted
// semaphore caps the number of statements in flight to bound load on
// the server.
type Conn struct {
	db  *sql.DB
	sem *semaphore.Weighted
}

// New opens a pooled client for the given DSN. maxConcurrency bounds the
// number of concurrent statements; values below 1 mean no bound beyond
// the pool itself.
func New(dsn string, maxConcurrency int64) (*Conn, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql pool: %w", err)
	}
	c := &Conn{db: db}
	if maxConcurrency > 0 {
		c.sem = semaphore.NewWeighted(maxConcurrency)
	}
	return c, nil
}

// Ping verifies the connection to the database.
func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the pool.
func (c *Conn) Close() error {
	return c.db.Close()
}

func (c *Conn) acquire(ctx context.Context) (release func(), err error) {
	if c.sem == nil {
		return func() {}, nil
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { c.sem.Release(1) }, nil
}

// Query runs one row-returning statement and materializes fields and
// rows. Row values are decoded through the field-decoding policy in
// decode.go.
func (c *Conn) Query(ctx context.Context, query string, args []any) (*adapter.Raw, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Exec runs one mutation statement.
func (c *Conn) Exec(ctx context.Context, query string, args []any) (adapter.ExecInfo, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return adapter.ExecInfo{}, err
	}
	defer release()

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return adapter.ExecInfo{}, err
	}
	return execInfo(res), nil
}

func execInfo(res sql.Result) adapter.ExecInfo {
	var info adapter.ExecInfo
	// The MySQL driver always reports both values; errors here mean a
	// driver that does not, which we treat as zero.
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		info.RowsAffected = uint64(n)
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		info.LastInsertID = uint64(id)
	}
	return info
}

// collect drains a result set into an adapter.Raw, synthesizing wire
// field descriptors from the driver column metadata.
func collect(rows *sql.Rows) (*adapter.Raw, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column metadata: %w", err)
	}

	fields := make([]wire.Field, len(columnTypes))
	for i, ct := range columnTypes {
		fields[i] = fieldOf(ct)
	}

	raw := &adapter.Raw{Fields: fields, Rows: [][]any{}}
	scan := make([]any, len(fields))
	ptrs := make([]any, len(fields))
	for i := range scan {
		ptrs[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		row := make([]any, len(fields))
		for i, v := range scan {
			decoded, err := decodeValue(fields[i], v)
			if err != nil {
				return nil, fmt.Errorf("failed to decode column %q: %w", fields[i].Name, err)
			}
			row[i] = decoded
		}
		raw.Rows = append(raw.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slog.Debug("query collected", "columns", len(fields), "rows", len(raw.Rows))
	return raw, nil
}
