// Package adapter marshals MySQL query results into a uniform envelope:
// ordered column names, normalized column types and positional rows. It
// sits between a query-execution layer above and a database client below,
// and owns no connection state of its own.
package adapter

import (
	"context"
	"strconv"

	"mysql-adapter/internal/classify"
	"mysql-adapter/internal/dberr"
	"mysql-adapter/internal/wire"
)

// Raw is the untyped outcome of one row-returning statement as reported
// by the underlying client: per-column wire metadata plus row values in
// column order.
type Raw struct {
	Fields []wire.Field
	// Rows holds one inner slice per row, index-aligned with Fields.
	Rows [][]any
	// LastInsertID is non-zero only when the statement generated an
	// auto-increment identifier.
	LastInsertID uint64
}

// ExecInfo is the untyped outcome of one mutation statement.
type ExecInfo struct {
	RowsAffected uint64
	LastInsertID uint64
}

// Client is the underlying database client boundary. Implementations own
// transport, pooling and value decoding; each call is a single round trip
// against a pooled connection.
type Client interface {
	// Query runs a row-returning statement and reports fields and rows.
	Query(ctx context.Context, query string, args []any) (*Raw, error)

	// Exec runs a mutation statement and reports affected rows and the
	// generated identifier, if any.
	Exec(ctx context.Context, query string, args []any) (ExecInfo, error)
}

// Starter is implemented by clients that can open transactions.
type Starter interface {
	// Begin borrows one dedicated connection and starts a transaction
	// on it. The returned session owns the connection until Commit or
	// Rollback releases it.
	Begin(ctx context.Context) (Session, error)
}

// Session is a transaction-scoped client. Exactly one of Commit or
// Rollback must be called, exactly once; both release the borrowed
// connection back to the pool.
type Session interface {
	Client
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ResultEnvelope is the uniform shape of a successful row-returning
// query. Columns, Types and every row are index-aligned. Immutable once
// built.
type ResultEnvelope struct {
	Columns []string              `json:"columnNames"`
	Types   []classify.ColumnType `json:"columnTypes"`
	Rows    [][]any               `json:"rows"`
	// LastInsertID is the generated identifier as a decimal string, or
	// empty when the statement generated none. A string sidesteps
	// precision loss for identifiers beyond 2^53.
	LastInsertID string `json:"lastInsertId,omitempty"`
}

// Marshaller runs statements through a Client and assembles envelopes.
// It is stateless and safe for concurrent use.
type Marshaller struct {
	client Client
}

// New returns a Marshaller over the given client.
func New(client Client) *Marshaller {
	return &Marshaller{client: client}
}

// ExecuteQuery runs one row-returning statement and marshals the result.
// If any returned column has wire metadata outside the supported set the
// whole call fails with *classify.UnsupportedTypeError; partial envelopes
// are never returned. Driver failures are translated via dberr.
func (m *Marshaller) ExecuteQuery(ctx context.Context, query string, args []any) (*ResultEnvelope, error) {
	raw, err := m.client.Query(ctx, query, args)
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return Envelope(raw)
}

// ExecuteMutation runs one mutation statement and reports the affected
// row count. No column classification happens on this path.
func (m *Marshaller) ExecuteMutation(ctx context.Context, query string, args []any) (uint64, error) {
	info, err := m.client.Exec(ctx, query, args)
	if err != nil {
		return 0, dberr.Translate(err)
	}
	return info.RowsAffected, nil
}

// Envelope classifies every column of a raw result and builds the final
// envelope. Exported so transaction sessions and the agent share the
// exact same marshalling step.
func Envelope(raw *Raw) (*ResultEnvelope, error) {
	names := make([]string, len(raw.Fields))
	types := make([]classify.ColumnType, len(raw.Fields))
	for i, f := range raw.Fields {
		t, err := classify.Classify(f)
		if err != nil {
			return nil, err
		}
		names[i] = f.Name
		types[i] = t
	}
	env := &ResultEnvelope{
		Columns: names,
		Types:   types,
		Rows:    raw.Rows,
	}
	if raw.LastInsertID != 0 {
		env.LastInsertID = strconv.FormatUint(raw.LastInsertID, 10)
	}
	if env.Rows == nil {
		env.Rows = [][]any{}
	}
	return env, nil
}
