package adapter

import (
	"context"
	"errors"

	"mysql-adapter/internal/dberr"
)

// ErrNoTransactions is returned by BeginTx when the underlying client
// cannot open transactions.
var ErrNoTransactions = errors.New("client does not support transactions")

// Tx marshals statements inside one transaction. It holds the session
// (and its dedicated connection) until Commit or Rollback; releasing
// twice is a caller bug and is not defended against here.
type Tx struct {
	session Session
}

// BeginTx opens a transaction on the marshaller's client.
func (m *Marshaller) BeginTx(ctx context.Context) (*Tx, error) {
	starter, ok := m.client.(Starter)
	if !ok {
		return nil, ErrNoTransactions
	}
	session, err := starter.Begin(ctx)
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &Tx{session: session}, nil
}

// ExecuteQuery runs one row-returning statement on the transaction's
// connection and marshals the result.
func (t *Tx) ExecuteQuery(ctx context.Context, query string, args []any) (*ResultEnvelope, error) {
	raw, err := t.session.Query(ctx, query, args)
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return Envelope(raw)
}

// ExecuteMutation runs one mutation statement on the transaction's
// connection.
func (t *Tx) ExecuteMutation(ctx context.Context, query string, args []any) (uint64, error) {
	info, err := t.session.Exec(ctx, query, args)
	if err != nil {
		return 0, dberr.Translate(err)
	}
	return info.RowsAffected, nil
}

// Commit commits the transaction and releases the borrowed connection.
func (t *Tx) Commit(ctx context.Context) error {
	return dberr.Translate(t.session.Commit(ctx))
}

// Rollback rolls the transaction back and releases the borrowed
// connection.
func (t *Tx) Rollback(ctx context.Context) error {
	return dberr.Translate(t.session.Rollback(ctx))
}
