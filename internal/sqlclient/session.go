package sqlclient

import (
	"context"
	"database/sql"
	"fmt"

	"mysql-adapter/internal/adapter"
)

// session runs statements inside one transaction on one dedicated pooled
// connection. The connection goes back to the pool when Commit or
// Rollback runs; each must be called at most once.
type session struct {
	conn *sql.Conn
	tx   *sql.Tx
}

// Begin borrows a connection from the pool and starts a transaction on
// it. The transaction does not count against the statement semaphore;
// the pool bounds dedicated connections on its own.
func (c *Conn) Begin(ctx context.Context) (adapter.Session, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to borrow connection: %w", err)
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &session{conn: conn, tx: tx}, nil
}

func (s *session) Query(ctx context.Context, query string, args []any) (*adapter.Raw, error) {
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (s *session) Exec(ctx context.Context, query string, args []any) (adapter.ExecInfo, error) {
	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return adapter.ExecInfo{}, err
	}
	return execInfo(res), nil
}

func (s *session) Commit(ctx context.Context) error {
	err := s.tx.Commit()
	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *session) Rollback(ctx context.Context) error {
	err := s.tx.Rollback()
	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
