package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"

	"mysql-adapter/internal/classify"
	"mysql-adapter/internal/dberr"
	"mysql-adapter/internal/wire"
)

// fakeClient scripts the underlying client boundary.
type fakeClient struct {
	raw     *Raw
	info    ExecInfo
	err     error
	session *fakeSession
}

func (f *fakeClient) Query(ctx context.Context, query string, args []any) (*Raw, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func (f *fakeClient) Exec(ctx context.Context, query string, args []any) (ExecInfo, error) {
	if f.err != nil {
		return ExecInfo{}, f.err
	}
	return f.info, nil
}

func (f *fakeClient) Begin(ctx context.Context) (Session, error) {
	return f.session, nil
}

// fakeSession counts connection releases: Commit and Rollback each
// stand in for handing the borrowed connection back to the pool.
type fakeSession struct {
	fakeClient
	releases int
}

func (s *fakeSession) Commit(ctx context.Context) error {
	s.releases++
	return nil
}

func (s *fakeSession) Rollback(ctx context.Context) error {
	s.releases++
	return nil
}

func TestExecuteQuery(t *testing.T) {
	t.Parallel()

	client := &fakeClient{raw: &Raw{
		Fields: []wire.Field{
			{Name: "id", Type: wire.TypeLong},
			{Name: "name", Type: wire.TypeVarString, Charset: 224},
			{Name: "created_at", Type: wire.TypeTimestamp},
		},
		Rows: [][]any{
			{int64(1), "ada", "2024-01-01 10:00:00"},
			{int64(2), "grace", "2024-01-02 11:30:00"},
		},
	}}

	env, err := New(client).ExecuteQuery(context.Background(), "SELECT id, name, created_at FROM users", nil)
	if err != nil {
		t.Fatalf("ExecuteQuery returned error: %v", err)
	}

	wantColumns := []string{"id", "name", "created_at"}
	wantTypes := []classify.ColumnType{classify.Int32, classify.Text, classify.DateTime}
	if len(env.Columns) != len(env.Types) {
		t.Fatalf("columns/types misaligned: %d vs %d", len(env.Columns), len(env.Types))
	}
	for i := range wantColumns {
		if env.Columns[i] != wantColumns[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, env.Columns[i], wantColumns[i])
		}
		if env.Types[i] != wantTypes[i] {
			t.Errorf("Types[%d] = %v, want %v", i, env.Types[i], wantTypes[i])
		}
	}
	if len(env.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(env.Rows))
	}
	for i, row := range env.Rows {
		if len(row) != len(env.Columns) {
			t.Errorf("Rows[%d] has %d values, want %d", i, len(row), len(env.Columns))
		}
	}
	if env.LastInsertID != "" {
		t.Errorf("LastInsertID = %q, want empty", env.LastInsertID)
	}
}

func TestExecuteQueryEmptyResult(t *testing.T) {
	t.Parallel()

	client := &fakeClient{raw: &Raw{
		Fields: []wire.Field{{Name: "id", Type: wire.TypeLongLong}},
	}}

	env, err := New(client).ExecuteQuery(context.Background(), "SELECT id FROM empty_table", nil)
	if err != nil {
		t.Fatalf("ExecuteQuery returned error: %v", err)
	}
	if env.Rows == nil || len(env.Rows) != 0 {
		t.Errorf("Rows = %v, want empty non-nil slice", env.Rows)
	}
	if len(env.Columns) != 1 || env.Columns[0] != "id" {
		t.Errorf("Columns = %v, want [id]", env.Columns)
	}
	if len(env.Types) != 1 || env.Types[0] != classify.Int64 {
		t.Errorf("Types = %v, want [Int64]", env.Types)
	}
}

func TestExecuteQueryLastInsertID(t *testing.T) {
	t.Parallel()

	client := &fakeClient{raw: &Raw{
		Fields:       []wire.Field{{Name: "id", Type: wire.TypeLongLong}},
		Rows:         [][]any{{"42"}},
		LastInsertID: 18446744073709551615,
	}}

	env, err := New(client).ExecuteQuery(context.Background(), "INSERT ... RETURNING id", nil)
	if err != nil {
		t.Fatalf("ExecuteQuery returned error: %v", err)
	}
	// A string keeps full precision for identifiers past 2^53.
	if env.LastInsertID != "18446744073709551615" {
		t.Errorf("LastInsertID = %q, want %q", env.LastInsertID, "18446744073709551615")
	}
}

func TestExecuteQueryUnsupportedColumn(t *testing.T) {
	t.Parallel()

	client := &fakeClient{raw: &Raw{
		Fields: []wire.Field{
			{Name: "id", Type: wire.TypeLong},
			{Name: "shape", Type: wire.TypeGeometry},
		},
		Rows: [][]any{{int64(1), []byte{0x01}}},
	}}

	env, err := New(client).ExecuteQuery(context.Background(), "SELECT id, shape FROM places", nil)
	if env != nil {
		t.Fatalf("got a partial envelope %+v, want none", env)
	}
	var unsupported *classify.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %T (%v), want *classify.UnsupportedTypeError", err, err)
	}
	if unsupported.TypeName != "GEOMETRY" {
		t.Errorf("TypeName = %q, want GEOMETRY", unsupported.TypeName)
	}
}

func TestExecuteMutation(t *testing.T) {
	t.Parallel()

	client := &fakeClient{info: ExecInfo{RowsAffected: 3, LastInsertID: 7}}
	affected, err := New(client).ExecuteMutation(context.Background(), "UPDATE users SET active = 1", nil)
	if err != nil {
		t.Fatalf("ExecuteMutation returned error: %v", err)
	}
	if affected != 3 {
		t.Errorf("affected = %d, want 3", affected)
	}
}

func TestDriverErrorTranslation(t *testing.T) {
	t.Parallel()

	client := &fakeClient{err: &mysql.MySQLError{
		Number:   1045,
		SQLState: [5]byte{'2', '8', '0', '0', '0'},
		Message:  "Access denied",
	}}
	m := New(client)

	_, err := m.ExecuteQuery(context.Background(), "SELECT 1", nil)
	var dbErr *dberr.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("query error = %T, want *dberr.DatabaseError", err)
	}
	if dbErr.Code != 1045 || dbErr.State != "28000" || dbErr.Message != "Access denied" {
		t.Errorf("got %+v", dbErr)
	}

	if _, err := m.ExecuteMutation(context.Background(), "DROP TABLE x", nil); !errors.As(err, &dbErr) {
		t.Errorf("mutation error = %T, want *dberr.DatabaseError", err)
	}
}

func TestUnrecognizedFaultPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("use of closed network connection")
	client := &fakeClient{err: boom}

	_, err := New(client).ExecuteQuery(context.Background(), "SELECT 1", nil)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want the original fault", err)
	}
}

func TestTransactionReleasesOnce(t *testing.T) {
	t.Parallel()

	for _, finish := range []string{"commit", "rollback"} {
		t.Run(finish, func(t *testing.T) {
			t.Parallel()

			session := &fakeSession{}
			session.raw = &Raw{Fields: []wire.Field{{Name: "n", Type: wire.TypeLong}}}
			client := &fakeClient{session: session}

			tx, err := New(client).BeginTx(context.Background())
			if err != nil {
				t.Fatalf("BeginTx returned error: %v", err)
			}
			if _, err := tx.ExecuteQuery(context.Background(), "SELECT n FROM t", nil); err != nil {
				t.Fatalf("ExecuteQuery returned error: %v", err)
			}

			if finish == "commit" {
				err = tx.Commit(context.Background())
			} else {
				err = tx.Rollback(context.Background())
			}
			if err != nil {
				t.Fatalf("%s returned error: %v", finish, err)
			}
			if session.releases != 1 {
				t.Errorf("connection released %d times, want exactly 1", session.releases)
			}
		})
	}
}

func TestBeginTxWithoutStarter(t *testing.T) {
	t.Parallel()

	// Embedding hides the fake's Begin method, leaving a bare Client.
	client := struct{ Client }{&fakeClient{}}

	_, err := New(client).BeginTx(context.Background())
	if !errors.Is(err, ErrNoTransactions) {
		t.Errorf("error = %v, want ErrNoTransactions", err)
	}
}
