package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct {
	conns []*stubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	conn := &stubConn{}
	d.conns = append(d.conns, conn)
	return conn, nil
}

type stubConn struct {
	commits   int
	rollbacks int
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return &stubTx{conn: c}, nil }

type stubTx struct {
	conn *stubConn
}

func (t *stubTx) Commit() error   { t.conn.commits++; return nil }
func (t *stubTx) Rollback() error { t.conn.rollbacks++; return nil }

var txDriver = &stubDriver{}

func init() {
	sql.Register("stubtx", txDriver)
}

func openStubDB(t *testing.T) *DB {
	t.Helper()

	raw, err := sqlx.Open("stubtx", "")
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	return Wrap(raw)
}

func lastConn(t *testing.T) *stubConn {
	t.Helper()
	require.NotEmpty(t, txDriver.conns)
	return txDriver.conns[len(txDriver.conns)-1]
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := openStubDB(t)

	var called bool
	require.NoError(t, db.WithTx(context.Background(), func(tx *sql.Tx) error {
		called = true
		return nil
	}))

	assert.True(t, called)
	conn := lastConn(t)
	assert.Equal(t, 1, conn.commits)
	assert.Equal(t, 0, conn.rollbacks)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openStubDB(t)

	wantErr := errors.New("insert failed")
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	conn := lastConn(t)
	assert.Equal(t, 0, conn.commits)
	assert.Equal(t, 1, conn.rollbacks)
}
