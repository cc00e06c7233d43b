package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "messenger.db")
	db, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`
		CREATE TABLE users (username TEXT PRIMARY KEY);
		CREATE TABLE messages (id TEXT PRIMARY KEY, from_username TEXT NOT NULL, to_username TEXT NOT NULL);
		INSERT INTO users(username) VALUES ('alice'), ('bob');
	`)
	require.NoError(t, err)
	return db
}

func countMessages(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n))
	return n
}

func insertMessage(ctx context.Context, tx DBTX, id, from, to string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO messages(id, from_username, to_username) VALUES (?, ?, ?)`, id, from, to)
	return err
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertMessage(ctx, tx, "m1", "alice", "bob")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countMessages(t, db))
}

// A send to an unknown recipient leaves no message behind.
func TestWithTx_RollsBackWhenRecipientMissing(t *testing.T) {
	db := setupDB(t)
	errNoUser := errors.New("no such user")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := insertMessage(ctx, tx, "m1", "alice", "carol"); err != nil {
			return err
		}
		var name string
		err := tx.QueryRowContext(ctx, `SELECT username FROM users WHERE username = ?`, "carol").Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return errNoUser
		}
		return err
	})
	require.ErrorIs(t, err, errNoUser)
	assert.Equal(t, 0, countMessages(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		assert.Equal(t, 0, countMessages(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertMessage(ctx, tx, "m1", "alice", "bob"))
		panic("send aborted")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
	require.False(t, SupportedDriver("mysql"))
	require.True(t, SupportedDriver(DriverPgx))
	require.True(t, SupportedDriver(DriverPostgres))
}
