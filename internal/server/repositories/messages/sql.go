// Package messages stores directed messages between users. Queries are
// built with squirrel using $N placeholders, which both PostgreSQL and
// SQLite bind by position.
package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/dbx"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var messageColumns = []string{"m.id", "m.body", "m.sent_at", "m.read_at"}

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query, args, err := psql.Insert("messages").
		Columns("id", "from_username", "to_username", "body", "sent_at", "read_at").
		Values(msg.ID, msg.FromUserName, msg.ToUserName, msg.Body, msg.SentAt, msg.ReadAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("message %q: %w", msg.ID, common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// listQuery selects messages where own = username, joined with the user on
// the other side, newest first.
func listQuery(own, other, username string) sq.SelectBuilder {
	cols := append(append([]string{}, messageColumns...), snippetColumns("u")...)
	return psql.Select(cols...).
		From("messages m").
		Join(fmt.Sprintf("users u ON u.username = m.%s", other)).
		Where(sq.Eq{"m." + own: username}).
		OrderBy("m.sent_at DESC", "m.id DESC")
}

func (r *SQLRepository) queryJoined(ctx context.Context, b sq.SelectBuilder, each func(row *joinedRow)) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row joinedRow
		dest := append(row.messageDest(), snippetDest(&row.Counterpart)...)
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		each(&row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListSentBy returns every message sent by username with the recipient
// snippet. It does not check that username exists.
func (r *SQLRepository) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	result := []models.SentMessage{}
	err := r.queryJoined(ctx, listQuery("from_username", "to_username", username), func(row *joinedRow) {
		result = append(result, row.toSent())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListReceivedBy returns every message addressed to username with the
// sender snippet. It does not check that username exists.
func (r *SQLRepository) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	result := []models.ReceivedMessage{}
	err := r.queryJoined(ctx, listQuery("to_username", "from_username", username), func(row *joinedRow) {
		result = append(result, row.toReceived())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.MessageDetail, error) {
	cols := append(append(append([]string{}, messageColumns...), snippetColumns("f")...), snippetColumns("t")...)
	query, args, err := psql.Select(cols...).
		From("messages m").
		Join("users f ON f.username = m.from_username").
		Join("users t ON t.username = m.to_username").
		Where(sq.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row joinedRow
	dest := append(append(row.messageDest(), snippetDest(&row.Counterpart)...), snippetDest(&row.Other)...)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return row.toDetail(), nil
}
