package messages

import (
	"database/sql"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
)

// snippetColumns lists the users columns of a snippet under alias a.
func snippetColumns(a string) []string {
	return []string{a + ".username", a + ".first_name", a + ".last_name", a + ".phone"}
}

// joinedRow is one flat row of a messages/users join. Counterpart holds the
// single joined user of list queries; Detail queries fill both parties.
type joinedRow struct {
	ID          string
	Body        string
	SentAt      time.Time
	ReadAt      sql.NullTime
	Counterpart models.UserSnippet
	Other       models.UserSnippet
}

func (r *joinedRow) messageDest() []any {
	return []any{&r.ID, &r.Body, &r.SentAt, &r.ReadAt}
}

func snippetDest(s *models.UserSnippet) []any {
	return []any{&s.UserName, &s.FirstName, &s.LastName, &s.Phone}
}

func (r *joinedRow) readAt() *time.Time {
	if !r.ReadAt.Valid {
		return nil
	}
	t := r.ReadAt.Time
	return &t
}

func (r *joinedRow) toSent() models.SentMessage {
	return models.SentMessage{
		ID:     r.ID,
		ToUser: r.Counterpart,
		Body:   r.Body,
		SentAt: r.SentAt,
		ReadAt: r.readAt(),
	}
}

func (r *joinedRow) toReceived() models.ReceivedMessage {
	return models.ReceivedMessage{
		ID:       r.ID,
		FromUser: r.Counterpart,
		Body:     r.Body,
		SentAt:   r.SentAt,
		ReadAt:   r.readAt(),
	}
}

// toDetail expects Counterpart to be the sender and Other the recipient.
func (r *joinedRow) toDetail() *models.MessageDetail {
	return &models.MessageDetail{
		ID:       r.ID,
		FromUser: r.Counterpart,
		ToUser:   r.Other,
		Body:     r.Body,
		SentAt:   r.SentAt,
		ReadAt:   r.readAt(),
	}
}
