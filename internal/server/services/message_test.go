package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
)

func TestSend_CommitsWhenBothUsersExist(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	msgs := &fakeMessagesRepo{}
	rm := &fakeRepoManager{u: &fakeUsersRepo{exists: map[string]bool{"alice": true, "bob": true}}, m: msgs}
	s := newFakeMessageService(db, rm)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600)) }

	m, err := s.Send(context.Background(), "alice", "bob", "hi")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if m.ID != "m-1" || m.FromUserName != "alice" || m.ToUserName != "bob" || m.ReadAt != nil {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.SentAt.Location() != time.UTC || m.SentAt.Nanosecond() != 123456000 {
		t.Fatalf("sent_at not normalized: %v", m.SentAt)
	}
	if len(msgs.created) != 1 {
		t.Fatalf("created %d messages", len(msgs.created))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSend_RollsBackOnUnknownRecipient(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	msgs := &fakeMessagesRepo{}
	rm := &fakeRepoManager{u: &fakeUsersRepo{exists: map[string]bool{"alice": true}}, m: msgs}
	s := newFakeMessageService(db, rm)

	_, err := s.Send(context.Background(), "alice", "ghost", "hi")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if len(msgs.created) != 0 {
		t.Fatal("message created for unknown recipient")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSend_RollsBackOnInsertError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{exists: map[string]bool{"alice": true, "bob": true}},
		m: &fakeMessagesRepo{createErr: errBoom},
	}
	s := newFakeMessageService(db, rm)

	if _, err := s.Send(context.Background(), "alice", "bob", "hi"); !errors.Is(err, errBoom) {
		t.Fatalf("want boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSend_ValidationSkipsStorage(t *testing.T) {
	db, mock := newSQLMockDB(t)
	s := newFakeMessageService(db, &fakeRepoManager{u: &fakeUsersRepo{}, m: &fakeMessagesRepo{}})

	if _, err := s.Send(context.Background(), "alice", "bob", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no transaction expected: %v", err)
	}
}

func TestListSentBy_ExistenceCheckFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newFakeMessageService(db, &fakeRepoManager{u: &fakeUsersRepo{existsErr: errBoom}, m: &fakeMessagesRepo{}})

	if _, err := s.ListSentBy(context.Background(), "alice"); !errors.Is(err, errBoom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestListReceivedBy_PassesThroughRows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rows := []models.ReceivedMessage{{ID: "a"}, {ID: "b"}}
	s := newFakeMessageService(db, &fakeRepoManager{
		u: &fakeUsersRepo{exists: map[string]bool{"bob": true}},
		m: &fakeMessagesRepo{receivedOut: rows},
	})

	got, err := s.ListReceivedBy(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListReceivedBy error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestGet_HidesOthersMessages(t *testing.T) {
	db, _ := newSQLMockDB(t)
	detail := &models.MessageDetail{
		ID:       "m-1",
		FromUser: models.UserSnippet{UserName: "alice"},
		ToUser:   models.UserSnippet{UserName: "bob"},
	}
	s := newFakeMessageService(db, &fakeRepoManager{m: &fakeMessagesRepo{getOut: detail}})

	if _, err := s.Get(context.Background(), "m-1", "bob"); err != nil {
		t.Fatalf("recipient: %v", err)
	}
	if _, err := s.Get(context.Background(), "m-1", "carol"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("outsider: want ErrorNotFound, got %v", err)
	}
}

func TestQueryTimeoutIsApplied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	users := &fakeUsersRepo{exists: map[string]bool{"alice": true}}
	s := newFakeMessageService(db, &fakeRepoManager{u: users, m: &fakeMessagesRepo{}})
	s.queryTimeout = 50 * time.Millisecond

	start := time.Now()
	if _, err := s.ListSentBy(context.Background(), "alice"); err != nil {
		t.Fatalf("ListSentBy error: %v", err)
	}
	if users.deadline.IsZero() || users.deadline.Sub(start) > time.Second {
		t.Fatalf("expected a short deadline, got %v", users.deadline)
	}
}
