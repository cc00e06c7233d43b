package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophmessenger/internal/dbx"
	"github.com/dmitrijs2005/gophmessenger/internal/server/auth"
	"github.com/dmitrijs2005/gophmessenger/internal/server/config"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/passwords"
	messagesrepo "github.com/dmitrijs2005/gophmessenger/internal/server/repositories/messages"
	usersrepo "github.com/dmitrijs2005/gophmessenger/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createErr error

	getOut *models.User
	getErr error

	listOut []models.UserSummary
	listErr error

	touchErr error
	touched  []string

	exists    map[string]bool
	existsErr error
	deadline  time.Time
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u := *f.getOut
	return &u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.UserSummary, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) TouchLogin(ctx context.Context, username string, at time.Time) (*models.LoginStamp, error) {
	f.touched = append(f.touched, username)
	if f.touchErr != nil {
		return nil, f.touchErr
	}
	return &models.LoginStamp{UserName: username, LastLoginAt: at}, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, username string) (bool, error) {
	f.deadline, _ = ctx.Deadline()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.exists[username], nil
}

type fakeMessagesRepo struct {
	created   []*models.Message
	createErr error

	getOut *models.MessageDetail
	getErr error

	sentOut     []models.SentMessage
	receivedOut []models.ReceivedMessage
	listErr     error
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMessagesRepo) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	return f.sentOut, f.listErr
}

func (f *fakeMessagesRepo) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	return f.receivedOut, f.listErr
}

func (f *fakeMessagesRepo) Get(ctx context.Context, id string) (*models.MessageDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	m *fakeMessagesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository { return m.m }

func newFakeUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	hasher, err := passwords.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	issuer, err := auth.NewIssuer("k", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return NewUserService(db, rm, hasher, issuer, &config.Config{QueryTimeout: time.Second})
}

func newFakeMessageService(db *sql.DB, rm *fakeRepoManager) *MessageService {
	s := NewMessageService(db, rm, &config.Config{QueryTimeout: time.Second})
	s.newID = func() string { return "m-1" }
	return s
}
