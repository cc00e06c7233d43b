package client

import (
	"context"

	"github.com/dmitrijs2005/gophmessenger/internal/api"
)

// Client is the server API as seen by the CLI.
type Client interface {
	Register(ctx context.Context, p RegisterParams) (*api.User, error)
	Login(ctx context.Context, userName, password string) error
	Logout()
	Ping(ctx context.Context) error
	ListUsers(ctx context.Context) ([]api.UserSummary, error)
	Me(ctx context.Context) (*api.User, error)
	Inbox(ctx context.Context) ([]api.ReceivedMessage, error)
	Outbox(ctx context.Context) ([]api.SentMessage, error)
	Send(ctx context.Context, to, body string) (*api.Message, error)
	GetMessage(ctx context.Context, id string) (*api.MessageDetail, error)
	Close() error
}

type RegisterParams struct {
	UserName  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}
