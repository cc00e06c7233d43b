// Package httpapi exposes the user directory and message ledger as a JSON
// HTTP API routed with chi.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/logging"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/services"
)

// UserService is the part of services.UserService the HTTP API uses.
type UserService interface {
	RegisterAndLogin(ctx context.Context, p services.RegisterParams) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (string, error)
	All(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// MessageService is the part of services.MessageService the HTTP API uses.
type MessageService interface {
	ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error)
	ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error)
	Send(ctx context.Context, from, to, body string) (*models.Message, error)
	Get(ctx context.Context, id, requester string) (*models.MessageDetail, error)
}

// TokenVerifier resolves a session token to a username.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address        string
	users          UserService
	messages       MessageService
	tokens         TokenVerifier
	allowedOrigins []string
	logger         logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ms MessageService, tv TokenVerifier, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		messages:       ms,
		tokens:         tv,
		allowedOrigins: allowedOrigins,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests from lis until ctx is done, then shuts down,
// letting in-flight requests finish for up to shutdownTimeout. Request
// contexts keep ctx values but not its cancellation. Serve returns once the
// drain is over.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
