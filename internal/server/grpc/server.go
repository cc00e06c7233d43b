// Package grpc exposes the user directory and message ledger over gRPC
// (service gophmessenger.Messenger, JSON content-subtype).
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophmessenger/internal/api"
	"github.com/dmitrijs2005/gophmessenger/internal/logging"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService the transport uses.
type UserService interface {
	RegisterAndLogin(ctx context.Context, p services.RegisterParams) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (string, error)
	All(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// MessageService is the part of services.MessageService the transport uses.
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

type GRPCServer struct {
	address  string
	users    UserService
	messages MessageService
	tokens   TokenVerifier
	logger   logging.Logger
}

var _ api.MessengerServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us UserService, ms MessageService, tv TokenVerifier) (*GRPCServer, error) {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		messages: ms,
		tokens:   tv,
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterMessengerServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
