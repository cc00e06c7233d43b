package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophmessenger/internal/api"
	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// caller returns the authenticated username put in ctx by the interceptor.
func caller(ctx context.Context) (string, error) {
	name, ok := UserNameFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return name, nil
}

// self resolves a per-user request: empty means the caller, anyone else is
// refused.
func self(ctx context.Context, username string) (string, error) {
	name, err := caller(ctx)
	if err != nil {
		return "", err
	}
	if username != "" && username != name {
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return name, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, token, err := s.users.RegisterAndLogin(ctx, services.RegisterParams{
		UserName:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &api.AuthResponse{Token: token, User: user}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {

	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, common.InvalidCredentialsMessage)
		}
		return nil, s.toStatus(ctx, err)
	}

	return &api.AuthResponse{Token: token}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListUsersResponse{Users: users}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.GetUserResponse, error) {
	name, err := self(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetUserResponse{User: user}, nil
}

func (s *GRPCServer) ListSentMessages(ctx context.Context, req *api.ListMessagesRequest) (*api.ListSentMessagesResponse, error) {
	name, err := self(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListSentBy(ctx, name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListSentMessagesResponse{Messages: msgs}, nil
}

func (s *GRPCServer) ListReceivedMessages(ctx context.Context, req *api.ListMessagesRequest) (*api.ListReceivedMessagesResponse, error) {
	name, err := self(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListReceivedBy(ctx, name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListReceivedMessagesResponse{Messages: msgs}, nil
}

func (s *GRPCServer) SendMessage(ctx context.Context, req *api.SendMessageRequest) (*api.SendMessageResponse, error) {
	from, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := s.messages.Send(ctx, from, req.ToUsername, req.Body)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SendMessageResponse{Message: msg}, nil
}

func (s *GRPCServer) GetMessage(ctx context.Context, req *api.GetMessageRequest) (*api.GetMessageResponse, error) {
	name, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := s.messages.Get(ctx, req.ID, name)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetMessageResponse{Message: msg}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}
