// Package api defines the messenger RPC surface shared by the server and
// the CLI client: request/response types, the gRPC service description and
// a typed client. Messages travel as JSON (see CodecName).
package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophmessenger.Messenger"

// Method names of ServiceName.
const (
	MethodRegister             = "Register"
	MethodLogin                = "Login"
	MethodListUsers            = "ListUsers"
	MethodGetUser              = "GetUser"
	MethodListSentMessages     = "ListSentMessages"
	MethodListReceivedMessages = "ListReceivedMessages"
	MethodSendMessage          = "SendMessage"
	MethodGetMessage           = "GetMessage"
	MethodPing                 = "Ping"
)

// FullMethod returns the "/service/method" path grpc reports in
// UnaryServerInfo.FullMethod.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MessengerServer is implemented by the server transport.
type MessengerServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	ListSentMessages(context.Context, *ListMessagesRequest) (*ListSentMessagesResponse, error)
	ListReceivedMessages(context.Context, *ListMessagesRequest) (*ListReceivedMessagesResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	GetMessage(context.Context, *GetMessageRequest) (*GetMessageResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary builds the MethodDesc of one unary method.
func unary[Req, Resp any](name string, call func(MessengerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MessengerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MessengerServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes ServiceName for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessengerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, MessengerServer.Register),
		unary(MethodLogin, MessengerServer.Login),
		unary(MethodListUsers, MessengerServer.ListUsers),
		unary(MethodGetUser, MessengerServer.GetUser),
		unary(MethodListSentMessages, MessengerServer.ListSentMessages),
		unary(MethodListReceivedMessages, MessengerServer.ListReceivedMessages),
		unary(MethodSendMessage, MessengerServer.SendMessage),
		unary(MethodGetMessage, MessengerServer.GetMessage),
		unary(MethodPing, MessengerServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophmessenger/messenger",
}

// RegisterMessengerServer registers srv on s.
func RegisterMessengerServer(s grpc.ServiceRegistrar, srv MessengerServer) {
	s.RegisterService(&ServiceDesc, srv)
}
