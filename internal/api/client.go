package api

import (
	"context"

	"google.golang.org/grpc"
)

// MessengerClient is a typed client of ServiceName. Every call is sent with
// the JSON content-subtype.
type MessengerClient struct {
	cc grpc.ClientConnInterface
}

func NewMessengerClient(cc grpc.ClientConnInterface) *MessengerClient {
	return &MessengerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MessengerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *MessengerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *MessengerClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *MessengerClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, MethodGetUser, in, opts)
}

func (c *MessengerClient) ListSentMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListSentMessagesResponse, error) {
	return invoke[ListSentMessagesResponse](ctx, c.cc, MethodListSentMessages, in, opts)
}

func (c *MessengerClient) ListReceivedMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListReceivedMessagesResponse, error) {
	return invoke[ListReceivedMessagesResponse](ctx, c.cc, MethodListReceivedMessages, in, opts)
}

func (c *MessengerClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageResponse](ctx, c.cc, MethodSendMessage, in, opts)
}

func (c *MessengerClient) GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*GetMessageResponse, error) {
	return invoke[GetMessageResponse](ctx, c.cc, MethodGetMessage, in, opts)
}

func (c *MessengerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
