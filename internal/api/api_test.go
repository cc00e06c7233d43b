package api

import (
	"testing"

	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/gophmessenger.Messenger/Login", FullMethod(MethodLogin))
}

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_UsesWireFieldNames(t *testing.T) {
	b, err := jsonCodec{}.Marshal(&AuthResponse{Token: "t", User: &models.User{UserName: "alice", PasswordHash: "h"}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"token":"t"`)
	assert.Contains(t, string(b), `"username":"alice"`)
	assert.NotContains(t, string(b), `"h"`, "hash never serialized")

	var req SendMessageRequest
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"to_username":"bob","body":"hi"}`), &req))
	assert.Equal(t, SendMessageRequest{ToUsername: "bob", Body: "hi"}, req)
}

func TestServiceDesc_ListsEveryMethod(t *testing.T) {
	names := map[string]bool{}
	for _, m := range ServiceDesc.Methods {
		names[m.MethodName] = true
	}
	for _, want := range []string{
		MethodRegister, MethodLogin, MethodListUsers, MethodGetUser, MethodListSentMessages,
		MethodListReceivedMessages, MethodSendMessage, MethodGetMessage, MethodPing,
	} {
		assert.True(t, names[want], want)
	}
}

func TestRecordAliases(t *testing.T) {
	var u *User = &models.User{UserName: "alice"}
	resp := GetUserResponse{User: u}
	assert.Equal(t, "alice", resp.User.UserName)

	var users []UserSummary = []models.UserSummary{{UserName: "bob"}}
	assert.Len(t, ListUsersResponse{Users: users}.Users, 1)
}
