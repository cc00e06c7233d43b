package api

import "github.com/dmitrijs2005/gophmessenger/internal/server/models"

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse answers both Register and Login. User is set by Register only.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []models.UserSummary `json:"users"`
}

type GetUserRequest struct {
	Username string `json:"username"`
}

type GetUserResponse struct {
	User *models.User `json:"user"`
}

// ListMessagesRequest names whose messages to list. Empty means the caller.
type ListMessagesRequest struct {
	Username string `json:"username"`
}

type ListSentMessagesResponse struct {
	Messages []models.SentMessage `json:"messages"`
}

type ListReceivedMessagesResponse struct {
	Messages []models.ReceivedMessage `json:"messages"`
}

// SendMessageRequest is sent on behalf of the authenticated caller.
type SendMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

type SendMessageResponse struct {
	Message *models.Message `json:"message"`
}

type GetMessageRequest struct {
	ID string `json:"id"`
}

type GetMessageResponse struct {
	Message *models.MessageDetail `json:"message"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
