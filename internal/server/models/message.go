package models

import "time"

// Message is a stored directed message. Everything except ReadAt is fixed
// at creation.
type Message struct {
	ID           string     `json:"id"`
	FromUserName string     `json:"from_username"`
	ToUserName   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// SentMessage is an outbox row: the recipient is resolved into a snippet.
type SentMessage struct {
	ID     string      `json:"id"`
	ToUser UserSnippet `json:"to_user"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
}

// ReceivedMessage is an inbox row: the sender is resolved into a snippet.
type ReceivedMessage struct {
	ID       string      `json:"id"`
	FromUser UserSnippet `json:"from_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}

// MessageDetail carries both parties of a single message.
type MessageDetail struct {
	ID       string      `json:"id"`
	FromUser UserSnippet `json:"from_user"`
	ToUser   UserSnippet `json:"to_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}
