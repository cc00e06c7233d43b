package api

import "github.com/dmitrijs2005/gophmessenger/internal/server/models"

// Record shapes carried by the wire messages. Clients use these names so
// they never import server packages directly.
type (
	User            = models.User
	UserSummary     = models.UserSummary
	UserSnippet     = models.UserSnippet
	Message         = models.Message
	SentMessage     = models.SentMessage
	ReceivedMessage = models.ReceivedMessage
	MessageDetail   = models.MessageDetail
)
