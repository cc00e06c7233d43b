package messages

import (
	"context"

	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
)

// Repository is the storage contract of the message ledger. List and Get
// results carry the counterpart's profile snippet joined from users.
type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error)
	ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error)
	Get(ctx context.Context, id string) (*models.MessageDetail, error)
}
