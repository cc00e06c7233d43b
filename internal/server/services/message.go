package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/dbx"
	"github.com/dmitrijs2005/gophmessenger/internal/server/config"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MessageService provides message ledger operations. Lists are ordered
// newest first (sent_at, then id, descending) and name an existing user.
type MessageService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// NewMessageService constructs a MessageService using repositories and server config.
func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MessageService {
	return &MessageService{
		db:           db,
		repomanager:  m,
		queryTimeout: cfg.QueryTimeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *MessageService) ensureUser(ctx context.Context, db dbx.DBTX, username string) error {
	ok, err := s.repomanager.Users(db).Exists(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	return nil
}

// ListSentBy returns every message sent by username, each with the
// recipient's snippet.
func (s *MessageService) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.ensureUser(ctx, s.db, username); err != nil {
		return nil, fmt.Errorf("error listing sent messages: %w", err)
	}
	list, err := s.repomanager.Messages(s.db).ListSentBy(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error listing sent messages: %w", err)
	}
	return list, nil
}

// ListReceivedBy returns every message addressed to username, each with
// the sender's snippet.
func (s *MessageService) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.ensureUser(ctx, s.db, username); err != nil {
		return nil, fmt.Errorf("error listing received messages: %w", err)
	}
	list, err := s.repomanager.Messages(s.db).ListReceivedBy(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error listing received messages: %w", err)
	}
	return list, nil
}

// Send stores a message from one existing user to another.
func (s *MessageService) Send(ctx context.Context, from, to, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", common.ErrorValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: sender and recipient must differ", common.ErrorValidation)
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	msg := &models.Message{
		ID:           s.newID(),
		FromUserName: from,
		ToUserName:   to,
		Body:         body,
		SentAt:       timestamp(s.now()),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.ensureUser(ctx, tx, from); err != nil {
			return err
		}
		if err := s.ensureUser(ctx, tx, to); err != nil {
			return err
		}
		_, err := s.repomanager.Messages(tx).Create(ctx, msg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return msg, nil
}

// Get returns message id if requester is its sender or recipient. Any other
// requester gets common.ErrorNotFound, same as for a missing id.
func (s *MessageService) Get(ctx context.Context, id, requester string) (*models.MessageDetail, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	m, err := s.repomanager.Messages(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting message: %w", err)
	}
	if m.FromUser.UserName != requester && m.ToUser.UserName != requester {
		return nil, fmt.Errorf("error getting message: %w", common.ErrorNotFound)
	}
	return m, nil
}
