package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
)

// Repository is the storage contract of the user directory.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	TouchLogin(ctx context.Context, username string, at time.Time) (*models.LoginStamp, error)
	Exists(ctx context.Context, username string) (bool, error)
}
