package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/server/auth"
	"github.com/dmitrijs2005/gophmessenger/internal/server/config"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/passwords"
	"github.com/dmitrijs2005/gophmessenger/internal/server/repositories/repomanager"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// RegisterParams is the profile submitted at sign-up.
type RegisterParams struct {
	UserName  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserService provides user directory and authentication operations:
// - Register / RegisterAndLogin: create users
// - Get / All: read profiles
// - Authenticate / Login: verify credentials, stamp the login and mint a token
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	hasher       *passwords.Hasher
	issuer       *auth.Issuer
	queryTimeout time.Duration
	now          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *passwords.Hasher, issuer *auth.Issuer, cfg *config.Config) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		hasher:       hasher,
		issuer:       issuer,
		queryTimeout: cfg.QueryTimeout,
		now:          time.Now,
	}
}

// normalizeUserName is applied wherever a username enters the service, so
// registration and login agree on the stored form.
func normalizeUserName(name string) string {
	return strings.TrimSpace(name)
}

func (p *RegisterParams) validate() error {
	p.UserName = normalizeUserName(p.UserName)
	if p.UserName == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if p.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if len(p.Password) > maxPasswordBytes {
		return fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, maxPasswordBytes)
	}
	return nil
}

// Register stores a new user with join_at and last_login_at set to now.
// A taken username yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := timestamp(s.now())
	user := &models.User{
		UserName:     p.UserName,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		JoinAt:       now,
		LastLoginAt:  now,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// RegisterAndLogin registers the user and returns a session token for them.
func (s *UserService) RegisterAndLogin(ctx context.Context, p RegisterParams) (*models.User, string, error) {
	u, err := s.Register(ctx, p)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issuer.Issue(u.UserName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return u, token, nil
}

// Get returns the profile of username without the password hash.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// All lists every user ordered by username.
func (s *UserService) All(ctx context.Context) ([]models.UserSummary, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// TouchLogin sets last_login_at of username to now.
func (s *UserService) TouchLogin(ctx context.Context, username string) (*models.LoginStamp, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	stamp, err := s.repomanager.Users(s.db).TouchLogin(ctx, username, timestamp(s.now()))
	if err != nil {
		return nil, fmt.Errorf("error updating login time: %w", err)
	}
	return stamp, nil
}

// Authenticate reports whether password matches the stored hash of
// username. An unknown username is not an error: it costs one bcrypt
// comparison like a wrong password and returns false.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	username = normalizeUserName(username)

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.hasher.VerifyAbsent(password), nil
		}
		return false, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return s.hasher.Verify(password, user.PasswordHash), nil
}

// Login authenticates the user, stamps last_login_at and returns a session
// token. Any credential failure is common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = normalizeUserName(username)

	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	if _, err := s.TouchLogin(ctx, username); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	token, err := s.issuer.Issue(username)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
