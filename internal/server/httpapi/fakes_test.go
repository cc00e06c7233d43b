package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/logging"
	"github.com/dmitrijs2005/gophmessenger/internal/server/models"
	"github.com/dmitrijs2005/gophmessenger/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUsers struct {
	regUser  *models.User
	regToken string
	regErr   error
	regIn    services.RegisterParams

	loginToken string
	loginErr   error

	allOut []models.UserSummary
	allErr error

	getOut *models.User
	getErr error
	getIn  string
}

func (f *fakeUsers) RegisterAndLogin(ctx context.Context, p services.RegisterParams) (*models.User, string, error) {
	f.regIn = p
	return f.regUser, f.regToken, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeUsers) All(ctx context.Context) ([]models.UserSummary, error) {
	return f.allOut, f.allErr
}

func (f *fakeUsers) Get(ctx context.Context, username string) (*models.User, error) {
	f.getIn = username
	return f.getOut, f.getErr
}

type fakeMessages struct {
	sentOut     []models.SentMessage
	receivedOut []models.ReceivedMessage
	listErr     error
	listIn      string

	sendOut  *models.Message
	sendErr  error
	sendFrom string
	sendTo   string

	getOut       *models.MessageDetail
	getErr       error
	getID        string
	getRequester string
}

func (f *fakeMessages) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	f.listIn = username
	return f.sentOut, f.listErr
}

func (f *fakeMessages) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	f.listIn = username
	return f.receivedOut, f.listErr
}

func (f *fakeMessages) Send(ctx context.Context, from, to, body string) (*models.Message, error) {
	f.sendFrom, f.sendTo = from, to
	return f.sendOut, f.sendErr
}

func (f *fakeMessages) Get(ctx context.Context, id, requester string) (*models.MessageDetail, error) {
	f.getID, f.getRequester = id, requester
	return f.getOut, f.getErr
}

// fakeTokens accepts "token-<name>" as a token of <name>.
type fakeTokens struct{}

func (fakeTokens) Verify(token string) (string, error) {
	name, ok := strings.CutPrefix(token, "token-")
	if !ok || name == "" {
		return "", common.ErrInvalidToken
	}
	return name, nil
}

func newTestServer(us UserService, ms MessageService) *HTTPServer {
	return NewHTTPServer("127.0.0.1:0", nopLogger{}, us, ms, fakeTokens{}, []string{"http://localhost:3000"})
}

// do runs one request through h. token, when set, goes into the
// Authorization header.
func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
