// Package auth mints and verifies the HS256 session tokens handed out on
// login. A token carries the username and nothing else the server trusts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims plus the username.
type Claims struct {
	jwt.RegisteredClaims
	UserName string `json:"username"`
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewIssuer fails with common.ErrorConfiguration if secret is empty, so a
// misconfigured server refuses to start instead of failing per request.
// A zero validity issues tokens without an exp claim.
func NewIssuer(secret string, validity time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is empty", common.ErrorConfiguration)
	}
	if validity < 0 {
		return nil, fmt.Errorf("%w: negative token validity %s", common.ErrorConfiguration, validity)
	}
	return &Issuer{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Issue returns a signed token bound to userName.
func (i *Issuer) Issue(userName string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userName,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserName: userName,
	}
	if i.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded username.
// Failures are common.ErrTokenExpired or common.ErrInvalidToken; the
// username is empty whenever err is non-nil.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserName == "" || claims.UserName != claims.Subject {
		return "", common.ErrInvalidToken
	}

	return claims.UserName, nil
}
