// Package passwords hashes and verifies user passwords with bcrypt.
//
// The encoded hash is self-describing ($2a$<cost>$<salt><digest>), so the
// work factor can be raised in configuration without touching stored hashes:
// old hashes keep verifying with the cost they were created with.
package passwords

import (
	"fmt"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes new passwords at a fixed cost.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher validates cost and precomputes the hash VerifyAbsent compares
// against.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d out of range [%d, %d]",
			common.ErrorConfiguration, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	secret, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Cost returns the work factor used for new hashes.
func (h *Hasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt hash of plaintext. Repeated calls with the
// same input return different strings.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches storedHash. Malformed hashes
// yield false.
func (h *Hasher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// VerifyAbsent burns one bcrypt comparison at the configured cost and
// returns false. Call it when the account does not exist so the response
// time matches a wrong password for an existing account.
func (h *Hasher) VerifyAbsent(plaintext string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
