package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"guestpass/internal/domain"
)

type bcryptComparer struct{}

// NewBcryptComparer returns a PassphraseComparer backed by bcrypt.
func NewBcryptComparer() domain.PassphraseComparer {
	return bcryptComparer{}
}

func (bcryptComparer) Compare(hash, passphrase string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase))
}

// HashPassphrase produces a bcrypt hash suitable for STAFF_PASSWORD_HASH.
// Exposed for provisioning tooling and tests.
func HashPassphrase(passphrase string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}
